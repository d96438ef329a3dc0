package complete

import (
	"context"
	"errors"
	"testing"

	"github.com/bastiangx/pathserve/pkg/action"
	"github.com/bastiangx/pathserve/pkg/config"
	"github.com/bastiangx/pathserve/pkg/highlight"
	"github.com/bastiangx/pathserve/pkg/render"
	"github.com/bastiangx/pathserve/pkg/suggest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	_, err := Setup(nil, nil)
	assert.Error(t, err)

	cfg := config.DefaultConfig()
	cfg.Widget.OnSelect = "teleport"
	_, err = Setup(cfg, suggest.Static{})
	assert.Error(t, err)

	w, err := Setup(nil, suggest.Static{})
	require.NoError(t, err)
	assert.True(t, w.Options().Highlighting)
	assert.IsType(t, action.Log{}, w.Options().OnSelect)
}

func TestEntriesKeepSourceOrder(t *testing.T) {
	src := suggest.NewTrieSource([]string{
		"base/file_util_unittest.cc",
		"base/file_util.cc",
		"base/files/file_path.h",
	})
	cfg := config.DefaultConfig()
	cfg.Widget.URLTemplate = "http://localhost:8080/"

	var picked []string
	w, err := Setup(cfg, src, WithAction(action.Func(func(p string) error {
		picked = append(picked, p)
		return nil
	})))
	require.NoError(t, err)

	entries, err := w.Entries(context.Background(), "file")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	want, err := src.Suggest(context.Background(), "file", cfg.Source.Limit)
	require.NoError(t, err)
	for i, e := range entries {
		assert.Equal(t, want[i].Path, e.DisplayString())
	}

	rows := RenderAll(entries, func(int) *render.Recorder { return &render.Recorder{} })
	require.Len(t, rows, 3)
	assert.Equal(t, []highlight.Segment{
		{Kind: highlight.Plain, Text: "base/"},
		{Kind: highlight.Highlighted, Text: "file"},
		{Kind: highlight.Plain, Text: "_util.cc"},
	}, rows[0].Segments())
	assert.Equal(t, []string{"http://localhost:8080/base/file_util.cc"}, rows[0].Links())

	require.NoError(t, entries[1].OnSelect())
	assert.Equal(t, []string{entries[1].DisplayString()}, picked)
}

func TestEntriesPrefixBounds(t *testing.T) {
	calls := 0
	src := suggest.SourceFunc(func(ctx context.Context, token string, limit int) ([]suggest.Candidate, error) {
		calls++
		return []suggest.Candidate{suggest.NewCandidate(token)}, nil
	})
	cfg := config.DefaultConfig()
	cfg.Server.MinPrefix = 2
	cfg.Server.MaxPrefix = 4
	w, err := Setup(cfg, src)
	require.NoError(t, err)

	for _, token := range []string{"", "a", "abcde"} {
		entries, err := w.Entries(context.Background(), token)
		require.NoError(t, err)
		assert.Empty(t, entries, token)
	}
	assert.Zero(t, calls)

	entries, err := w.Entries(context.Background(), "ab")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestEntriesSourceError(t *testing.T) {
	boom := errors.New("service down")
	w, err := Setup(nil, suggest.SourceFunc(func(context.Context, string, int) ([]suggest.Candidate, error) {
		return nil, boom
	}))
	require.NoError(t, err)

	_, err = w.Entries(context.Background(), "x")
	assert.ErrorIs(t, err, boom)
}

func TestEntriesHighlightingOff(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Widget.Highlighting = false
	w, err := Setup(cfg, suggest.Static{suggest.NewCandidate("abcdef", highlight.Range{Start: 1, End: 2})})
	require.NoError(t, err)

	entries, err := w.Entries(context.Background(), "b")
	require.NoError(t, err)
	rows := RenderAll(entries, func(int) *render.Recorder { return &render.Recorder{} })
	assert.Equal(t, highlight.PlainSegments("abcdef"), rows[0].Segments())
}
