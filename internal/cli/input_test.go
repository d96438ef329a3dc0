package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bastiangx/pathserve/pkg/action"
	"github.com/bastiangx/pathserve/pkg/complete"
	"github.com/bastiangx/pathserve/pkg/config"
	"github.com/bastiangx/pathserve/pkg/render"
	"github.com/bastiangx/pathserve/pkg/suggest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWidget(t *testing.T, a action.Action) *complete.Widget {
	t.Helper()
	src := suggest.NewTrieSource([]string{"base/file_util.cc", "base/files/file_path.h", "net/net_util.cc"})
	cfg := config.DefaultConfig()
	cfg.Widget.URLTemplate = "http://localhost:8080/"
	w, err := complete.Setup(cfg, src, complete.WithAction(a))
	require.NoError(t, err)
	return w
}

func TestInputHandler(t *testing.T) {
	var picked []string
	w := newWidget(t, action.Func(func(p string) error {
		picked = append(picked, p)
		return nil
	}))

	var out bytes.Buffer
	in := strings.NewReader("file\n:2\n:7\nzzz\n\n:x")
	h := NewInputHandler(w, in, &out, false, render.DefaultStyles(), true)
	require.NoError(t, h.Start(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Found 2 suggestions for 'file':")
	assert.Contains(t, text, " 1. base/file_util.cc http://localhost:8080/base/file_util.cc")
	assert.Contains(t, text, " 2. base/files/file_path.h http://localhost:8080/base/files/file_path.h")
	assert.Contains(t, text, "Selected base/files/file_path.h")
	assert.Contains(t, text, `No entry "7"`)
	assert.Contains(t, text, "No suggestions found for 'zzz'")
	assert.Contains(t, text, `No entry "x"`)
	assert.NotContains(t, text, "\x1b]8;;", "plain output has no hyperlinks")

	assert.Equal(t, []string{"base/files/file_path.h"}, picked)
	assert.Equal(t, 2, h.RequestCount())
}

func TestInputHandlerSelectError(t *testing.T) {
	w := newWidget(t, action.Func(func(string) error { return errors.New("no browser") }))

	var out bytes.Buffer
	h := NewInputHandler(w, strings.NewReader("net\n:1\n"), &out, false, render.PlainStyles(), false)
	require.NoError(t, h.Start(context.Background()))
	assert.Contains(t, out.String(), "no browser")
}
