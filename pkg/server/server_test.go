package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/bastiangx/pathserve/pkg/config"
	"github.com/bastiangx/pathserve/pkg/highlight"
	"github.com/bastiangx/pathserve/pkg/suggest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

var testPaths = []string{
	"base/file_util.cc",
	"base/file_util_unittest.cc",
	"base/files/file_path.h",
	"net/base/net_util.cc",
}

func serverConfig() config.ServerConfig {
	return config.DefaultConfig().Server
}

// runJSON feeds lines to a json server and returns the decoded responses,
// ready message included.
func runJSON(t *testing.T, src suggest.Source, cfg config.ServerConfig, lines ...string) []map[string]any {
	t.Helper()
	var out bytes.Buffer
	srv := NewServer(src, cfg, strings.NewReader(strings.Join(lines, "\n")), &out)
	require.NoError(t, srv.Start(context.Background()))

	var responses []map[string]any
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &m), scanner.Text())
		responses = append(responses, m)
	}
	return responses
}

func TestServerJSONComplete(t *testing.T) {
	responses := runJSON(t, suggest.NewTrieSource(testPaths), serverConfig(),
		`{"id": "req_001", "token": "file_u", "limit": 5}`,
	)
	require.Len(t, responses, 2)
	assert.Equal(t, "ready", responses[0]["status"])

	resp := responses[1]
	assert.Equal(t, "req_001", resp["id"])
	assert.Equal(t, "file_u", resp["token"])
	assert.EqualValues(t, 2, resp["count"])

	data, err := json.Marshal(resp["candidates"])
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"path": "base/file_util.cc", "matchRanges": [[5, 10]]},
		{"path": "base/file_util_unittest.cc", "matchRanges": [[5, 10]]}
	]`, string(data))
}

func TestServerJSONErrors(t *testing.T) {
	cfg := serverConfig()
	cfg.MaxPrefix = 4
	responses := runJSON(t, suggest.NewTrieSource(testPaths), cfg,
		`not json`,
		`{"id": "a"}`,
		`{"id": "b", "token": "toolong"}`,
		`{"id": "c", "command": "dance", "token": "x"}`,
		``,
		`{"id": "d", "command": "health"}`,
	)
	require.Len(t, responses, 6)

	assert.Equal(t, "invalid JSON request", responses[1]["error"])
	assert.EqualValues(t, 400, responses[1]["status"])
	assert.Equal(t, "missing 'token'", responses[2]["error"])
	assert.Contains(t, responses[3]["error"], "maximum length")
	assert.Equal(t, "unknown command: dance", responses[4]["error"])
	assert.Equal(t, map[string]any{"id": "d", "status": "ok"}, responses[5])
}

func TestServerAssignsIDs(t *testing.T) {
	responses := runJSON(t, suggest.NewTrieSource(testPaths), serverConfig(), `{"token": "net"}`)
	require.Len(t, responses, 2)
	id, _ := responses[1]["id"].(string)
	assert.Len(t, id, 36)
}

func TestServerLimitClamp(t *testing.T) {
	var limits []int
	src := suggest.SourceFunc(func(ctx context.Context, token string, limit int) ([]suggest.Candidate, error) {
		limits = append(limits, limit)
		return nil, nil
	})
	cfg := serverConfig()
	cfg.MaxLimit = 10
	cfg.DefaultLimit = 3

	responses := runJSON(t, src, cfg,
		`{"token": "a"}`,
		`{"token": "a", "limit": 500}`,
		`{"token": "a", "limit": 7}`,
	)
	assert.Equal(t, []int{3, 10, 7}, limits)
	assert.Equal(t, []any{}, responses[1]["candidates"])

	t.Run("no default limit", func(t *testing.T) {
		limits = nil
		cfg := serverConfig()
		cfg.MaxLimit = 10
		cfg.DefaultLimit = 0
		runJSON(t, src, cfg, `{"id": "a", "token": "x"}`, `{"id": "b", "token": "x", "limit": -4}`)
		assert.Equal(t, []int{10, 10}, limits)

		limits = nil
		cfg.MaxLimit = 0
		runJSON(t, src, cfg, `{"id": "c", "token": "x"}`)
		assert.Equal(t, []int{1}, limits)
	})
}

func TestServerNormalizesRanges(t *testing.T) {
	src := suggest.Static{
		suggest.NewCandidate("input", highlight.Range{Start: 0, End: 1}, highlight.Range{Start: 2, End: 3}),
		suggest.NewCandidate(""),
	}
	responses := runJSON(t, src, serverConfig(), `{"token": "inpu"}`)
	data, err := json.Marshal(responses[1]["candidates"])
	require.NoError(t, err)
	assert.JSONEq(t, `[{"path": "input", "matchRanges": [[0, 3]]}]`, string(data))
}

func TestServerSourceError(t *testing.T) {
	src := suggest.SourceFunc(func(context.Context, string, int) ([]suggest.Candidate, error) {
		return nil, errors.New("index not loaded")
	})
	responses := runJSON(t, src, serverConfig(), `{"id": "x", "token": "a"}`)
	assert.Equal(t, "index not loaded", responses[1]["error"])
	assert.EqualValues(t, 500, responses[1]["status"])
}

func TestServerMsgpack(t *testing.T) {
	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	require.NoError(t, enc.Encode(Request{ID: "m1", Token: "file_"}))
	require.NoError(t, enc.Encode(Request{ID: "m2", Command: CommandHealth}))

	cfg := serverConfig()
	cfg.Codec = "msgpack"
	var out bytes.Buffer
	srv := NewServer(suggest.NewTrieSource(testPaths), cfg, &in, &out)
	require.NoError(t, srv.Start(context.Background()))
	assert.Equal(t, 2, srv.RequestCount())

	dec := msgpack.NewDecoder(&out)
	var ready StatusResponse
	require.NoError(t, dec.Decode(&ready))
	assert.Equal(t, "ready", ready.Status)

	var resp CompletionResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "m1", resp.ID)
	require.Equal(t, 3, resp.Count)
	assert.Equal(t, suggest.Record{Path: "base/file_util.cc", MatchRanges: [][]int{{5, 9}}}, resp.Candidates[0])

	var health StatusResponse
	require.NoError(t, dec.Decode(&health))
	assert.Equal(t, StatusResponse{ID: "m2", Status: "ok"}, health)
}

func TestServerMsgpackBadRequestKeepsServing(t *testing.T) {
	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	require.NoError(t, enc.Encode(map[string]any{"id": "bad", "token": 123}))
	require.NoError(t, enc.Encode(Request{ID: "good", Token: "file_"}))

	cfg := serverConfig()
	cfg.Codec = "msgpack"
	var out bytes.Buffer
	srv := NewServer(suggest.NewTrieSource(testPaths), cfg, &in, &out)
	require.NoError(t, srv.Start(context.Background()))
	assert.Equal(t, 1, srv.RequestCount())

	dec := msgpack.NewDecoder(&out)
	var ready StatusResponse
	require.NoError(t, dec.Decode(&ready))

	var bad ErrorResponse
	require.NoError(t, dec.Decode(&bad))
	assert.Equal(t, ErrorResponse{Error: "invalid msgpack request", Status: 400}, bad)

	var good CompletionResponse
	require.NoError(t, dec.Decode(&good))
	assert.Equal(t, "good", good.ID)
	assert.Equal(t, 3, good.Count)
}

func TestServerLogger(t *testing.T) {
	srv := NewServer(suggest.Static{}, serverConfig(), strings.NewReader(""), &bytes.Buffer{})
	assert.Equal(t, "server", srv.log.GetPrefix())
}

func TestServerMsgpackGarbage(t *testing.T) {
	cfg := serverConfig()
	cfg.Codec = "msgpack"
	var out bytes.Buffer
	srv := NewServer(suggest.Static{}, cfg, bytes.NewReader([]byte{0xc1}), &out)
	assert.Error(t, srv.Start(context.Background()))
}

func TestServerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	srv := NewServer(suggest.Static{}, serverConfig(), strings.NewReader(`{"token": "a"}`), &out)
	assert.ErrorIs(t, srv.Start(ctx), context.Canceled)
}
