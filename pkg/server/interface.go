/*
Package server answers path completion requests over a pair of streams,
usually stdin/stdout of a child process.

# IPC

Each request carries an id, an optional command and the current input token:

	{"id": "req_001", "token": "file_u", "limit": 20}

The response lists candidates in display order with their matched ranges
(rune indices, inclusive end):

	{"id": "req_001", "token": "file_u", "candidates": [{"path": "base/file_util.cc", "matchRanges": [[5, 10]]}], "count": 1, "time_ms": 0}

A "health" command answers {"status": "ok"}. Failures answer with an error
record and the server keeps reading:

	{"id": "req_002", "error": "missing 'token'", "status": 400}

On start the server writes {"status": "ready"}.

# Codecs

With the json codec every message is one JSON document per line. With the
msgpack codec messages are consecutive MessagePack maps with the same keys.
*/
package server

import "github.com/bastiangx/pathserve/pkg/suggest"

// Commands understood by the server. An empty command means CommandComplete.
const (
	CommandComplete = "complete"
	CommandHealth   = "health"
)

// Request is one incoming message.
type Request struct {
	ID      string `json:"id,omitempty" msgpack:"id,omitempty"`
	Command string `json:"command,omitempty" msgpack:"command,omitempty"`
	Token   string `json:"token" msgpack:"token"`
	Limit   int    `json:"limit,omitempty" msgpack:"limit,omitempty"`
}

// CompletionResponse answers a completion request.
type CompletionResponse struct {
	ID         string           `json:"id" msgpack:"id"`
	Token      string           `json:"token" msgpack:"token"`
	Candidates []suggest.Record `json:"candidates" msgpack:"candidates"`
	Count      int              `json:"count" msgpack:"count"`
	TimeTaken  int64            `json:"time_ms" msgpack:"time_ms"`
}

// StatusResponse is sent on start and for health checks.
type StatusResponse struct {
	ID     string `json:"id,omitempty" msgpack:"id,omitempty"`
	Status string `json:"status" msgpack:"status"`
}

// ErrorResponse reports a request that could not be served.
type ErrorResponse struct {
	ID     string `json:"id,omitempty" msgpack:"id,omitempty"`
	Error  string `json:"error" msgpack:"error"`
	Status int    `json:"status" msgpack:"status"`
}
