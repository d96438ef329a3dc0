package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/pathserve/internal/logger"
	"github.com/bastiangx/pathserve/pkg/config"
	"github.com/bastiangx/pathserve/pkg/highlight"
	"github.com/bastiangx/pathserve/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for path completions
type Server struct {
	src    suggest.Source
	cfg    config.ServerConfig
	reader *bufio.Reader
	writer io.Writer
	log    *log.Logger

	requestCount int
}

// NewServer creates a completion server reading requests from in and
// writing responses to out.
func NewServer(src suggest.Source, cfg config.ServerConfig, in io.Reader, out io.Writer) *Server {
	return &Server{
		src:    src,
		cfg:    cfg,
		reader: bufio.NewReader(in),
		writer: out,
		log:    logger.New("server"),
	}
}

// Start serves requests until the input ends or ctx is cancelled. A clean
// end of input returns nil.
func (s *Server) Start(ctx context.Context) error {
	s.log.Debug("Starting server", "codec", s.cfg.Codec)
	if s.cfg.Codec == "msgpack" {
		return s.serveMsgpack(ctx)
	}
	return s.serveJSON(ctx)
}

func (s *Server) serveJSON(ctx context.Context) error {
	send := func(v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			s.log.Errorf("Marshaling response: %v", err)
			data, _ = json.Marshal(ErrorResponse{Error: "internal server error", Status: 500})
		}
		_, err = fmt.Fprintln(s.writer, string(data))
		return err
	}

	if err := send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := s.reader.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			var req Request
			var resp any
			if uerr := json.Unmarshal([]byte(line), &req); uerr != nil {
				s.log.Errorf("Unmarshaling request: %v", uerr)
				resp = ErrorResponse{Error: "invalid JSON request", Status: 400}
			} else {
				resp = s.handle(ctx, req)
			}
			if serr := send(resp); serr != nil {
				return serr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.log.Errorf("Reading requests: %v", err)
			return err
		}
	}
}

func (s *Server) serveMsgpack(ctx context.Context) error {
	dec := msgpack.NewDecoder(s.reader)
	enc := msgpack.NewEncoder(s.writer)

	if err := enc.Encode(StatusResponse{Status: "ready"}); err != nil {
		return err
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var raw msgpack.RawMessage
		if err := dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			// not MessagePack at all, the stream can't be resynced
			s.log.Errorf("Decoding request: %v", err)
			_ = enc.Encode(ErrorResponse{Error: "invalid msgpack request", Status: 400})
			return err
		}

		var resp any
		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.log.Errorf("Unmarshaling request: %v", err)
			resp = ErrorResponse{Error: "invalid msgpack request", Status: 400}
		} else {
			resp = s.handle(ctx, req)
		}
		if err := enc.Encode(resp); err != nil {
			return err
		}
	}
}

// handle dispatches one decoded request and returns the response value.
func (s *Server) handle(ctx context.Context, req Request) any {
	s.requestCount++
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	switch req.Command {
	case "", CommandComplete:
		return s.handleComplete(ctx, req)
	case CommandHealth:
		return StatusResponse{ID: req.ID, Status: "ok"}
	default:
		return ErrorResponse{ID: req.ID, Error: fmt.Sprintf("unknown command: %s", req.Command), Status: 400}
	}
}

// handleComplete validates the token, asks the source and normalizes ranges
// before they go out: adjacent and overlapping ranges are merged here, on the
// producing side, so clients never have to.
func (s *Server) handleComplete(ctx context.Context, req Request) any {
	token := req.Token
	n := utf8.RuneCountInString(token)
	switch {
	case token == "":
		s.log.Debug("Token is empty in request")
		return ErrorResponse{ID: req.ID, Error: "missing 'token'", Status: 400}
	case n < s.cfg.MinPrefix:
		return ErrorResponse{ID: req.ID, Error: fmt.Sprintf("token must be at least %d characters", s.cfg.MinPrefix), Status: 400}
	case s.cfg.MaxPrefix > 0 && n > s.cfg.MaxPrefix:
		return ErrorResponse{ID: req.ID, Error: fmt.Sprintf("token exceeds maximum length of %d characters", s.cfg.MaxPrefix), Status: 400}
	}

	limit := req.Limit
	if limit < 1 {
		limit = s.cfg.DefaultLimit
	}
	if limit < 1 {
		limit = s.cfg.MaxLimit
	}
	if s.cfg.MaxLimit > 0 && limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}
	// sources read 0 as unlimited
	limit = max(limit, 1)

	start := time.Now()
	candidates, err := s.src.Suggest(ctx, token, limit)
	elapsed := time.Since(start)
	if err != nil {
		s.log.Errorf("Suggesting for '%s': %v", token, err)
		return ErrorResponse{ID: req.ID, Error: err.Error(), Status: 500}
	}
	s.log.Debugf("Took [ %v ] for token '%s'", elapsed, token)

	records := make([]suggest.Record, 0, len(candidates))
	for _, c := range candidates {
		if c.Path == "" {
			continue
		}
		c.MatchRanges = highlight.Coalesce(c.MatchRanges)
		records = append(records, suggest.ToRecord(c))
	}

	return CompletionResponse{
		ID:         req.ID,
		Token:      token,
		Candidates: records,
		Count:      len(records),
		TimeTaken:  elapsed.Milliseconds(),
	}
}

// RequestCount is the number of requests handled so far.
func (s *Server) RequestCount() int {
	return s.requestCount
}
