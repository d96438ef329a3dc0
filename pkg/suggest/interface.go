// Package suggest holds the candidate model shared by suggestion sources and
// renderers, the wire format sources answer with, and a few reference sources
// for hosting the widget without a remote service.
package suggest

import "context"

// Source returns ranked candidates for the current input token. The order of
// the returned slice is the display order.
type Source interface {
	Suggest(ctx context.Context, token string, limit int) ([]Candidate, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, token string, limit int) ([]Candidate, error)

func (f SourceFunc) Suggest(ctx context.Context, token string, limit int) ([]Candidate, error) {
	return f(ctx, token, limit)
}

// Static always answers with the same candidates, truncated to limit.
type Static []Candidate

func (s Static) Suggest(ctx context.Context, token string, limit int) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := []Candidate(s)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
