// Package complete wires a suggestion source to entry rendering. Setup is the
// one initialization call a host makes; nothing happens on import.
package complete

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/bastiangx/pathserve/pkg/action"
	"github.com/bastiangx/pathserve/pkg/config"
	"github.com/bastiangx/pathserve/pkg/render"
	"github.com/bastiangx/pathserve/pkg/suggest"
	"github.com/charmbracelet/log"
)

// Widget answers input tokens with renderable entries.
type Widget struct {
	src       suggest.Source
	opts      render.Options
	limit     int
	minPrefix int
	maxPrefix int
}

// Option tweaks a Widget during Setup.
type Option func(*Widget)

// WithAction replaces the configured selection action, e.g. with a callback.
func WithAction(a action.Action) Option {
	return func(w *Widget) {
		w.opts.OnSelect = a
	}
}

// Setup builds a widget from cfg. A nil cfg means defaults.
func Setup(cfg *config.Config, src suggest.Source, opts ...Option) (*Widget, error) {
	if src == nil {
		return nil, errors.New("complete: nil suggestion source")
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	for _, warning := range cfg.Validate() {
		log.Warn(warning)
	}

	tmpl := action.URLTemplate(cfg.Widget.URLTemplate)
	onSelect, err := action.FromMode(cfg.Widget.OnSelect, tmpl)
	if err != nil {
		return nil, fmt.Errorf("complete: %w", err)
	}

	w := &Widget{
		src: src,
		opts: render.Options{
			Highlighting: cfg.Widget.Highlighting,
			URLTemplate:  tmpl,
			LinkLabel:    cfg.Widget.LinkLabel,
			Placeholder:  cfg.Widget.Placeholder,
			OnSelect:     onSelect,
		},
		limit:     cfg.Source.Limit,
		minPrefix: cfg.Server.MinPrefix,
		maxPrefix: cfg.Server.MaxPrefix,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Options returns the render options entries are built with.
func (w *Widget) Options() render.Options {
	return w.opts
}

// Entries queries the source and wraps each candidate in source order.
// Tokens outside the configured prefix bounds yield no entries.
func (w *Widget) Entries(ctx context.Context, token string) ([]*render.Entry, error) {
	n := utf8.RuneCountInString(token)
	if n == 0 || n < w.minPrefix || (w.maxPrefix > 0 && n > w.maxPrefix) {
		log.Debugf("Token '%s' outside prefix bounds [%d, %d]", token, w.minPrefix, w.maxPrefix)
		return nil, nil
	}

	candidates, err := w.src.Suggest(ctx, token, w.limit)
	if err != nil {
		return nil, fmt.Errorf("suggest %q: %w", token, err)
	}

	entries := make([]*render.Entry, len(candidates))
	for i, c := range candidates {
		entries[i] = render.NewEntry(c, w.opts)
	}
	return entries, nil
}

// RenderAll renders each entry into the target newTarget returns for it.
func RenderAll[T render.Target](entries []*render.Entry, newTarget func(i int) T) []T {
	out := make([]T, len(entries))
	for i, e := range entries {
		out[i] = newTarget(i)
		e.RenderInto(out[i])
	}
	return out
}
