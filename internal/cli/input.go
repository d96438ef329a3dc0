// Package cli is an interactive terminal host for the widget, handy for
// trying out sources and styles before wiring them into an editor.
package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/bastiangx/pathserve/internal/logger"
	"github.com/bastiangx/pathserve/pkg/complete"
	"github.com/bastiangx/pathserve/pkg/render"
	"github.com/charmbracelet/log"
)

// InputHandler reads tokens line by line and prints the rendered entries.
// A line of the form ":N" selects entry N of the last listing.
type InputHandler struct {
	widget     *complete.Widget
	reader     *bufio.Reader
	out        *log.Logger
	styles     render.Styles
	hyperlinks bool

	last         []*render.Entry
	requestCount int
}

// NewInputHandler creates a handler printing to out. Styled output uses
// styles and, when hyperlinks is set, OSC 8 links; otherwise rows are plain.
func NewInputHandler(widget *complete.Widget, in io.Reader, out io.Writer, styled bool, styles render.Styles, hyperlinks bool) *InputHandler {
	if !styled {
		styles = render.PlainStyles()
		hyperlinks = false
	}
	return &InputHandler{
		widget:     widget,
		reader:     bufio.NewReader(in),
		out:        logger.NewTo(out, ""),
		styles:     styles,
		hyperlinks: hyperlinks,
	}
}

// Start runs the prompt loop until input ends or ctx is cancelled.
func (h *InputHandler) Start(ctx context.Context) error {
	h.out.Print("PathServe CLI")
	h.out.Print("type part of a file name and press Enter, :N to pick entry N (Ctrl+C to exit)")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		h.out.Print("> ")
		line, err := h.reader.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			if strings.HasPrefix(line, ":") {
				h.handleSelect(line[1:])
			} else {
				h.handleInput(ctx, line)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (h *InputHandler) handleInput(ctx context.Context, token string) {
	h.requestCount++
	entries, err := h.widget.Entries(ctx, token)
	if err != nil {
		h.out.Errorf("Suggest failed: %v", err)
		return
	}
	h.last = entries
	if len(entries) == 0 {
		h.out.Warnf("No suggestions found for '%s'", token)
		return
	}

	h.out.Printf("Found %d suggestions for '%s':", len(entries), token)
	target := render.NewTermTarget(h.styles, h.hyperlinks)
	for i, e := range entries {
		target.Reset()
		e.RenderInto(target)
		h.out.Printf("%2d. %s", i+1, target.String())
	}
}

func (h *InputHandler) handleSelect(arg string) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > len(h.last) {
		h.out.Errorf("No entry %q in the last listing", arg)
		return
	}
	e := h.last[n-1]
	if err := e.OnSelect(); err != nil {
		h.out.Errorf("Selecting %s: %v", e.DisplayString(), err)
		return
	}
	h.out.Printf("Selected %s", e.DisplayString())
}

// RequestCount is the number of tokens looked up so far.
func (h *InputHandler) RequestCount() int {
	return h.requestCount
}
