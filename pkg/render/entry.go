package render

import (
	"github.com/bastiangx/pathserve/pkg/action"
	"github.com/bastiangx/pathserve/pkg/highlight"
	"github.com/bastiangx/pathserve/pkg/suggest"
	"github.com/charmbracelet/log"
)

// Renderer is the set of operations a host list widget needs per row.
type Renderer interface {
	RenderInto(t Target)
	DisplayString() string
	OnSelect() error
}

// Options configure every entry of a widget.
type Options struct {
	// Highlighting off renders the whole path as one plain node.
	Highlighting bool
	// URLTemplate derives the href of the trailing link. Empty disables it.
	URLTemplate action.URLTemplate
	LinkLabel   string
	// Placeholder is shown for candidates without a path.
	Placeholder string
	// OnSelect runs when the entry is picked. Nil does nothing.
	OnSelect action.Action
}

// DefaultLinkLabel is used when Options.LinkLabel is empty.
const DefaultLinkLabel = "open"

// Entry renders one candidate. It holds no state besides the candidate and
// its options, so it can be rendered any number of times.
type Entry struct {
	cand suggest.Candidate
	opts Options
}

var _ Renderer = (*Entry)(nil)

func NewEntry(c suggest.Candidate, opts Options) *Entry {
	return &Entry{cand: c, opts: opts}
}

func (e *Entry) Candidate() suggest.Candidate {
	return e.cand
}

// Segments builds the entry's segments. Malformed ranges fall back to the
// whole path as one plain segment, so a bad record never breaks the list.
func (e *Entry) Segments() []highlight.Segment {
	path := e.cand.Path
	if !e.opts.Highlighting {
		return highlight.PlainSegments(path)
	}
	segments, err := highlight.Build(path, e.cand.MatchRanges)
	if err != nil {
		log.Debugf("Rendering %q without highlights: %v", path, err)
		return highlight.PlainSegments(path)
	}
	return segments
}

// RenderInto appends the entry's text nodes and the optional link to t.
func (e *Entry) RenderInto(t Target) {
	if err := e.cand.Validate(); err != nil {
		log.Debugf("Rendering placeholder: %v", err)
		if e.opts.Placeholder != "" {
			t.AppendText(highlight.Plain, e.opts.Placeholder)
		}
		return
	}

	for _, s := range e.Segments() {
		t.AppendText(s.Kind, s.Text)
	}

	if href := e.opts.URLTemplate.Expand(e.cand.Path); href != "" {
		label := e.opts.LinkLabel
		if label == "" {
			label = DefaultLinkLabel
		}
		t.AppendLink(label, href)
	}
}

// DisplayString is the text that replaces the input token on accept.
func (e *Entry) DisplayString() string {
	return e.cand.Path
}

// String lets entries print as their display string.
func (e *Entry) String() string {
	return e.DisplayString()
}

// OnSelect runs the configured action with the path. Errors are the
// caller's to handle.
func (e *Entry) OnSelect() error {
	if e.opts.OnSelect == nil {
		return nil
	}
	return e.opts.OnSelect.Select(e.cand.Path)
}
