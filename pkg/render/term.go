package render

import (
	"strings"

	"github.com/bastiangx/pathserve/pkg/highlight"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss style of each node kind.
type Styles struct {
	Plain     lipgloss.Style
	Highlight lipgloss.Style
	Link      lipgloss.Style
}

// NewStyles builds styles from ANSI or hex colors. Empty colors leave the
// terminal default.
func NewStyles(plainFg, highlightFg, linkFg string, bold bool) Styles {
	s := Styles{
		Plain:     lipgloss.NewStyle(),
		Highlight: lipgloss.NewStyle().Bold(bold),
		Link:      lipgloss.NewStyle().Underline(true),
	}
	if plainFg != "" {
		s.Plain = s.Plain.Foreground(lipgloss.Color(plainFg))
	}
	if highlightFg != "" {
		s.Highlight = s.Highlight.Foreground(lipgloss.Color(highlightFg))
	}
	if linkFg != "" {
		s.Link = s.Link.Foreground(lipgloss.Color(linkFg))
	}
	return s
}

func DefaultStyles() Styles {
	return NewStyles("", "75", "244", true)
}

// PlainStyles leaves every node unstyled, for output that is not a terminal.
func PlainStyles() Styles {
	return Styles{
		Plain:     lipgloss.NewStyle(),
		Highlight: lipgloss.NewStyle(),
		Link:      lipgloss.NewStyle(),
	}
}

// TermTarget renders nodes as one line of styled terminal text. Links are
// OSC 8 hyperlinks when Hyperlinks is set, the bare URL otherwise.
type TermTarget struct {
	Styles     Styles
	Hyperlinks bool

	b strings.Builder
}

func NewTermTarget(styles Styles, hyperlinks bool) *TermTarget {
	return &TermTarget{Styles: styles, Hyperlinks: hyperlinks}
}

func (t *TermTarget) AppendText(kind highlight.Kind, text string) {
	style := t.Styles.Plain
	if kind == highlight.Highlighted {
		style = t.Styles.Highlight
	}
	t.b.WriteString(style.Render(text))
}

func (t *TermTarget) AppendLink(label, href string) {
	t.b.WriteString(" ")
	if t.Hyperlinks {
		t.b.WriteString(termenv.Hyperlink(href, t.Styles.Link.Render(label)))
		return
	}
	t.b.WriteString(t.Styles.Link.Render(href))
}

func (t *TermTarget) String() string {
	return t.b.String()
}

func (t *TermTarget) Reset() {
	t.b.Reset()
}
