package render

import (
	"io"
	"strings"

	"github.com/bastiangx/pathserve/pkg/highlight"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLClasses are the CSS classes put on generated elements.
type HTMLClasses struct {
	Row         string
	Plain       string
	Highlighted string
	Link        string
}

func DefaultHTMLClasses() HTMLClasses {
	return HTMLClasses{
		Row:         "ac-row",
		Plain:       "ac-plain",
		Highlighted: "ac-highlighted",
		Link:        "ac-open",
	}
}

// HTMLTarget builds a <div> row: plain runs become <span>, highlighted runs
// <b>, and the link an <a>. Text is escaped when rendered.
type HTMLTarget struct {
	classes HTMLClasses
	root    *html.Node
}

func NewHTMLTarget(classes HTMLClasses) *HTMLTarget {
	return &HTMLTarget{
		classes: classes,
		root:    element(atom.Div, classes.Row),
	}
}

func (t *HTMLTarget) AppendText(kind highlight.Kind, text string) {
	n := element(atom.Span, t.classes.Plain)
	if kind == highlight.Highlighted {
		n = element(atom.B, t.classes.Highlighted)
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	t.root.AppendChild(n)
}

func (t *HTMLTarget) AppendLink(label, href string) {
	n := element(atom.A, t.classes.Link)
	n.Attr = append(n.Attr, html.Attribute{Key: "href", Val: href})
	n.AppendChild(&html.Node{Type: html.TextNode, Data: label})
	t.root.AppendChild(n)
}

// Node returns the row element, for hosts that assemble a larger tree.
func (t *HTMLTarget) Node() *html.Node {
	return t.root
}

func (t *HTMLTarget) Render(w io.Writer) error {
	return html.Render(w, t.root)
}

func (t *HTMLTarget) String() string {
	var b strings.Builder
	if err := t.Render(&b); err != nil {
		return ""
	}
	return b.String()
}

func element(a atom.Atom, class string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if class != "" {
		n.Attr = []html.Attribute{{Key: "class", Val: class}}
	}
	return n
}
