// Package render turns suggestion candidates into display entries.
//
// An Entry knows how to draw one candidate into a Target, which string
// replaces the input token when the candidate is accepted, and what to do
// when the user picks it. Targets only need two primitives, appending a
// styled text node and appending a link node, so the same Entry renders to a
// terminal, an HTML fragment or a plain recorder.
package render

import "github.com/bastiangx/pathserve/pkg/highlight"

// Target is a display surface that entries append nodes to.
type Target interface {
	AppendText(kind highlight.Kind, text string)
	AppendLink(label, href string)
}

// Node is one appended item of a Recorder. Href is set for links only.
type Node struct {
	Kind highlight.Kind
	Text string
	Href string
}

func (n Node) IsLink() bool {
	return n.Href != ""
}

// Recorder is a Target that keeps the appended nodes in order.
type Recorder struct {
	Nodes []Node
}

func (r *Recorder) AppendText(kind highlight.Kind, text string) {
	r.Nodes = append(r.Nodes, Node{Kind: kind, Text: text})
}

func (r *Recorder) AppendLink(label, href string) {
	r.Nodes = append(r.Nodes, Node{Kind: highlight.Plain, Text: label, Href: href})
}

// Segments returns the text nodes as segments, links left out.
func (r *Recorder) Segments() []highlight.Segment {
	var out []highlight.Segment
	for _, n := range r.Nodes {
		if n.IsLink() {
			continue
		}
		out = append(out, highlight.Segment{Kind: n.Kind, Text: n.Text})
	}
	return out
}

// Links returns the hrefs of appended links.
func (r *Recorder) Links() []string {
	var out []string
	for _, n := range r.Nodes {
		if n.IsLink() {
			out = append(out, n.Href)
		}
	}
	return out
}
