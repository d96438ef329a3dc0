package render

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/bastiangx/pathserve/pkg/suggest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLTarget(t *testing.T) {
	target := NewHTMLTarget(DefaultHTMLClasses())
	e := NewEntry(suggest.NewCandidate("a<b>/c&d.cc", rng(0, 2)), Options{
		Highlighting: true,
		URLTemplate:  "http://localhost:8080/?f={path}",
	})
	e.RenderInto(target)

	out := target.String()
	assert.NotContains(t, out, "<b>/c", "text must be escaped")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)

	row := doc.Find("div.ac-row")
	require.Equal(t, 1, row.Length())
	assert.Equal(t, "a<b", row.Find("b.ac-highlighted").Text())
	assert.Equal(t, ">/c&d.cc", row.Find("span.ac-plain").Text())

	link := row.Find("a.ac-open")
	href, ok := link.Attr("href")
	require.True(t, ok)
	assert.Equal(t, "http://localhost:8080/?f=a<b>/c&d.cc", href)
	assert.Equal(t, DefaultLinkLabel, link.Text())

	// children keep render order
	var order []string
	row.Children().Each(func(_ int, s *goquery.Selection) {
		order = append(order, goquery.NodeName(s))
	})
	assert.Equal(t, []string{"b", "span", "a"}, order)
}

func TestHTMLTargetEmptyClasses(t *testing.T) {
	target := NewHTMLTarget(HTMLClasses{})
	NewEntry(suggest.NewCandidate("x"), Options{}).RenderInto(target)
	assert.Equal(t, "<div><span>x</span></div>", target.String())
	assert.NotNil(t, target.Node())
}
