package highlight

import "strings"

// Kind tells a renderer how to style a segment.
type Kind uint8

const (
	Plain Kind = iota
	Highlighted
)

func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Highlighted:
		return "highlighted"
	default:
		return "unknown"
	}
}

// Segment is one contiguous run of the rendered string.
type Segment struct {
	Kind Kind
	Text string
}

// Build walks ranges once with a cursor and returns the segments covering
// path in order. Concatenating the Text of the result always gives back path.
//
// An empty path yields no segments. Ranges are validated before anything is
// emitted; on failure the error is a *MalformedRangesError and the segment
// slice is nil.
func Build(path string, ranges []Range) ([]Segment, error) {
	runes := []rune(path)
	if err := Validate(len(runes), ranges); err != nil {
		return nil, err
	}
	if len(runes) == 0 {
		return nil, nil
	}

	segments := make([]Segment, 0, 2*len(ranges)+1)
	cursor := 0
	for _, r := range ranges {
		if cursor < r.Start {
			segments = append(segments, Segment{Kind: Plain, Text: string(runes[cursor:r.Start])})
		}
		segments = append(segments, Segment{Kind: Highlighted, Text: string(runes[r.Start : r.End+1])})
		cursor = r.End + 1
	}
	if cursor < len(runes) {
		segments = append(segments, Segment{Kind: Plain, Text: string(runes[cursor:])})
	}
	return segments, nil
}

// PlainSegments returns path as a single plain segment, or nothing for an
// empty path.
func PlainSegments(path string) []Segment {
	if path == "" {
		return nil
	}
	return []Segment{{Kind: Plain, Text: path}}
}

// Join concatenates segment texts.
func Join(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Text)
	}
	return b.String()
}
