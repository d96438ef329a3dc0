package suggest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/bastiangx/pathserve/pkg/highlight"
	"github.com/charmbracelet/log"
)

// Record is the wire form of a Candidate. Ranges are two-element arrays with
// an inclusive end:
//
//	{"path": "base/file_util.cc", "matchRanges": [[5, 8], [10, 10]]}
//
// Older services send the ranges as "path_highlight_ranges"; both are read,
// only matchRanges is written.
type Record struct {
	Path                string  `json:"path" msgpack:"path"`
	MatchRanges         [][]int `json:"matchRanges,omitempty" msgpack:"matchRanges,omitempty"`
	PathHighlightRanges [][]int `json:"path_highlight_ranges,omitempty" msgpack:"path_highlight_ranges,omitempty"`
}

// ToRecord converts a candidate to its wire form.
func ToRecord(c Candidate) Record {
	r := Record{Path: c.Path}
	if len(c.MatchRanges) > 0 {
		r.MatchRanges = make([][]int, len(c.MatchRanges))
		for i, rg := range c.MatchRanges {
			r.MatchRanges[i] = []int{rg.Start, rg.End}
		}
	}
	return r
}

// Candidate converts a record back. A range that is not a pair drops all of
// the record's ranges, so the entry still shows up, just without highlights.
func (r Record) Candidate() Candidate {
	raw := r.MatchRanges
	if raw == nil {
		raw = r.PathHighlightRanges
	}
	if len(raw) == 0 {
		return Candidate{Path: r.Path}
	}

	ranges := make([]highlight.Range, 0, len(raw))
	for i, pair := range raw {
		if len(pair) != 2 {
			log.Warnf("Dropping ranges of %q: range #%d has %d elements", r.Path, i, len(pair))
			return Candidate{Path: r.Path}
		}
		ranges = append(ranges, highlight.Range{Start: pair[0], End: pair[1]})
	}
	return Candidate{Path: r.Path, MatchRanges: ranges}
}

// DecodeResponse parses a suggestion response. Two shapes are accepted: a
// plain array of records, and the grouped rich-remote envelope where each
// group is an array whose first element is the group name:
//
//	[["filenames", {"path": "input", "path_highlight_ranges": [[0, 1]]}]]
//
// Records keep their order across groups.
func DecodeResponse(data []byte) ([]Candidate, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	var out []Candidate
	for i, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 {
			continue
		}
		switch item[0] {
		case '{':
			c, err := decodeRecord(item)
			if err != nil {
				return nil, fmt.Errorf("decode response item %d: %w", i, err)
			}
			out = append(out, c)
		case '[':
			group, err := decodeGroup(item)
			if err != nil {
				return nil, fmt.Errorf("decode response group %d: %w", i, err)
			}
			out = append(out, group...)
		default:
			return nil, fmt.Errorf("decode response item %d: unexpected %s", i, item)
		}
	}
	return out, nil
}

func decodeGroup(data []byte) ([]Candidate, error) {
	var members []json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, err
	}

	var out []Candidate
	for _, m := range members {
		m = bytes.TrimSpace(m)
		if len(m) == 0 || m[0] != '{' {
			// group name or other annotations
			continue
		}
		c, err := decodeRecord(m)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func decodeRecord(data []byte) (Candidate, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Candidate{}, err
	}
	c := r.Candidate()
	if err := c.Validate(); err != nil {
		log.Debugf("Keeping placeholder candidate: %v", err)
	}
	return c, nil
}

// EncodeResponse writes candidates as a plain JSON array of records.
func EncodeResponse(candidates []Candidate) ([]byte, error) {
	records := make([]Record, len(candidates))
	for i, c := range candidates {
		records[i] = ToRecord(c)
	}
	return json.Marshal(records)
}
