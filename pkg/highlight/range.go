// Package highlight splits a candidate string into plain and highlighted runs
// from the character ranges a suggestion source reported as matching the query.
//
// Ranges are inclusive on both ends and count Unicode code points, so a range
// (1, 2) over "abcdef" covers "bc". A well-formed range list is sorted by
// Start, non-overlapping and within bounds of the string.
package highlight

import (
	"fmt"
	"sort"
)

// Range is a closed interval [Start, End] of rune indices.
type Range struct {
	Start int
	End   int
}

// Len returns the number of runes covered by r.
func (r Range) Len() int {
	return r.End - r.Start + 1
}

// MalformedRangesError reports the first range that breaks the sortedness,
// non-overlap or bounds requirements.
type MalformedRangesError struct {
	Index  int
	Range  Range
	Length int
	Reason string
}

func (e *MalformedRangesError) Error() string {
	return fmt.Sprintf("highlight: malformed range #%d [%d,%d] over %d runes: %s",
		e.Index, e.Range.Start, e.Range.End, e.Length, e.Reason)
}

// Validate checks ranges against a string of length runes.
func Validate(length int, ranges []Range) error {
	prevEnd := -1
	for i, r := range ranges {
		reason := ""
		switch {
		case r.Start < 0:
			reason = "start is negative"
		case r.End < r.Start:
			reason = "end before start"
		case r.End >= length:
			reason = "end out of bounds"
		case r.Start <= prevEnd:
			reason = "overlaps or precedes previous range"
		}
		if reason != "" {
			return &MalformedRangesError{Index: i, Range: r, Length: length, Reason: reason}
		}
		prevEnd = r.End
	}
	return nil
}

// Coalesce returns a sorted copy of ranges where overlapping and adjacent
// ranges are merged into one. Build never does this on its own; producers
// call it before handing ranges out.
func Coalesce(ranges []Range) []Range {
	if len(ranges) == 0 {
		return nil
	}
	sorted := make([]Range, len(ranges))
	copy(sorted, ranges)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	merged := make([]Range, 0, len(sorted))
	current := sorted[0]
	for _, next := range sorted[1:] {
		if next.Start <= current.End+1 {
			if next.End > current.End {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}
