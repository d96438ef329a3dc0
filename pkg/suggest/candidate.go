package suggest

import (
	"fmt"

	"github.com/bastiangx/pathserve/pkg/highlight"
)

// Candidate is one suggestion: the full path and the rune ranges of it that
// matched the query.
type Candidate struct {
	Path        string
	MatchRanges []highlight.Range
}

// NewCandidate copies ranges so later changes by the caller don't leak in.
func NewCandidate(path string, ranges ...highlight.Range) Candidate {
	var rs []highlight.Range
	if len(ranges) > 0 {
		rs = make([]highlight.Range, len(ranges))
		copy(rs, ranges)
	}
	return Candidate{Path: path, MatchRanges: rs}
}

// MissingFieldError is returned for a candidate record without a required field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("suggest: candidate is missing %q", e.Field)
}

// Validate reports a *MissingFieldError when the candidate has no path.
// Range problems are left to highlight.Build.
func (c Candidate) Validate() error {
	if c.Path == "" {
		return &MissingFieldError{Field: "path"}
	}
	return nil
}
