// Package pagerange turns free-form page range expressions such as
// "1-5, 8, 10-12" into zero-based page indices for a document of known size.
package pagerange

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Reasons attached to an InvalidTokenError
const (
	ReasonNotANumber     = "not a number"
	ReasonStartBelowOne  = "start below 1"
	ReasonEndBeyondCount = "end beyond page count"
	ReasonStartAfterEnd  = "start after end"
	ReasonPageOutOfRange = "page out of range"
)

// InvalidTokenError reports a single range token that was skipped.
// It never aborts resolution of the remaining tokens.
type InvalidTokenError struct {
	Token     string
	PageCount int
	Reason    string
}

func (e *InvalidTokenError) Error() string {
	if strings.Contains(e.Token, "-") {
		return fmt.Sprintf("invalid range: %s (%s). Pages must be within 1-%d", e.Token, e.Reason, e.PageCount)
	}
	return fmt.Sprintf("invalid page number: %s (%s). Page must be within 1-%d", e.Token, e.Reason, e.PageCount)
}

// Selection is the outcome of resolving an expression
type Selection struct {
	// Indices are zero-based, unique and strictly ascending
	Indices []int
	// Warnings holds one entry per rejected token, in input order
	Warnings []*InvalidTokenError
}

// Empty reports whether no page was selected
func (s Selection) Empty() bool {
	return len(s.Indices) == 0
}

// PageNumbers returns the selection as one-based page numbers
func (s Selection) PageNumbers() []int {
	numbers := make([]int, len(s.Indices))
	for i, idx := range s.Indices {
		numbers[i] = idx + 1
	}
	return numbers
}

// Resolve parses a comma-separated expression against pageCount.
//
// An empty expression yields an empty selection without warnings; rejecting
// that state is left to the caller.
func Resolve(expression string, pageCount int) Selection {
	set := make(map[int]struct{})
	var warnings []*InvalidTokenError

	for _, part := range strings.Split(expression, ",") {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}

		start, end, reason := parseToken(token, pageCount)
		if reason != "" {
			warnings = append(warnings, &InvalidTokenError{
				Token:     token,
				PageCount: pageCount,
				Reason:    reason,
			})
			continue
		}

		for page := start; page <= end; page++ {
			set[page-1] = struct{}{}
		}
	}

	indices := make([]int, 0, len(set))
	for idx := range set {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	return Selection{Indices: indices, Warnings: warnings}
}

// parseToken returns the one-based inclusive bounds of a token, or a non-empty reason
func parseToken(token string, pageCount int) (int, int, string) {
	if !strings.Contains(token, "-") {
		n, err := strconv.Atoi(token)
		if err != nil {
			return 0, 0, ReasonNotANumber
		}
		if n < 1 || n > pageCount {
			return 0, 0, ReasonPageOutOfRange
		}
		return n, n, ""
	}

	// bounds past the second are ignored, so 1-2-3 reads as 1-2
	bounds := strings.Split(token, "-")

	start, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
	if err != nil {
		return 0, 0, ReasonNotANumber
	}
	end, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
	if err != nil {
		return 0, 0, ReasonNotANumber
	}

	switch {
	case start < 1:
		return 0, 0, ReasonStartBelowOne
	case end > pageCount:
		return 0, 0, ReasonEndBeyondCount
	case start > end:
		return 0, 0, ReasonStartAfterEnd
	}
	return start, end, ""
}

// PlanPerPageSplit isolates every page into its own singleton index set,
// ordered by page number.
func PlanPerPageSplit(pageCount int) [][]int {
	if pageCount <= 0 {
		return [][]int{}
	}
	plan := make([][]int, pageCount)
	for i := range plan {
		plan[i] = []int{i}
	}
	return plan
}
