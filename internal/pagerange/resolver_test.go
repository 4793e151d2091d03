package pagerange

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		pageCount  int
		expected   []int
		warnings   int
	}{
		{name: "single page", expression: "1", pageCount: 1, expected: []int{0}},
		{name: "empty expression", expression: "", pageCount: 5, expected: []int{}},
		{name: "start below one", expression: "0-3", pageCount: 5, expected: []int{}, warnings: 1},
		{name: "start after end", expression: "3-1", pageCount: 5, expected: []int{}, warnings: 1},
		{name: "overlapping tokens", expression: "1-3,2,3", pageCount: 5, expected: []int{0, 1, 2}},
		{name: "mixed valid and invalid", expression: "1,99,2", pageCount: 5, expected: []int{0, 1}, warnings: 1},
		{name: "last page", expression: "5", pageCount: 5, expected: []int{4}},
		{name: "past last page", expression: "6", pageCount: 5, expected: []int{}, warnings: 1},
		{name: "unordered tokens come back sorted", expression: "8, 1-2, 5", pageCount: 10, expected: []int{0, 1, 4, 7}},
		{name: "stray commas and whitespace", expression: " , 2 ,, ,3,", pageCount: 4, expected: []int{1, 2}},
		{name: "whitespace around hyphen", expression: "2 - 4", pageCount: 4, expected: []int{1, 2, 3}},
		{name: "non numeric token", expression: "abc", pageCount: 5, expected: []int{}, warnings: 1},
		{name: "non numeric range bound", expression: "1-x", pageCount: 5, expected: []int{}, warnings: 1},
		{name: "open ended range", expression: "3-", pageCount: 5, expected: []int{}, warnings: 1},
		{name: "extra bounds are ignored", expression: "1-2-3", pageCount: 5, expected: []int{0, 1}},
		{name: "extra bounds still validated as a range", expression: "4-2-5", pageCount: 5, expected: []int{}, warnings: 1},
		{name: "fractional page", expression: "1.5", pageCount: 5, expected: []int{}, warnings: 1},
		{name: "zero page count", expression: "1,1-1", pageCount: 0, expected: []int{}, warnings: 2},
		{name: "end beyond count", expression: "4-9", pageCount: 5, expected: []int{}, warnings: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := Resolve(tt.expression, tt.pageCount)
			assert.Equal(t, tt.expected, sel.Indices)
			assert.Len(t, sel.Warnings, tt.warnings)
		})
	}
}

func TestResolve_WarningReasons(t *testing.T) {
	sel := Resolve("abc, 0-2, 3-9, 4-2, 7, 1-2-3", 5)

	assert.Equal(t, []int{0, 1}, sel.Indices)
	require.Len(t, sel.Warnings, 5)
	reasons := make([]string, len(sel.Warnings))
	for i, w := range sel.Warnings {
		reasons[i] = w.Reason
		assert.Equal(t, 5, w.PageCount)
	}
	assert.Equal(t, []string{
		ReasonNotANumber,
		ReasonStartBelowOne,
		ReasonEndBeyondCount,
		ReasonStartAfterEnd,
		ReasonPageOutOfRange,
	}, reasons)

	assert.Equal(t, "0-2", sel.Warnings[1].Token)
	assert.Contains(t, sel.Warnings[1].Error(), "invalid range: 0-2")
	assert.Contains(t, sel.Warnings[4].Error(), "invalid page number: 7")
	assert.Contains(t, sel.Warnings[4].Error(), "within 1-5")
}

func TestResolve_WhitespaceTokensAreNotWarned(t *testing.T) {
	sel := Resolve("   ,\t,  ", 3)

	assert.True(t, sel.Empty())
	assert.Empty(t, sel.Warnings)
}

func TestResolve_RangesCoverEveryPageOnce(t *testing.T) {
	const pageCount = 20
	for start := 1; start <= pageCount; start++ {
		for end := start; end <= pageCount; end++ {
			expr := fmt.Sprintf("%d-%d,%d", start, end, start)
			sel := Resolve(expr, pageCount)

			require.Len(t, sel.Indices, end-start+1, expr)
			for i, idx := range sel.Indices {
				assert.Equal(t, start-1+i, idx, expr)
			}
		}
	}
}

func TestResolve_Deterministic(t *testing.T) {
	expr := "9, 2-4, 3, x, 7-6, 1"
	first := Resolve(expr, 10)
	second := Resolve(expr, 10)

	assert.Equal(t, first, second)
	for i := 1; i < len(first.Indices); i++ {
		assert.Less(t, first.Indices[i-1], first.Indices[i])
	}
}

func TestResolve_ConcurrentCallers(t *testing.T) {
	var wg sync.WaitGroup
	results := make([][]int, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Resolve("1-3,5,2", 6).Indices
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, []int{0, 1, 2, 4}, r)
	}
}

func TestSelection_PageNumbers(t *testing.T) {
	sel := Resolve("3,1", 3)
	assert.Equal(t, []int{1, 3}, sel.PageNumbers())
	assert.False(t, sel.Empty())
}

func TestPlanPerPageSplit(t *testing.T) {
	assert.Equal(t, [][]int{{0}, {1}, {2}}, PlanPerPageSplit(3))
	assert.Equal(t, [][]int{{0}}, PlanPerPageSplit(1))
	assert.Empty(t, PlanPerPageSplit(0))
	assert.Empty(t, PlanPerPageSplit(-2))
}
