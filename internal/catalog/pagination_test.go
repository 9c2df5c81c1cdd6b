package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(1, 20))
	assert.Equal(t, 1, TotalPages(20, 20))
	assert.Equal(t, 2, TotalPages(21, 20))
	assert.Equal(t, 5, TotalPages(100, 20))
	assert.Equal(t, 0, TotalPages(100, 0))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 20))
	assert.Equal(t, 40, Offset(3, 20))
	assert.Equal(t, 180, Offset(10, 20))
}

func TestPageRange_ShortListsAreComplete(t *testing.T) {
	assert.Equal(t, []interface{}{1, 2, 3, 4, 5}, PageRange(2, 5))
	assert.Equal(t, []interface{}{1, 2, 3, 4, 5, 6, 7}, PageRange(7, 7))
	assert.Empty(t, PageRange(1, 0))
}

func TestPageRange_FillsSingleGapLiterally(t *testing.T) {
	// Kept pages 1 and 3 differ by exactly 2, so 2 is inserted instead of
	// an ellipsis.
	got := PageRange(5, 100)
	assert.Equal(t, []interface{}{1, 2, 3, 4, 5, 6, 7, Ellipsis, 98, 99, 100}, got)
}

func TestPageRange_InsertsEllipsisForWideGaps(t *testing.T) {
	got := PageRange(50, 100)
	assert.Equal(t, []interface{}{1, Ellipsis, 48, 49, 50, 51, 52, Ellipsis, 98, 99, 100}, got)
}

func TestPageRange_CurrentNearStart(t *testing.T) {
	got := PageRange(1, 10)
	assert.Equal(t, []interface{}{1, 2, 3, Ellipsis, 8, 9, 10}, got)
}

func TestPageRange_CurrentNearEnd(t *testing.T) {
	got := PageRange(97, 100)
	assert.Equal(t, []interface{}{1, Ellipsis, 95, 96, 97, 98, 99, 100}, got)
}

func TestPageRange_ContainsSingleEllipsisPerGap(t *testing.T) {
	got := PageRange(50, 1000)
	ellipses := 0
	for _, token := range got {
		if token == Ellipsis {
			ellipses++
		}
	}
	assert.Equal(t, 2, ellipses)
}
