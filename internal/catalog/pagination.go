package catalog

import (
	"math"
	"sort"
)

// DefaultPageSize is the fixed domain default for listing pages.
const DefaultPageSize = 20

// Ellipsis is the gap marker emitted by PageRange. It stands in for two or
// more skipped pages and is purely for display.
const Ellipsis = "..."

// TotalPages returns ceil(totalCount / pageSize). Zero rows means zero pages.
func TotalPages(totalCount, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalCount) / float64(pageSize)))
}

// Offset returns the row offset for the requested page. The raw page value
// is passed through; callers clamp before asking for an offset.
func Offset(page, pageSize int) int {
	return (page - 1) * pageSize
}

// PageRange compresses the full page list into the tokens a page-number
// control renders: page numbers as ints and Ellipsis strings for gaps. The
// endpoints, the two pages before the last, and the pages within two of the
// current page are always kept; a gap of exactly one page is filled in
// literally instead of eliding it.
func PageRange(currentPage, totalPages int) []interface{} {
	if totalPages <= 7 {
		result := make([]interface{}, 0, totalPages)
		for p := 1; p <= totalPages; p++ {
			result = append(result, p)
		}
		return result
	}

	keep := map[int]struct{}{1: {}, totalPages: {}}
	for p := currentPage - 2; p <= currentPage+2; p++ {
		if p > 1 && p < totalPages {
			keep[p] = struct{}{}
		}
	}
	if totalPages > 3 {
		keep[totalPages-1] = struct{}{}
		keep[totalPages-2] = struct{}{}
	}

	pages := make([]int, 0, len(keep))
	for p := range keep {
		pages = append(pages, p)
	}
	sort.Ints(pages)

	result := make([]interface{}, 0, len(pages)+2)
	prev := 0
	for _, p := range pages {
		if prev != 0 {
			if p-prev == 2 {
				result = append(result, prev+1)
			} else if p-prev > 2 {
				result = append(result, Ellipsis)
			}
		}
		result = append(result, p)
		prev = p
	}
	return result
}
