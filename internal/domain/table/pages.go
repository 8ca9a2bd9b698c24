package table

import "github.com/okian/mintboard/internal/domain/types"

const maxVisiblePages = 5

// PageNumbers returns the page buttons for current out of total pages.
// Up to five pages are listed in full; beyond that the first and last page
// are always shown with a window around current and ellipses for the gaps.
func PageNumbers(current, total int) []types.PageIndicator {
	var pages []int
	switch {
	case total <= 0:
		return []types.PageIndicator{}
	case total <= maxVisiblePages:
		for p := 1; p <= total; p++ {
			pages = append(pages, p)
		}
	case current <= 3:
		pages = []int{1, 2, 3, 4, 0, total}
	case current >= total-2:
		pages = []int{1, 0, total - 3, total - 2, total - 1, total}
	default:
		pages = []int{1, 0, current - 1, current, current + 1, 0, total}
	}

	out := make([]types.PageIndicator, len(pages))
	for i, p := range pages {
		if p == 0 {
			out[i] = types.PageIndicator{Ellipsis: true}
			continue
		}
		out[i] = types.PageIndicator{Page: p, Current: p == current}
	}
	return out
}
