package aggregate

// PageSize is fixed across every listing screen.
const PageSize = 20

const windowSize = 5

// Paginate returns the clamped half-open slice bounds [lo, hi) for a 1-based
// page over a sequence of length n, plus the total page count. An
// out-of-range page yields lo == hi rather than an error; navigation controls
// are expected to clamp, the slice math stays defensive either way.
func Paginate(n, page int) (lo, hi, totalPages int) {
	totalPages = (n + PageSize - 1) / PageSize
	if page < 1 || n == 0 {
		return 0, 0, totalPages
	}
	lo = (page - 1) * PageSize
	if lo >= n {
		return n, n, totalPages
	}
	hi = lo + PageSize
	if hi > n {
		hi = n
	}
	return lo, hi, totalPages
}

// PageWindow returns the sliding window of at most 5 page numbers shown as
// pagination buttons: all pages when few enough, otherwise 1..5 near the
// start, the last 5 near the end, and page±2 in the middle.
func PageWindow(page, totalPages int) []int {
	if totalPages <= 0 {
		return nil
	}
	if totalPages <= windowSize {
		pages := make([]int, totalPages)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}

	var start int
	switch {
	case page <= 3:
		start = 1
	case page >= totalPages-2:
		start = totalPages - windowSize + 1
	default:
		start = page - 2
	}

	pages := make([]int, windowSize)
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}
