package models

// NavigationWindow is the bounded set of page numbers offered for direct
// navigation, with ellipsis flags for the ranges hidden on either side.
//
// Invariants (for totalPages >= 1):
//   - len(VisiblePages) == min(totalPages, maxVisible)
//   - CurrentPage is always an element of VisiblePages
//   - ShowStartEllipsis implies VisiblePages[0] > 1
//   - ShowEndEllipsis implies VisiblePages[last] < totalPages
type NavigationWindow struct {
	CurrentPage       int
	TotalPages        int
	VisiblePages      []int
	ShowStartEllipsis bool
	ShowEndEllipsis   bool
}

// MaxVisible converts a side-page radius into a window width: the current
// page plus sidePages neighbors on each side.
func MaxVisible(sidePages int) int {
	return 2*sidePages + 1
}

// NewNavigationWindow computes the sliding window of visible page numbers
// around currentPage. maxVisible is the maximum window width (use MaxVisible
// to derive it from a radius).
//
// When the full page range fits, the window is simply [1..totalPages]. Near
// the end of the range the window start is pulled back so the window keeps
// its full width; without that re-anchoring a window centered on the last
// pages would come up short.
func NewNavigationWindow(currentPage, totalPages, maxVisible int) NavigationWindow {
	if totalPages < 1 {
		totalPages = 1
	}
	if maxVisible < 1 {
		maxVisible = 1
	}

	if totalPages <= maxVisible {
		visible := make([]int, totalPages)
		for i := range visible {
			visible[i] = i + 1
		}
		return NavigationWindow{
			CurrentPage:  currentPage,
			TotalPages:   totalPages,
			VisiblePages: visible,
		}
	}

	half := maxVisible / 2

	start := currentPage - half
	if start < 1 {
		start = 1
	}

	end := start + maxVisible - 1
	if end > totalPages {
		end = totalPages
	}

	// Re-anchor at the upper boundary so the window keeps full width.
	if end-start < maxVisible-1 {
		start = end - maxVisible + 1
		if start < 1 {
			start = 1
		}
	}

	visible := make([]int, 0, maxVisible)
	for p := start; p <= end; p++ {
		visible = append(visible, p)
	}

	return NavigationWindow{
		CurrentPage:       currentPage,
		TotalPages:        totalPages,
		VisiblePages:      visible,
		ShowStartEllipsis: visible[0] > 1,
		ShowEndEllipsis:   visible[len(visible)-1] < totalPages,
	}
}

// Contains reports whether page is inside the visible window.
func (w NavigationWindow) Contains(page int) bool {
	for _, p := range w.VisiblePages {
		if p == page {
			return true
		}
	}
	return false
}
