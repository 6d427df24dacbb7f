package paginator

// defaultHistoryLimit bounds the navigation trail.
const defaultHistoryLimit = 50

// history is a bounded back/forward trail of visited page numbers.
// Navigating somewhere new truncates any forward entries, like a browser.
// Not safe for concurrent use; the owning Paginator serializes access.
type history struct {
	pages  []int
	cursor int // index of the current entry, -1 when empty
	limit  int
}

func newHistory(limit int) *history {
	if limit < 1 {
		limit = defaultHistoryLimit
	}
	return &history{cursor: -1, limit: limit}
}

// push records a visit to page, dropping the oldest entry when full.
// Pushing the page already under the cursor is a no-op.
func (h *history) push(page int) {
	if h.cursor >= 0 && h.pages[h.cursor] == page {
		return
	}
	h.pages = append(h.pages[:h.cursor+1], page)
	if len(h.pages) > h.limit {
		h.pages = h.pages[len(h.pages)-h.limit:]
	}
	h.cursor = len(h.pages) - 1
}

func (h *history) canBack() bool {
	return h.cursor > 0
}

func (h *history) canForward() bool {
	return h.cursor >= 0 && h.cursor < len(h.pages)-1
}

func (h *history) back() (int, bool) {
	if !h.canBack() {
		return 0, false
	}
	h.cursor--
	return h.pages[h.cursor], true
}

func (h *history) forward() (int, bool) {
	if !h.canForward() {
		return 0, false
	}
	h.cursor++
	return h.pages[h.cursor], true
}

func (h *history) len() int {
	return len(h.pages)
}
