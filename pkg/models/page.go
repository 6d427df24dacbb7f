// Package models provides the canonical value types produced by the pagination
// engine: page position metadata, sliding navigation windows, and assembled
// paginated results.
//
// Design Philosophy:
// - Values are built once per request and never mutated afterwards
// - All derived figures are computed at construction; accessors are O(1)
// - No locks: values have no identity beyond their fields and are safe to
//   share read-only across goroutines
package models

// PageInfo describes the position of a single page within a dataset.
//
// Page numbers are 1-based. A dataset with zero elements still reports one
// (empty) page rather than zero, so callers can always render "page 1 of 1".
//
// PageInfo does not validate that CurrentPage is within range; callers that
// accept untrusted page numbers must check CurrentPage against TotalPages
// before using the derived offsets.
type PageInfo struct {
	CurrentPage   int // 1-based page number
	PageSize      int // items per page, >= 1
	TotalElements int // total items in the dataset, >= 0
	TotalPages    int // max(1, ceil(TotalElements/PageSize))
	Offset        int // 0-based index of the first item on this page
	StartIndex    int // 1-based display index of the first item
	EndIndex      int // 1-based display index of the last item
}

// NewPageInfo computes the page position for the given page number, dataset
// size, and page size. pageSize must be >= 1 and currentPage >= 1; both are
// enforced by the configuration and service layers before values reach here.
func NewPageInfo(currentPage, totalElements, pageSize int) PageInfo {
	totalPages := 1
	if totalElements > 0 {
		totalPages = (totalElements + pageSize - 1) / pageSize
	}

	offset := (currentPage - 1) * pageSize

	endIndex := offset + pageSize
	if endIndex > totalElements {
		endIndex = totalElements
	}

	return PageInfo{
		CurrentPage:   currentPage,
		PageSize:      pageSize,
		TotalElements: totalElements,
		TotalPages:    totalPages,
		Offset:        offset,
		StartIndex:    offset + 1,
		EndIndex:      endIndex,
	}
}

// HasPreviousPage reports whether a page exists before this one.
func (p PageInfo) HasPreviousPage() bool {
	return p.CurrentPage > 1
}

// HasNextPage reports whether a page exists after this one.
func (p PageInfo) HasNextPage() bool {
	return p.CurrentPage < p.TotalPages
}

// IsEmpty reports whether the underlying dataset holds no elements.
// Empty datasets still report TotalPages == 1.
func (p PageInfo) IsEmpty() bool {
	return p.TotalElements == 0
}

// IsFirst reports whether this is the first page.
func (p PageInfo) IsFirst() bool {
	return p.CurrentPage == 1
}

// IsLast reports whether this is the last page.
func (p PageInfo) IsLast() bool {
	return p.CurrentPage >= p.TotalPages
}
