// Package paginator layers stateful, interactive navigation on top of the
// pagination service: it tracks the current page, keeps a bounded
// back/forward history, and notifies listeners after each page change.
package paginator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/O-tero/pagination-engine/pagination"
	"github.com/O-tero/pagination-engine/pkg/logging"
	"github.com/O-tero/pagination-engine/pkg/models"
)

// Paginator drives interactive navigation over a single pagination
// service. All methods are safe for concurrent use; navigations are
// serialized so history and listeners observe a consistent order.
type Paginator[T any] struct {
	mu        sync.Mutex
	svc       *pagination.Service[T]
	current   *models.PaginatedResult[T]
	hist      *history
	listeners *listenerSet
	log       *logging.Logger
}

// Option configures a Paginator at construction time.
type Option[T any] func(*Paginator[T])

// WithLogger routes the paginator's diagnostics to l.
func WithLogger[T any](l *logging.Logger) Option[T] {
	return func(p *Paginator[T]) { p.log = l }
}

// WithHistoryLimit bounds the navigation trail to n entries.
func WithHistoryLimit[T any](n int) Option[T] {
	return func(p *Paginator[T]) { p.hist = newHistory(n) }
}

// New builds a paginator over svc. No page is loaded until the first
// navigation.
func New[T any](svc *pagination.Service[T], opts ...Option[T]) *Paginator[T] {
	p := &Paginator[T]{
		svc:  svc,
		hist: newHistory(defaultHistoryLimit),
		log:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.listeners = newListenerSet(p.log)
	return p
}

// NavigateTo moves to page. Out-of-range pages fail without changing the
// current position.
func (p *Paginator[T]) NavigateTo(ctx context.Context, page int) (*models.PaginatedResult[T], error) {
	return p.moveTo(ctx, page, EventNavigate, true)
}

// Next moves one page forward. Staying on the last page is not an error:
// the current result is returned unchanged and no event fires.
func (p *Paginator[T]) Next(ctx context.Context) (*models.PaginatedResult[T], error) {
	p.mu.Lock()
	cur := p.current
	p.mu.Unlock()
	if cur == nil {
		return p.moveTo(ctx, 1, EventNext, true)
	}
	if !cur.PageInfo.HasNextPage() {
		return cur, nil
	}
	return p.moveTo(ctx, cur.PageInfo.CurrentPage+1, EventNext, true)
}

// Previous moves one page back, staying put on the first page.
func (p *Paginator[T]) Previous(ctx context.Context) (*models.PaginatedResult[T], error) {
	p.mu.Lock()
	cur := p.current
	p.mu.Unlock()
	if cur == nil || !cur.PageInfo.HasPreviousPage() {
		if cur != nil {
			return cur, nil
		}
		return p.moveTo(ctx, 1, EventPrevious, true)
	}
	return p.moveTo(ctx, cur.PageInfo.CurrentPage-1, EventPrevious, true)
}

// First moves to page 1.
func (p *Paginator[T]) First(ctx context.Context) (*models.PaginatedResult[T], error) {
	return p.moveTo(ctx, 1, EventFirst, true)
}

// Last moves to the final page, determined from a fresh count.
func (p *Paginator[T]) Last(ctx context.Context) (*models.PaginatedResult[T], error) {
	res, err := p.svc.GetLastPage(ctx)
	if err != nil {
		return nil, err
	}
	return p.adopt(res, EventLast, true), nil
}

// Jump moves to page, clamping out-of-range targets into [1, TotalPages]
// instead of failing.
func (p *Paginator[T]) Jump(ctx context.Context, page int) (*models.PaginatedResult[T], error) {
	if page < 1 {
		page = 1
	}
	res, err := p.svc.GetPage(ctx, page)
	var invalid *pagination.InvalidPageError
	if errors.As(err, &invalid) && page > invalid.TotalPages {
		res, err = p.svc.GetPage(ctx, invalid.TotalPages)
	}
	if err != nil {
		return nil, err
	}
	return p.adopt(res, EventJump, true), nil
}

// Refresh reloads the current page, bypassing the cache, without touching
// history. Before the first navigation it behaves like First.
func (p *Paginator[T]) Refresh(ctx context.Context) (*models.PaginatedResult[T], error) {
	p.mu.Lock()
	cur := p.current
	p.mu.Unlock()
	page := 1
	if cur != nil {
		page = cur.PageInfo.CurrentPage
	}
	p.svc.InvalidatePage(page)
	return p.moveTo(ctx, page, EventRefresh, false)
}

// Back revisits the previous history entry. The second return is false
// when there is nothing to go back to.
func (p *Paginator[T]) Back(ctx context.Context) (*models.PaginatedResult[T], bool, error) {
	p.mu.Lock()
	page, ok := p.hist.back()
	p.mu.Unlock()
	if !ok {
		return nil, false, nil
	}
	res, err := p.moveTo(ctx, page, EventBack, false)
	if err != nil {
		// Restore the cursor so the trail is not silently consumed.
		p.mu.Lock()
		p.hist.forward()
		p.mu.Unlock()
		return nil, false, err
	}
	return res, true, nil
}

// Forward revisits the next history entry after a Back.
func (p *Paginator[T]) Forward(ctx context.Context) (*models.PaginatedResult[T], bool, error) {
	p.mu.Lock()
	page, ok := p.hist.forward()
	p.mu.Unlock()
	if !ok {
		return nil, false, nil
	}
	res, err := p.moveTo(ctx, page, EventForward, false)
	if err != nil {
		p.mu.Lock()
		p.hist.back()
		p.mu.Unlock()
		return nil, false, err
	}
	return res, true, nil
}

// Current returns the page the paginator is on. The second return is
// false before the first navigation.
func (p *Paginator[T]) Current() (*models.PaginatedResult[T], bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return nil, false
	}
	return p.current, true
}

// CanGoBack reports whether Back would move.
func (p *Paginator[T]) CanGoBack() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hist.canBack()
}

// CanGoForward reports whether Forward would move.
func (p *Paginator[T]) CanGoForward() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hist.canForward()
}

// AddListener registers fn and returns a registration ID for RemoveListener.
func (p *Paginator[T]) AddListener(fn Listener) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.listeners.add(fn)
}

// RemoveListener deregisters a listener by ID. Unknown IDs are ignored.
func (p *Paginator[T]) RemoveListener(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.listeners.remove(id)
}

func (p *Paginator[T]) moveTo(ctx context.Context, page int, typ EventType, push bool) (*models.PaginatedResult[T], error) {
	res, err := p.svc.GetPage(ctx, page)
	if err != nil {
		return nil, err
	}
	return p.adopt(res, typ, push), nil
}

// adopt installs res as the current page, updates history, and notifies
// listeners outside the lock.
func (p *Paginator[T]) adopt(res *models.PaginatedResult[T], typ EventType, push bool) *models.PaginatedResult[T] {
	p.mu.Lock()
	p.current = res
	if push {
		p.hist.push(res.PageInfo.CurrentPage)
	}
	regs := p.listeners.snapshot()
	p.mu.Unlock()

	if len(regs) > 0 {
		p.listeners.dispatch(regs, Event{
			ID:         uuid.NewString(),
			Type:       typ,
			Page:       res.PageInfo.CurrentPage,
			TotalPages: res.PageInfo.TotalPages,
			At:         time.Now().UTC(),
		})
	}
	return res
}
