package snippets

import (
	"context"
	"fmt"

	"github.com/snipstash/snipstash/internal/api"
)

// Pager walks a listing one page at a time in ascending page order. It is
// the lazy form of ListAll: callers can stop early, and a fresh Pager
// always restarts from page 1. Requests are strictly sequential; each
// page is fetched only after the previous response arrived.
type Pager struct {
	client   API
	pageSize int

	next    int
	fetched int
	done    bool
}

// Pages returns a Pager over the full listing. pageSize defaults to the
// configured default.
func (s *Service) Pages(pageSize int) (*Pager, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	if pageSize <= 0 {
		pageSize = s.cfg.DefaultPageSize
	}
	return &Pager{client: s.client, pageSize: pageSize, next: 1}, nil
}

// Next fetches the next page, or returns (nil, nil) once the reported
// total has been reached. A request failure carries the failing page
// number and leaves the Pager unusable; restart from a fresh Pager.
func (p *Pager) Next(ctx context.Context) (*api.Page, error) {
	if p.done {
		return nil, nil
	}
	page, err := p.client.ListPage(ctx, p.next, p.pageSize)
	if err != nil {
		p.done = true
		return nil, fmt.Errorf("page %d: %w", p.next, err)
	}
	p.fetched += len(page.Items)
	// An empty page also terminates the walk in case the server
	// misreports the total.
	if len(page.Items) == 0 || p.fetched >= page.Total {
		p.done = true
	}
	p.next++
	return page, nil
}

// LastPage returns the number of the last successfully fetched page,
// zero when none succeeded yet.
func (p *Pager) LastPage() int {
	return p.next - 1
}

// ListAll aggregates every page of the listing in ascending page order,
// preserving page order without reordering or deduplication. On a
// mid-walk failure no items are returned: the error names the last page
// that completed and the caller retries the whole listing. Callers that
// want to stop early drive Pages directly instead.
func (s *Service) ListAll(ctx context.Context) ([]api.Snippet, error) {
	pager, err := s.Pages(0)
	if err != nil {
		return nil, err
	}
	var items []api.Snippet
	for {
		page, err := pager.Next(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing aborted after page %d: %w", pager.LastPage(), err)
		}
		if page == nil {
			return items, nil
		}
		items = append(items, page.Items...)
	}
}
