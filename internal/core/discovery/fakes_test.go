package discovery

import (
	"context"
	"discovery-service/internal/core/domain"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var errDirectoryDown = errors.New("directory unavailable")

// fakeDirectory - каталог в памяти с управляемыми задержками и сбоями
type fakeDirectory struct {
	mu sync.Mutex

	records   []domain.VendorRecord
	hideCount bool
	ignoreCtx bool

	// gates блокирует Search по тексту запроса до закрытия канала
	gates map[string]chan struct{}
	// failures - сколько ближайших вызовов завершатся ошибкой
	failures int

	searchCalls []string
	listCalls   []domain.StructuredFilters
	pagings     []domain.Paging
}

func newFakeDirectory(names ...string) *fakeDirectory {
	d := &fakeDirectory{gates: make(map[string]chan struct{})}
	for i, name := range names {
		d.records = append(d.records, domain.VendorRecord{
			ID:          uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%d-%s", i, name))),
			VendorType:  domain.VendorTypeArtist,
			Name:        name,
			CategoryIDs: []string{"music"},
		})
	}
	return d
}

func (d *fakeDirectory) gate(text string) chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	ch := make(chan struct{})
	d.gates[text] = ch
	return ch
}

func (d *fakeDirectory) failNext(n int) {
	d.mu.Lock()
	d.failures = n
	d.mu.Unlock()
}

func (d *fakeDirectory) Search(ctx context.Context, vendorType domain.VendorType, text string, paging domain.Paging) (*domain.VendorPage, error) {
	d.mu.Lock()
	d.searchCalls = append(d.searchCalls, text)
	d.pagings = append(d.pagings, paging)
	gate := d.gates[text]
	d.mu.Unlock()

	if gate != nil {
		if d.ignoreCtx {
			<-gate
		} else {
			select {
			case <-gate:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return d.page(paging, func(r domain.VendorRecord) bool {
		return strings.Contains(strings.ToLower(r.Name), strings.ToLower(text))
	})
}

func (d *fakeDirectory) List(ctx context.Context, vendorType domain.VendorType, filters domain.StructuredFilters, paging domain.Paging) (*domain.VendorPage, error) {
	d.mu.Lock()
	d.listCalls = append(d.listCalls, filters)
	d.pagings = append(d.pagings, paging)
	d.mu.Unlock()

	return d.page(paging, func(r domain.VendorRecord) bool {
		if len(filters.Categories) == 0 {
			return true
		}
		for _, c := range filters.Categories {
			if slices.Contains(r.CategoryIDs, c) {
				return true
			}
		}
		return false
	})
}

func (d *fakeDirectory) FindByIDs(ctx context.Context, vendorType domain.VendorType, ids []uuid.UUID) ([]domain.VendorRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []domain.VendorRecord
	for _, r := range d.records {
		if slices.Contains(ids, r.ID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (d *fakeDirectory) page(paging domain.Paging, match func(domain.VendorRecord) bool) (*domain.VendorPage, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failures > 0 {
		d.failures--
		return nil, errDirectoryDown
	}

	var matched []domain.VendorRecord
	for _, r := range d.records {
		if match(r) {
			matched = append(matched, r)
		}
	}
	start := min(paging.Offset, len(matched))
	end := min(paging.Offset+paging.Limit, len(matched))

	page := &domain.VendorPage{Data: slices.Clone(matched[start:end])}
	if !d.hideCount {
		total := len(matched)
		page.Count = &total
	}
	return page, nil
}

func (d *fakeDirectory) calls() (search []string, list int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.searchCalls), len(d.listCalls)
}

func names(records []domain.VendorRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func newTestExecutor(dir *fakeDirectory, opts ...FetcherOption) *Executor {
	fetcher, err := NewPageFetcher(dir, append([]FetcherOption{WithRetries(0)}, opts...)...)
	if err != nil {
		panic(err)
	}
	executor, err := NewExecutor(domain.VendorTypeArtist, fetcher)
	if err != nil {
		panic(err)
	}
	return executor
}

func criteriaWith(mutate func(c *domain.FilterCriteria)) domain.FilterCriteria {
	c := domain.DefaultCriteria()
	mutate(&c)
	return c
}
