package discovery

import (
	"context"
	"discovery-service/internal/contextkeys"
	"discovery-service/internal/core/domain"
	"discovery-service/internal/core/port"
	"errors"
	"fmt"
)

// PageFetcher выбирает режим запроса, ходит в каталог и строит страницу результата
type PageFetcher struct {
	directory port.VendorDirectoryPort
	cache     port.PageCachePort
	retries   int
}

type FetcherOption func(*PageFetcher)

// WithPageCache подключает кеш страниц, ошибки кеша на результат не влияют
func WithPageCache(cache port.PageCachePort) FetcherOption {
	return func(f *PageFetcher) { f.cache = cache }
}

// WithRetries - число повторов после неудачной попытки (0 или 1)
func WithRetries(n int) FetcherOption {
	return func(f *PageFetcher) {
		if n < 0 {
			n = 0
		}
		if n > 1 {
			n = 1
		}
		f.retries = n
	}
}

func NewPageFetcher(directory port.VendorDirectoryPort, opts ...FetcherOption) (*PageFetcher, error) {
	if directory == nil {
		return nil, fmt.Errorf("vendor directory cannot be nil")
	}
	f := &PageFetcher{directory: directory, retries: 1}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Fetch загружает одну страницу для заданных фильтров
func (f *PageFetcher) Fetch(ctx context.Context, vendorType domain.VendorType, criteria domain.FilterCriteria, paging domain.Paging) (domain.ResultPage[domain.VendorRecord], error) {
	key := criteria.Key(vendorType)
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "PageFetcher",
		"vendor_type": vendorType,
		"limit":       paging.Limit,
		"offset":      paging.Offset,
	})

	if f.cache != nil {
		cached, ok, err := f.cache.Get(ctx, key, paging)
		if err != nil {
			logger.Warn("Page cache lookup failed, falling back to directory", port.Fields{"error": err.Error()})
		} else if ok {
			logger.Debug("Page served from cache", nil)
			return *cached, nil
		}
	}

	plan := domain.PlanQuery(criteria)

	var (
		raw *domain.VendorPage
		err error
	)
	for attempt := 0; attempt <= f.retries; attempt++ {
		raw, err = f.dispatch(ctx, vendorType, plan, paging)
		if err == nil {
			break
		}
		if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			break
		}
		logger.Warn("Directory request failed", port.Fields{"attempt": attempt + 1, "error": err.Error()})
	}
	if err != nil {
		return domain.ResultPage[domain.VendorRecord]{}, fmt.Errorf("failed to fetch %s page at offset %d: %w", vendorType, paging.Offset, err)
	}

	page := domain.NewResultPage(raw.Data, raw.Count, paging)

	if f.cache != nil {
		if err := f.cache.Set(ctx, key, paging, page); err != nil {
			logger.Warn("Failed to store page in cache", port.Fields{"error": err.Error()})
		}
	}
	return page, nil
}

func (f *PageFetcher) dispatch(ctx context.Context, vendorType domain.VendorType, plan domain.QueryPlan, paging domain.Paging) (*domain.VendorPage, error) {
	var (
		page *domain.VendorPage
		err  error
	)
	switch q := plan.(type) {
	case domain.FullTextQuery:
		page, err = f.directory.Search(ctx, vendorType, q.Text, paging)
	case domain.StructuredQuery:
		page, err = f.directory.List(ctx, vendorType, q.Filters, paging)
	default:
		return nil, fmt.Errorf("unsupported query plan %T", plan)
	}
	if err != nil {
		return nil, err
	}
	if page == nil {
		page = &domain.VendorPage{}
	}
	return page, nil
}
