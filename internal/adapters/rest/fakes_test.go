package rest

import (
	"context"
	"discovery-service/internal/core/discovery"
	"discovery-service/internal/core/domain"
	"discovery-service/internal/core/usecase"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var errCatalogDown = errors.New("catalog unavailable")

// memDirectory - каталог в памяти: Search по подстроке имени, List по категориям
type memDirectory struct {
	mu      sync.Mutex
	records []domain.VendorRecord
	fail    bool
}

func newMemDirectory(names ...string) *memDirectory {
	d := &memDirectory{}
	for _, name := range names {
		d.records = append(d.records, domain.VendorRecord{
			ID:          uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)),
			VendorType:  domain.VendorTypeArtist,
			Name:        name,
			CategoryIDs: []string{"jazz"},
		})
	}
	return d
}

func (d *memDirectory) setFail(fail bool) {
	d.mu.Lock()
	d.fail = fail
	d.mu.Unlock()
}

func (d *memDirectory) Search(ctx context.Context, vendorType domain.VendorType, text string, paging domain.Paging) (*domain.VendorPage, error) {
	return d.page(paging, func(r domain.VendorRecord) bool {
		return strings.Contains(strings.ToLower(r.Name), strings.ToLower(text))
	})
}

func (d *memDirectory) List(ctx context.Context, vendorType domain.VendorType, filters domain.StructuredFilters, paging domain.Paging) (*domain.VendorPage, error) {
	return d.page(paging, func(r domain.VendorRecord) bool {
		return len(filters.Categories) == 0 || filters.Categories[0] == r.CategoryIDs[0]
	})
}

func (d *memDirectory) FindByIDs(ctx context.Context, vendorType domain.VendorType, ids []uuid.UUID) ([]domain.VendorRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []domain.VendorRecord
	for _, r := range d.records {
		for _, id := range ids {
			if r.ID == id {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

func (d *memDirectory) page(paging domain.Paging, match func(domain.VendorRecord) bool) (*domain.VendorPage, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fail {
		return nil, errCatalogDown
	}
	var matched []domain.VendorRecord
	for _, r := range d.records {
		if match(r) {
			matched = append(matched, r)
		}
	}
	total := len(matched)
	start := min(paging.Offset, total)
	end := min(paging.Offset+paging.Limit, total)
	return &domain.VendorPage{Data: matched[start:end], Count: &total}, nil
}

func newDiscoveryHandler(dir *memDirectory, maxViews int) *DiscoveryHandler {
	fetcher, err := discovery.NewPageFetcher(dir, discovery.WithRetries(0))
	if err != nil {
		panic(err)
	}
	registry, err := discovery.NewRegistry(fetcher, discovery.RegistryConfig{MaxViews: maxViews})
	if err != nil {
		panic(err)
	}
	return NewDiscoveryHandler(
		usecase.NewSearchVendorsUseCase(fetcher),
		usecase.NewOpenViewUseCase(registry),
		usecase.NewGetViewUseCase(registry),
		usecase.NewApplyViewFiltersUseCase(registry),
		usecase.NewLoadMoreViewUseCase(registry),
		usecase.NewGetViewPageUseCase(registry),
		usecase.NewCloseViewUseCase(registry),
	)
}

// Фейковые сценарии избранного и фильтров

type fakeFavorites struct {
	mu    sync.Mutex
	items map[string]bool
}

func newFakeFavorites() *fakeFavorites {
	return &fakeFavorites{items: make(map[string]bool)}
}

func favKey(userID, vendorID uuid.UUID, vt domain.VendorType) string {
	return userID.String() + "|" + vendorID.String() + "|" + string(vt)
}

type checkFunc func(ctx context.Context, userID, vendorID uuid.UUID, vt domain.VendorType) (bool, error)
type changeFunc func(ctx context.Context, userID, vendorID uuid.UUID, vt domain.VendorType) error

func (f checkFunc) Execute(ctx context.Context, userID, vendorID uuid.UUID, vt domain.VendorType) (bool, error) {
	return f(ctx, userID, vendorID, vt)
}

func (f changeFunc) Execute(ctx context.Context, userID, vendorID uuid.UUID, vt domain.VendorType) error {
	return f(ctx, userID, vendorID, vt)
}

type listFunc func(ctx context.Context, userID uuid.UUID, vt domain.VendorType, limit, offset int) (*domain.PaginatedFavoriteCards, error)

func (f listFunc) Execute(ctx context.Context, userID uuid.UUID, vt domain.VendorType, limit, offset int) (*domain.PaginatedFavoriteCards, error) {
	return f(ctx, userID, vt, limit, offset)
}

// handler собирает FavoritesHandler над map. missing - исполнитель, которого нет в каталоге.
func (f *fakeFavorites) handler(missing uuid.UUID, lastList *[]interface{}) *FavoritesHandler {
	check := checkFunc(func(ctx context.Context, u, v uuid.UUID, vt domain.VendorType) (bool, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.items[favKey(u, v, vt)], nil
	})
	add := changeFunc(func(ctx context.Context, u, v uuid.UUID, vt domain.VendorType) error {
		if v == missing {
			return domain.ErrNotFound
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		f.items[favKey(u, v, vt)] = true
		return nil
	})
	remove := changeFunc(func(ctx context.Context, u, v uuid.UUID, vt domain.VendorType) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.items, favKey(u, v, vt))
		return nil
	})
	toggle := checkFunc(func(ctx context.Context, u, v uuid.UUID, vt domain.VendorType) (bool, error) {
		on, _ := check(ctx, u, v, vt)
		if on {
			return false, remove(ctx, u, v, vt)
		}
		return true, add(ctx, u, v, vt)
	})
	list := listFunc(func(ctx context.Context, u uuid.UUID, vt domain.VendorType, limit, offset int) (*domain.PaginatedFavoriteCards, error) {
		*lastList = []interface{}{vt, limit, offset}
		return &domain.PaginatedFavoriteCards{Items: []domain.FavoriteCard{}, CurrentPage: 1, ItemsPerPage: limit}, nil
	})
	return NewFavoritesHandler(check, add, remove, toggle, list)
}
