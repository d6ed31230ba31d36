package usecase

import (
	"context"
	"discovery-service/internal/core/domain"
	"errors"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type favoriteKey struct {
	userID, vendorID uuid.UUID
	vendorType       domain.VendorType
}

type fakeFavoritesRepo struct {
	mu    sync.Mutex
	items map[favoriteKey]time.Time
	clock time.Time
	err   error
}

func newFakeFavoritesRepo() *fakeFavoritesRepo {
	return &fakeFavoritesRepo{
		items: make(map[favoriteKey]time.Time),
		clock: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *fakeFavoritesRepo) Exists(ctx context.Context, userID, vendorID uuid.UUID, vendorType domain.VendorType) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.items[favoriteKey{userID, vendorID, vendorType}]
	return ok, nil
}

func (r *fakeFavoritesRepo) Add(ctx context.Context, userID, vendorID uuid.UUID, vendorType domain.VendorType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	key := favoriteKey{userID, vendorID, vendorType}
	if _, ok := r.items[key]; !ok {
		r.clock = r.clock.Add(time.Minute)
		r.items[key] = r.clock
	}
	return nil
}

func (r *fakeFavoritesRepo) Remove(ctx context.Context, userID, vendorID uuid.UUID, vendorType domain.VendorType) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	key := favoriteKey{userID, vendorID, vendorType}
	_, ok := r.items[key]
	delete(r.items, key)
	return ok, nil
}

func (r *fakeFavoritesRepo) FindPaginatedByUser(ctx context.Context, userID uuid.UUID, vendorType domain.VendorType, limit, offset int) (*domain.PaginatedFavorites, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []domain.FavoriteItem
	for k, at := range r.items {
		if k.userID != userID || (vendorType != "" && k.vendorType != vendorType) {
			continue
		}
		all = append(all, domain.FavoriteItem{UserID: k.userID, VendorID: k.vendorID, VendorType: k.vendorType, CreatedAt: at})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	start := min(offset, len(all))
	end := min(offset+limit, len(all))
	return &domain.PaginatedFavorites{
		Items:        all[start:end],
		TotalCount:   int64(len(all)),
		CurrentPage:  offset/limit + 1,
		ItemsPerPage: limit,
	}, nil
}

type fakeEvents struct {
	mu      sync.Mutex
	changes []domain.FavoriteChange
	err     error
}

func (e *fakeEvents) PublishFavoriteChanged(ctx context.Context, change domain.FavoriteChange) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.changes = append(e.changes, change)
	return nil
}

// fakeDirectory отдает записи по списку, фильтр по тексту - точное совпадение имени
type fakeDirectory struct {
	records []domain.VendorRecord
	err     error
	lastOp  string
}

func (d *fakeDirectory) add(vendorType domain.VendorType, name string) domain.VendorRecord {
	r := domain.VendorRecord{ID: uuid.New(), VendorType: vendorType, Name: name}
	d.records = append(d.records, r)
	return r
}

func (d *fakeDirectory) ofType(vendorType domain.VendorType) []domain.VendorRecord {
	var out []domain.VendorRecord
	for _, r := range d.records {
		if r.VendorType == vendorType {
			out = append(out, r)
		}
	}
	return out
}

func (d *fakeDirectory) window(records []domain.VendorRecord, paging domain.Paging) *domain.VendorPage {
	count := len(records)
	start := min(paging.Offset, count)
	end := min(paging.Offset+paging.Limit, count)
	return &domain.VendorPage{Data: records[start:end], Count: &count}
}

func (d *fakeDirectory) Search(ctx context.Context, vendorType domain.VendorType, text string, paging domain.Paging) (*domain.VendorPage, error) {
	d.lastOp = "search"
	if d.err != nil {
		return nil, d.err
	}
	var out []domain.VendorRecord
	for _, r := range d.ofType(vendorType) {
		if r.Name == text {
			out = append(out, r)
		}
	}
	return d.window(out, paging), nil
}

func (d *fakeDirectory) List(ctx context.Context, vendorType domain.VendorType, filters domain.StructuredFilters, paging domain.Paging) (*domain.VendorPage, error) {
	d.lastOp = "list"
	if d.err != nil {
		return nil, d.err
	}
	return d.window(d.ofType(vendorType), paging), nil
}

func (d *fakeDirectory) FindByIDs(ctx context.Context, vendorType domain.VendorType, ids []uuid.UUID) ([]domain.VendorRecord, error) {
	if d.err != nil {
		return nil, d.err
	}
	var out []domain.VendorRecord
	// обратный порядок, чтобы проверить восстановление порядка избранного
	for _, r := range slices.Backward(d.ofType(vendorType)) {
		if slices.Contains(ids, r.ID) {
			out = append(out, r)
		}
	}
	return out, nil
}

var errStorage = errors.New("storage unavailable")
