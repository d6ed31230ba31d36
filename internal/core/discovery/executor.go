package discovery

import (
	"context"
	"discovery-service/internal/contextkeys"
	"discovery-service/internal/core/domain"
	"discovery-service/internal/core/port"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrSuperseded возвращается, когда фильтры сменились до завершения запроса.
// Это не ошибка загрузки: результат просто отброшен.
var ErrSuperseded = errors.New("fetch superseded by newer criteria")

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusEmpty   Status = "empty"
	StatusFailed  Status = "failed"
)

// Snapshot - состояние результатов для текущего ключа запроса
type Snapshot struct {
	VendorType  domain.VendorType
	Key         domain.QueryKey
	Status      Status
	Items       []domain.VendorRecord
	TotalCount  *int
	NextCursor  *domain.Cursor
	LoadingMore bool
	Err         error
	Generation  uint64
}

// accumulation принадлежит одному ключу запроса и при смене ключа выбрасывается целиком
type accumulation struct {
	key         domain.QueryKey
	criteria    domain.FilterCriteria
	status      Status
	items       []domain.VendorRecord
	totalCount  *int
	nextCursor  *domain.Cursor
	firstLoaded bool
	loadingMore bool
	err         error
	pages       map[int]domain.ResultPage[domain.VendorRecord]
}

// Executor загружает страницы для одного типа исполнителя.
// Каждый запрос запоминает поколение, в котором начался, и фиксирует результат,
// только если поколение и ключ не изменились.
type Executor struct {
	vendorType domain.VendorType
	fetcher    *PageFetcher

	mu         sync.Mutex
	generation uint64
	genCtx     context.Context
	cancelGen  context.CancelFunc
	acc        *accumulation
}

func NewExecutor(vendorType domain.VendorType, fetcher *PageFetcher) (*Executor, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("page fetcher cannot be nil")
	}
	genCtx, cancel := context.WithCancel(context.Background())
	return &Executor{
		vendorType: vendorType,
		fetcher:    fetcher,
		genCtx:     genCtx,
		cancelGen:  cancel,
	}, nil
}

func (e *Executor) VendorType() domain.VendorType {
	return e.vendorType
}

// Refresh загружает первую страницу для фильтров. Если для того же ключа она уже
// загружена, возвращает накопленное состояние без запроса.
func (e *Executor) Refresh(ctx context.Context, criteria domain.FilterCriteria) (Snapshot, error) {
	key := criteria.Key(e.vendorType)

	e.mu.Lock()
	if e.acc != nil && e.acc.key == key && e.acc.firstLoaded {
		snap := e.snapshotLocked()
		e.mu.Unlock()
		return snap, nil
	}
	gen, genCtx := e.beginLocked(key, criteria)
	e.mu.Unlock()

	paging := domain.Paging{Limit: criteria.PageSize, Offset: 0}
	page, err := e.fetch(ctx, genCtx, criteria, paging)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.staleLocked(gen, key) {
		e.logStale(ctx, gen, paging)
		return e.snapshotLocked(), ErrSuperseded
	}

	acc := e.acc
	if err != nil {
		acc.status = StatusFailed
		acc.err = err
		return e.snapshotLocked(), err
	}

	acc.items = slices.Clone(page.Items)
	acc.totalCount = page.TotalCount
	acc.nextCursor = page.NextCursor
	acc.firstLoaded = true
	acc.err = nil
	acc.status = statusFor(len(acc.items))
	acc.pages[0] = page
	return e.snapshotLocked(), nil
}

// LoadMore дозагружает следующую страницу и добавляет ее в конец списка.
// Без курсора или при уже идущей дозагрузке ничего не делает.
func (e *Executor) LoadMore(ctx context.Context) (Snapshot, error) {
	e.mu.Lock()
	acc := e.acc
	if acc == nil || !acc.firstLoaded || acc.nextCursor == nil || acc.loadingMore {
		snap := e.snapshotLocked()
		e.mu.Unlock()
		return snap, nil
	}
	gen, genCtx, key := e.generation, e.genCtx, acc.key
	criteria := acc.criteria
	paging := domain.Paging{Limit: criteria.PageSize, Offset: acc.nextCursor.Offset}
	acc.loadingMore = true
	e.mu.Unlock()

	page, err := e.fetch(ctx, genCtx, criteria, paging)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.staleLocked(gen, key) || e.acc != acc {
		e.logStale(ctx, gen, paging)
		return e.snapshotLocked(), ErrSuperseded
	}

	acc.loadingMore = false
	if err != nil {
		acc.status = StatusFailed
		acc.err = err
		return e.snapshotLocked(), err
	}

	merged := make([]domain.VendorRecord, 0, len(acc.items)+len(page.Items))
	merged = append(merged, acc.items...)
	merged = append(merged, page.Items...)
	acc.items = merged
	acc.nextCursor = page.NextCursor
	if page.TotalCount != nil {
		acc.totalCount = page.TotalCount
	}
	acc.err = nil
	acc.status = statusFor(len(acc.items))
	acc.pages[paging.Offset] = page
	return e.snapshotLocked(), nil
}

// FetchPage - постраничный режим: страница criteria.Page без накопления.
// Уже загруженные страницы того же ключа переиспользуются.
func (e *Executor) FetchPage(ctx context.Context, criteria domain.FilterCriteria) (domain.ResultPage[domain.VendorRecord], error) {
	key := criteria.Key(e.vendorType)
	paging := criteria.Paging()

	e.mu.Lock()
	if e.acc != nil && e.acc.key == key {
		if page, ok := e.acc.pages[paging.Offset]; ok {
			e.mu.Unlock()
			return page, nil
		}
	} else {
		e.beginLocked(key, criteria)
	}
	gen, genCtx := e.generation, e.genCtx
	e.mu.Unlock()

	page, err := e.fetch(ctx, genCtx, criteria, paging)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.staleLocked(gen, key) {
		e.logStale(ctx, gen, paging)
		return domain.ResultPage[domain.VendorRecord]{}, ErrSuperseded
	}

	acc := e.acc
	if err != nil {
		acc.status = StatusFailed
		acc.err = err
		return domain.ResultPage[domain.VendorRecord]{}, err
	}

	acc.pages[paging.Offset] = page
	acc.err = nil
	if paging.Offset == 0 && !acc.firstLoaded {
		acc.items = slices.Clone(page.Items)
		acc.totalCount = page.TotalCount
		acc.nextCursor = page.NextCursor
		acc.firstLoaded = true
	}
	if acc.firstLoaded {
		acc.status = statusFor(len(acc.items))
	} else {
		acc.status = statusFor(len(page.Items))
	}
	return page, nil
}

// Snapshot возвращает текущее состояние
func (e *Executor) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Discard отменяет запросы в полете и очищает накопленные результаты
func (e *Executor) Discard() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelGen()
	e.generation++
	e.genCtx, e.cancelGen = context.WithCancel(context.Background())
	e.acc = nil
}

// beginLocked открывает новое поколение: отменяет прежние запросы и выбрасывает накопленное
func (e *Executor) beginLocked(key domain.QueryKey, criteria domain.FilterCriteria) (uint64, context.Context) {
	e.cancelGen()
	e.generation++
	e.genCtx, e.cancelGen = context.WithCancel(context.Background())
	e.acc = &accumulation{
		key:      key,
		criteria: criteria.Clone(),
		status:   StatusLoading,
		pages:    make(map[int]domain.ResultPage[domain.VendorRecord]),
	}
	return e.generation, e.genCtx
}

func (e *Executor) staleLocked(gen uint64, key domain.QueryKey) bool {
	return gen != e.generation || e.acc == nil || e.acc.key != key
}

// fetch отменяется и вместе с запросом клиента, и при смене поколения
func (e *Executor) fetch(ctx, genCtx context.Context, criteria domain.FilterCriteria, paging domain.Paging) (domain.ResultPage[domain.VendorRecord], error) {
	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(genCtx, cancel)
	defer stop()
	return e.fetcher.Fetch(fetchCtx, e.vendorType, criteria, paging)
}

func (e *Executor) logStale(ctx context.Context, gen uint64, paging domain.Paging) {
	contextkeys.LoggerFromContext(ctx).Debug("Discarding stale page", port.Fields{
		"component":          "Executor",
		"vendor_type":        e.vendorType,
		"request_generation": gen,
		"current_generation": e.generation,
		"offset":             paging.Offset,
	})
}

func (e *Executor) snapshotLocked() Snapshot {
	snap := Snapshot{
		VendorType: e.vendorType,
		Status:     StatusIdle,
		Items:      []domain.VendorRecord{},
		Generation: e.generation,
	}
	if e.acc == nil {
		return snap
	}
	snap.Key = e.acc.key
	snap.Status = e.acc.status
	snap.Items = slices.Clone(e.acc.items)
	if snap.Items == nil {
		snap.Items = []domain.VendorRecord{}
	}
	snap.TotalCount = e.acc.totalCount
	snap.NextCursor = e.acc.nextCursor
	snap.LoadingMore = e.acc.loadingMore
	snap.Err = e.acc.err
	return snap
}

func statusFor(n int) Status {
	if n == 0 {
		return StatusEmpty
	}
	return StatusReady
}
