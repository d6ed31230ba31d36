package discovery

import (
	"context"
	"discovery-service/internal/core/domain"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrAlreadyMounted = errors.New("discovery view is already mounted")

// View - экран поиска: свой стор фильтров, свой загрузчик и текущий адрес.
// Адрес заменяется при каждом изменении фильтров, история не копится.
type View struct {
	id         uuid.UUID
	vendorType domain.VendorType
	store      *Store
	executor   *Executor

	mu          sync.Mutex
	mounted     bool
	location    string
	lastAccess  time.Time
	inFlight    int
	unsubscribe func()
}

func NewView(id uuid.UUID, executor *Executor) *View {
	v := &View{
		id:         id,
		vendorType: executor.VendorType(),
		store:      NewStore(),
		executor:   executor,
		lastAccess: time.Now(),
	}
	v.unsubscribe = v.store.Subscribe(v.replaceLocation)
	return v
}

func (v *View) ID() uuid.UUID                 { return v.id }
func (v *View) VendorType() domain.VendorType { return v.vendorType }
func (v *View) Store() *Store                 { return v.store }

// Mount гидратирует фильтры из входящей query-строки, ровно один раз за жизнь экрана
func (v *View) Mount(rawQuery string) error {
	v.mu.Lock()
	if v.mounted {
		v.mu.Unlock()
		return ErrAlreadyMounted
	}
	v.mounted = true
	v.mu.Unlock()

	v.store.Replace(ParseQuery(rawQuery))
	return nil
}

// Location - текущая каноническая query-строка экрана
func (v *View) Location() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.location
}

func (v *View) replaceLocation(c domain.FilterCriteria) {
	encoded := EncodeQuery(c)
	v.mu.Lock()
	v.location = encoded
	v.mu.Unlock()
}

// Results загружает (или берет из накопленного) первую страницу для текущих фильтров
func (v *View) Results(ctx context.Context) (Snapshot, error) {
	defer v.begin()()
	return v.executor.Refresh(ctx, v.store.Snapshot())
}

// LoadMore дозагружает следующую страницу. Если фильтры уже сменились,
// сначала загружается первая страница нового ключа.
func (v *View) LoadMore(ctx context.Context) (Snapshot, error) {
	defer v.begin()()
	criteria := v.store.Snapshot()
	current := v.executor.Snapshot()
	if current.Status == StatusIdle || current.Key != criteria.Key(v.vendorType) {
		return v.executor.Refresh(ctx, criteria)
	}
	return v.executor.LoadMore(ctx)
}

// Page - постраничный режим для текущей страницы фильтров
func (v *View) Page(ctx context.Context) (domain.ResultPage[domain.VendorRecord], error) {
	defer v.begin()()
	return v.executor.FetchPage(ctx, v.store.Snapshot())
}

// Snapshot - накопленные результаты без загрузки
func (v *View) Snapshot() Snapshot {
	return v.executor.Snapshot()
}

// Close снимает подписку, сбрасывает фильтры и отменяет загрузки
func (v *View) Close() {
	v.unsubscribe()
	v.store.ResetFilters()
	v.executor.Discard()
}

// begin отмечает загрузку в процессе. Возвращаемая функция снимает отметку
// и еще раз продлевает жизнь экрана.
func (v *View) begin() (end func()) {
	v.mu.Lock()
	v.inFlight++
	v.lastAccess = time.Now()
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		v.inFlight--
		v.lastAccess = time.Now()
		v.mu.Unlock()
	}
}

// Busy - идет ли сейчас загрузка
func (v *View) Busy() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.inFlight > 0
}

func (v *View) touch() {
	v.mu.Lock()
	v.lastAccess = time.Now()
	v.mu.Unlock()
}

func (v *View) LastAccess() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastAccess
}

// ViewState - состояние экрана для ответа клиенту
type ViewState struct {
	ID                uuid.UUID
	VendorType        domain.VendorType
	Location          string
	Criteria          domain.FilterCriteria
	ActiveFilterCount int
	Results           Snapshot
}

func (v *View) State() ViewState {
	criteria := v.store.Snapshot()
	return ViewState{
		ID:                v.id,
		VendorType:        v.vendorType,
		Location:          v.Location(),
		Criteria:          criteria,
		ActiveFilterCount: criteria.ActiveFilterCount(),
		Results:           v.executor.Snapshot(),
	}
}
