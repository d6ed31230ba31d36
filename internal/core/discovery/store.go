package discovery

import (
	"discovery-service/internal/core/domain"
	"slices"
	"strings"
	"sync"
)

// Store - источник истины для фильтров одного экрана поиска.
// Любое изменение фильтра сбрасывает страницу на первую.
type Store struct {
	mu          sync.RWMutex
	state       domain.FilterCriteria
	version     uint64
	subscribers []subscriber
	nextSubID   int

	// notifyMu упорядочивает доставку: подписчик не увидит версию старше уже доставленной
	notifyMu sync.Mutex
	notified uint64
}

type subscriber struct {
	id int
	fn func(domain.FilterCriteria)
}

func NewStore() *Store {
	return &Store{state: domain.DefaultCriteria()}
}

// Snapshot возвращает копию текущего состояния
func (s *Store) Snapshot() domain.FilterCriteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

func (s *Store) ActiveFilterCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ActiveFilterCount()
}

// Subscribe регистрирует обработчик изменений. Обработчики вызываются синхронно,
// по одному вызову за раз, и не должны менять стор изнутри вызова.
func (s *Store) Subscribe(fn func(domain.FilterCriteria)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.subscribers = slices.DeleteFunc(s.subscribers, func(sub subscriber) bool { return sub.id == id })
	}
}

func (s *Store) update(mutate func(c *domain.FilterCriteria)) {
	s.mu.Lock()
	next := s.state.Clone()
	mutate(&next)
	changed := !next.Equal(s.state)
	s.state = next
	if changed {
		s.version++
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// notify доставляет подписчикам последнее состояние. Если конкурентная мутация
// уже доставила более новую версию, вызов ничего не делает.
func (s *Store) notify() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.RLock()
	version := s.version
	snapshot := s.state.Clone()
	subs := slices.Clone(s.subscribers)
	s.mu.RUnlock()

	if version <= s.notified {
		return
	}
	s.notified = version
	for _, sub := range subs {
		sub.fn(snapshot.Clone())
	}
}

func (s *Store) updateFilter(mutate func(c *domain.FilterCriteria)) {
	s.update(func(c *domain.FilterCriteria) {
		mutate(c)
		c.Page = domain.DefaultPage
	})
}

func (s *Store) SetSearchQuery(text string) {
	s.updateFilter(func(c *domain.FilterCriteria) { c.SearchQuery = text })
}

func (s *Store) SetCategories(ids []string) {
	s.updateFilter(func(c *domain.FilterCriteria) { c.Categories = domain.NormalizeIDs(ids) })
}

// ToggleCategory добавляет отсутствующий id и удаляет присутствующий
func (s *Store) ToggleCategory(id string) {
	id = strings.TrimSpace(id)
	s.updateFilter(func(c *domain.FilterCriteria) {
		if id == "" || strings.Contains(id, ",") {
			return
		}
		if idx := slices.Index(c.Categories, id); idx >= 0 {
			c.Categories = slices.Delete(c.Categories, idx, idx+1)
			return
		}
		c.Categories = append(c.Categories, id)
	})
}

// SetPriceRange с nil снимает фильтр цены
func (s *Store) SetPriceRange(pr *domain.PriceRange) {
	s.updateFilter(func(c *domain.FilterCriteria) {
		if pr == nil {
			c.PriceRange = nil
			return
		}
		c.PriceRange = domain.NewPriceRange(pr.Min, pr.Max)
	})
}

// SetLocation меняет только город, радиус остается прежним
func (s *Store) SetLocation(cityID string) {
	s.updateFilter(func(c *domain.FilterCriteria) { c.Location.CityID = strings.TrimSpace(cityID) })
}

func (s *Store) SetLocationWithRadius(cityID string, radiusKm int) {
	if radiusKm <= 0 {
		radiusKm = domain.DefaultRadiusKm
	}
	s.updateFilter(func(c *domain.FilterCriteria) {
		c.Location = domain.Location{CityID: strings.TrimSpace(cityID), RadiusKm: radiusKm}
	})
}

func (s *Store) SetVenueTypes(ids []string) {
	s.updateFilter(func(c *domain.FilterCriteria) { c.VenueTypes = domain.NormalizeIDs(ids) })
}

func (s *Store) SetAmenityIDs(ids []string) {
	s.updateFilter(func(c *domain.FilterCriteria) { c.AmenityIDs = domain.NormalizeIDs(ids) })
}

// SetSortBy приводит неизвестные значения к relevance
func (s *Store) SetSortBy(sort domain.SortOption) {
	sort, _ = domain.ParseSortOption(string(sort))
	s.updateFilter(func(c *domain.FilterCriteria) { c.SortBy = sort })
}

func (s *Store) SetPageSize(size int) {
	size = domain.ClampPageSize(size)
	s.updateFilter(func(c *domain.FilterCriteria) { c.PageSize = size })
}

// SetPage не сбрасывает фильтры, n приводится к 1..MaxPage
func (s *Store) SetPage(n int) {
	n = domain.ClampPage(n)
	s.update(func(c *domain.FilterCriteria) { c.Page = n })
}

func (s *Store) SetViewMode(mode domain.ViewMode) {
	mode, _ = domain.ParseViewMode(string(mode))
	s.update(func(c *domain.FilterCriteria) { c.ViewMode = mode })
}

func (s *Store) ResetFilters() {
	s.update(func(c *domain.FilterCriteria) { *c = domain.DefaultCriteria() })
}

// Replace заменяет состояние целиком, используется при гидратации из URL
func (s *Store) Replace(criteria domain.FilterCriteria) {
	normalized := normalizeCriteria(criteria)
	s.update(func(c *domain.FilterCriteria) { *c = normalized })
}

func normalizeCriteria(in domain.FilterCriteria) domain.FilterCriteria {
	out := in.Clone()
	out.Categories = domain.NormalizeIDs(in.Categories)
	out.VenueTypes = domain.NormalizeIDs(in.VenueTypes)
	out.AmenityIDs = domain.NormalizeIDs(in.AmenityIDs)
	if in.PriceRange != nil {
		out.PriceRange = domain.NewPriceRange(in.PriceRange.Min, in.PriceRange.Max)
	}
	out.Location.CityID = strings.TrimSpace(in.Location.CityID)
	if out.Location.RadiusKm <= 0 {
		out.Location.RadiusKm = domain.DefaultRadiusKm
	}
	out.SortBy, _ = domain.ParseSortOption(string(in.SortBy))
	out.ViewMode, _ = domain.ParseViewMode(string(in.ViewMode))
	out.Page = domain.ClampPage(in.Page)
	out.PageSize = domain.ClampPageSize(in.PageSize)
	return out
}
