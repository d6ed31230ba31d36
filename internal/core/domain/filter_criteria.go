package domain

import (
	"math"
	"slices"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
	DefaultRadiusKm = 50

	// MaxPage ограничивает номер страницы так, чтобы смещение помещалось в int
	MaxPage   = 1_000_000
	MaxOffset = (MaxPage - 1) * MaxPageSize
)

// SortOption - порядок сортировки результатов
type SortOption string

const (
	SortRelevance SortOption = "relevance"
	SortPriceLow  SortOption = "price_low"
	SortPriceHigh SortOption = "price_high"
	SortRating    SortOption = "rating"
	SortNewest    SortOption = "newest"
)

// ParseSortOption возвращает false для неизвестных значений
func ParseSortOption(raw string) (SortOption, bool) {
	switch s := SortOption(raw); s {
	case SortRelevance, SortPriceLow, SortPriceHigh, SortRating, SortNewest:
		return s, true
	}
	return SortRelevance, false
}

// ViewMode - режим отображения, на запросы не влияет
type ViewMode string

const (
	ViewModeGrid ViewMode = "grid"
	ViewModeList ViewMode = "list"
)

func ParseViewMode(raw string) (ViewMode, bool) {
	switch m := ViewMode(raw); m {
	case ViewModeGrid, ViewModeList:
		return m, true
	}
	return ViewModeGrid, false
}

// PriceRange - обе границы всегда заданы
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// NewPriceRange возвращает nil, если хотя бы одна граница не конечное число
func NewPriceRange(min, max float64) *PriceRange {
	if math.IsNaN(min) || math.IsInf(min, 0) || math.IsNaN(max) || math.IsInf(max, 0) {
		return nil
	}
	return &PriceRange{Min: min, Max: max}
}

type Location struct {
	CityID   string `json:"city_id"`
	RadiusKm int    `json:"radius_km"`
}

// FilterCriteria - полное состояние фильтров одного экрана поиска
type FilterCriteria struct {
	SearchQuery string
	Categories  []string
	PriceRange  *PriceRange
	Location    Location
	VenueTypes  []string
	AmenityIDs  []string
	SortBy      SortOption
	Page        int
	PageSize    int
	ViewMode    ViewMode
}

func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		Categories: []string{},
		Location:   Location{RadiusKm: DefaultRadiusKm},
		VenueTypes: []string{},
		AmenityIDs: []string{},
		SortBy:     SortRelevance,
		Page:       DefaultPage,
		PageSize:   DefaultPageSize,
		ViewMode:   ViewModeGrid,
	}
}

// Clone делает глубокую копию, снапшоты не делят память со стором
func (c FilterCriteria) Clone() FilterCriteria {
	out := c
	out.Categories = slices.Clone(c.Categories)
	out.VenueTypes = slices.Clone(c.VenueTypes)
	out.AmenityIDs = slices.Clone(c.AmenityIDs)
	if out.Categories == nil {
		out.Categories = []string{}
	}
	if out.VenueTypes == nil {
		out.VenueTypes = []string{}
	}
	if out.AmenityIDs == nil {
		out.AmenityIDs = []string{}
	}
	if c.PriceRange != nil {
		pr := *c.PriceRange
		out.PriceRange = &pr
	}
	return out
}

func (c FilterCriteria) Equal(o FilterCriteria) bool {
	if c.SearchQuery != o.SearchQuery || c.Location != o.Location || c.SortBy != o.SortBy ||
		c.Page != o.Page || c.PageSize != o.PageSize || c.ViewMode != o.ViewMode {
		return false
	}
	if (c.PriceRange == nil) != (o.PriceRange == nil) {
		return false
	}
	if c.PriceRange != nil && *c.PriceRange != *o.PriceRange {
		return false
	}
	return slices.Equal(c.Categories, o.Categories) &&
		slices.Equal(c.VenueTypes, o.VenueTypes) &&
		slices.Equal(c.AmenityIDs, o.AmenityIDs)
}

// ActiveFilterCount считает измерения фильтра, отличные от значений по умолчанию.
// Непустой список считается за одно измерение независимо от длины.
func (c FilterCriteria) ActiveFilterCount() int {
	dimensions := []bool{
		c.SearchQuery != "",
		len(c.Categories) > 0,
		c.PriceRange != nil,
		c.Location.CityID != "",
		c.SortBy != SortRelevance,
		len(c.VenueTypes) > 0,
		len(c.AmenityIDs) > 0,
	}
	count := 0
	for _, active := range dimensions {
		if active {
			count++
		}
	}
	return count
}

// NormalizeIDs приводит список идентификаторов к множеству с сохранением порядка
func NormalizeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || strings.Contains(id, ",") {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ClampPageSize возвращает размер по умолчанию для значений вне 1..MaxPageSize
func ClampPageSize(size int) int {
	if size < 1 || size > MaxPageSize {
		return DefaultPageSize
	}
	return size
}

// ClampPage приводит номер страницы к 1..MaxPage
func ClampPage(page int) int {
	switch {
	case page < DefaultPage:
		return DefaultPage
	case page > MaxPage:
		return MaxPage
	}
	return page
}

// Paging - окно выборки для текущей страницы
func (c FilterCriteria) Paging() Paging {
	size := ClampPageSize(c.PageSize)
	return Paging{Limit: size, Offset: (ClampPage(c.Page) - 1) * size}
}

// StructuredFilters выделяет фильтры для режима списка
func (c FilterCriteria) StructuredFilters() StructuredFilters {
	f := StructuredFilters{
		Categories: slices.Clone(c.Categories),
		CityID:     c.Location.CityID,
		RadiusKm:   c.Location.RadiusKm,
		VenueTypes: slices.Clone(c.VenueTypes),
		AmenityIDs: slices.Clone(c.AmenityIDs),
		SortBy:     c.SortBy,
	}
	if c.PriceRange != nil {
		pr := *c.PriceRange
		f.PriceRange = &pr
	}
	return f
}
