package discovery

import (
	"discovery-service/internal/core/domain"
	"errors"
	"fmt"
)

var (
	ErrUnknownMutation = errors.New("unknown filter mutation")
	ErrInvalidMutation = errors.New("invalid filter mutation")
)

// Операции над фильтрами, приходящие от клиента
const (
	OpSetSearchQuery  = "set_search_query"
	OpSetCategories   = "set_categories"
	OpToggleCategory  = "toggle_category"
	OpSetPriceRange   = "set_price_range"
	OpClearPriceRange = "clear_price_range"
	OpSetLocation     = "set_location"
	OpSetVenueTypes   = "set_venue_types"
	OpSetAmenityIDs   = "set_amenity_ids"
	OpSetSortBy       = "set_sort_by"
	OpSetPage         = "set_page"
	OpSetPageSize     = "set_page_size"
	OpSetViewMode     = "set_view_mode"
	OpResetFilters    = "reset_filters"
)

// Mutation - сериализуемая команда изменения фильтров
type Mutation struct {
	Op       string   `json:"op"`
	Text     string   `json:"text,omitempty"`
	IDs      []string `json:"ids,omitempty"`
	ID       string   `json:"id,omitempty"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	CityID   string   `json:"city_id,omitempty"`
	RadiusKm *int     `json:"radius_km,omitempty"`
	Sort     string   `json:"sort,omitempty"`
	Page     int      `json:"page,omitempty"`
	PageSize int      `json:"page_size,omitempty"`
	ViewMode string   `json:"view_mode,omitempty"`
}

// Apply применяет команду к стору
func (s *Store) Apply(m Mutation) error {
	switch m.Op {
	case OpSetSearchQuery:
		s.SetSearchQuery(m.Text)
	case OpSetCategories:
		s.SetCategories(m.IDs)
	case OpToggleCategory:
		s.ToggleCategory(m.ID)
	case OpSetPriceRange:
		if m.Min == nil || m.Max == nil {
			return fmt.Errorf("%w: %s requires both min and max", ErrInvalidMutation, m.Op)
		}
		s.SetPriceRange(&domain.PriceRange{Min: *m.Min, Max: *m.Max})
	case OpClearPriceRange:
		s.SetPriceRange(nil)
	case OpSetLocation:
		if m.RadiusKm != nil {
			s.SetLocationWithRadius(m.CityID, *m.RadiusKm)
		} else {
			s.SetLocation(m.CityID)
		}
	case OpSetVenueTypes:
		s.SetVenueTypes(m.IDs)
	case OpSetAmenityIDs:
		s.SetAmenityIDs(m.IDs)
	case OpSetSortBy:
		s.SetSortBy(domain.SortOption(m.Sort))
	case OpSetPage:
		s.SetPage(m.Page)
	case OpSetPageSize:
		s.SetPageSize(m.PageSize)
	case OpSetViewMode:
		s.SetViewMode(domain.ViewMode(m.ViewMode))
	case OpResetFilters:
		s.ResetFilters()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMutation, m.Op)
	}
	return nil
}

// ApplyAll применяет команды по порядку и останавливается на первой ошибке
func (s *Store) ApplyAll(mutations []Mutation) error {
	for i, m := range mutations {
		if err := s.Apply(m); err != nil {
			return fmt.Errorf("mutation %d: %w", i, err)
		}
	}
	return nil
}
