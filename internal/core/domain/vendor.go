package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// VendorType - тип исполнителя на маркетплейсе
type VendorType string

const (
	VendorTypeArtist VendorType = "artist"
	VendorTypeVenue  VendorType = "venue"
)

// ParseVendorType принимает как "artist", так и "ARTIST"/"artists"
func ParseVendorType(raw string) (VendorType, error) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(raw)), "s") {
	case string(VendorTypeArtist):
		return VendorTypeArtist, nil
	case string(VendorTypeVenue):
		return VendorTypeVenue, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidVendorType, raw)
}

// VendorRecord - карточка исполнителя в результатах поиска
type VendorRecord struct {
	ID          uuid.UUID  `json:"id"`
	VendorType  VendorType `json:"vendor_type"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CityID      string     `json:"city_id"`
	CityName    string     `json:"city_name"`
	CategoryIDs []string   `json:"category_ids"`
	VenueType   string     `json:"venue_type,omitempty"`
	AmenityIDs  []string   `json:"amenity_ids,omitempty"`
	PriceMin    *float64   `json:"price_min,omitempty"`
	PriceMax    *float64   `json:"price_max,omitempty"`
	Rating      *float64   `json:"rating,omitempty"`
	ImageURL    string     `json:"image_url"`
	Geohash     string     `json:"geohash"`
	CreatedAt   time.Time  `json:"created_at"`
}

// VendorPage - "сырой" ответ каталога: данные и, если известно, общее количество
type VendorPage struct {
	Data  []VendorRecord
	Count *int
}

// Paging - окно выборки
type Paging struct {
	Limit  int
	Offset int
}

// StructuredFilters - фильтры для режима списка
type StructuredFilters struct {
	Categories []string
	PriceRange *PriceRange
	CityID     string
	RadiusKm   int
	VenueTypes []string
	AmenityIDs []string
	SortBy     SortOption
}
