package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// QueryKey - сравнимый снимок полей, влияющих на результат.
// ViewMode и Page в ключ не входят.
type QueryKey struct {
	VendorType  VendorType
	SearchQuery string
	Categories  string
	HasPrice    bool
	PriceMin    float64
	PriceMax    float64
	CityID      string
	RadiusKm    int
	VenueTypes  string
	AmenityIDs  string
	SortBy      SortOption
	PageSize    int
}

// Key строит ключ запроса для типа исполнителя
func (c FilterCriteria) Key(vendorType VendorType) QueryKey {
	key := QueryKey{
		VendorType:  vendorType,
		SearchQuery: c.SearchQuery,
		Categories:  canonicalSet(c.Categories),
		CityID:      c.Location.CityID,
		RadiusKm:    c.Location.RadiusKm,
		VenueTypes:  canonicalSet(c.VenueTypes),
		AmenityIDs:  canonicalSet(c.AmenityIDs),
		SortBy:      c.SortBy,
		PageSize:    c.PageSize,
	}
	if c.PriceRange != nil {
		key.HasPrice = true
		key.PriceMin = c.PriceRange.Min
		key.PriceMax = c.PriceRange.Max
	}
	return key
}

func canonicalSet(ids []string) string {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	return strings.Join(sorted, ",")
}

// String - стабильное текстовое представление, используется как ключ кеша
func (k QueryKey) String() string {
	price := "-"
	if k.HasPrice {
		price = strconv.FormatFloat(k.PriceMin, 'f', -1, 64) + ".." + strconv.FormatFloat(k.PriceMax, 'f', -1, 64)
	}
	return fmt.Sprintf("%s|q=%s|c=%s|p=%s|city=%s|r=%d|vt=%s|a=%s|s=%s|ps=%d",
		k.VendorType, strconv.Quote(k.SearchQuery), k.Categories, price, k.CityID, k.RadiusKm,
		k.VenueTypes, k.AmenityIDs, k.SortBy, k.PageSize)
}
