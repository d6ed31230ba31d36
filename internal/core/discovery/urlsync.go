package discovery

import (
	"discovery-service/internal/core/domain"
	"net/url"
	"strconv"
	"strings"
)

// Ключи query-строки
const (
	ParamQuery      = "q"
	ParamCategories = "categories"
	ParamPriceMin   = "priceMin"
	ParamPriceMax   = "priceMax"
	ParamCityID     = "cityId"
	ParamRadius     = "radius"
	ParamVenueTypes = "venueTypes"
	ParamAmenities  = "amenities"
	ParamSort       = "sort"
	ParamPage       = "page"
	ParamPageSize   = "pageSize"
)

// ToSearchParams выводит только поля, отличные от значений по умолчанию.
// ViewMode не сериализуется.
func ToSearchParams(c domain.FilterCriteria) url.Values {
	v := url.Values{}
	if c.SearchQuery != "" {
		v.Set(ParamQuery, c.SearchQuery)
	}
	if len(c.Categories) > 0 {
		v.Set(ParamCategories, strings.Join(c.Categories, ","))
	}
	if c.PriceRange != nil {
		v.Set(ParamPriceMin, formatFloat(c.PriceRange.Min))
		v.Set(ParamPriceMax, formatFloat(c.PriceRange.Max))
	}
	if c.Location.CityID != "" {
		v.Set(ParamCityID, c.Location.CityID)
	}
	if c.Location.CityID != "" || c.Location.RadiusKm != domain.DefaultRadiusKm {
		v.Set(ParamRadius, strconv.Itoa(c.Location.RadiusKm))
	}
	if len(c.VenueTypes) > 0 {
		v.Set(ParamVenueTypes, strings.Join(c.VenueTypes, ","))
	}
	if len(c.AmenityIDs) > 0 {
		v.Set(ParamAmenities, strings.Join(c.AmenityIDs, ","))
	}
	if c.SortBy != domain.SortRelevance {
		v.Set(ParamSort, string(c.SortBy))
	}
	if c.Page != domain.DefaultPage {
		v.Set(ParamPage, strconv.Itoa(c.Page))
	}
	if c.PageSize != domain.DefaultPageSize {
		v.Set(ParamPageSize, strconv.Itoa(c.PageSize))
	}
	return v
}

// EncodeQuery - query-строка без ведущего "?", ключи отсортированы
func EncodeQuery(c domain.FilterCriteria) string {
	return ToSearchParams(c).Encode()
}

// HydrateFromParams строит состояние с нуля: отсутствующие ключи дают значения по умолчанию,
// некорректные значения считаются отсутствующими.
func HydrateFromParams(v url.Values) domain.FilterCriteria {
	c := domain.DefaultCriteria()

	c.SearchQuery = v.Get(ParamQuery)
	c.Categories = parseIDList(v, ParamCategories)
	c.VenueTypes = parseIDList(v, ParamVenueTypes)
	c.AmenityIDs = parseIDList(v, ParamAmenities)

	priceMin, okMin := parseFloat(v, ParamPriceMin)
	priceMax, okMax := parseFloat(v, ParamPriceMax)
	if okMin && okMax {
		c.PriceRange = domain.NewPriceRange(priceMin, priceMax)
	}

	c.Location.CityID = strings.TrimSpace(v.Get(ParamCityID))
	if radius, ok := parsePositiveInt(v, ParamRadius); ok {
		c.Location.RadiusKm = radius
	}

	if sort, ok := domain.ParseSortOption(v.Get(ParamSort)); ok {
		c.SortBy = sort
	}
	if page, ok := parsePositiveInt(v, ParamPage); ok && page <= domain.MaxPage {
		c.Page = page
	}
	if size, ok := parsePositiveInt(v, ParamPageSize); ok {
		c.PageSize = domain.ClampPageSize(size)
	}
	return c
}

// ParseQuery разбирает сырую query-строку. Битые пары пропускаются.
func ParseQuery(raw string) domain.FilterCriteria {
	raw = strings.TrimPrefix(raw, "?")
	values, _ := url.ParseQuery(raw)
	if values == nil {
		values = url.Values{}
	}
	return HydrateFromParams(values)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func parseFloat(v url.Values, key string) (float64, bool) {
	raw := strings.TrimSpace(v.Get(key))
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func parsePositiveInt(v url.Values, key string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(v.Get(key)))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// parseIDList принимает как "a,b", так и повторяющиеся ключи
func parseIDList(v url.Values, key string) []string {
	var ids []string
	for _, raw := range v[key] {
		ids = append(ids, strings.Split(raw, ",")...)
	}
	return domain.NormalizeIDs(ids)
}
