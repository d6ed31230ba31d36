package rest

import (
	"discovery-service/internal/core/discovery"
	"discovery-service/internal/core/domain"
	"time"
)

// ErrorResponse - стандартная структура для ответа с ошибкой.
// View заполняется, когда у экрана есть состояние, которое клиенту стоит показать.
type ErrorResponse struct {
	Error string             `json:"error"`
	View  *ViewStateResponse `json:"view,omitempty"`
}

// VendorCardResponse - карточка исполнителя в выдаче
type VendorCardResponse struct {
	ID          string    `json:"id"`
	VendorType  string    `json:"vendor_type"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CityID      string    `json:"city_id,omitempty"`
	CityName    string    `json:"city_name,omitempty"`
	CategoryIDs []string  `json:"category_ids"`
	VenueType   string    `json:"venue_type,omitempty"`
	AmenityIDs  []string  `json:"amenity_ids,omitempty"`
	PriceMin    *float64  `json:"price_min,omitempty"`
	PriceMax    *float64  `json:"price_max,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ResultPageResponse - страница выдачи без состояния
type ResultPageResponse struct {
	Items      []VendorCardResponse `json:"items"`
	TotalCount *int                 `json:"total_count"`
	NextCursor string               `json:"next_cursor,omitempty"`
	HasMore    bool                 `json:"has_more"`
	Offset     int                  `json:"offset"`
	Limit      int                  `json:"limit"`
	// Query - каноническая query-строка текущих фильтров
	Query string `json:"query"`
}

type PriceRangeResponse struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type LocationResponse struct {
	CityID   string `json:"city_id"`
	RadiusKm int    `json:"radius_km"`
}

// FiltersResponse - состояние фильтров экрана
type FiltersResponse struct {
	SearchQuery string              `json:"search_query"`
	Categories  []string            `json:"categories"`
	PriceRange  *PriceRangeResponse `json:"price_range"`
	Location    LocationResponse    `json:"location"`
	VenueTypes  []string            `json:"venue_types"`
	AmenityIDs  []string            `json:"amenity_ids"`
	SortBy      string              `json:"sort_by"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	ViewMode    string              `json:"view_mode"`
}

// ResultsResponse - накопленная выдача экрана
type ResultsResponse struct {
	Status      string               `json:"status"`
	Items       []VendorCardResponse `json:"items"`
	TotalCount  *int                 `json:"total_count"`
	NextCursor  string               `json:"next_cursor,omitempty"`
	HasMore     bool                 `json:"has_more"`
	LoadingMore bool                 `json:"loading_more"`
	Error       string               `json:"error,omitempty"`
}

type ViewStateResponse struct {
	ID                string          `json:"id"`
	VendorType        string          `json:"vendor_type"`
	Location          string          `json:"location"`
	Filters           FiltersResponse `json:"filters"`
	ActiveFilterCount int             `json:"active_filter_count"`
	Results           ResultsResponse `json:"results"`
}

// ViewFiltersRequest - тело PATCH /discovery/views/{viewID}/filters
type ViewFiltersRequest struct {
	Mutations []discovery.Mutation `json:"mutations"`
}

type FavoriteStatusResponse struct {
	VendorID   string `json:"vendor_id"`
	VendorType string `json:"vendor_type"`
	IsFavorite bool   `json:"is_favorite"`
}

// FavoriteCardResponse - элемент избранного. Vendor равен null, если исполнитель снят с публикации.
type FavoriteCardResponse struct {
	VendorID   string              `json:"vendor_id"`
	VendorType string              `json:"vendor_type"`
	AddedAt    time.Time           `json:"added_at"`
	Vendor     *VendorCardResponse `json:"vendor"`
}

// PaginatedFavoritesResponse - структура для ответа со списком избранного.
type PaginatedFavoritesResponse struct {
	Data    []FavoriteCardResponse `json:"data"`
	Total   int64                  `json:"total"`
	Page    int                    `json:"page"`
	PerPage int                    `json:"per_page"`
}

type FilterResponse struct {
	Filters map[string]FilterOptionResponse `json:"filters"`
	Count   int                             `json:"count"`
}

type FilterOptionResponse struct {
	Options []interface{} `json:"options,omitempty"`
	Min     interface{}   `json:"min,omitempty"`
	Max     interface{}   `json:"max,omitempty"`
}

type DictionaryItemsResponse map[string][]DictionaryItemResponse

type DictionaryItemResponse struct {
	SystemName  string `json:"system_name"`
	DisplayName string `json:"display_name"`
}

func toVendorCard(r domain.VendorRecord) VendorCardResponse {
	categories := r.CategoryIDs
	if categories == nil {
		categories = []string{}
	}
	return VendorCardResponse{
		ID:          r.ID.String(),
		VendorType:  string(r.VendorType),
		Name:        r.Name,
		Description: r.Description,
		CityID:      r.CityID,
		CityName:    r.CityName,
		CategoryIDs: categories,
		VenueType:   r.VenueType,
		AmenityIDs:  r.AmenityIDs,
		PriceMin:    r.PriceMin,
		PriceMax:    r.PriceMax,
		Rating:      r.Rating,
		ImageURL:    r.ImageURL,
		CreatedAt:   r.CreatedAt,
	}
}

func toVendorCards(records []domain.VendorRecord) []VendorCardResponse {
	cards := make([]VendorCardResponse, len(records))
	for i, r := range records {
		cards[i] = toVendorCard(r)
	}
	return cards
}

func encodeCursor(c *domain.Cursor) string {
	if c == nil {
		return ""
	}
	return c.Encode()
}

func toResultPageResponse(page domain.ResultPage[domain.VendorRecord], criteria domain.FilterCriteria) ResultPageResponse {
	return ResultPageResponse{
		Items:      toVendorCards(page.Items),
		TotalCount: page.TotalCount,
		NextCursor: encodeCursor(page.NextCursor),
		HasMore:    page.HasMore(),
		Offset:     page.Offset,
		Limit:      page.Limit,
		Query:      discovery.EncodeQuery(criteria),
	}
}

func toFiltersResponse(c domain.FilterCriteria) FiltersResponse {
	resp := FiltersResponse{
		SearchQuery: c.SearchQuery,
		Categories:  c.Categories,
		Location:    LocationResponse{CityID: c.Location.CityID, RadiusKm: c.Location.RadiusKm},
		VenueTypes:  c.VenueTypes,
		AmenityIDs:  c.AmenityIDs,
		SortBy:      string(c.SortBy),
		Page:        c.Page,
		PageSize:    c.PageSize,
		ViewMode:    string(c.ViewMode),
	}
	if c.PriceRange != nil {
		resp.PriceRange = &PriceRangeResponse{Min: c.PriceRange.Min, Max: c.PriceRange.Max}
	}
	return resp
}

func toViewStateResponse(s discovery.ViewState) *ViewStateResponse {
	results := ResultsResponse{
		Status:      string(s.Results.Status),
		Items:       toVendorCards(s.Results.Items),
		TotalCount:  s.Results.TotalCount,
		NextCursor:  encodeCursor(s.Results.NextCursor),
		HasMore:     s.Results.NextCursor != nil,
		LoadingMore: s.Results.LoadingMore,
	}
	if s.Results.Err != nil {
		results.Error = s.Results.Err.Error()
	}
	return &ViewStateResponse{
		ID:                s.ID.String(),
		VendorType:        string(s.VendorType),
		Location:          s.Location,
		Filters:           toFiltersResponse(s.Criteria),
		ActiveFilterCount: s.ActiveFilterCount,
		Results:           results,
	}
}

func toFavoritesResponse(p *domain.PaginatedFavoriteCards) PaginatedFavoritesResponse {
	resp := PaginatedFavoritesResponse{
		Data:    make([]FavoriteCardResponse, len(p.Items)),
		Total:   p.TotalCount,
		Page:    p.CurrentPage,
		PerPage: p.ItemsPerPage,
	}
	for i, item := range p.Items {
		card := FavoriteCardResponse{
			VendorID:   item.VendorID.String(),
			VendorType: string(item.VendorType),
			AddedAt:    item.CreatedAt,
		}
		if item.Vendor != nil {
			v := toVendorCard(*item.Vendor)
			card.Vendor = &v
		}
		resp.Data[i] = card
	}
	return resp
}
