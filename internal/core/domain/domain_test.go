package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestNewResultPage_NextCursor(t *testing.T) {
	items := []string{"a", "b", "c"}

	page := NewResultPage(items, intPtr(10), Paging{Limit: 3, Offset: 0})
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, 3, page.NextCursor.Offset)

	last := NewResultPage(items, intPtr(9), Paging{Limit: 3, Offset: 6})
	assert.Nil(t, last.NextCursor)
	assert.False(t, last.HasMore())
}

func TestNewResultPage_UnknownCountInfersFromFullPage(t *testing.T) {
	full := NewResultPage([]string{"a", "b"}, nil, Paging{Limit: 2, Offset: 4})
	require.NotNil(t, full.NextCursor)
	assert.Equal(t, 6, full.NextCursor.Offset)

	partial := NewResultPage([]string{"a"}, nil, Paging{Limit: 2, Offset: 4})
	assert.Nil(t, partial.NextCursor)
}

func TestNewResultPage_OutOfRangeIsEmpty(t *testing.T) {
	page := NewResultPage([]string{"stray"}, intPtr(5), Paging{Limit: 20, Offset: 40})
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.Nil(t, page.NextCursor)
}

func TestCursorEncoding(t *testing.T) {
	token := Cursor{Offset: 40}.Encode()
	cursor, err := ParseCursor(token)
	require.NoError(t, err)
	assert.Equal(t, 40, cursor.Offset)

	for _, bad := range []string{"", "!!", "b2Zmc2V0", Cursor{Offset: -1}.Encode(), Cursor{Offset: MaxOffset + 1}.Encode()} {
		_, err := ParseCursor(bad)
		assert.ErrorIs(t, err, ErrInvalidCursor, bad)
	}
}

func TestFilterCriteria_PagingNeverOverflows(t *testing.T) {
	c := DefaultCriteria()
	c.Page, c.PageSize = 3, 10
	assert.Equal(t, Paging{Limit: 10, Offset: 20}, c.Paging())

	c.Page, c.PageSize = math.MaxInt/4, MaxPageSize
	p := c.Paging()
	assert.Equal(t, MaxOffset, p.Offset)
	assert.GreaterOrEqual(t, p.Offset, 0)

	c.Page, c.PageSize = -3, 0
	assert.Equal(t, Paging{Limit: DefaultPageSize, Offset: 0}, c.Paging())
}

func TestPlanQuery_TextSearchThreshold(t *testing.T) {
	c := DefaultCriteria()
	c.SearchQuery = "jz"
	c.Categories = []string{"jazz"}
	plan := PlanQuery(c)
	structured, ok := plan.(StructuredQuery)
	require.True(t, ok, "two characters must stay in list mode")
	assert.Equal(t, []string{"jazz"}, structured.Filters.Categories)

	c.SearchQuery = "jazz"
	plan = PlanQuery(c)
	fullText, ok := plan.(FullTextQuery)
	require.True(t, ok)
	assert.Equal(t, "jazz", fullText.Text)
}

func TestPlanQuery_CountsRunesOfTrimmedText(t *testing.T) {
	c := DefaultCriteria()
	c.SearchQuery = "  äö  "
	_, ok := PlanQuery(c).(StructuredQuery)
	assert.True(t, ok)

	c.SearchQuery = "äöü"
	_, ok = PlanQuery(c).(FullTextQuery)
	assert.True(t, ok)
}

func TestActiveFilterCount_Monotonic(t *testing.T) {
	base := DefaultCriteria()
	require.Equal(t, 0, base.ActiveFilterCount())

	mutations := map[string]func(*FilterCriteria){
		"search":     func(c *FilterCriteria) { c.SearchQuery = "dj" },
		"categories": func(c *FilterCriteria) { c.Categories = []string{"house", "techno"} },
		"price":      func(c *FilterCriteria) { c.PriceRange = &PriceRange{Min: 50, Max: 200} },
		"city":       func(c *FilterCriteria) { c.Location.CityID = "berlin" },
		"sort":       func(c *FilterCriteria) { c.SortBy = SortRating },
		"venueTypes": func(c *FilterCriteria) { c.VenueTypes = []string{"CLUB"} },
		"amenities":  func(c *FilterCriteria) { c.AmenityIDs = []string{"bar", "stage"} },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			c := DefaultCriteria()
			c.SearchQuery = "rock"
			before := c.ActiveFilterCount()
			mutate(&c)
			assert.Equal(t, before+1, c.ActiveFilterCount())
		})
	}

	notFilters := DefaultCriteria()
	notFilters.Page = 4
	notFilters.PageSize = 50
	notFilters.ViewMode = ViewModeList
	assert.Equal(t, 0, notFilters.ActiveFilterCount())
}

func TestQueryKey_IgnoresPresentationAndOrder(t *testing.T) {
	a := DefaultCriteria()
	a.Categories = []string{"house", "jazz"}
	a.PriceRange = &PriceRange{Min: 10, Max: 90}

	b := a.Clone()
	b.Categories = []string{"jazz", "house"}
	b.ViewMode = ViewModeList
	b.Page = 7

	assert.Equal(t, a.Key(VendorTypeArtist), b.Key(VendorTypeArtist))
	assert.Equal(t, a.Key(VendorTypeArtist).String(), b.Key(VendorTypeArtist).String())
	assert.NotEqual(t, a.Key(VendorTypeArtist), a.Key(VendorTypeVenue))

	b.PriceRange = &PriceRange{Min: 10, Max: 95}
	assert.NotEqual(t, a.Key(VendorTypeArtist), b.Key(VendorTypeArtist))
}

func TestCloneIsDeep(t *testing.T) {
	a := DefaultCriteria()
	a.Categories = []string{"house"}
	a.PriceRange = &PriceRange{Min: 1, Max: 2}

	b := a.Clone()
	b.Categories[0] = "rock"
	b.PriceRange.Max = 99

	assert.Equal(t, "house", a.Categories[0])
	assert.Equal(t, 2.0, a.PriceRange.Max)
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(a.Clone()))
}

func TestNormalizeIDs(t *testing.T) {
	got := NormalizeIDs([]string{" music ", "", "dance", "music", "a,b", "dance", "jazz"})
	assert.Equal(t, []string{"music", "dance", "jazz"}, got)
	assert.Empty(t, NormalizeIDs(nil))
}

func TestNewPriceRange_RejectsNonFinite(t *testing.T) {
	assert.Nil(t, NewPriceRange(math.NaN(), 10))
	assert.Nil(t, NewPriceRange(0, math.Inf(1)))
	assert.Equal(t, &PriceRange{Min: 0, Max: 10}, NewPriceRange(0, 10))
}

func TestParseVendorType(t *testing.T) {
	for raw, want := range map[string]VendorType{"artist": VendorTypeArtist, "ARTIST": VendorTypeArtist, "venues": VendorTypeVenue} {
		got, err := ParseVendorType(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseVendorType("organizer")
	assert.ErrorIs(t, err, ErrInvalidVendorType)
}
