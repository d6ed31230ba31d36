package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RegistersEmbeddedSchemas(t *testing.T) {
	require.NoError(t, Load())
	assert.Contains(t, compiledSchemas, FavoriteChangedEvent)
	assert.Contains(t, compiledSchemas, ViewFiltersRequest)
}

func TestGenerateKeyFromPath(t *testing.T) {
	assert.Equal(t, "FavoriteChangedEvent/1.0.0", generateKeyFromPath("schemas/events/favorite-changed/v1.json"))
	assert.Equal(t, "ViewFiltersRequest/2.0.0", generateKeyFromPath("schemas/requests/view-filters/v2.json"))
	assert.Equal(t, "", generateKeyFromPath("schemas/other/thing/v1.json"))
	assert.Equal(t, "", generateKeyFromPath("schemas/events/v1.json"))
}

func TestValidateEvent_FavoriteChanged(t *testing.T) {
	valid := []byte(`{
		"event_id": "5f0c6a1e-8d1b-4f37-9a53-0c1f2b7f4e11",
		"user_id": "0b8f3f5c-3a7e-4d4e-9a9b-7d1c2e3f4a5b",
		"vendor_id": "9c2d1e0f-1a2b-4c3d-8e9f-0a1b2c3d4e5f",
		"vendor_type": "venue",
		"is_favorite": true,
		"changed_at": "2025-03-01T18:30:00Z"
	}`)
	assert.NoError(t, ValidateEvent("FavoriteChangedEvent", "1.0.0", valid))

	invalid := []byte(`{
		"event_id": "not-a-uuid",
		"user_id": "0b8f3f5c-3a7e-4d4e-9a9b-7d1c2e3f4a5b",
		"vendor_id": "9c2d1e0f-1a2b-4c3d-8e9f-0a1b2c3d4e5f",
		"vendor_type": "caterer",
		"is_favorite": true,
		"changed_at": "yesterday"
	}`)
	assert.Error(t, ValidateEvent("FavoriteChangedEvent", "1.0.0", invalid))

	assert.Error(t, ValidateEvent("FavoriteChangedEvent", "9.0.0", valid))
	assert.Error(t, ValidateEvent("FavoriteChangedEvent", "1.0.0", []byte("{")))
}

func TestValidate_ViewFiltersRequest(t *testing.T) {
	assert.NoError(t, Validate(ViewFiltersRequest, []byte(`{"mutations":[
		{"op":"set_search_query","text":"dj"},
		{"op":"set_location","city_id":"mainz","radius_km":25},
		{"op":"set_price_range","min":50,"max":200.5},
		{"op":"reset_filters"}
	]}`)))

	testCases := map[string]string{
		"unknown op":        `{"mutations":[{"op":"teleport"}]}`,
		"unknown field":     `{"mutations":[{"op":"set_page","pages":2}]}`,
		"missing mutations": `{}`,
		"zero radius":       `{"mutations":[{"op":"set_location","city_id":"x","radius_km":0}]}`,
		"wrong type":        `{"mutations":[{"op":"set_categories","ids":"house"}]}`,
	}
	for name, body := range testCases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, Validate(ViewFiltersRequest, []byte(body)))
		})
	}
}
