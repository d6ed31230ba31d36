package rest

import (
	"discovery-service/internal/core/discovery"
	"discovery-service/internal/core/domain"
	"discovery-service/internal/core/port/usecases_port"
	"net/http"
	"strings"
)

type FilterHandler struct {
	getFilterOptionsUC usecases_port.GetFilterOptionsUseCasePort
	getDictionariesUC  usecases_port.GetDictionariesUseCasePort
}

func NewFilterHandler(getFilterOptionsUC usecases_port.GetFilterOptionsUseCasePort,
	getDictionariesUC usecases_port.GetDictionariesUseCasePort) *FilterHandler {
	return &FilterHandler{
		getFilterOptionsUC: getFilterOptionsUC,
		getDictionariesUC:  getDictionariesUC,
	}
}

// GetFilterOptions обрабатывает GET /api/v1/filters/options?vendorType=...
// Остальные параметры читаются как фильтры экрана поиска.
func (h *FilterHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	vendorType, err := domain.ParseVendorType(r.URL.Query().Get("vendorType"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "vendorType is required: artist or venue")
		return
	}

	criteria := discovery.ParseQuery(r.URL.RawQuery)
	options, err := h.getFilterOptionsUC.Execute(r.Context(), vendorType, criteria)
	if err != nil {
		WriteJSONError(w, http.StatusInternalServerError, "Failed to get filter options")
		return
	}

	response := FilterResponse{
		Filters: make(map[string]FilterOptionResponse, len(options.Options)),
		Count:   options.Count,
	}
	for key, value := range options.Options {
		response.Filters[key] = FilterOptionResponse{
			Options: toDictionaryResponses(value.Options),
			Min:     value.Min,
			Max:     value.Max,
		}
	}

	RespondWithJSON(w, http.StatusOK, response)
}

// GetDictionaries обрабатывает GET /api/v1/dictionaries?names=genres,cities
func (h *FilterHandler) GetDictionaries(w http.ResponseWriter, r *http.Request) {
	var names []string
	if namesStr := r.URL.Query().Get("names"); namesStr != "" {
		names = strings.Split(namesStr, ",")
	}

	dictionaries, err := h.getDictionariesUC.Execute(r.Context(), names)
	if err != nil {
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve dictionaries")
		return
	}

	response := make(DictionaryItemsResponse, len(dictionaries))
	for key, items := range dictionaries {
		response[key] = make([]DictionaryItemResponse, 0, len(items))
		for _, item := range items {
			response[key] = append(response[key], DictionaryItemResponse{
				SystemName:  item.SystemName,
				DisplayName: item.DisplayName,
			})
		}
	}

	RespondWithJSON(w, http.StatusOK, response)
}

// toDictionaryResponses переводит элементы справочников в DTO, прочие значения оставляет как есть
func toDictionaryResponses(options []interface{}) []interface{} {
	if options == nil {
		return nil
	}
	out := make([]interface{}, len(options))
	for i, opt := range options {
		if item, ok := opt.(domain.DictionaryItem); ok {
			out[i] = DictionaryItemResponse{SystemName: item.SystemName, DisplayName: item.DisplayName}
			continue
		}
		out[i] = opt
	}
	return out
}
