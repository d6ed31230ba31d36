package rest

import (
	"discovery-service/internal/contextkeys"
	"discovery-service/internal/contracts"
	"discovery-service/internal/core/discovery"
	"discovery-service/internal/core/domain"
	"discovery-service/internal/core/port"
	"discovery-service/internal/core/port/usecases_port"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxRequestBodyBytes = 1 << 20

type DiscoveryHandler struct {
	searchUC       usecases_port.SearchVendorsUseCasePort
	openViewUC     usecases_port.OpenViewUseCasePort
	getViewUC      usecases_port.GetViewUseCasePort
	applyFiltersUC usecases_port.ApplyViewFiltersUseCasePort
	loadMoreUC     usecases_port.LoadMoreViewUseCasePort
	getPageUC      usecases_port.GetViewPageUseCasePort
	closeViewUC    usecases_port.CloseViewUseCasePort
}

func NewDiscoveryHandler(
	searchUC usecases_port.SearchVendorsUseCasePort,
	openViewUC usecases_port.OpenViewUseCasePort,
	getViewUC usecases_port.GetViewUseCasePort,
	applyFiltersUC usecases_port.ApplyViewFiltersUseCasePort,
	loadMoreUC usecases_port.LoadMoreViewUseCasePort,
	getPageUC usecases_port.GetViewPageUseCasePort,
	closeViewUC usecases_port.CloseViewUseCasePort,
) *DiscoveryHandler {
	return &DiscoveryHandler{
		searchUC:       searchUC,
		openViewUC:     openViewUC,
		getViewUC:      getViewUC,
		applyFiltersUC: applyFiltersUC,
		loadMoreUC:     loadMoreUC,
		getPageUC:      getPageUC,
		closeViewUC:    closeViewUC,
	}
}

// Search обрабатывает GET /api/v1/discovery/{vendorType}
func (h *DiscoveryHandler) Search(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Search"})

	vendorType, err := domain.ParseVendorType(chi.URLParam(r, "vendorType"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	criteria := discovery.ParseQuery(r.URL.RawQuery)
	page, err := h.searchUC.Execute(r.Context(), vendorType, criteria, r.URL.Query().Get("cursor"))
	if err != nil {
		logger.Warn("Search failed", port.Fields{"error": err.Error()})
		WriteJSONError(w, statusForError(err), err.Error())
		return
	}

	RespondWithJSON(w, http.StatusOK, toResultPageResponse(page, criteria))
}

// OpenView обрабатывает POST /api/v1/discovery/{vendorType}/views.
// Query-строка запроса - это deep link, с которым открывается экран.
func (h *DiscoveryHandler) OpenView(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "OpenView"})

	vendorType, err := domain.ParseVendorType(chi.URLParam(r, "vendorType"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	state, err := h.openViewUC.Execute(r.Context(), vendorType, r.URL.RawQuery)
	if err != nil {
		logger.Warn("Open view failed", port.Fields{"error": err.Error()})
		writeViewError(w, err, state)
		return
	}

	w.Header().Set("Location", "/api/v1/discovery/views/"+state.ID.String())
	RespondWithJSON(w, http.StatusCreated, toViewStateResponse(state))
}

// GetView обрабатывает GET /api/v1/discovery/views/{viewID}
func (h *DiscoveryHandler) GetView(w http.ResponseWriter, r *http.Request) {
	viewID, ok := parseViewID(w, r)
	if !ok {
		return
	}

	state, err := h.getViewUC.Execute(r.Context(), viewID)
	if err != nil {
		WriteJSONError(w, statusForError(err), err.Error())
		return
	}
	RespondWithJSON(w, http.StatusOK, toViewStateResponse(state))
}

// ApplyFilters обрабатывает PATCH /api/v1/discovery/views/{viewID}/filters
func (h *DiscoveryHandler) ApplyFilters(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ApplyFilters"})

	viewID, ok := parseViewID(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	if err := contracts.Validate(contracts.ViewFiltersRequest, body); err != nil {
		logger.Warn("Request body does not match contract", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req ViewFiltersRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	state, err := h.applyFiltersUC.Execute(r.Context(), viewID, req.Mutations)
	if err != nil {
		logger.Warn("Apply filters failed", port.Fields{"view_id": viewID, "error": err.Error()})
		writeViewError(w, err, state)
		return
	}
	RespondWithJSON(w, http.StatusOK, toViewStateResponse(state))
}

// LoadMore обрабатывает POST /api/v1/discovery/views/{viewID}/more
func (h *DiscoveryHandler) LoadMore(w http.ResponseWriter, r *http.Request) {
	viewID, ok := parseViewID(w, r)
	if !ok {
		return
	}

	state, err := h.loadMoreUC.Execute(r.Context(), viewID)
	if err != nil {
		contextkeys.LoggerFromContext(r.Context()).Warn("Load more failed", port.Fields{"view_id": viewID, "error": err.Error()})
		writeViewError(w, err, state)
		return
	}
	RespondWithJSON(w, http.StatusOK, toViewStateResponse(state))
}

// GetPage обрабатывает GET /api/v1/discovery/views/{viewID}/page
func (h *DiscoveryHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	viewID, ok := parseViewID(w, r)
	if !ok {
		return
	}

	page, err := h.getPageUC.Execute(r.Context(), viewID)
	if err != nil {
		WriteJSONError(w, statusForError(err), err.Error())
		return
	}

	state, err := h.getViewUC.Execute(r.Context(), viewID)
	if err != nil {
		WriteJSONError(w, statusForError(err), err.Error())
		return
	}
	RespondWithJSON(w, http.StatusOK, toResultPageResponse(page, state.Criteria))
}

// CloseView обрабатывает DELETE /api/v1/discovery/views/{viewID}
func (h *DiscoveryHandler) CloseView(w http.ResponseWriter, r *http.Request) {
	viewID, ok := parseViewID(w, r)
	if !ok {
		return
	}

	if err := h.closeViewUC.Execute(r.Context(), viewID); err != nil {
		WriteJSONError(w, statusForError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseViewID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "viewID")
	viewID, err := uuid.Parse(raw)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid viewID in URL")
		return uuid.Nil, false
	}
	return viewID, true
}

// writeViewError прикладывает состояние экрана, если оно есть: фильтры после сбоя не теряются
func writeViewError(w http.ResponseWriter, err error, state discovery.ViewState) {
	resp := ErrorResponse{Error: err.Error()}
	if state.ID != uuid.Nil {
		resp.View = toViewStateResponse(state)
	}
	RespondWithJSON(w, statusForError(err), resp)
}
