package rest

import (
	"discovery-service/internal/contextkeys"
	"discovery-service/internal/core/domain"
	"discovery-service/internal/core/port"
	"discovery-service/internal/core/port/usecases_port"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	defaultFavoritesLimit = 20
	maxFavoritesLimit     = 100
)

type FavoritesHandler struct {
	checkUC  usecases_port.CheckFavoriteUseCasePort
	addUC    usecases_port.AddToFavoritesUseCasePort
	removeUC usecases_port.RemoveFromFavoritesUseCasePort
	toggleUC usecases_port.ToggleFavoriteUseCasePort
	listUC   usecases_port.GetUserFavoritesUseCasePort
}

func NewFavoritesHandler(
	checkUC usecases_port.CheckFavoriteUseCasePort,
	addUC usecases_port.AddToFavoritesUseCasePort,
	removeUC usecases_port.RemoveFromFavoritesUseCasePort,
	toggleUC usecases_port.ToggleFavoriteUseCasePort,
	listUC usecases_port.GetUserFavoritesUseCasePort,
) *FavoritesHandler {
	return &FavoritesHandler{
		checkUC:  checkUC,
		addUC:    addUC,
		removeUC: removeUC,
		toggleUC: toggleUC,
		listUC:   listUC,
	}
}

// favoriteTarget - пользователь и исполнитель из контекста и URL
type favoriteTarget struct {
	userID     uuid.UUID
	vendorID   uuid.UUID
	vendorType domain.VendorType
	logger     port.LoggerPort
}

func (h *FavoritesHandler) parseTarget(w http.ResponseWriter, r *http.Request, handler string) (*favoriteTarget, bool) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": handler})

	caller, ok := contextkeys.CallerFromContext(r.Context())
	if !ok {
		logger.Error("Invalid or missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return nil, false
	}

	vendorType, err := domain.ParseVendorType(chi.URLParam(r, "vendorType"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	vendorIDStr := chi.URLParam(r, "vendorID")
	vendorID, err := uuid.Parse(vendorIDStr)
	if err != nil {
		logger.Warn("Invalid vendorID in URL", port.Fields{"provided_id": vendorIDStr})
		WriteJSONError(w, http.StatusBadRequest, "Invalid vendorID in URL")
		return nil, false
	}

	return &favoriteTarget{
		userID:     caller.UserID,
		vendorID:   vendorID,
		vendorType: vendorType,
		logger: logger.WithFields(port.Fields{
			"user_id":     caller.UserID,
			"auth_source": caller.Source,
			"vendor_id":   vendorID,
			"vendor_type": vendorType,
		}),
	}, true
}

func (t *favoriteTarget) status(isFavorite bool) FavoriteStatusResponse {
	return FavoriteStatusResponse{
		VendorID:   t.vendorID.String(),
		VendorType: string(t.vendorType),
		IsFavorite: isFavorite,
	}
}

// GetUserFavorites обрабатывает GET /api/v1/favorites
func (h *FavoritesHandler) GetUserFavorites(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetUserFavorites"})

	caller, ok := contextkeys.CallerFromContext(r.Context())
	if !ok {
		logger.Error("Invalid or missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	query := r.URL.Query()
	var vendorType domain.VendorType
	if raw := query.Get("type"); raw != "" {
		vt, err := domain.ParseVendorType(raw)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		vendorType = vt
	}

	limit := parseIntOrDefault(query.Get("limit"), defaultFavoritesLimit)
	if limit <= 0 || limit > maxFavoritesLimit {
		limit = defaultFavoritesLimit
	}
	offset := max(parseIntOrDefault(query.Get("offset"), 0), 0)

	handlerLogger := logger.WithFields(port.Fields{
		"user_id": caller.UserID, "auth_source": caller.Source, "limit": limit, "offset": offset,
	})

	result, err := h.listUC.Execute(r.Context(), caller.UserID, vendorType, limit, offset)
	if err != nil {
		handlerLogger.Error("Get user favorites use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve favorites")
		return
	}

	RespondWithJSON(w, http.StatusOK, toFavoritesResponse(result))
}

// CheckFavorite обрабатывает GET /api/v1/favorites/{vendorType}/{vendorID}
func (h *FavoritesHandler) CheckFavorite(w http.ResponseWriter, r *http.Request) {
	target, ok := h.parseTarget(w, r, "CheckFavorite")
	if !ok {
		return
	}

	isFavorite, err := h.checkUC.Execute(r.Context(), target.userID, target.vendorID, target.vendorType)
	if err != nil {
		target.logger.Error("Check favorite use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to check favorite")
		return
	}
	RespondWithJSON(w, http.StatusOK, target.status(isFavorite))
}

// AddToFavorites обрабатывает PUT /api/v1/favorites/{vendorType}/{vendorID}
func (h *FavoritesHandler) AddToFavorites(w http.ResponseWriter, r *http.Request) {
	target, ok := h.parseTarget(w, r, "AddToFavorites")
	if !ok {
		return
	}

	if err := h.addUC.Execute(r.Context(), target.userID, target.vendorID, target.vendorType); err != nil {
		target.logger.Error("Add to favorites use case failed", err, nil)
		if status := statusForError(err); status == http.StatusNotFound {
			WriteJSONError(w, status, "Vendor not found")
			return
		}
		WriteJSONError(w, http.StatusInternalServerError, "Failed to add to favorites")
		return
	}
	RespondWithJSON(w, http.StatusOK, target.status(true))
}

// RemoveFromFavorites обрабатывает DELETE /api/v1/favorites/{vendorType}/{vendorID}
func (h *FavoritesHandler) RemoveFromFavorites(w http.ResponseWriter, r *http.Request) {
	target, ok := h.parseTarget(w, r, "RemoveFromFavorites")
	if !ok {
		return
	}

	if err := h.removeUC.Execute(r.Context(), target.userID, target.vendorID, target.vendorType); err != nil {
		target.logger.Error("Remove from favorites use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to remove from favorites")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleFavorite обрабатывает POST /api/v1/favorites/{vendorType}/{vendorID}/toggle
func (h *FavoritesHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	target, ok := h.parseTarget(w, r, "ToggleFavorite")
	if !ok {
		return
	}

	isFavorite, err := h.toggleUC.Execute(r.Context(), target.userID, target.vendorID, target.vendorType)
	if err != nil {
		target.logger.Error("Toggle favorite use case failed", err, nil)
		if status := statusForError(err); status == http.StatusNotFound {
			WriteJSONError(w, status, "Vendor not found")
			return
		}
		WriteJSONError(w, http.StatusInternalServerError, "Failed to toggle favorite")
		return
	}
	RespondWithJSON(w, http.StatusOK, target.status(isFavorite))
}
