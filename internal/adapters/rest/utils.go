package rest

import (
	"discovery-service/internal/core/discovery"
	"discovery-service/internal/core/domain"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
)

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(response)
}

// statusForError сопоставляет ошибки ядра HTTP-статусам.
// Все, что не распознано, считается сбоем каталога.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrViewNotFound), errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTooManyViews):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrInvalidVendorType),
		errors.Is(err, domain.ErrInvalidCursor),
		errors.Is(err, discovery.ErrUnknownMutation),
		errors.Is(err, discovery.ErrInvalidMutation):
		return http.StatusBadRequest
	case errors.Is(err, discovery.ErrAlreadyMounted):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

// parseIntOrDefault возвращает def для пустого или нечислового значения
func parseIntOrDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
