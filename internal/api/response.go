package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erpfil/crm/internal/store"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// storeError maps accessor failures to JSON responses: ErrNotFound becomes
// 404, ErrForbidden 403, anything else 500.
func storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		jsonError(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrForbidden):
		jsonError(w, http.StatusForbidden, "forbidden")
	default:
		slog.Error("request failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}
