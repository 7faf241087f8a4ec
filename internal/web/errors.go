package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/erpfil/crm/internal/store"
)

// storeError maps accessor failures to HTTP responses: ErrNotFound becomes a
// 404 page, ErrForbidden a 403 page, anything else is fatal for the request.
func storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, store.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
