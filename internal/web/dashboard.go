package web

import (
	"log/slog"
	"net/http"

	"github.com/erpfil/crm/internal/model"
	"github.com/erpfil/crm/internal/store"
)

// Dashboard handles GET /. Shows entity counts and the actor's own deals.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	stats, err := store.GetStats(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to get stats", "error", err)
		stats = &store.Stats{}
	}

	myDeals, err := store.ListDealsByManager(r.Context(), s.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to list deals", "error", err)
	}
	if len(myDeals) > 5 {
		myDeals = myDeals[:5]
	}

	s.Templates.Render(w, "dashboard.html", &struct {
		PageData
		Stats   *store.Stats
		MyDeals []model.Deal
	}{
		PageData: PageData{Title: "Dashboard", User: claims},
		Stats:    stats,
		MyDeals:  myDeals,
	})
}
