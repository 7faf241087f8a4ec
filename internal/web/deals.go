package web

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/erpfil/crm/internal/model"
	"github.com/erpfil/crm/internal/store"
)

// dealFormData carries a deal and the selectable customers into the form
// template.
type dealFormData struct {
	PageData
	Deal      *model.Deal
	Customers []model.Partner
	Action    string
}

func dealFormValues(r *http.Request) store.DealFields {
	customerID, _ := strconv.ParseInt(r.FormValue("customer"), 10, 64)
	return store.DealFields{
		Title:      r.FormValue("title"),
		Body:       r.FormValue("body"),
		CustomerID: customerID,
	}
}

// DealsPage handles GET /deals.
func (s *Server) DealsPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	deals, err := store.ListDeals(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list deals", "error", err)
	}

	s.Templates.Render(w, "deals.html", &struct {
		PageData
		Deals []model.Deal
	}{
		PageData: PageData{Title: "Deals", User: claims},
		Deals:    deals,
	})
}

func (s *Server) renderDealForm(w http.ResponseWriter, r *http.Request, title, action, errMsg string, deal *model.Deal) {
	claims := GetWebClaims(r.Context())
	// Only partners whose type carries the customer flag may hold deals.
	customers, err := store.ListDealPartners(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list deal partners", "error", err)
	}

	s.Templates.Render(w, "deal_form.html", &dealFormData{
		PageData:  PageData{Title: title, User: claims, Error: errMsg},
		Deal:      deal,
		Customers: customers,
		Action:    action,
	})
}

// DealCreatePage handles GET /deals/new.
func (s *Server) DealCreatePage(w http.ResponseWriter, r *http.Request) {
	s.renderDealForm(w, r, "New deal", "/deals/new", "", &model.Deal{})
}

// DealCreateSubmit handles POST /deals/new.
func (s *Server) DealCreateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	fields := dealFormValues(r)

	if strings.TrimSpace(fields.Title) == "" {
		s.renderDealForm(w, r, "New deal", "/deals/new", "Deal title is required.", &model.Deal{})
		return
	}

	if _, err := store.CreateDeal(r.Context(), s.DB, claims.UserID, fields); err != nil {
		storeError(w, err)
		return
	}

	slog.Info("deal created", "user", claims.Username, "title", fields.Title)
	http.Redirect(w, r, "/deals", http.StatusSeeOther)
}

// DealUpdatePage handles GET /deals/{id}/edit. Only the managing user may
// open a deal.
func (s *Server) DealUpdatePage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	deal, err := store.GetDeal(r.Context(), s.DB, id, claims.UserID, true)
	if err != nil {
		storeError(w, err)
		return
	}

	s.renderDealForm(w, r, deal.Title, r.URL.Path, "", deal)
}

// DealUpdateSubmit handles POST /deals/{id}/edit.
func (s *Server) DealUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	deal, err := store.GetDeal(r.Context(), s.DB, id, claims.UserID, true)
	if err != nil {
		storeError(w, err)
		return
	}

	fields := dealFormValues(r)
	if strings.TrimSpace(fields.Title) == "" {
		s.renderDealForm(w, r, deal.Title, r.URL.Path, "Deal title is required.", deal)
		return
	}

	if err := store.UpdateDeal(r.Context(), s.DB, id, fields); err != nil {
		storeError(w, err)
		return
	}

	slog.Info("deal updated", "user", claims.Username, "deal", id)
	http.Redirect(w, r, "/deals", http.StatusSeeOther)
}

// DealDeleteSubmit handles POST /deals/{id}/delete. Confirms existence and
// ownership first, then deletes unconditionally and returns to the list.
func (s *Server) DealDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if _, err := store.GetDeal(r.Context(), s.DB, id, claims.UserID, true); err != nil {
		storeError(w, err)
		return
	}

	if err := store.DeleteDeal(r.Context(), s.DB, id); err != nil {
		storeError(w, err)
		return
	}

	slog.Info("deal deleted", "user", claims.Username, "deal", id)
	http.Redirect(w, r, "/deals", http.StatusSeeOther)
}
