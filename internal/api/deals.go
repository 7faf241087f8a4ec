package api

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/erpfil/crm/internal/model"
	"github.com/erpfil/crm/internal/store"
)

// DealsHandler handles deal CRUD endpoints. Deals are visible only to the
// manager who created them, unlike partners and customers.
type DealsHandler struct {
	DB *sql.DB
}

type dealRequest struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	CustomerID int64  `json:"customer_id"`
}

func (req dealRequest) fields() store.DealFields {
	return store.DealFields{
		Title:      req.Title,
		Body:       req.Body,
		CustomerID: req.CustomerID,
	}
}

// List handles GET /api/deals.
func (h *DealsHandler) List(w http.ResponseWriter, r *http.Request) {
	deals, err := store.ListDeals(r.Context(), h.DB)
	if err != nil {
		storeError(w, err)
		return
	}
	if deals == nil {
		deals = []model.Deal{}
	}
	jsonResponse(w, http.StatusOK, deals)
}

// Create handles POST /api/deals.
func (h *DealsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req dealRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		jsonError(w, http.StatusBadRequest, "title required")
		return
	}
	if req.CustomerID == 0 {
		jsonError(w, http.StatusBadRequest, "customer_id required")
		return
	}

	deal, err := store.CreateDeal(r.Context(), h.DB, claims.UserID, req.fields())
	if err != nil {
		storeError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, deal)
}

// Get handles GET /api/deals/{id}.
func (h *DealsHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid deal id")
		return
	}

	deal, err := store.GetDeal(r.Context(), h.DB, id, claims.UserID, true)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, deal)
}

// Update handles PUT /api/deals/{id}.
func (h *DealsHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid deal id")
		return
	}

	var req dealRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		jsonError(w, http.StatusBadRequest, "title required")
		return
	}

	if _, err := store.GetDeal(r.Context(), h.DB, id, claims.UserID, true); err != nil {
		storeError(w, err)
		return
	}

	if err := store.UpdateDeal(r.Context(), h.DB, id, req.fields()); err != nil {
		storeError(w, err)
		return
	}

	deal, err := store.GetDeal(r.Context(), h.DB, id, claims.UserID, true)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, deal)
}

// Delete handles DELETE /api/deals/{id}.
func (h *DealsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid deal id")
		return
	}

	if _, err := store.GetDeal(r.Context(), h.DB, id, claims.UserID, true); err != nil {
		storeError(w, err)
		return
	}

	if err := store.DeleteDeal(r.Context(), h.DB, id); err != nil {
		storeError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "deal deleted"})
}
