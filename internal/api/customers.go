package api

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/erpfil/crm/internal/model"
	"github.com/erpfil/crm/internal/store"
)

// CustomersHandler handles customer CRUD endpoints.
type CustomersHandler struct {
	DB *sql.DB
}

type customerRequest struct {
	Title         string `json:"title"`
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
	Website       string `json:"website"`
	ContactPerson string `json:"contact_person"`
	Address       string `json:"address"`
	Note          string `json:"note"`
}

func (req customerRequest) fields() store.CustomerFields {
	return store.CustomerFields{
		Title:         req.Title,
		FullName:      req.FullName,
		Phone:         req.Phone,
		Website:       req.Website,
		ContactPerson: req.ContactPerson,
		Address:       req.Address,
		Note:          req.Note,
	}
}

// List handles GET /api/customers.
func (h *CustomersHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := store.ListCustomers(r.Context(), h.DB)
	if err != nil {
		storeError(w, err)
		return
	}
	if customers == nil {
		customers = []model.Customer{}
	}
	jsonResponse(w, http.StatusOK, customers)
}

// Create handles POST /api/customers.
func (h *CustomersHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req customerRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		jsonError(w, http.StatusBadRequest, "title required")
		return
	}

	customer, err := store.CreateCustomer(r.Context(), h.DB, claims.UserID, req.fields())
	if err != nil {
		storeError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, customer)
}

// Get handles GET /api/customers/{id}.
func (h *CustomersHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	customer, err := store.GetCustomer(r.Context(), h.DB, id, claims.UserID, false)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, customer)
}

// Update handles PUT /api/customers/{id}.
func (h *CustomersHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	var req customerRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		jsonError(w, http.StatusBadRequest, "title required")
		return
	}

	if _, err := store.GetCustomer(r.Context(), h.DB, id, claims.UserID, false); err != nil {
		storeError(w, err)
		return
	}

	if err := store.UpdateCustomer(r.Context(), h.DB, id, req.fields()); err != nil {
		storeError(w, err)
		return
	}

	customer, err := store.GetCustomer(r.Context(), h.DB, id, claims.UserID, false)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, customer)
}

// Delete handles DELETE /api/customers/{id}.
func (h *CustomersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	if _, err := store.GetCustomer(r.Context(), h.DB, id, claims.UserID, false); err != nil {
		storeError(w, err)
		return
	}

	if err := store.DeleteCustomer(r.Context(), h.DB, id); err != nil {
		storeError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "customer deleted"})
}
