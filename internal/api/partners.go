package api

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/erpfil/crm/internal/imaging"
	"github.com/erpfil/crm/internal/model"
	"github.com/erpfil/crm/internal/store"
)

// PartnersHandler handles partner CRUD endpoints.
type PartnersHandler struct {
	DB *sql.DB
}

type partnerRequest struct {
	Title         string `json:"title"`
	TypeID        int64  `json:"partner_type_id"`
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
	Website       string `json:"website"`
	ContactPerson string `json:"contact_person"`
	Address       string `json:"address"`
	Note          string `json:"note"`
}

func (req partnerRequest) fields() store.PartnerFields {
	return store.PartnerFields{
		Title:         req.Title,
		TypeID:        req.TypeID,
		FullName:      req.FullName,
		Phone:         req.Phone,
		Website:       req.Website,
		ContactPerson: req.ContactPerson,
		Address:       req.Address,
		Note:          req.Note,
	}
}

// List handles GET /api/partners. With ?customers=1 only partners whose type
// carries the customer flag are returned.
func (h *PartnersHandler) List(w http.ResponseWriter, r *http.Request) {
	var partners []model.Partner
	var err error
	if r.URL.Query().Get("customers") == "1" {
		partners, err = store.ListDealPartners(r.Context(), h.DB)
	} else {
		partners, err = store.ListPartners(r.Context(), h.DB)
	}
	if err != nil {
		storeError(w, err)
		return
	}
	if partners == nil {
		partners = []model.Partner{}
	}
	jsonResponse(w, http.StatusOK, partners)
}

// ListTypes handles GET /api/partner-types.
func (h *PartnersHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := store.ListPartnerTypes(r.Context(), h.DB)
	if err != nil {
		storeError(w, err)
		return
	}
	if types == nil {
		types = []model.PartnerType{}
	}
	jsonResponse(w, http.StatusOK, types)
}

// Create handles POST /api/partners.
func (h *PartnersHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req partnerRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		jsonError(w, http.StatusBadRequest, "title required")
		return
	}
	if req.TypeID == 0 {
		jsonError(w, http.StatusBadRequest, "partner_type_id required")
		return
	}

	partner, err := store.CreatePartner(r.Context(), h.DB, claims.UserID, req.fields())
	if err != nil {
		storeError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, partner)
}

// Get handles GET /api/partners/{id}.
func (h *PartnersHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid partner id")
		return
	}

	partner, err := store.GetPartner(r.Context(), h.DB, id, claims.UserID, false)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, partner)
}

// Update handles PUT /api/partners/{id}.
func (h *PartnersHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid partner id")
		return
	}

	var req partnerRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		jsonError(w, http.StatusBadRequest, "title required")
		return
	}

	if _, err := store.GetPartner(r.Context(), h.DB, id, claims.UserID, false); err != nil {
		storeError(w, err)
		return
	}

	if err := store.UpdatePartner(r.Context(), h.DB, id, req.fields()); err != nil {
		storeError(w, err)
		return
	}

	partner, err := store.GetPartner(r.Context(), h.DB, id, claims.UserID, false)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, partner)
}

// Delete handles DELETE /api/partners/{id}.
func (h *PartnersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid partner id")
		return
	}

	if _, err := store.GetPartner(r.Context(), h.DB, id, claims.UserID, false); err != nil {
		storeError(w, err)
		return
	}

	if err := store.DeletePartner(r.Context(), h.DB, id); err != nil {
		storeError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "partner deleted"})
}

// UploadLogo handles PUT /api/partners/{id}/logo.
func (h *PartnersHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid partner id")
		return
	}

	if _, err := store.GetPartner(r.Context(), h.DB, id, claims.UserID, false); err != nil {
		storeError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)
	result, err := imaging.Process(r.Body)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetPartnerLogo(r.Context(), h.DB, id, result.Data, result.MIME); err != nil {
		storeError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "logo updated"})
}

// GetLogo handles GET /api/partners/{id}/logo.
func (h *PartnersHandler) GetLogo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid partner id")
		return
	}

	data, mime, err := store.GetPartnerLogo(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err)
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no logo")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Write(data)
}
