package web

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/erpfil/crm/internal/imaging"
	"github.com/erpfil/crm/internal/model"
	"github.com/erpfil/crm/internal/store"
)

// partnerFormData carries a partner and the type lookup into the form
// template.
type partnerFormData struct {
	PageData
	Partner *model.Partner
	Types   []model.PartnerType
	Action  string
}

func partnerFormValues(r *http.Request) store.PartnerFields {
	typeID, _ := strconv.ParseInt(r.FormValue("partner_type"), 10, 64)
	return store.PartnerFields{
		Title:         r.FormValue("title"),
		TypeID:        typeID,
		FullName:      r.FormValue("full_name"),
		Phone:         r.FormValue("phone"),
		Website:       r.FormValue("website"),
		ContactPerson: r.FormValue("contact_person"),
		Address:       r.FormValue("address"),
		Note:          r.FormValue("note"),
	}
}

// PartnersPage handles GET /partners.
func (s *Server) PartnersPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	partners, err := store.ListPartners(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list partners", "error", err)
	}

	s.Templates.Render(w, "partners.html", &struct {
		PageData
		Partners []model.Partner
	}{
		PageData: PageData{Title: "Partners", User: claims},
		Partners: partners,
	})
}

func (s *Server) renderPartnerForm(w http.ResponseWriter, r *http.Request, title, action, errMsg string, partner *model.Partner) {
	claims := GetWebClaims(r.Context())
	types, err := store.ListPartnerTypes(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list partner types", "error", err)
	}

	s.Templates.Render(w, "partner_form.html", &partnerFormData{
		PageData: PageData{Title: title, User: claims, Error: errMsg},
		Partner:  partner,
		Types:    types,
		Action:   action,
	})
}

// newPartnerDefaults pre-fills the create form. The website field starts
// with the scheme so managers paste a bare domain after it.
func newPartnerDefaults() *model.Partner {
	return &model.Partner{Website: "http://"}
}

// PartnerCreatePage handles GET /partners/new.
func (s *Server) PartnerCreatePage(w http.ResponseWriter, r *http.Request) {
	s.renderPartnerForm(w, r, "New partner", "/partners/new", "", newPartnerDefaults())
}

// PartnerCreateSubmit handles POST /partners/new.
func (s *Server) PartnerCreateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	fields := partnerFormValues(r)

	if strings.TrimSpace(fields.Title) == "" {
		s.renderPartnerForm(w, r, "New partner", "/partners/new",
			"Partner title is required.", newPartnerDefaults())
		return
	}

	if _, err := store.CreatePartner(r.Context(), s.DB, claims.UserID, fields); err != nil {
		storeError(w, err)
		return
	}

	slog.Info("partner created", "user", claims.Username, "title", fields.Title)
	http.Redirect(w, r, "/partners", http.StatusSeeOther)
}

// PartnerUpdatePage handles GET /partners/{id}/edit.
func (s *Server) PartnerUpdatePage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	partner, err := store.GetPartner(r.Context(), s.DB, id, claims.UserID, false)
	if err != nil {
		storeError(w, err)
		return
	}

	s.renderPartnerForm(w, r, partner.Title, r.URL.Path, "", partner)
}

// PartnerUpdateSubmit handles POST /partners/{id}/edit.
func (s *Server) PartnerUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	partner, err := store.GetPartner(r.Context(), s.DB, id, claims.UserID, false)
	if err != nil {
		storeError(w, err)
		return
	}

	fields := partnerFormValues(r)
	if strings.TrimSpace(fields.Title) == "" {
		s.renderPartnerForm(w, r, partner.Title, r.URL.Path,
			"Partner title is required.", partner)
		return
	}

	if err := store.UpdatePartner(r.Context(), s.DB, id, fields); err != nil {
		storeError(w, err)
		return
	}

	slog.Info("partner updated", "user", claims.Username, "partner", id)
	http.Redirect(w, r, "/partners", http.StatusSeeOther)
}

// PartnerDeleteSubmit handles POST /partners/{id}/delete. Confirms existence
// first, then deletes unconditionally and returns to the list.
func (s *Server) PartnerDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if _, err := store.GetPartner(r.Context(), s.DB, id, claims.UserID, false); err != nil {
		storeError(w, err)
		return
	}

	if err := store.DeletePartner(r.Context(), s.DB, id); err != nil {
		storeError(w, err)
		return
	}

	slog.Info("partner deleted", "user", claims.Username, "partner", id)
	http.Redirect(w, r, "/partners", http.StatusSeeOther)
}

// PartnerLogoSubmit handles POST /partners/{id}/logo.
func (s *Server) PartnerLogoSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if _, err := store.GetPartner(r.Context(), s.DB, id, claims.UserID, false); err != nil {
		storeError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		http.Error(w, "file too large", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("logo")
	if err != nil {
		http.Error(w, "logo required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// Sniff the format from bytes, downscale and compress.
	result, err := imaging.Process(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := store.SetPartnerLogo(r.Context(), s.DB, id, result.Data, result.MIME); err != nil {
		storeError(w, err)
		return
	}

	slog.Info("partner logo uploaded", "user", claims.Username, "partner", id)
	http.Redirect(w, r, "/partners/"+strconv.FormatInt(id, 10)+"/edit", http.StatusSeeOther)
}

// PartnerLogoGet handles GET /partners/{id}/logo.
func (s *Server) PartnerLogoGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	data, mime, err := store.GetPartnerLogo(r.Context(), s.DB, id)
	if err != nil {
		storeError(w, err)
		return
	}
	if data == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", "inline")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write logo response", "error", err)
	}
}
