package web

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/erpfil/crm/internal/model"
	"github.com/erpfil/crm/internal/store"
)

// customerFormData carries a customer into the create/update form template.
type customerFormData struct {
	PageData
	Customer *model.Customer
	Action   string
}

func customerFormValues(r *http.Request) store.CustomerFields {
	return store.CustomerFields{
		Title:         r.FormValue("title"),
		FullName:      r.FormValue("full_name"),
		Phone:         r.FormValue("phone"),
		Website:       r.FormValue("website"),
		ContactPerson: r.FormValue("contact_person"),
		Address:       r.FormValue("address"),
		Note:          r.FormValue("note"),
	}
}

// CustomersPage handles GET /customers.
func (s *Server) CustomersPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	customers, err := store.ListCustomers(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list customers", "error", err)
	}

	s.Templates.Render(w, "customers.html", &struct {
		PageData
		Customers []model.Customer
	}{
		PageData:  PageData{Title: "Customers", User: claims},
		Customers: customers,
	})
}

// CustomerCreatePage handles GET /customers/new.
func (s *Server) CustomerCreatePage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	s.Templates.Render(w, "customer_form.html", &customerFormData{
		PageData: PageData{Title: "New customer", User: claims},
		Customer: &model.Customer{},
		Action:   "/customers/new",
	})
}

// CustomerCreateSubmit handles POST /customers/new.
func (s *Server) CustomerCreateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	fields := customerFormValues(r)

	if strings.TrimSpace(fields.Title) == "" {
		s.Templates.Render(w, "customer_form.html", &customerFormData{
			PageData: PageData{Title: "New customer", User: claims, Error: "Customer title is required."},
			Customer: &model.Customer{},
			Action:   "/customers/new",
		})
		return
	}

	if _, err := store.CreateCustomer(r.Context(), s.DB, claims.UserID, fields); err != nil {
		storeError(w, err)
		return
	}

	slog.Info("customer created", "user", claims.Username, "title", fields.Title)
	http.Redirect(w, r, "/customers", http.StatusSeeOther)
}

// CustomerUpdatePage handles GET /customers/{id}/edit.
func (s *Server) CustomerUpdatePage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	customer, err := store.GetCustomer(r.Context(), s.DB, id, claims.UserID, false)
	if err != nil {
		storeError(w, err)
		return
	}

	s.Templates.Render(w, "customer_form.html", &customerFormData{
		PageData: PageData{Title: customer.Title, User: claims},
		Customer: customer,
		Action:   r.URL.Path,
	})
}

// CustomerUpdateSubmit handles POST /customers/{id}/edit.
func (s *Server) CustomerUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	customer, err := store.GetCustomer(r.Context(), s.DB, id, claims.UserID, false)
	if err != nil {
		storeError(w, err)
		return
	}

	fields := customerFormValues(r)
	if strings.TrimSpace(fields.Title) == "" {
		s.Templates.Render(w, "customer_form.html", &customerFormData{
			PageData: PageData{Title: customer.Title, User: claims, Error: "Customer title is required."},
			Customer: customer,
			Action:   r.URL.Path,
		})
		return
	}

	if err := store.UpdateCustomer(r.Context(), s.DB, id, fields); err != nil {
		storeError(w, err)
		return
	}

	slog.Info("customer updated", "user", claims.Username, "customer", id)
	http.Redirect(w, r, "/customers", http.StatusSeeOther)
}

// CustomerDeleteSubmit handles POST /customers/{id}/delete. Confirms
// existence first, then deletes unconditionally and returns to the list.
func (s *Server) CustomerDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if _, err := store.GetCustomer(r.Context(), s.DB, id, claims.UserID, false); err != nil {
		storeError(w, err)
		return
	}

	if err := store.DeleteCustomer(r.Context(), s.DB, id); err != nil {
		storeError(w, err)
		return
	}

	slog.Info("customer deleted", "user", claims.Username, "customer", id)
	http.Redirect(w, r, "/customers", http.StatusSeeOther)
}
