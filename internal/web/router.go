package web

import (
	"database/sql"
	"net/http"

	webembed "github.com/erpfil/crm/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(db *sql.DB, jwtSecret string) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:        db,
		Templates: templates,
		JWTSecret: jwtSecret,
	}

	mux := http.NewServeMux()
	cookieAuth := CookieAuthMiddleware(jwtSecret, db)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("POST /logout", s.Logout)

	// Authenticated routes.
	mux.Handle("GET /{$}", cookieAuth(http.HandlerFunc(s.Dashboard)))

	mux.Handle("GET /customers", cookieAuth(http.HandlerFunc(s.CustomersPage)))
	mux.Handle("GET /customers/new", cookieAuth(http.HandlerFunc(s.CustomerCreatePage)))
	mux.Handle("POST /customers/new", cookieAuth(http.HandlerFunc(s.CustomerCreateSubmit)))
	mux.Handle("GET /customers/{id}/edit", cookieAuth(http.HandlerFunc(s.CustomerUpdatePage)))
	mux.Handle("POST /customers/{id}/edit", cookieAuth(http.HandlerFunc(s.CustomerUpdateSubmit)))
	mux.Handle("POST /customers/{id}/delete", cookieAuth(http.HandlerFunc(s.CustomerDeleteSubmit)))

	mux.Handle("GET /partners", cookieAuth(http.HandlerFunc(s.PartnersPage)))
	mux.Handle("GET /partners/new", cookieAuth(http.HandlerFunc(s.PartnerCreatePage)))
	mux.Handle("POST /partners/new", cookieAuth(http.HandlerFunc(s.PartnerCreateSubmit)))
	mux.Handle("GET /partners/{id}/edit", cookieAuth(http.HandlerFunc(s.PartnerUpdatePage)))
	mux.Handle("POST /partners/{id}/edit", cookieAuth(http.HandlerFunc(s.PartnerUpdateSubmit)))
	mux.Handle("POST /partners/{id}/delete", cookieAuth(http.HandlerFunc(s.PartnerDeleteSubmit)))
	mux.Handle("GET /partners/{id}/logo", cookieAuth(http.HandlerFunc(s.PartnerLogoGet)))
	mux.Handle("POST /partners/{id}/logo", cookieAuth(http.HandlerFunc(s.PartnerLogoSubmit)))

	mux.Handle("GET /deals", cookieAuth(http.HandlerFunc(s.DealsPage)))
	mux.Handle("GET /deals/new", cookieAuth(http.HandlerFunc(s.DealCreatePage)))
	mux.Handle("POST /deals/new", cookieAuth(http.HandlerFunc(s.DealCreateSubmit)))
	mux.Handle("GET /deals/{id}/edit", cookieAuth(http.HandlerFunc(s.DealUpdatePage)))
	mux.Handle("POST /deals/{id}/edit", cookieAuth(http.HandlerFunc(s.DealUpdateSubmit)))
	mux.Handle("POST /deals/{id}/delete", cookieAuth(http.HandlerFunc(s.DealDeleteSubmit)))

	mux.Handle("GET /settings", cookieAuth(http.HandlerFunc(s.SettingsPage)))
	mux.Handle("POST /settings", cookieAuth(http.HandlerFunc(s.SettingsSubmit)))

	return mux, nil
}
