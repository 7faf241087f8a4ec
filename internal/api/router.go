package api

import (
	"database/sql"
	"net/http"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	customersHandler := &CustomersHandler{DB: db}
	partnersHandler := &PartnersHandler{DB: db}
	dealsHandler := &DealsHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated routes.
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	// Customers (legacy entity, kept for older clients).
	mux.Handle("GET /api/customers", authMW(http.HandlerFunc(customersHandler.List)))
	mux.Handle("POST /api/customers", authMW(http.HandlerFunc(customersHandler.Create)))
	mux.Handle("GET /api/customers/{id}", authMW(http.HandlerFunc(customersHandler.Get)))
	mux.Handle("PUT /api/customers/{id}", authMW(http.HandlerFunc(customersHandler.Update)))
	mux.Handle("DELETE /api/customers/{id}", authMW(http.HandlerFunc(customersHandler.Delete)))

	// Partners.
	mux.Handle("GET /api/partners", authMW(http.HandlerFunc(partnersHandler.List)))
	mux.Handle("POST /api/partners", authMW(http.HandlerFunc(partnersHandler.Create)))
	mux.Handle("GET /api/partners/{id}", authMW(http.HandlerFunc(partnersHandler.Get)))
	mux.Handle("PUT /api/partners/{id}", authMW(http.HandlerFunc(partnersHandler.Update)))
	mux.Handle("DELETE /api/partners/{id}", authMW(http.HandlerFunc(partnersHandler.Delete)))
	mux.Handle("PUT /api/partners/{id}/logo", authMW(http.HandlerFunc(partnersHandler.UploadLogo)))
	mux.Handle("GET /api/partners/{id}/logo", authMW(http.HandlerFunc(partnersHandler.GetLogo)))
	mux.Handle("GET /api/partner-types", authMW(http.HandlerFunc(partnersHandler.ListTypes)))

	// Deals (scoped to the signed-in manager).
	mux.Handle("GET /api/deals", authMW(http.HandlerFunc(dealsHandler.List)))
	mux.Handle("POST /api/deals", authMW(http.HandlerFunc(dealsHandler.Create)))
	mux.Handle("GET /api/deals/{id}", authMW(http.HandlerFunc(dealsHandler.Get)))
	mux.Handle("PUT /api/deals/{id}", authMW(http.HandlerFunc(dealsHandler.Update)))
	mux.Handle("DELETE /api/deals/{id}", authMW(http.HandlerFunc(dealsHandler.Delete)))

	return mux
}
