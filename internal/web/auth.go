package web

import (
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/erpfil/crm/internal/auth"
	"github.com/erpfil/crm/internal/store"
)

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", &PageData{Title: "Sign in"})
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	if username == "" || password == "" {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Sign in",
			Error: "Enter a username and password.",
		})
		return
	}

	user, err := store.GetUserByUsername(r.Context(), s.DB, username)
	if err != nil || user == nil {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Sign in",
			Error: "Incorrect username or password.",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		slog.Warn("login failed", "username", username, "remote", r.RemoteAddr)
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Sign in",
			Error: "Incorrect username or password.",
		})
		return
	}

	token, err := auth.GenerateToken(s.JWTSecret, user.ID, user.Username)
	if err != nil {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Sign in",
			Error: "Sign-in failed, try again.",
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(auth.TokenExpiry / time.Second),
	})

	slog.Info("user logged in", "user", user.Username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles POST /logout. Revokes the current token so the cookie is
// useless afterwards.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
		if claims, err := auth.ValidateToken(s.JWTSecret, cookie.Value); err == nil && claims.ID != "" {
			expiry := time.Now().Add(auth.TokenExpiry)
			if claims.ExpiresAt != nil {
				expiry = claims.ExpiresAt.Time
			}
			if err := store.RevokeToken(r.Context(), s.DB, claims.ID, expiry); err != nil {
				slog.Error("failed to revoke token on logout", "error", err)
			}
		}
	}

	clearAuthCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
