package web

import (
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/erpfil/crm/internal/model"
	"github.com/erpfil/crm/internal/store"
)

// SettingsPage handles GET /settings.
func (s *Server) SettingsPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	s.Templates.Render(w, "settings.html", &PageData{
		Title: "Settings",
		User:  claims,
	})
}

// SettingsSubmit handles POST /settings (change own password).
func (s *Server) SettingsSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	render := func(errMsg, successMsg string) {
		s.Templates.Render(w, "settings.html", &PageData{
			Title:   "Settings",
			User:    claims,
			Error:   errMsg,
			Success: successMsg,
		})
	}

	currentPassword := r.FormValue("current_password")
	newPassword := r.FormValue("new_password")

	if currentPassword == "" || newPassword == "" {
		render("Enter the current and the new password.", "")
		return
	}

	if err := model.ValidatePassword(newPassword); err != nil {
		render(err.Error(), "")
		return
	}

	user, err := store.GetUser(r.Context(), s.DB, claims.UserID)
	if err != nil || user == nil {
		render("Failed to look up the account.", "")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		render("The current password is incorrect.", "")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		render("Failed to save the new password.", "")
		return
	}

	if err := store.UpdateUserPassword(r.Context(), s.DB, claims.UserID, string(hash)); err != nil {
		render("Failed to save the new password.", "")
		return
	}

	slog.Info("user changed own password", "user", claims.Username)
	render("", "Password updated.")
}
