package handlers

import (
	"net/http"

	"scoutscore/internal/auth"
)

// LoginPageData holds data for the login template
type LoginPageData struct {
	Error string
}

// handleLoginPage renders the login form
func (h *Handlers) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	// If already logged in, redirect to admin
	if _, ok := h.Sessions.UserIDFromRequest(r); ok {
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}

	h.templates.Login.Execute(w, LoginPageData{})
}

// handleLogin processes login form submission
func (h *Handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := h.Roles.Authenticate(r.Context(), email, password)
	if err != nil {
		h.templates.Login.Execute(w, LoginPageData{
			Error: "Invalid email or password",
		})
		return
	}

	token := h.Sessions.Create(user.ID)
	auth.SetSessionCookie(w, token)
	http.Redirect(w, r, "/admin", http.StatusFound)
}

// handleLogout clears the session and redirects to login
func (h *Handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		h.Sessions.Destroy(cookie.Value)
	}

	auth.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}

// handleGetMe returns the authenticated user's account and grants
func (h *Handlers) handleGetMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		GlobalAdmin: user.GlobalAdmin,
		Grants:      h.Roles.ListScorerGrants(r.Context(), user.ID),
	})
}
