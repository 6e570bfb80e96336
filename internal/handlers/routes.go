package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"scoutscore/internal/metrics"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// countRequests records request counts per status code
func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		metrics.HTTPRequests.WithLabelValues(strconv.Itoa(ww.Status())).Inc()
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(countRequests)

	// Static files (served from embedded filesystem)
	r.Handle("/static/*", http.StripPrefix("/static/", h.staticServer))

	// Public scoreboard
	r.Get("/", h.handleScoreboardPage)
	r.Get("/api/scoreboard", h.handleGetScoreboard)
	r.Get("/api/stations/{id}/scores", h.handleGetStationScores)

	// WebSocket
	r.Get("/ws", h.Hub.ServeWs)

	// Health and metrics
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondOK(w, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", metrics.Handler())

	// Auth routes (public)
	r.Get("/login", h.handleLoginPage)
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)

	// Scoring pages (logged-in users, section checks happen in the API)
	r.Group(func(r chi.Router) {
		r.Use(h.Sessions.RequireAuth)
		r.Get("/stations/{id}/score", h.handleScorePage)
	})

	// Scoring API (logged-in users)
	r.Group(func(r chi.Router) {
		r.Use(h.Sessions.RequireAuthAPI)
		r.Get("/api/me", h.handleGetMe)
		r.Get("/api/scores", h.handleGetScore)
		r.Put("/api/scores", h.handleSetScore)
		r.Post("/api/scores/retry", h.handleRetryScore)
		r.Get("/api/scores/state", h.handleGetScoreState)
	})

	// Admin pages (protected)
	r.Group(func(r chi.Router) {
		r.Use(h.Sessions.RequireAuth)
		r.Get("/admin", h.handleAdminDashboard)
		r.Get("/admin/competitions", h.handleAdminCompetitions)
		r.Get("/admin/stations", h.handleAdminStations)
		r.Get("/admin/patrols", h.handleAdminPatrols)
		r.Get("/admin/groups", h.handleAdminGroups)
		r.Get("/admin/users", h.handleAdminUsers)
		r.Get("/admin/settings", h.handleAdminSettings)
	})

	// Admin API (protected; per-competition role checks happen in the handlers)
	r.Group(func(r chi.Router) {
		r.Use(h.Sessions.RequireAuthAPI)

		// Competitions
		r.Get("/api/admin/competitions", h.handleGetCompetitions)
		r.Get("/api/admin/competitions/{id}", h.handleGetCompetition)
		r.Post("/api/admin/competitions", h.handleCreateCompetition)
		r.Put("/api/admin/competitions/{id}", h.handleUpdateCompetition)
		r.Post("/api/admin/competitions/{id}/close", h.handleCloseCompetition)
		r.Post("/api/admin/competitions/{id}/reopen", h.handleReopenCompetition)
		r.Post("/api/admin/competitions/{id}/select", h.handleSelectCompetition)
		r.Delete("/api/admin/competitions/{id}", h.handleDeleteCompetition)

		// Stations
		r.Get("/api/admin/stations", h.handleGetStations)
		r.Get("/api/admin/stations/{id}", h.handleGetStation)
		r.Post("/api/admin/stations", h.handleCreateStation)
		r.Put("/api/admin/stations/{id}", h.handleUpdateStation)
		r.Delete("/api/admin/stations/{id}", h.handleDeleteStation)

		// Patrols
		r.Get("/api/admin/patrols", h.handleGetPatrols)
		r.Post("/api/admin/patrols", h.handleCreatePatrol)
		r.Put("/api/admin/patrols/{id}", h.handleUpdatePatrol)
		r.Delete("/api/admin/patrols/{id}", h.handleDeletePatrol)

		// Scout groups and templates
		r.Get("/api/admin/groups", h.handleGetGroups)
		r.Post("/api/admin/groups", h.handleCreateGroup)
		r.Put("/api/admin/groups/{id}", h.handleUpdateGroup)
		r.Delete("/api/admin/groups/{id}", h.handleDeleteGroup)
		r.Get("/api/admin/group-templates", h.handleGetTemplates)
		r.Post("/api/admin/group-templates", h.handleCreateTemplate)
		r.Delete("/api/admin/group-templates/{id}", h.handleDeleteTemplate)
		r.Post("/api/admin/competitions/{id}/apply-templates", h.handleApplyTemplates)

		// Scoutnet
		r.Post("/api/admin/competitions/{id}/import-scoutnet", h.handleImportScoutnet)

		// Users and roles
		r.Get("/api/admin/users", h.handleGetUsers)
		r.Post("/api/admin/users", h.handleCreateUser)
		r.Delete("/api/admin/users/{id}", h.handleDeleteUser)
		r.Put("/api/admin/users/{id}/global-admin", h.handleSetGlobalAdmin)
		r.Post("/api/admin/users/{id}/competition-admin", h.handleGrantCompetitionAdmin)
		r.Delete("/api/admin/users/{id}/competition-admin", h.handleRevokeCompetitionAdmin)
		r.Post("/api/admin/users/{id}/scorer", h.handleGrantScorer)
		r.Delete("/api/admin/users/{id}/scorer", h.handleRevokeScorer)

		// Settings
		r.Get("/api/admin/settings", h.handleGetSettings)
		r.Put("/api/admin/settings", h.handleUpdateSettings)

		// QR codes
		r.Get("/api/admin/qr/scoreboard", h.handleGetScoreboardQR)
		r.Get("/api/admin/stations/{id}/qr", h.handleGetStationQR)
	})

	return r
}
