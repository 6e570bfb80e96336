package handlers

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"scoutscore/internal/auth"
	"scoutscore/internal/services"
	"scoutscore/internal/websocket"
)

// NewStaticServer creates a static file server from an fs.FS
func NewStaticServer(staticFS fs.FS) http.Handler {
	return http.FileServer(http.FS(staticFS))
}

// AdminPageData holds the data passed to admin templates
type AdminPageData struct {
	Title     string
	PageTitle string
	ActiveNav string
}

// Templates holds all parsed HTML templates
type Templates struct {
	Scoreboard        *template.Template
	Score             *template.Template
	Login             *template.Template
	AdminDashboard    *template.Template
	AdminCompetitions *template.Template
	AdminStations     *template.Template
	AdminPatrols      *template.Template
	AdminGroups       *template.Template
	AdminUsers        *template.Template
	AdminSettings     *template.Template
}

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Competition  services.CompetitionServicer
	Station      services.StationServicer
	Patrol       services.PatrolServicer
	Group        services.GroupServicer
	Scoring      services.ScoringServicer
	Ranking      services.RankingServicer
	Roles        services.RoleServicer
	Settings     services.SettingsServicer
	Sessions     *auth.Sessions
	Hub          *websocket.Hub
	Log          HTTPLogger
	templates    *Templates
	staticServer http.Handler
}

// HTTPLogger is an interface for loggers that support HTTP logging control
type HTTPLogger interface {
	IsHTTPLoggingEnabled() bool
}

// New creates a new Handlers instance with all dependencies
func New(
	competition services.CompetitionServicer,
	station services.StationServicer,
	patrol services.PatrolServicer,
	group services.GroupServicer,
	scoring services.ScoringServicer,
	ranking services.RankingServicer,
	roles services.RoleServicer,
	settings services.SettingsServicer,
	templatesFS fs.FS,
	staticServer http.Handler,
	sessions *auth.Sessions,
	hub *websocket.Hub,
	log HTTPLogger,
) (*Handlers, error) {
	templates, err := loadTemplates(templatesFS)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	return &Handlers{
		Competition:  competition,
		Station:      station,
		Patrol:       patrol,
		Group:        group,
		Scoring:      scoring,
		Ranking:      ranking,
		Roles:        roles,
		Settings:     settings,
		Sessions:     sessions,
		Hub:          hub,
		Log:          log,
		templates:    templates,
		staticServer: staticServer,
	}, nil
}

// NoopHTTPLogger is a test logger that always returns false for HTTP logging
type NoopHTTPLogger struct{}

func (NoopHTTPLogger) IsHTTPLoggingEnabled() bool { return false }

// NewForTesting creates a Handlers instance without loading templates (for testing API endpoints)
func NewForTesting(
	competition services.CompetitionServicer,
	station services.StationServicer,
	patrol services.PatrolServicer,
	group services.GroupServicer,
	scoring services.ScoringServicer,
	ranking services.RankingServicer,
	roles services.RoleServicer,
	settings services.SettingsServicer,
) *Handlers {
	return &Handlers{
		Competition: competition,
		Station:     station,
		Patrol:      patrol,
		Group:       group,
		Scoring:     scoring,
		Ranking:     ranking,
		Roles:       roles,
		Settings:    settings,
		Sessions:    auth.New(),
		Log:         NoopHTTPLogger{},
		// templates left nil - API endpoints don't use templates
	}
}

// loadTemplates parses all templates once at startup
func loadTemplates(templatesFS fs.FS) (*Templates, error) {
	t := &Templates{}
	var err error

	if t.Scoreboard, err = template.ParseFS(templatesFS, "scoreboard.html"); err != nil {
		return nil, fmt.Errorf("scoreboard template: %w", err)
	}
	if t.Score, err = template.ParseFS(templatesFS, "score.html"); err != nil {
		return nil, fmt.Errorf("score template: %w", err)
	}
	if t.Login, err = template.ParseFS(templatesFS, "login.html"); err != nil {
		return nil, fmt.Errorf("login template: %w", err)
	}
	if t.AdminDashboard, err = template.ParseFS(templatesFS, "admin/layout.html", "admin/dashboard.html"); err != nil {
		return nil, fmt.Errorf("admin dashboard template: %w", err)
	}
	if t.AdminCompetitions, err = template.ParseFS(templatesFS, "admin/layout.html", "admin/competitions.html"); err != nil {
		return nil, fmt.Errorf("admin competitions template: %w", err)
	}
	if t.AdminStations, err = template.ParseFS(templatesFS, "admin/layout.html", "admin/stations.html"); err != nil {
		return nil, fmt.Errorf("admin stations template: %w", err)
	}
	if t.AdminPatrols, err = template.ParseFS(templatesFS, "admin/layout.html", "admin/patrols.html"); err != nil {
		return nil, fmt.Errorf("admin patrols template: %w", err)
	}
	if t.AdminGroups, err = template.ParseFS(templatesFS, "admin/layout.html", "admin/groups.html"); err != nil {
		return nil, fmt.Errorf("admin groups template: %w", err)
	}
	if t.AdminUsers, err = template.ParseFS(templatesFS, "admin/layout.html", "admin/users.html"); err != nil {
		return nil, fmt.Errorf("admin users template: %w", err)
	}
	if t.AdminSettings, err = template.ParseFS(templatesFS, "admin/layout.html", "admin/settings.html"); err != nil {
		return nil, fmt.Errorf("admin settings template: %w", err)
	}

	return t, nil
}
