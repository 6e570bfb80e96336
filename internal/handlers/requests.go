package handlers

// CompetitionCreateRequest represents a request to create a competition
type CompetitionCreateRequest struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// CompetitionUpdateRequest represents a request to update a competition
type CompetitionUpdateRequest struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// StationCreateRequest represents a request to create a station
type StationCreateRequest struct {
	CompetitionID   int      `json:"competition_id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	MaxScore        int      `json:"max_score"`
	LeaderEmail     string   `json:"leader_email"`
	AllowedSections []string `json:"allowed_sections,omitempty"`
}

// StationUpdateRequest represents a request to update a station
type StationUpdateRequest struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	MaxScore        int      `json:"max_score"`
	LeaderEmail     string   `json:"leader_email"`
	AllowedSections []string `json:"allowed_sections,omitempty"`
}

// PatrolCreateRequest represents a request to create a patrol
type PatrolCreateRequest struct {
	CompetitionID int    `json:"competition_id"`
	Name          string `json:"name"`
	Section       string `json:"section"`
	ScoutGroupID  *int   `json:"scout_group_id"`
	Members       int    `json:"members"`
}

// PatrolUpdateRequest represents a request to update a patrol
type PatrolUpdateRequest struct {
	Name         string `json:"name"`
	Section      string `json:"section"`
	ScoutGroupID *int   `json:"scout_group_id"`
	Members      int    `json:"members"`
}

// GroupCreateRequest represents a request to create a scout group
type GroupCreateRequest struct {
	CompetitionID int    `json:"competition_id"`
	Name          string `json:"name"`
}

// GroupUpdateRequest represents a request to rename a scout group
type GroupUpdateRequest struct {
	Name string `json:"name"`
}

// TemplateCreateRequest represents a request to create a scout group template
type TemplateCreateRequest struct {
	Name string `json:"name"`
}

// ScoreSetRequest represents a request to record a score
type ScoreSetRequest struct {
	CompetitionID int `json:"competition_id"`
	PatrolID      int `json:"patrol_id"`
	StationID     int `json:"station_id"`
	Value         int `json:"value"`
}

// ScoreRetryRequest represents a request to retry a failed score save
type ScoreRetryRequest struct {
	CompetitionID int `json:"competition_id"`
	PatrolID      int `json:"patrol_id"`
	StationID     int `json:"station_id"`
}

// LoginRequest represents a login form submission
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserCreateRequest represents a request to create a user account
type UserCreateRequest struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	Password    string `json:"password"`
	GlobalAdmin bool   `json:"global_admin"`
}

// GlobalAdminRequest represents a request to toggle the global admin flag
type GlobalAdminRequest struct {
	Admin bool `json:"admin"`
}

// AdminGrantRequest represents a request to grant or revoke competition admin
type AdminGrantRequest struct {
	CompetitionID int `json:"competition_id"`
}

// ScorerGrantRequest represents a request to grant or revoke scorer rights
type ScorerGrantRequest struct {
	CompetitionID *int   `json:"competition_id"`
	Section       string `json:"section"`
}

// SettingsUpdateRequest represents a request to update settings
type SettingsUpdateRequest struct {
	BaseURL     string `json:"base_url"`
	ScoutnetURL string `json:"scoutnet_url"`
}
