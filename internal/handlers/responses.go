package handlers

import "scoutscore/internal/models"

// CreatedResponse is the response for create operations
type CreatedResponse struct {
	ID int64 `json:"id"`
}

// ScoreboardResponse is the response for the public scoreboard
type ScoreboardResponse struct {
	Competition *models.Competition      `json:"competition"`
	Section     string                   `json:"section,omitempty"`
	Stations    []models.Station         `json:"stations"`
	Patrols     []models.PatrolWithScore `json:"patrols"`
}

// StationScoresResponse is the response for per-station scores
type StationScoresResponse struct {
	Station *models.Station       `json:"station"`
	Scores  []models.StationScore `json:"scores"`
}

// ScoreResponse is the response for a single score lookup
type ScoreResponse struct {
	CompetitionID int    `json:"competition_id"`
	PatrolID      int    `json:"patrol_id"`
	StationID     int    `json:"station_id"`
	Value         int    `json:"value"`
	SaveState     string `json:"save_state"`
}

// UserResponse is the response for user operations
type UserResponse struct {
	ID          int                  `json:"id"`
	Email       string               `json:"email"`
	Name        string               `json:"name"`
	GlobalAdmin bool                 `json:"global_admin"`
	Grants      []models.ScorerGrant `json:"grants,omitempty"`
}

// SettingsResponse is the response for settings
type SettingsResponse struct {
	BaseURL     string `json:"base_url"`
	ScoutnetURL string `json:"scoutnet_url"`
}

// ImportResponse is the response for a Scoutnet import
type ImportResponse struct {
	GroupsCreated  int `json:"groups_created"`
	PatrolsCreated int `json:"patrols_created"`
	Skipped        int `json:"skipped"`
}
