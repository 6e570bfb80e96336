package services

import (
	"context"

	"scoutscore/internal/models"
)

// Broadcaster defines the interface for broadcasting messages to clients
type Broadcaster interface {
	BroadcastScoreSaved(competitionID, patrolID, stationID, value int)
	BroadcastCompetitionStatus(competitionID int, status string)
}

// CompetitionServicer defines the interface for competition operations
type CompetitionServicer interface {
	ListCompetitions(ctx context.Context) []models.Competition
	GetCompetition(ctx context.Context, id int) (*models.Competition, error)
	CreateCompetition(ctx context.Context, name, date string) (int64, error)
	UpdateCompetition(ctx context.Context, id int, name, date string) error
	CloseCompetition(ctx context.Context, id int) error
	ReopenCompetition(ctx context.Context, id int) error
	DeleteCompetition(ctx context.Context, id int) error
	SelectCompetition(ctx context.Context, id int) error
	CurrentCompetition(ctx context.Context) (*models.Competition, error)
	SetBroadcaster(b Broadcaster)
}

// StationServicer defines the interface for station operations
type StationServicer interface {
	ListStations(ctx context.Context, competitionID int) []models.Station
	GetStation(ctx context.Context, id int) (*models.Station, error)
	CreateStation(ctx context.Context, st models.Station) (int64, error)
	UpdateStation(ctx context.Context, st models.Station) error
	DeleteStation(ctx context.Context, id int) error
}

// PatrolServicer defines the interface for patrol operations
type PatrolServicer interface {
	ListPatrols(ctx context.Context, competitionID int) []models.Patrol
	GetPatrol(ctx context.Context, id int) (*models.Patrol, error)
	CreatePatrol(ctx context.Context, p models.Patrol) (int64, error)
	UpdatePatrol(ctx context.Context, p models.Patrol) error
	DeletePatrol(ctx context.Context, id int) error
}

// GroupServicer defines the interface for scout group operations
type GroupServicer interface {
	ListGroups(ctx context.Context, competitionID int) []models.ScoutGroup
	CreateGroup(ctx context.Context, competitionID int, name string) (int64, error)
	UpdateGroup(ctx context.Context, id int, name string) error
	DeleteGroup(ctx context.Context, id int) error
	ListTemplates(ctx context.Context) []models.ScoutGroupTemplate
	CreateTemplate(ctx context.Context, name string) (int64, error)
	DeleteTemplate(ctx context.Context, id int) error
	ApplyTemplates(ctx context.Context, competitionID int) (int, error)
	ImportFromScoutnet(ctx context.Context, competitionID int) (*ImportResult, error)
}

// ScoringServicer defines the interface for the score entry path
type ScoringServicer interface {
	LoadCompetition(ctx context.Context, competitionID int) error
	GetScore(ctx context.Context, competitionID, patrolID, stationID int) int
	SaveState(competitionID, patrolID, stationID int) SaveState
	SetScore(ctx context.Context, competitionID, patrolID, stationID, value int)
	RetrySave(competitionID, patrolID, stationID int)
	Snapshot(ctx context.Context, competitionID int) map[ScorePair]int
	SetBroadcaster(b Broadcaster)
}

// RankingServicer defines the interface for scoreboard computation
type RankingServicer interface {
	GetPatrolsWithScores(ctx context.Context, competitionID int, section string) ([]models.PatrolWithScore, error)
	GetStationScores(ctx context.Context, stationID int) (*models.Station, []models.StationScore, error)
}

// RoleServicer defines the interface for user and role operations
type RoleServicer interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	CreateUser(ctx context.Context, email, name, password string, globalAdmin bool) (int64, error)
	EnsureAdminUser(ctx context.Context, email, password string) error
	GetUser(ctx context.Context, id int) (*models.User, error)
	ListUsers(ctx context.Context) []models.User
	DeleteUser(ctx context.Context, id int) error
	SetGlobalAdmin(ctx context.Context, userID int, admin bool) error
	GrantCompetitionAdmin(ctx context.Context, userID, competitionID int) error
	RevokeCompetitionAdmin(ctx context.Context, userID, competitionID int) error
	GrantScorer(ctx context.Context, userID int, competitionID *int, section string) error
	RevokeScorer(ctx context.Context, userID int, competitionID *int, section string) error
	ListScorerGrants(ctx context.Context, userID int) []models.ScorerGrant
	CanAdminister(ctx context.Context, user *models.User, competitionID int) (bool, error)
	CanScore(ctx context.Context, user *models.User, competitionID int, section string) (bool, error)
}

// SettingsServicer defines the interface for settings operations
type SettingsServicer interface {
	GetBaseURL(ctx context.Context) (string, error)
	SetBaseURL(ctx context.Context, url string) error
	GetScoutnetURL(ctx context.Context) (string, error)
	SetScoutnetURL(ctx context.Context, url string) error
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	AllSettings(ctx context.Context) (map[string]interface{}, error)
}

// Ensure concrete types implement interfaces
var (
	_ CompetitionServicer = (*CompetitionService)(nil)
	_ StationServicer     = (*StationService)(nil)
	_ PatrolServicer      = (*PatrolService)(nil)
	_ GroupServicer       = (*GroupService)(nil)
	_ ScoringServicer     = (*ScoringService)(nil)
	_ RankingServicer     = (*RankingService)(nil)
	_ RoleServicer        = (*RoleService)(nil)
	_ SettingsServicer    = (*SettingsService)(nil)
)
