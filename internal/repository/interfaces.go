package repository

import (
	"context"

	"scoutscore/internal/models"
)

// CompetitionRepository defines competition data operations
type CompetitionRepository interface {
	ListCompetitions(ctx context.Context) ([]models.Competition, error)
	GetCompetition(ctx context.Context, id int) (*models.Competition, error)
	CreateCompetition(ctx context.Context, name, date string) (int64, error)
	UpdateCompetition(ctx context.Context, id int, name, date string) error
	SetCompetitionStatus(ctx context.Context, id int, status string) error
	DeleteCompetition(ctx context.Context, id int) error
}

// StationRepository defines station data operations
type StationRepository interface {
	ListStations(ctx context.Context, competitionID int) ([]models.Station, error)
	GetStation(ctx context.Context, id int) (*models.Station, error)
	CreateStation(ctx context.Context, s models.Station) (int64, error)
	UpdateStation(ctx context.Context, s models.Station) error
	DeleteStation(ctx context.Context, id int) error
}

// PatrolRepository defines patrol data operations
type PatrolRepository interface {
	ListPatrols(ctx context.Context, competitionID int) ([]models.Patrol, error)
	GetPatrol(ctx context.Context, id int) (*models.Patrol, error)
	CreatePatrol(ctx context.Context, p models.Patrol) (int64, error)
	UpdatePatrol(ctx context.Context, p models.Patrol) error
	DeletePatrol(ctx context.Context, id int) error
}

// ScoreRepository defines score data operations
type ScoreRepository interface {
	ListScores(ctx context.Context, competitionID int) ([]models.Score, error)
	UpsertScore(ctx context.Context, competitionID, patrolID, stationID, value int) error
}

// GroupRepository defines scout group and template data operations
type GroupRepository interface {
	ListScoutGroups(ctx context.Context, competitionID int) ([]models.ScoutGroup, error)
	GetScoutGroup(ctx context.Context, id int) (*models.ScoutGroup, error)
	CreateScoutGroup(ctx context.Context, competitionID int, name string) (int64, error)
	UpdateScoutGroup(ctx context.Context, id int, name string) error
	DeleteScoutGroup(ctx context.Context, id int) error
	ListGroupTemplates(ctx context.Context) ([]models.ScoutGroupTemplate, error)
	CreateGroupTemplate(ctx context.Context, name string) (int64, error)
	DeleteGroupTemplate(ctx context.Context, id int) error
}

// UserRepository defines user and role data operations
type UserRepository interface {
	CountUsers(ctx context.Context) (int, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id int) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, string, error)
	CreateUser(ctx context.Context, email, name, passwordHash string, globalAdmin bool) (int64, error)
	DeleteUser(ctx context.Context, id int) error
	SetGlobalAdmin(ctx context.Context, userID int, admin bool) error
	GrantCompetitionAdmin(ctx context.Context, userID, competitionID int) error
	RevokeCompetitionAdmin(ctx context.Context, userID, competitionID int) error
	IsCompetitionAdmin(ctx context.Context, userID, competitionID int) (bool, error)
	GrantScorer(ctx context.Context, userID int, competitionID *int, section string) error
	RevokeScorer(ctx context.Context, userID int, competitionID *int, section string) error
	ListScorerGrants(ctx context.Context, userID int) ([]models.ScorerGrant, error)
}

// SettingsRepository defines settings data operations
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// FullRepository combines all repository interfaces.
// Use this when a service needs access to multiple domains.
type FullRepository interface {
	CompetitionRepository
	StationRepository
	PatrolRepository
	ScoreRepository
	GroupRepository
	UserRepository
	SettingsRepository
}

// Ensure Repository implements all interfaces
var _ FullRepository = (*Repository)(nil)
