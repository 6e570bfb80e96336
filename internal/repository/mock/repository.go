package mock

import (
	"context"

	"scoutscore/internal/models"
	"scoutscore/internal/repository"
)

// Repository wraps a real repository and allows injecting errors for testing.
// This provides a flexible way to test error paths without complex database
// manipulation.
//
// Usage:
//
//	realRepo := testutil.NewTestRepository(t)
//	mockRepo := mock.NewRepository(realRepo)
//	mockRepo.UpsertScoreError = errors.New("database error")
//	store := services.NewScoringService(log, mockRepo)
type Repository struct {
	repository.FullRepository

	// ===== Competition Errors =====
	ListCompetitionsError     error
	GetCompetitionError       error
	CreateCompetitionError    error
	UpdateCompetitionError    error
	SetCompetitionStatusError error
	DeleteCompetitionError    error

	// ===== Station Errors =====
	ListStationsError  error
	GetStationError    error
	CreateStationError error
	UpdateStationError error
	DeleteStationError error

	// ===== Patrol Errors =====
	ListPatrolsError  error
	GetPatrolError    error
	CreatePatrolError error
	UpdatePatrolError error
	DeletePatrolError error

	// ===== Score Errors =====
	ListScoresError  error
	UpsertScoreError error

	// ===== Group Errors =====
	ListScoutGroupsError     error
	GetScoutGroupError       error
	CreateScoutGroupError    error
	UpdateScoutGroupError    error
	DeleteScoutGroupError    error
	ListGroupTemplatesError  error
	CreateGroupTemplateError error
	DeleteGroupTemplateError error

	// ===== User Errors =====
	GetUserByEmailError     error
	IsCompetitionAdminError error
	ListScorerGrantsError   error
	CreateUserError         error

	// ===== Settings Errors =====
	GetSettingError error
	SetSettingError error
}

// NewRepository creates a mock repository wrapping a real one
func NewRepository(real repository.FullRepository) *Repository {
	return &Repository{FullRepository: real}
}

func (m *Repository) ListCompetitions(ctx context.Context) ([]models.Competition, error) {
	if m.ListCompetitionsError != nil {
		return nil, m.ListCompetitionsError
	}
	return m.FullRepository.ListCompetitions(ctx)
}

func (m *Repository) GetCompetition(ctx context.Context, id int) (*models.Competition, error) {
	if m.GetCompetitionError != nil {
		return nil, m.GetCompetitionError
	}
	return m.FullRepository.GetCompetition(ctx, id)
}

func (m *Repository) CreateCompetition(ctx context.Context, name, date string) (int64, error) {
	if m.CreateCompetitionError != nil {
		return 0, m.CreateCompetitionError
	}
	return m.FullRepository.CreateCompetition(ctx, name, date)
}

func (m *Repository) UpdateCompetition(ctx context.Context, id int, name, date string) error {
	if m.UpdateCompetitionError != nil {
		return m.UpdateCompetitionError
	}
	return m.FullRepository.UpdateCompetition(ctx, id, name, date)
}

func (m *Repository) SetCompetitionStatus(ctx context.Context, id int, status string) error {
	if m.SetCompetitionStatusError != nil {
		return m.SetCompetitionStatusError
	}
	return m.FullRepository.SetCompetitionStatus(ctx, id, status)
}

func (m *Repository) DeleteCompetition(ctx context.Context, id int) error {
	if m.DeleteCompetitionError != nil {
		return m.DeleteCompetitionError
	}
	return m.FullRepository.DeleteCompetition(ctx, id)
}

func (m *Repository) ListStations(ctx context.Context, competitionID int) ([]models.Station, error) {
	if m.ListStationsError != nil {
		return nil, m.ListStationsError
	}
	return m.FullRepository.ListStations(ctx, competitionID)
}

func (m *Repository) GetStation(ctx context.Context, id int) (*models.Station, error) {
	if m.GetStationError != nil {
		return nil, m.GetStationError
	}
	return m.FullRepository.GetStation(ctx, id)
}

func (m *Repository) CreateStation(ctx context.Context, s models.Station) (int64, error) {
	if m.CreateStationError != nil {
		return 0, m.CreateStationError
	}
	return m.FullRepository.CreateStation(ctx, s)
}

func (m *Repository) UpdateStation(ctx context.Context, s models.Station) error {
	if m.UpdateStationError != nil {
		return m.UpdateStationError
	}
	return m.FullRepository.UpdateStation(ctx, s)
}

func (m *Repository) DeleteStation(ctx context.Context, id int) error {
	if m.DeleteStationError != nil {
		return m.DeleteStationError
	}
	return m.FullRepository.DeleteStation(ctx, id)
}

func (m *Repository) ListPatrols(ctx context.Context, competitionID int) ([]models.Patrol, error) {
	if m.ListPatrolsError != nil {
		return nil, m.ListPatrolsError
	}
	return m.FullRepository.ListPatrols(ctx, competitionID)
}

func (m *Repository) GetPatrol(ctx context.Context, id int) (*models.Patrol, error) {
	if m.GetPatrolError != nil {
		return nil, m.GetPatrolError
	}
	return m.FullRepository.GetPatrol(ctx, id)
}

func (m *Repository) CreatePatrol(ctx context.Context, p models.Patrol) (int64, error) {
	if m.CreatePatrolError != nil {
		return 0, m.CreatePatrolError
	}
	return m.FullRepository.CreatePatrol(ctx, p)
}

func (m *Repository) UpdatePatrol(ctx context.Context, p models.Patrol) error {
	if m.UpdatePatrolError != nil {
		return m.UpdatePatrolError
	}
	return m.FullRepository.UpdatePatrol(ctx, p)
}

func (m *Repository) DeletePatrol(ctx context.Context, id int) error {
	if m.DeletePatrolError != nil {
		return m.DeletePatrolError
	}
	return m.FullRepository.DeletePatrol(ctx, id)
}

func (m *Repository) ListScores(ctx context.Context, competitionID int) ([]models.Score, error) {
	if m.ListScoresError != nil {
		return nil, m.ListScoresError
	}
	return m.FullRepository.ListScores(ctx, competitionID)
}

func (m *Repository) UpsertScore(ctx context.Context, competitionID, patrolID, stationID, value int) error {
	if m.UpsertScoreError != nil {
		return m.UpsertScoreError
	}
	return m.FullRepository.UpsertScore(ctx, competitionID, patrolID, stationID, value)
}

func (m *Repository) ListScoutGroups(ctx context.Context, competitionID int) ([]models.ScoutGroup, error) {
	if m.ListScoutGroupsError != nil {
		return nil, m.ListScoutGroupsError
	}
	return m.FullRepository.ListScoutGroups(ctx, competitionID)
}

func (m *Repository) GetScoutGroup(ctx context.Context, id int) (*models.ScoutGroup, error) {
	if m.GetScoutGroupError != nil {
		return nil, m.GetScoutGroupError
	}
	return m.FullRepository.GetScoutGroup(ctx, id)
}

func (m *Repository) CreateScoutGroup(ctx context.Context, competitionID int, name string) (int64, error) {
	if m.CreateScoutGroupError != nil {
		return 0, m.CreateScoutGroupError
	}
	return m.FullRepository.CreateScoutGroup(ctx, competitionID, name)
}

func (m *Repository) UpdateScoutGroup(ctx context.Context, id int, name string) error {
	if m.UpdateScoutGroupError != nil {
		return m.UpdateScoutGroupError
	}
	return m.FullRepository.UpdateScoutGroup(ctx, id, name)
}

func (m *Repository) DeleteScoutGroup(ctx context.Context, id int) error {
	if m.DeleteScoutGroupError != nil {
		return m.DeleteScoutGroupError
	}
	return m.FullRepository.DeleteScoutGroup(ctx, id)
}

func (m *Repository) ListGroupTemplates(ctx context.Context) ([]models.ScoutGroupTemplate, error) {
	if m.ListGroupTemplatesError != nil {
		return nil, m.ListGroupTemplatesError
	}
	return m.FullRepository.ListGroupTemplates(ctx)
}

func (m *Repository) CreateGroupTemplate(ctx context.Context, name string) (int64, error) {
	if m.CreateGroupTemplateError != nil {
		return 0, m.CreateGroupTemplateError
	}
	return m.FullRepository.CreateGroupTemplate(ctx, name)
}

func (m *Repository) DeleteGroupTemplate(ctx context.Context, id int) error {
	if m.DeleteGroupTemplateError != nil {
		return m.DeleteGroupTemplateError
	}
	return m.FullRepository.DeleteGroupTemplate(ctx, id)
}

func (m *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, string, error) {
	if m.GetUserByEmailError != nil {
		return nil, "", m.GetUserByEmailError
	}
	return m.FullRepository.GetUserByEmail(ctx, email)
}

func (m *Repository) IsCompetitionAdmin(ctx context.Context, userID, competitionID int) (bool, error) {
	if m.IsCompetitionAdminError != nil {
		return false, m.IsCompetitionAdminError
	}
	return m.FullRepository.IsCompetitionAdmin(ctx, userID, competitionID)
}

func (m *Repository) ListScorerGrants(ctx context.Context, userID int) ([]models.ScorerGrant, error) {
	if m.ListScorerGrantsError != nil {
		return nil, m.ListScorerGrantsError
	}
	return m.FullRepository.ListScorerGrants(ctx, userID)
}

func (m *Repository) CreateUser(ctx context.Context, email, name, passwordHash string, globalAdmin bool) (int64, error) {
	if m.CreateUserError != nil {
		return 0, m.CreateUserError
	}
	return m.FullRepository.CreateUser(ctx, email, name, passwordHash, globalAdmin)
}

func (m *Repository) GetSetting(ctx context.Context, key string) (string, error) {
	if m.GetSettingError != nil {
		return "", m.GetSettingError
	}
	return m.FullRepository.GetSetting(ctx, key)
}

func (m *Repository) SetSetting(ctx context.Context, key, value string) error {
	if m.SetSettingError != nil {
		return m.SetSettingError
	}
	return m.FullRepository.SetSetting(ctx, key, value)
}
