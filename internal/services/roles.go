package services

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"scoutscore/internal/errors"
	"scoutscore/internal/logger"
	"scoutscore/internal/models"
	"scoutscore/internal/repository"
)

// RoleServiceRepository defines the repository methods needed by RoleService
type RoleServiceRepository interface {
	repository.UserRepository
}

// RoleService handles user accounts and role resolution
type RoleService struct {
	log  logger.Logger
	repo RoleServiceRepository
}

// NewRoleService creates a new RoleService
func NewRoleService(log logger.Logger, repo RoleServiceRepository) *RoleService {
	return &RoleService{log: log, repo: repo}
}

// Authenticate verifies credentials and returns the user on success
func (s *RoleService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, hash, err := s.repo.GetUserByEmail(ctx, email)
	if err == repository.ErrNotFound {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// CreateUser creates a user account with a bcrypt-hashed password
func (s *RoleService) CreateUser(ctx context.Context, email, name, password string, globalAdmin bool) (int64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return 0, errors.Validation("a valid email is required")
	}
	if len(password) < 8 {
		return 0, errors.Validation("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	id, err := s.repo.CreateUser(ctx, email, name, string(hash), globalAdmin)
	if err != nil {
		return 0, err
	}
	s.log.Info("User created", "id", id, "email", email, "global_admin", globalAdmin)
	return id, nil
}

// EnsureAdminUser bootstraps the first global admin when the user table
// is empty. No-op otherwise.
func (s *RoleService) EnsureAdminUser(ctx context.Context, email, password string) error {
	count, err := s.repo.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 || email == "" || password == "" {
		return nil
	}
	_, err = s.CreateUser(ctx, email, "Administrator", password, true)
	return err
}

// GetUser returns a user by id
func (s *RoleService) GetUser(ctx context.Context, id int) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err == repository.ErrNotFound {
		return nil, errors.NotFoundf("user %d not found", id)
	}
	return user, err
}

// ListUsers returns all user accounts
func (s *RoleService) ListUsers(ctx context.Context) []models.User {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		s.log.Error("Failed to list users", "error", err)
		return nil
	}
	return users
}

// DeleteUser removes a user and all their grants
func (s *RoleService) DeleteUser(ctx context.Context, id int) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteUser(ctx, id)
}

// SetGlobalAdmin grants or revokes the global admin flag
func (s *RoleService) SetGlobalAdmin(ctx context.Context, userID int, admin bool) error {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return err
	}
	return s.repo.SetGlobalAdmin(ctx, userID, admin)
}

// GrantCompetitionAdmin makes a user admin of one competition
func (s *RoleService) GrantCompetitionAdmin(ctx context.Context, userID, competitionID int) error {
	return s.repo.GrantCompetitionAdmin(ctx, userID, competitionID)
}

// RevokeCompetitionAdmin removes a competition admin role
func (s *RoleService) RevokeCompetitionAdmin(ctx context.Context, userID, competitionID int) error {
	return s.repo.RevokeCompetitionAdmin(ctx, userID, competitionID)
}

// GrantScorer gives scoring rights, optionally scoped to a competition
// and/or section
func (s *RoleService) GrantScorer(ctx context.Context, userID int, competitionID *int, section string) error {
	section = strings.ToLower(strings.TrimSpace(section))
	if section != "" && !models.ValidSection(section) {
		return errors.Validationf("unknown section %q", section)
	}
	return s.repo.GrantScorer(ctx, userID, competitionID, section)
}

// RevokeScorer removes a matching scorer grant
func (s *RoleService) RevokeScorer(ctx context.Context, userID int, competitionID *int, section string) error {
	return s.repo.RevokeScorer(ctx, userID, competitionID, section)
}

// ListScorerGrants returns all scorer grants for a user
func (s *RoleService) ListScorerGrants(ctx context.Context, userID int) []models.ScorerGrant {
	grants, err := s.repo.ListScorerGrants(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list scorer grants", "user_id", userID, "error", err)
		return nil
	}
	return grants
}

// CanAdminister reports whether a user may administer a competition:
// global admins always, otherwise a competition admin row must exist
func (s *RoleService) CanAdminister(ctx context.Context, user *models.User, competitionID int) (bool, error) {
	if user == nil {
		return false, nil
	}
	if user.GlobalAdmin {
		return true, nil
	}
	return s.repo.IsCompetitionAdmin(ctx, user.ID, competitionID)
}

// CanScore reports whether a user may enter scores for a section of a
// competition. Admins of the competition can always score; otherwise a
// scorer grant must match (nil scope matches everything).
func (s *RoleService) CanScore(ctx context.Context, user *models.User, competitionID int, section string) (bool, error) {
	if user == nil {
		return false, nil
	}
	admin, err := s.CanAdminister(ctx, user, competitionID)
	if err != nil {
		return false, err
	}
	if admin {
		return true, nil
	}

	grants, err := s.repo.ListScorerGrants(ctx, user.ID)
	if err != nil {
		return false, err
	}
	for _, g := range grants {
		if g.CompetitionID != nil && *g.CompetitionID != competitionID {
			continue
		}
		if g.Section != "" && section != "" && g.Section != section {
			continue
		}
		return true, nil
	}
	return false, nil
}
