package services

import (
	"context"
	stderrors "errors"
	"testing"

	apperrors "scoutscore/internal/errors"
	"scoutscore/internal/logger"
	"scoutscore/internal/models"
	"scoutscore/internal/repository"
	"scoutscore/internal/testutil"
)

func newRoleService(t *testing.T) (*RoleService, *repository.Repository) {
	t.Helper()
	repo := testutil.NewTestRepository(t)
	return NewRoleService(logger.New(), repo), repo
}

func TestCreateUserAndAuthenticate(t *testing.T) {
	svc, _ := newRoleService(t)
	ctx := context.Background()

	id, err := svc.CreateUser(ctx, "  Anna@Example.COM  ", "Anna", "hunter2hunter2", false)
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	user, err := svc.Authenticate(ctx, "anna@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if user.ID != int(id) || user.Email != "anna@example.com" {
		t.Errorf("got %+v", user)
	}

	// Email matching ignores case and surrounding whitespace
	if _, err := svc.Authenticate(ctx, " ANNA@example.com ", "hunter2hunter2"); err != nil {
		t.Errorf("case-insensitive login failed: %v", err)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc, _ := newRoleService(t)
	ctx := context.Background()

	svc.CreateUser(ctx, "anna@example.com", "Anna", "hunter2hunter2", false)

	if _, err := svc.Authenticate(ctx, "anna@example.com", "wrong"); !stderrors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateUnknownUser(t *testing.T) {
	svc, _ := newRoleService(t)

	if _, err := svc.Authenticate(context.Background(), "ghost@example.com", "whatever"); !stderrors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestCreateUserValidation(t *testing.T) {
	svc, _ := newRoleService(t)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, "not-an-email", "X", "hunter2hunter2", false); !isKind(err, apperrors.ErrValidation) {
		t.Errorf("expected validation error for bad email, got %v", err)
	}
	if _, err := svc.CreateUser(ctx, "x@example.com", "X", "short", false); !isKind(err, apperrors.ErrValidation) {
		t.Errorf("expected validation error for short password, got %v", err)
	}
}

func TestEnsureAdminUserBootstraps(t *testing.T) {
	svc, _ := newRoleService(t)
	ctx := context.Background()

	if err := svc.EnsureAdminUser(ctx, "admin@example.com", "changeme123"); err != nil {
		t.Fatalf("EnsureAdminUser failed: %v", err)
	}

	user, err := svc.Authenticate(ctx, "admin@example.com", "changeme123")
	if err != nil {
		t.Fatalf("bootstrap admin cannot log in: %v", err)
	}
	if !user.GlobalAdmin {
		t.Error("bootstrap admin must be a global admin")
	}
}

func TestEnsureAdminUserOnlyWhenEmpty(t *testing.T) {
	svc, _ := newRoleService(t)
	ctx := context.Background()

	svc.CreateUser(ctx, "existing@example.com", "X", "hunter2hunter2", false)
	if err := svc.EnsureAdminUser(ctx, "admin@example.com", "changeme123"); err != nil {
		t.Fatalf("EnsureAdminUser failed: %v", err)
	}

	if users := svc.ListUsers(ctx); len(users) != 1 {
		t.Errorf("bootstrap must be a no-op with existing users, got %d users", len(users))
	}
}

func TestEnsureAdminUserNoCredentials(t *testing.T) {
	svc, _ := newRoleService(t)
	ctx := context.Background()

	if err := svc.EnsureAdminUser(ctx, "", ""); err != nil {
		t.Fatalf("EnsureAdminUser failed: %v", err)
	}
	if users := svc.ListUsers(ctx); len(users) != 0 {
		t.Errorf("no credentials must create no user, got %d users", len(users))
	}
}

func TestDeleteUser(t *testing.T) {
	svc, _ := newRoleService(t)
	ctx := context.Background()

	id, _ := svc.CreateUser(ctx, "anna@example.com", "Anna", "hunter2hunter2", false)
	if err := svc.DeleteUser(ctx, int(id)); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}
	if _, err := svc.GetUser(ctx, int(id)); !isKind(err, apperrors.ErrNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}

func TestCanAdminister(t *testing.T) {
	svc, repo := newRoleService(t)
	ctx := context.Background()

	compID, _ := repo.CreateCompetition(ctx, "Camp", "2026-05-01")
	adminID, _ := svc.CreateUser(ctx, "boss@example.com", "Boss", "hunter2hunter2", true)
	plainID, _ := svc.CreateUser(ctx, "plain@example.com", "Plain", "hunter2hunter2", false)

	admin, _ := svc.GetUser(ctx, int(adminID))
	plain, _ := svc.GetUser(ctx, int(plainID))

	if ok, _ := svc.CanAdminister(ctx, admin, int(compID)); !ok {
		t.Error("global admin must administer everything")
	}
	if ok, _ := svc.CanAdminister(ctx, plain, int(compID)); ok {
		t.Error("plain user must not administer")
	}
	if ok, _ := svc.CanAdminister(ctx, nil, int(compID)); ok {
		t.Error("nil user must not administer")
	}

	if err := svc.GrantCompetitionAdmin(ctx, int(plainID), int(compID)); err != nil {
		t.Fatalf("GrantCompetitionAdmin failed: %v", err)
	}
	if ok, _ := svc.CanAdminister(ctx, plain, int(compID)); !ok {
		t.Error("competition admin must administer their competition")
	}

	other, _ := repo.CreateCompetition(ctx, "Other", "2026-06-01")
	if ok, _ := svc.CanAdminister(ctx, plain, int(other)); ok {
		t.Error("competition admin role must not leak to other competitions")
	}

	if err := svc.RevokeCompetitionAdmin(ctx, int(plainID), int(compID)); err != nil {
		t.Fatalf("RevokeCompetitionAdmin failed: %v", err)
	}
	if ok, _ := svc.CanAdminister(ctx, plain, int(compID)); ok {
		t.Error("revoked admin must not administer")
	}
}

func TestCanScore(t *testing.T) {
	svc, repo := newRoleService(t)
	ctx := context.Background()

	compID, _ := repo.CreateCompetition(ctx, "Camp", "2026-05-01")
	otherComp, _ := repo.CreateCompetition(ctx, "Other", "2026-06-01")
	userID, _ := svc.CreateUser(ctx, "scorer@example.com", "Scorer", "hunter2hunter2", false)
	user, _ := svc.GetUser(ctx, int(userID))

	comp := int(compID)

	tests := []struct {
		name          string
		competitionID *int
		section       string
		askComp       int
		askSection    string
		want          bool
	}{
		{"unscoped grant matches anything", nil, "", int(otherComp), "rover", true},
		{"competition grant matches that competition", &comp, "", comp, "sparare", true},
		{"competition grant rejects another competition", &comp, "", int(otherComp), "sparare", false},
		{"section grant matches that section", nil, "sparare", comp, "sparare", true},
		{"section grant rejects another section", nil, "sparare", comp, "rover", false},
		{"section grant with unknown asked section matches", nil, "sparare", comp, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.GrantScorer(ctx, user.ID, tt.competitionID, tt.section); err != nil {
				t.Fatalf("GrantScorer failed: %v", err)
			}
			got, err := svc.CanScore(ctx, user, tt.askComp, tt.askSection)
			if err != nil {
				t.Fatalf("CanScore failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("CanScore = %v, want %v", got, tt.want)
			}
			if err := svc.RevokeScorer(ctx, user.ID, tt.competitionID, tt.section); err != nil {
				t.Fatalf("RevokeScorer failed: %v", err)
			}
		})
	}

	if ok, _ := svc.CanScore(ctx, user, comp, "sparare"); ok {
		t.Error("user without grants must not score")
	}
}

func TestCanScoreAdminsAlways(t *testing.T) {
	svc, repo := newRoleService(t)
	ctx := context.Background()

	compID, _ := repo.CreateCompetition(ctx, "Camp", "2026-05-01")
	adminID, _ := svc.CreateUser(ctx, "boss@example.com", "Boss", "hunter2hunter2", true)
	admin, _ := svc.GetUser(ctx, int(adminID))

	if ok, _ := svc.CanScore(ctx, admin, int(compID), "rover"); !ok {
		t.Error("global admin must be allowed to score")
	}
	if ok, _ := svc.CanScore(ctx, nil, int(compID), "rover"); ok {
		t.Error("nil user must not score")
	}
}

func TestGrantScorerValidatesSection(t *testing.T) {
	svc, _ := newRoleService(t)
	ctx := context.Background()

	id, _ := svc.CreateUser(ctx, "scorer@example.com", "Scorer", "hunter2hunter2", false)
	if err := svc.GrantScorer(ctx, int(id), nil, "wolves"); !isKind(err, apperrors.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestSetGlobalAdmin(t *testing.T) {
	svc, _ := newRoleService(t)
	ctx := context.Background()

	id, _ := svc.CreateUser(ctx, "anna@example.com", "Anna", "hunter2hunter2", false)
	if err := svc.SetGlobalAdmin(ctx, int(id), true); err != nil {
		t.Fatalf("SetGlobalAdmin failed: %v", err)
	}

	user, _ := svc.GetUser(ctx, int(id))
	if !user.GlobalAdmin {
		t.Error("flag not set")
	}
}

func TestListScorerGrants(t *testing.T) {
	svc, repo := newRoleService(t)
	ctx := context.Background()

	compID, _ := repo.CreateCompetition(ctx, "Camp", "2026-05-01")
	comp := int(compID)
	id, _ := svc.CreateUser(ctx, "scorer@example.com", "Scorer", "hunter2hunter2", false)

	svc.GrantScorer(ctx, int(id), nil, "")
	svc.GrantScorer(ctx, int(id), &comp, "Sparare")

	grants := svc.ListScorerGrants(ctx, int(id))
	if len(grants) != 2 {
		t.Fatalf("expected 2 grants, got %+v", grants)
	}
	var scoped *models.ScorerGrant
	for i := range grants {
		if grants[i].CompetitionID != nil {
			scoped = &grants[i]
		}
	}
	if scoped == nil || *scoped.CompetitionID != comp || scoped.Section != "sparare" {
		t.Errorf("scoped grant = %+v, want competition %d section sparare", scoped, comp)
	}
}
