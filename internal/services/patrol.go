package services

import (
	"context"
	"strings"

	"scoutscore/internal/errors"
	"scoutscore/internal/logger"
	"scoutscore/internal/models"
	"scoutscore/internal/repository"
)

// PatrolServiceRepository defines the repository methods needed by PatrolService
type PatrolServiceRepository interface {
	repository.PatrolRepository
	repository.CompetitionRepository
	repository.GroupRepository
}

// PatrolService handles patrol business logic
type PatrolService struct {
	log  logger.Logger
	repo PatrolServiceRepository
}

// NewPatrolService creates a new PatrolService
func NewPatrolService(log logger.Logger, repo PatrolServiceRepository) *PatrolService {
	return &PatrolService{log: log, repo: repo}
}

// ListPatrols returns all patrols in a competition. Read failures are
// logged and surfaced as an empty list.
func (s *PatrolService) ListPatrols(ctx context.Context, competitionID int) []models.Patrol {
	patrols, err := s.repo.ListPatrols(ctx, competitionID)
	if err != nil {
		s.log.Error("Failed to list patrols", "competition_id", competitionID, "error", err)
		return nil
	}
	return patrols
}

// GetPatrol returns a patrol by id
func (s *PatrolService) GetPatrol(ctx context.Context, id int) (*models.Patrol, error) {
	p, err := s.repo.GetPatrol(ctx, id)
	if err == repository.ErrNotFound {
		return nil, errors.NotFoundf("patrol %d not found", id)
	}
	return p, err
}

func (s *PatrolService) validatePatrol(ctx context.Context, p *models.Patrol) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return errors.Validation("patrol name must not be empty")
	}
	p.Section = strings.ToLower(strings.TrimSpace(p.Section))
	if !models.ValidSection(p.Section) {
		return errors.Validationf("unknown section %q", p.Section)
	}
	if p.Members < 0 {
		return errors.Validation("members must not be negative")
	}
	if p.ScoutGroupID != nil {
		group, err := s.repo.GetScoutGroup(ctx, *p.ScoutGroupID)
		if err == repository.ErrNotFound {
			return errors.Validationf("scout group %d not found", *p.ScoutGroupID)
		}
		if err != nil {
			return err
		}
		if group.CompetitionID != p.CompetitionID {
			return errors.Validation("scout group belongs to a different competition")
		}
	}
	return nil
}

// CreatePatrol creates a new patrol
func (s *PatrolService) CreatePatrol(ctx context.Context, p models.Patrol) (int64, error) {
	if _, err := s.repo.GetCompetition(ctx, p.CompetitionID); err != nil {
		if err == repository.ErrNotFound {
			return 0, errors.NotFoundf("competition %d not found", p.CompetitionID)
		}
		return 0, err
	}
	if err := s.validatePatrol(ctx, &p); err != nil {
		return 0, err
	}
	id, err := s.repo.CreatePatrol(ctx, p)
	if err != nil {
		return 0, err
	}
	s.log.Info("Patrol created", "id", id, "name", p.Name, "section", p.Section)
	return id, nil
}

// UpdatePatrol updates a patrol
func (s *PatrolService) UpdatePatrol(ctx context.Context, p models.Patrol) error {
	existing, err := s.GetPatrol(ctx, p.ID)
	if err != nil {
		return err
	}
	p.CompetitionID = existing.CompetitionID
	if err := s.validatePatrol(ctx, &p); err != nil {
		return err
	}
	return s.repo.UpdatePatrol(ctx, p)
}

// DeletePatrol deletes a patrol and its scores
func (s *PatrolService) DeletePatrol(ctx context.Context, id int) error {
	if _, err := s.GetPatrol(ctx, id); err != nil {
		return err
	}
	return s.repo.DeletePatrol(ctx, id)
}
