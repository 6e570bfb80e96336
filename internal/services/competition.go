package services

import (
	"context"
	"strconv"
	"strings"

	"scoutscore/internal/errors"
	"scoutscore/internal/logger"
	"scoutscore/internal/models"
	"scoutscore/internal/repository"
)

const currentCompetitionKey = "current_competition_id"

// CompetitionServiceRepository defines the repository methods needed by CompetitionService
type CompetitionServiceRepository interface {
	repository.CompetitionRepository
	repository.SettingsRepository
}

// CompetitionService handles competition business logic
type CompetitionService struct {
	log         logger.Logger
	repo        CompetitionServiceRepository
	scores      *ScoringService
	broadcaster Broadcaster
}

// NewCompetitionService creates a new CompetitionService
func NewCompetitionService(log logger.Logger, repo CompetitionServiceRepository, scores *ScoringService) *CompetitionService {
	return &CompetitionService{log: log, repo: repo, scores: scores}
}

// SetBroadcaster wires the websocket hub
func (s *CompetitionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// ListCompetitions returns all competitions. A read failure is logged
// and surfaced as an empty list.
func (s *CompetitionService) ListCompetitions(ctx context.Context) []models.Competition {
	comps, err := s.repo.ListCompetitions(ctx)
	if err != nil {
		s.log.Error("Failed to list competitions", "error", err)
		return nil
	}
	return comps
}

// GetCompetition returns a competition by id
func (s *CompetitionService) GetCompetition(ctx context.Context, id int) (*models.Competition, error) {
	comp, err := s.repo.GetCompetition(ctx, id)
	if err == repository.ErrNotFound {
		return nil, errors.NotFoundf("competition %d not found", id)
	}
	return comp, err
}

// CreateCompetition creates a new active competition
func (s *CompetitionService) CreateCompetition(ctx context.Context, name, date string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errors.Validation("competition name must not be empty")
	}
	id, err := s.repo.CreateCompetition(ctx, name, date)
	if err != nil {
		return 0, err
	}
	s.log.Info("Competition created", "id", id, "name", name)
	return id, nil
}

// UpdateCompetition updates name and date
func (s *CompetitionService) UpdateCompetition(ctx context.Context, id int, name, date string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.Validation("competition name must not be empty")
	}
	if _, err := s.GetCompetition(ctx, id); err != nil {
		return err
	}
	return s.repo.UpdateCompetition(ctx, id, name, date)
}

// CloseCompetition marks a competition closed. Scoring writes are
// rejected while closed.
func (s *CompetitionService) CloseCompetition(ctx context.Context, id int) error {
	return s.setStatus(ctx, id, models.CompetitionClosed)
}

// ReopenCompetition marks a competition active again
func (s *CompetitionService) ReopenCompetition(ctx context.Context, id int) error {
	return s.setStatus(ctx, id, models.CompetitionActive)
}

func (s *CompetitionService) setStatus(ctx context.Context, id int, status string) error {
	if _, err := s.GetCompetition(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetCompetitionStatus(ctx, id, status); err != nil {
		return err
	}
	s.log.Info("Competition status changed", "id", id, "status", status)
	if s.broadcaster != nil {
		s.broadcaster.BroadcastCompetitionStatus(id, status)
	}
	return nil
}

// DeleteCompetition deletes a competition and everything it owns
func (s *CompetitionService) DeleteCompetition(ctx context.Context, id int) error {
	if _, err := s.GetCompetition(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteCompetition(ctx, id)
}

// SelectCompetition makes a competition the one shown on the public
// scoreboard and preloads its scores into memory
func (s *CompetitionService) SelectCompetition(ctx context.Context, id int) error {
	if _, err := s.GetCompetition(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetSetting(ctx, currentCompetitionKey, strconv.Itoa(id)); err != nil {
		return err
	}
	if s.scores != nil {
		if err := s.scores.LoadCompetition(ctx, id); err != nil {
			s.log.Warn("Failed to preload scores", "competition_id", id, "error", err)
		}
	}
	s.log.Info("Competition selected", "id", id)
	return nil
}

// CurrentCompetition returns the currently selected competition, or the
// most recent active one when none has been selected yet. Returns nil
// when no competitions exist.
func (s *CompetitionService) CurrentCompetition(ctx context.Context) (*models.Competition, error) {
	raw, err := s.repo.GetSetting(ctx, currentCompetitionKey)
	if err != nil {
		return nil, err
	}
	if raw != "" {
		id, convErr := strconv.Atoi(raw)
		if convErr == nil {
			comp, getErr := s.repo.GetCompetition(ctx, id)
			if getErr == nil {
				return comp, nil
			}
			if getErr != repository.ErrNotFound {
				return nil, getErr
			}
			// Selected competition was deleted; fall through
		}
	}

	comps, err := s.repo.ListCompetitions(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range comps {
		if c.Status == models.CompetitionActive {
			comp := c
			return &comp, nil
		}
	}
	if len(comps) > 0 {
		comp := comps[0]
		return &comp, nil
	}
	return nil, nil
}
