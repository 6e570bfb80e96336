package services

import (
	"context"
	"strings"

	"scoutscore/internal/errors"
	"scoutscore/internal/logger"
	"scoutscore/internal/models"
	"scoutscore/internal/repository"
)

// StationServiceRepository defines the repository methods needed by StationService
type StationServiceRepository interface {
	repository.StationRepository
	repository.CompetitionRepository
}

// StationService handles station business logic
type StationService struct {
	log  logger.Logger
	repo StationServiceRepository
}

// NewStationService creates a new StationService
func NewStationService(log logger.Logger, repo StationServiceRepository) *StationService {
	return &StationService{log: log, repo: repo}
}

// ListStations returns all stations in a competition. Read failures are
// logged and surfaced as an empty list.
func (s *StationService) ListStations(ctx context.Context, competitionID int) []models.Station {
	stations, err := s.repo.ListStations(ctx, competitionID)
	if err != nil {
		s.log.Error("Failed to list stations", "competition_id", competitionID, "error", err)
		return nil
	}
	return stations
}

// GetStation returns a station by id
func (s *StationService) GetStation(ctx context.Context, id int) (*models.Station, error) {
	st, err := s.repo.GetStation(ctx, id)
	if err == repository.ErrNotFound {
		return nil, errors.NotFoundf("station %d not found", id)
	}
	return st, err
}

// validateStation checks station fields and normalizes allowed sections.
// An empty allowed-sections list means every section may compete.
func validateStation(st *models.Station) error {
	st.Name = strings.TrimSpace(st.Name)
	if st.Name == "" {
		return errors.Validation("station name must not be empty")
	}
	if st.MaxScore < 0 {
		return errors.Validation("max score must not be negative")
	}

	seen := make(map[string]bool)
	var normalized []string
	for _, sec := range st.AllowedSections {
		sec = strings.ToLower(strings.TrimSpace(sec))
		if sec == "" || seen[sec] {
			continue
		}
		if !models.ValidSection(sec) {
			return errors.Validationf("unknown section %q", sec)
		}
		seen[sec] = true
		normalized = append(normalized, sec)
	}
	st.AllowedSections = normalized
	return nil
}

// CreateStation creates a new station
func (s *StationService) CreateStation(ctx context.Context, st models.Station) (int64, error) {
	if err := validateStation(&st); err != nil {
		return 0, err
	}
	if _, err := s.repo.GetCompetition(ctx, st.CompetitionID); err != nil {
		if err == repository.ErrNotFound {
			return 0, errors.NotFoundf("competition %d not found", st.CompetitionID)
		}
		return 0, err
	}
	id, err := s.repo.CreateStation(ctx, st)
	if err != nil {
		return 0, err
	}
	s.log.Info("Station created", "id", id, "name", st.Name, "competition_id", st.CompetitionID)
	return id, nil
}

// UpdateStation updates a station
func (s *StationService) UpdateStation(ctx context.Context, st models.Station) error {
	if err := validateStation(&st); err != nil {
		return err
	}
	if _, err := s.GetStation(ctx, st.ID); err != nil {
		return err
	}
	return s.repo.UpdateStation(ctx, st)
}

// DeleteStation deletes a station and its scores
func (s *StationService) DeleteStation(ctx context.Context, id int) error {
	if _, err := s.GetStation(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteStation(ctx, id)
}
