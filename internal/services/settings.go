package services

import (
	"context"
	"strings"

	"scoutscore/internal/logger"
	"scoutscore/internal/repository"
)

// SettingsService handles settings-related business logic
type SettingsService struct {
	log  logger.Logger
	repo repository.SettingsRepository
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(log logger.Logger, repo repository.SettingsRepository) *SettingsService {
	return &SettingsService{log: log, repo: repo}
}

// GetBaseURL returns the application base URL
func (s *SettingsService) GetBaseURL(ctx context.Context) (string, error) {
	value, err := s.repo.GetSetting(ctx, "base_url")
	if err != nil {
		if err == repository.ErrNotFound {
			return "", nil // Not yet configured
		}
		return "", err
	}
	return value, nil
}

// SetBaseURL saves the application base URL
func (s *SettingsService) SetBaseURL(ctx context.Context, url string) error {
	return s.repo.SetSetting(ctx, "base_url", strings.TrimRight(url, "/"))
}

// GetScoutnetURL returns the configured Scoutnet API URL
func (s *SettingsService) GetScoutnetURL(ctx context.Context) (string, error) {
	value, err := s.repo.GetSetting(ctx, "scoutnet_url")
	if err != nil {
		if err == repository.ErrNotFound {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// SetScoutnetURL saves the Scoutnet API URL
func (s *SettingsService) SetScoutnetURL(ctx context.Context, url string) error {
	return s.repo.SetSetting(ctx, "scoutnet_url", url)
}

// GetSetting retrieves an arbitrary setting
func (s *SettingsService) GetSetting(ctx context.Context, key string) (string, error) {
	return s.repo.GetSetting(ctx, key)
}

// SetSetting saves an arbitrary setting
func (s *SettingsService) SetSetting(ctx context.Context, key, value string) error {
	return s.repo.SetSetting(ctx, key, value)
}

// AllSettings returns commonly used settings as a map
func (s *SettingsService) AllSettings(ctx context.Context) (map[string]interface{}, error) {
	settings := make(map[string]interface{})

	baseURL, _ := s.GetBaseURL(ctx)
	settings["base_url"] = baseURL

	scoutnetURL, _ := s.GetScoutnetURL(ctx)
	settings["scoutnet_url"] = scoutnetURL

	current, _ := s.GetSetting(ctx, currentCompetitionKey)
	settings["current_competition_id"] = current

	return settings, nil
}
