package services

import (
	"context"
	"strings"

	"scoutscore/internal/errors"
	"scoutscore/internal/logger"
	"scoutscore/internal/models"
	"scoutscore/internal/repository"
	"scoutscore/pkg/scoutnet"
)

// GroupServiceRepository defines the repository methods needed by GroupService
type GroupServiceRepository interface {
	repository.GroupRepository
	repository.PatrolRepository
	repository.CompetitionRepository
}

// GroupService handles scout group and template business logic
type GroupService struct {
	log    logger.Logger
	repo   GroupServiceRepository
	client scoutnet.Client
}

// NewGroupService creates a new GroupService. client may be nil when
// Scoutnet sync is not configured.
func NewGroupService(log logger.Logger, repo GroupServiceRepository, client scoutnet.Client) *GroupService {
	return &GroupService{log: log, repo: repo, client: client}
}

// ListGroups returns all scout groups in a competition. Read failures
// are logged and surfaced as an empty list.
func (s *GroupService) ListGroups(ctx context.Context, competitionID int) []models.ScoutGroup {
	groups, err := s.repo.ListScoutGroups(ctx, competitionID)
	if err != nil {
		s.log.Error("Failed to list scout groups", "competition_id", competitionID, "error", err)
		return nil
	}
	return groups
}

// CreateGroup creates a new scout group
func (s *GroupService) CreateGroup(ctx context.Context, competitionID int, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errors.Validation("group name must not be empty")
	}
	if _, err := s.repo.GetCompetition(ctx, competitionID); err != nil {
		if err == repository.ErrNotFound {
			return 0, errors.NotFoundf("competition %d not found", competitionID)
		}
		return 0, err
	}
	return s.repo.CreateScoutGroup(ctx, competitionID, name)
}

// UpdateGroup renames a scout group
func (s *GroupService) UpdateGroup(ctx context.Context, id int, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.Validation("group name must not be empty")
	}
	if _, err := s.repo.GetScoutGroup(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return errors.NotFoundf("scout group %d not found", id)
		}
		return err
	}
	return s.repo.UpdateScoutGroup(ctx, id, name)
}

// DeleteGroup deletes a scout group. Patrols that referenced it survive
// with the reference cleared.
func (s *GroupService) DeleteGroup(ctx context.Context, id int) error {
	if _, err := s.repo.GetScoutGroup(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return errors.NotFoundf("scout group %d not found", id)
		}
		return err
	}
	return s.repo.DeleteScoutGroup(ctx, id)
}

// ListTemplates returns all scout group templates
func (s *GroupService) ListTemplates(ctx context.Context) []models.ScoutGroupTemplate {
	templates, err := s.repo.ListGroupTemplates(ctx)
	if err != nil {
		s.log.Error("Failed to list group templates", "error", err)
		return nil
	}
	return templates
}

// CreateTemplate creates a reusable scout group template
func (s *GroupService) CreateTemplate(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errors.Validation("template name must not be empty")
	}
	return s.repo.CreateGroupTemplate(ctx, name)
}

// DeleteTemplate deletes a scout group template
func (s *GroupService) DeleteTemplate(ctx context.Context, id int) error {
	return s.repo.DeleteGroupTemplate(ctx, id)
}

// ApplyTemplates instantiates every template into a competition,
// skipping names that already exist there. Returns the number created.
func (s *GroupService) ApplyTemplates(ctx context.Context, competitionID int) (int, error) {
	if _, err := s.repo.GetCompetition(ctx, competitionID); err != nil {
		if err == repository.ErrNotFound {
			return 0, errors.NotFoundf("competition %d not found", competitionID)
		}
		return 0, err
	}

	templates, err := s.repo.ListGroupTemplates(ctx)
	if err != nil {
		return 0, err
	}
	existing, err := s.repo.ListScoutGroups(ctx, competitionID)
	if err != nil {
		return 0, err
	}
	have := make(map[string]bool, len(existing))
	for _, g := range existing {
		have[g.Name] = true
	}

	created := 0
	for _, t := range templates {
		if have[t.Name] {
			continue
		}
		if _, err := s.repo.CreateScoutGroup(ctx, competitionID, t.Name); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// ImportResult summarizes a Scoutnet roster import
type ImportResult struct {
	GroupsCreated  int `json:"groups_created"`
	PatrolsCreated int `json:"patrols_created"`
	Skipped        int `json:"skipped"`
}

// ImportFromScoutnet pulls groups and patrol rosters from the Scoutnet
// registry into a competition. Existing groups are matched by name;
// patrols with an unknown section are skipped rather than failing the
// whole import.
func (s *GroupService) ImportFromScoutnet(ctx context.Context, competitionID int) (*ImportResult, error) {
	if s.client == nil {
		return nil, ErrScoutnetDisabled
	}
	if _, err := s.repo.GetCompetition(ctx, competitionID); err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFoundf("competition %d not found", competitionID)
		}
		return nil, err
	}

	remoteGroups, err := s.client.FetchGroups(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ListScoutGroups(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	groupIDByName := make(map[string]int, len(existing))
	for _, g := range existing {
		groupIDByName[g.Name] = g.ID
	}

	existingPatrols, err := s.repo.ListPatrols(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	havePatrol := make(map[string]bool, len(existingPatrols))
	for _, p := range existingPatrols {
		havePatrol[p.Name] = true
	}

	result := &ImportResult{}
	for _, rg := range remoteGroups {
		localID, ok := groupIDByName[rg.Name]
		if !ok {
			id, createErr := s.repo.CreateScoutGroup(ctx, competitionID, rg.Name)
			if createErr != nil {
				return result, createErr
			}
			localID = int(id)
			groupIDByName[rg.Name] = localID
			result.GroupsCreated++
		}

		roster, fetchErr := s.client.FetchPatrols(ctx, rg.ID)
		if fetchErr != nil {
			return result, fetchErr
		}
		for _, rp := range roster {
			section := strings.ToLower(strings.TrimSpace(rp.Section))
			if havePatrol[rp.Name] || !models.ValidSection(section) {
				result.Skipped++
				continue
			}
			groupID := localID
			_, createErr := s.repo.CreatePatrol(ctx, models.Patrol{
				CompetitionID: competitionID,
				Name:          rp.Name,
				Section:       section,
				ScoutGroupID:  &groupID,
				Members:       rp.Members,
			})
			if createErr != nil {
				return result, createErr
			}
			havePatrol[rp.Name] = true
			result.PatrolsCreated++
		}
	}

	s.log.Info("Scoutnet import finished",
		"competition_id", competitionID,
		"groups_created", result.GroupsCreated,
		"patrols_created", result.PatrolsCreated,
		"skipped", result.Skipped)
	return result, nil
}
