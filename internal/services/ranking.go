package services

import (
	"context"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"scoutscore/internal/logger"
	"scoutscore/internal/models"
	"scoutscore/internal/repository"
)

// RankingServiceRepository defines the repository methods needed by RankingService
type RankingServiceRepository interface {
	repository.PatrolRepository
	repository.StationRepository
}

// ScoreSnapshotter supplies the current score values for a competition,
// optimistic local values included
type ScoreSnapshotter interface {
	Snapshot(ctx context.Context, competitionID int) map[ScorePair]int
}

// RankingService derives ranked scoreboard views from the current
// patrols, stations and scores
type RankingService struct {
	log    logger.Logger
	repo   RankingServiceRepository
	scores ScoreSnapshotter
}

// NewRankingService creates a new RankingService
func NewRankingService(log logger.Logger, repo RankingServiceRepository, scores ScoreSnapshotter) *RankingService {
	return &RankingService{log: log, repo: repo, scores: scores}
}

// GetPatrolsWithScores returns all patrols of a competition (optionally
// filtered to one section) with totals, a complete per-station score map
// and a 1-based rank.
//
// Ordering: total score descending, then number of stations where the
// patrol hit the station's max score descending, then patrol name
// ascending with Swedish case-insensitive collation. Remaining ties keep
// the stable pre-sort order.
func (s *RankingService) GetPatrolsWithScores(ctx context.Context, competitionID int, section string) ([]models.PatrolWithScore, error) {
	patrols, err := s.repo.ListPatrols(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	stations, err := s.repo.ListStations(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	scores := s.scores.Snapshot(ctx, competitionID)

	var results []models.PatrolWithScore
	for _, p := range patrols {
		if section != "" && p.Section != section {
			continue
		}

		row := models.PatrolWithScore{
			Patrol:        p,
			StationScores: make(map[int]int, len(stations)),
		}
		for _, st := range stations {
			value := scores[ScorePair{p.ID, st.ID}]
			row.StationScores[st.ID] = value
			row.TotalScore += value
		}
		results = append(results, row)
	}

	sortRanked(results, stations)

	for i := range results {
		results[i].Rank = i + 1
	}
	return results, nil
}

// sortRanked orders scoreboard rows by the ranking comparator chain
func sortRanked(rows []models.PatrolWithScore, stations []models.Station) {
	fullScores := make([]int, len(rows))
	for i, row := range rows {
		for _, st := range stations {
			if row.StationScores[st.ID] == st.MaxScore {
				fullScores[i]++
			}
		}
	}
	order := make(map[int]int, len(rows)) // patrolID -> full-score count
	for i, row := range rows {
		order[row.ID] = fullScores[i]
	}

	coll := collate.New(language.Swedish, collate.IgnoreCase)
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		if order[a.ID] != order[b.ID] {
			return order[a.ID] > order[b.ID]
		}
		return coll.CompareString(a.Name, b.Name) < 0
	})
}

// GetStationScores returns every patrol of the station's competition with
// its score at that station (0 when unscored), highest first. No rank is
// assigned.
func (s *RankingService) GetStationScores(ctx context.Context, stationID int) (*models.Station, []models.StationScore, error) {
	station, err := s.repo.GetStation(ctx, stationID)
	if err != nil {
		return nil, nil, err
	}

	patrols, err := s.repo.ListPatrols(ctx, station.CompetitionID)
	if err != nil {
		return nil, nil, err
	}
	scores := s.scores.Snapshot(ctx, station.CompetitionID)

	var results []models.StationScore
	for _, p := range patrols {
		results = append(results, models.StationScore{
			Patrol: p,
			Value:  scores[ScorePair{p.ID, station.ID}],
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Value > results[j].Value
	})
	return station, results, nil
}
