package services

import (
	"context"
	"sync"
	"time"

	"scoutscore/internal/logger"
	"scoutscore/internal/metrics"
	"scoutscore/internal/repository"
)

// SaveState describes where a score write is in its lifecycle
type SaveState string

const (
	SaveIdle   SaveState = "idle"
	SaveSaving SaveState = "saving"
	SaveSaved  SaveState = "saved"
	SaveError  SaveState = "error"
)

// savedDecay is how long the "saved" state lingers before returning
// to idle.
const savedDecay = 1200 * time.Millisecond

// ScoringServiceRepository defines the repository methods needed by ScoringService
type ScoringServiceRepository interface {
	repository.ScoreRepository
}

// ScorePair identifies a score cell within a competition
type ScorePair struct {
	PatrolID  int
	StationID int
}

type scoreKey struct {
	competitionID int
	patrolID      int
	stationID     int
}

// scoreEntry is the tracked state for one score cell. value always holds
// the most recently entered number, even while a write is failing, so the
// scorer never loses what they typed. seq increases with every issued
// write; a completing write whose seq no longer matches is stale and must
// not touch visible state.
type scoreEntry struct {
	value   int
	state   SaveState
	pending *int // last attempted value retained for retry after an error
	seq     uint64
}

// ScoringService is the authoritative in-memory view of scores for
// loaded competitions, with optimistic writes and failure recovery.
type ScoringService struct {
	log  logger.Logger
	repo ScoringServiceRepository

	mu      sync.Mutex
	entries map[scoreKey]*scoreEntry
	loaded  map[int]bool // competitions whose confirmed rows have been read

	broadcaster Broadcaster
	decay       time.Duration
}

// NewScoringService creates a new ScoringService
func NewScoringService(log logger.Logger, repo ScoringServiceRepository) *ScoringService {
	return &ScoringService{
		log:     log,
		repo:    repo,
		entries: make(map[scoreKey]*scoreEntry),
		loaded:  make(map[int]bool),
		decay:   savedDecay,
	}
}

// SetBroadcaster wires the websocket hub for live scoreboard pushes
func (s *ScoringService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SetSavedDecay overrides how long the saved state lingers. Used by tests.
func (s *ScoringService) SetSavedDecay(d time.Duration) {
	s.mu.Lock()
	s.decay = d
	s.mu.Unlock()
}

// LoadCompetition replaces the confirmed values for a competition from
// the database. Cells with a write in flight or a pending error keep
// their local state so an unlucky reload cannot eat an entered value.
func (s *ScoringService) LoadCompetition(ctx context.Context, competitionID int) error {
	rows, err := s.repo.ListScores(ctx, competitionID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.entries {
		if key.competitionID != competitionID {
			continue
		}
		if e := s.entries[key]; e.state == SaveIdle || e.state == SaveSaved {
			delete(s.entries, key)
		}
	}
	for _, row := range rows {
		key := scoreKey{competitionID, row.PatrolID, row.StationID}
		if existing, ok := s.entries[key]; ok && existing.state != SaveIdle {
			continue
		}
		s.entries[key] = &scoreEntry{value: row.Value, state: SaveIdle}
	}
	s.loaded[competitionID] = true
	return nil
}

// ensureLoaded lazily loads a competition's confirmed rows on first touch
func (s *ScoringService) ensureLoaded(ctx context.Context, competitionID int) {
	s.mu.Lock()
	done := s.loaded[competitionID]
	s.mu.Unlock()
	if done {
		return
	}
	if err := s.LoadCompetition(ctx, competitionID); err != nil {
		// Reads degrade to zeros; the next write or reload will retry
		s.log.Error("Failed to load scores", "competition_id", competitionID, "error", err)
	}
}

// GetScore returns the current known value for a cell, preferring any
// local pending value over the last confirmed one. Unknown cells are 0.
func (s *ScoringService) GetScore(ctx context.Context, competitionID, patrolID, stationID int) int {
	s.ensureLoaded(ctx, competitionID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[scoreKey{competitionID, patrolID, stationID}]; ok {
		return e.value
	}
	return 0
}

// SaveState returns the save lifecycle state for a cell. Unknown cells
// are idle.
func (s *ScoringService) SaveState(competitionID, patrolID, stationID int) SaveState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[scoreKey{competitionID, patrolID, stationID}]; ok {
		return e.state
	}
	return SaveIdle
}

// SetScore applies a value locally and persists it in the background.
// The caller is responsible for clamping value to [0, station.MaxScore].
// The local state reflects the new value immediately; the database write
// completes asynchronously and only the most recently issued write for a
// cell may update its visible state.
func (s *ScoringService) SetScore(ctx context.Context, competitionID, patrolID, stationID, value int) {
	s.ensureLoaded(ctx, competitionID)
	key := scoreKey{competitionID, patrolID, stationID}

	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		e = &scoreEntry{}
		s.entries[key] = e
	}
	e.seq++
	seq := e.seq
	e.value = value
	e.state = SaveSaving
	s.mu.Unlock()

	go s.save(key, value, seq)
}

// RetrySave re-issues the write for a cell that previously failed, using
// the retained attempted value (falling back to the displayed value).
// No-op when the cell is not in error.
func (s *ScoringService) RetrySave(competitionID, patrolID, stationID int) {
	key := scoreKey{competitionID, patrolID, stationID}

	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok || e.state != SaveError {
		s.mu.Unlock()
		return
	}
	value := e.value
	if e.pending != nil {
		value = *e.pending
	}
	e.seq++
	seq := e.seq
	e.value = value
	e.state = SaveSaving
	s.mu.Unlock()

	metrics.ScoreRetries.Inc()
	go s.save(key, value, seq)
}

// save performs the database upsert for one issued write and reconciles
// the entry when it completes. Stale completions (another write was
// issued for the same cell in the meantime) are discarded.
func (s *ScoringService) save(key scoreKey, value int, seq uint64) {
	err := s.repo.UpsertScore(context.Background(), key.competitionID, key.patrolID, key.stationID, value)

	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok || e.seq != seq {
		// A newer write owns this cell now; the row-level outcome is
		// whatever the database applied last.
		s.mu.Unlock()
		return
	}

	if err != nil {
		e.state = SaveError
		attempted := value
		e.pending = &attempted
		s.mu.Unlock()

		metrics.ScoreSaveFailures.Inc()
		s.log.Error("Score save failed",
			"competition_id", key.competitionID,
			"patrol_id", key.patrolID,
			"station_id", key.stationID,
			"value", value,
			"error", err)
		return
	}

	e.state = SaveSaved
	e.pending = nil
	decay := s.decay
	s.mu.Unlock()

	metrics.ScoreSaves.Inc()
	s.log.Debug("Score saved",
		"competition_id", key.competitionID,
		"patrol_id", key.patrolID,
		"station_id", key.stationID,
		"value", value)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastScoreSaved(key.competitionID, key.patrolID, key.stationID, value)
	}

	time.AfterFunc(decay, func() {
		s.mu.Lock()
		if e2, ok := s.entries[key]; ok && e2.seq == seq && e2.state == SaveSaved {
			e2.state = SaveIdle
		}
		s.mu.Unlock()
	})
}

// Snapshot returns the current score values for a competition, local
// pending values included. The ranking engine reads scores exclusively
// through this.
func (s *ScoringService) Snapshot(ctx context.Context, competitionID int) map[ScorePair]int {
	s.ensureLoaded(ctx, competitionID)

	s.mu.Lock()
	defer s.mu.Unlock()
	snap := make(map[ScorePair]int)
	for key, e := range s.entries {
		if key.competitionID == competitionID {
			snap[ScorePair{key.patrolID, key.stationID}] = e.value
		}
	}
	return snap
}
