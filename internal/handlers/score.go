package handlers

import (
	"net/http"
	"strconv"

	"scoutscore/internal/auth"
	"scoutscore/internal/models"
)

// parseIntQuery extracts and parses an integer query parameter
func parseIntQuery(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, BadRequest("Missing " + name + " parameter")
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, BadRequest("Invalid " + name + " parameter")
	}
	return v, nil
}

// currentUser resolves the authenticated user from the request context
func (h *Handlers) currentUser(r *http.Request) (*models.User, error) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		return nil, ErrUnauthorized
	}
	user, err := h.Roles.GetUser(r.Context(), userID)
	if err != nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// handleScoreboardPage serves the public scoreboard page
func (h *Handlers) handleScoreboardPage(w http.ResponseWriter, r *http.Request) {
	h.templates.Scoreboard.Execute(w, nil)
}

// handleScorePage serves the scoring page for one station
func (h *Handlers) handleScorePage(w http.ResponseWriter, r *http.Request) {
	stationID, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	station, err := h.Station.GetStation(r.Context(), stationID)
	if err != nil {
		respondError(w, err)
		return
	}

	h.templates.Score.Execute(w, map[string]interface{}{
		"Station": station,
	})
}

// handleGetScoreboard returns ranked patrols for the scoreboard.
// Uses the current competition unless competition_id is given; an
// optional section parameter restricts the ranking to one section.
func (h *Handlers) handleGetScoreboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var competition *models.Competition
	var err error
	if raw := r.URL.Query().Get("competition_id"); raw != "" {
		id, convErr := strconv.Atoi(raw)
		if convErr != nil {
			respondError(w, BadRequest("Invalid competition_id parameter"))
			return
		}
		competition, err = h.Competition.GetCompetition(ctx, id)
	} else {
		competition, err = h.Competition.CurrentCompetition(ctx)
	}
	if err != nil {
		respondError(w, err)
		return
	}
	if competition == nil {
		respondOK(w, ScoreboardResponse{Patrols: []models.PatrolWithScore{}, Stations: []models.Station{}})
		return
	}

	section := r.URL.Query().Get("section")
	if section != "" && !models.ValidSection(section) {
		respondError(w, BadRequest("Invalid section parameter"))
		return
	}

	patrols, err := h.Ranking.GetPatrolsWithScores(ctx, competition.ID, section)
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, ScoreboardResponse{
		Competition: competition,
		Section:     section,
		Stations:    h.Station.ListStations(ctx, competition.ID),
		Patrols:     patrols,
	})
}

// handleGetStationScores returns all patrol scores for one station, highest first
func (h *Handlers) handleGetStationScores(w http.ResponseWriter, r *http.Request) {
	stationID, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	station, scores, err := h.Ranking.GetStationScores(r.Context(), stationID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, StationScoresResponse{Station: station, Scores: scores})
}

// checkScoreAccess validates the score coordinates and the caller's
// scoring rights, returning the station for value clamping
func (h *Handlers) checkScoreAccess(r *http.Request, competitionID, patrolID, stationID int) (*models.Station, error) {
	ctx := r.Context()

	user, err := h.currentUser(r)
	if err != nil {
		return nil, err
	}

	patrol, err := h.Patrol.GetPatrol(ctx, patrolID)
	if err != nil {
		return nil, err
	}
	if patrol.CompetitionID != competitionID {
		return nil, BadRequest("Patrol does not belong to this competition")
	}

	station, err := h.Station.GetStation(ctx, stationID)
	if err != nil {
		return nil, err
	}
	if station.CompetitionID != competitionID {
		return nil, BadRequest("Station does not belong to this competition")
	}
	if !station.AllowsSection(patrol.Section) {
		return nil, BadRequest("Station is not open to section " + patrol.Section)
	}

	allowed, err := h.Roles.CanScore(ctx, user, competitionID, patrol.Section)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, Forbidden("You may not enter scores for this section")
	}
	return station, nil
}

// handleGetScore returns the current value and save state for one score cell
func (h *Handlers) handleGetScore(w http.ResponseWriter, r *http.Request) {
	competitionID, err := parseIntQuery(r, "competition_id")
	if err != nil {
		respondError(w, err)
		return
	}
	patrolID, err := parseIntQuery(r, "patrol_id")
	if err != nil {
		respondError(w, err)
		return
	}
	stationID, err := parseIntQuery(r, "station_id")
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, ScoreResponse{
		CompetitionID: competitionID,
		PatrolID:      patrolID,
		StationID:     stationID,
		Value:         h.Scoring.GetScore(r.Context(), competitionID, patrolID, stationID),
		SaveState:     string(h.Scoring.SaveState(competitionID, patrolID, stationID)),
	})
}

// handleSetScore records a score. The value is clamped to the station's
// range and the save happens in the background; the response reflects
// the immediately visible state.
func (h *Handlers) handleSetScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreSetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	competition, err := h.Competition.GetCompetition(r.Context(), req.CompetitionID)
	if err != nil {
		respondError(w, err)
		return
	}
	if competition.Status == models.CompetitionClosed {
		respondError(w, NewAPIError(http.StatusConflict, ErrCodeCompetitionClosed, "Competition is closed"))
		return
	}

	station, err := h.checkScoreAccess(r, req.CompetitionID, req.PatrolID, req.StationID)
	if err != nil {
		respondError(w, err)
		return
	}

	value := req.Value
	if value < 0 {
		value = 0
	}
	if value > station.MaxScore {
		value = station.MaxScore
	}

	h.Scoring.SetScore(r.Context(), req.CompetitionID, req.PatrolID, req.StationID, value)

	respondOK(w, ScoreResponse{
		CompetitionID: req.CompetitionID,
		PatrolID:      req.PatrolID,
		StationID:     req.StationID,
		Value:         value,
		SaveState:     string(h.Scoring.SaveState(req.CompetitionID, req.PatrolID, req.StationID)),
	})
}

// handleRetryScore re-issues a failed score save
func (h *Handlers) handleRetryScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRetryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if _, err := h.checkScoreAccess(r, req.CompetitionID, req.PatrolID, req.StationID); err != nil {
		respondError(w, err)
		return
	}

	h.Scoring.RetrySave(req.CompetitionID, req.PatrolID, req.StationID)

	respondOK(w, ScoreResponse{
		CompetitionID: req.CompetitionID,
		PatrolID:      req.PatrolID,
		StationID:     req.StationID,
		Value:         h.Scoring.GetScore(r.Context(), req.CompetitionID, req.PatrolID, req.StationID),
		SaveState:     string(h.Scoring.SaveState(req.CompetitionID, req.PatrolID, req.StationID)),
	})
}

// handleGetScoreState returns just the save state for one score cell
func (h *Handlers) handleGetScoreState(w http.ResponseWriter, r *http.Request) {
	competitionID, err := parseIntQuery(r, "competition_id")
	if err != nil {
		respondError(w, err)
		return
	}
	patrolID, err := parseIntQuery(r, "patrol_id")
	if err != nil {
		respondError(w, err)
		return
	}
	stationID, err := parseIntQuery(r, "station_id")
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, map[string]string{
		"save_state": string(h.Scoring.SaveState(competitionID, patrolID, stationID)),
	})
}
