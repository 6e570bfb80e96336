package handlers

import (
	"fmt"
	"net/http"

	"github.com/skip2/go-qrcode"

	"scoutscore/internal/models"
)

// requireGlobalAdmin resolves the caller and verifies the global admin flag
func (h *Handlers) requireGlobalAdmin(r *http.Request) (*models.User, error) {
	user, err := h.currentUser(r)
	if err != nil {
		return nil, err
	}
	if !user.GlobalAdmin {
		return nil, Forbidden("Global admin access required")
	}
	return user, nil
}

// requireCompetitionAdmin resolves the caller and verifies admin rights
// for the given competition
func (h *Handlers) requireCompetitionAdmin(r *http.Request, competitionID int) (*models.User, error) {
	user, err := h.currentUser(r)
	if err != nil {
		return nil, err
	}
	ok, err := h.Roles.CanAdminister(r.Context(), user, competitionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, Forbidden("Admin access required for this competition")
	}
	return user, nil
}

// ==================== Pages ====================

func (h *Handlers) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	h.templates.AdminDashboard.ExecuteTemplate(w, "layout.html", AdminPageData{
		Title:     "Dashboard",
		PageTitle: "Dashboard",
		ActiveNav: "dashboard",
	})
}

func (h *Handlers) handleAdminCompetitions(w http.ResponseWriter, r *http.Request) {
	h.templates.AdminCompetitions.ExecuteTemplate(w, "layout.html", AdminPageData{
		Title:     "Competitions",
		PageTitle: "Competitions",
		ActiveNav: "competitions",
	})
}

func (h *Handlers) handleAdminStations(w http.ResponseWriter, r *http.Request) {
	h.templates.AdminStations.ExecuteTemplate(w, "layout.html", AdminPageData{
		Title:     "Stations",
		PageTitle: "Stations",
		ActiveNav: "stations",
	})
}

func (h *Handlers) handleAdminPatrols(w http.ResponseWriter, r *http.Request) {
	h.templates.AdminPatrols.ExecuteTemplate(w, "layout.html", AdminPageData{
		Title:     "Patrols",
		PageTitle: "Patrols",
		ActiveNav: "patrols",
	})
}

func (h *Handlers) handleAdminGroups(w http.ResponseWriter, r *http.Request) {
	h.templates.AdminGroups.ExecuteTemplate(w, "layout.html", AdminPageData{
		Title:     "Scout Groups",
		PageTitle: "Scout Groups",
		ActiveNav: "groups",
	})
}

func (h *Handlers) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	h.templates.AdminUsers.ExecuteTemplate(w, "layout.html", AdminPageData{
		Title:     "Users",
		PageTitle: "Users & Roles",
		ActiveNav: "users",
	})
}

func (h *Handlers) handleAdminSettings(w http.ResponseWriter, r *http.Request) {
	h.templates.AdminSettings.ExecuteTemplate(w, "layout.html", AdminPageData{
		Title:     "Settings",
		PageTitle: "Settings",
		ActiveNav: "settings",
	})
}

// ==================== Competitions ====================

func (h *Handlers) handleGetCompetitions(w http.ResponseWriter, r *http.Request) {
	respondOK(w, h.Competition.ListCompetitions(r.Context()))
}

func (h *Handlers) handleGetCompetition(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	competition, err := h.Competition.GetCompetition(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, competition)
}

func (h *Handlers) handleCreateCompetition(w http.ResponseWriter, r *http.Request) {
	if _, err := h.requireGlobalAdmin(r); err != nil {
		respondError(w, err)
		return
	}

	var req CompetitionCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	id, err := h.Competition.CreateCompetition(r.Context(), req.Name, req.Date)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, CreatedResponse{ID: id})
}

func (h *Handlers) handleUpdateCompetition(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if _, err := h.requireCompetitionAdmin(r, id); err != nil {
		respondError(w, err)
		return
	}

	var req CompetitionUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Competition.UpdateCompetition(r.Context(), id, req.Name, req.Date); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Competition updated")
}

func (h *Handlers) handleCloseCompetition(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if _, err := h.requireCompetitionAdmin(r, id); err != nil {
		respondError(w, err)
		return
	}
	if err := h.Competition.CloseCompetition(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Competition closed")
}

func (h *Handlers) handleReopenCompetition(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if _, err := h.requireCompetitionAdmin(r, id); err != nil {
		respondError(w, err)
		return
	}
	if err := h.Competition.ReopenCompetition(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Competition reopened")
}

func (h *Handlers) handleSelectCompetition(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if _, err := h.requireCompetitionAdmin(r, id); err != nil {
		respondError(w, err)
		return
	}
	if err := h.Competition.SelectCompetition(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Competition selected")
}

func (h *Handlers) handleDeleteCompetition(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if _, err := h.requireGlobalAdmin(r); err != nil {
		respondError(w, err)
		return
	}
	if err := h.Competition.DeleteCompetition(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}

// ==================== Stations ====================

func (h *Handlers) handleGetStations(w http.ResponseWriter, r *http.Request) {
	competitionID, err := parseIntQuery(r, "competition_id")
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, h.Station.ListStations(r.Context(), competitionID))
}

func (h *Handlers) handleGetStation(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	station, err := h.Station.GetStation(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, station)
}

func (h *Handlers) handleCreateStation(w http.ResponseWriter, r *http.Request) {
	var req StationCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if _, err := h.requireCompetitionAdmin(r, req.CompetitionID); err != nil {
		respondError(w, err)
		return
	}

	id, err := h.Station.CreateStation(r.Context(), models.Station{
		CompetitionID:   req.CompetitionID,
		Name:            req.Name,
		Description:     req.Description,
		MaxScore:        req.MaxScore,
		LeaderEmail:     req.LeaderEmail,
		AllowedSections: req.AllowedSections,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, CreatedResponse{ID: id})
}

func (h *Handlers) handleUpdateStation(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	existing, err := h.Station.GetStation(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if _, err := h.requireCompetitionAdmin(r, existing.CompetitionID); err != nil {
		respondError(w, err)
		return
	}

	var req StationUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	err = h.Station.UpdateStation(r.Context(), models.Station{
		ID:              id,
		CompetitionID:   existing.CompetitionID,
		Name:            req.Name,
		Description:     req.Description,
		MaxScore:        req.MaxScore,
		LeaderEmail:     req.LeaderEmail,
		AllowedSections: req.AllowedSections,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Station updated")
}

func (h *Handlers) handleDeleteStation(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	existing, err := h.Station.GetStation(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if _, err := h.requireCompetitionAdmin(r, existing.CompetitionID); err != nil {
		respondError(w, err)
		return
	}
	if err := h.Station.DeleteStation(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}

// ==================== Patrols ====================

func (h *Handlers) handleGetPatrols(w http.ResponseWriter, r *http.Request) {
	competitionID, err := parseIntQuery(r, "competition_id")
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, h.Patrol.ListPatrols(r.Context(), competitionID))
}

func (h *Handlers) handleCreatePatrol(w http.ResponseWriter, r *http.Request) {
	var req PatrolCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if _, err := h.requireCompetitionAdmin(r, req.CompetitionID); err != nil {
		respondError(w, err)
		return
	}

	id, err := h.Patrol.CreatePatrol(r.Context(), models.Patrol{
		CompetitionID: req.CompetitionID,
		Name:          req.Name,
		Section:       req.Section,
		ScoutGroupID:  req.ScoutGroupID,
		Members:       req.Members,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, CreatedResponse{ID: id})
}

func (h *Handlers) handleUpdatePatrol(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	existing, err := h.Patrol.GetPatrol(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if _, err := h.requireCompetitionAdmin(r, existing.CompetitionID); err != nil {
		respondError(w, err)
		return
	}

	var req PatrolUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	err = h.Patrol.UpdatePatrol(r.Context(), models.Patrol{
		ID:            id,
		CompetitionID: existing.CompetitionID,
		Name:          req.Name,
		Section:       req.Section,
		ScoutGroupID:  req.ScoutGroupID,
		Members:       req.Members,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Patrol updated")
}

func (h *Handlers) handleDeletePatrol(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	existing, err := h.Patrol.GetPatrol(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if _, err := h.requireCompetitionAdmin(r, existing.CompetitionID); err != nil {
		respondError(w, err)
		return
	}
	if err := h.Patrol.DeletePatrol(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}

// ==================== Scout groups & templates ====================

func (h *Handlers) handleGetGroups(w http.ResponseWriter, r *http.Request) {
	competitionID, err := parseIntQuery(r, "competition_id")
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, h.Group.ListGroups(r.Context(), competitionID))
}

func (h *Handlers) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req GroupCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if _, err := h.requireCompetitionAdmin(r, req.CompetitionID); err != nil {
		respondError(w, err)
		return
	}

	id, err := h.Group.CreateGroup(r.Context(), req.CompetitionID, req.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, CreatedResponse{ID: id})
}

func (h *Handlers) handleUpdateGroup(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req GroupUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := h.Group.UpdateGroup(r.Context(), id, req.Name); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Scout group updated")
}

func (h *Handlers) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.Group.DeleteGroup(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}

func (h *Handlers) handleGetTemplates(w http.ResponseWriter, r *http.Request) {
	respondOK(w, h.Group.ListTemplates(r.Context()))
}

func (h *Handlers) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	if _, err := h.requireGlobalAdmin(r); err != nil {
		respondError(w, err)
		return
	}

	var req TemplateCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	id, err := h.Group.CreateTemplate(r.Context(), req.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, CreatedResponse{ID: id})
}

func (h *Handlers) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if _, err := h.requireGlobalAdmin(r); err != nil {
		respondError(w, err)
		return
	}

	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.Group.DeleteTemplate(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}

func (h *Handlers) handleApplyTemplates(w http.ResponseWriter, r *http.Request) {
	competitionID, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if _, err := h.requireCompetitionAdmin(r, competitionID); err != nil {
		respondError(w, err)
		return
	}

	created, err := h.Group.ApplyTemplates(r.Context(), competitionID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, map[string]int{"groups_created": created})
}

func (h *Handlers) handleImportScoutnet(w http.ResponseWriter, r *http.Request) {
	competitionID, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if _, err := h.requireCompetitionAdmin(r, competitionID); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.Group.ImportFromScoutnet(r.Context(), competitionID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, ImportResponse{
		GroupsCreated:  result.GroupsCreated,
		PatrolsCreated: result.PatrolsCreated,
		Skipped:        result.Skipped,
	})
}

// ==================== Users & roles ====================

func (h *Handlers) handleGetUsers(w http.ResponseWriter, r *http.Request) {
	if _, err := h.requireGlobalAdmin(r); err != nil {
		respondError(w, err)
		return
	}

	users := h.Roles.ListUsers(r.Context())
	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, UserResponse{
			ID:          u.ID,
			Email:       u.Email,
			Name:        u.Name,
			GlobalAdmin: u.GlobalAdmin,
			Grants:      h.Roles.ListScorerGrants(r.Context(), u.ID),
		})
	}
	respondOK(w, resp)
}

func (h *Handlers) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	if _, err := h.requireGlobalAdmin(r); err != nil {
		respondError(w, err)
		return
	}

	var req UserCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	id, err := h.Roles.CreateUser(r.Context(), req.Email, req.Name, req.Password, req.GlobalAdmin)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, CreatedResponse{ID: id})
}

func (h *Handlers) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	caller, err := h.requireGlobalAdmin(r)
	if err != nil {
		respondError(w, err)
		return
	}

	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if id == caller.ID {
		respondError(w, BadRequest("You cannot delete your own account"))
		return
	}
	if err := h.Roles.DeleteUser(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	h.Sessions.DestroyUser(id)
	respondDeleted(w)
}

func (h *Handlers) handleSetGlobalAdmin(w http.ResponseWriter, r *http.Request) {
	if _, err := h.requireGlobalAdmin(r); err != nil {
		respondError(w, err)
		return
	}

	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req GlobalAdminRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := h.Roles.SetGlobalAdmin(r.Context(), id, req.Admin); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Global admin updated")
}

func (h *Handlers) handleGrantCompetitionAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req AdminGrantRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if _, err := h.requireCompetitionAdmin(r, req.CompetitionID); err != nil {
		respondError(w, err)
		return
	}
	if err := h.Roles.GrantCompetitionAdmin(r.Context(), id, req.CompetitionID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Competition admin granted")
}

func (h *Handlers) handleRevokeCompetitionAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req AdminGrantRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if _, err := h.requireCompetitionAdmin(r, req.CompetitionID); err != nil {
		respondError(w, err)
		return
	}
	if err := h.Roles.RevokeCompetitionAdmin(r.Context(), id, req.CompetitionID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Competition admin revoked")
}

func (h *Handlers) handleGrantScorer(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req ScorerGrantRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	// A grant without a competition scope needs a global admin
	if req.CompetitionID == nil {
		if _, err := h.requireGlobalAdmin(r); err != nil {
			respondError(w, err)
			return
		}
	} else if _, err := h.requireCompetitionAdmin(r, *req.CompetitionID); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Roles.GrantScorer(r.Context(), id, req.CompetitionID, req.Section); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Scorer access granted")
}

func (h *Handlers) handleRevokeScorer(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req ScorerGrantRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if req.CompetitionID == nil {
		if _, err := h.requireGlobalAdmin(r); err != nil {
			respondError(w, err)
			return
		}
	} else if _, err := h.requireCompetitionAdmin(r, *req.CompetitionID); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Roles.RevokeScorer(r.Context(), id, req.CompetitionID, req.Section); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Scorer access revoked")
}

// ==================== Settings ====================

func (h *Handlers) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	if _, err := h.requireGlobalAdmin(r); err != nil {
		respondError(w, err)
		return
	}

	baseURL, err := h.Settings.GetBaseURL(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	scoutnetURL, err := h.Settings.GetScoutnetURL(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, SettingsResponse{BaseURL: baseURL, ScoutnetURL: scoutnetURL})
}

func (h *Handlers) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	if _, err := h.requireGlobalAdmin(r); err != nil {
		respondError(w, err)
		return
	}

	var req SettingsUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.BaseURL != "" {
		if err := h.Settings.SetBaseURL(r.Context(), req.BaseURL); err != nil {
			respondError(w, err)
			return
		}
	}
	if req.ScoutnetURL != "" {
		if err := h.Settings.SetScoutnetURL(r.Context(), req.ScoutnetURL); err != nil {
			respondError(w, err)
			return
		}
	}
	respondSuccess(w, "Settings updated")
}

// ==================== QR codes ====================

// serveQR renders a URL as a PNG QR code
func serveQR(w http.ResponseWriter, url string) {
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		respondError(w, InternalError(err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// handleGetScoreboardQR returns a QR code linking to the public scoreboard
func (h *Handlers) handleGetScoreboardQR(w http.ResponseWriter, r *http.Request) {
	baseURL, err := h.Settings.GetBaseURL(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if baseURL == "" {
		respondError(w, BadRequest("Base URL is not configured"))
		return
	}
	serveQR(w, baseURL+"/")
}

// handleGetStationQR returns a QR code linking to one station's scoring page
func (h *Handlers) handleGetStationQR(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if _, err := h.Station.GetStation(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	baseURL, err := h.Settings.GetBaseURL(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if baseURL == "" {
		respondError(w, BadRequest("Base URL is not configured"))
		return
	}
	serveQR(w, fmt.Sprintf("%s/stations/%d/score", baseURL, id))
}
