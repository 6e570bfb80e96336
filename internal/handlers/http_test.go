package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"scoutscore/internal/errors"
	"scoutscore/internal/services"
)

func TestToAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", errors.NotFound("patrol not found"), http.StatusNotFound, ErrCodeNotFound},
		{"validation", errors.Validation("name must not be empty"), http.StatusBadRequest, ErrCodeValidation},
		{"invalid input", errors.InvalidInput("bad value"), http.StatusBadRequest, ErrCodeValidation},
		{"conflict", errors.Conflict("already exists"), http.StatusConflict, ErrCodeConflict},
		{"forbidden", errors.Forbidden("scorer role required"), http.StatusForbidden, ErrCodeForbidden},
		{"internal kind", errors.Internal(fmt.Errorf("boom")), http.StatusInternalServerError, ErrCodeInternalServer},
		{"wrapped app error", fmt.Errorf("handler: %w", errors.NotFound("gone")), http.StatusNotFound, ErrCodeNotFound},
		{"competition closed", services.ErrCompetitionClosed, http.StatusConflict, ErrCodeCompetitionClosed},
		{"invalid credentials", services.ErrInvalidCredentials, http.StatusUnauthorized, ErrCodeUnauthorized},
		{"scoutnet disabled", services.ErrScoutnetDisabled, http.StatusBadRequest, ErrCodeBadRequest},
		{"invalid section", services.ErrInvalidSection, http.StatusBadRequest, ErrCodeValidation},
		{"score out of range", &services.ScoreOutOfRangeError{Value: 15, MaxScore: 10}, http.StatusBadRequest, ErrCodeScoreOutOfRange},
		{"other service error", &services.ServiceError{Message: "nope"}, http.StatusBadRequest, ErrCodeBadRequest},
		{"unknown error", fmt.Errorf("disk on fire"), http.StatusInternalServerError, ErrCodeInternalServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToAPIError(tt.err)
			if got.Status != tt.wantStatus {
				t.Errorf("status = %d, want %d", got.Status, tt.wantStatus)
			}
			if got.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", got.Code, tt.wantCode)
			}
		})
	}
}

func TestBadRequestCodeSelection(t *testing.T) {
	if e := BadRequest("Invalid section parameter"); e.Code != ErrCodeValidation {
		t.Errorf("invalid message should map to validation code, got %q", e.Code)
	}
	if e := BadRequest("Request body is empty"); e.Code != ErrCodeBadRequest {
		t.Errorf("plain message should keep bad request code, got %q", e.Code)
	}
}
