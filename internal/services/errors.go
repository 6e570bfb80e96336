package services

import "fmt"

// Service errors
var (
	ErrCompetitionClosed  = &ServiceError{Message: "competition is closed"}
	ErrInvalidSection     = &ServiceError{Message: "unknown section"}
	ErrInvalidMaxScore    = &ServiceError{Message: "max score must not be negative"}
	ErrInvalidCredentials = &ServiceError{Message: "invalid email or password"}
	ErrScoutnetDisabled   = &ServiceError{Message: "Scoutnet sync is not configured"}
)

// ServiceError represents a service-level error
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// ScoreOutOfRangeError reports a score value outside a station's range
type ScoreOutOfRangeError struct {
	Value    int
	MaxScore int
}

func (e *ScoreOutOfRangeError) Error() string {
	return fmt.Sprintf("score %d is outside 0..%d", e.Value, e.MaxScore)
}
