package models

// Competition status values
const (
	CompetitionActive = "active"
	CompetitionClosed = "closed"
)

// Sections is the fixed set of age-graded divisions, youngest first.
var Sections = []string{"sparare", "upptackare", "aventyrare", "utmanare", "rover"}

// ValidSection reports whether s is one of the known sections
func ValidSection(s string) bool {
	for _, sec := range Sections {
		if sec == s {
			return true
		}
	}
	return false
}

// Competition represents a single competition event
type Competition struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Date   string `json:"date"`
	Status string `json:"status"`
}

// Station represents a scoring checkpoint within a competition
type Station struct {
	ID              int      `json:"id"`
	CompetitionID   int      `json:"competition_id"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	MaxScore        int      `json:"max_score"`
	LeaderEmail     string   `json:"leader_email,omitempty"`
	AllowedSections []string `json:"allowed_sections,omitempty"` // Empty/nil means all sections allowed
}

// AllowsSection reports whether the station accepts patrols from the section
func (s Station) AllowsSection(section string) bool {
	if len(s.AllowedSections) == 0 {
		return true
	}
	for _, allowed := range s.AllowedSections {
		if allowed == section {
			return true
		}
	}
	return false
}

// Patrol represents a competing team
type Patrol struct {
	ID            int    `json:"id"`
	CompetitionID int    `json:"competition_id"`
	Name          string `json:"name"`
	Section       string `json:"section"`
	ScoutGroupID  *int   `json:"scout_group_id,omitempty"` // Weak reference, cleared when the group is deleted
	Members       int    `json:"members,omitempty"`
}

// ScoutGroup is an organizational parent that patrols may belong to
type ScoutGroup struct {
	ID            int    `json:"id"`
	CompetitionID int    `json:"competition_id"`
	Name          string `json:"name"`
}

// ScoutGroupTemplate is a reusable group name an admin can instantiate
// into any competition
type ScoutGroupTemplate struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Score is the point value a patrol earned at a station.
// At most one row exists per (competition, patrol, station).
type Score struct {
	CompetitionID int `json:"competition_id"`
	PatrolID      int `json:"patrol_id"`
	StationID     int `json:"station_id"`
	Value         int `json:"value"`
}

// PatrolWithScore is the derived scoreboard row for one patrol
type PatrolWithScore struct {
	Patrol
	TotalScore    int         `json:"total_score"`
	StationScores map[int]int `json:"station_scores"` // stationID -> value, zero-filled
	Rank          int         `json:"rank"`
}

// StationScore is one patrol's score at a single station, for
// per-station leaderboards
type StationScore struct {
	Patrol Patrol `json:"patrol"`
	Value  int    `json:"value"`
}

// User is an account that may hold roles
type User struct {
	ID          int    `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	GlobalAdmin bool   `json:"global_admin"`
}

// ScorerGrant gives a user scoring rights, optionally scoped to a
// competition and/or section. Nil scope means unrestricted.
type ScorerGrant struct {
	UserID        int    `json:"user_id"`
	CompetitionID *int   `json:"competition_id,omitempty"`
	Section       string `json:"section,omitempty"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
