package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	_ "github.com/mattn/go-sqlite3"

	"scoutscore/internal/models"
)

// Repository provides data access methods
type Repository struct {
	db *sql.DB
}

// New creates a new Repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	// SQLite works best with a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	repo := &Repository{db: db}

	if err := repo.migrate(); err != nil {
		return nil, err
	}

	return repo, nil
}

// NewWithDB wraps an existing database handle (used by sqlmock tests)
func NewWithDB(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// DB returns the underlying database connection
func (r *Repository) DB() *sql.DB {
	return r.db
}

// Close closes the database connection
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// migrate runs database migrations
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS competitions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			date TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'active',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS scout_groups (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			competition_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			FOREIGN KEY (competition_id) REFERENCES competitions(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS scout_group_templates (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS stations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			competition_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			max_score INTEGER NOT NULL DEFAULT 0,
			leader_email TEXT,
			allowed_sections TEXT,
			FOREIGN KEY (competition_id) REFERENCES competitions(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS patrols (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			competition_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			section TEXT NOT NULL,
			scout_group_id INTEGER,
			members INTEGER DEFAULT 0,
			FOREIGN KEY (competition_id) REFERENCES competitions(id) ON DELETE CASCADE,
			FOREIGN KEY (scout_group_id) REFERENCES scout_groups(id) ON DELETE SET NULL
		)`,
		`CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			competition_id INTEGER NOT NULL,
			patrol_id INTEGER NOT NULL,
			station_id INTEGER NOT NULL,
			value INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (competition_id) REFERENCES competitions(id) ON DELETE CASCADE,
			FOREIGN KEY (patrol_id) REFERENCES patrols(id) ON DELETE CASCADE,
			FOREIGN KEY (station_id) REFERENCES stations(id) ON DELETE CASCADE,
			UNIQUE(competition_id, patrol_id, station_id)
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL UNIQUE,
			name TEXT,
			password_hash TEXT NOT NULL,
			global_admin BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS competition_admins (
			user_id INTEGER NOT NULL,
			competition_id INTEGER NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
			FOREIGN KEY (competition_id) REFERENCES competitions(id) ON DELETE CASCADE,
			UNIQUE(user_id, competition_id)
		)`,
		`CREATE TABLE IF NOT EXISTS scorer_grants (
			user_id INTEGER NOT NULL,
			competition_id INTEGER,
			section TEXT,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
			FOREIGN KEY (competition_id) REFERENCES competitions(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_stations_competition ON stations(competition_id)`,
		`CREATE INDEX IF NOT EXISTS idx_patrols_competition ON patrols(competition_id)`,
		`CREATE INDEX IF NOT EXISTS idx_scores_competition ON scores(competition_id)`,
		`CREATE INDEX IF NOT EXISTS idx_scores_patrol ON scores(patrol_id)`,
		`CREATE INDEX IF NOT EXISTS idx_scores_station ON scores(station_id)`,
		`CREATE INDEX IF NOT EXISTS idx_scorer_grants_user ON scorer_grants(user_id)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}

// ==================== Competition Methods ====================

// ListCompetitions returns all competitions, newest first
func (r *Repository) ListCompetitions(ctx context.Context) ([]models.Competition, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, date, status FROM competitions ORDER BY date DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comps []models.Competition
	for rows.Next() {
		var c models.Competition
		if err := rows.Scan(&c.ID, &c.Name, &c.Date, &c.Status); err != nil {
			return nil, err
		}
		comps = append(comps, c)
	}
	return comps, rows.Err()
}

// GetCompetition returns a single competition by id
func (r *Repository) GetCompetition(ctx context.Context, id int) (*models.Competition, error) {
	var c models.Competition
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, date, status FROM competitions WHERE id = ?
	`, id).Scan(&c.ID, &c.Name, &c.Date, &c.Status)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCompetition creates a new active competition
func (r *Repository) CreateCompetition(ctx context.Context, name, date string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO competitions (name, date, status) VALUES (?, ?, 'active')
	`, name, date)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// UpdateCompetition updates a competition's name and date
func (r *Repository) UpdateCompetition(ctx context.Context, id int, name, date string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE competitions SET name = ?, date = ? WHERE id = ?
	`, name, date, id)
	return err
}

// SetCompetitionStatus toggles a competition between active and closed
func (r *Repository) SetCompetitionStatus(ctx context.Context, id int, status string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE competitions SET status = ? WHERE id = ?
	`, status, id)
	return err
}

// DeleteCompetition deletes a competition. Stations, patrols, groups and
// scores cascade via foreign keys.
func (r *Repository) DeleteCompetition(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM competitions WHERE id = ?`, id)
	return err
}

// ==================== Station Methods ====================

// ListStations returns all stations in a competition
func (r *Repository) ListStations(ctx context.Context, competitionID int) ([]models.Station, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, competition_id, name, description, max_score, leader_email, allowed_sections
		FROM stations WHERE competition_id = ? ORDER BY name
	`, competitionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stations []models.Station
	for rows.Next() {
		s, err := scanStation(rows)
		if err != nil {
			return nil, err
		}
		stations = append(stations, *s)
	}
	return stations, rows.Err()
}

// GetStation returns a single station by id
func (r *Repository) GetStation(ctx context.Context, id int) (*models.Station, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, competition_id, name, description, max_score, leader_email, allowed_sections
		FROM stations WHERE id = ?
	`, id)
	s, err := scanStation(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanStation maps a station row, normalizing NULL allowed_sections to
// "all sections allowed" (nil slice).
func scanStation(row rowScanner) (*models.Station, error) {
	var s models.Station
	var description, leaderEmail, allowedSections sql.NullString
	if err := row.Scan(&s.ID, &s.CompetitionID, &s.Name, &description, &s.MaxScore, &leaderEmail, &allowedSections); err != nil {
		return nil, err
	}
	s.Description = description.String
	s.LeaderEmail = leaderEmail.String
	if allowedSections.Valid && allowedSections.String != "" {
		if err := json.Unmarshal([]byte(allowedSections.String), &s.AllowedSections); err != nil {
			// Malformed column falls back to all sections allowed
			s.AllowedSections = nil
		}
	}
	return &s, nil
}

// marshalSections encodes allowed sections as a JSON column value.
// Empty means all sections allowed and is stored as NULL.
func marshalSections(sections []string) interface{} {
	if len(sections) == 0 {
		return nil
	}
	b, err := json.Marshal(sections)
	if err != nil {
		return nil
	}
	return string(b)
}

// CreateStation creates a new station
func (r *Repository) CreateStation(ctx context.Context, s models.Station) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO stations (competition_id, name, description, max_score, leader_email, allowed_sections)
		VALUES (?, ?, ?, ?, ?, ?)
	`, s.CompetitionID, s.Name, s.Description, s.MaxScore, s.LeaderEmail, marshalSections(s.AllowedSections))
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// UpdateStation updates a station
func (r *Repository) UpdateStation(ctx context.Context, s models.Station) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE stations SET name = ?, description = ?, max_score = ?, leader_email = ?, allowed_sections = ?
		WHERE id = ?
	`, s.Name, s.Description, s.MaxScore, s.LeaderEmail, marshalSections(s.AllowedSections), s.ID)
	return err
}

// DeleteStation deletes a station; its scores cascade
func (r *Repository) DeleteStation(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM stations WHERE id = ?`, id)
	return err
}

// ==================== Patrol Methods ====================

// ListPatrols returns all patrols in a competition
func (r *Repository) ListPatrols(ctx context.Context, competitionID int) ([]models.Patrol, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, competition_id, name, section, scout_group_id, members
		FROM patrols WHERE competition_id = ? ORDER BY name
	`, competitionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patrols []models.Patrol
	for rows.Next() {
		p, err := scanPatrol(rows)
		if err != nil {
			return nil, err
		}
		patrols = append(patrols, *p)
	}
	return patrols, rows.Err()
}

// GetPatrol returns a single patrol by id
func (r *Repository) GetPatrol(ctx context.Context, id int) (*models.Patrol, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, competition_id, name, section, scout_group_id, members
		FROM patrols WHERE id = ?
	`, id)
	p, err := scanPatrol(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func scanPatrol(row rowScanner) (*models.Patrol, error) {
	var p models.Patrol
	var groupID sql.NullInt64
	var members sql.NullInt64
	if err := row.Scan(&p.ID, &p.CompetitionID, &p.Name, &p.Section, &groupID, &members); err != nil {
		return nil, err
	}
	if groupID.Valid {
		id := int(groupID.Int64)
		p.ScoutGroupID = &id
	}
	p.Members = int(members.Int64)
	return &p, nil
}

// CreatePatrol creates a new patrol
func (r *Repository) CreatePatrol(ctx context.Context, p models.Patrol) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO patrols (competition_id, name, section, scout_group_id, members)
		VALUES (?, ?, ?, ?, ?)
	`, p.CompetitionID, p.Name, p.Section, p.ScoutGroupID, p.Members)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// UpdatePatrol updates a patrol
func (r *Repository) UpdatePatrol(ctx context.Context, p models.Patrol) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE patrols SET name = ?, section = ?, scout_group_id = ?, members = ?
		WHERE id = ?
	`, p.Name, p.Section, p.ScoutGroupID, p.Members, p.ID)
	return err
}

// DeletePatrol deletes a patrol; its scores cascade
func (r *Repository) DeletePatrol(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM patrols WHERE id = ?`, id)
	return err
}

// ==================== Score Methods ====================

// ListScores returns all score rows for a competition
func (r *Repository) ListScores(ctx context.Context, competitionID int) ([]models.Score, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT competition_id, patrol_id, station_id, value
		FROM scores WHERE competition_id = ?
	`, competitionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []models.Score
	for rows.Next() {
		var s models.Score
		if err := rows.Scan(&s.CompetitionID, &s.PatrolID, &s.StationID, &s.Value); err != nil {
			return nil, err
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}

// UpsertScore inserts or replaces the score for (competition, patrol, station)
func (r *Repository) UpsertScore(ctx context.Context, competitionID, patrolID, stationID, value int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO scores (competition_id, patrol_id, station_id, value)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(competition_id, patrol_id, station_id)
		DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, competitionID, patrolID, stationID, value)
	return err
}

// ==================== Scout Group Methods ====================

// ListScoutGroups returns all scout groups in a competition
func (r *Repository) ListScoutGroups(ctx context.Context, competitionID int) ([]models.ScoutGroup, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, competition_id, name FROM scout_groups
		WHERE competition_id = ? ORDER BY name
	`, competitionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []models.ScoutGroup
	for rows.Next() {
		var g models.ScoutGroup
		if err := rows.Scan(&g.ID, &g.CompetitionID, &g.Name); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// GetScoutGroup returns a single scout group by id
func (r *Repository) GetScoutGroup(ctx context.Context, id int) (*models.ScoutGroup, error) {
	var g models.ScoutGroup
	err := r.db.QueryRowContext(ctx, `
		SELECT id, competition_id, name FROM scout_groups WHERE id = ?
	`, id).Scan(&g.ID, &g.CompetitionID, &g.Name)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// CreateScoutGroup creates a new scout group
func (r *Repository) CreateScoutGroup(ctx context.Context, competitionID int, name string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO scout_groups (competition_id, name) VALUES (?, ?)
	`, competitionID, name)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// UpdateScoutGroup renames a scout group
func (r *Repository) UpdateScoutGroup(ctx context.Context, id int, name string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE scout_groups SET name = ? WHERE id = ?`, name, id)
	return err
}

// DeleteScoutGroup deletes a scout group. Patrols referencing it keep
// existing with scout_group_id cleared (ON DELETE SET NULL).
func (r *Repository) DeleteScoutGroup(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM scout_groups WHERE id = ?`, id)
	return err
}

// ListGroupTemplates returns all scout group templates
func (r *Repository) ListGroupTemplates(ctx context.Context) ([]models.ScoutGroupTemplate, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name FROM scout_group_templates ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []models.ScoutGroupTemplate
	for rows.Next() {
		var t models.ScoutGroupTemplate
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// CreateGroupTemplate creates a scout group template
func (r *Repository) CreateGroupTemplate(ctx context.Context, name string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO scout_group_templates (name) VALUES (?)
	`, name)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// DeleteGroupTemplate deletes a scout group template
func (r *Repository) DeleteGroupTemplate(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM scout_group_templates WHERE id = ?`, id)
	return err
}

// ==================== User & Role Methods ====================

// CountUsers returns the total number of user accounts
func (r *Repository) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

// ListUsers returns all user accounts
func (r *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, name, global_admin FROM users ORDER BY email
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		var name sql.NullString
		if err := rows.Scan(&u.ID, &u.Email, &name, &u.GlobalAdmin); err != nil {
			return nil, err
		}
		u.Name = name.String
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetUser returns a user by id
func (r *Repository) GetUser(ctx context.Context, id int) (*models.User, error) {
	var u models.User
	var name sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, name, global_admin FROM users WHERE id = ?
	`, id).Scan(&u.ID, &u.Email, &name, &u.GlobalAdmin)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Name = name.String
	return &u, nil
}

// GetUserByEmail returns a user and their password hash by email
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, string, error) {
	var u models.User
	var name sql.NullString
	var hash string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, name, password_hash, global_admin FROM users WHERE email = ?
	`, email).Scan(&u.ID, &u.Email, &name, &hash, &u.GlobalAdmin)
	if err == sql.ErrNoRows {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", err
	}
	u.Name = name.String
	return &u, hash, nil
}

// CreateUser creates a new user account
func (r *Repository) CreateUser(ctx context.Context, email, name, passwordHash string, globalAdmin bool) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO users (email, name, password_hash, global_admin) VALUES (?, ?, ?, ?)
	`, email, name, passwordHash, globalAdmin)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// DeleteUser deletes a user; grants cascade
func (r *Repository) DeleteUser(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	return err
}

// SetGlobalAdmin grants or revokes the global admin flag
func (r *Repository) SetGlobalAdmin(ctx context.Context, userID int, admin bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET global_admin = ? WHERE id = ?`, admin, userID)
	return err
}

// GrantCompetitionAdmin makes a user admin of a competition
func (r *Repository) GrantCompetitionAdmin(ctx context.Context, userID, competitionID int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO competition_admins (user_id, competition_id) VALUES (?, ?)
	`, userID, competitionID)
	return err
}

// RevokeCompetitionAdmin removes a user's admin role for a competition
func (r *Repository) RevokeCompetitionAdmin(ctx context.Context, userID, competitionID int) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM competition_admins WHERE user_id = ? AND competition_id = ?
	`, userID, competitionID)
	return err
}

// IsCompetitionAdmin reports whether a user administers a competition
func (r *Repository) IsCompetitionAdmin(ctx context.Context, userID, competitionID int) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM competition_admins WHERE user_id = ? AND competition_id = ?
	`, userID, competitionID).Scan(&count)
	return count > 0, err
}

// GrantScorer gives a user scoring rights, optionally scoped
func (r *Repository) GrantScorer(ctx context.Context, userID int, competitionID *int, section string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO scorer_grants (user_id, competition_id, section) VALUES (?, ?, NULLIF(?, ''))
	`, userID, competitionID, section)
	return err
}

// RevokeScorer removes a matching scorer grant
func (r *Repository) RevokeScorer(ctx context.Context, userID int, competitionID *int, section string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM scorer_grants
		WHERE user_id = ?
		  AND competition_id IS ?
		  AND section IS NULLIF(?, '')
	`, userID, competitionID, section)
	return err
}

// ListScorerGrants returns all scorer grants for a user
func (r *Repository) ListScorerGrants(ctx context.Context, userID int) ([]models.ScorerGrant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, competition_id, section FROM scorer_grants WHERE user_id = ?
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []models.ScorerGrant
	for rows.Next() {
		var g models.ScorerGrant
		var compID sql.NullInt64
		var section sql.NullString
		if err := rows.Scan(&g.UserID, &compID, &section); err != nil {
			return nil, err
		}
		if compID.Valid {
			id := int(compID.Int64)
			g.CompetitionID = &id
		}
		g.Section = section.String
		grants = append(grants, g)
	}
	return grants, rows.Err()
}

// ==================== Settings Methods ====================

// GetSetting retrieves a setting value, empty string if not set
func (r *Repository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetSetting stores a setting value
func (r *Repository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
