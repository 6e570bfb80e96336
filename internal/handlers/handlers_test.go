package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"scoutscore/internal/auth"
	"scoutscore/internal/logger"
	"scoutscore/internal/models"
	"scoutscore/internal/repository"
	"scoutscore/internal/services"
	"scoutscore/internal/testutil"
	"scoutscore/pkg/scoutnet"
)

// testEnv wires real services over an in-memory database for handler tests
type testEnv struct {
	t       *testing.T
	h       *Handlers
	repo    *repository.Repository
	router  chi.Router
	scoring *services.ScoringService
	roles   *services.RoleService
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithClient(t, nil)
}

func newTestEnvWithClient(t *testing.T, client scoutnet.Client) *testEnv {
	t.Helper()
	repo := testutil.NewTestRepository(t)
	log := logger.New()

	scoring := services.NewScoringService(log, repo)
	competition := services.NewCompetitionService(log, repo, scoring)
	station := services.NewStationService(log, repo)
	patrol := services.NewPatrolService(log, repo)
	group := services.NewGroupService(log, repo, client)
	ranking := services.NewRankingService(log, repo, scoring)
	roles := services.NewRoleService(log, repo)
	settings := services.NewSettingsService(log, repo)

	h := NewForTesting(competition, station, patrol, group, scoring, ranking, roles, settings)
	return &testEnv{
		t:       t,
		h:       h,
		repo:    repo,
		router:  h.Router(),
		scoring: scoring,
		roles:   roles,
	}
}

// user creates an account and returns its id with a logged-in session cookie
func (e *testEnv) user(email string, globalAdmin bool) (int, *http.Cookie) {
	e.t.Helper()
	id, err := e.roles.CreateUser(context.Background(), email, "Test User", "hunter2hunter2", globalAdmin)
	if err != nil {
		e.t.Fatalf("CreateUser failed: %v", err)
	}
	token := e.h.Sessions.Create(int(id))
	return int(id), &http.Cookie{Name: auth.CookieName, Value: token}
}

// do performs a request against the router, JSON-encoding body when set
func (e *testEnv) do(method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	e.t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			e.t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

// decode parses a JSON response body
func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

// seed creates a competition with one station and one patrol
func (e *testEnv) seed() (compID, stationID, patrolID int) {
	e.t.Helper()
	ctx := context.Background()
	cid, err := e.repo.CreateCompetition(ctx, "Spring Camp", "2026-05-01")
	if err != nil {
		e.t.Fatalf("CreateCompetition failed: %v", err)
	}
	sid, err := e.repo.CreateStation(ctx, models.Station{CompetitionID: int(cid), Name: "Knots", MaxScore: 10})
	if err != nil {
		e.t.Fatalf("CreateStation failed: %v", err)
	}
	pid, err := e.repo.CreatePatrol(ctx, models.Patrol{CompetitionID: int(cid), Name: "Falcons", Section: "sparare"})
	if err != nil {
		e.t.Fatalf("CreatePatrol failed: %v", err)
	}
	return int(cid), int(sid), int(pid)
}

func TestHealthz(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(http.MethodGet, "/healthz", nil, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	body := decode[map[string]string](t, rec)
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(http.MethodGet, "/metrics", nil, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "scoutscore_") {
		t.Error("expected scoutscore metrics in exposition")
	}
}

func TestAPIRequiresAuth(t *testing.T) {
	e := newTestEnv(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/me"},
		{http.MethodGet, "/api/scores?competition_id=1&patrol_id=1&station_id=1"},
		{http.MethodPut, "/api/scores"},
		{http.MethodGet, "/api/admin/competitions"},
		{http.MethodPost, "/api/admin/users"},
	}
	for _, p := range paths {
		rec := e.do(p.method, p.path, nil, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want 401", p.method, p.path, rec.Code)
		}
	}
}

func TestLoginAndMe(t *testing.T) {
	e := newTestEnv(t)
	e.roles.CreateUser(context.Background(), "anna@example.com", "Anna", "hunter2hunter2", true)

	form := url.Values{"email": {"anna@example.com"}, "password": {"hunter2hunter2"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin" {
		t.Errorf("redirect = %q, want /admin", loc)
	}

	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			session = c
		}
	}
	if session == nil {
		t.Fatal("no session cookie set")
	}

	me := e.do(http.MethodGet, "/api/me", nil, session)
	if me.Code != http.StatusOK {
		t.Fatalf("/api/me status = %d, want 200", me.Code)
	}
	user := decode[UserResponse](t, me)
	if user.Email != "anna@example.com" || !user.GlobalAdmin {
		t.Errorf("got %+v", user)
	}
}

func TestLogoutDestroysSession(t *testing.T) {
	e := newTestEnv(t)
	_, cookie := e.user("anna@example.com", false)

	rec := e.do(http.MethodPost, "/logout", nil, cookie)
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}

	after := e.do(http.MethodGet, "/api/me", nil, cookie)
	if after.Code != http.StatusUnauthorized {
		t.Errorf("session should be gone, status = %d", after.Code)
	}
}

func TestAdminPageRedirectsAnonymous(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(http.MethodGet, "/admin", nil, nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("redirect = %q, want /login", loc)
	}
}
