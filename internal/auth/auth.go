package auth

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	CookieName    = "scoutscore_session"
	SessionExpiry = 24 * time.Hour
)

type ctxKey int

const userIDKey ctxKey = 0

type session struct {
	userID int
	expiry time.Time
}

// Sessions tracks logged-in users by session token
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]session
}

// New creates an empty session store
func New() *Sessions {
	return &Sessions{sessions: make(map[string]session)}
}

// Create registers a session for a user and returns the token
func (s *Sessions) Create(userID int) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = session{userID: userID, expiry: time.Now().Add(SessionExpiry)}
	s.mu.Unlock()
	return token
}

// Destroy invalidates a session token
func (s *Sessions) Destroy(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// DestroyUser invalidates all sessions belonging to a user
func (s *Sessions) DestroyUser(userID int) {
	s.mu.Lock()
	for token, sess := range s.sessions {
		if sess.userID == userID {
			delete(s.sessions, token)
		}
	}
	s.mu.Unlock()
}

// Lookup resolves a token to a user id, expiring stale sessions
func (s *Sessions) Lookup(token string) (int, bool) {
	s.mu.RLock()
	sess, exists := s.sessions[token]
	s.mu.RUnlock()

	if !exists {
		return 0, false
	}
	if time.Now().After(sess.expiry) {
		s.Destroy(token)
		return 0, false
	}
	return sess.userID, true
}

// UserIDFromRequest resolves the session cookie to a user id
func (s *Sessions) UserIDFromRequest(r *http.Request) (int, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return 0, false
	}
	return s.Lookup(cookie.Value)
}

// RequireAuth middleware for pages (redirects to login)
func (s *Sessions) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := s.UserIDFromRequest(r)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// RequireAuthAPI middleware for API endpoints (returns 401)
func (s *Sessions) RequireAuthAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := s.UserIDFromRequest(r)
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"code":"UNAUTHORIZED","error":"Unauthorized - please log in"}`))
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// WithUserID attaches a user id to a context
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID extracts the logged-in user id from a context
func UserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}

// SetSessionCookie sets the session cookie on the response
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(SessionExpiry.Seconds()),
	})
}

// ClearSessionCookie removes the session cookie
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
