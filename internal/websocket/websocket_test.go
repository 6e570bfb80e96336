package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"scoutscore/internal/logger"
	"scoutscore/internal/models"
	"scoutscore/internal/services"
)

// mockCompetitionService implements services.CompetitionServicer for testing
type mockCompetitionService struct {
	current *models.Competition
}

func newMockCompetitionService() *mockCompetitionService {
	return &mockCompetitionService{
		current: &models.Competition{ID: 1, Name: "Spring Camp", Status: models.CompetitionActive},
	}
}

func (m *mockCompetitionService) CurrentCompetition(ctx context.Context) (*models.Competition, error) {
	return m.current, nil
}

// Unused interface methods
func (m *mockCompetitionService) ListCompetitions(ctx context.Context) []models.Competition {
	return nil
}
func (m *mockCompetitionService) GetCompetition(ctx context.Context, id int) (*models.Competition, error) {
	return nil, nil
}
func (m *mockCompetitionService) CreateCompetition(ctx context.Context, name, date string) (int64, error) {
	return 0, nil
}
func (m *mockCompetitionService) UpdateCompetition(ctx context.Context, id int, name, date string) error {
	return nil
}
func (m *mockCompetitionService) CloseCompetition(ctx context.Context, id int) error  { return nil }
func (m *mockCompetitionService) ReopenCompetition(ctx context.Context, id int) error { return nil }
func (m *mockCompetitionService) DeleteCompetition(ctx context.Context, id int) error { return nil }
func (m *mockCompetitionService) SelectCompetition(ctx context.Context, id int) error { return nil }
func (m *mockCompetitionService) SetBroadcaster(b services.Broadcaster)               {}

func TestNew_CreatesHubWithDependencies(t *testing.T) {
	hub := New(logger.New(), newMockCompetitionService())

	if hub == nil {
		t.Fatal("expected hub to be created")
	}
	if hub.log == nil {
		t.Error("expected logger to be set")
	}
	if hub.competitions == nil {
		t.Error("expected competition service to be set")
	}
	if hub.clients == nil {
		t.Error("expected clients map to be initialized")
	}
	if hub.broadcast == nil {
		t.Error("expected broadcast channel to be initialized")
	}
}

func TestHub_BroadcastMessage(t *testing.T) {
	hub := New(logger.New(), newMockCompetitionService())
	hub.Start()

	time.Sleep(10 * time.Millisecond)

	// BroadcastMessage should not block even with no clients
	done := make(chan bool)
	go func() {
		hub.BroadcastMessage("test", map[string]string{"key": "value"})
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Error("BroadcastMessage blocked with no clients")
	}
}

func TestHub_ImplementsBroadcaster(t *testing.T) {
	hub := New(logger.New(), newMockCompetitionService())
	hub.Start()

	time.Sleep(10 * time.Millisecond)

	done := make(chan bool)
	go func() {
		hub.BroadcastScoreSaved(1, 2, 3, 10)
		hub.BroadcastCompetitionStatus(1, models.CompetitionClosed)
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Error("broadcaster methods blocked")
	}
}

func TestHub_ClientRegistration(t *testing.T) {
	hub := New(logger.New(), newMockCompetitionService())
	hub.Start()

	time.Sleep(10 * time.Millisecond)

	client := &Client{
		hub:  hub,
		send: make(chan models.WSMessage, 256),
	}

	hub.register <- client
	time.Sleep(50 * time.Millisecond)

	hub.mutex.RLock()
	_, exists := hub.clients[client]
	hub.mutex.RUnlock()

	if !exists {
		t.Error("expected client to be registered")
	}

	hub.unregister <- client
	time.Sleep(50 * time.Millisecond)

	hub.mutex.RLock()
	_, exists = hub.clients[client]
	hub.mutex.RUnlock()

	if exists {
		t.Error("expected client to be unregistered")
	}
}

func TestServeWs_ClientConnection(t *testing.T) {
	hub := New(logger.New(), newMockCompetitionService())
	hub.Start()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	defer server.Close()

	url := "ws" + server.URL[4:]

	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer ws.Close()

	time.Sleep(100 * time.Millisecond)

	hub.mutex.RLock()
	clientCount := len(hub.clients)
	hub.mutex.RUnlock()

	if clientCount != 1 {
		t.Errorf("expected 1 client, got %d", clientCount)
	}
}

func TestServeWs_InitialCompetitionStatus(t *testing.T) {
	hub := New(logger.New(), newMockCompetitionService())
	hub.Start()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	defer server.Close()

	url := "ws" + server.URL[4:]
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer ws.Close()

	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, message, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read initial message: %v", err)
	}

	var msg models.WSMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		t.Fatalf("failed to unmarshal message: %v", err)
	}
	if msg.Type != "competition_status" {
		t.Errorf("expected type 'competition_status', got %s", msg.Type)
	}
}

func TestServeWs_BroadcastToClient(t *testing.T) {
	hub := New(logger.New(), newMockCompetitionService())
	hub.Start()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	defer server.Close()

	url := "ws" + server.URL[4:]
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer ws.Close()

	time.Sleep(100 * time.Millisecond)

	// Read and discard the initial competition_status message
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := ws.ReadMessage(); err != nil {
		t.Fatalf("failed to read initial message: %v", err)
	}

	hub.BroadcastScoreSaved(1, 4, 2, 17)

	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, message, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read message: %v", err)
	}

	var msg models.WSMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		t.Fatalf("failed to unmarshal message: %v", err)
	}
	if msg.Type != "score_saved" {
		t.Errorf("expected type 'score_saved', got %s", msg.Type)
	}
	payload, ok := msg.Payload.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected payload type %T", msg.Payload)
	}
	if payload["value"] != float64(17) {
		t.Errorf("payload value = %v, want 17", payload["value"])
	}
}

func TestServeWs_ClientDisconnect(t *testing.T) {
	hub := New(logger.New(), newMockCompetitionService())
	hub.Start()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	defer server.Close()

	url := "ws" + server.URL[4:]
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	ws.Close()

	time.Sleep(200 * time.Millisecond)

	hub.mutex.RLock()
	clientCount := len(hub.clients)
	hub.mutex.RUnlock()

	if clientCount != 0 {
		t.Errorf("expected 0 clients after disconnect, got %d", clientCount)
	}
}

func TestServeWs_MultipleClients(t *testing.T) {
	hub := New(logger.New(), newMockCompetitionService())
	hub.Start()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	defer server.Close()

	url := "ws" + server.URL[4:]

	conns := make([]*websocket.Conn, 0, 3)
	for i := 0; i < 3; i++ {
		ws, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			t.Fatalf("failed to connect client %d: %v", i+1, err)
		}
		defer ws.Close()
		conns = append(conns, ws)
	}

	time.Sleep(200 * time.Millisecond)

	// Discard initial competition_status messages
	for i, ws := range conns {
		ws.SetReadDeadline(time.Now().Add(2 * time.Second))
		if _, _, err := ws.ReadMessage(); err != nil {
			t.Errorf("client %d failed to read initial message: %v", i+1, err)
		}
	}

	hub.mutex.RLock()
	clientCount := len(hub.clients)
	hub.mutex.RUnlock()

	if clientCount != 3 {
		t.Errorf("expected 3 clients, got %d", clientCount)
	}

	hub.BroadcastCompetitionStatus(1, models.CompetitionClosed)

	for i, ws := range conns {
		ws.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, message, err := ws.ReadMessage()
		if err != nil {
			t.Errorf("client %d failed to read message: %v", i+1, err)
			continue
		}

		var msg models.WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			t.Errorf("client %d failed to unmarshal: %v", i+1, err)
			continue
		}
		if msg.Type != "competition_status" {
			t.Errorf("client %d got wrong type: %s", i+1, msg.Type)
		}
	}
}

func TestServeWs_UpgradeError(t *testing.T) {
	hub := New(logger.New(), newMockCompetitionService())
	hub.Start()

	// Request without upgrade headers fails the upgrade and must not panic
	req := httptest.NewRequest("GET", "/ws", nil)
	w := httptest.NewRecorder()

	hub.ServeWs(w, req)
}

func TestWritePump_WriteError(t *testing.T) {
	hub := New(logger.New(), newMockCompetitionService())
	hub.Start()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	defer server.Close()

	url := "ws" + server.URL[4:]
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	ws.ReadMessage()

	ws.Close()
	time.Sleep(50 * time.Millisecond)

	hub.BroadcastMessage("test", map[string]string{"key": "value"})

	time.Sleep(200 * time.Millisecond)

	hub.mutex.RLock()
	clientCount := len(hub.clients)
	hub.mutex.RUnlock()

	if clientCount != 0 {
		t.Errorf("expected 0 clients after write error, got %d", clientCount)
	}
}
