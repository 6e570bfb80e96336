package scoutnet

import "context"

// MockClient is a mock Scoutnet client for testing
type MockClient struct {
	groups     []Group
	patrols    map[int][]Patrol // groupID -> roster
	baseURL    string
	pingErr    error
	groupsErr  error
	patrolsErr error
}

// MockOption configures the mock client
type MockOption func(*MockClient)

// WithGroups sets the groups to return
func WithGroups(groups []Group) MockOption {
	return func(m *MockClient) {
		m.groups = groups
	}
}

// WithPatrols sets the roster to return for a group
func WithPatrols(groupID int, patrols []Patrol) MockOption {
	return func(m *MockClient) {
		m.patrols[groupID] = patrols
	}
}

// WithPingError sets an error to return from Ping
func WithPingError(err error) MockOption {
	return func(m *MockClient) {
		m.pingErr = err
	}
}

// WithGroupsError sets an error to return from FetchGroups
func WithGroupsError(err error) MockOption {
	return func(m *MockClient) {
		m.groupsErr = err
	}
}

// WithPatrolsError sets an error to return from FetchPatrols
func WithPatrolsError(err error) MockOption {
	return func(m *MockClient) {
		m.patrolsErr = err
	}
}

// NewMockClient creates a mock client with the given options
func NewMockClient(opts ...MockOption) *MockClient {
	m := &MockClient{
		patrols: make(map[int][]Patrol),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MockClient) Ping(_ context.Context) error {
	return m.pingErr
}

func (m *MockClient) FetchGroups(_ context.Context) ([]Group, error) {
	if m.groupsErr != nil {
		return nil, m.groupsErr
	}
	return m.groups, nil
}

func (m *MockClient) FetchPatrols(_ context.Context, groupID int) ([]Patrol, error) {
	if m.patrolsErr != nil {
		return nil, m.patrolsErr
	}
	return m.patrols[groupID], nil
}

func (m *MockClient) BaseURL() string   { return m.baseURL }
func (m *MockClient) SetBaseURL(u string) { m.baseURL = u }
func (m *MockClient) SetAPIKey(string)  {}

// Ensure MockClient implements Client
var _ Client = (*MockClient)(nil)
