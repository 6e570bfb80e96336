// Package scoutnet provides a client for the Scoutnet member registry,
// used to import scout groups and patrol rosters into a competition.
package scoutnet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"scoutscore/internal/logger"
)

// Group represents a scout group in the registry
type Group struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Patrol represents a patrol roster entry in the registry
type Patrol struct {
	Name    string `json:"name"`
	Section string `json:"section"`
	Members int    `json:"members"`
}

// Client defines the interface for Scoutnet operations
type Client interface {
	// Ping verifies the registry is reachable with the configured key
	Ping(ctx context.Context) error
	// FetchGroups retrieves the caller's scout groups
	FetchGroups(ctx context.Context) ([]Group, error)
	// FetchPatrols retrieves the patrol roster for a group
	FetchPatrols(ctx context.Context, groupID int) ([]Patrol, error)
	// BaseURL returns the configured registry base URL
	BaseURL() string
	// SetBaseURL updates the registry base URL
	SetBaseURL(url string)
	// SetAPIKey updates the API key used for requests
	SetAPIKey(key string)
}

// HTTPClient is a real HTTP client for Scoutnet
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        logger.Logger
}

// NewHTTPClient creates a new Scoutnet HTTP client
func NewHTTPClient(baseURL, apiKey string, log logger.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// NewHTTPClientWithHTTPClient creates a client with a custom http.Client
func NewHTTPClientWithHTTPClient(baseURL, apiKey string, httpClient *http.Client, log logger.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		log:        log,
	}
}

// BaseURL returns the configured registry base URL
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// SetBaseURL updates the registry base URL
func (c *HTTPClient) SetBaseURL(url string) {
	c.baseURL = url
}

// SetAPIKey updates the API key used for requests
func (c *HTTPClient) SetAPIKey(key string) {
	c.apiKey = key
}

// doRequest executes a GET request against the registry API and decodes
// the JSON response into the provided struct
func (c *HTTPClient) doRequest(ctx context.Context, path string, params url.Values, response interface{}) error {
	if c.baseURL == "" {
		return fmt.Errorf("scoutnet URL is not configured")
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("key", c.apiKey)
	apiURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	c.log.Debug("Scoutnet request", "method", "GET", "path", path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to Scoutnet: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debug("Scoutnet response", "status", resp.StatusCode)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("Scoutnet rejected the API key (status %d)", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Scoutnet returned status %d: %s", resp.StatusCode, string(body))
	}

	if response != nil {
		if err := json.Unmarshal(body, response); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// Ping verifies the registry is reachable with the configured key
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.doRequest(ctx, "/api/ping", nil, nil)
}

// groupListResponse is the response from the group list API
type groupListResponse struct {
	Groups []Group `json:"groups"`
}

// FetchGroups retrieves the caller's scout groups
func (c *HTTPClient) FetchGroups(ctx context.Context) ([]Group, error) {
	var resp groupListResponse
	if err := c.doRequest(ctx, "/api/groups", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Groups, nil
}

// patrolListResponse is the response from the patrol roster API
type patrolListResponse struct {
	Patrols []Patrol `json:"patrols"`
}

// FetchPatrols retrieves the patrol roster for a group
func (c *HTTPClient) FetchPatrols(ctx context.Context, groupID int) ([]Patrol, error) {
	params := url.Values{}
	params.Set("group_id", fmt.Sprintf("%d", groupID))

	var resp patrolListResponse
	if err := c.doRequest(ctx, "/api/patrols", params, &resp); err != nil {
		return nil, err
	}
	return resp.Patrols, nil
}
