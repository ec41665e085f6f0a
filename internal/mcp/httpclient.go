package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/meltforce/healthbridge/internal/models"
)

// HTTPClient implements DataSource by calling the HealthBridge REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but data
// lives on the server.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL,
// authenticating with the shared secret as X-API-Key.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func userParams(userID string) url.Values {
	v := url.Values{}
	if userID != "" {
		v.Set("user_id", userID)
	}
	return v
}

func (c *HTTPClient) ListEntities(ctx context.Context, userID string) ([]models.SensorEntityRow, error) {
	body, err := c.get(ctx, "/api/v1/entities", userParams(userID))
	if err != nil {
		return nil, err
	}
	var rows []models.SensorEntityRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("httpclient: decode entities: %w", err)
	}
	return rows, nil
}

func (c *HTTPClient) LatestStates(ctx context.Context, userID string) ([]models.EntityStateRow, error) {
	body, err := c.get(ctx, "/api/v1/states/latest", userParams(userID))
	if err != nil {
		return nil, err
	}
	var rows []models.EntityStateRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("httpclient: decode states: %w", err)
	}
	return rows, nil
}

func (c *HTTPClient) RecentSyncLogs(ctx context.Context, limit int) ([]models.SyncLogRow, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	body, err := c.get(ctx, "/api/v1/sync/recent", params)
	if err != nil {
		return nil, err
	}
	var rows []models.SyncLogRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("httpclient: decode sync log: %w", err)
	}
	return rows, nil
}

func (c *HTTPClient) ListNotifications(ctx context.Context) ([]models.NotificationRow, error) {
	body, err := c.get(ctx, "/api/v1/notifications", nil)
	if err != nil {
		return nil, err
	}
	var rows []models.NotificationRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("httpclient: decode notifications: %w", err)
	}
	return rows, nil
}

func (c *HTTPClient) Counts(ctx context.Context) (int, int, int, error) {
	body, err := c.get(ctx, "/api/v1/status", nil)
	if err != nil {
		return 0, 0, 0, err
	}
	var status struct {
		Entities      int `json:"entities"`
		Devices       int `json:"devices"`
		Notifications int `json:"notifications"`
	}
	if err := json.Unmarshal(body, &status); err != nil {
		return 0, 0, 0, fmt.Errorf("httpclient: decode status: %w", err)
	}
	return status.Entities, status.Devices, status.Notifications, nil
}
