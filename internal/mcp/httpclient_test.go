package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meltforce/healthbridge/internal/models"
)

// TestHTTPClientListEntities verifies the query shape and the API key header.
func TestHTTPClientListEntities(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/entities" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("X-API-Key"); got != "secret" {
			t.Errorf("X-API-Key = %q, want secret", got)
		}
		if got := r.URL.Query().Get("user_id"); got != "u1" {
			t.Errorf("user_id = %q, want u1", got)
		}
		json.NewEncoder(w).Encode([]models.SensorEntityRow{
			{UniqueID: "health_bridge_steps_u1", EntityID: "sensor.steps_u1", UserID: "u1", MetricKey: "steps"},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "secret")
	rows, err := c.ListEntities(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListEntities: %v", err)
	}
	if len(rows) != 1 || rows[0].MetricKey != "steps" {
		t.Errorf("rows = %+v", rows)
	}
}

// TestHTTPClientCounts verifies the status response maps onto the Counts
// signature.
func TestHTTPClientCounts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/status" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"entities": 12, "devices": 2, "notifications": 3, "known_metrics": 41,
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "secret")
	entities, devices, notifications, err := c.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if entities != 12 || devices != 2 || notifications != 3 {
		t.Errorf("counts = %d/%d/%d, want 12/2/3", entities, devices, notifications)
	}
}

// TestHTTPClientErrorStatus verifies non-200 responses surface as errors.
func TestHTTPClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid API key"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "wrong")
	if _, err := c.ListNotifications(context.Background()); err == nil {
		t.Fatal("expected error for 403 response")
	}
}
