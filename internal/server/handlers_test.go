package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/meltforce/healthbridge/internal/bridge"
	"github.com/meltforce/healthbridge/internal/metric"
	"github.com/meltforce/healthbridge/internal/models"
	"github.com/meltforce/healthbridge/internal/storage"
)

// fakeStore satisfies both bridge.Store and server.Store in memory, so
// handler tests exercise the full webhook path without Postgres.
type fakeStore struct {
	mu            sync.Mutex
	entities      map[string]models.SensorEntityRow
	states        map[string]models.EntityStateRow
	notifications map[string]models.NotificationRow
	syncLogs      []models.SyncLogRow
	prefs         *models.UnitPreferencesRow
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		entities:      make(map[string]models.SensorEntityRow),
		states:        make(map[string]models.EntityStateRow),
		notifications: make(map[string]models.NotificationRow),
	}
}

func (f *fakeStore) GetOrCreateDevice(_ context.Context, userID string) (models.DeviceRow, error) {
	identifier := metric.DeviceIdentifier(userID)
	return models.DeviceRow{ID: storage.DeviceID(identifier), Identifier: identifier, UserID: userID}, nil
}

func (f *fakeStore) UpsertEntity(_ context.Context, row models.SensorEntityRow) (models.SensorEntityRow, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.entities[row.UniqueID]; ok {
		return existing, false, nil
	}
	f.entities[row.UniqueID] = row
	return row, true, nil
}

func (f *fakeStore) UpdateEntityName(_ context.Context, uniqueID, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entities[uniqueID]
	if !ok {
		return fmt.Errorf("no entity %s", uniqueID)
	}
	e.Name = name
	f.entities[uniqueID] = e
	return nil
}

func (f *fakeStore) ListUnnamedEntities(_ context.Context) ([]models.SensorEntityRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.SensorEntityRow
	for _, e := range f.entities {
		if e.Name == "" {
			result = append(result, e)
		}
	}
	return result, nil
}

func (f *fakeStore) UpsertEntityState(_ context.Context, row models.EntityStateRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states[row.EntityID] = row
	return nil
}

func (f *fakeStore) GetUnitPreferences(_ context.Context) (*models.UnitPreferencesRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prefs, nil
}

func (f *fakeStore) SaveUnitPreferences(_ context.Context, nutrientMass, waterVolume string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prefs = &models.UnitPreferencesRow{NutrientMass: nutrientMass, WaterVolume: waterVolume}
	return nil
}

func (f *fakeStore) UpsertNotification(_ context.Context, notificationID, title, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications[notificationID] = models.NotificationRow{
		NotificationID: notificationID, Title: title, Message: message,
	}
	return nil
}

func (f *fakeStore) InsertSyncLog(_ context.Context, row models.SyncLogRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.syncLogs = append(f.syncLogs, row)
	return nil
}

func (f *fakeStore) ListEntities(_ context.Context, userID string) ([]models.SensorEntityRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.SensorEntityRow
	for _, e := range f.entities {
		if userID == "" || e.UserID == userID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (f *fakeStore) LatestStates(_ context.Context, userID string) ([]models.EntityStateRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.EntityStateRow
	for _, s := range f.states {
		result = append(result, s)
	}
	return result, nil
}

func (f *fakeStore) RecentSyncLogs(_ context.Context, limit int) ([]models.SyncLogRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.SyncLogRow(nil), f.syncLogs...), nil
}

func (f *fakeStore) ListNotifications(_ context.Context) ([]models.NotificationRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.NotificationRow
	for _, n := range f.notifications {
		result = append(result, n)
	}
	return result, nil
}

func (f *fakeStore) Counts(_ context.Context) (int, int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entities), 1, len(f.notifications), nil
}

func testServer() (*Server, *fakeStore) {
	store := newFakeStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	br := bridge.New(store, "secret", "g", "mL", log)
	return New(store, br, "secret", log), store
}

func doJSON(t *testing.T, s *Server, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

// TestWebhookInvalidJSON verifies an unparseable body aborts with 400 and no
// state change.
func TestWebhookInvalidJSON(t *testing.T) {
	s, store := testServer()
	rec := doJSON(t, s, http.MethodPost, "/api/v1/webhook", "{not json", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if len(store.states) != 0 || len(store.syncLogs) != 0 {
		t.Error("malformed request changed state")
	}
}

// TestWebhookTokenMismatch verifies a wrong token rejects the batch with 403
// while the last-sync marker is still written.
func TestWebhookTokenMismatch(t *testing.T) {
	s, store := testServer()
	body := `{"token":"wrong","user_id":"u1","data":{"steps":[{"value":100}]}}`
	rec := doJSON(t, s, http.MethodPost, "/api/v1/webhook", body, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if _, ok := store.states[metric.EntityID(metric.Steps, "u1")]; ok {
		t.Error("rejected payload wrote metric state")
	}
	if _, ok := store.states[metric.EntityID(metric.LastSyncTime, "u1")]; !ok {
		t.Error("marker not written on rejected payload")
	}
	if len(store.syncLogs) != 1 || store.syncLogs[0].Status != bridge.StatusRejected {
		t.Errorf("sync log = %+v, want one rejected row", store.syncLogs)
	}
}

// TestWebhookSync verifies a valid payload flows through to entity and state
// creation and is recorded in the sync log.
func TestWebhookSync(t *testing.T) {
	s, store := testServer()
	body := `{"token":"secret","user_id":"u1","data":{"steps":[{"timestamp":"2026-08-24T08:00:00","value":4200}]}}`
	rec := doJSON(t, s, http.MethodPost, "/api/v1/webhook", body, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var result bridge.Result
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Created != 1 {
		t.Errorf("created = %d, want 1", result.Created)
	}

	state := store.states[metric.EntityID(metric.Steps, "u1")]
	if state.State != "4200" {
		t.Errorf("state = %q, want 4200", state.State)
	}
	if len(store.syncLogs) != 1 || store.syncLogs[0].Status != bridge.StatusOK {
		t.Errorf("sync log = %+v, want one ok row", store.syncLogs)
	}
}

// TestWebhookTestConnection verifies the probe acknowledgment is persisted as
// a notification and no entities are touched.
func TestWebhookTestConnection(t *testing.T) {
	s, store := testServer()
	body := `{"token":"secret","user_id":"test_user","data":{"test_connection":[{"value":true}]}}`
	rec := doJSON(t, s, http.MethodPost, "/api/v1/webhook", body, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	n, ok := store.notifications["health_bridge_test_success"]
	if !ok {
		t.Fatal("test acknowledgment notification missing")
	}
	if n.Message != "Health Bridge connection successful!" {
		t.Errorf("message = %q", n.Message)
	}
	if _, ok := store.entities[metric.UniqueID(metric.TestConnection, "test_user")]; ok {
		t.Error("test_connection materialized as an entity")
	}
}

// TestAPIKeyAuth verifies the read API rejects missing and wrong keys.
func TestAPIKeyAuth(t *testing.T) {
	s, _ := testServer()

	rec := doJSON(t, s, http.MethodGet, "/api/v1/entities", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no key: status = %d, want 401", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/entities", "", map[string]string{"X-API-Key": "nope"})
	if rec.Code != http.StatusForbidden {
		t.Errorf("wrong key: status = %d, want 403", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/entities", "", map[string]string{"X-API-Key": "secret"})
	if rec.Code != http.StatusOK {
		t.Errorf("valid key: status = %d, want 200", rec.Code)
	}
}

// TestForceCreateEmptyBody verifies the admin route provisions the full
// catalog for the default user when no body is sent.
func TestForceCreateEmptyBody(t *testing.T) {
	s, store := testServer()
	rec := doJSON(t, s, http.MethodPost, "/api/v1/admin/entities/force-create", "",
		map[string]string{"X-API-Key": "secret"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var result bridge.Result
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := len(metric.Known) - 1
	if result.Created != want {
		t.Errorf("created = %d, want %d", result.Created, want)
	}
	if _, ok := store.notifications["health_bridge_force_create_complete"]; !ok {
		t.Error("completion notification missing")
	}
}

// TestOptionsRoundTrip verifies PUT validates and persists preferences and
// GET reflects them.
func TestOptionsRoundTrip(t *testing.T) {
	s, store := testServer()
	auth := map[string]string{"X-API-Key": "secret"}

	rec := doJSON(t, s, http.MethodPut, "/api/v1/admin/options",
		`{"nutrient_mass_unit":"kg","water_volume_unit":"mL"}`, auth)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid mass unit: status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPut, "/api/v1/admin/options",
		`{"nutrient_mass_unit":"oz","water_volume_unit":"fl_oz"}`, auth)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if store.prefs == nil || store.prefs.WaterVolume != "fl oz" {
		t.Errorf("persisted prefs = %+v, want fl oz canonicalized", store.prefs)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/admin/options", "", auth)
	var body optionsBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.NutrientMass != "oz" || body.WaterVolume != "fl oz" {
		t.Errorf("options = %+v, want oz / fl oz", body)
	}
}

// TestCatalog verifies the catalog excludes the connectivity sentinel and
// carries display schema.
func TestCatalog(t *testing.T) {
	s, _ := testServer()
	rec := doJSON(t, s, http.MethodGet, "/api/v1/catalog", "", map[string]string{"X-API-Key": "secret"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var catalog []CatalogEntry
	if err := json.NewDecoder(rec.Body).Decode(&catalog); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, e := range catalog {
		if e.Key == metric.TestConnection {
			t.Error("catalog contains test_connection")
		}
		if e.Key == metric.BodyMass && e.NativeUnit != "kg" {
			t.Errorf("body_mass unit = %q, want kg", e.NativeUnit)
		}
	}
}
