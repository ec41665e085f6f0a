package bridge

import (
	"context"
	"testing"

	"github.com/meltforce/healthbridge/internal/metric"
	"github.com/meltforce/healthbridge/internal/models"
)

// TestForceCreateDefaults verifies that an empty metrics map provisions every
// known metric except the connectivity sentinel, at value 0.
func TestForceCreateDefaults(t *testing.T) {
	store := newFakeStore()
	b := testBridge(store)

	res, err := b.ForceCreate(context.Background(), "", nil)
	if err != nil {
		t.Fatalf("ForceCreate: %v", err)
	}
	if res.UserID != "default_user" {
		t.Errorf("user = %q, want default_user", res.UserID)
	}

	wantCount := len(metric.Known) - 1 // minus test_connection
	if res.Created != wantCount {
		t.Errorf("created = %d, want %d", res.Created, wantCount)
	}
	if _, ok := store.entities[metric.UniqueID(metric.TestConnection, "default_user")]; ok {
		t.Error("test_connection materialized by force-create")
	}

	steps := store.states[metric.EntityID(metric.Steps, "default_user")]
	if steps.State != "0" {
		t.Errorf("steps state = %q, want 0", steps.State)
	}

	if len(res.Notices) != 2 {
		t.Fatalf("notices = %d, want start + completion", len(res.Notices))
	}
	if res.Notices[0].NotificationID != "health_bridge_force_create" ||
		res.Notices[1].NotificationID != "health_bridge_force_create_complete" {
		t.Errorf("notice IDs = %q, %q", res.Notices[0].NotificationID, res.Notices[1].NotificationID)
	}
}

// TestForceCreateExplicitMetrics verifies the first datapoint's value is used
// verbatim, without unit normalization.
func TestForceCreateExplicitMetrics(t *testing.T) {
	store := newFakeStore()
	b := testBridge(store)

	metrics := map[string][]models.Datapoint{
		"body_mass": {{Value: 72000.0}, {Value: 1.0}},
	}
	res, err := b.ForceCreate(context.Background(), "u1", metrics)
	if err != nil {
		t.Fatalf("ForceCreate: %v", err)
	}
	if res.Created != 1 {
		t.Errorf("created = %d, want 1", res.Created)
	}

	mass := store.states[metric.EntityID(metric.BodyMass, "u1")]
	if mass.State != "72000" {
		t.Errorf("state = %q, want 72000 (no normalization on force-create)", mass.State)
	}
	if mass.Attributes["unit_of_measurement"] != "kg" {
		t.Errorf("unit = %v, want native kg", mass.Attributes["unit_of_measurement"])
	}
}

// TestForceCreateIdempotent verifies a second run updates instead of creating
// duplicates.
func TestForceCreateIdempotent(t *testing.T) {
	store := newFakeStore()
	b := testBridge(store)
	ctx := context.Background()

	metrics := map[string][]models.Datapoint{"steps": {{Value: 1.0}}}
	if _, err := b.ForceCreate(ctx, "u1", metrics); err != nil {
		t.Fatalf("first run: %v", err)
	}
	res, err := b.ForceCreate(ctx, "u1", metrics)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if res.Created != 0 || res.Updated != 1 {
		t.Errorf("second run created=%d updated=%d, want 0/1", res.Created, res.Updated)
	}
}

// TestFixEntityNames verifies unnamed entities are repaired to the title-case
// display name, with the user taken from the unique ID's trailing segment.
func TestFixEntityNames(t *testing.T) {
	store := newFakeStore()
	b := testBridge(store)
	ctx := context.Background()

	seed := []models.SensorEntityRow{
		{UniqueID: "health_bridge_resting_heart_rate_alice", EntityID: "sensor.resting_heart_rate_alice", UserID: "alice", MetricKey: "resting_heart_rate"},
		{UniqueID: "health_bridge_steps_bob", EntityID: "sensor.steps_bob", UserID: "bob", MetricKey: "steps", Name: "Steps (bob)"},
		{UniqueID: "unrelated_row", EntityID: "sensor.unrelated", UserID: "x", MetricKey: "y"},
	}
	for _, e := range seed {
		if _, _, err := store.UpsertEntity(ctx, e); err != nil {
			t.Fatalf("seeding: %v", err)
		}
	}

	res, err := b.FixEntityNames(ctx)
	if err != nil {
		t.Fatalf("FixEntityNames: %v", err)
	}
	if res.Scanned != 2 {
		t.Errorf("scanned = %d, want 2 (only unnamed rows)", res.Scanned)
	}
	if res.Repaired != 1 {
		t.Errorf("repaired = %d, want 1", res.Repaired)
	}

	got := store.entities["health_bridge_resting_heart_rate_alice"].Name
	if got != "Resting Heart Rate (alice)" {
		t.Errorf("repaired name = %q, want %q", got, "Resting Heart Rate (alice)")
	}
	if store.entities["health_bridge_steps_bob"].Name != "Steps (bob)" {
		t.Error("already-named entity was touched")
	}
}
