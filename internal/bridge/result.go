package bridge

// Sync outcome statuses, recorded in the sync log and returned to callers.
const (
	StatusOK       = "ok"
	StatusRejected = "rejected"
	StatusTestAck  = "test_ack"
	StatusEmpty    = "empty"
)

// Result describes one sync or force-create run. The HTTP layer derives the
// response code, the sync-log row, and any persistent notifications from it.
type Result struct {
	UserID          string   `json:"user_id"`
	Status          string   `json:"status"`
	MetricsReceived int      `json:"metrics_received"`
	Created         int      `json:"created"`
	Updated         int      `json:"updated"`
	Skipped         int      `json:"skipped"`
	CreatedEntities []string `json:"created_entities,omitempty"`
	MarkerUpdated   bool     `json:"marker_updated"`

	// Notices are persistent-notification requests for the caller to
	// dispatch; they are not part of the wire response.
	Notices []Notice `json:"-"`
}

// Notice is a persistent notification the caller should upsert.
type Notice struct {
	NotificationID string
	Title          string
	Message        string
}

// FixNamesResult reports a fix-names maintenance run.
type FixNamesResult struct {
	Scanned  int      `json:"scanned"`
	Repaired int      `json:"repaired"`
	Entities []string `json:"entities,omitempty"`
}
