// Package models holds the wire and storage shapes shared across the service.
package models

// WebhookPayload is the inbound sync body. Token is compared against the
// configured shared secret; UserID partitions every entity, device, and sync
// marker the payload touches.
type WebhookPayload struct {
	Token  string                 `json:"token"`
	UserID string                 `json:"user_id"`
	Data   map[string][]Datapoint `json:"data"`
}

// User returns the payload's user scope, defaulting to "unknown" when the
// sender omitted it.
func (p *WebhookPayload) User() string {
	if p.UserID == "" {
		return "unknown"
	}
	return p.UserID
}

// Datapoint is one externally reported sample. Value stays loosely typed:
// numbers decode as float64, but booleans and strings occur on the wire (the
// connectivity probe sends true) and must survive decoding untouched.
// Timestamps are sender-local and opaque; nothing downstream orders by them.
type Datapoint struct {
	Timestamp string `json:"timestamp,omitempty"`
	Value     any    `json:"value"`
}
