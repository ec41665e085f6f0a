package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/meltforce/healthbridge/internal/bridge"
	"github.com/meltforce/healthbridge/internal/metric"
	"github.com/meltforce/healthbridge/internal/models"
)

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var payload models.WebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.log.Error("webhook JSON parse error", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	result, err := s.bridge.Sync(r.Context(), &payload)
	s.dispatch(r.Context(), result)
	if err != nil {
		s.log.Error("sync error", "user", result.UserID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if result.Status == bridge.StatusRejected {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "invalid token"})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// dispatch persists the notices and sync-log row a bridge run produced, and
// feeds the pipeline counters. Storage failures here are logged, never
// surfaced: the sync itself already happened.
func (s *Server) dispatch(ctx context.Context, result *bridge.Result) {
	if result == nil {
		return
	}
	for _, n := range result.Notices {
		if err := s.db.UpsertNotification(ctx, n.NotificationID, n.Title, n.Message); err != nil {
			s.log.Warn("notification write failed", "notification_id", n.NotificationID, "error", err)
		}
	}
	err := s.db.InsertSyncLog(ctx, models.SyncLogRow{
		UserID:          result.UserID,
		Status:          result.Status,
		MetricsReceived: result.MetricsReceived,
		Created:         result.Created,
		Updated:         result.Updated,
		Skipped:         result.Skipped,
	})
	if err != nil {
		s.log.Warn("sync log write failed", "user", result.UserID, "error", err)
	}

	syncsTotal.WithLabelValues(result.Status).Inc()
	metricsProcessed.WithLabelValues("created").Add(float64(result.Created))
	metricsProcessed.WithLabelValues("updated").Add(float64(result.Updated))
	metricsProcessed.WithLabelValues("skipped").Add(float64(result.Skipped))
}

func (s *Server) handleEntities(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.ListEntities(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleLatestStates(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.LatestStates(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleRecentSyncs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		limit = n
	}
	rows, err := s.db.RecentSyncLogs(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.ListNotifications(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// CatalogEntry describes one known metric for API consumers.
type CatalogEntry struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	metric.Attributes
}

// MetricCatalog lists every known metric with its display schema. The
// connectivity sentinel is excluded; it never becomes an entity.
func MetricCatalog() []CatalogEntry {
	var catalog []CatalogEntry
	for _, key := range metric.Known {
		if key == metric.TestConnection {
			continue
		}
		catalog = append(catalog, CatalogEntry{
			Key:        key,
			Name:       metric.BaseName(key),
			Attributes: metric.Schema(key),
		})
	}
	return catalog
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MetricCatalog())
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	entities, devices, notifications, err := s.db.Counts(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	massPref, volumePref := s.bridge.Preferences()
	writeJSON(w, http.StatusOK, map[string]any{
		"entities":           entities,
		"devices":            devices,
		"notifications":      notifications,
		"known_metrics":      len(MetricCatalog()),
		"webhook_path":       "/api/v1/webhook",
		"nutrient_mass_unit": massPref,
		"water_volume_unit":  volumePref,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
