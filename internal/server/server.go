// Package server is the HTTP surface: the webhook ingest route, the read API,
// the admin maintenance routes, and Prometheus metrics.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/healthbridge/internal/bridge"
	"github.com/meltforce/healthbridge/internal/models"
	"github.com/meltforce/healthbridge/internal/storage"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Store is what the HTTP layer needs from storage: result dispatch targets
// and the read API queries. *storage.DB satisfies it.
type Store interface {
	UpsertNotification(ctx context.Context, notificationID, title, message string) error
	InsertSyncLog(ctx context.Context, row models.SyncLogRow) error
	ListEntities(ctx context.Context, userID string) ([]models.SensorEntityRow, error)
	LatestStates(ctx context.Context, userID string) ([]models.EntityStateRow, error)
	RecentSyncLogs(ctx context.Context, limit int) ([]models.SyncLogRow, error)
	ListNotifications(ctx context.Context) ([]models.NotificationRow, error)
	Counts(ctx context.Context) (entities, devices, notifications int, err error)
}

// Compile-time check: the Postgres layer satisfies Store.
var _ Store = (*storage.DB)(nil)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     Store
	bridge *bridge.Bridge
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured. apiKey is the shared
// secret; the webhook checks it inside the payload body, the read and admin
// routes check it as X-API-Key.
func New(db Store, br *bridge.Bridge, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		bridge: br,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(Metrics)

	s.router.Get("/healthz", s.handleHealthz)
	s.router.Handle("/metrics", promhttp.Handler())

	// Ingest: authenticated by the token inside the payload, not X-API-Key.
	s.router.Post("/api/v1/webhook", s.handleWebhook)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Get("/entities", s.handleEntities)
		r.Get("/states/latest", s.handleLatestStates)
		r.Get("/sync/recent", s.handleRecentSyncs)
		r.Get("/notifications", s.handleNotifications)
		r.Get("/catalog", s.handleCatalog)
		r.Get("/status", s.handleStatus)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/entities/force-create", s.handleForceCreate)
			r.Post("/entities/fix-names", s.handleFixNames)
			r.Get("/options", s.handleGetOptions)
			r.Put("/options", s.handlePutOptions)
		})
	})
}
