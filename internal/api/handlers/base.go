// Package handlers implements the REST API endpoint handlers for mdnsexplorer.
//
// @title mdnsexplorer Live View API
// @version 1.0
// @description REST API for browsing mDNS traffic captured off the local network.
//
// @contact.name mdnsexplorer
// @contact.url https://github.com/mdnsexplorer/mdnsexplorer
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:8080
// @BasePath /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package handlers

import (
	"log/slog"
	"time"

	"github.com/mdnsexplorer/mdnsexplorer/internal/capture"
	"github.com/mdnsexplorer/mdnsexplorer/internal/config"
	"github.com/mdnsexplorer/mdnsexplorer/internal/store"
)

// Handler contains dependencies for API handlers.
type Handler struct {
	cfg       *config.Config
	logger    *slog.Logger
	startTime time.Time

	store *store.Store
	stats *capture.Stats
}

// New creates a new Handler with the given configuration and dependencies.
func New(cfg *config.Config, logger *slog.Logger, st *store.Store, stats *capture.Stats) *Handler {
	return &Handler{
		cfg:       cfg,
		logger:    logger,
		startTime: time.Now(),
		store:     st,
		stats:     stats,
	}
}
