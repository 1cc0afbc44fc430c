package handlers_test

import (
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mdnsexplorer/mdnsexplorer/internal/api/handlers"
	"github.com/mdnsexplorer/mdnsexplorer/internal/capture"
	"github.com/mdnsexplorer/mdnsexplorer/internal/config"
	"github.com/mdnsexplorer/mdnsexplorer/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestRouter(h *handlers.Handler) *gin.Engine {
	r := gin.New()

	apiGroup := r.Group("/api/v1")
	apiGroup.GET("/health", h.Health)
	apiGroup.GET("/stats", h.Stats)
	apiGroup.GET("/messages", h.ListMessages)
	apiGroup.GET("/messages/:id", h.GetMessage)

	return r
}

func createTestHandler(t *testing.T) (*handlers.Handler, *store.Store) {
	t.Helper()

	cfg := &config.Config{
		API: config.APIConfig{Host: "127.0.0.1", Port: 8080},
	}

	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	h := handlers.New(cfg, nil, st, capture.NewStats())
	return h, st
}
