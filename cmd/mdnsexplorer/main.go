package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/mdnsexplorer/mdnsexplorer/internal/api"
	"github.com/mdnsexplorer/mdnsexplorer/internal/capture"
	"github.com/mdnsexplorer/mdnsexplorer/internal/config"
	"github.com/mdnsexplorer/mdnsexplorer/internal/logging"
	"github.com/mdnsexplorer/mdnsexplorer/internal/metrics"
	"github.com/mdnsexplorer/mdnsexplorer/internal/store"
)

const (
	// DefaultDatabasePath is the default location for the captured-message store.
	DefaultDatabasePath = "mdnsexplorer.db"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// cliFlags holds parsed command-line flag values.
type cliFlags struct {
	configPath string
	dbPath     string
	iface      string
	apiHost    string
	apiPort    int
	workers    int
	jsonLogs   bool
	debug      bool
	sessionID  string
}

// parseFlags parses command-line flags and returns the values.
func parseFlags() cliFlags {
	var f cliFlags
	flag.StringVar(&f.configPath, "config", "", "Path to YAML config file")
	flag.StringVar(&f.dbPath, "db", "", "Override path to the captured-message store")
	flag.StringVar(&f.iface, "interface", "", "Override network interface to join the mDNS multicast group on")
	flag.StringVar(&f.apiHost, "api-host", "", "Override live-view API bind host")
	flag.IntVar(&f.apiPort, "api-port", 0, "Override live-view API bind port")
	flag.IntVar(&f.workers, "workers", -1, "Override number of decode workers (-1 means config/default)")
	flag.BoolVar(&f.jsonLogs, "json-logs", false, "Enable JSON structured logging")
	flag.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	flag.StringVar(&f.sessionID, "session-id", "", "Unique session ID for this capture run (auto-generated if empty)")
	flag.Parse()
	return f
}

// applyCLIOverrides applies command-line overrides to the config.
func applyCLIOverrides(cfg *config.Config, f cliFlags) {
	if f.dbPath != "" {
		cfg.Store.Path = f.dbPath
	}
	if f.iface != "" {
		cfg.Capture.Interface = f.iface
	}
	if f.apiHost != "" {
		cfg.API.Host = f.apiHost
	}
	if f.apiPort != 0 {
		cfg.API.Port = f.apiPort
	}
	if f.workers >= 0 {
		cfg.Capture.Workers = f.workers
	}
	if f.jsonLogs {
		cfg.Logging.Structured = true
		cfg.Logging.StructuredFormat = "json"
	}
	if f.debug {
		cfg.Logging.Level = "DEBUG"
	}
}

func run() error {
	flags := parseFlags()

	sessionID := flags.sessionID
	if sessionID == "" {
		sessionID = uuid.New().String()[:8]
	}

	cfg, err := config.Load(config.ResolveConfigPath(flags.configPath))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyCLIOverrides(cfg, flags)

	logger := logging.Configure(logging.Config{
		Level:            cfg.Logging.Level,
		Structured:       cfg.Logging.Structured,
		StructuredFormat: cfg.Logging.StructuredFormat,
		IncludePID:       cfg.Logging.IncludePID,
		ExtraFields:      cfg.Logging.ExtraFields,
	})
	logger.Info("mdnsexplorer starting",
		"session_id", sessionID,
		"db", cfg.Store.Path,
		"interface", cfg.Capture.Interface,
		"group", cfg.Capture.Group,
		"port", cfg.Capture.Port,
		"workers", cfg.Capture.Workers,
	)

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open message store: %w", err)
	}
	defer st.Close()

	m, err := metrics.New(cfg.Metrics.OTLPEndpoint, cfg.Metrics.PrometheusEndpoint)
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = m.Shutdown(shutdownCtx)
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runner := capture.NewRunner(logger)

	var apiSrv *api.Server
	if cfg.API.Enabled {
		apiSrv = api.New(cfg, st, runner.Stats(), logger)
		logger.Info("live-view API starting", "addr", apiSrv.Addr())
		go func() {
			serveErr := apiSrv.ListenAndServe()
			if serveErr == nil || errors.Is(serveErr, http.ErrServerClosed) {
				return
			}
			logger.Error("API server error", "err", serveErr)
			cancel()
		}()
	}

	err = runner.Run(ctx, cfg, st, m)

	if apiSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = apiSrv.Shutdown(shutdownCtx)
		shutdownCancel()
		logger.Info("live-view API stopped")
	}

	if err != nil {
		return fmt.Errorf("capture runner exited with error: %w", err)
	}
	return nil
}
