// Package main wires the status backend together: startup validation, the
// telemetry poll loop, SQLite persistence, in-memory metrics, and the
// dashboard web UI.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"status_backend/activity"
	"status_backend/core"
	"status_backend/core/validation"
	"status_backend/db"
	"status_backend/healthapi"
	"status_backend/logging"
	"status_backend/metrics"
	"status_backend/shutdown"
	"status_backend/webui"
	"status_backend/webui/auth"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Service management commands (install/uninstall/start/stop) print
	// their result and exit; on non-Windows platforms this is a no-op.
	if HandleServiceCommand(os.Args) {
		return
	}

	if ranAsService, err := RunAsService(); ranAsService {
		if err != nil {
			fmt.Fprintf(os.Stderr, "service error: %v\n", err)
			os.Exit(core.ExitCodeError)
		}
		return
	}

	os.Exit(runApplication(context.Background()))
}

// runApplication runs the backend until the parent context is cancelled or
// a shutdown signal arrives. Returns the process exit code. The Windows
// service wrapper calls this with its own lifecycle context.
func runApplication(parent context.Context) int {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Use fmt here since logger isn't initialized yet
		fmt.Printf("Warning: .env file not found: %v\n", err)
	}

	isDevelopment := core.ParseBoolEnv("DEV_MODE", false)
	logFilePath := core.GetEnvOrDefault("LOG_FILE", core.GetDataFilePath("status_backend.log"))

	logger, err := logging.NewLogger(isDevelopment, logFilePath)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		return core.ExitCodeError
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("Status backend starting",
		zap.String("version", core.GetVersionInfo()),
		zap.Bool("dev_mode", isDevelopment),
	)

	if code := runStartupValidation(logger); code != core.ExitCodeSuccess {
		return code
	}

	// Load configuration (safe to call after validation passes)
	cfg, err := core.LoadConfig()
	if err != nil {
		logger.Error("Failed to load configuration", zap.Error(err))
		return core.ExitCodeError
	}

	logger.Info("Configuration loaded",
		zap.String("api_base", cfg.HealthAPIBase),
		zap.Duration("poll_interval", cfg.PollInterval),
		zap.Duration("request_timeout", cfg.RequestTimeout),
		zap.Int("port", cfg.Port),
		zap.String("db_path", cfg.DBPath),
		zap.Bool("auth_enabled", cfg.WebUIPassword != ""),
		zap.Bool("allow_self_signed_certs", cfg.AllowSelfSignedCerts),
	)

	manager := shutdown.NewManager(logger.Zap())

	// Database and schema migrations
	database, err := db.NewDatabase(cfg.DBPath)
	if err != nil {
		logger.Error("Failed to open database", zap.Error(err))
		return core.ExitCodeError
	}
	if err := database.Migrate(); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		database.Close()
		return core.ExitCodeError
	}
	manager.Register("database", 30, func(ctx context.Context) error {
		return database.Close()
	})

	// Status history inserts go through a buffered async writer so a slow
	// disk never stalls the poll loop.
	syncRepo := db.NewRepository(database, nil)
	asyncWriter := db.NewAsyncWriter(syncRepo.CreateAsyncWriteHandler())
	asyncWriter.Start()
	manager.Register("async-writer", 25, func(ctx context.Context) error {
		asyncWriter.Close()
		return nil
	})
	repo := db.NewRepository(database, asyncWriter)

	manager.Register("temp-files", 40, shutdown.CleanupTempFiles(logger.Zap(), core.GetDataDirectory()))

	retentionDays := core.ParseIntEnv("RETENTION_DAYS", 90)
	if retentionDays > 0 {
		database.StartCleanupScheduler(manager.Context(), retentionDays, 24*time.Hour)
		manager.Register("retention-sweep", 28, shutdown.FinalRetentionSweep(logger.Zap(), func(ctx context.Context) (int64, error) {
			result, sweepErr := database.CleanupWithContext(ctx, retentionDays)
			return result.TotalDeleted, sweepErr
		}))
	}

	// Activity classifier, optionally extended with user-defined rules
	classifier := activity.NewClassifier()
	if cfg.RulesFile != "" {
		rules, rulesErr := activity.LoadRulesFile(cfg.RulesFile)
		if rulesErr != nil {
			logger.Warn("Failed to load rules file, using built-in rules only",
				zap.String("path", cfg.RulesFile),
				zap.Error(rulesErr),
			)
		} else {
			classifier = activity.NewClassifierWithRules(rules)
			logger.Info("Loaded extra classifier rules",
				zap.String("path", cfg.RulesFile),
				zap.Int("count", len(rules)),
			)
		}
	}

	client, err := healthapi.NewClient(healthapi.ClientConfig{
		BaseURL:         cfg.HealthAPIBase,
		Timeout:         cfg.RequestTimeout,
		AllowSelfSigned: cfg.AllowSelfSignedCerts,
	})
	if err != nil {
		logger.Error("Failed to create telemetry client", zap.Error(err))
		return core.ExitCodeError
	}

	store := metrics.NewMetricsStore(metrics.StoreConfig{
		Version: core.GetVersion(),
	}, time.Now())

	monitor := NewStatusMonitor(MonitorConfig{
		Client:     client,
		Classifier: classifier,
		Predictor:  activity.NewPredictor(),
		Repository: repo,
		Metrics:    store,
		Logger:     logger,
		Interval:   cfg.PollInterval,
	})

	// Dashboard authentication is optional; without WEBUI_PWD the
	// dashboard and its API are open.
	var authProvider webui.AuthProvider
	if cfg.WebUIPassword != "" {
		authMw, authErr := auth.NewAuthMiddleware(cfg.WebUIPassword, logger.Zap())
		if authErr != nil {
			logger.Error("Failed to initialize authentication", zap.Error(authErr))
			return core.ExitCodeError
		}
		authProvider = authMw
	} else {
		logger.Warn("WEBUI_PWD not set, dashboard authentication disabled")
	}

	serverConfig := webui.DefaultServerConfig()
	serverConfig.Port = cfg.Port
	serverConfig.VersionInfo = webui.VersionInfo{
		Version:   core.GetVersion(),
		BuildDate: core.GetBuildTime(),
		GitCommit: core.GetGitCommit(),
	}

	server, err := webui.NewServer(serverConfig, monitor, repo, store, authProvider, logger.Zap())
	if err != nil {
		logger.Error("Failed to create dashboard server", zap.Error(err))
		return core.ExitCodeError
	}
	monitor.SetBroadcaster(server.GetBroadcaster())

	// Upstream health checks keep the dashboard's connection indicators
	// honest between poll cycles.
	healthMonitor := webui.NewUpstreamHealthMonitor(store, webui.HealthMonitorConfig{
		OnStatusChange: func(endpointID string, connected bool) {
			logger.Info("Upstream status changed",
				zap.String("endpoint", endpointID),
				zap.Bool("connected", connected),
			)
		},
	})
	healthMonitor.RegisterUpstream(client.ActivityProbe())
	healthMonitor.RegisterUpstream(client.HeartRateProbe())

	manager.Start()
	ctx := manager.Context()

	go func() {
		if serveErr := server.Start(ctx); serveErr != nil {
			logger.Error("Dashboard server failed", zap.Error(serveErr))
		}
	}()
	manager.Register("webui-server", 10, func(ctx context.Context) error {
		return server.Shutdown(ctx)
	})

	go healthMonitor.Start(ctx)
	go monitor.Start(ctx)
	manager.Register("status-monitor", 20, func(ctx context.Context) error {
		select {
		case <-monitor.Done():
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	logger.Info("Status backend running",
		zap.String("dashboard", fmt.Sprintf("http://localhost:%d/dashboard", cfg.Port)),
	)

	// Block until a shutdown signal arrives or the service wrapper
	// cancels the parent context.
	select {
	case <-ctx.Done():
	case <-parent.Done():
	}

	if err := manager.Shutdown(); err != nil {
		logger.Error("Shutdown finished with errors", zap.Error(err))
		return core.ExitCodeError
	}

	logger.Info("Goodbye!")
	return core.ExitCodeSuccess
}

// runStartupValidation checks configuration and upstream connectivity
// before any heavy initialization.
//
// Returns the appropriate exit code:
//   - ExitCodeSuccess (0) if all validations pass
//   - ExitCodeError (1) if any validation fails
func runStartupValidation(logger *logging.Logger) int {
	logger.Info("Starting startup validation...")

	allowSelfSigned := core.ParseBoolEnv("ALLOW_SELF_SIGNED_CERTS", false)

	suite := validation.NewValidationSuite().
		WithAllowSelfSignedCerts(allowSelfSigned).
		WithShowProgress(true)

	result := suite.Validate()

	if !result.Success {
		logger.Error("Configuration validation failed",
			zap.Int("passed", result.PassedSteps),
			zap.Int("failed", result.FailedSteps),
			zap.Duration("duration", result.Duration),
		)

		// Log individual failures for debugging
		for _, step := range result.Steps {
			if step.Status == validation.StepFailed {
				logger.Error("Validation step failed",
					zap.String("step", step.Name),
					zap.String("message", step.Message),
					zap.Error(step.Error),
				)
			}
		}

		return core.ExitCodeError
	}

	logger.Info("Configuration validation passed",
		zap.Int("checks_passed", result.PassedSteps),
		zap.Duration("duration", result.Duration),
	)

	return core.ExitCodeSuccess
}
