package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/turtacn/securepay/internal/config"
	"github.com/turtacn/securepay/internal/infrastructure/monitoring"
	"github.com/turtacn/securepay/pkg/logger"
)

// configPathEnv names an explicit config file; unset searches the default locations.
const configPathEnv = config.EnvPrefix + "_CONFIG_FILE"

func main() {
	// Logger for startup
	startupLogger, _, err := monitoring.NewZapLogger(&config.LogConfig{Level: "info", OutputPath: "stdout"})
	if err != nil {
		log.Fatalf("Failed to create startup logger: %v", err)
	}

	// Load config
	loader := config.NewLoader(os.Getenv(configPathEnv), startupLogger)
	cfg, err := loader.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger, closer, err := monitoring.NewZapLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer closer.Close()
	logger.SetGlobalLogger(appLogger)

	// Re-apply the log level whenever the config file changes
	loader.Watch(func(updated *config.Config) {
		if monitoring.ApplyLogLevel(appLogger, updated.Log.Level) {
			appLogger.Info(context.Background(), "Log level changed", logger.String("level", updated.Log.Level))
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := newServer(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize server", err)
	}

	if err := srv.Run(ctx); err != nil {
		appLogger.Error(context.Background(), "Server exited with error", err)
		os.Exit(1)
	}
	appLogger.Info(context.Background(), "Server stopped")
}
