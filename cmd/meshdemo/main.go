// MeshStage Demo - a scripted, hands-free tour through the staged mesh
// reveal, rendered straight into an SDL window.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/strata3d/meshstage/internal/config"
	"github.com/strata3d/meshstage/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== MeshStage Demo ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	d, err := NewDemo(cfg)
	if err != nil {
		logger.Error("failed to create demo", zap.Error(err))
		os.Exit(1)
	}
	defer d.Close()

	if err := d.Run(); err != nil {
		logger.Error("demo error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("demo closed normally")
}
