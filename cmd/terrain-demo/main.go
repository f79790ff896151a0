// Package main is the entry point for the chunked terrain demo.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/chunkscape/internal/config"
	"github.com/Faultbox/chunkscape/internal/game"
	"github.com/Faultbox/chunkscape/internal/logger"
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

	if config.WriteConfigRequested() {
		if err := cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Config written to", config.UserConfigPath())
		return
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		logger.Error("terrain demo failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("terrain demo closed normally")
	logger.Sync()
}

func run(cfg *config.Config) error {
	logger.Info("=== Chunkscape ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, err := game.New(cfg)
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}
	defer g.Close()

	return g.Run()
}
