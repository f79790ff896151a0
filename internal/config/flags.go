package config

import "flag"

var (
	flagConfig       = flag.String("config", "", "Path to config file (.yaml or .toml)")
	flagDebug        = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed     = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen   = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth        = flag.Int("width", 0, "Window width")
	flagHeight       = flag.Int("height", 0, "Window height")
	flagViewDistance = flag.Int("view-distance", -1, "Chunks kept around the camera per axis")
	flagChunkSize    = flag.Int("chunk-size", 0, "World units per chunk edge")
	flagMaxHeight    = flag.Float64("max-height", 0, "Peak terrain height")
	flagSeed         = flag.Int64("seed", 0, "Noise seed (0 keeps the configured seed)")
	flagWriteConfig  = flag.Bool("write-config", false, "Write the effective config to the user config directory and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfigRequested reports whether --write-config was given.
func WriteConfigRequested() bool {
	return *flagWriteConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Debug.StatsInterval = 1
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagViewDistance >= 0 {
		cfg.Terrain.ViewDistance = *flagViewDistance
	}
	if *flagChunkSize > 0 {
		cfg.Terrain.ChunkSize = *flagChunkSize
	}
	if *flagMaxHeight > 0 {
		cfg.Terrain.MaxHeight = float32(*flagMaxHeight)
	}
	if *flagSeed != 0 {
		cfg.Noise.Seed = *flagSeed
	}
}
