package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Terrain defaults
	if cfg.Terrain.ChunkSize != 200 {
		t.Errorf("expected chunk size 200, got %d", cfg.Terrain.ChunkSize)
	}
	if cfg.Terrain.MaxHeight != 30 {
		t.Errorf("expected max height 30, got %f", cfg.Terrain.MaxHeight)
	}
	if cfg.Terrain.ViewDistance != 2 {
		t.Errorf("expected view distance 2, got %d", cfg.Terrain.ViewDistance)
	}

	// Noise defaults
	if cfg.Noise.Octaves != 6 {
		t.Errorf("expected 6 octaves, got %d", cfg.Noise.Octaves)
	}
	if cfg.Noise.Persistence != 0.5 {
		t.Errorf("expected persistence 0.5, got %f", cfg.Noise.Persistence)
	}
	if cfg.Noise.Lacunarity != 2.0 {
		t.Errorf("expected lacunarity 2.0, got %f", cfg.Noise.Lacunarity)
	}

	if cfg.Shadow.Width != 2048 || cfg.Shadow.Height != 1536 {
		t.Errorf("expected shadow target 2048x1536, got %dx%d", cfg.Shadow.Width, cfg.Shadow.Height)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestWorkingSet(t *testing.T) {
	tests := []struct {
		viewDistance int
		want         int
	}{
		{0, 1},
		{1, 9},
		{2, 25},
		{4, 81},
	}

	for _, tt := range tests {
		cfg := Default()
		cfg.Terrain.ViewDistance = tt.viewDistance
		if got := cfg.WorkingSet(); got != tt.want {
			t.Errorf("view distance %d: expected %d chunks, got %d", tt.viewDistance, tt.want, got)
		}
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Terrain.ChunkSize = 0
	cfg.Terrain.ViewDistance = -1
	cfg.Noise.Octaves = 0
	cfg.Streaming.Workers = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}

	msg := err.Error()
	for _, want := range []string{"chunk_size", "view_distance", "octaves", "workers"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in error, got: %s", want, msg)
		}
	}
}

func TestLoadFromFileYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true

terrain:
  chunk_size: 500
  max_height: 45
  view_distance: 3

noise:
  seed: 1337
  octaves: 4

streaming:
  workers: 8

logging:
  level: "debug"
  log_file: "terrain.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Terrain.ChunkSize != 500 {
		t.Errorf("expected chunk size 500, got %d", cfg.Terrain.ChunkSize)
	}
	if cfg.Terrain.ViewDistance != 3 {
		t.Errorf("expected view distance 3, got %d", cfg.Terrain.ViewDistance)
	}
	if cfg.Noise.Seed != 1337 {
		t.Errorf("expected seed 1337, got %d", cfg.Noise.Seed)
	}
	if cfg.Streaming.Workers != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.Streaming.Workers)
	}
	if cfg.Logging.LogFile != "terrain.log" {
		t.Errorf("expected log file terrain.log, got %s", cfg.Logging.LogFile)
	}

	// Values absent from the file keep their defaults
	if cfg.Noise.Persistence != 0.5 {
		t.Errorf("expected default persistence 0.5, got %f", cfg.Noise.Persistence)
	}
	if cfg.Window.Title != "Chunkscape" {
		t.Errorf("expected default title, got %s", cfg.Window.Title)
	}
}

func TestLoadFromFileTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")

	tomlContent := `
[terrain]
chunk_size = 250
view_distance = 1

[noise]
lacunarity = 2.5

[lighting]
intensity = [0.9, 0.8, 0.7]
`

	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Terrain.ChunkSize != 250 {
		t.Errorf("expected chunk size 250, got %d", cfg.Terrain.ChunkSize)
	}
	if cfg.Terrain.ViewDistance != 1 {
		t.Errorf("expected view distance 1, got %d", cfg.Terrain.ViewDistance)
	}
	if cfg.Noise.Lacunarity != 2.5 {
		t.Errorf("expected lacunarity 2.5, got %f", cfg.Noise.Lacunarity)
	}
	if cfg.Lighting.Intensity != [3]float32{0.9, 0.8, 0.7} {
		t.Errorf("unexpected intensity %v", cfg.Lighting.Intensity)
	}
	if cfg.Terrain.MaxHeight != 30 {
		t.Errorf("expected default max height 30, got %f", cfg.Terrain.MaxHeight)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	if err := os.WriteFile(configPath, []byte("terrain: [not, a, map"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"out.yaml", "out.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)

			cfg := Default()
			cfg.Terrain.ViewDistance = 5
			cfg.Noise.Seed = 42
			if err := cfg.SaveTo(path); err != nil {
				t.Fatalf("failed to save config: %v", err)
			}

			loaded := Default()
			if err := loadFromFile(loaded, path); err != nil {
				t.Fatalf("failed to reload config: %v", err)
			}
			if loaded.Terrain.ViewDistance != 5 || loaded.Noise.Seed != 42 {
				t.Errorf("round trip lost values: view distance %d, seed %d",
					loaded.Terrain.ViewDistance, loaded.Noise.Seed)
			}
		})
	}
}

func TestSaveIsFoundByLoad(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on linux")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Terrain.ViewDistance = 6
	cfg.Noise.Seed = 99
	if err := cfg.Save(); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	if got := findConfigFile(); got != UserConfigPath() {
		t.Fatalf("findConfigFile() = %q, want %q", got, UserConfigPath())
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if loaded.Terrain.ViewDistance != 6 || loaded.Noise.Seed != 99 {
		t.Errorf("saved values not loaded: view distance %d, seed %d",
			loaded.Terrain.ViewDistance, loaded.Noise.Seed)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !strings.Contains(strings.ToLower(dir), "chunkscape") {
		t.Errorf("ConfigDir should contain 'chunkscape', got %s", dir)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		set    func()
		reset  func()
		verify func(*testing.T, *Config)
	}{
		{
			name:  "debug flag",
			set:   func() { *flagDebug = true },
			reset: func() { *flagDebug = false },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected debug level, got %s", cfg.Logging.Level)
				}
				if cfg.Debug.StatsInterval != 1 {
					t.Errorf("expected stats every second, got %d", cfg.Debug.StatsInterval)
				}
			},
		},
		{
			name:  "view distance zero is honoured",
			set:   func() { *flagViewDistance = 0 },
			reset: func() { *flagViewDistance = -1 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Terrain.ViewDistance != 0 {
					t.Errorf("expected view distance 0, got %d", cfg.Terrain.ViewDistance)
				}
			},
		},
		{
			name: "terrain flags",
			set: func() {
				*flagChunkSize = 500
				*flagMaxHeight = 80
				*flagSeed = 7
			},
			reset: func() {
				*flagChunkSize = 0
				*flagMaxHeight = 0
				*flagSeed = 0
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Terrain.ChunkSize != 500 {
					t.Errorf("expected chunk size 500, got %d", cfg.Terrain.ChunkSize)
				}
				if cfg.Terrain.MaxHeight != 80 {
					t.Errorf("expected max height 80, got %f", cfg.Terrain.MaxHeight)
				}
				if cfg.Noise.Seed != 7 {
					t.Errorf("expected seed 7, got %d", cfg.Noise.Seed)
				}
			},
		},
		{
			name: "window flags",
			set: func() {
				*flagFullscreen = true
				*flagWidth = 2560
				*flagHeight = 1440
			},
			reset: func() {
				*flagFullscreen = false
				*flagWidth = 0
				*flagHeight = 0
			},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen")
				}
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.set()
			defer tt.reset()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("terrain:\n  chunk_size: 300\n  view_distance: 4\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagViewDistance = 1
	defer func() {
		*flagConfig = ""
		*flagViewDistance = -1
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// From file
	if cfg.Terrain.ChunkSize != 300 {
		t.Errorf("expected chunk size 300 from file, got %d", cfg.Terrain.ChunkSize)
	}
	// Flag wins over file
	if cfg.Terrain.ViewDistance != 1 {
		t.Errorf("expected view distance 1 from flag, got %d", cfg.Terrain.ViewDistance)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("noise:\n  octaves: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	_, err := Load()
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}
