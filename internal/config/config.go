// Package config handles demo configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Config holds all demo settings.
type Config struct {
	Window    WindowConfig    `yaml:"window" toml:"window"`
	Camera    CameraConfig    `yaml:"camera" toml:"camera"`
	Terrain   TerrainConfig   `yaml:"terrain" toml:"terrain"`
	Noise     NoiseConfig     `yaml:"noise" toml:"noise"`
	Streaming StreamingConfig `yaml:"streaming" toml:"streaming"`
	Lighting  LightingConfig  `yaml:"lighting" toml:"lighting"`
	Shadow    ShadowConfig    `yaml:"shadow" toml:"shadow"`
	Debug     DebugConfig     `yaml:"debug" toml:"debug"`
	Logging   LoggingConfig   `yaml:"logging" toml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title" toml:"title"`
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Fullscreen bool   `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool   `yaml:"vsync" toml:"vsync"`
}

// CameraConfig holds the free camera settings.
type CameraConfig struct {
	FOV              float32    `yaml:"fov" toml:"fov"` // Vertical field of view in degrees
	Near             float32    `yaml:"near" toml:"near"`
	Far              float32    `yaml:"far" toml:"far"`
	MoveSpeed        float32    `yaml:"move_speed" toml:"move_speed"` // World units per second
	BoostMultiplier  float32    `yaml:"boost_multiplier" toml:"boost_multiplier"`
	MouseSensitivity float32    `yaml:"mouse_sensitivity" toml:"mouse_sensitivity"`
	Start            [3]float32 `yaml:"start" toml:"start"`
}

// TerrainConfig holds chunk grid settings.
type TerrainConfig struct {
	ChunkSize    int     `yaml:"chunk_size" toml:"chunk_size"`       // World units (and samples) per chunk edge
	MaxHeight    float32 `yaml:"max_height" toml:"max_height"`       // Peak height of the height field
	ViewDistance int     `yaml:"view_distance" toml:"view_distance"` // Chunks per axis from the center
	TexturePath  string  `yaml:"texture_path" toml:"texture_path"`   // Empty uses the procedural grass texture
}

// NoiseConfig holds fractal noise parameters.
type NoiseConfig struct {
	Seed        int64   `yaml:"seed" toml:"seed"`
	Frequency   float32 `yaml:"frequency" toml:"frequency"`
	Octaves     int     `yaml:"octaves" toml:"octaves"`
	Persistence float32 `yaml:"persistence" toml:"persistence"`
	Lacunarity  float32 `yaml:"lacunarity" toml:"lacunarity"`
}

// StreamingConfig holds background generation settings.
type StreamingConfig struct {
	Workers int `yaml:"workers" toml:"workers"` // Max chunk generations running at once
}

// LightingConfig holds the directional light.
type LightingConfig struct {
	SunLongitude float32    `yaml:"sun_longitude" toml:"sun_longitude"`
	SunLatitude  float32    `yaml:"sun_latitude" toml:"sun_latitude"`
	Intensity    [3]float32 `yaml:"intensity" toml:"intensity"`
}

// ShadowConfig holds the per-chunk depth target size.
type ShadowConfig struct {
	Width  int32 `yaml:"width" toml:"width"`
	Height int32 `yaml:"height" toml:"height"`
}

// DebugConfig holds debug helpers.
type DebugConfig struct {
	DepthDumpDir     string `yaml:"depth_dump_dir" toml:"depth_dump_dir"`
	DumpDepthOnStart bool   `yaml:"dump_depth_on_start" toml:"dump_depth_on_start"`
	StatsInterval    int    `yaml:"stats_interval" toml:"stats_interval"` // Seconds between stats logs, 0 disables
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Chunkscape",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Camera: CameraConfig{
			FOV:              45,
			Near:             0.1,
			Far:              3000,
			MoveSpeed:        60,
			BoostMultiplier:  5,
			MouseSensitivity: 0.003,
			Start:            [3]float32{0, 60, 0},
		},
		Terrain: TerrainConfig{
			ChunkSize:    200,
			MaxHeight:    30,
			ViewDistance: 2,
		},
		Noise: NoiseConfig{
			Seed:        0,
			Frequency:   0.02,
			Octaves:     6,
			Persistence: 0.5,
			Lacunarity:  2.0,
		},
		Streaming: StreamingConfig{
			Workers: 4,
		},
		Lighting: LightingConfig{
			SunLongitude: 45,
			SunLatitude:  50,
			Intensity:    [3]float32{1, 1, 1},
		},
		Shadow: ShadowConfig{
			Width:  2048,
			Height: 1536,
		},
		Debug: DebugConfig{
			DepthDumpDir:  "screenshots",
			StatsInterval: 5,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// WorkingSet returns the number of resident chunks for the configured view distance.
func (c *Config) WorkingSet() int {
	side := 2*c.Terrain.ViewDistance + 1
	return side * side
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	check := func(ok bool, msg string, args ...any) {
		if !ok {
			err = multierr.Append(err, fmt.Errorf(msg, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	check(c.Camera.FOV > 0 && c.Camera.FOV < 180, "camera fov %.1f out of range (0, 180)", c.Camera.FOV)
	check(c.Camera.Near > 0 && c.Camera.Near < c.Camera.Far, "camera near %.2f must be positive and below far %.2f", c.Camera.Near, c.Camera.Far)
	check(c.Terrain.ChunkSize > 0, "terrain chunk_size %d must be positive", c.Terrain.ChunkSize)
	check(c.Terrain.ViewDistance >= 0, "terrain view_distance %d must not be negative", c.Terrain.ViewDistance)
	check(c.Terrain.MaxHeight >= 0, "terrain max_height %.2f must not be negative", c.Terrain.MaxHeight)
	check(c.Noise.Octaves >= 1, "noise octaves %d must be at least 1", c.Noise.Octaves)
	check(c.Noise.Frequency > 0, "noise frequency %.4f must be positive", c.Noise.Frequency)
	check(c.Noise.Persistence > 0, "noise persistence %.2f must be positive", c.Noise.Persistence)
	check(c.Noise.Lacunarity > 0, "noise lacunarity %.2f must be positive", c.Noise.Lacunarity)
	check(c.Streaming.Workers >= 1, "streaming workers %d must be at least 1", c.Streaming.Workers)
	check(c.Shadow.Width > 0 && c.Shadow.Height > 0, "shadow size %dx%d must be positive", c.Shadow.Width, c.Shadow.Height)

	return err
}

// ErrInvalid wraps validation failures returned by Load.
var ErrInvalid = errors.New("invalid config")
