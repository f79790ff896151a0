package game

import (
	"github.com/Faultbox/chunkscape/internal/config"
	"github.com/Faultbox/chunkscape/internal/engine/camera"
	"github.com/Faultbox/chunkscape/internal/engine/chunk"
	"github.com/Faultbox/chunkscape/internal/engine/lighting"
	"github.com/Faultbox/chunkscape/internal/engine/shadow"
	"github.com/Faultbox/chunkscape/internal/engine/terrain"
	"github.com/Faultbox/chunkscape/pkg/math"
)

// heightField builds the terrain height oracle from the noise settings.
func heightField(cfg *config.Config) terrain.Fractal {
	f := terrain.DefaultFractal(cfg.Noise.Seed, cfg.Terrain.MaxHeight)
	f.Frequency = cfg.Noise.Frequency
	f.Octaves = cfg.Noise.Octaves
	f.Persistence = cfg.Noise.Persistence
	f.Lacunarity = cfg.Noise.Lacunarity
	return f
}

// newCamera places the camera at the configured start, lifted so it
// never spawns below the ground.
func newCamera(cfg *config.Config, field terrain.HeightField) *camera.FreeCamera {
	start := math.Vec3{X: cfg.Camera.Start[0], Y: cfg.Camera.Start[1], Z: cfg.Camera.Start[2]}
	if ground := field.Height(start.X, start.Z) + 2; start.Y < ground {
		start.Y = ground
	}

	cam := camera.NewFreeCamera(start)
	cam.FOV = cfg.Camera.FOV
	cam.Near = cfg.Camera.Near
	cam.Far = cfg.Camera.Far
	cam.MoveSpeed = cfg.Camera.MoveSpeed
	cam.BoostMultiplier = cfg.Camera.BoostMultiplier
	cam.MouseSensitivity = cfg.Camera.MouseSensitivity
	return cam
}

func newSun(cfg *config.Config) lighting.Sun {
	in := cfg.Lighting.Intensity
	return lighting.Sun{
		Longitude: cfg.Lighting.SunLongitude,
		Latitude:  cfg.Lighting.SunLatitude,
		Intensity: math.Vec3{X: in[0], Y: in[1], Z: in[2]},
	}
}

// frameParams assembles the per-frame camera and light state. The light
// volume follows the camera so it always covers the resident chunks.
func frameParams(cam *camera.FreeCamera, sun lighting.Sun, terrainCfg config.TerrainConfig, viewport [4]int32) chunk.FrameParams {
	aspect := float32(1)
	if viewport[3] > 0 {
		aspect = float32(viewport[2]) / float32(viewport[3])
	}

	lightDir := sun.Direction()
	vol := shadow.FollowVolume(cam.Position, terrainCfg.ChunkSize, terrainCfg.ViewDistance, terrainCfg.MaxHeight)

	return chunk.FrameParams{
		ViewProj:       cam.ViewProj(aspect),
		LightSpace:     shadow.DirectionalLightMatrix(lightDir, vol),
		LightDir:       lightDir,
		LightIntensity: sun.Intensity,
		Viewport:       viewport,
	}
}
