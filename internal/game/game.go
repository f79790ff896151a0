// Package game implements the main loop of the terrain demo.
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/chunkscape/internal/config"
	"github.com/Faultbox/chunkscape/internal/engine/camera"
	"github.com/Faultbox/chunkscape/internal/engine/chunk"
	"github.com/Faultbox/chunkscape/internal/engine/debug"
	"github.com/Faultbox/chunkscape/internal/engine/input"
	"github.com/Faultbox/chunkscape/internal/engine/lighting"
	"github.com/Faultbox/chunkscape/internal/engine/picking"
	"github.com/Faultbox/chunkscape/internal/engine/renderer"
	"github.com/Faultbox/chunkscape/internal/engine/scene"
	"github.com/Faultbox/chunkscape/internal/engine/terrain"
	"github.com/Faultbox/chunkscape/internal/engine/texture"
	"github.com/Faultbox/chunkscape/internal/engine/window"
	"github.com/Faultbox/chunkscape/internal/logger"
)

const (
	// Degrees per second the sun turns while an arrow key is held.
	sunTurnRate = 30

	settleTimeout = 2 * time.Second
)

// Game is the demo instance.
type Game struct {
	cfg     *config.Config
	running bool
	log     *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	manager  *chunk.Manager
	capture  *debug.Capture

	field    terrain.Fractal
	camera   *camera.FreeCamera
	sun      lighting.Sun
	captured bool

	dumpDepth  bool
	screenshot bool
}

// New creates the window and GL state and streams in the initial working
// set around the start position. It returns only once every chunk is ready.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		cfg:     cfg,
		log:     logger.Named("game"),
		capture: debug.NewCapture(cfg.Debug.DepthDumpDir),
		sun:     newSun(cfg),
	}

	g.log.Info("initializing",
		zap.String("title", cfg.Window.Title),
		zap.Int("chunk_size", cfg.Terrain.ChunkSize),
		zap.Int("view_distance", cfg.Terrain.ViewDistance),
		zap.Int("working_set", cfg.WorkingSet()),
	)

	// Create window (this also creates OpenGL context)
	var err error
	g.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := g.window.DrawableSize()
	g.renderer, err = renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.input = input.New()

	pipeline, err := scene.NewTerrainPipeline(scene.Config{
		ShadowWidth:   cfg.Shadow.Width,
		ShadowHeight:  cfg.Shadow.Height,
		GroundTexture: g.groundTexture(),
	})
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to create terrain pipeline: %w", err)
	}

	g.field = heightField(cfg)
	g.manager, err = chunk.NewManager(chunk.Options{
		ChunkSize:    cfg.Terrain.ChunkSize,
		ViewDistance: cfg.Terrain.ViewDistance,
		Workers:      cfg.Streaming.Workers,
	}, g.field, pipeline)
	if err != nil {
		pipeline.Destroy()
		g.Close()
		return nil, fmt.Errorf("failed to create chunk manager: %w", err)
	}

	g.camera = newCamera(cfg, g.field)

	start := time.Now()
	if err := g.manager.Initialize(context.Background(), g.camera.Position); err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to build initial terrain: %w", err)
	}
	g.log.Info("initial terrain ready",
		zap.Int("chunks", g.manager.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)

	g.setMouseCaptured(true)
	g.dumpDepth = cfg.Debug.DumpDepthOnStart

	return g, nil
}

// groundTexture uploads the configured ground texture, falling back to
// procedural grass when none is set or it cannot be loaded.
func (g *Game) groundTexture() uint32 {
	if path := g.cfg.Terrain.TexturePath; path != "" {
		img, err := texture.Load(path)
		if err == nil {
			g.log.Info("ground texture loaded", zap.String("path", path), zap.Int("size", img.Bounds().Dx()))
			return texture.Upload(img)
		}
		g.log.Warn("ground texture unavailable, using procedural grass", zap.String("path", path), zap.Error(err))
	}
	return texture.Upload(texture.Grass(256, g.cfg.Noise.Seed))
}

// Run starts the main loop and returns when the window is closed.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()
	statsTimer := time.Now()
	statsInterval := time.Duration(g.cfg.Debug.StatsInterval) * time.Second

	g.log.Info("starting main loop")

	for g.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		// 1. Process input
		if g.input.Update() {
			g.running = false
			break
		}
		g.handleEvents()

		// 2. Update camera and light
		g.update(dt)

		// 3. Render
		g.render()

		// 4. Present (swap buffers)
		g.window.SwapBuffers()

		frameCount++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			fps := float64(frameCount) / elapsed.Seconds()
			center := g.manager.Center()
			g.window.SetTitle(fmt.Sprintf("%s | %.0f fps | chunk %s | pending %d",
				g.cfg.Window.Title, fps, center, g.manager.Pending()))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if statsInterval > 0 && time.Since(statsTimer) >= statsInterval {
			g.logStats()
			statsTimer = time.Now()
		}
	}

	return nil
}

func (g *Game) handleEvents() {
	for _, event := range g.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			g.renderer.Resize(g.window.DrawableSize())
		case input.EventMouseDown:
			if !g.captured {
				g.setMouseCaptured(true)
			} else {
				g.pickTerrain()
			}
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				g.running = false
			case sdl.SCANCODE_TAB:
				g.setMouseCaptured(!g.captured)
			case sdl.SCANCODE_R:
				g.camera = newCamera(g.cfg, g.field)
				g.log.Info("camera reset")
			case sdl.SCANCODE_F11:
				g.screenshot = true
			case sdl.SCANCODE_F12:
				g.dumpDepth = true
			}
		}
	}
}

func (g *Game) update(dt float32) {
	if g.captured {
		g.camera.HandleMouse(g.input.MouseDelta())
	}

	forward := g.input.Axis(sdl.SCANCODE_S, sdl.SCANCODE_W)
	right := g.input.Axis(sdl.SCANCODE_A, sdl.SCANCODE_D)
	up := g.input.Axis(sdl.SCANCODE_LCTRL, sdl.SCANCODE_SPACE) + g.input.Axis(sdl.SCANCODE_DOWN, sdl.SCANCODE_UP)
	boost := g.input.IsKeyDown(sdl.SCANCODE_LSHIFT)
	g.camera.Move(forward, right, up, dt, boost)

	if turn := g.input.Axis(sdl.SCANCODE_LEFT, sdl.SCANCODE_RIGHT); turn != 0 {
		g.sun.Longitude += turn * sunTurnRate * dt
	}
}

func (g *Game) render() {
	if g.dumpDepth {
		g.settle()
	}

	g.renderer.Begin()

	frame := frameParams(g.camera, g.sun, g.cfg.Terrain, g.renderer.Viewport())
	g.manager.Render(frame, g.camera.Position)

	// The depth buffer is only valid until the swap.
	if g.dumpDepth {
		g.dumpDepth = false
		g.saveDepth()
	}
	if g.screenshot {
		g.screenshot = false
		g.saveScreenshot()
	}

	g.renderer.End()
}

// settle waits briefly for in-flight generation so a dump shows the
// complete working set.
func (g *Game) settle() {
	ctx, cancel := context.WithTimeout(context.Background(), settleTimeout)
	defer cancel()

	if err := g.manager.WaitIdle(ctx); err != nil {
		g.log.Warn("dumping before streaming settled", zap.Int("pending", g.manager.Pending()), zap.Error(err))
	}
}

// saveDepth writes the center chunk's light depth target and the camera
// depth buffer to disk.
func (g *Game) saveDepth() {
	if c, ok := g.manager.Chunk(g.manager.Center()); ok {
		if b, ok := c.Buffers().(*scene.ChunkBuffers); ok && b.Shadow.IsValid() {
			path, err := g.capture.SaveDepth("light", b.Shadow.ReadDepth(), int(b.Shadow.Width), int(b.Shadow.Height))
			if err != nil {
				g.log.Error("failed to save light depth", zap.Error(err))
			} else {
				g.log.Info("depth texture saved", zap.String("path", path), zap.Stringer("chunk", c.Coord()))
			}
		}
	}

	width, height := g.renderer.Size()
	path, err := g.capture.SaveDepth("camera", g.renderer.ReadDepth(), width, height)
	if err != nil {
		g.log.Error("failed to save camera depth", zap.Error(err))
		return
	}
	g.log.Info("depth texture saved", zap.String("path", path))
}

func (g *Game) saveScreenshot() {
	width, height := g.renderer.Size()
	path, err := g.capture.SaveColor(g.renderer.ReadPixels(), width, height)
	if err != nil {
		g.log.Error("failed to save screenshot", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

// pickTerrain logs the ground point under the crosshair and the loaded chunk
// whose mesh covers it. Outside the loaded chunks it reports where the ray
// meets sea level.
func (g *Game) pickTerrain() {
	var loaded []*chunk.Chunk
	var bounds terrain.Bounds
	for _, c := range g.manager.Coords() {
		ch, ok := g.manager.Chunk(c)
		if !ok || !ch.Loaded() {
			continue
		}
		b := ch.Bounds()
		if len(loaded) == 0 {
			bounds = b
		} else {
			bounds.Extend(b.Min)
			bounds.Extend(b.Max)
		}
		loaded = append(loaded, ch)
	}
	var within *terrain.Bounds
	if len(loaded) > 0 {
		within = &bounds
	}

	ray := picking.NewRay(g.camera.Position, g.camera.Forward())
	ground, ok := ray.PickGround(g.field, within, 1, 0)
	if !ok {
		g.log.Info("pick missed the ground")
		return
	}

	hit := ground.Point
	fields := []zap.Field{
		zap.Float32("x", hit.X),
		zap.Float32("y", hit.Y),
		zap.Float32("z", hit.Z),
		zap.Float32("distance", hit.Sub(g.camera.Position).Length()),
		zap.Bool("terrain", ground.Terrain),
	}
	if !ground.Terrain {
		g.log.Info("picked sea level", fields...)
		return
	}
	for _, ch := range loaded {
		b := ch.Bounds()
		if hit.X >= b.Min.X && hit.X <= b.Max.X && hit.Z >= b.Min.Z && hit.Z <= b.Max.Z {
			fields = append(fields, zap.Stringer("chunk", ch.Coord()), zap.Uint64("version", ch.Version()))
			break
		}
	}
	g.log.Info("picked terrain", fields...)
}

func (g *Game) logStats() {
	s := g.manager.Stats()
	g.log.Info("streaming",
		zap.Stringer("center", s.Center),
		zap.Int("resident", s.Resident),
		zap.Int("pending", s.Pending),
		zap.Uint64("relabeled", s.Relabeled),
		zap.Uint64("completed", s.Completed),
		zap.Uint64("discarded", s.Discarded),
		zap.Uint64("canceled", s.Canceled),
		zap.Uint64("failed", s.Failed),
		zap.Float32("cam_x", g.camera.Position.X),
		zap.Float32("cam_y", g.camera.Position.Y),
		zap.Float32("cam_z", g.camera.Position.Z),
	)
}

func (g *Game) setMouseCaptured(captured bool) {
	g.captured = captured
	g.window.SetMouseCaptured(captured)
}

// Close tears down streaming before the GL context it draws into.
func (g *Game) Close() {
	g.log.Info("closing")

	if g.manager != nil {
		g.manager.Cleanup()
		g.manager = nil
	}
	if g.renderer != nil {
		g.renderer.Close()
		g.renderer = nil
	}
	if g.window != nil {
		g.window.Close()
		g.window = nil
	}
}
