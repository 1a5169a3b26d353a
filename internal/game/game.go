// Package game implements the main loop: it loads the scene, runs the
// checkers state machine on a fixed update tick and draws every frame with a
// picking pass whenever a click is pending.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/checkers3d/internal/assets"
	"github.com/Faultbox/checkers3d/internal/config"
	"github.com/Faultbox/checkers3d/internal/engine/audio"
	"github.com/Faultbox/checkers3d/internal/engine/camera"
	"github.com/Faultbox/checkers3d/internal/engine/debug"
	"github.com/Faultbox/checkers3d/internal/engine/input"
	"github.com/Faultbox/checkers3d/internal/engine/picking"
	"github.com/Faultbox/checkers3d/internal/engine/renderer"
	"github.com/Faultbox/checkers3d/internal/engine/window"
	"github.com/Faultbox/checkers3d/internal/game/states"
	"github.com/Faultbox/checkers3d/internal/logger"
)

// Background used while no scene is loaded.
var emptyBackground = [4]float32{0.1, 0.1, 0.1, 1}

// Game is the main game instance.
type Game struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	files    *assets.Manager
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	pointer  input.Pointer
	keys     input.Bindings
	audio    *audio.Manager
	shots    *debug.Screenshots

	// scene is nil while no scene is loaded.
	scene  *scene
	camera *cameraRig
	events *matchEvents
	orch   *states.Orchestrator
	pick   *picking.Context
	drawer *boardDrawer

	// pending click in window coordinates
	click      bool
	clickX     int
	clickY     int
	lastUpdate int64
	screenshot bool
}

// New creates the window and renderer, then loads the configured scene. A
// scene that fails to load is reported in the title bar; the window stays
// open so the scene can be fixed and reloaded.
func New(cfg *config.Config) (*Game, error) {
	log := logger.Named("game")
	log.Info("initializing game",
		zap.String("title", cfg.Graphics.Title),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height))

	g := &Game{
		cfg:    cfg,
		log:    log,
		camera: newCameraRig(cfg.Game.CameraDuration.Seconds()),
		pick:   picking.NewContext(),
		shots:  debug.NewScreenshots(cfg.Graphics.ScreenshotDir, "checkers3d"),
		files:  assets.NewManager(),
	}
	// Files in the user config dir shadow the ones shipped with the game.
	g.files.AddDir(config.ConfigDir())

	// Create window (this also creates OpenGL context)
	var err error
	g.window, err = window.New(window.Config{
		Title:      cfg.Graphics.Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := g.window.DrawableSize()
	g.renderer, err = renderer.New(renderer.Config{Width: width, Height: height, Files: g.files})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.input = input.New()
	g.keys = input.DefaultBindings()
	g.audio = newAudio(cfg.Audio, g.files, log)

	g.events = &matchEvents{camera: g.camera, recordDir: cfg.Game.RecordDir, log: log}
	if g.audio != nil {
		g.events.sounds = g.audio
	}
	timing := states.Timing{
		Move:        cfg.Game.MoveDuration.Seconds(),
		Bounce:      cfg.Game.BounceDuration.Seconds(),
		BounceDelay: cfg.Game.BounceDelay.Seconds(),
		Height:      cfg.Game.ArcHeight,
	}
	g.orch = states.NewOrchestrator(states.NewMatch(nil, timing, g.events))

	g.loadScene()

	log.Info("game initialized successfully")
	return g, nil
}

// newAudio opens the audio device and loads the configured effects. It
// returns nil when audio is disabled or unavailable.
func newAudio(cfg config.AudioConfig, files *assets.Manager, log *zap.Logger) *audio.Manager {
	if !cfg.Enabled {
		return nil
	}
	m := audio.New()
	if err := m.Init(); err != nil {
		log.Warn("audio unavailable", zap.Error(err))
		return nil
	}
	m.SetMasterVolume(float64(cfg.MasterVolume))
	m.SetSFXVolume(float64(cfg.SFXVolume))

	sounds := map[audio.Effect]string{
		audio.EffectMove:     cfg.MoveSound,
		audio.EffectCapture:  cfg.CaptureSound,
		audio.EffectGameOver: cfg.GameOverSound,
	}
	for e, path := range sounds {
		if path == "" {
			continue
		}
		data, err := files.Load(path)
		if err == nil {
			err = m.Load(e, data)
		}
		if err != nil {
			log.Warn("failed to load sound", zap.String("effect", string(e)), zap.Error(err))
		}
	}
	return m
}

// loadScene (re)loads the configured scene file and restarts the match
// clock. On failure the game keeps running with nothing loaded.
func (g *Game) loadScene() {
	if g.scene != nil {
		g.scene.close()
		g.scene = nil
	}
	g.drawer = nil

	s, err := loadScene(g.cfg.Scene.File, g.cfg.Scene.ReservedLights, g.renderer, g.log)
	if err != nil {
		g.log.Error("failed to load scene", zap.String("path", g.cfg.Scene.File), zap.Error(err))
		g.window.ShowStatus(err.Error())
		return
	}
	g.window.ShowStatus("")
	g.scene = s
	hits, misses := g.files.Stats()
	g.log.Debug("asset cache", zap.Int("hits", hits), zap.Int("misses", misses))

	layout := s.graph.Board
	if layout == nil {
		g.log.Warn("scene has no board, the game is disabled")
	}
	g.orch.Match().Layout = layout
	g.drawer = &boardDrawer{r: s.render, layout: layout}
	g.events.views, g.events.hasView = s.playerViews()

	g.camera.Set(s.view())
	g.orch.Reset()
	g.lastUpdate = 0
}

// Run starts the main game loop.
func (g *Game) Run() error {
	g.running = true

	interval := g.cfg.Game.UpdateInterval.Milliseconds()
	if interval <= 0 {
		interval = 1
	}

	// FPS counter
	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting game loop")

	for g.running {
		// 1. Process input
		if g.input.Update() {
			g.running = false
			break
		}
		for _, e := range g.input.Events() {
			g.handleEvent(e)
		}

		// 2. Update on the fixed tick
		if now := window.Ticks(); g.lastUpdate == 0 || now-g.lastUpdate >= interval {
			g.lastUpdate = now
			g.update(now)
		}

		// 3. Render, picking first if a click is waiting
		g.render()
		if g.screenshot {
			g.screenshot = false
			g.saveScreenshot()
		}

		// 4. Present (swap buffers)
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.log.Debug("fps", zap.Int("count", frameCount), zap.String("state", g.orch.Current().Name()))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.scene != nil {
		g.scene.close()
	}
	if g.audio != nil {
		g.audio.Close()
	}
	g.files.Close()
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}

func (g *Game) handleEvent(e input.Event) {
	switch e.Type {
	case input.EventWindowResize:
		g.renderer.Resize(g.window.DrawableSize())
	case input.EventKeyDown:
		g.handleCommand(g.keys.Command(e))
	case input.EventMouseWheel:
		g.camera.Zoom(e.WheelY)
	case input.EventMouseDown, input.EventMouseMove, input.EventMouseUp:
		gesture := g.pointer.Handle(e)
		if gesture.Click {
			g.clickX, g.clickY = g.window.ToPixels(gesture.X, gesture.Y)
			g.click = true
		}
		if gesture.DX != 0 || gesture.DY != 0 {
			g.camera.Drag(gesture.DX, gesture.DY)
		}
	}
}

func (g *Game) handleCommand(cmd input.Command) {
	switch cmd {
	case input.CommandNone:
		return
	case input.CommandQuit:
		g.running = false
		return
	case input.CommandScreenshot:
		g.screenshot = true
		return
	case input.CommandReload:
		g.log.Info("reloading scene", zap.String("path", g.cfg.Scene.File))
		g.loadScene()
		return
	}
	if g.scene == nil {
		return
	}
	switch cmd {
	case input.CommandCycleMaterials:
		g.scene.graph.CycleMaterials()
	case input.CommandNextView:
		g.camera.FlyTo(g.scene.nextView())
	case input.CommandToggleHighlights:
		n := g.scene.graph.ToggleHighlights()
		g.log.Debug("highlights toggled", zap.Int("active", n))
	}
}

// update advances the state machine, scene animations and camera to ms.
func (g *Game) update(ms int64) {
	g.orch.Tick(ms)
	now := g.orch.Now()
	g.camera.Update(now)
	if g.scene != nil {
		g.scene.graph.Update(now)
		g.scene.render.SetTime(now)
	}
}

func (g *Game) render() {
	if g.scene == nil {
		g.click = false
		g.renderer.Begin(emptyBackground)
		return
	}
	s := g.scene
	view := g.camera.View()

	g.pick.Reset()
	s.graph.ResetPicking()
	if g.click {
		g.click = false
		g.pickPass(view)
	}

	g.renderer.Begin(s.graph.Background)
	g.renderer.SetCamera(view)
	g.renderer.SetLights(s.lights, s.graph.Ambient)
	s.render.RenderScene(nil)
	g.renderer.DrawAxes(s.graph.AxisLength)
	g.drawer.pick = nil
	g.orch.Display(g.drawer)
}

func (g *Game) saveScreenshot() {
	pixels, width, height := g.renderer.ReadPixels()
	path, err := g.shots.Save(pixels, width, height)
	if err != nil {
		g.log.Error("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

// pickPass draws every pickable object in its ID colour, reads the pixel
// under the pending click and dispatches what it hit.
func (g *Game) pickPass(view camera.View) {
	s := g.scene
	g.renderer.BeginPick()
	g.renderer.SetCamera(view)
	s.render.RenderScene(g.pick)
	g.drawer.pick = g.pick
	g.orch.Display(g.drawer)
	id := g.renderer.EndPick(g.clickX, g.clickY)

	obj, ok := g.pick.Resolve(id)
	if !ok {
		return
	}
	target := clickTarget(obj)
	if sc, ok := target.(states.SceneTarget); ok {
		g.log.Debug("picked scene component", zap.String("component", sc.Component))
	}
	g.orch.Click(target)
}
