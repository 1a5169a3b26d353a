// Package window opens the SDL2 window and its OpenGL 4.1 core context.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/checkers3d/internal/logger"
)

func init() {
	// GL calls must stay on the thread that created the context.
	runtime.LockOSThread()
}

// Config describes the window to open.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window is an SDL2 window with a current GL context. Sizes come in two
// units: points, used by mouse events, and pixels, used by GL.
type Window struct {
	config Config
	win    *sdl.Window
	ctx    sdl.GLContext
	log    *zap.Logger
}

var glAttributes = []struct {
	attr  sdl.GLattr
	value int
}{
	{sdl.GL_CONTEXT_MAJOR_VERSION, 4},
	{sdl.GL_CONTEXT_MINOR_VERSION, 1},
	{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
	{sdl.GL_DOUBLEBUFFER, 1},
	{sdl.GL_DEPTH_SIZE, 24},
}

// New opens the window and makes its GL context current.
func New(cfg Config) (*Window, error) {
	w := &Window{config: cfg, log: logger.Named("window")}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("sdl init: %w", err)
	}
	for _, a := range glAttributes {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			sdl.Quit()
			return nil, fmt.Errorf("gl attribute %d: %w", a.attr, err)
		}
	}

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	w.win, err = sdl.CreateWindow(cfg.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width), int32(cfg.Height), flags)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("create window: %w", err)
	}
	if w.ctx, err = w.win.GLCreateContext(); err != nil {
		w.win.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("create gl context: %w", err)
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		w.log.Warn("swap interval not supported", zap.Int("interval", interval), zap.Error(err))
	}

	pw, ph := w.DrawableSize()
	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("pixel_width", pw),
		zap.Int("pixel_height", ph),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync))
	return w, nil
}

// Close releases the context and the window and shuts SDL down.
func (w *Window) Close() {
	if w.ctx != nil {
		sdl.GLDeleteContext(w.ctx)
	}
	if w.win != nil {
		w.win.Destroy()
	}
	sdl.Quit()
	w.log.Debug("window closed")
}

// SwapBuffers presents the frame.
func (w *Window) SwapBuffers() { w.win.GLSwap() }

// DrawableSize returns the size of the GL framebuffer in pixels.
func (w *Window) DrawableSize() (int, int) {
	width, height := w.win.GLGetDrawableSize()
	return int(width), int(height)
}

// ToPixels converts a mouse position from points to framebuffer pixels.
func (w *Window) ToPixels(x, y int) (int, int) {
	pw, ph := w.win.GLGetDrawableSize()
	ww, wh := w.win.GetSize()
	return scale(x, ww, pw), scale(y, wh, ph)
}

func scale(v int, from, to int32) int {
	if from <= 0 {
		return v
	}
	return v * int(to) / int(from)
}

// ShowStatus sets the title to the configured title followed by status, or
// to the plain title when status is empty.
func (w *Window) ShowStatus(status string) {
	w.win.SetTitle(StatusTitle(w.config.Title, status))
}

// StatusTitle formats a window title with an optional status suffix.
func StatusTitle(title, status string) string {
	if status == "" {
		return title
	}
	return title + " - " + status
}

// Ticks returns milliseconds since SDL was initialised.
func Ticks() int64 {
	return int64(sdl.GetTicks())
}
