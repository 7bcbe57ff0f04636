package app

import (
	"errors"
	"fmt"
	"log/slog"

	"objects3d/gfx"
	"objects3d/hal"
	"objects3d/internal/buildinfo"
	"objects3d/internal/camera"
	"objects3d/internal/geometry"
	"objects3d/internal/hud"
	"objects3d/internal/input"
	"objects3d/internal/logx"
	"objects3d/internal/resources"
	"objects3d/internal/scene"
)

// Config selects how the demo starts.
type Config struct {
	Title  string
	Width  int
	Height int
	Depth  int

	Fullscreen bool
	Adapter    int
	DeviceType gfx.DeviceType
	Wireframe  bool

	// ShowStats starts with the HUD visible. F1 toggles it.
	ShowStats    bool
	PollKeyboard bool

	LogLevel slog.Level
}

// DefaultConfig is an 800x480 16-bit window on the HAL device.
func DefaultConfig() Config {
	return Config{
		Title:      buildinfo.Title("3D Objects"),
		Width:      800,
		Height:     480,
		Depth:      16,
		DeviceType: gfx.DeviceTypeHAL,
		LogLevel:   slog.LevelInfo,
	}
}

// App is the demo: one window, one device, two spinning shapes.
type App struct {
	h   hal.HAL
	cfg Config
	log *slog.Logger

	quit     input.QuitFlag
	cam      *camera.Controller
	res      *resources.Manager
	sampler  *input.Sampler
	events   *input.Events
	renderer *scene.Renderer
	hud      *hud.HUD

	windowOpen bool
	closed     bool
	err        error
}

// New runs the startup sequence. On failure everything created so far is
// released in reverse order and the error is returned.
func New(h hal.HAL, cfg Config) (*App, error) {
	if h == nil {
		return nil, hal.ErrNotImplemented
	}
	a := &App{
		h:   h,
		cfg: cfg,
		log: logx.New(h.Logger(), cfg.LogLevel),
		cam: camera.NewController(),
	}
	a.res = resources.New(h.Display(), a.states(), a.log)
	a.sampler = input.NewSampler(h.Input(), &a.cam.Target)
	a.sampler.PollKeyboard = cfg.PollKeyboard
	a.events = &input.Events{Quit: &a.quit, Target: &a.cam.Target, OnKey: a.onKey}
	a.hud = hud.New(cfg.Title)

	a.log.Info("starting application", "version", buildinfo.Short(), "commit", buildinfo.Commit)
	if err := a.startup(); err != nil {
		a.log.Error("startup failed", "err", err)
		a.release()
		return nil, err
	}
	return a, nil
}

func (a *App) states() resources.DeviceStates {
	st := resources.DefaultStates()
	st.Wireframe = a.cfg.Wireframe
	return st
}

func (a *App) startup() error {
	win := a.h.Window()
	if win == nil {
		return fmt.Errorf("window: %w", hal.ErrNotImplemented)
	}
	if err := win.Open(hal.WindowOptions{
		Title:      a.cfg.Title,
		Width:      a.cfg.Width,
		Height:     a.cfg.Height,
		Fullscreen: a.cfg.Fullscreen,
	}); err != nil {
		return fmt.Errorf("open window: %w", err)
	}
	a.windowOpen = true

	format, err := gfx.CheckDeviceFormat(a.h.Display(), a.cfg.Adapter, a.cfg.Depth)
	if err != nil {
		return fmt.Errorf("check format: %w", err)
	}

	if _, err := a.res.Initialize(a.cfg.Adapter, a.cfg.DeviceType, gfx.PresentParams{
		BackBufferWidth:  a.cfg.Width,
		BackBufferHeight: a.cfg.Height,
		BackBufferFormat: format,
		Windowed:         !a.cfg.Fullscreen,
		Window:           win,
	}); err != nil {
		return err
	}

	tbl := geometry.Scene()
	if _, err := a.res.UploadGeometry(tbl.Vertices, tbl.Batches); err != nil {
		return err
	}

	if err := a.sampler.Initialize(win); err != nil {
		return err
	}

	a.renderer = scene.New(a.cam, a.res.Batches())
	if a.cfg.ShowStats {
		a.renderer.Overlay = a.hud
	}
	return nil
}

func (a *App) onKey(code hal.KeyCode) bool {
	if code != hal.KeyF1 || a.renderer == nil {
		return false
	}
	if a.renderer.Overlay == nil {
		a.renderer.Overlay = a.hud
	} else {
		a.renderer.Overlay = nil
	}
	return true
}

// Step runs one iteration: messages, input, render or recover. It returns
// hal.ErrStop once the quit flag is set.
func (a *App) Step() (err error) {
	if a.closed {
		return hal.ErrStop
	}
	defer a.recoverFrame(&err)

	a.h.Window().PumpMessages(a.events)
	if a.h.Window().Closed() {
		a.quit.Set()
	}
	if a.quit.IsSet() {
		return hal.ErrStop
	}

	if err := a.sampler.Sample(); err != nil {
		a.log.Debug("input sample skipped", "err", err)
	}

	status := a.res.Health()
	if status == nil {
		status = a.renderer.Render(a.res.Device(), a.res.Buffer())
	}
	if status != nil {
		if gfx.IsLost(status) {
			a.log.Debug("device lost", "status", status)
		}
		if err := a.res.HandleDeviceLost(status); err != nil {
			a.fail(err)
		}
	}

	if a.quit.IsSet() {
		return hal.ErrStop
	}
	return nil
}

func (a *App) fail(err error) {
	a.log.Error("frame failed", "err", err)
	a.err = errors.Join(a.err, err)
	a.quit.Set()
}

// Err returns the runtime error that stopped the loop, if any.
func (a *App) Err() error { return a.err }

// Quit reports whether the quit flag is set.
func (a *App) Quit() bool { return a.quit.IsSet() }

// Target returns the camera look-at target.
func (a *App) Target() camera.Target { return a.cam.Target }

// Frames returns how many frames were presented.
func (a *App) Frames() uint64 {
	if a.renderer == nil {
		return 0
	}
	return a.renderer.Frames()
}

// Resources exposes the device and buffer owner.
func (a *App) Resources() *resources.Manager { return a.res }

// Renderer exposes the scene renderer.
func (a *App) Renderer() *scene.Renderer { return a.renderer }

// Close releases the buffer, the device, the input devices and the window,
// in that order. Calling it again does nothing.
func (a *App) Close() error {
	if a.closed {
		return nil
	}
	var st gfx.Stats
	if dev := a.res.Device(); dev != nil {
		st = dev.Stats()
	}
	a.release()
	a.log.Info("exiting normally", "frames", st.Frames, "resets", st.Resets)
	return nil
}

func (a *App) release() {
	a.closed = true

	a.res.ReleaseBuffer()
	a.log.Debug("released vertex buffer")
	a.res.ReleaseDevice()
	a.log.Debug("released device")
	a.sampler.Release()
	a.log.Debug("released input")
	if a.windowOpen {
		a.h.Window().Close()
		a.windowOpen = false
		a.log.Debug("closed window")
	}
}

// Run steps until quit, then closes. A fatal frame error is returned after
// teardown.
func (a *App) Run() error {
	for {
		if err := a.Step(); err != nil {
			if !errors.Is(err, hal.ErrStop) {
				a.fail(err)
			}
			break
		}
	}
	return errors.Join(a.Close(), a.err)
}
