package hal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/image/bmp"
)

// Loop is one program instance driven by a runner.
type Loop interface {
	// Step runs one iteration. Returning ErrStop ends the run normally.
	Step() error
	Close() error
}

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Host HostConfig

	Hz     int
	Frames uint64 // stop after N frames (0 = run until the loop stops)

	// LoseEvery simulates a display mode change every N frames (0 = never).
	LoseEvery uint64

	// Snapshot, when set, receives the last presented frame as a BMP file.
	Snapshot string
}

// RunHeadless runs the program without opening a desktop window.
func RunHeadless(ctx context.Context, newLoop func(*Host) (Loop, error), cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h, err := New(cfg.Host)
	if err != nil {
		return err
	}
	defer h.Close()

	loop, err := newLoop(h)
	if err != nil {
		return err
	}

	t := time.NewTicker(d)
	defer t.Stop()

	runErr := runTicks(ctx, h, loop, t.C, cfg)
	if cfg.Snapshot != "" {
		if err := writeSnapshot(h, cfg.Snapshot); err != nil {
			runErr = errors.Join(runErr, err)
		}
	}
	return errors.Join(runErr, loop.Close())
}

func runTicks(ctx context.Context, h *Host, loop Loop, ticks <-chan time.Time, cfg HeadlessConfig) error {
	var frame uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticks:
			frame++
			if cfg.LoseEvery > 0 && frame%cfg.LoseEvery == 0 {
				h.ChangeDisplayMode()
			}
			if err := loop.Step(); err != nil {
				if errors.Is(err, ErrStop) {
					return nil
				}
				return err
			}
			if h.win.Closed() {
				return nil
			}
			if cfg.Frames > 0 && frame >= cfg.Frames {
				return nil
			}
		}
	}
}

func writeSnapshot(h *Host, path string) error {
	img := h.Snapshot()
	if img == nil {
		return ErrNoWindow
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := bmp.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("snapshot: %w", err)
	}
	return f.Close()
}
