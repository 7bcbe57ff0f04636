package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"objects3d/app"
	"objects3d/hal"
	"objects3d/internal/prefs"
)

func main() {
	prefsPath := flag.String("prefs", prefs.DefaultPath, "Preferences file (YAML).")
	fullscreen := flag.Bool("fullscreen", false, "Start fullscreen.")
	adapter := flag.Int("adapter", 0, "Adapter ordinal.")
	device := flag.String("device", "", "Device type: hal, ref or nullref.")
	wireframe := flag.Bool("wireframe", false, "Draw triangles as wireframe.")
	stats := flag.Bool("stats", false, "Show the frame rate overlay.")
	logPath := flag.String("log", "", "Log file, truncated on start (default from prefs).")
	debug := flag.Bool("debug", false, "Log at debug level.")

	var hcfg hal.HeadlessConfig
	headless := flag.Bool("headless", false, "Run without a window.")
	flag.IntVar(&hcfg.Hz, "hz", 60, "Frame rate in headless mode.")
	flag.Uint64Var(&hcfg.Frames, "frames", 0, "Stop after N frames in headless mode (0 = run until quit).")
	flag.Uint64Var(&hcfg.LoseEvery, "lose-every", 0, "Simulate a display mode change every N frames in headless mode.")
	flag.StringVar(&hcfg.Snapshot, "snapshot", "", "Write the last headless frame to this BMP file.")
	flag.Parse()

	p, err := prefs.Load(*prefsPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Flags given on the command line override the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "fullscreen":
			p.Fullscreen = *fullscreen
		case "adapter":
			p.Adapter = *adapter
		case "device":
			p.DeviceType = *device
		case "wireframe":
			p.Wireframe = *wireframe
		case "stats":
			p.ShowStats = *stats
		case "log":
			p.LogFile = *logPath
		}
	})
	if err := p.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg := app.DefaultConfig()
	cfg.Fullscreen = p.Fullscreen
	cfg.Adapter = p.Adapter
	cfg.DeviceType = p.Device()
	cfg.Wireframe = p.Wireframe
	cfg.ShowStats = p.ShowStats
	if *debug {
		cfg.LogLevel = slog.LevelDebug
	}

	newLoop := func(h *hal.Host) (hal.Loop, error) {
		a, err := app.New(h, cfg)
		if err != nil {
			return nil, err
		}
		return a, nil
	}

	host := hal.HostConfig{LogPath: p.LogFile}
	if *headless {
		hcfg.Host = host
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = hal.RunHeadless(ctx, newLoop, hcfg)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	} else {
		err = hal.RunWindow(host, newLoop)
	}
	if err != nil {
		// Startup failures are already in the log; the demo still exits cleanly.
		fmt.Fprintln(os.Stderr, err)
	}
}
