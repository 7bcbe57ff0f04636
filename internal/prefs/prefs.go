// Package prefs loads the user preferences the demo starts with.
package prefs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"objects3d/gfx"
)

// DefaultPath is where the preferences file is looked up.
const DefaultPath = "objects3d.yaml"

// maxSize bounds the preferences file.
const maxSize = 64 * 1024

// Prefs are the startup choices of the user.
type Prefs struct {
	Fullscreen bool   `yaml:"fullscreen"`
	Adapter    int    `yaml:"adapter"`
	DeviceType string `yaml:"device_type"`
	Wireframe  bool   `yaml:"wireframe"`
	ShowStats  bool   `yaml:"show_stats"`
	LogFile    string `yaml:"log_file"`
}

// Default returns windowed mode on the first adapter with the HAL device.
func Default() Prefs {
	return Prefs{DeviceType: "hal", LogFile: "objects3d.log"}
}

// Load reads path. A missing file yields Default.
func Load(path string) (Prefs, error) {
	p := Default()
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return p, fmt.Errorf("prefs: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return p, fmt.Errorf("prefs: read %s: %w", path, err)
	}
	if len(data) > maxSize {
		return p, fmt.Errorf("prefs: %s larger than %d bytes", path, maxSize)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default. Unknown keys are rejected.
func Parse(data []byte) (Prefs, error) {
	p := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return p, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Default(), fmt.Errorf("prefs: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Default(), err
	}
	return p, nil
}

// Validate checks the adapter and device type.
func (p Prefs) Validate() error {
	if p.Adapter < 0 || p.Adapter >= gfx.AdapterCount() {
		return fmt.Errorf("prefs: adapter %d: %w", p.Adapter, gfx.ErrNotAvailable)
	}
	if _, err := gfx.ParseDeviceType(p.DeviceType); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	return nil
}

// Device returns the parsed device type.
func (p Prefs) Device() gfx.DeviceType {
	t, err := gfx.ParseDeviceType(p.DeviceType)
	if err != nil {
		return gfx.DeviceTypeHAL
	}
	return t
}

// Save writes p to path.
func Save(path string, p Prefs) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	return nil
}
