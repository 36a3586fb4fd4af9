// ABOUTME: Viewer settings loaded from YAML: built-in defaults, then the global file, then an explicit file
// ABOUTME: Values set in a later file win; a missing file is skipped, a malformed one is an error

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	pilog "github.com/mauromedda/kilo-go/internal/log"
)

// DefaultWelcome is the banner shown on an empty buffer. %s is replaced
// with the program version.
const DefaultWelcome = "Kilo editor -- version %s"

const maxTabStop = 16

// Settings holds the merged configuration.
type Settings struct {
	TabStop    int    `yaml:"tab_stop,omitempty"`
	Welcome    string `yaml:"welcome,omitempty"`
	ForceProbe *bool  `yaml:"force_probe,omitempty"`
	LogLevel   string `yaml:"log_level,omitempty"`
}

// Defaults returns the settings used when no file sets a value.
func Defaults() *Settings {
	forceProbe := false
	return &Settings{
		TabStop:    8,
		Welcome:    DefaultWelcome,
		ForceProbe: &forceProbe,
		LogLevel:   "info",
	}
}

// CursorQueryForced reports whether force_probe is set to true.
func (s *Settings) CursorQueryForced() bool {
	return s != nil && s.ForceProbe != nil && *s.ForceProbe
}

// Load merges the defaults, the global settings file and, when path is
// not empty, the file at path. A missing global file is ignored; a
// missing explicit file is ignored as well so a shared --config can be
// passed unconditionally.
func Load(path string) (*Settings, error) {
	result := Defaults()

	global, err := loadFile(GlobalConfigFile())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}
	result = merge(result, global)

	if path != "" {
		explicit, err := loadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		result = merge(result, explicit)
	}

	ResolveEnvVars(result)
	if err := result.Validate(); err != nil {
		return nil, err
	}
	return result, nil
}

// loadFile reads Settings from a YAML file. Unknown keys are rejected. An
// empty file yields zero Settings.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Settings
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	pilog.Debug("config: loaded %s", path)
	return &s, nil
}

// merge overlays the set values of over onto base. ForceProbe is a
// pointer so an explicit false overrides an earlier true.
func merge(base, over *Settings) *Settings {
	if base == nil {
		base = &Settings{}
	}
	if over == nil {
		return base
	}

	result := *base

	if over.TabStop != 0 {
		result.TabStop = over.TabStop
	}
	if over.Welcome != "" {
		result.Welcome = over.Welcome
	}
	if over.ForceProbe != nil {
		v := *over.ForceProbe
		result.ForceProbe = &v
	}
	if over.LogLevel != "" {
		result.LogLevel = over.LogLevel
	}

	return &result
}

// Validate checks value ranges.
func (s *Settings) Validate() error {
	if s.TabStop < 1 || s.TabStop > maxTabStop {
		return fmt.Errorf("tab_stop must be between 1 and %d, got %d", maxTabStop, s.TabStop)
	}
	if _, err := pilog.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}
