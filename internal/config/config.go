// Package config loads numtower.toml project settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"numtower/internal/trace"
)

// FileName is the project configuration file searched for by Find.
const FileName = "numtower.toml"

// ErrInvalid marks a configuration value outside its allowed set.
var ErrInvalid = errors.New("invalid configuration")

// Config is the decoded configuration with defaults applied.
type Config struct {
	Trace  TraceConfig  `toml:"trace"`
	Batch  BatchConfig  `toml:"batch"`
	Output OutputConfig `toml:"output"`

	// Path is the file the values came from; empty for defaults.
	Path string `toml:"-"`
}

type TraceConfig struct {
	Level  string `toml:"level"`  // off|error|phase|detail|debug
	Format string `toml:"format"` // text|ndjson
	Output string `toml:"output"` // file path, "-" for stderr
}

type BatchConfig struct {
	Jobs  int    `toml:"jobs"`  // 0 means GOMAXPROCS
	UI    string `toml:"ui"`    // auto|on|off
	Cache string `toml:"cache"` // result cache directory, empty disables
}

type OutputConfig struct {
	Color string `toml:"color"` // auto|on|off
}

// Default returns the settings used without a configuration file.
func Default() Config {
	return Config{
		Trace:  TraceConfig{Level: "off", Format: "text", Output: "-"},
		Batch:  BatchConfig{UI: "auto"},
		Output: OutputConfig{Color: "auto"},
	}
}

// Find walks up from startDir to locate numtower.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("trace", "output") {
		cfg.Trace.Output = resolveRelative(filepath.Dir(path), cfg.Trace.Output)
	}
	if meta.IsDefined("batch", "cache") {
		cfg.Batch.Cache = resolveRelative(filepath.Dir(path), cfg.Batch.Cache)
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads the nearest numtower.toml above startDir, or the defaults
// when there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks enumerated values and ranges.
func (c Config) Validate() error {
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return fmt.Errorf("%w: [trace].level: %w", ErrInvalid, err)
	}
	if _, err := trace.ParseFormat(c.Trace.Format); err != nil {
		return fmt.Errorf("%w: [trace].format: %w", ErrInvalid, err)
	}
	if c.Batch.Jobs < 0 {
		return fmt.Errorf("%w: [batch].jobs must be >= 0, got %d", ErrInvalid, c.Batch.Jobs)
	}
	if !isMode(c.Batch.UI) {
		return fmt.Errorf("%w: [batch].ui must be auto|on|off, got %q", ErrInvalid, c.Batch.UI)
	}
	if !isMode(c.Output.Color) {
		return fmt.Errorf("%w: [output].color must be auto|on|off, got %q", ErrInvalid, c.Output.Color)
	}
	return nil
}

func isMode(s string) bool {
	switch s {
	case "auto", "on", "off":
		return true
	default:
		return false
	}
}

func resolveRelative(base, p string) string {
	p = strings.TrimSpace(p)
	if p == "" || p == "-" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
