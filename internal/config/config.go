package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gobuffalo/envy"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the path to the viewer config file, relative to the process working directory.
const DefaultPath = "config/viewer.yaml"

// ModeEnvVar names the environment variable that overrides Config.Mode.
const ModeEnvVar = "APP_ENV"

// ErrInvalidMode is returned when a mode string is neither development nor production.
var ErrInvalidMode = errors.New("invalid mode")

// Mode selects whether development-only features are available.
// Development loads the debug layer and honors the overlay toggle key;
// production does neither.
type Mode string

const (
	Development Mode = "development"
	Production  Mode = "production"
)

// ParseMode parses s case-insensitively. An empty string yields Production.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(Production), "prod":
		return Production, nil
	case string(Development), "dev":
		return Development, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// IsDevelopment reports whether m is Development.
func (m Mode) IsDevelopment() bool { return m == Development }

// Window configures the drawable surface.
type Window struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Canvas    string `yaml:"canvas"`
	Antialias bool   `yaml:"antialias"`
	TargetFPS int    `yaml:"target_fps"`
}

// Material configures the remote material request.
// A zero Timeout means the request is never cut short.
type Material struct {
	Server  string        `yaml:"server"`
	Snippet string        `yaml:"snippet"`
	Name    string        `yaml:"name"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// Debug holds debug overlay preferences.
type Debug struct {
	EmbedMode bool `yaml:"embed_mode"`
	ShowFPS   bool `yaml:"show_fps"`
	ShowMem   bool `yaml:"show_mem"`
	LogLines  int  `yaml:"log_lines"`
	// CSS optionally replaces the built-in overlay stylesheet.
	CSS string `yaml:"css,omitempty"`
}

// Log configures where log output is appended.
type Log struct {
	File string `yaml:"file"`
}

// Headless configures the windowless runner.
type Headless struct {
	Hz int `yaml:"hz"`
}

// Config is the full viewer configuration.
type Config struct {
	Mode     Mode     `yaml:"mode"`
	Window   Window   `yaml:"window"`
	Material Material `yaml:"material"`
	Debug    Debug    `yaml:"debug"`
	Log      Log      `yaml:"log"`
	Headless Headless `yaml:"headless"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Mode: Production,
		Window: Window{
			Title:     "Sphere Viewer",
			Width:     1280,
			Height:    720,
			Canvas:    "app",
			Antialias: true,
			TargetFPS: 60,
		},
		Material: Material{
			Server:  "https://snippet.babylonjs.com",
			Snippet: "M77M3E#9",
			Name:    "NodeMaterial",
		},
		Debug: Debug{
			EmbedMode: true,
			ShowFPS:   true,
			ShowMem:   true,
			LogLines:  8,
		},
		Log:      Log{File: "logs/viewer.log"},
		Headless: Headless{Hz: 60},
	}
}

// Load reads the config from path. A missing file yields Default() without error;
// fields absent from the file keep their default values.
// The APP_ENV environment variable, when set, overrides the file's mode.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Default(), fmt.Errorf("config: %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	mode, err := ParseMode(string(cfg.Mode))
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	cfg.Mode = mode
	cfg.fill()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	v := envy.Get(ModeEnvVar, "")
	if v == "" {
		return nil
	}
	mode, err := ParseMode(v)
	if err != nil {
		return fmt.Errorf("config: %s: %w", ModeEnvVar, err)
	}
	c.Mode = mode
	return nil
}

// fill replaces zero values that would leave the viewer unusable.
func (c *Config) fill() {
	def := Default()
	if c.Window.Canvas == "" {
		c.Window.Canvas = def.Window.Canvas
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		c.Window.Width, c.Window.Height = def.Window.Width, def.Window.Height
	}
	if c.Material.Server == "" {
		c.Material.Server = def.Material.Server
	}
	if c.Material.Name == "" {
		c.Material.Name = def.Material.Name
	}
	if c.Headless.Hz <= 0 {
		c.Headless.Hz = def.Headless.Hz
	}
	if c.Debug.LogLines < 0 {
		c.Debug.LogLines = 0
	}
}

// Save writes cfg to path as YAML, creating the parent directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
