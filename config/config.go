package config

import (
	"errors"
	"fmt"
	"os"

	canvas "github.com/JusticeDevHub/canvas-engine"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
)

type Config struct {
	Viewport ViewportConfig `toml:"viewport"`
	Objects  ObjectsConfig  `toml:"objects"`
	Frame    FrameConfig    `toml:"frame"`
	Logging  LoggingConfig  `toml:"logging"`
	Debug    DebugConfig    `toml:"debug"`
	Paths    PathsConfig    `toml:"paths"`
}

type ViewportConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type ObjectsConfig struct {
	DefaultWidth  float64 `toml:"default_width"`
	DefaultHeight float64 `toml:"default_height"`
}

type FrameConfig struct {
	TPS     int  `toml:"tps"`
	ShowFPS bool `toml:"show_fps"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type DebugConfig struct {
	Enabled bool `toml:"enabled"`
}

// PathsConfig points at optional scene content. Empty paths are skipped.
type PathsConfig struct {
	Layout      string `toml:"layout"`
	Scripts     string `toml:"scripts"`
	InputScript string `toml:"input_script"`
	Screenshots string `toml:"screenshots"`
}

// Load reads the TOML file at path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Defaults returns the configuration used for any key a file leaves out.
func Defaults() *Config {
	return &Config{
		Viewport: ViewportConfig{
			Width:  800,
			Height: 600,
			Title:  "canvas",
		},
		Objects: ObjectsConfig{
			DefaultWidth:  50,
			DefaultHeight: 50,
		},
		Frame: FrameConfig{
			TPS: 60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Paths: PathsConfig{
			Screenshots: "screenshots",
		},
	}
}

// Validate reports the first setting that cannot drive a scene.
func (c *Config) Validate() error {
	var errs []error
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		errs = append(errs, fmt.Errorf("viewport size %dx%d must be positive",
			c.Viewport.Width, c.Viewport.Height))
	}
	if c.Objects.DefaultWidth < 0 || c.Objects.DefaultHeight < 0 {
		errs = append(errs, fmt.Errorf("object default size %vx%v must not be negative",
			c.Objects.DefaultWidth, c.Objects.DefaultHeight))
	}
	if c.Frame.TPS <= 0 {
		errs = append(errs, fmt.Errorf("frame tps %d must be positive", c.Frame.TPS))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging format %q must be json or console", c.Logging.Format))
	}
	return errors.Join(errs...)
}

// SceneOptions converts the object and debug settings into scene options.
func (c *Config) SceneOptions(log *zap.Logger) []canvas.Option {
	return []canvas.Option{
		canvas.WithLogger(log),
		canvas.WithDefaultSize(c.Objects.DefaultWidth, c.Objects.DefaultHeight),
		canvas.WithDebug(c.Debug.Enabled),
	}
}
