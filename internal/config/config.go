// Package config loads the host-side configuration of the watchface chart
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/mrcode/nightscout-watchface/internal/chart"
	"github.com/mrcode/nightscout-watchface/internal/models"
	"gopkg.in/yaml.v3"
)

const appName = "nightscout-watchface"

// Config represents the application configuration.
type Config struct {
	Display        DisplayConfig         `yaml:"display"`
	Pools          PoolConfig            `yaml:"pools"`
	Chart          models.RenderSettings `yaml:"chart"`
	Palette        chart.Palette         `yaml:"palette"`
	TreatmentWidth float64               `yaml:"treatment_width"` // Pixels
	DotRadius      float64               `yaml:"dot_radius"`      // Pixels
	LogLevel       string                `yaml:"log_level"`
}

// DisplayConfig describes the host screen. Zero values fall back to 348x250.
type DisplayConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PoolConfig holds the number of pre-allocated elements per category.
type PoolConfig struct {
	SampleDots     int `yaml:"sample_dots"`
	PredictionDots int `yaml:"prediction_dots"`
	Treatments     int `yaml:"treatments"`
	Basals         int `yaml:"basals"`
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{Width: 348, Height: 250},
		Pools: PoolConfig{
			SampleDots:     48, // 4 hours of 5-minute readings
			PredictionDots: 72,
			Treatments:     30,
			Basals:         50,
		},
		Chart:          models.DefaultRenderSettings(),
		Palette:        chart.DefaultPalette(),
		TreatmentWidth: 3,
		DotRadius:      2,
		LogLevel:       "info",
	}
}

// DefaultPath returns the platform config file location
func DefaultPath() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, appName, "config.yaml"), nil
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename) //nolint:gosec // Path is chosen by the host, not remote input
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// ensureDefaults fills fields a partial file left empty.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.TreatmentWidth == 0 {
		c.TreatmentWidth = def.TreatmentWidth
	}
	if c.DotRadius == 0 {
		c.DotRadius = def.DotRadius
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}

	if c.Palette.Basal == "" {
		c.Palette.Basal = def.Palette.Basal
	}
	if c.Palette.InRange == "" {
		c.Palette.InRange = def.Palette.InRange
	}
	if c.Palette.OutOfRange == "" {
		c.Palette.OutOfRange = def.Palette.OutOfRange
	}
	if c.Palette.Carbs == "" {
		c.Palette.Carbs = def.Palette.Carbs
	}
	if c.Palette.Insulin == "" {
		c.Palette.Insulin = def.Palette.Insulin
	}
	if c.Palette.Predictions == nil {
		c.Palette.Predictions = def.Palette.Predictions
	}
}

// Validate reports values no renderer could work with.
func (c *Config) Validate() error {
	var errs []error

	if c.Display.Width < 0 || c.Display.Height < 0 {
		errs = append(errs, errors.New("display size must not be negative"))
	}
	if c.Pools.SampleDots < 0 || c.Pools.PredictionDots < 0 || c.Pools.Treatments < 0 || c.Pools.Basals < 0 {
		errs = append(errs, errors.New("pool sizes must not be negative"))
	}
	if err := c.Chart.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("chart: %w", err))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}

	return errors.Join(errs...)
}

// Logger builds a logger honouring the configured level
func (c *Config) Logger(w io.Writer) *log.Logger {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:  level,
		Prefix: appName,
	})
}

// RendererOptions returns the chart options described by this config
func (c *Config) RendererOptions(logger *log.Logger) []chart.Option {
	return []chart.Option{
		chart.WithPalette(c.Palette),
		chart.WithTreatmentWidth(c.TreatmentWidth),
		chart.WithLogger(logger),
	}
}
