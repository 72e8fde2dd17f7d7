package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/mrcode/nightscout-watchface/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NotNil(t, cfg)
	assert.Equal(t, 348.0, cfg.Display.Width)
	assert.Equal(t, 250.0, cfg.Display.Height)
	assert.Equal(t, 48, cfg.Pools.SampleDots)
	assert.Equal(t, 72, cfg.Pools.PredictionDots)
	assert.Equal(t, models.DefaultRenderSettings(), cfg.Chart)
	assert.Equal(t, "#3366CC", cfg.Palette.Basal)
	assert.Len(t, cfg.Palette.Predictions, len(models.PredictionKinds))
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileNotExists(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ValidYAML(t *testing.T) {
	path := writeConfig(t, `
display:
  width: 336
  height: 336
pools:
  sample_dots: 36
  prediction_dots: 60
  treatments: 10
  basals: 20
chart:
  cgm_hours: 2
  prediction_hours: 0.5
  high_threshold: 200
  low_threshold: 80
palette:
  in_range: "#4ade80"
  predictions:
    IOB: "#ffffff"
treatment_width: 4
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 336.0, cfg.Display.Width)
	assert.Equal(t, 36, cfg.Pools.SampleDots)
	assert.Equal(t, 20, cfg.Pools.Basals)
	assert.Equal(t, 2.0, cfg.Chart.CGMHours)
	assert.Equal(t, 0.5, cfg.Chart.PredictionHours)
	assert.Equal(t, 200.0, cfg.Chart.HighThreshold)
	assert.Equal(t, "#4ade80", cfg.Palette.InRange)
	assert.Equal(t, "#ffffff", cfg.Palette.Predictions[models.KindIOB])
	assert.Equal(t, "#00d2d2", cfg.Palette.Predictions[models.KindZT]) // default kept
	assert.Equal(t, "#FF0000", cfg.Palette.OutOfRange)                 // default kept
	assert.Equal(t, 4.0, cfg.TreatmentWidth)
	assert.Equal(t, 2.0, cfg.DotRadius)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_InvalidYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, "invalid: yaml: content: ["))
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		msg     string
	}{
		{"Zero history", "chart:\n  cgm_hours: 0\n", "chart:"},
		{"Negative pool", "pools:\n  basals: -1\n", "pool sizes must not be negative"},
		{"Negative display", "display:\n  width: -10\n", "display size must not be negative"},
		{"Unknown log level", "log_level: chatty\n", "log_level:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.content))
			assert.ErrorContains(t, err, tt.msg)
			assert.Nil(t, cfg)
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	t.Setenv("APPDATA", "/tmp/appdata")

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "config.yaml", filepath.Base(path))
	assert.Equal(t, appName, filepath.Base(filepath.Dir(path)))
}

func TestConfig_Logger(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "warn"

	var buf bytes.Buffer
	logger := cfg.Logger(&buf)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.Equal(t, log.WarnLevel, logger.GetLevel())
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestConfig_RendererOptions(t *testing.T) {
	opts := Default().RendererOptions(log.New(&bytes.Buffer{}))
	assert.Len(t, opts, 3)
}
