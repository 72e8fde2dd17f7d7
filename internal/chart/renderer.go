// Package chart maps glucose, prediction, treatment and basal data onto the
// host's pre-allocated chart elements.
package chart

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mrcode/nightscout-watchface/internal/display"
	"github.com/mrcode/nightscout-watchface/internal/models"
)

const (
	interval        = 5 * time.Minute
	intervalMinutes = 5
	intervalMs      = float64(interval / time.Millisecond)

	leftMargin      = 36 // Reserved for axis labels
	basalMaxHeight  = 20
	treatmentOffset = 20 // Basal band below the treatment bars
	glucoseHeight   = 98
	pointsPerHour   = 12

	defaultTreatmentWidth = 3
)

// ErrInvalidSettings is returned when render settings cannot produce a frame
var ErrInvalidSettings = errors.New("invalid render settings")

// Elements bundles the host-owned element pools the renderer draws into
type Elements struct {
	SampleDots     display.Pool
	PredictionDots display.Pool
	Treatments     display.Pool
	Basals         display.Pool
	HighLine       display.Line
	LowLine        display.Line
}

// Renderer updates the chart elements from one data snapshot per call.
// It keeps no render state between calls and must not be used concurrently.
type Renderer struct {
	surface        display.Surface
	elements       Elements
	palette        Palette
	treatmentWidth float64
	logger         *log.Logger
}

// Option configures a Renderer
type Option func(*Renderer)

// WithPalette overrides the default colours
func WithPalette(p Palette) Option {
	return func(r *Renderer) {
		r.palette = p
	}
}

// WithLogger sets the logger used for pass tracing
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithTreatmentWidth sets the width of treatment bars in pixels
func WithTreatmentWidth(w float64) Option {
	return func(r *Renderer) {
		if w > 0 {
			r.treatmentWidth = w
		}
	}
}

// New creates a renderer bound to the given surface and elements
func New(surface display.Surface, elements Elements, opts ...Option) *Renderer {
	r := &Renderer{
		surface:        surface,
		elements:       elements,
		palette:        DefaultPalette(),
		treatmentWidth: defaultTreatmentWidth,
		logger:         log.Default().WithPrefix("chart"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Frame computes the coordinate frame for the current surface size
func (r *Renderer) Frame(settings models.RenderSettings) Frame {
	width, height := display.ScreenSize(r.surface)
	return ComputeFrame(settings, width, height)
}

// Render runs the basal, treatment and glucose passes in that order
func (r *Renderer) Render(snapshot *models.Snapshot, settings models.RenderSettings, now time.Time) error {
	if snapshot == nil {
		snapshot = &models.Snapshot{}
	}
	return errors.Join(
		r.UpdateBasals(snapshot.Basals, settings),
		r.UpdateTreatments(snapshot.Treatments, settings, now),
		r.Update(snapshot.Samples, snapshot.Predictions, settings, now),
	)
}

// checkSettings validates settings after a pass has hidden its elements
func (r *Renderer) checkSettings(pass string, settings models.RenderSettings) error {
	if err := settings.Validate(); err != nil {
		r.logger.Warn("Skipping pass", "pass", pass, "error", err)
		return fmt.Errorf("%s: %w: %w", pass, ErrInvalidSettings, err)
	}
	return nil
}
