// Package preview is a software host for the chart. It owns in-memory element
// pools sized from the config and rasterizes their state with gg.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/mrcode/nightscout-watchface/internal/chart"
	"github.com/mrcode/nightscout-watchface/internal/config"
	"github.com/mrcode/nightscout-watchface/internal/display"
	"github.com/mrcode/nightscout-watchface/internal/models"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	labelMargin   = 36 // Matches the chart's left margin
	labelFontSize = 10
	lineColor     = "#808080"
	labelColor    = "#9ca3af"
)

var background = color.Black

// Scene is a chart bound to in-memory elements
type Scene struct {
	cfg      *config.Config
	renderer *chart.Renderer
	width    float64
	height   float64
	labels   font.Face // nil when the font could not be loaded

	SampleDots     []*display.Rect
	PredictionDots []*display.Rect
	Treatments     []*display.Rect
	Basals         []*display.Rect
	HighLine       *display.HLine
	LowLine        *display.HLine
}

// NewScene allocates the element pools described by cfg and binds a renderer
// to them. A nil logger keeps the renderer's default.
func NewScene(cfg *config.Config, logger *log.Logger) *Scene {
	surface := display.StaticSurface{Width: cfg.Display.Width, Height: cfg.Display.Height}
	width, height := display.ScreenSize(surface)

	s := &Scene{
		cfg:      cfg,
		width:    width,
		height:   height,
		HighLine: &display.HLine{},
		LowLine:  &display.HLine{},
	}

	dot := 2 * cfg.DotRadius
	var elements chart.Elements
	elements.SampleDots, s.SampleDots = display.NewRectPool(cfg.Pools.SampleDots, dot, dot, cfg.Palette.InRange)
	elements.PredictionDots, s.PredictionDots = display.NewRectPool(cfg.Pools.PredictionDots, dot, dot, "")
	elements.Treatments, s.Treatments = display.NewRectPool(cfg.Pools.Treatments, cfg.TreatmentWidth, 0, cfg.Palette.Carbs)
	elements.Basals, s.Basals = display.NewRectPool(cfg.Pools.Basals, 0, 0, cfg.Palette.Basal)
	elements.HighLine = s.HighLine
	elements.LowLine = s.LowLine

	s.renderer = chart.New(surface, elements, cfg.RendererOptions(logger)...)

	if face, err := loadFont(labelFontSize); err == nil {
		s.labels = face
	} else if logger != nil {
		logger.Warn("Threshold labels disabled", "error", err)
	}
	return s
}

// Size returns the raster size in pixels
func (s *Scene) Size() (width, height int) {
	return int(s.width), int(s.height)
}

// Render runs a full chart pass with the configured settings
func (s *Scene) Render(snapshot *models.Snapshot, now time.Time) error {
	return s.renderer.Render(snapshot, s.cfg.Chart, now)
}

// Image rasterizes the current element state
func (s *Scene) Image() image.Image {
	return s.draw().Image()
}

// EncodePNG writes the current element state as a PNG
func (s *Scene) EncodePNG(w io.Writer) error {
	if err := s.draw().EncodePNG(w); err != nil {
		return fmt.Errorf("encoding preview: %w", err)
	}
	return nil
}

func (s *Scene) draw() *gg.Context {
	w, h := s.Size()
	dc := gg.NewContext(w, h)

	dc.SetColor(background)
	dc.Clear()

	// Bars first so dots stay on top
	for _, r := range display.Visible(s.Basals) {
		if setFill(dc, r.Fill) {
			dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
			dc.Fill()
		}
	}
	for _, r := range display.Visible(s.Treatments) {
		if setFill(dc, r.Fill) {
			dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
			dc.Fill()
		}
	}

	s.drawThreshold(dc, s.HighLine, s.cfg.Chart.HighThreshold)
	s.drawThreshold(dc, s.LowLine, s.cfg.Chart.LowThreshold)

	for _, group := range [][]*display.Rect{s.PredictionDots, s.SampleDots} {
		for _, r := range display.Visible(group) {
			if setFill(dc, r.Fill) {
				dc.DrawCircle(r.X, r.Y, s.cfg.DotRadius)
				dc.Fill()
			}
		}
	}

	return dc
}

// drawThreshold strokes a guide line across the plot and labels it in the margin
func (s *Scene) drawThreshold(dc *gg.Context, line *display.HLine, value float64) {
	if !line.Visible {
		return
	}

	setFill(dc, lineColor)
	dc.SetLineWidth(1)
	dc.DrawLine(labelMargin, line.Y+0.5, s.width, line.Y+0.5)
	dc.Stroke()

	if s.labels == nil {
		return
	}
	dc.SetFontFace(s.labels)
	setFill(dc, labelColor)
	dc.DrawStringAnchored(fmt.Sprintf("%.0f", value), labelMargin-3, line.Y, 1, 0.5)
}

// loadFont parses the embedded Go font at the given size
func loadFont(size float64) (font.Face, error) {
	parsed, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing label font: %w", err)
	}
	return truetype.NewFace(parsed, &truetype.Options{Size: size}), nil
}

// setFill selects a hex colour, reporting false for values it cannot parse
func setFill(dc *gg.Context, hex string) bool {
	c, ok := parseHexColor(hex)
	if !ok {
		return false
	}
	dc.SetColor(c)
	return true
}

// parseHexColor parses #RRGGBB or #RRGGBBAA
func parseHexColor(hex string) (color.NRGBA, bool) {
	c := color.NRGBA{A: 0xff}
	switch {
	case len(hex) == 7 && hex[0] == '#':
		if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
			return c, false
		}
	case len(hex) == 9 && hex[0] == '#':
		if _, err := fmt.Sscanf(hex, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A); err != nil {
			return c, false
		}
	default:
		return c, false
	}
	return c, true
}
