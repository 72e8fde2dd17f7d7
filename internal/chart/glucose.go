package chart

import (
	"math"
	"time"

	"github.com/mrcode/nightscout-watchface/internal/display"
	"github.com/mrcode/nightscout-watchface/internal/models"
)

// Update draws glucose samples, prediction curves and the threshold lines.
// Sample i is drawn into sample dot i; prediction points share one pool that
// is consumed series by series.
func (r *Renderer) Update(samples []models.Sample, predictions *models.Predictions, settings models.RenderSettings, now time.Time) error {
	r.logger.Debug("Updating glucose dots", "samples", len(samples), "pool", len(r.elements.SampleDots))

	dots := r.elements.SampleDots
	dots.HideAll()
	r.elements.PredictionDots.HideAll()

	if err := r.checkSettings("glucose", settings); err != nil {
		r.setLine(r.elements.HighLine, 0, false)
		r.setLine(r.elements.LowLine, 0, false)
		return err
	}
	frame := r.Frame(settings)
	scale := newYScale(samples)

	window := settings.CGMHours * 60
	for i := 0; i < min(len(samples), len(dots)); i++ {
		dot, s := dots[i], &samples[i]

		minutesAgo := s.MinutesAgo(now)
		if minutesAgo > window {
			continue
		}

		x := math.Floor(frame.OriginX - minutesAgo/intervalMinutes*frame.PixelsPerInterval)
		dot.SetPosition(x, scale.Y(s.SGV))

		fill := r.palette.InRange
		if s.IsOutOfRange(settings) {
			fill = r.palette.OutOfRange
		}
		dot.SetFill(fill)
		dot.SetVisible(x >= leftMargin)
	}

	r.drawPredictions(predictions, settings, frame, scale, now)

	highY := scale.Y(settings.HighThreshold)
	lowY := scale.Y(settings.LowThreshold)
	r.setLine(r.elements.HighLine, highY, highY >= 0)
	r.setLine(r.elements.LowLine, lowY, lowY >= 0)

	return nil
}

func (r *Renderer) drawPredictions(predictions *models.Predictions, settings models.RenderSettings, frame Frame, scale yScale, now time.Time) {
	if predictions == nil || len(predictions.Series) == 0 || settings.PredictionHours <= 0 {
		return
	}
	if !predictions.HasAnchor() {
		r.logger.Debug("No prediction anchor")
		return
	}

	r.logger.Debug("Drawing predictions", "series", len(predictions.Series), "pool", len(r.elements.PredictionDots))

	startX := frame.OriginX - intervalsAgo(now, predictions.Anchor)*frame.PixelsPerInterval
	perSeries := int(math.Ceil(settings.PredictionHours * pointsPerHour))
	pool := r.elements.PredictionDots

	next := 0
	for _, kind := range models.PredictionKinds {
		series, ok := predictions.Series[kind]
		if !ok {
			continue
		}
		fill := r.palette.PredictionColor(kind)
		if fill == "" {
			continue
		}

		for i := 0; i < perSeries; i++ {
			dot := pool.At(next)
			if dot == nil {
				r.logger.Debug("Prediction pool exhausted", "series", kind)
				return
			}
			next++

			if i >= len(series) || series[i] == 0 || math.IsNaN(series[i]) {
				continue
			}

			x := startX + float64(i)*frame.PixelsPerInterval
			dot.SetPosition(x, math.Max(0, scale.Y(series[i])))
			dot.SetFill(fill)
			dot.SetVisible(x >= leftMargin)
		}
	}
}

func (r *Renderer) setLine(line display.Line, y float64, visible bool) {
	if line == nil {
		return
	}
	line.SetLevel(y)
	line.SetVisible(visible)
}
