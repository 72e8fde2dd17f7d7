package chart

import (
	"math"
	"time"

	"github.com/mrcode/nightscout-watchface/internal/models"
	"github.com/samber/lo"
)

// Frame is the pixel coordinate system shared by every pass of one render
type Frame struct {
	PixelsPerInterval float64 // Pixels spanned by one 5-minute interval
	OriginX           float64 // x-coordinate of "now"
	Width             float64
	Height            float64
}

// ComputeFrame derives the frame for the given settings and screen size.
// Settings that yield an empty time window produce a zero scale.
func ComputeFrame(settings models.RenderSettings, width, height float64) Frame {
	frame := Frame{Width: width, Height: height}

	hours := settings.CGMHours + settings.PredictionHours
	intervals := settings.TotalMinutes() / intervalMinutes
	if hours <= 0 || intervals <= 0 {
		return frame
	}

	frame.PixelsPerInterval = width / intervals
	frame.OriginX = math.Floor(width * settings.CGMHours / hours)
	return frame
}

// X maps an instant onto the horizontal axis
func (f Frame) X(now, at time.Time) float64 {
	return f.OriginX - f.PixelsPerInterval*intervalsAgo(now, at)
}

// intervalsAgo returns how many 5-minute intervals lie between at and now
func intervalsAgo(now, at time.Time) float64 {
	return float64(now.Sub(at)) / float64(interval)
}

// yScale maps glucose values onto the fixed-height glucose band
type yScale struct {
	high float64
	span float64
}

func newYScale(samples []models.Sample) yScale {
	// Non-finite readings are ignored; the maximum never drops below zero.
	high := math.Max(0, lo.Max(lo.FilterMap(samples, func(s models.Sample, _ int) (float64, bool) {
		return s.SGV, isFinite(s.SGV)
	})))
	return yScale{high: high, span: high - models.SGVFloor}
}

// Y returns the band row for v; higher values sit closer to the top.
// A band with no span, or a non-finite value, lands on the top row.
func (s yScale) Y(v float64) float64 {
	if s.span <= 0 || !isFinite(s.span) || !isFinite(v) {
		return 1
	}
	r := (v - models.SGVFloor) / s.span
	return math.Floor(glucoseHeight*(1-r)) + 1
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
