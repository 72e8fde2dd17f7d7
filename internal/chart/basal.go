package chart

import (
	"math"

	"github.com/mrcode/nightscout-watchface/internal/models"
	"github.com/samber/lo"
)

// UpdateBasals lays basal segments out as bottom-anchored bars, starting at
// "now" and stacking each following segment further left. Segment i is drawn
// into basal element i.
func (r *Renderer) UpdateBasals(segments []models.BasalSegment, settings models.RenderSettings) error {
	r.logger.Debug("Updating basals", "segments", len(segments), "pool", len(r.elements.Basals))

	pool := r.elements.Basals
	for _, bar := range pool {
		bar.SetVisible(false)
		bar.SetFill(r.palette.Basal)
	}

	if err := r.checkSettings("basals", settings); err != nil {
		return err
	}
	frame := r.Frame(settings)

	maxRate := lo.Max(lo.FilterMap(segments, func(b models.BasalSegment, _ int) (float64, bool) {
		return b.Rate(), b.HasAbsolute()
	}))

	totalWidth := 0.0
	for i := 0; i < min(len(segments), len(pool)); i++ {
		bar, seg := pool[i], &segments[i]
		if !seg.HasDuration() {
			continue
		}

		width := frame.PixelsPerInterval * seg.DurationMs() / intervalMs
		x := frame.OriginX - totalWidth

		totalWidth += width
		if totalWidth >= frame.OriginX {
			// Nothing past this point would be on screen
			break
		}

		height := basalHeight(seg.Rate(), maxRate)
		bar.SetSize(width, height)
		bar.SetPosition(x, frame.Height-height)
		bar.SetVisible(x >= leftMargin)
	}

	return nil
}

// basalHeight scales a rate against the largest rate in the batch.
// A zero or negative maximum yields a flat bar.
func basalHeight(rate, maxRate float64) float64 {
	if maxRate <= 0 {
		return 0
	}
	h := basalMaxHeight * math.Max(0, rate/maxRate)
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	return h
}
