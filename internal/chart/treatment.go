package chart

import (
	"time"

	"github.com/mrcode/nightscout-watchface/internal/models"
)

// UpdateTreatments draws carb and insulin events as bars above the basal band.
// Treatment i is drawn into treatment element i.
func (r *Renderer) UpdateTreatments(treatments []models.Treatment, settings models.RenderSettings, now time.Time) error {
	r.logger.Debug("Updating treatment bars", "treatments", len(treatments), "pool", len(r.elements.Treatments))

	pool := r.elements.Treatments
	pool.HideAll()

	if err := r.checkSettings("treatments", settings); err != nil {
		return err
	}
	frame := r.Frame(settings)

	for i := 0; i < min(len(treatments), len(pool)); i++ {
		bar, t := pool[i], &treatments[i]

		height, fill, ok := r.treatmentBar(t)
		if !ok {
			continue
		}

		x := frame.X(now, t.Time())
		bar.SetSize(r.treatmentWidth, height)
		bar.SetPosition(x, frame.Height-height-treatmentOffset)
		bar.SetFill(fill)
		bar.SetVisible(x >= leftMargin)
	}

	return nil
}

// treatmentBar returns the bar height and colour for a treatment.
// Insulin wins over carbs when both are logged.
func (r *Renderer) treatmentBar(t *models.Treatment) (height float64, fill string, ok bool) {
	if t.HasCarbs() {
		height, fill, ok = 10+t.Carbs/2, r.palette.Carbs, true
	}
	if t.HasInsulin() {
		height, fill, ok = 10+t.Insulin*5, r.palette.Insulin, true
	}
	return height, fill, ok
}
