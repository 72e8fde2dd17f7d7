package chart

import "github.com/mrcode/nightscout-watchface/internal/models"

// Palette holds the fill colours (CSS hex) used by the renderer
type Palette struct {
	Basal       string                           `yaml:"basal"`
	InRange     string                           `yaml:"in_range"`
	OutOfRange  string                           `yaml:"out_of_range"`
	Carbs       string                           `yaml:"carbs"`
	Insulin     string                           `yaml:"insulin"`
	Predictions map[models.PredictionKind]string `yaml:"predictions"`
}

// DefaultPalette returns the stock colours
func DefaultPalette() Palette {
	return Palette{
		Basal:      "#3366CC",
		InRange:    "#008000", // Green
		OutOfRange: "#FF0000", // Red
		Carbs:      "#008000",
		Insulin:    "#FF0000",
		Predictions: map[models.PredictionKind]string{
			models.KindIOB:  "#1e88e5",
			models.KindCOB:  "#FB8C00FF",
			models.KindACOB: "#FB8C0080",
			models.KindZT:   "#00d2d2",
			models.KindUAM:  "#c9bd60",
		},
	}
}

// PredictionColor returns the colour of a series, or "" if it has none
func (p Palette) PredictionColor(kind models.PredictionKind) string {
	if !kind.IsKnown() {
		return ""
	}
	return p.Predictions[kind]
}
