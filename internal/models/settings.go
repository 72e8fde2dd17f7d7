// Package models contains data structures used throughout the application
package models

import (
	"errors"
	"fmt"
	"math"
)

// RenderSettings controls the chart's time window and alert lines.
// A fresh value is passed on every render call.
type RenderSettings struct {
	CGMHours        float64 `json:"cgmHours" yaml:"cgm_hours"`               // History shown left of "now"
	PredictionHours float64 `json:"predictionHours" yaml:"prediction_hours"` // Forecast shown right of "now"
	HighThreshold   float64 `json:"highThreshold" yaml:"high_threshold"`     // mg/dL
	LowThreshold    float64 `json:"lowThreshold" yaml:"low_threshold"`       // mg/dL
}

// DefaultRenderSettings returns settings with default values
func DefaultRenderSettings() RenderSettings {
	return RenderSettings{
		CGMHours:        3,
		PredictionHours: 1,
		HighThreshold:   180,
		LowThreshold:    70,
	}
}

// TotalMinutes returns the width of the visible window in minutes
func (s RenderSettings) TotalMinutes() float64 {
	return (s.CGMHours + s.PredictionHours) * 60
}

// Validate reports settings that cannot produce a finite frame
func (s RenderSettings) Validate() error {
	var errs []error
	for name, v := range map[string]float64{
		"cgmHours":        s.CGMHours,
		"predictionHours": s.PredictionHours,
		"highThreshold":   s.HighThreshold,
		"lowThreshold":    s.LowThreshold,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("%s is not finite", name))
		}
	}
	if s.CGMHours <= 0 {
		errs = append(errs, fmt.Errorf("cgmHours must be positive, got %v", s.CGMHours))
	}
	if s.PredictionHours < 0 {
		errs = append(errs, fmt.Errorf("predictionHours must not be negative, got %v", s.PredictionHours))
	}
	return errors.Join(errs...)
}
