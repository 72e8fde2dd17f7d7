// Package models contains data structures used throughout the application
package models

import "time"

// SGVFloor is the lowest glucose value the chart can display (mg/dL).
const SGVFloor = 36

// Sample represents a single glucose reading handed to the chart
type Sample struct {
	SGV  float64 `json:"sgv"`  // Sensor glucose value in mg/dL
	Date int64   `json:"date"` // Unix timestamp in milliseconds
}

// Time returns the time of the sample
func (s *Sample) Time() time.Time {
	return time.UnixMilli(s.Date)
}

// MinutesAgo returns how many minutes before now the sample was taken.
// Future samples yield a negative value.
func (s *Sample) MinutesAgo(now time.Time) float64 {
	return float64(now.UnixMilli()-s.Date) / float64(time.Minute/time.Millisecond)
}

// IsOutOfRange reports whether the value sits on or beyond either threshold
func (s *Sample) IsOutOfRange(settings RenderSettings) bool {
	return s.SGV >= settings.HighThreshold || s.SGV <= settings.LowThreshold
}

// Snapshot is one batch of already-parsed chart input
type Snapshot struct {
	Samples     []Sample       `json:"BGD"`
	Predictions *Predictions   `json:"openapsPreds,omitempty"`
	Treatments  []Treatment    `json:"treatments"`
	Basals      []BasalSegment `json:"basals"`
}
