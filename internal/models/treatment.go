// Package models contains data structures used throughout the application
package models

import "time"

// Treatment represents a treatment entry from Nightscout (insulin, carbs, etc.)
type Treatment struct {
	EventType string  `json:"eventType,omitempty"`
	Date      int64   `json:"date"`              // Unix timestamp in milliseconds
	CreatedAt string  `json:"created_at,omitempty"`
	Insulin   float64 `json:"insulin,omitempty"` // Units of insulin
	Carbs     float64 `json:"carbs,omitempty"`   // Grams of carbohydrates
}

// Time returns the time of the treatment
func (t *Treatment) Time() time.Time {
	if t.Date > 0 {
		return time.UnixMilli(t.Date)
	}
	// Fallback to created_at
	parsed, err := time.Parse(time.RFC3339, t.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// HasInsulin returns true if this treatment includes insulin
func (t *Treatment) HasInsulin() bool {
	return t.Insulin > 0
}

// HasCarbs returns true if this treatment includes carbohydrates
func (t *Treatment) HasCarbs() bool {
	return t.Carbs > 0
}

// BasalSegment is a contiguous basal rate interval. Both fields are optional.
type BasalSegment struct {
	Absolute *float64 `json:"absolute,omitempty"` // Rate in U/h
	Duration *float64 `json:"duration,omitempty"` // Milliseconds
}

// NewBasalSegment builds a segment with both fields set
func NewBasalSegment(absolute float64, duration time.Duration) BasalSegment {
	ms := float64(duration / time.Millisecond)
	return BasalSegment{Absolute: &absolute, Duration: &ms}
}

// HasAbsolute returns true if the segment carries a non-zero rate
func (b *BasalSegment) HasAbsolute() bool {
	return b.Absolute != nil && *b.Absolute != 0
}

// HasDuration returns true if the segment carries a non-zero duration
func (b *BasalSegment) HasDuration() bool {
	return b.Duration != nil && *b.Duration != 0
}

// Rate returns the absolute rate, or 0 when missing
func (b *BasalSegment) Rate() float64 {
	if b.Absolute == nil {
		return 0
	}
	return *b.Absolute
}

// DurationMs returns the duration in milliseconds, or 0 when missing
func (b *BasalSegment) DurationMs() float64 {
	if b.Duration == nil {
		return 0
	}
	return *b.Duration
}
