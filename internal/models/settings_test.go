package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRenderSettings(t *testing.T) {
	settings := DefaultRenderSettings()

	assert.Equal(t, 3.0, settings.CGMHours)
	assert.Equal(t, 1.0, settings.PredictionHours)
	assert.Equal(t, 180.0, settings.HighThreshold)
	assert.Equal(t, 70.0, settings.LowThreshold)
	assert.Equal(t, 240.0, settings.TotalMinutes())
	assert.NoError(t, settings.Validate())
}

func TestRenderSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RenderSettings)
		wantErr bool
	}{
		{"Defaults", func(*RenderSettings) {}, false},
		{"No predictions", func(s *RenderSettings) { s.PredictionHours = 0 }, false},
		{"Zero history", func(s *RenderSettings) { s.CGMHours = 0 }, true},
		{"Negative predictions", func(s *RenderSettings) { s.PredictionHours = -1 }, true},
		{"NaN threshold", func(s *RenderSettings) { s.HighThreshold = math.NaN() }, true},
		{"Infinite history", func(s *RenderSettings) { s.CGMHours = math.Inf(1) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultRenderSettings()
			tt.mutate(&settings)
			err := settings.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBasalSegment_Presence(t *testing.T) {
	seg := NewBasalSegment(1.2, 15*time.Minute)
	assert.True(t, seg.HasAbsolute())
	assert.True(t, seg.HasDuration())
	assert.Equal(t, 900000.0, seg.DurationMs())

	zero := 0.0
	empty := BasalSegment{Absolute: &zero}
	assert.False(t, empty.HasAbsolute())
	assert.False(t, empty.HasDuration())
	assert.Equal(t, 0.0, empty.DurationMs())
}

func TestTreatment_Time(t *testing.T) {
	withDate := Treatment{Date: 1700000000000}
	assert.Equal(t, time.UnixMilli(1700000000000), withDate.Time())

	withCreatedAt := Treatment{CreatedAt: "2023-11-14T22:13:20Z"}
	assert.Equal(t, int64(1700000000000), withCreatedAt.Time().UnixMilli())

	assert.True(t, (&Treatment{CreatedAt: "garbage"}).Time().IsZero())
}
