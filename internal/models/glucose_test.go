package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSample_MinutesAgo(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)

	tests := []struct {
		name     string
		age      time.Duration
		expected float64
	}{
		{"Now", 0, 0},
		{"Five minutes", 5 * time.Minute, 5},
		{"Ninety seconds", 90 * time.Second, 1.5},
		{"Future", -10 * time.Minute, -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Sample{SGV: 100, Date: now.Add(-tt.age).UnixMilli()}
			assert.InDelta(t, tt.expected, s.MinutesAgo(now), 1e-9)
		})
	}
}

func TestSample_IsOutOfRange(t *testing.T) {
	settings := DefaultRenderSettings()

	tests := []struct {
		sgv      float64
		expected bool
	}{
		{69, true},
		{70, true},
		{71, false},
		{179, false},
		{180, true},
		{250, true},
	}

	for _, tt := range tests {
		s := Sample{SGV: tt.sgv}
		assert.Equal(t, tt.expected, s.IsOutOfRange(settings), "sgv %v", tt.sgv)
	}
}

func TestSnapshot_UnmarshalJSON(t *testing.T) {
	payload := `{
		"BGD": [{"sgv": 120, "date": 1700000000000}, {"sgv": 131, "date": 1699999700000}],
		"openapsPreds": {"moment": "2023-11-14T22:13:20Z", "IOB": [120, 118, null], "COB": [121], "reason": "n/a"},
		"treatments": [{"date": 1699999000000, "carbs": 30}],
		"basals": [{"absolute": 0.8, "duration": 1800000}, {"duration": 600000}]
	}`

	var snap Snapshot
	require.NoError(t, json.Unmarshal([]byte(payload), &snap))

	require.Len(t, snap.Samples, 2)
	assert.Equal(t, 131.0, snap.Samples[1].SGV)

	require.NotNil(t, snap.Predictions)
	assert.True(t, snap.Predictions.HasAnchor())
	assert.Equal(t, int64(1700000000000), snap.Predictions.Anchor.UnixMilli())
	assert.Equal(t, []float64{120, 118, 0}, snap.Predictions.Series[KindIOB])
	assert.Equal(t, []float64{121}, snap.Predictions.Series[KindCOB])
	assert.NotContains(t, snap.Predictions.Series, PredictionKind("reason"))

	require.Len(t, snap.Treatments, 1)
	assert.True(t, snap.Treatments[0].HasCarbs())
	assert.False(t, snap.Treatments[0].HasInsulin())

	require.Len(t, snap.Basals, 2)
	assert.True(t, snap.Basals[0].HasAbsolute())
	assert.Equal(t, 1800000.0, snap.Basals[0].DurationMs())
	assert.False(t, snap.Basals[1].HasAbsolute())
	assert.Equal(t, 0.0, snap.Basals[1].Rate())
}

func TestPredictions_MomentAsMillis(t *testing.T) {
	var p Predictions
	require.NoError(t, json.Unmarshal([]byte(`{"moment": 1700000000000, "ZT": [90]}`), &p))
	assert.Equal(t, time.UnixMilli(1700000000000), p.Anchor)

	var missing Predictions
	require.NoError(t, json.Unmarshal([]byte(`{"UAM": [90]}`), &missing))
	assert.False(t, missing.HasAnchor())
}

func TestPredictionKind_IsKnown(t *testing.T) {
	for _, k := range PredictionKinds {
		assert.True(t, k.IsKnown(), string(k))
	}
	assert.False(t, PredictionKind("moment").IsKnown())
	assert.False(t, PredictionKind("iob").IsKnown())
}
