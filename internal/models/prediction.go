// Package models contains data structures used throughout the application
package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// PredictionKind names an OpenAPS prediction curve
type PredictionKind string

const (
	KindIOB  PredictionKind = "IOB"
	KindCOB  PredictionKind = "COB"
	KindACOB PredictionKind = "ACOB"
	KindZT   PredictionKind = "ZT"
	KindUAM  PredictionKind = "UAM"
)

// PredictionKinds is the order in which prediction series are drawn
var PredictionKinds = []PredictionKind{KindIOB, KindCOB, KindACOB, KindZT, KindUAM}

// IsKnown returns true for kinds the chart knows how to colour
func (k PredictionKind) IsKnown() bool {
	for _, known := range PredictionKinds {
		if k == known {
			return true
		}
	}
	return false
}

// PredictionInterval is the spacing between consecutive predicted values
const PredictionInterval = 5 * time.Minute

// Predictions holds forward-projected glucose curves sharing one anchor.
// Series[k][i] is the value at Anchor + i*PredictionInterval.
type Predictions struct {
	Anchor time.Time
	Series map[PredictionKind][]float64
}

// HasAnchor returns true if the anchor instant is known
func (p *Predictions) HasAnchor() bool {
	return p != nil && !p.Anchor.IsZero()
}

// UnmarshalJSON decodes the companion layout: a "moment" key holding the
// anchor and one numeric array per prediction kind.
func (p *Predictions) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.Series = make(map[PredictionKind][]float64, len(raw))
	for key, value := range raw {
		if key == "moment" {
			anchor, err := ParseInstant(value)
			if err != nil {
				return fmt.Errorf("parsing moment: %w", err)
			}
			p.Anchor = anchor
			continue
		}

		var values []*float64
		if err := json.Unmarshal(value, &values); err != nil {
			// Not a series (e.g. metadata); ignore it
			continue
		}
		series := make([]float64, len(values))
		for i, v := range values {
			if v != nil {
				series[i] = *v
			}
		}
		p.Series[PredictionKind(key)] = series
	}
	return nil
}

// MarshalJSON encodes the companion layout
func (p Predictions) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Series)+1)
	for kind, series := range p.Series {
		out[string(kind)] = series
	}
	if !p.Anchor.IsZero() {
		out["moment"] = p.Anchor.Format(time.RFC3339Nano)
	}
	return json.Marshal(out)
}

// ParseInstant accepts either an RFC3339 string or Unix milliseconds
func ParseInstant(data json.RawMessage) (time.Time, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return time.Time{}, nil
	}

	var ms int64
	if err := json.Unmarshal(data, &ms); err == nil {
		return time.UnixMilli(ms), nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return time.Time{}, err
	}
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
