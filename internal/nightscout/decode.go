// Package nightscout decodes Nightscout API and companion payloads into chart
// input. It performs no network I/O; callers hand it response bodies.
package nightscout

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/mrcode/nightscout-watchface/internal/models"
)

const eventTempBasal = "Temp Basal"

// DecodeSnapshot parses the companion snapshot layout
// ({"BGD": [...], "openapsPreds": {...}, "treatments": [...], "basals": [...]}).
func DecodeSnapshot(body []byte) (*models.Snapshot, error) {
	var snap models.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	return &snap, nil
}

// entryRecord is one /api/v1/entries item
type entryRecord struct {
	SGV   *float64 `json:"sgv"`
	Date  int64    `json:"date"`
	Mills int64    `json:"mills"`
	Type  string   `json:"type"`
}

// DecodeEntries parses an entries response (array or single object) into
// samples ordered newest first. Entries without an sgv value are dropped.
func DecodeEntries(body []byte) ([]models.Sample, error) {
	var records []entryRecord
	if err := json.Unmarshal(body, &records); err != nil {
		// Current endpoint returns a single object
		var single entryRecord
		if err := json.Unmarshal(body, &single); err != nil {
			return nil, fmt.Errorf("parsing entries: %w", err)
		}
		records = []entryRecord{single}
	}

	samples := make([]models.Sample, 0, len(records))
	for _, r := range records {
		if r.SGV == nil || (r.Type != "" && r.Type != "sgv") {
			continue
		}
		date := r.Date
		if date == 0 {
			date = r.Mills
		}
		samples = append(samples, models.Sample{SGV: *r.SGV, Date: date})
	}

	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].Date > samples[j].Date
	})
	return samples, nil
}

// treatmentRecord is one /api/v1/treatments item
type treatmentRecord struct {
	EventType string   `json:"eventType"`
	Date      int64    `json:"date"`
	Mills     int64    `json:"mills"`
	CreatedAt string   `json:"created_at"`
	Insulin   *float64 `json:"insulin"`
	Carbs     *float64 `json:"carbs"`
	Absolute  *float64 `json:"absolute"`
	Rate      *float64 `json:"rate"`
	Duration  *float64 `json:"duration"` // Minutes
}

func (r *treatmentRecord) date() int64 {
	switch {
	case r.Date > 0:
		return r.Date
	case r.Mills > 0:
		return r.Mills
	}
	parsed, err := time.Parse(time.RFC3339, r.CreatedAt)
	if err != nil {
		return 0
	}
	return parsed.UnixMilli()
}

// DecodeTreatments parses a treatments response. Carb and insulin events
// become treatments; temp basal events become basal segments. Both results
// are ordered newest first, which is the order the chart lays basals out in.
func DecodeTreatments(body []byte) ([]models.Treatment, []models.BasalSegment, error) {
	var records []treatmentRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, nil, fmt.Errorf("parsing treatments: %w", err)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].date() > records[j].date()
	})

	var treatments []models.Treatment
	var basals []models.BasalSegment
	for i := range records {
		r := &records[i]

		if r.EventType == eventTempBasal {
			seg := models.BasalSegment{Absolute: r.Absolute}
			if seg.Absolute == nil {
				seg.Absolute = r.Rate
			}
			if r.Duration != nil {
				ms := *r.Duration * float64(time.Minute/time.Millisecond)
				seg.Duration = &ms
			}
			basals = append(basals, seg)
			continue
		}

		t := models.Treatment{
			EventType: r.EventType,
			Date:      r.date(),
			CreatedAt: r.CreatedAt,
		}
		if r.Carbs != nil {
			t.Carbs = *r.Carbs
		}
		if r.Insulin != nil {
			t.Insulin = *r.Insulin
		}
		if !t.HasCarbs() && !t.HasInsulin() {
			continue
		}
		treatments = append(treatments, t)
	}

	return treatments, basals, nil
}

// deviceStatusRecord is the part of a /api/v1/devicestatus item the chart uses
type deviceStatusRecord struct {
	OpenAPS *struct {
		Suggested *openAPSResult `json:"suggested"`
		Enacted   *openAPSResult `json:"enacted"`
	} `json:"openaps"`
}

type openAPSResult struct {
	Timestamp json.RawMessage       `json:"timestamp"`
	DeliverAt json.RawMessage       `json:"deliverAt"`
	PredBGs   map[string][]*float64 `json:"predBGs"`
}

// DecodeDeviceStatus extracts prediction curves from a devicestatus response.
// The first record carrying predBGs wins, enacted before suggested. It
// returns nil when no record has predictions.
func DecodeDeviceStatus(body []byte) (*models.Predictions, error) {
	var records []deviceStatusRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("parsing devicestatus: %w", err)
	}

	for _, rec := range records {
		if rec.OpenAPS == nil {
			continue
		}
		for _, result := range []*openAPSResult{rec.OpenAPS.Enacted, rec.OpenAPS.Suggested} {
			if result == nil || len(result.PredBGs) == 0 {
				continue
			}
			return result.predictions()
		}
	}
	return nil, nil
}

func (r *openAPSResult) predictions() (*models.Predictions, error) {
	anchorRaw := r.DeliverAt
	if len(anchorRaw) == 0 {
		anchorRaw = r.Timestamp
	}
	anchor, err := models.ParseInstant(anchorRaw)
	if err != nil {
		return nil, fmt.Errorf("parsing prediction anchor: %w", err)
	}

	preds := &models.Predictions{
		Anchor: anchor,
		Series: make(map[models.PredictionKind][]float64, len(r.PredBGs)),
	}
	for kind, values := range r.PredBGs {
		series := make([]float64, len(values))
		for i, v := range values {
			if v != nil {
				series[i] = *v
			}
		}
		preds.Series[models.PredictionKind(kind)] = series
	}
	return preds, nil
}
