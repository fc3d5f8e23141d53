package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ToothStatus string

const (
	ToothStatusHealthy ToothStatus = "Healthy"
	ToothStatusDecay   ToothStatus = "Decay"
	ToothStatusFilled  ToothStatus = "Filled"
	ToothStatusMissing ToothStatus = "Missing"
	ToothStatusCrowned ToothStatus = "Crowned"
	ToothStatusBridge  ToothStatus = "Bridge"
	ToothStatusImplant ToothStatus = "Implant"
)

var toothStatuses = map[ToothStatus]bool{
	ToothStatusHealthy: true,
	ToothStatusDecay:   true,
	ToothStatusFilled:  true,
	ToothStatusMissing: true,
	ToothStatusCrowned: true,
	ToothStatusBridge:  true,
	ToothStatusImplant: true,
}

func (s ToothStatus) Valid() bool {
	return toothStatuses[s]
}

// ToothEvent is one entry in a tooth's treatment history. Events are
// append-only: they are never edited, deleted or reordered once recorded.
type ToothEvent struct {
	ID     uuid.UUID   `json:"id"`
	Status ToothStatus `json:"status"`
	Note   string      `json:"note"`
	Date   string      `json:"date"` // calendar date, YYYY-MM-DD
}

// Chart maps an FDI tooth code (11..18, 21..28, 31..38, 41..48) to that
// tooth's treatment history, oldest first. A missing key means the tooth has
// no recorded events and its derived status is Healthy.
type Chart map[string][]ToothEvent

var ErrInvalidTooth = fmt.Errorf("invalid FDI tooth code")

// ValidToothID reports whether id is one of the 32 FDI tooth codes:
// quadrant digit 1-4 followed by position digit 1-8.
func ValidToothID(id string) bool {
	if len(id) != 2 {
		return false
	}
	q, p := id[0], id[1]
	return q >= '1' && q <= '4' && p >= '1' && p <= '8'
}

// AppendEvent returns a new Chart with one event appended to the given
// tooth's history. The receiver is never mutated: untouched teeth share
// their slices with the original, the appended tooth gets a fresh slice.
func (c Chart) AppendEvent(toothID string, status ToothStatus, note string, now time.Time) (Chart, error) {
	if !ValidToothID(toothID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTooth, toothID)
	}
	if !status.Valid() {
		return nil, fmt.Errorf("invalid tooth status %q", status)
	}

	next := make(Chart, len(c)+1)
	for id, events := range c {
		next[id] = events
	}

	prior := c[toothID]
	history := make([]ToothEvent, len(prior), len(prior)+1)
	copy(history, prior)
	next[toothID] = append(history, ToothEvent{
		ID:     uuid.New(),
		Status: status,
		Note:   note,
		Date:   now.Format("2006-01-02"),
	})

	return next, nil
}

// CurrentStatus derives a tooth's present clinical status from the last
// event in its history, or Healthy when there is none.
func (c Chart) CurrentStatus(toothID string) ToothStatus {
	events := c[toothID]
	if len(events) == 0 {
		return ToothStatusHealthy
	}
	return events[len(events)-1].Status
}

// History returns the recorded events for a tooth, oldest first.
func (c Chart) History(toothID string) []ToothEvent {
	return c[toothID]
}

// Value serializes the chart for the JSONB column.
func (c Chart) Value() (driver.Value, error) {
	if c == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(c)
}

// Scan deserializes the chart from the JSONB column.
func (c *Chart) Scan(src interface{}) error {
	if src == nil {
		*c = Chart{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported chart column type %T", src)
	}
	if len(data) == 0 {
		*c = Chart{}
		return nil
	}
	return json.Unmarshal(data, c)
}
