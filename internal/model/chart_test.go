package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noon = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func TestAppendEventDerivesLatestStatus(t *testing.T) {
	chart := Chart{}

	chart, err := chart.AppendEvent("11", ToothStatusDecay, "distal caries", noon)
	require.NoError(t, err)
	assert.Equal(t, ToothStatusDecay, chart.CurrentStatus("11"))

	chart, err = chart.AppendEvent("11", ToothStatusFilled, "composite filling", noon)
	require.NoError(t, err)

	assert.Equal(t, ToothStatusFilled, chart.CurrentStatus("11"))
	assert.Len(t, chart.History("11"), 2)
	assert.Empty(t, chart.History("12"))
	assert.Equal(t, ToothStatusHealthy, chart.CurrentStatus("12"))
}

func TestAppendEventDoesNotMutateReceiver(t *testing.T) {
	original := Chart{}
	original, err := original.AppendEvent("21", ToothStatusDecay, "", noon)
	require.NoError(t, err)

	updated, err := original.AppendEvent("21", ToothStatusFilled, "", noon)
	require.NoError(t, err)

	// The original chart still sees only the first event.
	assert.Len(t, original.History("21"), 1)
	assert.Equal(t, ToothStatusDecay, original.CurrentStatus("21"))
	assert.Len(t, updated.History("21"), 2)
}

func TestAppendEventIsolatesOtherTeeth(t *testing.T) {
	chart := Chart{}
	var err error
	chart, err = chart.AppendEvent("11", ToothStatusDecay, "", noon)
	require.NoError(t, err)
	chart, err = chart.AppendEvent("48", ToothStatusCrowned, "", noon)
	require.NoError(t, err)

	before := chart.History("11")
	chart, err = chart.AppendEvent("48", ToothStatusImplant, "", noon)
	require.NoError(t, err)

	assert.Equal(t, before, chart.History("11"))
	assert.Len(t, chart.History("48"), 2)
}

func TestAppendEventHistoryNeverShrinks(t *testing.T) {
	chart := Chart{}
	statuses := []ToothStatus{
		ToothStatusDecay, ToothStatusFilled, ToothStatusDecay,
		ToothStatusCrowned, ToothStatusMissing, ToothStatusImplant,
	}

	prev := 0
	for _, status := range statuses {
		var err error
		chart, err = chart.AppendEvent("36", status, "", noon)
		require.NoError(t, err)

		history := chart.History("36")
		assert.Greater(t, len(history), prev)
		assert.Equal(t, status, chart.CurrentStatus("36"))
		prev = len(history)
	}
}

func TestAppendEventRejectsInvalidToothCodes(t *testing.T) {
	chart := Chart{}
	for _, tooth := range []string{"", "1", "111", "09", "19", "51", "ab", "10", "40"} {
		_, err := chart.AppendEvent(tooth, ToothStatusDecay, "", noon)
		assert.ErrorIs(t, err, ErrInvalidTooth, "tooth %q", tooth)
	}
}

func TestValidToothID(t *testing.T) {
	valid := 0
	for q := byte('1'); q <= '4'; q++ {
		for p := byte('1'); p <= '8'; p++ {
			if ValidToothID(string([]byte{q, p})) {
				valid++
			}
		}
	}
	assert.Equal(t, 32, valid)
	assert.False(t, ValidToothID("55"))
	assert.False(t, ValidToothID("00"))
}

func TestAppendEventStampsEventDate(t *testing.T) {
	chart, err := Chart{}.AppendEvent("11", ToothStatusDecay, "note", noon)
	require.NoError(t, err)

	event := chart.History("11")[0]
	assert.Equal(t, "2024-03-10", event.Date)
	assert.Equal(t, "note", event.Note)
	assert.NotEqual(t, event.ID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestChartScanRoundTrip(t *testing.T) {
	chart, err := Chart{}.AppendEvent("25", ToothStatusBridge, "three-unit bridge", noon)
	require.NoError(t, err)

	raw, err := chart.Value()
	require.NoError(t, err)

	var decoded Chart
	require.NoError(t, decoded.Scan(raw))
	assert.Equal(t, chart, decoded)

	var empty Chart
	require.NoError(t, empty.Scan(nil))
	assert.Equal(t, ToothStatusHealthy, empty.CurrentStatus("11"))
}
