package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countBlanks(grid []DaySlot) int {
	n := 0
	for _, slot := range grid {
		if slot.Blank {
			n++
		}
	}
	return n
}

func TestBuildMonthGridLeapFebruary(t *testing.T) {
	// 2024-02-01 is a Thursday; in a Saturday-start week that is column 5.
	grid := BuildMonthGrid(2024, 1)

	assert.Equal(t, 5, countBlanks(grid))
	assert.Len(t, grid, 5+29)

	first := grid[5]
	require.False(t, first.Blank)
	assert.Equal(t, 1, first.Day)
	assert.Equal(t, "2024-02-01", first.Date)

	last := grid[len(grid)-1]
	assert.Equal(t, 29, last.Day)
	assert.Equal(t, "2024-02-29", last.Date)
}

func TestBuildMonthGridNonLeapFebruary(t *testing.T) {
	// 2023-02-01 is a Wednesday, column 4.
	grid := BuildMonthGrid(2023, 1)

	assert.Equal(t, 4, countBlanks(grid))
	assert.Len(t, grid, 4+28)
	assert.Equal(t, 28, grid[len(grid)-1].Day)
}

func TestBuildMonthGridSaturdayStartHasNoBlanks(t *testing.T) {
	// 2024-06-01 is a Saturday, so day 1 lands in column 0.
	grid := BuildMonthGrid(2024, 5)

	assert.Equal(t, 0, countBlanks(grid))
	assert.Len(t, grid, 30)
	assert.Equal(t, 1, grid[0].Day)
}

func TestBuildMonthGridLengthInvariant(t *testing.T) {
	for year := 2020; year <= 2030; year++ {
		for month := 0; month < 12; month++ {
			grid := BuildMonthGrid(year, month)
			assert.Len(t, grid, countBlanks(grid)+DaysInMonth(year, month),
				"year=%d month=%d", year, month)

			days := 0
			for _, slot := range grid {
				if !slot.Blank {
					days++
					assert.Equal(t, days, slot.Day)
				}
			}
			assert.Equal(t, DaysInMonth(year, month), days)
		}
	}
}

func TestBuildMonthGridIsDeterministic(t *testing.T) {
	assert.Equal(t, BuildMonthGrid(2025, 7), BuildMonthGrid(2025, 7))
}
