// Package schedule holds the pure calendar computations behind the booking
// views: the month grid and the per-day appointment buckets. Nothing here
// touches storage or the clock; callers inject both.
package schedule

import "time"

// DaySlot is one cell of a month grid. Blank cells pad the first week so
// that day 1 lands in the correct column.
type DaySlot struct {
	Day   int    `json:"day"`            // 1..daysInMonth, 0 for a blank cell
	Date  string `json:"date,omitempty"` // YYYY-MM-DD, empty for a blank cell
	Blank bool   `json:"blank"`
}

// BuildMonthGrid lays out a month for a week that starts on Saturday, the
// clinic's locale convention. Month is zero-based (0 = January), matching
// the calendar widget it feeds. The result holds the leading blanks followed
// by one slot per day; trailing padding to full weeks is the renderer's job.
//
// Identical (year, month) inputs always produce an identical grid.
func BuildMonthGrid(year, month int) []DaySlot {
	first := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)

	// time.Weekday runs Sunday=0..Saturday=6; shifting by one rotates the
	// grid so Saturday occupies column 0.
	leading := (int(first.Weekday()) + 1) % 7

	// Day 0 of the next month normalizes to this month's last day.
	daysInMonth := time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()

	grid := make([]DaySlot, 0, leading+daysInMonth)
	for i := 0; i < leading; i++ {
		grid = append(grid, DaySlot{Blank: true})
	}
	for day := 1; day <= daysInMonth; day++ {
		grid = append(grid, DaySlot{
			Day:  day,
			Date: time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
		})
	}
	return grid
}

// DaysInMonth returns the number of days in the zero-based month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}
