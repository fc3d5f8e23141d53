package schedule

import (
	"sort"
	"strings"
	"time"

	"github.com/ameerdental/clinic-api/internal/model"
)

// DayBucket selects the appointments whose date-time value starts with
// dateKey (YYYY-MM-DD). The match is a literal string prefix, not a parsed
// comparison: the persisted format is zero-padded, so the prefix is exactly
// the calendar day. Input order is preserved; buckets are never re-sorted.
func DayBucket(appointments []*model.Appointment, dateKey string) []*model.Appointment {
	bucket := make([]*model.Appointment, 0)
	for _, apt := range appointments {
		if strings.HasPrefix(apt.DateTime, dateKey) {
			bucket = append(bucket, apt)
		}
	}
	return bucket
}

// TodayBucket returns the appointments falling on now's calendar date.
func TodayBucket(appointments []*model.Appointment, now time.Time) []*model.Appointment {
	return DayBucket(appointments, now.Format(model.DateLayout))
}

// SortByDateTimeDesc orders the list view newest-first. Lexicographic
// comparison is chronological here because the date-time format is ISO
// ordered and zero padded.
func SortByDateTimeDesc(appointments []*model.Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		return appointments[i].DateTime > appointments[j].DateTime
	})
}
