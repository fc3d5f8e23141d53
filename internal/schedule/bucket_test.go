package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ameerdental/clinic-api/internal/model"
)

func apt(dateTime, name string) *model.Appointment {
	return &model.Appointment{
		ID:          uuid.New(),
		PatientID:   uuid.New(),
		PatientName: name,
		DateTime:    dateTime,
		Duration:    model.DefaultDurationMinutes,
		Status:      model.AppointmentStatusScheduled,
	}
}

func TestDayBucketMatchesPrefixExactly(t *testing.T) {
	appointments := []*model.Appointment{
		apt("2024-03-10T09:00", "a"),
		apt("2024-03-10T14:30", "b"),
		apt("2024-03-11T09:00", "c"),
		apt("2024-03-01T09:00", "d"),
		// A naive substring match would also catch this one.
		apt("2025-02024-03-10", "e"),
	}

	bucket := DayBucket(appointments, "2024-03-10")

	assert.Len(t, bucket, 2)
	assert.Equal(t, "a", bucket[0].PatientName)
	assert.Equal(t, "b", bucket[1].PatientName)
}

func TestDayBucketPreservesInputOrder(t *testing.T) {
	// Deliberately out of chronological order: buckets keep source order.
	appointments := []*model.Appointment{
		apt("2024-03-10T15:00", "late"),
		apt("2024-03-10T08:00", "early"),
		apt("2024-03-10T12:00", "noon"),
	}

	bucket := DayBucket(appointments, "2024-03-10")

	assert.Equal(t, []string{"late", "early", "noon"}, []string{
		bucket[0].PatientName, bucket[1].PatientName, bucket[2].PatientName,
	})
}

func TestDayBucketEmpty(t *testing.T) {
	assert.Empty(t, DayBucket(nil, "2024-03-10"))
	assert.Empty(t, DayBucket([]*model.Appointment{apt("2024-03-11T09:00", "x")}, "2024-03-10"))
}

func TestTodayBucketUsesCalendarDate(t *testing.T) {
	now := time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)
	appointments := []*model.Appointment{
		apt("2024-03-10T09:00", "today"),
		apt("2024-03-11T09:00", "tomorrow"),
	}

	bucket := TodayBucket(appointments, now)

	assert.Len(t, bucket, 1)
	assert.Equal(t, "today", bucket[0].PatientName)
}

func TestSortByDateTimeDescIsChronological(t *testing.T) {
	appointments := []*model.Appointment{
		apt("2024-03-10T09:00", "b"),
		apt("2024-12-01T08:00", "a"),
		apt("2024-03-10T09:30", "c"),
		apt("2023-11-05T16:00", "d"),
	}

	SortByDateTimeDesc(appointments)

	got := make([]string, len(appointments))
	for i, a := range appointments {
		got[i] = a.PatientName
	}
	assert.Equal(t, []string{"a", "c", "b", "d"}, got)
}

func TestDateKey(t *testing.T) {
	a := apt("2024-03-10T09:00", "x")
	assert.Equal(t, "2024-03-10", a.DateKey())
}
