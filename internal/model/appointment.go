package model

import (
	"strings"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "Scheduled"
	AppointmentStatusCompleted  AppointmentStatus = "Completed"
	AppointmentStatusCancelled  AppointmentStatus = "Cancelled"
	AppointmentStatusInProgress AppointmentStatus = "In Progress"
)

// DateTimeLayout is the persisted appointment date-time format. It is
// zero-padded and ISO-ordered, so lexicographic comparison is chronological
// comparison and a YYYY-MM-DD prefix match selects a calendar day. Any codec
// change must preserve both properties.
const (
	DateTimeLayout = "2006-01-02T15:04"
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
)

// DefaultDurationMinutes is the booking length for every new appointment.
const DefaultDurationMinutes = 30

// Appointment is a single calendar booking. PatientName is a snapshot taken
// at booking time and is intentionally not kept in sync with later edits to
// the patient record.
type Appointment struct {
	ID          uuid.UUID         `db:"id" json:"id"`
	PatientID   uuid.UUID         `db:"patient_id" json:"patientId"`
	PatientName string            `db:"patient_name" json:"patientName"`
	DateTime    string            `db:"date_time" json:"dateTime"`
	Duration    int               `db:"duration" json:"duration"`
	Reason      string            `db:"reason" json:"reason"`
	Status      AppointmentStatus `db:"status" json:"status"`
	Notes       string            `db:"notes" json:"notes,omitempty"`
}

// DateKey returns the YYYY-MM-DD portion of the appointment's date-time.
func (a *Appointment) DateKey() string {
	if i := strings.IndexByte(a.DateTime, 'T'); i >= 0 {
		return a.DateTime[:i]
	}
	return a.DateTime
}

// BookAppointmentRequest is the booking form. Status is optional on create
// and defaults to Scheduled.
type BookAppointmentRequest struct {
	PatientID uuid.UUID         `json:"patientId" binding:"required"`
	Date      string            `json:"date" binding:"required,datetime=2006-01-02"`
	Time      string            `json:"time" binding:"required,datetime=15:04"`
	Reason    string            `json:"reason" binding:"required"`
	Status    AppointmentStatus `json:"status" binding:"omitempty,oneof=Scheduled Completed Cancelled 'In Progress'"`
	Notes     string            `json:"notes"`
}

// DateTimeValue combines the form's date and time fields into the persisted
// representation.
func (r *BookAppointmentRequest) DateTimeValue() string {
	return r.Date + "T" + r.Time
}
