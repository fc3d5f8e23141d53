package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Domain metrics
	PatientsCreated    prometheus.Counter
	AppointmentsBooked *prometheus.CounterVec
	ChartEventsLogged  *prometheus.CounterVec
	BookingsIgnored    prometheus.Counter

	// AI collaborator metrics
	DiagnosisRequests *prometheus.CounterVec
	DiagnosisLatency  prometheus.Histogram

	// Reminder metrics
	RemindersSent   prometheus.Counter
	RemindersFailed prometheus.Counter

	// Database metrics
	DatabaseOperations *prometheus.CounterVec
	DatabaseLatency    *prometheus.HistogramVec
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace, subsystem string) *Metrics {
	return &Metrics{
		PatientsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "patients_created_total",
			Help:      "Total number of patient records created",
		}),
		AppointmentsBooked: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "appointments_booked_total",
			Help:      "Total number of appointments booked or updated",
		}, []string{"operation"}),
		ChartEventsLogged: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "chart_events_logged_total",
			Help:      "Total number of tooth events appended to charts",
		}, []string{"status"}),
		BookingsIgnored: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "bookings_ignored_total",
			Help:      "Total number of bookings dropped for an unknown patient",
		}),
		DiagnosisRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "diagnosis_requests_total",
			Help:      "Total number of AI symptom-analysis calls",
		}, []string{"status"}),
		DiagnosisLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "diagnosis_duration_seconds",
			Help:      "Time spent waiting on the AI collaborator",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		}),
		RemindersSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "reminders_sent_total",
			Help:      "Total number of reminder emails sent",
		}),
		RemindersFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "reminders_failed_total",
			Help:      "Total number of reminder emails that failed to send",
		}),
		DatabaseOperations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "database_operations_total",
			Help:      "Total number of database operations",
		}, []string{"operation", "status"}),
		DatabaseLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "database_operation_duration_seconds",
			Help:      "Time spent executing database operations",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation"}),
	}
}
