package schedule

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ameerdental/clinic-api/internal/model"
	"github.com/ameerdental/clinic-api/internal/schedule"
	appointmentService "github.com/ameerdental/clinic-api/internal/service/appointment"
)

// Handler serves the calendar views: the month grid with per-day buckets,
// a single day's bucket, and today's queue.
type Handler struct {
	service *appointmentService.Service
}

func NewHandler(service *appointmentService.Service) *Handler {
	return &Handler{service: service}
}

// MonthView returns the month grid plus the appointments bucketed onto each
// day slot. Month is zero-based, matching the calendar widget.
func (h *Handler) MonthView(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 0 || month > 11 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid month, expected 0-11"})
		return
	}

	appointments, err := h.service.ListAppointments(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	grid := schedule.BuildMonthGrid(year, month)
	buckets := make(map[string][]*model.Appointment)
	for _, slot := range grid {
		if slot.Blank {
			continue
		}
		buckets[slot.Date] = schedule.DayBucket(appointments, slot.Date)
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{
		"grid":    grid,
		"buckets": buckets,
	}})
}

// DayView returns the appointments falling on one calendar date.
func (h *Handler) DayView(c *gin.Context) {
	dateKey := c.Param("date")
	if _, err := time.Parse(model.DateLayout, dateKey); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid date, expected YYYY-MM-DD"})
		return
	}

	appointments, err := h.service.ListAppointments(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": schedule.DayBucket(appointments, dateKey)})
}

// TodayView returns today's queue.
func (h *Handler) TodayView(c *gin.Context) {
	appointments, err := h.service.ListAppointments(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": schedule.TodayBucket(appointments, time.Now())})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	sched := r.Group("/schedule")
	{
		sched.GET("/month", h.MonthView)
		sched.GET("/day/:date", h.DayView)
		sched.GET("/today", h.TodayView)
	}
}
