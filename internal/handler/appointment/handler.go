package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ameerdental/clinic-api/internal/model"
	"github.com/ameerdental/clinic-api/internal/schedule"
	appointmentService "github.com/ameerdental/clinic-api/internal/service/appointment"
	apperrors "github.com/ameerdental/clinic-api/pkg/errors"
)

type Handler struct {
	service *appointmentService.Service
}

func NewHandler(service *appointmentService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) BookAppointment(c *gin.Context) {
	var req model.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	apt, err := h.service.BookAppointment(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	if apt == nil {
		// Unknown patient under the ignore policy: nothing was written.
		c.JSON(http.StatusOK, gin.H{"status": "success", "data": nil})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": apt})
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid appointment ID"})
		return
	}

	apt, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": apt})
}

// ListAppointments returns appointments ascending by date-time, or
// newest-first when ?order=desc, the list-view convention.
func (h *Handler) ListAppointments(c *gin.Context) {
	appointments, err := h.service.ListAppointments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	if c.Query("order") == "desc" {
		schedule.SortByDateTimeDesc(appointments)
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": appointments})
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid appointment ID"})
		return
	}

	var req model.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	apt, err := h.service.UpdateAppointment(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": apt})
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid appointment ID"})
		return
	}

	if err := h.service.DeleteAppointment(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.BookAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PUT("/:id", h.UpdateAppointment)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}
}

func respondError(c *gin.Context, err error) {
	switch {
	case apperrors.IsValidation(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": err.Error()})
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
	}
}
