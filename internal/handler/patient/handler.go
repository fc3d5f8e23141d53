package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ameerdental/clinic-api/internal/model"
	patientService "github.com/ameerdental/clinic-api/internal/service/patient"
	apperrors "github.com/ameerdental/clinic-api/pkg/errors"
)

type Handler struct {
	service *patientService.Service
}

func NewHandler(service *patientService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	patient, err := h.service.CreatePatient(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": patient})
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid patient ID"})
		return
	}

	patient, err := h.service.GetPatient(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": patient})
}

func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.service.ListPatients(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": patients})
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid patient ID"})
		return
	}

	var req model.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	patient, err := h.service.UpdatePatient(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": patient})
}

func (h *Handler) DeletePatient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid patient ID"})
		return
	}

	if err := h.service.DeletePatient(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// AppendToothEvent records a treatment on one tooth of the patient's chart.
func (h *Handler) AppendToothEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid patient ID"})
		return
	}

	tooth := c.Param("tooth")
	if !model.ValidToothID(tooth) {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid FDI tooth code"})
		return
	}

	var req model.AppendToothEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	patient, err := h.service.AppendToothEvent(c.Request.Context(), id, tooth, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": patient})
}

// GetChart returns the stored history plus the derived status per tooth.
func (h *Handler) GetChart(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid patient ID"})
		return
	}

	patient, err := h.service.GetPatient(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	statuses := make(map[string]model.ToothStatus, len(patient.Chart))
	for tooth := range patient.Chart {
		statuses[tooth] = patient.Chart.CurrentStatus(tooth)
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{
		"chart":    patient.Chart,
		"statuses": statuses,
	}})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.POST("", h.CreatePatient)
		patients.GET("", h.ListPatients)
		patients.GET("/:id", h.GetPatient)
		patients.PUT("/:id", h.UpdatePatient)
		patients.DELETE("/:id", h.DeletePatient)
		patients.GET("/:id/chart", h.GetChart)
		patients.POST("/:id/chart/:tooth", h.AppendToothEvent)
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
