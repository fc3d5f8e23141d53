package diagnosis

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ameerdental/clinic-api/internal/model"
	diagnosisService "github.com/ameerdental/clinic-api/internal/service/diagnosis"
	apperrors "github.com/ameerdental/clinic-api/pkg/errors"
)

type Handler struct {
	service *diagnosisService.Service
}

func NewHandler(service *diagnosisService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) AnalyzeSymptoms(c *gin.Context) {
	var req model.AnalyzeSymptomsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	symptoms := req.Symptoms
	if len(req.Teeth) > 0 {
		symptoms += "\nAffected teeth (FDI): " + strings.Join(req.Teeth, ", ")
	}

	result, err := h.service.AnalyzeSymptoms(c.Request.Context(), symptoms)
	if err != nil {
		if apperrors.IsValidation(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": result})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/diagnosis", h.AnalyzeSymptoms)
}
