package analytics

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tripveda/internal/shared/utils/response"
)

// Controller defines the analytics controller interface
type Controller interface {
	GetSummary(c *gin.Context)
}

type controller struct {
	service Service
}

// NewController creates a new analytics controller instance
func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetSummary(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.RespondJSON(c, "error", http.StatusBadRequest, "days must be a positive integer", nil, nil)
			return
		}
		days = parsed
	}

	summary, err := ctrl.service.GetSummary(c.Request.Context(), days)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to load analytics summary", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Analytics summary retrieved successfully", summary, nil)
}
