package agents

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateAgent handles POST /api/v1/admin/agents
func (c *Controller) CreateAgent(ctx *gin.Context) {
	var req CreateAgentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	agent, err := c.service.CreateAgent(ctx.Request.Context(), req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create agent"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Agent created successfully",
		"data":    agent,
	})
}

// ListAgents handles GET /api/v1/admin/agents
func (c *Controller) ListAgents(ctx *gin.Context) {
	activeOnly := ctx.Query("active") == "true"

	result, err := c.service.ListAgents(ctx.Request.Context(), activeOnly)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list agents"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Agents retrieved successfully",
		"data":    gin.H{"agents": result, "count": len(result)},
	})
}

// GetAgent handles GET /api/v1/admin/agents/:id
func (c *Controller) GetAgent(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid agent ID"})
		return
	}

	agent, err := c.service.GetAgent(ctx.Request.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrAgentNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Agent retrieved successfully",
		"data":    agent,
	})
}

// GetAgentSummary handles GET /api/v1/admin/agents/:id/summary
func (c *Controller) GetAgentSummary(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid agent ID"})
		return
	}

	summary, err := c.service.GetAgentSummary(ctx.Request.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrAgentNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Agent summary retrieved successfully",
		"data":    summary,
	})
}

// UpdateAgent handles PATCH /api/v1/admin/agents/:id
func (c *Controller) UpdateAgent(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid agent ID"})
		return
	}

	var req UpdateAgentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	agent, err := c.service.UpdateAgent(ctx.Request.Context(), id, req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrAgentNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Agent updated successfully",
		"data":    agent,
	})
}

// DeleteAgent handles DELETE /api/v1/admin/agents/:id
func (c *Controller) DeleteAgent(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid agent ID"})
		return
	}

	if err := c.service.DeleteAgent(ctx.Request.Context(), id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrAgentNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Agent deleted successfully"})
}
