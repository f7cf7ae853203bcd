package auth

import (
	"errors"
	"net/http"

	"tripveda/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	resp, err := c.service.Register(ctx.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserAlreadyExists):
			response.RespondJSON(ctx, "error", http.StatusConflict, "User with this email already exists", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to register user", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "User registered successfully", resp, nil)
}

func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	resp, err := c.service.Login(ctx.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid email or password", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to login", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Login successful", resp, nil)
}

func (c *Controller) RefreshToken(ctx *gin.Context) {
	var req RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	tokenPair, err := c.service.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidToken):
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid or expired refresh token", nil, nil)
		case errors.Is(err, ErrUserNotFound):
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to refresh token", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Token refreshed successfully", tokenPair, nil)
}

// Logout is stateless. Tokens are not tracked server side, so the client
// simply discards its pair after this call succeeds.
func (c *Controller) Logout(ctx *gin.Context) {
	response.RespondJSON(ctx, "success", http.StatusOK, "Logged out successfully", nil, nil)
}

func (c *Controller) ChangePassword(ctx *gin.Context) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	err := c.service.ChangePassword(ctx.Request.Context(), userID.(string), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Current password is incorrect", nil, nil)
		case errors.Is(err, ErrUserNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "User not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to change password", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Password changed successfully", nil, nil)
}

func (c *Controller) GetMe(ctx *gin.Context) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	user, err := c.service.GetUser(ctx.Request.Context(), userID.(string))
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "User not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to load user", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "User data retrieved successfully", toUserResponse(user), nil)
}
