package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/refhub/referral-tracker/internal/dtos"
	"github.com/refhub/referral-tracker/internal/middleware"
	"github.com/refhub/referral-tracker/internal/services"
)

type AuthHandler struct {
	AuthService *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{AuthService: auth}
}

// Register is the POST /api/auth/register endpoint
func (h *AuthHandler) Register(c *gin.Context) {
	var req dtos.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid JSON format: " + err.Error()})
		return
	}

	token, user, err := h.AuthService.Register(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dtos.AuthResponse{
		Success: true,
		Token:   token,
		User:    dtos.NewUserResponse(user),
	})
}

// Login is the POST /api/auth/login endpoint
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid JSON format: " + err.Error()})
		return
	}

	token, user, err := h.AuthService.Login(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dtos.AuthResponse{
		Success: true,
		Token:   token,
		User:    dtos.NewUserResponse(user),
	})
}

// Me is the GET /api/auth/me endpoint, behind the JWT guard
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.AuthService.CurrentUser(middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": dtos.NewUserResponse(user)})
}

// Logout is the POST /api/auth/logout endpoint. Tokens are not tracked
// server-side, so this only confirms; the client discards its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}
