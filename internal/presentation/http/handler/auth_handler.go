package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/dinedash-api/internal/application/service"
	"github.com/sangkips/dinedash-api/internal/domain/enum"
	"github.com/sangkips/dinedash-api/internal/presentation/http/dto/request"
	"github.com/sangkips/dinedash-api/internal/presentation/http/dto/response"
)

// AuthHandler handles role login and first-time setup
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login exchanges a role passcode for an access token
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.authService.Login(c.Request.Context(), enum.UserRole(upper(req.Role)), req.Passcode)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", out)
}

// Status reports whether the property has been configured
func (h *AuthHandler) Status(c *gin.Context) {
	response.OK(c, "Setup status retrieved", h.authService.Status())
}

// Setup completes the one-time property configuration
func (h *AuthHandler) Setup(c *gin.Context) {
	var req request.SetupRequest
	if !bindJSON(c, &req) {
		return
	}

	status, err := h.authService.Setup(c.Request.Context(), service.SetupInput{
		HotelName:     req.HotelName,
		HotelEmail:    req.HotelEmail,
		AdminPasscode: req.AdminPasscode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Property configured successfully", status)
}
