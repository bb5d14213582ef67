package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/dinedash-api/internal/application/service"
	"github.com/sangkips/dinedash-api/internal/domain/enum"
	"github.com/sangkips/dinedash-api/internal/presentation/http/dto/request"
	"github.com/sangkips/dinedash-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles property settings and passcodes
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings returns the property settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	response.OK(c, "Settings retrieved successfully", h.settingsService.Get())
}

// UpdateSettings applies a partial update and rotates passcodes
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req request.UpdateSettingsRequest
	if !bindJSON(c, &req) {
		return
	}

	in := service.UpdateSettingsInput{
		HotelName:  req.HotelName,
		HotelEmail: req.HotelEmail,
		Address:    req.Address,
		GSTNumber:  req.GSTNumber,
		CGSTRate:   req.CGSTRate,
	}
	if len(req.Passcodes) > 0 {
		in.Passcodes = make(map[enum.UserRole]string, len(req.Passcodes))
		for role, code := range req.Passcodes {
			in.Passcodes[enum.UserRole(upper(role))] = code
		}
	}

	settings, err := h.settingsService.Update(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", settings)
}
