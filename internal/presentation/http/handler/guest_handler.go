package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/dinedash-api/internal/application/service"
	"github.com/sangkips/dinedash-api/internal/presentation/http/dto/response"
)

// GuestHandler handles the derived guest directory
type GuestHandler struct {
	guestService *service.GuestService
}

// NewGuestHandler creates a new guest handler
func NewGuestHandler(guestService *service.GuestService) *GuestHandler {
	return &GuestHandler{guestService: guestService}
}

// List returns guest profiles filtered by ?segment=ALL|VIP|RECENT and ?search=
func (h *GuestHandler) List(c *gin.Context) {
	segment := upper(c.DefaultQuery("segment", "ALL"))
	switch segment {
	case "ALL", "VIP", "RECENT":
	default:
		response.BadRequest(c, "Invalid segment")
		return
	}

	result := h.guestService.List(segment, c.Query("search"), pageParams(c))
	response.SuccessWithPagination(c, http.StatusOK, "Guests retrieved successfully", result)
}
