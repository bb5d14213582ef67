package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/dinedash-api/internal/application/service"
	"github.com/sangkips/dinedash-api/internal/presentation/http/dto/response"
)

// AnalyticsHandler handles the owner dashboard
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Metrics returns revenue, profit, top items and the hourly chart
func (h *AnalyticsHandler) Metrics(c *gin.Context) {
	response.OK(c, "Metrics retrieved successfully", h.analyticsService.Metrics())
}

// Insights returns advisory text for the current snapshot
func (h *AnalyticsHandler) Insights(c *gin.Context) {
	response.OK(c, "Insights generated", h.analyticsService.Insights(c.Request.Context()))
}
