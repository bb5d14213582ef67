package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/dinedash-api/internal/application/service"
	"github.com/sangkips/dinedash-api/internal/presentation/http/dto/request"
	"github.com/sangkips/dinedash-api/internal/presentation/http/dto/response"
)

// TableHandler handles the floor plan
type TableHandler struct {
	tableService *service.TableService
}

// NewTableHandler creates a new table handler
func NewTableHandler(tableService *service.TableService) *TableHandler {
	return &TableHandler{tableService: tableService}
}

// List returns every table with its status
func (h *TableHandler) List(c *gin.Context) {
	response.OK(c, "Tables retrieved successfully", h.tableService.List())
}

// OpenOrder returns the running tab of a table
func (h *TableHandler) OpenOrder(c *gin.Context) {
	order, err := h.tableService.OpenOrder(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Open order retrieved successfully", order)
}

// SetBilling marks a table as waiting for its bill, or clears the flag
func (h *TableHandler) SetBilling(c *gin.Context) {
	var req request.TableBillingRequest
	if !bindJSON(c, &req) {
		return
	}

	table, err := h.tableService.SetBilling(c.Request.Context(), c.Param("id"), *req.Billing)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Table updated successfully", table)
}
