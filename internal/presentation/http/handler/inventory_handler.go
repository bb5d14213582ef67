package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/dinedash-api/internal/application/service"
	"github.com/sangkips/dinedash-api/internal/presentation/http/dto/request"
	"github.com/sangkips/dinedash-api/internal/presentation/http/dto/response"
)

// InventoryHandler handles stock items
type InventoryHandler struct {
	inventoryService *service.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// List returns all stock items
func (h *InventoryHandler) List(c *gin.Context) {
	response.OK(c, "Inventory retrieved successfully", h.inventoryService.List())
}

// LowStock returns the items at or below their minimum level
func (h *InventoryHandler) LowStock(c *gin.Context) {
	response.OK(c, "Low stock items retrieved successfully", h.inventoryService.LowStock())
}

// Create adds a stock item
func (h *InventoryHandler) Create(c *gin.Context) {
	var req request.InventoryItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.inventoryService.Add(c.Request.Context(), service.InventoryItemInput{
		Name:      req.Name,
		Unit:      req.Unit,
		Stock:     req.Stock,
		MinLevel:  req.MinLevel,
		CostPrice: req.CostPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Inventory item created successfully", item)
}

// Adjust records a received, wasted or corrected quantity
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req request.AdjustStockRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.inventoryService.Adjust(c.Request.Context(), c.Param("id"), service.AdjustInput{
		Kind:     req.Kind,
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock adjusted successfully", item)
}
