package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/dinedash-api/internal/application/service"
	"github.com/sangkips/dinedash-api/internal/domain/entity"
	"github.com/sangkips/dinedash-api/internal/presentation/http/dto/request"
	"github.com/sangkips/dinedash-api/internal/presentation/http/dto/response"
)

// MenuHandler handles the menu catalog
type MenuHandler struct {
	menuService *service.MenuService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService *service.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// List returns the menu, optionally filtered by ?category=
func (h *MenuHandler) List(c *gin.Context) {
	response.OK(c, "Menu retrieved successfully", h.menuService.List(c.Query("category")))
}

// Get handles getting a menu item by ID
func (h *MenuHandler) Get(c *gin.Context) {
	item, err := h.menuService.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu item retrieved successfully", item)
}

// Create adds a menu item
func (h *MenuHandler) Create(c *gin.Context) {
	var req request.MenuItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.menuService.Create(c.Request.Context(), menuInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Menu item created successfully", item)
}

// Update replaces a menu item. Orders already placed keep their prices.
func (h *MenuHandler) Update(c *gin.Context) {
	var req request.MenuItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.menuService.Update(c.Request.Context(), c.Param("id"), menuInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu item updated successfully", item)
}

// Delete removes a menu item
func (h *MenuHandler) Delete(c *gin.Context) {
	if err := h.menuService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu item deleted successfully", nil)
}

func menuInput(req request.MenuItemRequest) service.MenuItemInput {
	recipe := make([]entity.RecipeItem, len(req.Recipe))
	for i, r := range req.Recipe {
		recipe[i] = entity.RecipeItem{InventoryID: r.InventoryID, Quantity: r.Quantity}
	}
	return service.MenuItemInput{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		IsVeg:    req.IsVeg,
		TaxRate:  req.TaxRate,
		Image:    req.Image,
		Recipe:   recipe,
	}
}
