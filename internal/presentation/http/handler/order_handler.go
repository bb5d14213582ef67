package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/dinedash-api/internal/application/service"
	"github.com/sangkips/dinedash-api/internal/domain/enum"
	"github.com/sangkips/dinedash-api/internal/presentation/http/dto/request"
	"github.com/sangkips/dinedash-api/internal/presentation/http/dto/response"
	"github.com/sangkips/dinedash-api/pkg/pagination"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List handles listing orders (supports both page-based and cursor-based pagination)
func (h *OrderHandler) List(c *gin.Context) {
	var status *enum.OrderStatus
	if raw := c.Query("status"); raw != "" {
		s, ok := enum.ParseOrderStatus(upper(raw))
		if !ok {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		status = &s
	}

	if cursor := c.Query("cursor"); cursor != "" || c.Query("limit") != "" {
		var params pagination.CursorParams
		if err := c.ShouldBindQuery(&params); err != nil {
			response.BadRequest(c, "Invalid request: "+err.Error())
			return
		}
		result, err := h.orderService.ListAfter(status, &params)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.SuccessWithCursor(c, http.StatusOK, "Orders retrieved successfully", result)
		return
	}

	result := h.orderService.List(status, pageParams(c))
	response.SuccessWithPagination(c, http.StatusOK, "Orders retrieved successfully", result)
}

// Recent returns the latest orders for the dashboard feed
func (h *OrderHandler) Recent(c *gin.Context) {
	response.OK(c, "Recent orders retrieved successfully", h.orderService.Recent())
}

// Get handles getting an order by ID
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orderService.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// Preview prices a cart without committing it
func (h *OrderHandler) Preview(c *gin.Context) {
	var req request.PreviewOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	bill, err := h.orderService.Preview(cartLines(req.Items), req.Discount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill calculated", bill)
}

// Submit commits a cart. A dine-in cart for a table with an open tab is
// merged into it and answered with 200; a new order is answered with 201.
func (h *OrderHandler) Submit(c *gin.Context) {
	var req request.SubmitOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.orderService.Submit(c.Request.Context(), service.SubmitOrderInput{
		Type:          enum.OrderType(upper(req.Type)),
		TableID:       req.TableID,
		BookingID:     req.BookingID,
		Items:         cartLines(req.Items),
		Discount:      req.Discount,
		CustomerName:  req.CustomerName,
		GovID:         req.GovID,
		PaymentMethod: enum.PaymentMethod(upper(req.PaymentMethod)),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.Merged {
		response.OK(c, "Items added to the open order", result)
		return
	}
	response.Created(c, "Order created successfully", result)
}

// UpdateStatus moves an order through the kitchen lifecycle
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req request.UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	status, ok := enum.ParseOrderStatus(upper(req.Status))
	if !ok {
		response.BadRequest(c, "Invalid order status")
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order status updated successfully", order)
}

// KitchenQueue returns the open orders, oldest first
func (h *OrderHandler) KitchenQueue(c *gin.Context) {
	response.OK(c, "Kitchen queue retrieved successfully", h.orderService.KitchenQueue())
}

// ListHeld returns the parked carts
func (h *OrderHandler) ListHeld(c *gin.Context) {
	response.OK(c, "Held carts retrieved successfully", h.orderService.ListHeld())
}

// HoldCart parks a cart for later
func (h *OrderHandler) HoldCart(c *gin.Context) {
	var req request.HoldCartRequest
	if !bindJSON(c, &req) {
		return
	}

	held, err := h.orderService.HoldCart(c.Request.Context(), cartLines(req.Items), req.Label)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Cart held successfully", held)
}

// ResumeHeld removes a parked cart and returns it to the till
func (h *OrderHandler) ResumeHeld(c *gin.Context) {
	held, err := h.orderService.ResumeHeld(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Held cart resumed", held)
}
