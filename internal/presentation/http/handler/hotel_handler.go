package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/dinedash-api/internal/application/service"
	"github.com/sangkips/dinedash-api/internal/domain/enum"
	"github.com/sangkips/dinedash-api/internal/presentation/http/dto/request"
	"github.com/sangkips/dinedash-api/internal/presentation/http/dto/response"
)

// HotelHandler handles rooms, bookings and folios
type HotelHandler struct {
	hotelService *service.HotelService
}

// NewHotelHandler creates a new hotel handler
func NewHotelHandler(hotelService *service.HotelService) *HotelHandler {
	return &HotelHandler{hotelService: hotelService}
}

// ListRooms returns every room with its status
func (h *HotelHandler) ListRooms(c *gin.Context) {
	response.OK(c, "Rooms retrieved successfully", h.hotelService.ListRooms())
}

// CheckIn opens a stay in an available room
func (h *HotelHandler) CheckIn(c *gin.Context) {
	var req request.StayRequest
	if !bindJSON(c, &req) {
		return
	}

	booking, err := h.hotelService.CheckIn(c.Request.Context(), c.Param("id"), stayInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Guest checked in successfully", booking)
}

// Reserve books a future stay
func (h *HotelHandler) Reserve(c *gin.Context) {
	var req request.StayRequest
	if !bindJSON(c, &req) {
		return
	}

	booking, err := h.hotelService.Reserve(c.Request.Context(), c.Param("id"), stayInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Room reserved successfully", booking)
}

// Clean marks a dirty room as available
func (h *HotelHandler) Clean(c *gin.Context) {
	room, err := h.hotelService.CleanRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Room marked as clean", room)
}

// SetMaintenance takes a room out of service or returns it
func (h *HotelHandler) SetMaintenance(c *gin.Context) {
	var req request.MaintenanceRequest
	if !bindJSON(c, &req) {
		return
	}

	room, err := h.hotelService.SetMaintenance(c.Request.Context(), c.Param("id"), *req.Maintenance)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Room updated successfully", room)
}

// ListBookings returns bookings, newest first, optionally filtered by ?status=
func (h *HotelHandler) ListBookings(c *gin.Context) {
	var status *enum.BookingStatus
	if raw := c.Query("status"); raw != "" {
		s, ok := enum.ParseBookingStatus(upper(raw))
		if !ok {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		status = &s
	}

	response.OK(c, "Bookings retrieved successfully", h.hotelService.ListBookings(status))
}

// UpdateStatus moves a booking through its lifecycle
func (h *HotelHandler) UpdateStatus(c *gin.Context) {
	var req request.UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	status, ok := enum.ParseBookingStatus(upper(req.Status))
	if !ok {
		response.BadRequest(c, "Invalid booking status")
		return
	}

	booking, err := h.hotelService.UpdateBookingStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Booking status updated successfully", booking)
}

// Folio returns the running bill of a booking
func (h *HotelHandler) Folio(c *gin.Context) {
	folio, err := h.hotelService.Folio(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Folio retrieved successfully", folio)
}

// Settle checks the guest out against the folio
func (h *HotelHandler) Settle(c *gin.Context) {
	var req request.SettleRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	folio, err := h.hotelService.Settle(c.Request.Context(), c.Param("id"), enum.PaymentMethod(upper(req.PaymentMethod)))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Folio settled successfully", folio)
}

func stayInput(req request.StayRequest) service.StayInput {
	in := service.StayInput{
		GuestName: req.GuestName,
		Phone:     req.Phone,
		GovID:     req.GovID,
		Nights:    req.Nights,
	}
	if req.Start != nil {
		in.Start = *req.Start
	}
	return in
}
