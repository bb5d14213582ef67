package engine

import (
	"math"
	"time"

	"github.com/sangkips/dinedash-api/internal/domain/entity"
	"github.com/sangkips/dinedash-api/internal/domain/enum"
	"github.com/sangkips/dinedash-api/pkg/money"
)

const day = 24 * time.Hour

// StayRequest describes a check-in or a reservation
type StayRequest struct {
	RoomID    string
	GuestName string
	Phone     string
	GovID     string
	Nights    int
	Start     time.Time
}

// CheckIn opens an ACTIVE booking and occupies the room.
func (e *Engine) CheckIn(s *State, req StayRequest) (*State, entity.Booking, error) {
	r := s.roomIndex(req.RoomID)
	if r < 0 {
		return s, entity.Booking{}, nil
	}
	if s.Rooms[r].Status != enum.RoomStatusAvailable {
		return s, entity.Booking{}, ErrRoomUnavailable
	}
	next := s.Clone()
	booking := e.newBooking(s.Rooms[r], req, enum.BookingStatusActive)
	next.Bookings = append(next.Bookings, booking)
	occupyRoom(next, booking.RoomID, booking.ID)
	return next, booking, nil
}

// Reserve records a future stay without touching the room.
func (e *Engine) Reserve(s *State, req StayRequest) (*State, entity.Booking) {
	r := s.roomIndex(req.RoomID)
	if r < 0 {
		return s, entity.Booking{}
	}
	next := s.Clone()
	booking := e.newBooking(s.Rooms[r], req, enum.BookingStatusReserved)
	next.Bookings = append(next.Bookings, booking)
	return next, booking
}

func (e *Engine) newBooking(room entity.Room, req StayRequest, status enum.BookingStatus) entity.Booking {
	nights := req.Nights
	if nights < 1 {
		nights = 1
	}
	start := req.Start
	if start.IsZero() {
		start = e.now()
	}
	roomCharges := money.Round2(money.Safe(room.Price) * float64(nights))
	return entity.Booking{
		ID:               e.NewID("BK"),
		RoomID:           room.ID,
		GuestName:        req.GuestName,
		Phone:            req.Phone,
		GovID:            req.GovID,
		CheckIn:          start,
		ExpectedCheckOut: start.Add(time.Duration(nights) * day),
		Status:           status,
		RoomCharges:      roomCharges,
		Total:            roomCharges,
	}
}

// SettleFolio completes an ACTIVE booking and sends its room to DIRTY.
func (e *Engine) SettleFolio(s *State, bookingID string, method enum.PaymentMethod) (*State, error) {
	b := s.bookingIndex(bookingID)
	if b < 0 {
		return s, nil
	}
	if s.Bookings[b].Status != enum.BookingStatusActive {
		return s, ErrInvalidTransition
	}
	next := s.Clone()
	booking := &next.Bookings[b]
	checkOut := e.now()
	booking.Status = enum.BookingStatusCompleted
	booking.CheckOut = &checkOut
	booking.PaymentMethod = method
	vacateRoom(next, booking.RoomID, booking.ID)
	return next, nil
}

// UpdateBookingStatus applies a front-desk status change. Activating a
// reservation occupies its room; ending an active stay sends the room to DIRTY.
func (e *Engine) UpdateBookingStatus(s *State, bookingID string, status enum.BookingStatus) (*State, error) {
	b := s.bookingIndex(bookingID)
	if b < 0 {
		return s, nil
	}
	current := s.Bookings[b].Status
	if current == status {
		return s, nil
	}
	if current.IsTerminal() || status == enum.BookingStatusReserved {
		return s, ErrInvalidTransition
	}

	switch status {
	case enum.BookingStatusActive:
		r := s.roomIndex(s.Bookings[b].RoomID)
		if r >= 0 {
			room := s.Rooms[r]
			if room.Status == enum.RoomStatusMaintenance ||
				(room.Status == enum.RoomStatusOccupied && room.CurrentBookingID != bookingID) {
				return s, ErrRoomUnavailable
			}
		}
		next := s.Clone()
		next.Bookings[b].Status = status
		occupyRoom(next, next.Bookings[b].RoomID, bookingID)
		return next, nil

	case enum.BookingStatusCompleted:
		if current != enum.BookingStatusActive {
			return s, ErrInvalidTransition
		}
		return e.SettleFolio(s, bookingID, s.Bookings[b].PaymentMethod)

	case enum.BookingStatusCancelled:
		next := s.Clone()
		next.Bookings[b].Status = status
		if current == enum.BookingStatusActive {
			vacateRoom(next, next.Bookings[b].RoomID, bookingID)
		}
		return next, nil
	}
	return s, ErrInvalidTransition
}

// FolioTotals are the display figures of a folio
type FolioTotals struct {
	FoodTotal    float64 `json:"food_total"`
	RoomTotal    float64 `json:"room_total"`
	NetTotal     float64 `json:"net_total"`
	StayDuration int     `json:"stay_duration"`
}

// CalculateBookingTotals derives folio totals from the booking and the
// orders placed on its room since check-in.
func CalculateBookingTotals(booking entity.Booking, roomOrders []entity.Order) FolioTotals {
	food := make([]float64, len(roomOrders))
	for i, o := range roomOrders {
		food[i] = o.Total
	}
	stay := int(math.Ceil(float64(booking.ExpectedCheckOut.Sub(booking.CheckIn)) / float64(day)))
	if stay < 1 {
		stay = 1
	}
	t := FolioTotals{
		FoodTotal:    money.Round2(money.Sum(food...)),
		RoomTotal:    money.Safe(booking.RoomCharges),
		StayDuration: stay,
	}
	t.NetTotal = money.Round2(money.Sum(t.RoomTotal, t.FoodTotal))
	return t
}

// RoomOrders returns the orders on the booking's room timestamped at or after check-in.
func RoomOrders(orders []entity.Order, booking entity.Booking) []entity.Order {
	var out []entity.Order
	for _, o := range orders {
		if o.RoomID == booking.RoomID && !o.Timestamp.Before(booking.CheckIn) {
			out = append(out, o)
		}
	}
	return out
}

// Folio is the settlement view of a booking. StoredTotal is the running
// amount that is charged; NetTotal is recomputed from room orders and the
// two may differ.
type Folio struct {
	Booking entity.Booking `json:"booking"`
	Room    entity.Room    `json:"room"`
	Orders  []entity.Order `json:"orders"`
	FolioTotals
	StoredTotal float64 `json:"stored_total"`
	Variance    float64 `json:"variance"`
	CGST        float64 `json:"cgst"`
	SGST        float64 `json:"sgst"`
	GrandTotal  float64 `json:"grand_total"`
}

// BuildFolio assembles the folio of a booking. cgstRate is the percent
// charged for each of CGST and SGST on the net total.
func BuildFolio(s *State, bookingID string, cgstRate float64) (Folio, bool) {
	booking, ok := s.Booking(bookingID)
	if !ok {
		return Folio{}, false
	}
	room, _ := s.Room(booking.RoomID)
	orders := RoomOrders(s.Orders, booking)
	totals := CalculateBookingTotals(booking, orders)
	half := money.Round2(totals.NetTotal * money.NonNegative(money.Safe(cgstRate)) / 100)
	return Folio{
		Booking:     booking,
		Room:        room,
		Orders:      orders,
		FolioTotals: totals,
		StoredTotal: booking.Total,
		Variance:    money.Round2(booking.Total - totals.NetTotal),
		CGST:        half,
		SGST:        half,
		GrandTotal:  money.Round2(totals.NetTotal + 2*half),
	}, true
}
