package entity

import (
	"time"

	"github.com/sangkips/dinedash-api/internal/domain/enum"
)

// Room represents a hotel room
type Room struct {
	ID               string          `json:"id"`
	Number           string          `json:"number"`
	Type             enum.RoomType   `json:"type"`
	Floor            int             `json:"floor"`
	Price            float64         `json:"price"` // nightly
	Status           enum.RoomStatus `json:"status"`
	CurrentBookingID string          `json:"current_booking_id,omitempty"`
}

// Booking represents a guest stay and its folio
type Booking struct {
	ID               string             `json:"id"`
	RoomID           string             `json:"room_id"`
	GuestName        string             `json:"guest_name"`
	Phone            string             `json:"phone"`
	GovID            string             `json:"gov_id,omitempty"`
	CheckIn          time.Time          `json:"check_in"`
	ExpectedCheckOut time.Time          `json:"expected_check_out"`
	CheckOut         *time.Time         `json:"check_out,omitempty"`
	Status           enum.BookingStatus `json:"status"`
	FoodCharges      float64            `json:"food_charges"`
	RoomCharges      float64            `json:"room_charges"`
	Total            float64            `json:"total"`
	PaymentMethod    enum.PaymentMethod `json:"payment_method,omitempty"`
}

// Clone returns a copy that does not share the checkout pointer.
func (b Booking) Clone() Booking {
	if b.CheckOut != nil {
		t := *b.CheckOut
		b.CheckOut = &t
	}
	return b
}
