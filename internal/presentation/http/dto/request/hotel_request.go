package request

import "time"

// StayRequest represents a check-in or reservation
type StayRequest struct {
	GuestName string     `json:"guest_name" binding:"required,max=255"`
	Phone     string     `json:"phone" binding:"required,max=32"`
	GovID     string     `json:"gov_id" binding:"omitempty,max=64"`
	Nights    int        `json:"nights" binding:"omitempty,min=1"`
	Start     *time.Time `json:"start"`
}

// MaintenanceRequest toggles a room's maintenance flag
type MaintenanceRequest struct {
	Maintenance *bool `json:"maintenance" binding:"required"`
}

// SettleRequest settles a booking at checkout
type SettleRequest struct {
	PaymentMethod string `json:"payment_method"`
}
