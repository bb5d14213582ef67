package entity

import (
	"time"

	"github.com/sangkips/dinedash-api/internal/domain/enum"
)

// LineItem is a menu item snapshot captured at time of sale
type LineItem struct {
	MenuItem
	Quantity int    `json:"quantity"`
	Note     string `json:"note,omitempty"`
}

// LineTotal returns price times quantity without rounding.
func (l LineItem) LineTotal() float64 {
	return l.Price * float64(l.Quantity)
}

// Order represents a restaurant order or an open table tab
type Order struct {
	ID            string             `json:"id"`
	TableID       string             `json:"table_id,omitempty"`
	RoomID        string             `json:"room_id,omitempty"`
	Items         []LineItem         `json:"items"`
	Type          enum.OrderType     `json:"type"`
	Subtotal      float64            `json:"subtotal"`
	Tax           float64            `json:"tax"`
	ServiceCharge float64            `json:"service_charge"`
	Discount      float64            `json:"discount"`
	Total         float64            `json:"total"`
	Status        enum.OrderStatus   `json:"status"`
	Timestamp     time.Time          `json:"timestamp"`
	CustomerName  string             `json:"customer_name,omitempty"`
	GovID         string             `json:"gov_id,omitempty"`
	PaymentMethod enum.PaymentMethod `json:"payment_method,omitempty"`
}

// IsOpen reports whether the order still holds its table.
func (o *Order) IsOpen() bool {
	return !o.Status.IsTerminal()
}

// Clone returns a deep copy of the order.
func (o Order) Clone() Order {
	items := make([]LineItem, len(o.Items))
	for i, li := range o.Items {
		li.MenuItem = li.MenuItem.Clone()
		items[i] = li
	}
	o.Items = items
	return o
}

// HeldCart is a parked cart waiting to be resumed
type HeldCart struct {
	ID        string     `json:"id"`
	Items     []LineItem `json:"items"`
	Label     string     `json:"label,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}
