package entity

import "github.com/sangkips/dinedash-api/internal/domain/enum"

// Table represents a restaurant table
type Table struct {
	ID             string           `json:"id"`
	Number         int              `json:"number"`
	Capacity       int              `json:"capacity"`
	Status         enum.TableStatus `json:"status"`
	CurrentOrderID string           `json:"current_order_id,omitempty"`
}
