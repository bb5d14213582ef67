package request

// CartLineRequest is one line of a cart. Lines without menu_item_id are
// custom items and must carry name and price.
type CartLineRequest struct {
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name" binding:"omitempty,max=255"`
	Price      float64 `json:"price" binding:"min=0"`
	Quantity   int     `json:"quantity" binding:"required,min=1"`
	Note       string  `json:"note" binding:"omitempty,max=255"`
}

// SubmitOrderRequest commits a cart
type SubmitOrderRequest struct {
	Type          string            `json:"type"`
	TableID       string            `json:"table_id"`
	BookingID     string            `json:"booking_id"`
	Items         []CartLineRequest `json:"items" binding:"required,min=1,dive"`
	Discount      float64           `json:"discount"`
	CustomerName  string            `json:"customer_name" binding:"omitempty,max=255"`
	GovID         string            `json:"gov_id" binding:"omitempty,max=64"`
	PaymentMethod string            `json:"payment_method"`
}

// PreviewOrderRequest prices a cart without committing it
type PreviewOrderRequest struct {
	Items    []CartLineRequest `json:"items" binding:"dive"`
	Discount float64           `json:"discount"`
}

// HoldCartRequest parks a cart
type HoldCartRequest struct {
	Items []CartLineRequest `json:"items" binding:"required,min=1,dive"`
	Label string            `json:"label" binding:"omitempty,max=100"`
}

// UpdateStatusRequest moves an order or booking to a new status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// TableBillingRequest toggles the billing flag of a table
type TableBillingRequest struct {
	Billing *bool `json:"billing" binding:"required"`
}
