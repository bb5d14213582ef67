package entity

// InventoryItem represents a stocked ingredient
type InventoryItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Stock     float64 `json:"stock"`
	Unit      string  `json:"unit"`
	MinLevel  float64 `json:"min_level"`
	CostPrice float64 `json:"cost_price"` // per unit
}

// IsLow reports whether the item has reached its reorder threshold.
func (i *InventoryItem) IsLow() bool {
	return i.Stock <= i.MinLevel
}
