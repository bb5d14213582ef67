package entity

import "slices"

// RecipeItem is the inventory quantity consumed per unit sold
type RecipeItem struct {
	InventoryID string  `json:"inventory_id"`
	Quantity    float64 `json:"quantity"`
}

// MenuItem represents a sellable dish or drink
type MenuItem struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Category string       `json:"category"`
	Price    float64      `json:"price"`
	IsVeg    bool         `json:"is_veg"`
	TaxRate  float64      `json:"tax_rate"` // percent
	Image    string       `json:"image,omitempty"`
	Recipe   []RecipeItem `json:"recipe,omitempty"`
}

// Clone returns a copy that shares no recipe slice with m.
func (m MenuItem) Clone() MenuItem {
	m.Recipe = slices.Clone(m.Recipe)
	return m
}
