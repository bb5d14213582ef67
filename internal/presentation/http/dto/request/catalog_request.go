package request

// RecipeItemRequest is one ingredient of a menu item's recipe
type RecipeItemRequest struct {
	InventoryID string  `json:"inventory_id" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"gt=0"`
}

// MenuItemRequest creates or replaces a menu item
type MenuItemRequest struct {
	Name     string              `json:"name" binding:"required,max=255"`
	Category string              `json:"category" binding:"required,max=100"`
	Price    float64             `json:"price" binding:"min=0"`
	IsVeg    bool                `json:"is_veg"`
	TaxRate  float64             `json:"tax_rate" binding:"min=0,max=100"`
	Image    string              `json:"image" binding:"omitempty,max=1024"`
	Recipe   []RecipeItemRequest `json:"recipe" binding:"dive"`
}

// InventoryItemRequest creates a stock item
type InventoryItemRequest struct {
	Name      string  `json:"name" binding:"required,max=255"`
	Unit      string  `json:"unit" binding:"required,max=32"`
	Stock     float64 `json:"stock" binding:"min=0"`
	MinLevel  float64 `json:"min_level" binding:"min=0"`
	CostPrice float64 `json:"cost_price" binding:"min=0"`
}

// AdjustStockRequest records a stock movement
type AdjustStockRequest struct {
	Kind     string  `json:"kind" binding:"required"`
	Quantity float64 `json:"quantity" binding:"min=0"`
}
