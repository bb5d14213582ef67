package engine

import (
	"github.com/sangkips/dinedash-api/internal/domain/entity"
	"github.com/sangkips/dinedash-api/pkg/money"
)

// DepleteInventory subtracts the recipe usage of order's lines from stock.
// Recipes are read from the current menu. Stock may go negative; items the
// order does not consume are returned unchanged.
func DepleteInventory(order entity.Order, inventory []entity.InventoryItem, menu []entity.MenuItem) []entity.InventoryItem {
	usage := RecipeUsage(order.Items, menu)
	out := make([]entity.InventoryItem, len(inventory))
	for i, item := range inventory {
		if used, ok := usage[item.ID]; ok {
			item.Stock = money.Round2(item.Stock - used)
		}
		out[i] = item
	}
	return out
}

// RecipeUsage sums recipe quantity times sold quantity per inventory id.
func RecipeUsage(items []entity.LineItem, menu []entity.MenuItem) map[string]float64 {
	recipes := make(map[string][]entity.RecipeItem, len(menu))
	for _, m := range menu {
		if len(m.Recipe) > 0 {
			recipes[m.ID] = m.Recipe
		}
	}

	usage := make(map[string]float64)
	for _, li := range items {
		for _, r := range recipes[li.ID] {
			usage[r.InventoryID] += money.Safe(r.Quantity) * float64(quantity(li.Quantity))
		}
	}
	return usage
}

// AdjustStock applies a manual delta (received, wasted or corrected stock).
func (e *Engine) AdjustStock(s *State, inventoryID string, delta float64) *State {
	i := s.inventoryIndex(inventoryID)
	if i < 0 {
		return s
	}
	next := s.Clone()
	next.Inventory[i].Stock = money.Round2(next.Inventory[i].Stock + money.Safe(delta))
	return next
}

// AddInventoryItem appends a new stock item, assigning an id when empty.
func (e *Engine) AddInventoryItem(s *State, item entity.InventoryItem) (*State, entity.InventoryItem) {
	if item.ID == "" {
		item.ID = e.NewID("INV")
	}
	item.Stock = money.Round2(money.Safe(item.Stock))
	next := s.Clone()
	next.Inventory = append(next.Inventory, item)
	return next, item
}

// LowStock returns the items at or below their minimum level.
func LowStock(inventory []entity.InventoryItem) []entity.InventoryItem {
	var out []entity.InventoryItem
	for _, item := range inventory {
		if item.IsLow() {
			out = append(out, item)
		}
	}
	return out
}
