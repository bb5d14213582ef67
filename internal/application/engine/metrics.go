package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/sangkips/dinedash-api/internal/domain/entity"
	"github.com/sangkips/dinedash-api/internal/domain/enum"
	"github.com/sangkips/dinedash-api/pkg/money"
)

const (
	// fallbackCostShare estimates food cost for items without a recipe.
	fallbackCostShare = 0.3
	roomRentMargin    = 0.8
	topItemsLimit     = 5
)

// TopItem is a menu item ranked by quantity sold
type TopItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Metrics is the business snapshot handed to the insights provider
type Metrics struct {
	TotalRevenue  float64   `json:"total_revenue"`
	TotalOrders   int       `json:"total_orders"`
	AvgOrderValue float64   `json:"avg_order_value"`
	Profit        float64   `json:"profit"`
	TopItems      []TopItem `json:"top_items"`
}

// HourBucket is revenue booked in one hour of the day
type HourBucket struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// ComputeMetrics counts every order plus completed stays. Profit uses recipe
// cost at current inventory cost prices, else 30% of the line price, and an
// 80% margin on room rent.
func ComputeMetrics(s *State) Metrics {
	var revenue, profit float64
	count := len(s.Orders)

	costs := make(map[string]float64, len(s.Inventory))
	for _, inv := range s.Inventory {
		costs[inv.ID] = money.Safe(inv.CostPrice)
	}

	for _, o := range s.Orders {
		revenue += money.Safe(o.Total)
		profit += money.Safe(o.Total) - orderCost(o, s.Menu, costs)
	}
	for _, b := range s.Bookings {
		if b.Status != enum.BookingStatusCompleted {
			continue
		}
		count++
		revenue += money.Safe(b.RoomCharges)
		profit += money.Safe(b.RoomCharges) * roomRentMargin
	}

	m := Metrics{
		TotalRevenue: money.Round2(revenue),
		TotalOrders:  count,
		Profit:       money.Round2(profit),
		TopItems:     TopItems(s.Orders, topItemsLimit),
	}
	if count > 0 {
		m.AvgOrderValue = money.Round2(revenue / float64(count))
	}
	return m
}

func orderCost(o entity.Order, menu []entity.MenuItem, costs map[string]float64) float64 {
	var cost float64
	for _, li := range o.Items {
		qty := float64(quantity(li.Quantity))
		recipe := li.Recipe
		for _, m := range menu {
			if m.ID == li.ID {
				recipe = m.Recipe
				break
			}
		}
		if len(recipe) == 0 {
			cost += money.Safe(li.Price) * fallbackCostShare * qty
			continue
		}
		var unit float64
		for _, r := range recipe {
			unit += money.Safe(r.Quantity) * costs[r.InventoryID]
		}
		cost += unit * qty
	}
	return cost
}

// TopItems ranks sold items by quantity, ties broken by name.
func TopItems(orders []entity.Order, limit int) []TopItem {
	counts := make(map[string]int)
	for _, o := range orders {
		for _, li := range o.Items {
			counts[li.Name] += quantity(li.Quantity)
		}
	}
	items := make([]TopItem, 0, len(counts))
	for name, qty := range counts {
		items = append(items, TopItem{Name: name, Quantity: qty})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Quantity != items[j].Quantity {
			return items[i].Quantity > items[j].Quantity
		}
		return items[i].Name < items[j].Name
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

// HourlyRevenue buckets order totals by order hour and completed room
// charges by checkout hour, in loc.
func HourlyRevenue(s *State, loc *time.Location) []HourBucket {
	if loc == nil {
		loc = time.Local
	}
	var amounts [24]float64
	for _, o := range s.Orders {
		amounts[o.Timestamp.In(loc).Hour()] += money.Safe(o.Total)
	}
	for _, b := range s.Bookings {
		if b.Status == enum.BookingStatusCompleted && b.CheckOut != nil {
			amounts[b.CheckOut.In(loc).Hour()] += money.Safe(b.RoomCharges)
		}
	}
	buckets := make([]HourBucket, 24)
	for h, amount := range amounts {
		buckets[h] = HourBucket{Label: fmt.Sprintf("%d:00", h), Amount: money.RoundWhole(amount)}
	}
	return buckets
}
