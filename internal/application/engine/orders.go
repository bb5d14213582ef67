package engine

import (
	"sort"

	"github.com/sangkips/dinedash-api/internal/domain/entity"
	"github.com/sangkips/dinedash-api/internal/domain/enum"
	"github.com/sangkips/dinedash-api/pkg/money"
)

// Submission is a cart being committed as an order
type Submission struct {
	TableID       string
	RoomID        string
	Items         []entity.LineItem
	Type          enum.OrderType
	Discount      float64
	CustomerName  string
	GovID         string
	PaymentMethod enum.PaymentMethod
}

// OrderResult describes what AddOrder did
type OrderResult struct {
	// Order is the stored order: the merged tab or the newly created one.
	Order entity.Order `json:"order"`
	// Bill is the bill of the submitted cart alone.
	Bill   Bill `json:"bill"`
	Merged bool `json:"merged"`
	// BookingID is set when the cart was charged to a folio.
	BookingID string `json:"booking_id,omitempty"`
}

// AddOrder merges sub into the open order of its table or creates a new
// order at the head of the list. Inventory is depleted by the submitted
// lines only. A room-targeted cart adds its own total to the room's ACTIVE
// booking, on merge as well as on create.
func (e *Engine) AddOrder(s *State, sub *Submission) (*State, OrderResult) {
	if sub == nil {
		return s, OrderResult{}
	}

	next := s.Clone()
	now := e.now()
	items := cloneLines(sub.Items)
	for i := range items {
		items[i].Quantity = quantity(items[i].Quantity)
	}
	bill := e.Bill(items, sub.Discount)

	submitted := entity.Order{
		ID:            e.NewID("ORD"),
		TableID:       sub.TableID,
		RoomID:        sub.RoomID,
		Items:         items,
		Type:          sub.Type,
		Status:        enum.OrderStatusPending,
		Timestamp:     now,
		CustomerName:  sub.CustomerName,
		GovID:         sub.GovID,
		PaymentMethod: sub.PaymentMethod,
	}
	bill.applyTo(&submitted)

	result := OrderResult{Bill: bill}

	if idx := next.openOrderIndex(sub.TableID); idx >= 0 {
		merged := next.Orders[idx]
		merged.Items = mergeLines(merged.Items, items)
		e.Bill(merged.Items, merged.Discount+bill.Discount).applyTo(&merged)
		merged.Timestamp = now
		if e.MergePolicy == MergeResetStatus && merged.Status != enum.OrderStatusPending {
			merged.Status = enum.OrderStatusPending
		}
		next.Orders[idx] = merged
		result.Order = merged
		result.Merged = true
	} else {
		next.Orders = append([]entity.Order{submitted}, next.Orders...)
		if t := next.tableIndex(sub.TableID); t >= 0 {
			next.Tables[t].Status = enum.TableStatusOccupied
			next.Tables[t].CurrentOrderID = submitted.ID
		}
		result.Order = submitted
	}

	next.Inventory = DepleteInventory(submitted, next.Inventory, next.Menu)

	if b := next.activeBookingIndex(sub.RoomID); b >= 0 {
		booking := &next.Bookings[b]
		booking.FoodCharges = money.Round2(booking.FoodCharges + bill.Total)
		booking.Total = money.Round2(booking.RoomCharges + booking.FoodCharges)
		result.BookingID = booking.ID
	}

	return next, result
}

// mergeLines sums quantities of lines sharing a menu item id and appends
// the rest in submission order.
func mergeLines(existing, incoming []entity.LineItem) []entity.LineItem {
	merged := cloneLines(existing)
	for _, in := range incoming {
		found := false
		for i := range merged {
			if merged[i].ID == in.ID {
				merged[i].Quantity += in.Quantity
				found = true
				break
			}
		}
		if !found {
			in.MenuItem = in.MenuItem.Clone()
			merged = append(merged, in)
		}
	}
	return merged
}

// UpdateOrderStatus moves an order forward in the kitchen lifecycle.
// Completing or cancelling an order releases the table it holds.
func (e *Engine) UpdateOrderStatus(s *State, orderID string, status enum.OrderStatus) (*State, error) {
	idx := s.orderIndex(orderID)
	if idx < 0 {
		return s, nil
	}
	current := s.Orders[idx].Status
	if current == status {
		return s, nil
	}
	if !canAdvanceOrder(current, status) {
		return s, ErrInvalidTransition
	}

	next := s.Clone()
	order := &next.Orders[idx]
	order.Status = status
	if status.IsTerminal() {
		releaseTable(next, order)
	}
	return next, nil
}

func canAdvanceOrder(from, to enum.OrderStatus) bool {
	if from.IsTerminal() {
		return false
	}
	if to == enum.OrderStatusCancelled {
		return true
	}
	return to > from && to <= enum.OrderStatusCompleted
}

// KitchenQueue returns the non-terminal orders, oldest first.
func KitchenQueue(orders []entity.Order) []entity.Order {
	var queue []entity.Order
	for _, o := range orders {
		if o.IsOpen() {
			queue = append(queue, o)
		}
	}
	sort.SliceStable(queue, func(i, j int) bool {
		return queue[i].Timestamp.Before(queue[j].Timestamp)
	})
	return queue
}

// RecentOrders returns up to n orders, most recent first.
func RecentOrders(orders []entity.Order, n int) []entity.Order {
	if n > len(orders) {
		n = len(orders)
	}
	if n < 0 {
		n = 0
	}
	return append([]entity.Order(nil), orders[:n]...)
}

// HoldCart parks a cart for later.
func (e *Engine) HoldCart(s *State, items []entity.LineItem, label string) (*State, entity.HeldCart) {
	held := entity.HeldCart{
		ID:        e.NewID("HELD"),
		Items:     cloneLines(items),
		Label:     label,
		Timestamp: e.now(),
	}
	next := s.Clone()
	next.Held = append(next.Held, held)
	return next, held
}

// ReleaseHeldCart removes a parked cart and returns it, either to resume
// billing or to discard it.
func (e *Engine) ReleaseHeldCart(s *State, id string) (*State, entity.HeldCart, bool) {
	for i, h := range s.Held {
		if h.ID != id {
			continue
		}
		next := s.Clone()
		next.Held = append(next.Held[:i], next.Held[i+1:]...)
		return next, h, true
	}
	return s, entity.HeldCart{}, false
}
