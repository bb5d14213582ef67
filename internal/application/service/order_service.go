package service

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sangkips/dinedash-api/internal/application/engine"
	"github.com/sangkips/dinedash-api/internal/domain/entity"
	"github.com/sangkips/dinedash-api/internal/domain/enum"
	"github.com/sangkips/dinedash-api/pkg/apperror"
	"github.com/sangkips/dinedash-api/pkg/events"
	"github.com/sangkips/dinedash-api/pkg/pagination"
	"github.com/sangkips/dinedash-api/pkg/telemetry"
)

// CustomItemTaxRate is the GST applied to open-priced items
const CustomItemTaxRate = 5

// RecentOrdersLimit is how many orders the recent feed returns
const RecentOrdersLimit = 10

// OrderService handles cart submission, order status and held carts
type OrderService struct {
	store    *StateStore
	engine   *engine.Engine
	events   *Broadcaster
	metrics  *telemetry.Metrics
	notifier *NotificationService
}

// NewOrderService creates a new order service
func NewOrderService(
	store *StateStore,
	eng *engine.Engine,
	bus *Broadcaster,
	metrics *telemetry.Metrics,
	notifier *NotificationService,
) *OrderService {
	return &OrderService{
		store:    store,
		engine:   eng,
		events:   bus,
		metrics:  metrics,
		notifier: notifier,
	}
}

// CartLine is one line of a cart. A line without MenuItemID is a custom
// item priced at the till.
type CartLine struct {
	MenuItemID string
	Name       string
	Price      float64
	Quantity   int
	Note       string
}

// SubmitOrderInput represents a cart being committed
type SubmitOrderInput struct {
	Type          enum.OrderType
	TableID       string
	BookingID     string
	Items         []CartLine
	Discount      float64
	CustomerName  string
	GovID         string
	PaymentMethod enum.PaymentMethod
}

// KitchenTicket is the event payload sent to the kitchen display
type KitchenTicket struct {
	OrderID   string            `json:"order_id"`
	TableID   string            `json:"table_id,omitempty"`
	RoomID    string            `json:"room_id,omitempty"`
	Type      enum.OrderType    `json:"type"`
	Items     []entity.LineItem `json:"items"`
	Merged    bool              `json:"merged"`
	Timestamp time.Time         `json:"timestamp"`
}

// Preview prices a cart without committing it
func (s *OrderService) Preview(items []CartLine, discount float64) (engine.Bill, error) {
	if err := validateDiscount(discount); err != nil {
		return engine.Bill{}, err
	}
	lines, err := s.resolveLines(s.store.Current(), items)
	if err != nil {
		return engine.Bill{}, err
	}
	return s.engine.Bill(lines, discount), nil
}

// Submit commits a cart, merging it into the open tab of its table
func (s *OrderService) Submit(ctx context.Context, in SubmitOrderInput) (*engine.OrderResult, error) {
	var (
		result    engine.OrderResult
		prev      *engine.State
		submitted []entity.LineItem
	)
	next, err := s.store.Update(func(st *engine.State) (*engine.State, error) {
		sub, err := s.buildSubmission(st, in)
		if err != nil {
			return st, err
		}
		prev, submitted = st, sub.Items
		n, res := s.engine.AddOrder(st, sub)
		result = res
		return n, nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.OrdersSubmitted.WithLabelValues(string(result.Order.Type), strconv.FormatBool(result.Merged)).Inc()
	s.metrics.OrderRevenue.Add(result.Bill.Total)

	topic := events.TopicOrderCreated
	if result.Merged {
		topic = events.TopicOrderMerged
	}
	s.events.Emit(topic, result)
	s.events.Emit(events.TopicKitchenTicket, KitchenTicket{
		OrderID:   result.Order.ID,
		TableID:   result.Order.TableID,
		RoomID:    result.Order.RoomID,
		Type:      result.Order.Type,
		Items:     submitted,
		Merged:    result.Merged,
		Timestamp: result.Order.Timestamp,
	})
	if result.BookingID != "" {
		s.events.Emit(events.TopicFolioCharged, map[string]interface{}{
			"booking_id": result.BookingID,
			"order_id":   result.Order.ID,
			"amount":     result.Bill.Total,
		})
	}
	reportLowStock(s.metrics, s.events, s.notifier, prev, next)

	return &result, nil
}

// List returns orders, most recent first, optionally filtered by status
func (s *OrderService) List(status *enum.OrderStatus, params *pagination.PaginationParams) *pagination.PaginatedResult[entity.Order] {
	return pagination.Paginate(filterOrders(s.store.Current().Orders, status), params)
}

// ListAfter returns the orders following the cursor
func (s *OrderService) ListAfter(status *enum.OrderStatus, params *pagination.CursorParams) (*pagination.CursorPaginatedResult[entity.Order], error) {
	res, err := pagination.PaginateAfter(filterOrders(s.store.Current().Orders, status), params,
		func(o entity.Order) string { return o.ID },
		func(o entity.Order) time.Time { return o.Timestamp },
	)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}
	return res, nil
}

func filterOrders(orders []entity.Order, status *enum.OrderStatus) []entity.Order {
	if status == nil {
		return orders
	}
	var out []entity.Order
	for _, o := range orders {
		if o.Status == *status {
			out = append(out, o)
		}
	}
	return out
}

// Recent returns the latest orders
func (s *OrderService) Recent() []entity.Order {
	return engine.RecentOrders(s.store.Current().Orders, RecentOrdersLimit)
}

// Get retrieves an order by ID
func (s *OrderService) Get(id string) (entity.Order, error) {
	o, ok := s.store.Current().Order(id)
	if !ok {
		return entity.Order{}, apperror.NewNotFoundError("Order")
	}
	return o, nil
}

// UpdateStatus moves an order through the kitchen lifecycle
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status enum.OrderStatus) (entity.Order, error) {
	next, err := s.store.Update(func(st *engine.State) (*engine.State, error) {
		if _, ok := st.Order(id); !ok {
			return st, errNotFound("Order")
		}
		n, err := s.engine.UpdateOrderStatus(st, id, status)
		if err != nil {
			return st, ruleError(err)
		}
		return n, nil
	})
	if err != nil {
		return entity.Order{}, err
	}

	order, _ := next.Order(id)
	s.metrics.OrderTransitions.WithLabelValues(status.String()).Inc()
	s.events.Emit(events.TopicOrderStatus, map[string]interface{}{
		"order_id": order.ID,
		"table_id": order.TableID,
		"status":   order.Status,
	})
	return order, nil
}

// KitchenQueue returns the open orders, oldest first
func (s *OrderService) KitchenQueue() []entity.Order {
	return engine.KitchenQueue(s.store.Current().Orders)
}

// HoldCart parks a cart for later
func (s *OrderService) HoldCart(ctx context.Context, items []CartLine, label string) (entity.HeldCart, error) {
	var held entity.HeldCart
	_, err := s.store.Update(func(st *engine.State) (*engine.State, error) {
		if len(items) == 0 {
			return st, fieldError("items", "cart is empty")
		}
		lines, err := s.resolveLines(st, items)
		if err != nil {
			return st, err
		}
		n, h := s.engine.HoldCart(st, lines, strings.TrimSpace(label))
		held = h
		return n, nil
	})
	return held, err
}

// ListHeld returns the parked carts
func (s *OrderService) ListHeld() []entity.HeldCart {
	held := s.store.Current().Held
	if held == nil {
		return []entity.HeldCart{}
	}
	return held
}

// ResumeHeld removes a parked cart and returns it
func (s *OrderService) ResumeHeld(ctx context.Context, id string) (entity.HeldCart, error) {
	var held entity.HeldCart
	_, err := s.store.Update(func(st *engine.State) (*engine.State, error) {
		n, h, ok := s.engine.ReleaseHeldCart(st, id)
		if !ok {
			return st, errNotFound("Held cart")
		}
		held = h
		return n, nil
	})
	return held, err
}

func (s *OrderService) buildSubmission(st *engine.State, in SubmitOrderInput) (*engine.Submission, error) {
	if len(in.Items) == 0 {
		return nil, fieldError("items", "cart is empty")
	}
	if err := validateDiscount(in.Discount); err != nil {
		return nil, err
	}

	orderType := in.Type
	if orderType == "" {
		orderType = enum.OrderTypeTakeaway
		if in.TableID != "" {
			orderType = enum.OrderTypeDineIn
		}
	}
	if !orderType.IsValid() {
		return nil, fieldError("type", "unknown order type")
	}
	method := in.PaymentMethod
	if method == "" {
		method = enum.PaymentCash
	}
	if !method.IsValid() {
		return nil, fieldError("payment_method", "unknown payment method")
	}

	sub := &engine.Submission{
		Type:          orderType,
		Discount:      in.Discount,
		CustomerName:  strings.TrimSpace(in.CustomerName),
		GovID:         strings.TrimSpace(in.GovID),
		PaymentMethod: method,
	}

	if orderType == enum.OrderTypeDineIn {
		if in.TableID == "" {
			return nil, fieldError("table_id", "a table is required for dine-in orders")
		}
		if _, ok := st.Table(in.TableID); !ok {
			return nil, errNotFound("Table")
		}
		sub.TableID = in.TableID
	}

	if orderType == enum.OrderTypeRoomService || method == enum.PaymentChargeToRoom {
		if in.BookingID == "" {
			return nil, fieldError("booking_id", "an active guest folio is required for room service or charge to room")
		}
		booking, ok := st.Booking(in.BookingID)
		if !ok {
			return nil, errNotFound("Booking")
		}
		if booking.Status != enum.BookingStatusActive {
			return nil, fieldError("booking_id", "booking is not checked in")
		}
		sub.RoomID = booking.RoomID
		if sub.CustomerName == "" {
			sub.CustomerName = booking.GuestName
		}
		if sub.GovID == "" {
			sub.GovID = booking.GovID
		}
	}
	if sub.CustomerName == "" {
		sub.CustomerName = engine.WalkInName
	}

	lines, err := s.resolveLines(st, in.Items)
	if err != nil {
		return nil, err
	}
	sub.Items = lines
	return sub, nil
}

// resolveLines snapshots menu items into line items at current prices
func (s *OrderService) resolveLines(st *engine.State, items []CartLine) ([]entity.LineItem, error) {
	lines := make([]entity.LineItem, 0, len(items))
	var fieldErrs []apperror.FieldError
	for i, it := range items {
		field := "items[" + strconv.Itoa(i) + "]"
		if it.Quantity < 1 {
			fieldErrs = append(fieldErrs, apperror.FieldError{Field: field + ".quantity", Message: "must be at least 1"})
			continue
		}
		if it.MenuItemID != "" {
			m, ok := st.MenuItem(it.MenuItemID)
			if !ok {
				fieldErrs = append(fieldErrs, apperror.FieldError{Field: field + ".menu_item_id", Message: "unknown menu item"})
				continue
			}
			lines = append(lines, entity.LineItem{MenuItem: m.Clone(), Quantity: it.Quantity, Note: it.Note})
			continue
		}
		name := strings.TrimSpace(it.Name)
		if name == "" || math.IsNaN(it.Price) || math.IsInf(it.Price, 0) || it.Price < 0 {
			fieldErrs = append(fieldErrs, apperror.FieldError{Field: field, Message: "custom items need a name and a price"})
			continue
		}
		lines = append(lines, entity.LineItem{
			MenuItem: entity.MenuItem{
				ID:       strings.ToLower(s.engine.NewID("custom")),
				Name:     name,
				Category: "Custom",
				Price:    it.Price,
				IsVeg:    true,
				TaxRate:  CustomItemTaxRate,
			},
			Quantity: it.Quantity,
			Note:     it.Note,
		})
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}
	return lines, nil
}

func validateDiscount(d float64) error {
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return fieldError("discount", "must be a non-negative amount")
	}
	return nil
}

// reportLowStock updates the low stock gauge and announces items that
// crossed their minimum level in this commit.
func reportLowStock(m *telemetry.Metrics, bus *Broadcaster, n *NotificationService, prev, next *engine.State) {
	low := engine.LowStock(next.Inventory)
	m.LowStockItems.Set(float64(len(low)))
	if prev == nil {
		return
	}
	wasLow := map[string]bool{}
	for _, it := range engine.LowStock(prev.Inventory) {
		wasLow[it.ID] = true
	}
	var crossed []entity.InventoryItem
	for _, it := range low {
		if !wasLow[it.ID] {
			crossed = append(crossed, it)
		}
	}
	if len(crossed) == 0 {
		return
	}
	bus.Emit(events.TopicInventoryLow, crossed)
	n.LowStock(crossed)
}
