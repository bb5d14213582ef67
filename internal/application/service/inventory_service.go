package service

import (
	"context"
	"math"
	"strings"

	"github.com/sangkips/dinedash-api/internal/application/engine"
	"github.com/sangkips/dinedash-api/internal/domain/entity"
	"github.com/sangkips/dinedash-api/pkg/apperror"
	"github.com/sangkips/dinedash-api/pkg/telemetry"
)

// Stock adjustment kinds
const (
	AdjustReceive    = "RECEIVE"
	AdjustWaste      = "WASTE"
	AdjustCorrection = "CORRECTION"
)

// InventoryService handles stock items and manual adjustments
type InventoryService struct {
	store    *StateStore
	engine   *engine.Engine
	events   *Broadcaster
	metrics  *telemetry.Metrics
	notifier *NotificationService
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	store *StateStore,
	eng *engine.Engine,
	bus *Broadcaster,
	metrics *telemetry.Metrics,
	notifier *NotificationService,
) *InventoryService {
	return &InventoryService{
		store:    store,
		engine:   eng,
		events:   bus,
		metrics:  metrics,
		notifier: notifier,
	}
}

// InventoryItemInput represents a new stock item
type InventoryItemInput struct {
	Name      string
	Unit      string
	Stock     float64
	MinLevel  float64
	CostPrice float64
}

// AdjustInput represents a manual stock movement. For CORRECTION the
// quantity is the counted stock, otherwise it is the amount moved.
type AdjustInput struct {
	Kind     string
	Quantity float64
}

func (s *InventoryService) List() []entity.InventoryItem {
	return s.store.Current().Inventory
}

func (s *InventoryService) LowStock() []entity.InventoryItem {
	low := engine.LowStock(s.store.Current().Inventory)
	if low == nil {
		return []entity.InventoryItem{}
	}
	return low
}

// Add registers a new stock item
func (s *InventoryService) Add(ctx context.Context, in InventoryItemInput) (entity.InventoryItem, error) {
	var errs []apperror.FieldError
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, apperror.FieldError{Field: "name", Message: "is required"})
	}
	if strings.TrimSpace(in.Unit) == "" {
		errs = append(errs, apperror.FieldError{Field: "unit", Message: "is required"})
	}
	amounts := []struct {
		field string
		value float64
	}{{"stock", in.Stock}, {"min_level", in.MinLevel}, {"cost_price", in.CostPrice}}
	for _, a := range amounts {
		if math.IsNaN(a.value) || math.IsInf(a.value, 0) || a.value < 0 {
			errs = append(errs, apperror.FieldError{Field: a.field, Message: "must be a non-negative number"})
		}
	}
	if len(errs) > 0 {
		return entity.InventoryItem{}, apperror.NewValidationError(errs)
	}

	var item entity.InventoryItem
	var prev *engine.State
	next, err := s.store.Update(func(st *engine.State) (*engine.State, error) {
		prev = st
		n, it := s.engine.AddInventoryItem(st, entity.InventoryItem{
			Name:      strings.TrimSpace(in.Name),
			Unit:      strings.TrimSpace(in.Unit),
			Stock:     in.Stock,
			MinLevel:  in.MinLevel,
			CostPrice: in.CostPrice,
		})
		item = it
		return n, nil
	})
	if err != nil {
		return entity.InventoryItem{}, err
	}
	reportLowStock(s.metrics, s.events, s.notifier, prev, next)
	return item, nil
}

// Adjust records received, wasted or recounted stock
func (s *InventoryService) Adjust(ctx context.Context, id string, in AdjustInput) (entity.InventoryItem, error) {
	if math.IsNaN(in.Quantity) || math.IsInf(in.Quantity, 0) || in.Quantity < 0 {
		return entity.InventoryItem{}, fieldError("quantity", "must be a non-negative number")
	}
	kind := strings.ToUpper(strings.TrimSpace(in.Kind))

	var prev *engine.State
	next, err := s.store.Update(func(st *engine.State) (*engine.State, error) {
		item, ok := st.InventoryItem(id)
		if !ok {
			return st, errNotFound("Inventory item")
		}
		var delta float64
		switch kind {
		case AdjustReceive:
			delta = in.Quantity
		case AdjustWaste:
			if in.Quantity > item.Stock {
				return st, fieldError("quantity", "exceeds the stock on hand")
			}
			delta = -in.Quantity
		case AdjustCorrection:
			delta = in.Quantity - item.Stock
		default:
			return st, fieldError("kind", "must be one of RECEIVE, WASTE, CORRECTION")
		}
		prev = st
		return s.engine.AdjustStock(st, id, delta), nil
	})
	if err != nil {
		return entity.InventoryItem{}, err
	}
	reportLowStock(s.metrics, s.events, s.notifier, prev, next)
	item, _ := next.InventoryItem(id)
	return item, nil
}
