package service

import (
	"context"
	"math"
	"strings"

	"github.com/sangkips/dinedash-api/internal/application/engine"
	"github.com/sangkips/dinedash-api/internal/domain/entity"
	"github.com/sangkips/dinedash-api/pkg/apperror"
)

// MenuService handles the menu catalog
type MenuService struct {
	store  *StateStore
	engine *engine.Engine
}

// NewMenuService creates a new menu service
func NewMenuService(store *StateStore, eng *engine.Engine) *MenuService {
	return &MenuService{store: store, engine: eng}
}

// MenuItemInput represents a menu item being created or edited
type MenuItemInput struct {
	Name     string
	Category string
	Price    float64
	IsVeg    bool
	TaxRate  float64
	Image    string
	Recipe   []entity.RecipeItem
}

// List returns the menu, optionally narrowed to a category
func (s *MenuService) List(category string) []entity.MenuItem {
	menu := s.store.Current().Menu
	if category == "" {
		return menu
	}
	out := []entity.MenuItem{}
	for _, m := range menu {
		if strings.EqualFold(m.Category, category) {
			out = append(out, m)
		}
	}
	return out
}

func (s *MenuService) Get(id string) (entity.MenuItem, error) {
	m, ok := s.store.Current().MenuItem(id)
	if !ok {
		return entity.MenuItem{}, apperror.NewNotFoundError("Menu item")
	}
	return m, nil
}

func (s *MenuService) Create(ctx context.Context, in MenuItemInput) (entity.MenuItem, error) {
	return s.save("", in)
}

func (s *MenuService) Update(ctx context.Context, id string, in MenuItemInput) (entity.MenuItem, error) {
	return s.save(id, in)
}

func (s *MenuService) save(id string, in MenuItemInput) (entity.MenuItem, error) {
	var errs []apperror.FieldError
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, apperror.FieldError{Field: "name", Message: "is required"})
	}
	if strings.TrimSpace(in.Category) == "" {
		errs = append(errs, apperror.FieldError{Field: "category", Message: "is required"})
	}
	if math.IsNaN(in.Price) || math.IsInf(in.Price, 0) || in.Price < 0 {
		errs = append(errs, apperror.FieldError{Field: "price", Message: "must be a non-negative number"})
	}
	if math.IsNaN(in.TaxRate) || in.TaxRate < 0 || in.TaxRate > 100 {
		errs = append(errs, apperror.FieldError{Field: "tax_rate", Message: "must be between 0 and 100"})
	}
	for _, r := range in.Recipe {
		if r.InventoryID == "" || r.Quantity <= 0 || math.IsNaN(r.Quantity) || math.IsInf(r.Quantity, 0) {
			errs = append(errs, apperror.FieldError{Field: "recipe", Message: "entries need an inventory id and a positive quantity"})
			break
		}
	}
	if len(errs) > 0 {
		return entity.MenuItem{}, apperror.NewValidationError(errs)
	}

	var saved entity.MenuItem
	_, err := s.store.Update(func(st *engine.State) (*engine.State, error) {
		if id != "" {
			if _, ok := st.MenuItem(id); !ok {
				return st, errNotFound("Menu item")
			}
		}
		for _, r := range in.Recipe {
			if _, ok := st.InventoryItem(r.InventoryID); !ok {
				return st, fieldError("recipe", "unknown inventory item "+r.InventoryID)
			}
		}
		n, item := s.engine.UpsertMenuItem(st, entity.MenuItem{
			ID:       id,
			Name:     strings.TrimSpace(in.Name),
			Category: strings.TrimSpace(in.Category),
			Price:    in.Price,
			IsVeg:    in.IsVeg,
			TaxRate:  in.TaxRate,
			Image:    in.Image,
			Recipe:   in.Recipe,
		})
		saved = item
		return n, nil
	})
	if err != nil {
		return entity.MenuItem{}, err
	}
	return saved, nil
}

// Delete removes an item from the catalog. Committed orders are untouched.
func (s *MenuService) Delete(ctx context.Context, id string) error {
	_, err := s.store.Update(func(st *engine.State) (*engine.State, error) {
		if _, ok := st.MenuItem(id); !ok {
			return st, errNotFound("Menu item")
		}
		return s.engine.RemoveMenuItem(st, id), nil
	})
	return err
}
