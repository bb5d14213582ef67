package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/sangkips/dinedash-api/internal/domain/entity"
)

func TestMenuService_Save(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		input    MenuItemInput
		wantCode int
	}{
		{name: "create", input: MenuItemInput{Name: "Lassi", Category: "Beverages", Price: 90, TaxRate: 5, IsVeg: true}},
		{
			name:  "createWithRecipe",
			input: MenuItemInput{Name: "Paneer Tikka", Category: "Starters", Price: 260, TaxRate: 5, Recipe: []entity.RecipeItem{{InventoryID: "inv2", Quantity: 0.15}}},
		},
		{name: "update", id: "3", input: MenuItemInput{Name: "Butter Naan", Category: "Breads", Price: 70, TaxRate: 5}},
		{name: "updateUnknown", id: "99", input: MenuItemInput{Name: "Ghost", Category: "X", Price: 1}, wantCode: http.StatusNotFound},
		{name: "missingName", input: MenuItemInput{Category: "X", Price: 1}, wantCode: http.StatusUnprocessableEntity},
		{name: "taxOutOfRange", input: MenuItemInput{Name: "A", Category: "X", Price: 1, TaxRate: 140}, wantCode: http.StatusUnprocessableEntity},
		{
			name:     "unknownIngredient",
			input:    MenuItemInput{Name: "A", Category: "X", Price: 1, Recipe: []entity.RecipeItem{{InventoryID: "inv404", Quantity: 1}}},
			wantCode: http.StatusUnprocessableEntity,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			svc := NewMenuService(env.store, env.engine)
			var (
				item entity.MenuItem
				err  error
			)
			if tt.id == "" {
				item, err = svc.Create(context.Background(), tt.input)
			} else {
				item, err = svc.Update(context.Background(), tt.id, tt.input)
			}
			if got := errCode(t, err); got != tt.wantCode {
				t.Fatalf("save code = %d, want %d (err %v)", got, tt.wantCode, err)
			}
			if tt.wantCode != 0 {
				return
			}
			stored, err := svc.Get(item.ID)
			if err != nil || stored.Name != tt.input.Name || stored.Price != tt.input.Price {
				t.Errorf("stored = %+v, err %v", stored, err)
			}
		})
	}
}

func TestMenuService_DeleteKeepsCommittedOrders(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	res, err := env.orders().Submit(ctx, SubmitOrderInput{Items: []CartLine{{MenuItemID: "4", Quantity: 1}}})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	svc := NewMenuService(env.store, env.engine)
	if err := svc.Delete(ctx, "4"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := svc.Delete(ctx, "4"); errCode(t, err) != http.StatusNotFound {
		t.Errorf("deleting twice: err = %v", err)
	}
	o, _ := env.store.Current().Order(res.Order.ID)
	if o.Items[0].Name != "Veg Manchurian" || o.Total != res.Order.Total {
		t.Errorf("committed order changed: %+v", o)
	}
	if len(svc.List("starters")) != 1 {
		t.Errorf("List(starters) = %d, want 1", len(svc.List("starters")))
	}
}
