package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/sangkips/dinedash-api/pkg/events"
)

func TestInventoryService_Adjust(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		input     AdjustInput
		wantCode  int
		wantStock float64
	}{
		{name: "receive", id: "inv1", input: AdjustInput{Kind: "receive", Quantity: 25}, wantStock: 75},
		{name: "waste", id: "inv1", input: AdjustInput{Kind: AdjustWaste, Quantity: 4.5}, wantStock: 45.5},
		{name: "correction", id: "inv1", input: AdjustInput{Kind: AdjustCorrection, Quantity: 42}, wantStock: 42},
		{name: "wasteMoreThanStock", id: "inv1", input: AdjustInput{Kind: AdjustWaste, Quantity: 51}, wantCode: http.StatusUnprocessableEntity, wantStock: 50},
		{name: "negativeQuantity", id: "inv1", input: AdjustInput{Kind: AdjustReceive, Quantity: -1}, wantCode: http.StatusUnprocessableEntity, wantStock: 50},
		{name: "unknownKind", id: "inv1", input: AdjustInput{Kind: "STEAL", Quantity: 1}, wantCode: http.StatusUnprocessableEntity, wantStock: 50},
		{name: "unknownItem", id: "inv99", input: AdjustInput{Kind: AdjustReceive, Quantity: 1}, wantCode: http.StatusNotFound, wantStock: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			_, err := env.inventory().Adjust(context.Background(), tt.id, tt.input)
			if got := errCode(t, err); got != tt.wantCode {
				t.Fatalf("Adjust() code = %d, want %d (err %v)", got, tt.wantCode, err)
			}
			item, _ := env.store.Current().InventoryItem("inv1")
			if item.Stock != tt.wantStock {
				t.Errorf("Stock = %v, want %v", item.Stock, tt.wantStock)
			}
		})
	}
}

func TestInventoryService_AdjustAnnouncesLowStock(t *testing.T) {
	env := newTestEnv(t)
	env.setHotel(t, "Lakeview", "store@lakeview.test")
	svc := env.inventory()

	if _, err := svc.Adjust(context.Background(), "inv2", AdjustInput{Kind: AdjustCorrection, Quantity: 1}); err != nil {
		t.Fatalf("Adjust() error = %v", err)
	}
	if env.pub.Count(events.TopicInventoryLow) != 1 {
		t.Error("expected a low stock event")
	}
	low := svc.LowStock()
	if len(low) != 1 || low[0].ID != "inv2" {
		t.Errorf("LowStock() = %+v", low)
	}
	if len(env.mailer.LowStock) != 1 {
		t.Errorf("low stock mails = %d, want 1", len(env.mailer.LowStock))
	}
}

func TestInventoryService_Add(t *testing.T) {
	tests := []struct {
		name     string
		input    InventoryItemInput
		wantCode int
	}{
		{name: "valid", input: InventoryItemInput{Name: "Tomatoes", Unit: "kg", Stock: 30, MinLevel: 5, CostPrice: 40}},
		{name: "missingUnit", input: InventoryItemInput{Name: "Tomatoes"}, wantCode: http.StatusUnprocessableEntity},
		{name: "negativeCost", input: InventoryItemInput{Name: "Tomatoes", Unit: "kg", CostPrice: -2}, wantCode: http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			svc := env.inventory()
			item, err := svc.Add(context.Background(), tt.input)
			if got := errCode(t, err); got != tt.wantCode {
				t.Fatalf("Add() code = %d, want %d", got, tt.wantCode)
			}
			if tt.wantCode != 0 {
				return
			}
			if item.ID == "" || len(svc.List()) != 8 {
				t.Errorf("item = %+v, inventory size %d", item, len(svc.List()))
			}
		})
	}
}
