package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sangkips/dinedash-api/internal/domain/enum"
	"github.com/sangkips/dinedash-api/pkg/events"
)

func TestOrderService_SubmitValidation(t *testing.T) {
	tests := []struct {
		name     string
		input    SubmitOrderInput
		wantCode int
	}{
		{
			name:     "emptyCart",
			input:    SubmitOrderInput{Type: enum.OrderTypeTakeaway},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:     "dineInWithoutTable",
			input:    SubmitOrderInput{Type: enum.OrderTypeDineIn, Items: []CartLine{{MenuItemID: "1", Quantity: 1}}},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:     "unknownTable",
			input:    SubmitOrderInput{TableID: "t99", Items: []CartLine{{MenuItemID: "1", Quantity: 1}}},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "roomServiceWithoutBooking",
			input:    SubmitOrderInput{Type: enum.OrderTypeRoomService, Items: []CartLine{{MenuItemID: "1", Quantity: 1}}},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "chargeToRoomUnknownBooking",
			input: SubmitOrderInput{
				Type:          enum.OrderTypeTakeaway,
				BookingID:     "BK-404",
				PaymentMethod: enum.PaymentChargeToRoom,
				Items:         []CartLine{{MenuItemID: "1", Quantity: 1}},
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "unknownMenuItem",
			input:    SubmitOrderInput{Items: []CartLine{{MenuItemID: "nope", Quantity: 1}}},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:     "zeroQuantity",
			input:    SubmitOrderInput{Items: []CartLine{{MenuItemID: "1", Quantity: 0}}},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:     "customItemWithoutName",
			input:    SubmitOrderInput{Items: []CartLine{{Price: 40, Quantity: 1}}},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:     "negativeDiscount",
			input:    SubmitOrderInput{Discount: -5, Items: []CartLine{{MenuItemID: "1", Quantity: 1}}},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:     "unknownPaymentMethod",
			input:    SubmitOrderInput{PaymentMethod: "BARTER", Items: []CartLine{{MenuItemID: "1", Quantity: 1}}},
			wantCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			svc := env.orders()
			before := env.store.Current()

			_, err := svc.Submit(context.Background(), tt.input)
			if got := errCode(t, err); got != tt.wantCode {
				t.Fatalf("Submit() code = %d, want %d (err %v)", got, tt.wantCode, err)
			}
			if env.store.Current() != before {
				t.Error("rejected submission changed the state")
			}
			if len(env.pub.Topics) != 0 {
				t.Errorf("rejected submission published %v", env.pub.Topics)
			}
		})
	}
}

func TestOrderService_SubmitDineInMerges(t *testing.T) {
	env := newTestEnv(t)
	svc := env.orders()
	ctx := context.Background()

	first, err := svc.Submit(ctx, SubmitOrderInput{TableID: "t1", Items: []CartLine{{MenuItemID: "1", Quantity: 2}}})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if first.Merged {
		t.Error("first submission should open a new tab")
	}
	if first.Order.Type != enum.OrderTypeDineIn {
		t.Errorf("Type = %s, want DINE_IN", first.Order.Type)
	}
	if first.Bill.Total != 616 {
		t.Errorf("Total = %v, want 616", first.Bill.Total)
	}
	table, _ := env.store.Current().Table("t1")
	if table.Status != enum.TableStatusOccupied || table.CurrentOrderID != first.Order.ID {
		t.Errorf("table = %+v, want occupied by %s", table, first.Order.ID)
	}

	second, err := svc.Submit(ctx, SubmitOrderInput{TableID: "t1", Items: []CartLine{{MenuItemID: "3", Quantity: 1}}})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !second.Merged || second.Order.ID != first.Order.ID {
		t.Errorf("second submission merged = %v into %s, want merge into %s", second.Merged, second.Order.ID, first.Order.ID)
	}
	if len(second.Order.Items) != 2 {
		t.Errorf("merged items = %d, want 2", len(second.Order.Items))
	}
	if second.Order.CustomerName != "Walk-in Guest" {
		t.Errorf("CustomerName = %q", second.Order.CustomerName)
	}

	if got := env.pub.Count(events.TopicOrderCreated); got != 1 {
		t.Errorf("created events = %d, want 1", got)
	}
	if got := env.pub.Count(events.TopicOrderMerged); got != 1 {
		t.Errorf("merged events = %d, want 1", got)
	}
	if got := env.pub.Count(events.TopicKitchenTicket); got != 2 {
		t.Errorf("kitchen tickets = %d, want 2", got)
	}
	if got := testutil.ToFloat64(env.metrics.OrdersSubmitted.WithLabelValues("DINE_IN", "true")); got != 1 {
		t.Errorf("merged submissions metric = %v, want 1", got)
	}
}

func TestOrderService_ChargeToRoom(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	booking, err := env.hotel().CheckIn(ctx, "r101", StayInput{GuestName: "Asha Rao", Phone: "98450", GovID: "AADHAAR-1", Nights: 2})
	if err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}

	res, err := env.orders().Submit(ctx, SubmitOrderInput{
		Type:          enum.OrderTypeTakeaway,
		BookingID:     booking.ID,
		PaymentMethod: enum.PaymentChargeToRoom,
		Items:         []CartLine{{MenuItemID: "3", Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if res.Order.RoomID != "r101" || res.BookingID != booking.ID {
		t.Errorf("order room = %q booking = %q", res.Order.RoomID, res.BookingID)
	}
	if res.Order.CustomerName != "Asha Rao" || res.Order.GovID != "AADHAAR-1" {
		t.Errorf("guest identity not taken from the booking: %+v", res.Order)
	}
	if res.Order.TableID != "" {
		t.Errorf("TableID = %q, want empty for non dine-in", res.Order.TableID)
	}

	b, _ := env.store.Current().Booking(booking.ID)
	if b.FoodCharges != res.Bill.Total {
		t.Errorf("FoodCharges = %v, want %v", b.FoodCharges, res.Bill.Total)
	}
	if env.pub.Count(events.TopicFolioCharged) != 1 {
		t.Error("expected a folio charged event")
	}
}

func TestOrderService_CustomItem(t *testing.T) {
	env := newTestEnv(t)
	res, err := env.orders().Submit(context.Background(), SubmitOrderInput{
		Items: []CartLine{{Name: "Extra Cheese", Price: 40, Quantity: 1, Note: "on the side"}},
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	li := res.Order.Items[0]
	if !strings.HasPrefix(li.ID, "custom-") {
		t.Errorf("custom line id = %q", li.ID)
	}
	if li.Category != "Custom" || li.TaxRate != CustomItemTaxRate || !li.IsVeg {
		t.Errorf("custom line = %+v", li.MenuItem)
	}
	if li.Note != "on the side" {
		t.Errorf("Note = %q", li.Note)
	}
}

func TestOrderService_LowStockCrossing(t *testing.T) {
	env := newTestEnv(t)
	env.setHotel(t, "Lakeview", "ops@lakeview.test")
	svc := env.orders()
	ctx := context.Background()

	// 20 cold coffees use 5 L of milk, taking it to its minimum level.
	if _, err := svc.Submit(ctx, SubmitOrderInput{Items: []CartLine{{MenuItemID: "5", Quantity: 20}}}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if env.pub.Count(events.TopicInventoryLow) != 1 {
		t.Fatalf("low stock events = %d, want 1", env.pub.Count(events.TopicInventoryLow))
	}
	if len(env.mailer.LowStock) != 1 || env.mailer.LowStock[0].Items[0].Name != "Milk" {
		t.Fatalf("low stock mails = %+v", env.mailer.LowStock)
	}

	// Already low: no second alert.
	if _, err := svc.Submit(ctx, SubmitOrderInput{Items: []CartLine{{MenuItemID: "5", Quantity: 1}}}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(env.mailer.LowStock) != 1 {
		t.Errorf("low stock mails = %d, want 1", len(env.mailer.LowStock))
	}
	if got := testutil.ToFloat64(env.metrics.LowStockItems); got != 1 {
		t.Errorf("low stock gauge = %v, want 1", got)
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		steps    []enum.OrderStatus
		wantCode int
		want     enum.OrderStatus
	}{
		{name: "forward", steps: []enum.OrderStatus{enum.OrderStatusKitchen, enum.OrderStatusReady}, want: enum.OrderStatusReady},
		{name: "backwards", steps: []enum.OrderStatus{enum.OrderStatusReady, enum.OrderStatusKitchen}, wantCode: http.StatusConflict, want: enum.OrderStatusReady},
		{name: "afterCompletion", steps: []enum.OrderStatus{enum.OrderStatusCompleted, enum.OrderStatusCancelled}, wantCode: http.StatusConflict, want: enum.OrderStatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			svc := env.orders()
			ctx := context.Background()
			res, err := svc.Submit(ctx, SubmitOrderInput{TableID: "t2", Items: []CartLine{{MenuItemID: "4", Quantity: 1}}})
			if err != nil {
				t.Fatalf("Submit() error = %v", err)
			}

			var lastErr error
			for _, st := range tt.steps {
				_, lastErr = svc.UpdateStatus(ctx, res.Order.ID, st)
			}
			if got := errCode(t, lastErr); got != tt.wantCode {
				t.Fatalf("last UpdateStatus() code = %d, want %d", got, tt.wantCode)
			}
			o, _ := svc.Get(res.Order.ID)
			if o.Status != tt.want {
				t.Errorf("Status = %s, want %s", o.Status, tt.want)
			}
		})
	}

	t.Run("unknownOrder", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.orders().UpdateStatus(context.Background(), "ORD-404", enum.OrderStatusReady)
		if got := errCode(t, err); got != http.StatusNotFound {
			t.Errorf("code = %d, want 404", got)
		}
	})
}

func TestOrderService_CompletionFreesTable(t *testing.T) {
	env := newTestEnv(t)
	svc := env.orders()
	ctx := context.Background()
	res, err := svc.Submit(ctx, SubmitOrderInput{TableID: "t3", Items: []CartLine{{MenuItemID: "6", Quantity: 4}}})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, res.Order.ID, enum.OrderStatusCompleted); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	table, _ := env.store.Current().Table("t3")
	if table.Status != enum.TableStatusVacant || table.CurrentOrderID != "" {
		t.Errorf("table = %+v, want vacant", table)
	}
	if len(svc.KitchenQueue()) != 0 {
		t.Error("completed order still queued")
	}
}

func TestOrderService_HeldCarts(t *testing.T) {
	env := newTestEnv(t)
	svc := env.orders()
	ctx := context.Background()

	if _, err := svc.HoldCart(ctx, nil, "empty"); errCode(t, err) != http.StatusUnprocessableEntity {
		t.Errorf("holding an empty cart: err = %v", err)
	}

	held, err := svc.HoldCart(ctx, []CartLine{{MenuItemID: "2", Quantity: 1}}, " Table by the window ")
	if err != nil {
		t.Fatalf("HoldCart() error = %v", err)
	}
	if held.Label != "Table by the window" {
		t.Errorf("Label = %q", held.Label)
	}
	if len(svc.ListHeld()) != 1 {
		t.Fatalf("held carts = %d, want 1", len(svc.ListHeld()))
	}

	resumed, err := svc.ResumeHeld(ctx, held.ID)
	if err != nil {
		t.Fatalf("ResumeHeld() error = %v", err)
	}
	if resumed.ID != held.ID || len(resumed.Items) != 1 {
		t.Errorf("resumed = %+v", resumed)
	}
	if len(svc.ListHeld()) != 0 {
		t.Error("resumed cart still held")
	}
	if _, err := svc.ResumeHeld(ctx, held.ID); errCode(t, err) != http.StatusNotFound {
		t.Errorf("resuming twice: err = %v", err)
	}
}

func TestOrderService_Preview(t *testing.T) {
	env := newTestEnv(t)
	bill, err := env.orders().Preview([]CartLine{{MenuItemID: "1", Quantity: 2}}, 16)
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if bill.Total != 600 {
		t.Errorf("Total = %v, want 600", bill.Total)
	}
	if len(env.store.Current().Orders) != 0 {
		t.Error("preview committed an order")
	}
}
