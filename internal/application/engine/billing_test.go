package engine

import (
	"math"
	"testing"

	"github.com/sangkips/dinedash-api/internal/domain/entity"
)

func item(price float64, qty int, taxRate float64) entity.LineItem {
	return entity.LineItem{MenuItem: entity.MenuItem{ID: "x", Price: price, TaxRate: taxRate}, Quantity: qty}
}

func TestCalculateBill(t *testing.T) {
	tests := []struct {
		name     string
		items    []entity.LineItem
		discount float64
		rate     float64
		want     Bill
	}{
		{
			name:  "twoLinesDefaultServiceCharge",
			items: []entity.LineItem{item(280, 1, 5), item(60, 2, 5)},
			rate:  DefaultServiceChargeRate,
			want:  Bill{Subtotal: 400, Tax: 20, ServiceCharge: 20, Total: 440},
		},
		{
			name:  "garlicNaanPair",
			items: []entity.LineItem{item(60, 2, 5)},
			rate:  DefaultServiceChargeRate,
			want:  Bill{Subtotal: 120, Tax: 6, ServiceCharge: 6, Total: 132},
		},
		{
			name:  "higherTaxRateRoundsTotal",
			items: []entity.LineItem{item(120, 1, 12)},
			rate:  DefaultServiceChargeRate,
			want:  Bill{Subtotal: 120, Tax: 14.4, ServiceCharge: 6, Total: 140},
		},
		{
			name:  "missingTaxRateDefaultsToFive",
			items: []entity.LineItem{item(100, 1, 0)},
			rate:  0,
			want:  Bill{Subtotal: 100, Tax: 5, ServiceCharge: 0, Total: 105},
		},
		{
			name:  "invalidTaxRateDefaultsToFive",
			items: []entity.LineItem{item(100, 1, math.NaN())},
			rate:  0,
			want:  Bill{Subtotal: 100, Tax: 5, ServiceCharge: 0, Total: 105},
		},
		{
			name:     "discountAppliedBeforeRounding",
			items:    []entity.LineItem{item(99.99, 1, 5)},
			discount: 10.2,
			rate:     DefaultServiceChargeRate,
			want:     Bill{Subtotal: 99.99, Tax: 5, ServiceCharge: 5, Discount: 10.2, Total: 100},
		},
		{
			name:     "discountLargerThanBillClampsToZero",
			items:    []entity.LineItem{item(50, 1, 5)},
			discount: 500,
			rate:     DefaultServiceChargeRate,
			want:     Bill{Subtotal: 50, Tax: 2.5, ServiceCharge: 2.5, Discount: 500, Total: 0},
		},
		{
			name:  "nanPriceCountsAsZero",
			items: []entity.LineItem{item(math.NaN(), 3, 5), item(10, 1, 5)},
			rate:  DefaultServiceChargeRate,
			want:  Bill{Subtotal: 10, Tax: 0.5, ServiceCharge: 0.5, Total: 11},
		},
		{
			name:  "negativeQuantityCountsAsZero",
			items: []entity.LineItem{item(100, -2, 5)},
			rate:  DefaultServiceChargeRate,
			want:  Bill{},
		},
		{
			name:     "nanInputsNeverLeak",
			items:    []entity.LineItem{item(10, 1, 5)},
			discount: math.NaN(),
			rate:     math.Inf(1),
			want:     Bill{Subtotal: 10, Tax: 0.5, ServiceCharge: 0, Total: 11},
		},
		{
			name: "emptyCart",
			rate: DefaultServiceChargeRate,
			want: Bill{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateBill(tt.items, tt.discount, tt.rate)
			if got != tt.want {
				t.Errorf("CalculateBill() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCalculateBillIsIdempotent(t *testing.T) {
	items := []entity.LineItem{item(33.33, 3, 5), item(0.1, 7, 12), item(280, 1, 5)}
	first := CalculateBill(items, 12.5, DefaultServiceChargeRate)
	second := CalculateBill(items, 12.5, DefaultServiceChargeRate)
	if first != second {
		t.Fatalf("bill changed between calls: %+v vs %+v", first, second)
	}
	if items[0].Quantity != 3 || items[1].Price != 0.1 {
		t.Fatal("input lines were modified")
	}
}

func TestEngineBillUsesConfiguredRate(t *testing.T) {
	e := New(WithServiceChargeRate(0.1))
	got := e.Bill([]entity.LineItem{item(100, 1, 5)}, 0)
	if got.ServiceCharge != 10 || got.Total != 115 {
		t.Errorf("Bill() = %+v, want service charge 10 and total 115", got)
	}
}
