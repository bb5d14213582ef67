package engine

import (
	"github.com/sangkips/dinedash-api/internal/domain/entity"
	"github.com/sangkips/dinedash-api/pkg/money"
)

const (
	DefaultServiceChargeRate = 0.05
	// DefaultTaxRate applies to lines whose tax rate is missing, zero or invalid.
	DefaultTaxRate = 5.0
)

// Bill is the computed money breakdown of a set of lines
type Bill struct {
	Subtotal      float64 `json:"subtotal"`
	Tax           float64 `json:"tax"`
	ServiceCharge float64 `json:"service_charge"`
	Discount      float64 `json:"discount"`
	Total         float64 `json:"total"`
}

// CalculateBill computes subtotal, tax and service charge to 2 decimals and
// a whole-unit total that is never negative. Malformed numbers count as 0.
func CalculateBill(items []entity.LineItem, discount, serviceChargeRate float64) Bill {
	var subtotal, tax float64
	for _, li := range items {
		line := money.Safe(li.Price) * float64(quantity(li.Quantity))
		subtotal += line
		tax += line * lineTaxRate(li.TaxRate) / 100
	}

	b := Bill{
		Subtotal: money.Round2(subtotal),
		Tax:      money.Round2(tax),
		Discount: money.NonNegative(money.Safe(discount)),
	}
	b.ServiceCharge = money.Round2(b.Subtotal * money.Safe(serviceChargeRate))
	b.Total = money.NonNegative(money.RoundWhole(b.Subtotal + b.Tax + b.ServiceCharge - b.Discount))
	return b
}

// Bill computes a bill with the engine's service charge rate.
func (e *Engine) Bill(items []entity.LineItem, discount float64) Bill {
	return CalculateBill(items, discount, e.ServiceChargeRate)
}

func (b Bill) applyTo(o *entity.Order) {
	o.Subtotal = b.Subtotal
	o.Tax = b.Tax
	o.ServiceCharge = b.ServiceCharge
	o.Discount = b.Discount
	o.Total = b.Total
}

func lineTaxRate(rate float64) float64 {
	rate = money.Safe(rate)
	if rate <= 0 {
		return DefaultTaxRate
	}
	return rate
}

func quantity(q int) int {
	if q < 0 {
		return 0
	}
	return q
}
