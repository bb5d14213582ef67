package engine

import (
	"testing"
	"time"

	"github.com/sangkips/dinedash-api/internal/domain/entity"
	"github.com/sangkips/dinedash-api/internal/domain/enum"
)

func TestComputeMetrics(t *testing.T) {
	s := DefaultState()
	at := time.Date(2024, 5, 10, 13, 30, 0, 0, time.UTC)
	checkout := time.Date(2024, 5, 10, 11, 0, 0, 0, time.UTC)

	s.Orders = []entity.Order{
		// paneer: recipe cost 0.2*400 + 0.05*550 = 107.5
		{ID: "o1", Items: []entity.LineItem{line(t, s, "1", 2)}, Total: 616, Timestamp: at},
		// naan has no recipe: 30% of 60 per unit
		{ID: "o2", Items: []entity.LineItem{line(t, s, "3", 5)}, Total: 330, Timestamp: at},
	}
	s.Bookings = []entity.Booking{
		{ID: "b1", Status: enum.BookingStatusCompleted, RoomCharges: 5000, Total: 5200, CheckOut: &checkout},
		{ID: "b2", Status: enum.BookingStatusActive, RoomCharges: 9000},
	}

	m := ComputeMetrics(s)
	if m.TotalRevenue != 5946 || m.TotalOrders != 3 || m.AvgOrderValue != 1982 {
		t.Errorf("revenue %v orders %v avg %v", m.TotalRevenue, m.TotalOrders, m.AvgOrderValue)
	}
	wantProfit := (616 - 215.0) + (330 - 90.0) + 4000
	if m.Profit != wantProfit {
		t.Errorf("profit = %v, want %v", m.Profit, wantProfit)
	}
	if len(m.TopItems) != 2 || m.TopItems[0] != (TopItem{Name: "Garlic Naan", Quantity: 5}) {
		t.Errorf("top items = %+v", m.TopItems)
	}

	hourly := HourlyRevenue(s, time.UTC)
	if len(hourly) != 24 || hourly[13].Amount != 946 || hourly[11].Amount != 5000 || hourly[13].Label != "13:00" {
		t.Errorf("hourly[11]=%+v hourly[13]=%+v", hourly[11], hourly[13])
	}
}

func TestComputeMetricsEmpty(t *testing.T) {
	m := ComputeMetrics(&State{})
	if m.TotalOrders != 0 || m.AvgOrderValue != 0 || len(m.TopItems) != 0 {
		t.Errorf("metrics = %+v", m)
	}
}
