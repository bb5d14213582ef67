package service

import (
	"context"
	"time"

	"github.com/sangkips/dinedash-api/internal/application/engine"
	"github.com/sangkips/dinedash-api/pkg/insights"
)

// AnalyticsService reports business metrics and generated insights
type AnalyticsService struct {
	store    *StateStore
	insights *insights.Client
	loc      *time.Location
}

// NewAnalyticsService creates a new analytics service. Hourly revenue is
// bucketed in loc.
func NewAnalyticsService(store *StateStore, client *insights.Client, loc *time.Location) *AnalyticsService {
	if loc == nil {
		loc = time.Local
	}
	return &AnalyticsService{store: store, insights: client, loc: loc}
}

// Dashboard bundles the metrics snapshot with the hourly chart
type Dashboard struct {
	engine.Metrics
	Hourly   []engine.HourBucket `json:"hourly"`
	LowStock int                 `json:"low_stock"`
}

func (s *AnalyticsService) Metrics() Dashboard {
	st := s.store.Current()
	return Dashboard{
		Metrics:  engine.ComputeMetrics(st),
		Hourly:   engine.HourlyRevenue(st, s.loc),
		LowStock: len(engine.LowStock(st.Inventory)),
	}
}

// Insights asks the configured provider for advice on the current snapshot.
// It never fails; provider errors come back as placeholder text, and a
// cancelled request returns at once even if the provider is still running.
func (s *AnalyticsService) Insights(ctx context.Context) insights.Result {
	st := s.store.Current()
	m := engine.ComputeMetrics(st)

	snap := insights.Snapshot{
		TotalRevenue:  m.TotalRevenue,
		TotalOrders:   m.TotalOrders,
		AvgOrderValue: m.AvgOrderValue,
		Profit:        m.Profit,
		TopItems:      make([]insights.TopItem, 0, len(m.TopItems)),
	}
	for _, t := range m.TopItems {
		snap.TopItems = append(snap.TopItems, insights.TopItem{Name: t.Name, Quantity: t.Quantity})
	}
	for _, it := range engine.LowStock(st.Inventory) {
		snap.LowStock = append(snap.LowStock, it.Name)
	}

	select {
	case res := <-s.insights.Go(ctx, snap):
		return res
	case <-ctx.Done():
		return insights.Result{Text: insights.ErrorText, Placeholder: true, GeneratedAt: time.Now().UTC()}
	}
}
