package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sangkips/dinedash-api/pkg/insights"
)

type stubProvider struct {
	text string
	err  error
	got  insights.Snapshot
}

func (p *stubProvider) Generate(_ context.Context, snap insights.Snapshot) (string, error) {
	p.got = snap
	return p.text, p.err
}

func TestAnalyticsService_Insights(t *testing.T) {
	tests := []struct {
		name            string
		provider        *stubProvider
		wantText        string
		wantPlaceholder bool
	}{
		{name: "providerText", provider: &stubProvider{text: "- Push biryani at lunch"}, wantText: "- Push biryani at lunch"},
		{name: "providerEmpty", provider: &stubProvider{}, wantText: insights.NoInsightsText, wantPlaceholder: true},
		{name: "providerError", provider: &stubProvider{err: errors.New("quota")}, wantText: insights.ErrorText, wantPlaceholder: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			ctx := context.Background()
			if _, err := env.orders().Submit(ctx, SubmitOrderInput{Items: []CartLine{{MenuItemID: "2", Quantity: 3}}}); err != nil {
				t.Fatalf("Submit() error = %v", err)
			}
			if _, err := env.inventory().Adjust(ctx, "inv7", AdjustInput{Kind: AdjustCorrection, Quantity: 0.5}); err != nil {
				t.Fatalf("Adjust() error = %v", err)
			}

			svc := NewAnalyticsService(env.store, insights.NewClient(tt.provider, time.Second), time.UTC)
			res := svc.Insights(ctx)
			if res.Text != tt.wantText || res.Placeholder != tt.wantPlaceholder {
				t.Errorf("Insights() = %+v", res)
			}
			snap := tt.provider.got
			if snap.TotalOrders != 1 || len(snap.TopItems) != 1 || snap.TopItems[0].Name != "Chicken Biryani" {
				t.Errorf("snapshot = %+v", snap)
			}
			if len(snap.LowStock) != 1 || snap.LowStock[0] != "Spices Mix" {
				t.Errorf("LowStock = %v", snap.LowStock)
			}
		})
	}
}

type blockingProvider struct {
	release chan struct{}
}

func (p *blockingProvider) Generate(context.Context, insights.Snapshot) (string, error) {
	<-p.release
	return "late", nil
}

func TestAnalyticsService_InsightsReturnsOnCancel(t *testing.T) {
	env := newTestEnv(t)
	provider := &blockingProvider{release: make(chan struct{})}
	defer close(provider.release)

	svc := NewAnalyticsService(env.store, insights.NewClient(provider, time.Minute), time.UTC)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan insights.Result, 1)
	go func() { done <- svc.Insights(ctx) }()

	select {
	case res := <-done:
		if !res.Placeholder || res.Text != insights.ErrorText {
			t.Errorf("Insights() = %+v, want error placeholder", res)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Insights() blocked on a provider that ignores cancellation")
	}
}

func TestAnalyticsService_Metrics(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.orders().Submit(context.Background(), SubmitOrderInput{Items: []CartLine{{MenuItemID: "3", Quantity: 10}}}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	d := NewAnalyticsService(env.store, insights.NewClient(nil, 0), time.UTC).Metrics()
	if d.TotalOrders != 1 || d.TotalRevenue != 660 {
		t.Errorf("metrics = %+v", d.Metrics)
	}
	if len(d.Hourly) != 24 || d.Hourly[12].Amount != 660 {
		t.Errorf("hourly[12] = %+v", d.Hourly[12])
	}
}
