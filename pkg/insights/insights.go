// Package insights turns a sales metrics snapshot into short business advice.
// Providers may be slow or fail; Client bounds every call with a timeout and
// falls back to placeholder text instead of returning an error.
package insights

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

const (
	// NoInsightsText is returned when a provider produces nothing.
	NoInsightsText = "No insights available at this time."
	// ErrorText is returned when a provider fails or times out.
	ErrorText = "Error generating AI insights."
)

// TopItem is one best seller in the snapshot.
type TopItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Snapshot is the data handed to a provider.
type Snapshot struct {
	TotalRevenue  float64   `json:"total_revenue"`
	TotalOrders   int       `json:"total_orders"`
	AvgOrderValue float64   `json:"avg_order_value"`
	Profit        float64   `json:"profit"`
	TopItems      []TopItem `json:"top_items"`
	LowStock      []string  `json:"low_stock,omitempty"`
}

// Provider generates free text advice for a snapshot.
type Provider interface {
	Generate(ctx context.Context, snap Snapshot) (string, error)
}

// Result is what Client hands back to callers.
type Result struct {
	Text        string    `json:"text"`
	Placeholder bool      `json:"placeholder"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Client wraps a Provider with a deadline and fallback text.
type Client struct {
	provider Provider
	timeout  time.Duration
}

func NewClient(provider Provider, timeout time.Duration) *Client {
	if provider == nil {
		provider = HeuristicProvider{}
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{provider: provider, timeout: timeout}
}

// Generate calls the provider and never fails; errors become placeholder text.
func (c *Client) Generate(ctx context.Context, snap Snapshot) Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	text, err := c.provider.Generate(ctx, snap)
	now := time.Now().UTC()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Printf("insights: provider timed out after %v", c.timeout)
		} else {
			log.Printf("insights: provider error: %v", err)
		}
		return Result{Text: ErrorText, Placeholder: true, GeneratedAt: now}
	}
	if strings.TrimSpace(text) == "" {
		return Result{Text: NoInsightsText, Placeholder: true, GeneratedAt: now}
	}
	return Result{Text: text, GeneratedAt: now}
}

// Go runs Generate in the background. The channel receives exactly one result.
func (c *Client) Go(ctx context.Context, snap Snapshot) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		out <- c.Generate(ctx, snap)
	}()
	return out
}

// HeuristicProvider derives advice locally from the snapshot. It is the
// default when no remote endpoint is configured.
type HeuristicProvider struct{}

func (HeuristicProvider) Generate(_ context.Context, snap Snapshot) (string, error) {
	if snap.TotalOrders == 0 {
		return "", nil
	}
	var b strings.Builder
	if len(snap.TopItems) > 0 {
		top := snap.TopItems[0]
		fmt.Fprintf(&b, "- %s leads sales with %d sold; keep it prominent and well stocked.\n", top.Name, top.Quantity)
	}
	if len(snap.LowStock) > 0 {
		fmt.Fprintf(&b, "- Reorder soon: %s at or below minimum level.\n", strings.Join(snap.LowStock, ", "))
	} else {
		b.WriteString("- Stock levels are healthy across tracked ingredients.\n")
	}
	margin := 0.0
	if snap.TotalRevenue > 0 {
		margin = snap.Profit / snap.TotalRevenue * 100
	}
	fmt.Fprintf(&b, "- %d orders averaging %.2f; estimated margin %.0f%%.", snap.TotalOrders, snap.AvgOrderValue, margin)
	return b.String(), nil
}
