package insights

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type providerFunc func(ctx context.Context, snap Snapshot) (string, error)

func (f providerFunc) Generate(ctx context.Context, snap Snapshot) (string, error) {
	return f(ctx, snap)
}

var sample = Snapshot{
	TotalRevenue:  1000,
	TotalOrders:   4,
	AvgOrderValue: 250,
	Profit:        600,
	TopItems:      []TopItem{{Name: "Chicken Biryani", Quantity: 6}},
	LowStock:      []string{"Milk"},
}

func TestClientGenerate(t *testing.T) {
	tests := []struct {
		name            string
		provider        Provider
		wantText        string
		wantPlaceholder bool
	}{
		{
			name:     "providerText",
			provider: providerFunc(func(context.Context, Snapshot) (string, error) { return "- sell more", nil }),
			wantText: "- sell more",
		},
		{
			name:            "emptyText",
			provider:        providerFunc(func(context.Context, Snapshot) (string, error) { return "  ", nil }),
			wantText:        NoInsightsText,
			wantPlaceholder: true,
		},
		{
			name:            "providerError",
			provider:        providerFunc(func(context.Context, Snapshot) (string, error) { return "", errors.New("boom") }),
			wantText:        ErrorText,
			wantPlaceholder: true,
		},
		{
			name: "slowProvider",
			provider: providerFunc(func(ctx context.Context, _ Snapshot) (string, error) {
				<-ctx.Done()
				return "", ctx.Err()
			}),
			wantText:        ErrorText,
			wantPlaceholder: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient(tt.provider, 20*time.Millisecond)
			got := c.Generate(context.Background(), sample)
			if got.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", got.Text, tt.wantText)
			}
			if got.Placeholder != tt.wantPlaceholder {
				t.Errorf("Placeholder = %v, want %v", got.Placeholder, tt.wantPlaceholder)
			}
		})
	}
}

func TestClientGoDeliversOneResult(t *testing.T) {
	c := NewClient(HeuristicProvider{}, time.Second)
	select {
	case res := <-c.Go(context.Background(), sample):
		if res.Placeholder {
			t.Errorf("unexpected placeholder: %q", res.Text)
		}
	case <-time.After(time.Second):
		t.Fatal("no result")
	}
}

func TestHeuristicProvider(t *testing.T) {
	text, err := HeuristicProvider{}.Generate(context.Background(), sample)
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	for _, want := range []string{"Chicken Biryani", "Milk", "60%"} {
		if !strings.Contains(text, want) {
			t.Errorf("text %q missing %q", text, want)
		}
	}

	empty, _ := HeuristicProvider{}.Generate(context.Background(), Snapshot{})
	if empty != "" {
		t.Errorf("empty snapshot text = %q, want empty", empty)
	}
}

func TestHTTPProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Data.TotalOrders != 4 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(generateResponse{Text: "- push biryani"})
	}))
	defer srv.Close()

	got, err := NewHTTPProvider(srv.URL, "secret", srv.Client()).Generate(context.Background(), sample)
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if got != "- push biryani" {
		t.Errorf("text = %q", got)
	}

	if _, err := NewHTTPProvider(srv.URL, "wrong", srv.Client()).Generate(context.Background(), sample); err == nil {
		t.Error("expected error for rejected key")
	}
}

func TestNewProviderFromConfig(t *testing.T) {
	if _, ok := NewProviderFromConfig("", "").(HeuristicProvider); !ok {
		t.Error("empty endpoint should use HeuristicProvider")
	}
	if _, ok := NewProviderFromConfig("http://x", "k").(*HTTPProvider); !ok {
		t.Error("endpoint should use HTTPProvider")
	}
}
