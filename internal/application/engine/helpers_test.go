package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/sangkips/dinedash-api/internal/domain/entity"
)

var testEpoch = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

// stepClock advances one minute on every reading.
type stepClock struct {
	t time.Time
}

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

func newTestEngine(opts ...Option) *Engine {
	clock := &stepClock{t: testEpoch}
	n := 0
	base := []Option{
		WithClock(clock.Now),
		WithIDGenerator(func(prefix string) string {
			n++
			return fmt.Sprintf("%s-%d", prefix, n)
		}),
	}
	return New(append(base, opts...)...)
}

func line(t *testing.T, s *State, menuID string, qty int) entity.LineItem {
	t.Helper()
	m, ok := s.MenuItem(menuID)
	if !ok {
		t.Fatalf("menu item %q not found", menuID)
	}
	return entity.LineItem{MenuItem: m, Quantity: qty}
}

func mustNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
