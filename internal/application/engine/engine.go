// Package engine holds the billing and settlement rules. Every operation
// takes a *State and returns a new one; nothing here performs I/O or locking.
package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/dinedash-api/pkg/utils"
)

// MergeStatusPolicy decides the kitchen status of an open order that
// receives more items.
type MergeStatusPolicy string

const (
	// MergePreserveStatus keeps the status the kitchen already set.
	MergePreserveStatus MergeStatusPolicy = "preserve"
	// MergeResetStatus sends a KITCHEN or READY order back to PENDING.
	MergeResetStatus MergeStatusPolicy = "reset"
)

// ParseMergeStatusPolicy maps a config value to a policy.
func ParseMergeStatusPolicy(v string) (MergeStatusPolicy, error) {
	switch MergeStatusPolicy(strings.ToLower(strings.TrimSpace(v))) {
	case "", MergePreserveStatus:
		return MergePreserveStatus, nil
	case MergeResetStatus:
		return MergeResetStatus, nil
	}
	return "", fmt.Errorf("unknown merge status policy %q", v)
}

// Engine applies business rules to application state
type Engine struct {
	ServiceChargeRate float64
	MergePolicy       MergeStatusPolicy
	Now               func() time.Time
	NewID             func(prefix string) string
}

// Option configures an Engine
type Option func(*Engine)

func WithServiceChargeRate(rate float64) Option {
	return func(e *Engine) { e.ServiceChargeRate = rate }
}

func WithMergePolicy(p MergeStatusPolicy) Option {
	return func(e *Engine) { e.MergePolicy = p }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.Now = now }
}

func WithIDGenerator(fn func(prefix string) string) Option {
	return func(e *Engine) { e.NewID = fn }
}

// New creates an engine with a 5% service charge and the preserve merge policy.
func New(opts ...Option) *Engine {
	e := &Engine{
		ServiceChargeRate: DefaultServiceChargeRate,
		MergePolicy:       MergePreserveStatus,
		Now:               time.Now,
		NewID:             utils.NewID,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) now() time.Time {
	return e.Now()
}
