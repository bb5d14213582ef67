package service

import (
	"context"
	"log"
	"time"

	"github.com/sangkips/dinedash-api/internal/application/engine"
	"github.com/sangkips/dinedash-api/pkg/apperror"
	"github.com/sangkips/dinedash-api/pkg/events"
)

// Broadcaster publishes domain events after a commit. Failures are logged.
type Broadcaster struct {
	pub     events.Publisher
	timeout time.Duration
}

func NewBroadcaster(pub events.Publisher) *Broadcaster {
	if pub == nil {
		pub = events.NoopPublisher{}
	}
	return &Broadcaster{pub: pub, timeout: 2 * time.Second}
}

func (b *Broadcaster) Emit(topic string, payload interface{}) {
	if b == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()
	if err := events.PublishJSON(ctx, b.pub, topic, payload); err != nil {
		log.Printf("events: publish %s: %v", topic, err)
	}
}

// ruleError maps an engine rule violation to its HTTP error.
func ruleError(err error) error {
	return apperror.FromRule(err,
		engine.ErrAlreadyPaid,
		engine.ErrRoomUnavailable,
		engine.ErrInvalidTransition,
	)
}

// errNotFound is returned from inside a store update to abort it.
func errNotFound(resource string) error {
	return apperror.NewNotFoundError(resource)
}

func fieldError(field, message string) error {
	return apperror.NewValidationError([]apperror.FieldError{{Field: field, Message: message}})
}
