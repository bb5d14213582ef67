package service

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/sangkips/dinedash-api/internal/application/engine"
	"github.com/sangkips/dinedash-api/internal/domain/entity"
	"github.com/sangkips/dinedash-api/internal/domain/repository"
	"github.com/sangkips/dinedash-api/pkg/telemetry"
)

// StateStore owns the single in-memory State. Updates are serialized and
// each committed State is handed to a background writer; persistence
// failures are logged and retried with the next commit, never returned.
type StateStore struct {
	mu     sync.RWMutex
	state  *engine.State
	closed bool

	repo    repository.SnapshotRepository
	metrics *telemetry.Metrics
	timeout time.Duration

	pending chan *engine.State
	done    chan struct{}
	started bool
	saved   map[string]string // owned by the writer goroutine after Load
}

// NewStateStore creates a store holding the default state. repo may be nil
// for a purely in-memory store.
func NewStateStore(repo repository.SnapshotRepository, metrics *telemetry.Metrics, persistTimeout time.Duration) *StateStore {
	if persistTimeout <= 0 {
		persistTimeout = 5 * time.Second
	}
	return &StateStore{
		state:   engine.DefaultState(),
		repo:    repo,
		metrics: metrics,
		timeout: persistTimeout,
		pending: make(chan *engine.State, 1),
		done:    make(chan struct{}),
		saved:   map[string]string{},
	}
}

// Load reads every snapshot key, falling back to the default for keys that
// are missing or fail to decode, and starts the background writer. It must
// be called before the first Update.
func (s *StateStore) Load(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	docs, err := s.repo.LoadAll(ctx)
	if err != nil {
		return err
	}

	valid := map[string]json.RawMessage{}
	saved := map[string]string{}
	fellBack := false
	for _, kind := range engine.Kinds {
		doc, ok := docs[kind]
		if !ok {
			fellBack = true
			continue
		}
		payload := []byte(doc.Payload)
		decoded := &engine.State{}
		if bytes.Equal(bytes.TrimSpace(payload), []byte("null")) || json.Unmarshal(payload, decoded.Collection(kind)) != nil {
			log.Printf("state: snapshot key %q is corrupt, using defaults", kind)
			fellBack = true
			continue
		}
		valid[kind] = payload
		saved[kind] = doc.Payload
	}

	state := engine.DefaultState()
	merged, err := json.Marshal(valid)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(merged, state); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.saved = saved
	if !s.started {
		s.started = true
		go s.run()
	}
	if fellBack {
		s.enqueue(state)
	}
	log.Printf("state: loaded %d of %d snapshot keys", len(saved), len(engine.Kinds))
	return nil
}

// Current returns the committed state. Callers must treat it as read-only.
func (s *StateStore) Current() *engine.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Update applies fn to the current state and commits its result. A result
// identical to the input (a no-op) is not persisted. An error leaves the
// committed state untouched.
func (s *StateStore) Update(fn func(*engine.State) (*engine.State, error)) (*engine.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.state)
	if err != nil {
		return s.state, err
	}
	if next == nil || next == s.state {
		return s.state, nil
	}
	s.state = next
	if !s.closed && s.repo != nil {
		s.enqueue(next)
	}
	return next, nil
}

// Close stops accepting writes and waits for the writer to flush.
func (s *StateStore) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	started := s.started
	close(s.pending)
	s.mu.Unlock()

	if started {
		<-s.done
	}
}

// enqueue replaces any state still waiting to be written. Callers hold mu.
func (s *StateStore) enqueue(st *engine.State) {
	select {
	case s.pending <- st:
	default:
		select {
		case <-s.pending:
		default:
		}
		s.pending <- st
	}
}

func (s *StateStore) run() {
	defer close(s.done)
	for st := range s.pending {
		s.persist(st)
	}
}

func (s *StateStore) persist(st *engine.State) {
	now := time.Now().UTC()
	var docs []entity.StateDocument
	for _, kind := range engine.Kinds {
		payload, err := json.Marshal(st.Collection(kind))
		if err != nil {
			log.Printf("state: encode %q: %v", kind, err)
			continue
		}
		if s.saved[kind] == string(payload) {
			continue
		}
		docs = append(docs, entity.StateDocument{Kind: kind, Payload: string(payload), UpdatedAt: now})
	}
	if len(docs) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.repo.Save(ctx, docs); err != nil {
		log.Printf("state: persist %d snapshot key(s) failed: %v", len(docs), err)
		if s.metrics != nil {
			for _, d := range docs {
				s.metrics.PersistFailures.WithLabelValues(d.Kind).Inc()
			}
		}
		return
	}
	for _, d := range docs {
		s.saved[d.Kind] = d.Payload
	}
}
