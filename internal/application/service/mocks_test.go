package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sangkips/dinedash-api/internal/application/engine"
	"github.com/sangkips/dinedash-api/internal/domain/entity"
	"github.com/sangkips/dinedash-api/pkg/apperror"
	"github.com/sangkips/dinedash-api/pkg/email"
	"github.com/sangkips/dinedash-api/pkg/telemetry"
)

// MockSnapshotRepository is a test mock for SnapshotRepository
type MockSnapshotRepository struct {
	mu       sync.Mutex
	docs     map[string]entity.StateDocument
	saves    [][]entity.StateDocument
	LoadFunc func(ctx context.Context) (map[string]entity.StateDocument, error)
	SaveFunc func(ctx context.Context, docs []entity.StateDocument) error
}

func NewMockSnapshotRepository() *MockSnapshotRepository {
	return &MockSnapshotRepository{docs: make(map[string]entity.StateDocument)}
}

func (m *MockSnapshotRepository) LoadAll(ctx context.Context) (map[string]entity.StateDocument, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]entity.StateDocument, len(m.docs))
	for k, v := range m.docs {
		out[k] = v
	}
	return out, nil
}

func (m *MockSnapshotRepository) Save(ctx context.Context, docs []entity.StateDocument) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, docs)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves = append(m.saves, docs)
	for _, d := range docs {
		m.docs[d.Kind] = d
	}
	return nil
}

func (m *MockSnapshotRepository) Doc(kind string) (entity.StateDocument, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[kind]
	return d, ok
}

func (m *MockSnapshotRepository) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saves)
}

// MockMailer records the mails it was asked to send
type MockMailer struct {
	mu       sync.Mutex
	Disabled bool
	Folios   []email.FolioMail
	Payouts  []email.PayoutMail
	LowStock []email.LowStockMail
	To       []string
}

func (m *MockMailer) Enabled() bool { return !m.Disabled }

func (m *MockMailer) SendFolioSettled(to string, data email.FolioMail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.To = append(m.To, to)
	m.Folios = append(m.Folios, data)
	return nil
}

func (m *MockMailer) SendPayoutSlip(to string, data email.PayoutMail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.To = append(m.To, to)
	m.Payouts = append(m.Payouts, data)
	return nil
}

func (m *MockMailer) SendLowStockAlert(to string, data email.LowStockMail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.To = append(m.To, to)
	m.LowStock = append(m.LowStock, data)
	return nil
}

// MockPublisher records published topics
type MockPublisher struct {
	mu          sync.Mutex
	Topics      []string
	Payloads    [][]byte
	PublishFunc func(ctx context.Context, topic string, msg []byte) error
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, msg)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Topics = append(m.Topics, topic)
	m.Payloads = append(m.Payloads, msg)
	return nil
}

func (m *MockPublisher) Close() error { return nil }

func (m *MockPublisher) Count(topic string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.Topics {
		if t == topic {
			n++
		}
	}
	return n
}

var testEpoch = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

// testEnv wires every service over an in-memory store
type testEnv struct {
	store    *StateStore
	engine   *engine.Engine
	metrics  *telemetry.Metrics
	pub      *MockPublisher
	bus      *Broadcaster
	mailer   *MockMailer
	notifier *NotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	clock := testEpoch
	n := 0
	eng := engine.New(
		engine.WithClock(func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		}),
		engine.WithIDGenerator(func(prefix string) string {
			n++
			return fmt.Sprintf("%s-%d", prefix, n)
		}),
	)
	metrics := telemetry.New()
	store := NewStateStore(nil, metrics, time.Second)
	pub := &MockPublisher{}
	mailer := &MockMailer{}
	notifier := NewNotificationService(mailer, store)
	notifier.dispatch = func(f func()) { f() }

	return &testEnv{
		store:    store,
		engine:   eng,
		metrics:  metrics,
		pub:      pub,
		bus:      NewBroadcaster(pub),
		mailer:   mailer,
		notifier: notifier,
	}
}

// setHotel stores a property inbox so notifications are sent
func (e *testEnv) setHotel(t *testing.T, name, inbox string) {
	t.Helper()
	_, err := e.store.Update(func(st *engine.State) (*engine.State, error) {
		n := st.Clone()
		n.Auth.HotelName = name
		n.Auth.HotelEmail = inbox
		n.Auth.IsConfigured = true
		return n, nil
	})
	if err != nil {
		t.Fatalf("setHotel: %v", err)
	}
}

func (e *testEnv) orders() *OrderService {
	return NewOrderService(e.store, e.engine, e.bus, e.metrics, e.notifier)
}

func (e *testEnv) hotel() *HotelService {
	return NewHotelService(e.store, e.engine, e.bus, e.metrics, e.notifier, 2.5)
}

func (e *testEnv) staff() *StaffService {
	return NewStaffService(e.store, e.engine, e.bus, e.metrics, e.notifier)
}

func (e *testEnv) inventory() *InventoryService {
	return NewInventoryService(e.store, e.engine, e.bus, e.metrics, e.notifier)
}

// errCode returns the HTTP code an error maps to, 0 for nil
func errCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return 0
	}
	return apperror.GetAppError(err).Code
}
