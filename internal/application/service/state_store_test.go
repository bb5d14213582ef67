package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sangkips/dinedash-api/internal/application/engine"
	"github.com/sangkips/dinedash-api/internal/domain/entity"
	"github.com/sangkips/dinedash-api/internal/domain/enum"
	"github.com/sangkips/dinedash-api/pkg/apperror"
	"github.com/sangkips/dinedash-api/pkg/telemetry"
)

func TestStateStore_LoadEmptySeedsDefaults(t *testing.T) {
	repo := NewMockSnapshotRepository()
	store := NewStateStore(repo, telemetry.New(), time.Second)
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := len(store.Current().Menu); got != 8 {
		t.Errorf("menu items = %d, want 8", got)
	}
	store.Close()

	for _, kind := range engine.Kinds {
		if _, ok := repo.Doc(kind); !ok {
			t.Errorf("default %q was not written back", kind)
		}
	}
}

func TestStateStore_LoadFallsBackPerKey(t *testing.T) {
	tables, _ := json.Marshal([]entity.Table{
		{ID: "p1", Number: 1, Capacity: 2},
		{ID: "p2", Number: 2, Capacity: 6},
	})

	tests := []struct {
		name    string
		payload string
	}{
		{name: "corrupt", payload: "{not json"},
		{name: "null", payload: "null"},
		{name: "wrongShape", payload: `{"id":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMockSnapshotRepository()
			repo.docs[engine.KindMenu] = entity.StateDocument{Kind: engine.KindMenu, Payload: tt.payload}
			repo.docs[engine.KindTables] = entity.StateDocument{Kind: engine.KindTables, Payload: string(tables)}

			store := NewStateStore(repo, nil, time.Second)
			if err := store.Load(context.Background()); err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			st := store.Current()
			if len(st.Menu) != 8 {
				t.Errorf("menu = %d items, want the 8 defaults", len(st.Menu))
			}
			if len(st.Tables) != 2 || st.Tables[1].Capacity != 6 {
				t.Errorf("stored tables were not loaded: %+v", st.Tables)
			}
			store.Close()

			doc, _ := repo.Doc(engine.KindMenu)
			if doc.Payload == tt.payload {
				t.Error("corrupt menu key was not repaired")
			}
		})
	}
}

func TestStateStore_Update(t *testing.T) {
	repo := NewMockSnapshotRepository()
	first := NewStateStore(repo, nil, time.Second)
	if err := first.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	first.Close()
	baseline := repo.SaveCount()

	store := NewStateStore(repo, nil, time.Second)
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	before := store.Current()

	if _, err := store.Update(func(st *engine.State) (*engine.State, error) { return st, nil }); err != nil {
		t.Fatalf("no-op Update() error = %v", err)
	}
	if _, err := store.Update(func(st *engine.State) (*engine.State, error) {
		return st.Clone(), apperror.NewConflictError("nope")
	}); errCode(t, err) != http.StatusConflict {
		t.Fatalf("failing Update() err = %v", err)
	}
	if store.Current() != before {
		t.Fatal("no-op or failed update replaced the state")
	}

	next, err := store.Update(func(st *engine.State) (*engine.State, error) {
		n := st.Clone()
		n.Tables[0].Status = enum.TableStatusOccupied
		return n, nil
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if store.Current() != next {
		t.Error("committed state not current")
	}
	store.Close()

	if got := repo.SaveCount() - baseline; got != 1 {
		t.Fatalf("saves after updates = %d, want 1", got)
	}
	last := repo.saves[len(repo.saves)-1]
	if len(last) != 1 || last[0].Kind != engine.KindTables {
		t.Errorf("saved kinds = %+v, want only tables", last)
	}
}

func TestStateStore_EmptyCollectionsSurviveReload(t *testing.T) {
	repo := NewMockSnapshotRepository()
	store := NewStateStore(repo, nil, time.Second)
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := store.Update(func(st *engine.State) (*engine.State, error) {
		n := st.Clone()
		n.Tables[0].Status = enum.TableStatusOccupied
		return n, nil
	}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	store.Close()

	if doc, _ := repo.Doc(engine.KindPayouts); doc.Payload != "[]" {
		t.Errorf("payouts payload = %s, want []", doc.Payload)
	}
	baseline := repo.SaveCount()

	reloaded := NewStateStore(repo, nil, time.Second)
	if err := reloaded.Load(context.Background()); err != nil {
		t.Fatalf("reload error = %v", err)
	}
	reloaded.Close()

	if got := repo.SaveCount() - baseline; got != 0 {
		t.Errorf("reload rewrote %d snapshots, want 0", got)
	}
	st := reloaded.Current()
	if st.Payouts == nil || st.Staff[0].Attendance == nil {
		t.Errorf("empty collections came back nil: payouts %v attendance %v", st.Payouts, st.Staff[0].Attendance)
	}
}

func TestStateStore_PersistFailureIsCounted(t *testing.T) {
	repo := NewMockSnapshotRepository()
	repo.SaveFunc = func(context.Context, []entity.StateDocument) error {
		return errors.New("disk full")
	}
	metrics := telemetry.New()
	store := NewStateStore(repo, metrics, time.Second)
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	_, err := store.Update(func(st *engine.State) (*engine.State, error) {
		n := st.Clone()
		n.Held = append(n.Held, entity.HeldCart{ID: "H-1"})
		return n, nil
	})
	if err != nil {
		t.Fatalf("Update() must not surface persistence errors: %v", err)
	}
	store.Close()

	if got := testutil.ToFloat64(metrics.PersistFailures.WithLabelValues(engine.KindHeld)); got < 1 {
		t.Errorf("persist failures for held = %v, want at least 1", got)
	}
	if len(store.Current().Held) != 1 {
		t.Error("in-memory state lost the update")
	}
}

func TestStateStore_LoadError(t *testing.T) {
	repo := NewMockSnapshotRepository()
	repo.LoadFunc = func(context.Context) (map[string]entity.StateDocument, error) {
		return nil, errors.New("connection refused")
	}
	store := NewStateStore(repo, nil, time.Second)
	if err := store.Load(context.Background()); err == nil {
		t.Fatal("expected Load() to fail")
	}
	store.Close()
}
