package service

import (
	"context"

	"github.com/sangkips/dinedash-api/internal/application/engine"
	"github.com/sangkips/dinedash-api/internal/domain/entity"
	"github.com/sangkips/dinedash-api/pkg/apperror"
)

// TableService exposes the floor plan
type TableService struct {
	store  *StateStore
	engine *engine.Engine
}

// NewTableService creates a new table service
func NewTableService(store *StateStore, eng *engine.Engine) *TableService {
	return &TableService{store: store, engine: eng}
}

func (s *TableService) List() []entity.Table {
	return s.store.Current().Tables
}

// OpenOrder returns the running tab of a table
func (s *TableService) OpenOrder(tableID string) (entity.Order, error) {
	st := s.store.Current()
	if _, ok := st.Table(tableID); !ok {
		return entity.Order{}, apperror.NewNotFoundError("Table")
	}
	o, ok := st.OpenOrderForTable(tableID)
	if !ok {
		return entity.Order{}, apperror.NewNotFoundError("Open order")
	}
	return o, nil
}

// SetBilling puts an occupied table into or out of the billing state
func (s *TableService) SetBilling(ctx context.Context, tableID string, billing bool) (entity.Table, error) {
	next, err := s.store.Update(func(st *engine.State) (*engine.State, error) {
		if _, ok := st.Table(tableID); !ok {
			return st, errNotFound("Table")
		}
		n, err := s.engine.SetTableBilling(st, tableID, billing)
		if err != nil {
			return st, ruleError(err)
		}
		return n, nil
	})
	if err != nil {
		return entity.Table{}, err
	}
	t, _ := next.Table(tableID)
	return t, nil
}
