package repository

import (
	"context"

	"github.com/sangkips/dinedash-api/internal/domain/entity"
)

// SnapshotRepository stores the application state as one JSON document per
// entity collection
type SnapshotRepository interface {
	// LoadAll returns every stored document keyed by kind
	LoadAll(ctx context.Context) (map[string]entity.StateDocument, error)
	// Save upserts the given documents in one transaction
	Save(ctx context.Context, docs []entity.StateDocument) error
}
