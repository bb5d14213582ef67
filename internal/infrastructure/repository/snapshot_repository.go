package repository

import (
	"context"

	"github.com/sangkips/dinedash-api/internal/domain/entity"
	domainRepo "github.com/sangkips/dinedash-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type snapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *gorm.DB) domainRepo.SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) LoadAll(ctx context.Context) (map[string]entity.StateDocument, error) {
	var docs []entity.StateDocument
	if err := r.db.WithContext(ctx).Find(&docs).Error; err != nil {
		return nil, err
	}
	out := make(map[string]entity.StateDocument, len(docs))
	for _, d := range docs {
		out[d.Kind] = d
	}
	return out, nil
}

func (r *snapshotRepository) Save(ctx context.Context, docs []entity.StateDocument) error {
	if len(docs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "kind"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).Create(&docs).Error
	})
}
