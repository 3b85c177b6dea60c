package rdb

import (
	"context"

	"github.com/kvbridge/kvbridge/domain"
	"github.com/kvbridge/kvbridge/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SyncStateRepository struct{ db *gorm.DB }

func NewSyncStateRepository(db *gorm.DB) *SyncStateRepository { return &SyncStateRepository{db: db} }

func (r *SyncStateRepository) Get(ctx context.Context, bindingID string) (*model.SyncState, error) {
	var rec SyncStateRecord
	if err := r.db.WithContext(ctx).First(&rec, "binding_id = ?", bindingID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, model.ErrSyncStateNotFound
		}
		return nil, err
	}
	return &model.SyncState{
		BindingID: rec.BindingID, Version: rec.Version, Hash: rec.Hash,
		SyncedAt: rec.SyncedAt, UpdatedAt: rec.UpdatedAt,
	}, nil
}

func (r *SyncStateRepository) Put(ctx context.Context, s *model.SyncState) error {
	rec := &SyncStateRecord{
		BindingID: s.BindingID, Version: s.Version, Hash: s.Hash, SyncedAt: s.SyncedAt,
	}
	// Upsert on the binding id so each binding keeps exactly one row.
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "binding_id"}},
		UpdateAll: true,
	}).Create(rec).Error
}

func (r *SyncStateRepository) Delete(ctx context.Context, bindingID string) error {
	res := r.db.WithContext(ctx).Delete(&SyncStateRecord{}, "binding_id = ?", bindingID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrSyncStateNotFound
	}
	return nil
}

var _ domain.SyncStateRepository = (*SyncStateRepository)(nil)
