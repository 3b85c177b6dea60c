package rdb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kvbridge/kvbridge/domain"
	"github.com/kvbridge/kvbridge/domain/model"
	"gorm.io/gorm"
)

type BindingRepository struct{ db *gorm.DB }

func NewBindingRepository(db *gorm.DB) *BindingRepository { return &BindingRepository{db: db} }

func bindingToRecord(b *model.Binding) *BindingRecord {
	return &BindingRecord{
		ID: b.ID, Name: b.Name, VaultID: b.VaultID, ClusterID: b.ClusterID,
		VaultSecret: b.VaultSecret, Namespace: b.Namespace,
		SecretName: b.SecretName, SecretKey: b.SecretKey, Deployment: b.Deployment,
		IntervalNS: int64(b.Interval),
		CreatedAt:  b.CreatedAt, UpdatedAt: b.UpdatedAt,
	}
}

func bindingToModel(r *BindingRecord) *model.Binding {
	return &model.Binding{
		ID: r.ID, Name: r.Name, VaultID: r.VaultID, ClusterID: r.ClusterID,
		VaultSecret: r.VaultSecret, Namespace: r.Namespace,
		SecretName: r.SecretName, SecretKey: r.SecretKey, Deployment: r.Deployment,
		Interval:  time.Duration(r.IntervalNS),
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func (r *BindingRepository) Create(ctx context.Context, b *model.Binding) error {
	rec := bindingToRecord(b)
	if rec.ID == "" {
		rec.ID = "bind-" + uuid.NewString()
		b.ID = rec.ID
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *BindingRepository) Get(ctx context.Context, id string) (*model.Binding, error) {
	var rec BindingRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, model.ErrBindingNotFound
		}
		return nil, err
	}
	return bindingToModel(&rec), nil
}

func (r *BindingRepository) List(ctx context.Context) ([]*model.Binding, error) {
	var recs []BindingRecord
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Binding, 0, len(recs))
	for i := range recs {
		out = append(out, bindingToModel(&recs[i]))
	}
	return out, nil
}

func (r *BindingRepository) Update(ctx context.Context, b *model.Binding) error {
	rec := bindingToRecord(b)
	return r.db.WithContext(ctx).Model(&BindingRecord{}).Where("id = ?", rec.ID).Updates(rec).Error
}

func (r *BindingRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&BindingRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrBindingNotFound
	}
	return nil
}

var _ domain.BindingRepository = (*BindingRepository)(nil)
