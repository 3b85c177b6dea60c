package rdb

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/kvbridge/kvbridge/domain"
	"github.com/kvbridge/kvbridge/domain/model"
	"gorm.io/gorm"
)

type VaultRepository struct{ db *gorm.DB }

func NewVaultRepository(db *gorm.DB) *VaultRepository { return &VaultRepository{db: db} }

func vaultToRecord(v *model.Vault) *VaultRecord {
	settings, _ := json.Marshal(v.Settings)
	return &VaultRecord{
		ID: v.ID, Name: v.Name, ResourceGroup: v.ResourceGroup, URI: v.URI,
		Driver: v.Driver, Settings: string(settings),
		CreatedAt: v.CreatedAt, UpdatedAt: v.UpdatedAt,
	}
}

func vaultToModel(r *VaultRecord) *model.Vault {
	var settings map[string]string
	if r.Settings != "" {
		_ = json.Unmarshal([]byte(r.Settings), &settings)
	}
	return &model.Vault{
		ID: r.ID, Name: r.Name, ResourceGroup: r.ResourceGroup, URI: r.URI,
		Driver: r.Driver, Settings: settings,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func (r *VaultRepository) Create(ctx context.Context, v *model.Vault) error {
	rec := vaultToRecord(v)
	if rec.ID == "" {
		rec.ID = "vault-" + uuid.NewString()
		v.ID = rec.ID
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *VaultRepository) Get(ctx context.Context, id string) (*model.Vault, error) {
	var rec VaultRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, model.ErrVaultNotFound
		}
		return nil, err
	}
	return vaultToModel(&rec), nil
}

func (r *VaultRepository) List(ctx context.Context) ([]*model.Vault, error) {
	var recs []VaultRecord
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Vault, 0, len(recs))
	for i := range recs {
		out = append(out, vaultToModel(&recs[i]))
	}
	return out, nil
}

func (r *VaultRepository) Update(ctx context.Context, v *model.Vault) error {
	rec := vaultToRecord(v)
	return r.db.WithContext(ctx).Model(&VaultRecord{}).Where("id = ?", rec.ID).Updates(rec).Error
}

func (r *VaultRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&VaultRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrVaultNotFound
	}
	return nil
}

var _ domain.VaultRepository = (*VaultRepository)(nil)
