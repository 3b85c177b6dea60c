package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kvbridge/kvbridge/domain"
	"github.com/kvbridge/kvbridge/domain/model"
)

// VaultRepository is an in-memory implementation of domain.VaultRepository.
type VaultRepository struct {
	mu     sync.RWMutex
	vaults map[string]*model.Vault
}

func NewVaultRepository() *VaultRepository {
	return &VaultRepository{vaults: map[string]*model.Vault{}}
}

func (r *VaultRepository) Create(_ context.Context, v *model.Vault) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v.ID == "" {
		v.ID = "vault-" + uuid.NewString()
	}
	now := time.Now()
	v.CreatedAt, v.UpdatedAt = now, now
	cp := *v
	r.vaults[v.ID] = &cp
	return nil
}

func (r *VaultRepository) Get(_ context.Context, id string) (*model.Vault, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.vaults[id]
	if !ok {
		return nil, model.ErrVaultNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *VaultRepository) List(_ context.Context) ([]*model.Vault, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Vault, 0, len(r.vaults))
	for _, v := range r.vaults {
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *VaultRepository) Update(_ context.Context, v *model.Vault) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vaults[v.ID]; !ok {
		return model.ErrVaultNotFound
	}
	v.UpdatedAt = time.Now()
	cp := *v
	r.vaults[v.ID] = &cp
	return nil
}

func (r *VaultRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vaults[id]; !ok {
		return model.ErrVaultNotFound
	}
	delete(r.vaults, id)
	return nil
}

var _ domain.VaultRepository = (*VaultRepository)(nil)
