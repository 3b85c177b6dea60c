package domain

import (
	"context"

	"github.com/kvbridge/kvbridge/domain/model"
)

// VaultRepository stores and retrieves Vault aggregates.
type VaultRepository interface {
	Create(ctx context.Context, v *model.Vault) error
	Get(ctx context.Context, id string) (*model.Vault, error)
	List(ctx context.Context) ([]*model.Vault, error)
	Update(ctx context.Context, v *model.Vault) error
	Delete(ctx context.Context, id string) error
}

// ClusterRepository stores and retrieves Cluster aggregates.
type ClusterRepository interface {
	Create(ctx context.Context, c *model.Cluster) error
	Get(ctx context.Context, id string) (*model.Cluster, error)
	List(ctx context.Context) ([]*model.Cluster, error)
	Update(ctx context.Context, c *model.Cluster) error
	Delete(ctx context.Context, id string) error
}

// BindingRepository stores and retrieves Binding aggregates.
type BindingRepository interface {
	Create(ctx context.Context, b *model.Binding) error
	Get(ctx context.Context, id string) (*model.Binding, error)
	List(ctx context.Context) ([]*model.Binding, error)
	Update(ctx context.Context, b *model.Binding) error
	Delete(ctx context.Context, id string) error
}

// SyncStateRepository persists last-known-good sync records per binding.
type SyncStateRepository interface {
	Get(ctx context.Context, bindingID string) (*model.SyncState, error)
	// Put inserts or overwrites the record for its BindingID.
	Put(ctx context.Context, s *model.SyncState) error
	Delete(ctx context.Context, bindingID string) error
}

// Repositories groups repository interfaces for injection into use cases.
type Repositories struct {
	Vault     VaultRepository
	Cluster   ClusterRepository
	Binding   BindingRepository
	SyncState SyncStateRepository
}
