// Package memory provides an in-memory store used for file-backed
// configurations and tests.
package memory

import (
	"context"
	"fmt"

	"github.com/kvbridge/kvbridge/config/kvbridgecfg"
	"github.com/kvbridge/kvbridge/domain"
)

// Store aggregates in-memory repositories.
type Store struct {
	VaultRepo     *VaultRepository
	ClusterRepo   *ClusterRepository
	BindingRepo   *BindingRepository
	SyncStateRepo *SyncStateRepository
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		VaultRepo:     NewVaultRepository(),
		ClusterRepo:   NewClusterRepository(),
		BindingRepo:   NewBindingRepository(),
		SyncStateRepo: NewSyncStateRepository(),
	}
}

// Repositories returns the domain view of this store.
func (s *Store) Repositories() *domain.Repositories {
	return &domain.Repositories{
		Vault:     s.VaultRepo,
		Cluster:   s.ClusterRepo,
		Binding:   s.BindingRepo,
		SyncState: s.SyncStateRepo,
	}
}

// LoadFromConfig populates the store from a parsed kvbridge.yml.
func (s *Store) LoadFromConfig(ctx context.Context, cfg *kvbridgecfg.Config) error {
	m, err := cfg.ToModels()
	if err != nil {
		return fmt.Errorf("convert config: %w", err)
	}
	if err := s.VaultRepo.Create(ctx, m.Vault); err != nil {
		return fmt.Errorf("load vault: %w", err)
	}
	if err := s.ClusterRepo.Create(ctx, m.Cluster); err != nil {
		return fmt.Errorf("load cluster: %w", err)
	}
	for _, b := range m.Bindings {
		if err := s.BindingRepo.Create(ctx, b); err != nil {
			return fmt.Errorf("load binding %s: %w", b.Name, err)
		}
	}
	return nil
}
