package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	providerdrv "github.com/kvbridge/kvbridge/adapters/drivers/provider"
	"github.com/kvbridge/kvbridge/domain"
	"github.com/kvbridge/kvbridge/domain/model"
	ucbinding "github.com/kvbridge/kvbridge/usecase/binding"
	uccluster "github.com/kvbridge/kvbridge/usecase/cluster"
	ucsecret "github.com/kvbridge/kvbridge/usecase/secret"
	ucsyncer "github.com/kvbridge/kvbridge/usecase/syncer"
	ucvault "github.com/kvbridge/kvbridge/usecase/vault"
	ucworkload "github.com/kvbridge/kvbridge/usecase/workload"
)

func newVaultUseCase(cmd *cobra.Command) (*ucvault.UseCase, *domain.Repositories, error) {
	repos, err := buildRepositories(cmd)
	if err != nil {
		return nil, nil, err
	}
	return &ucvault.UseCase{
		Repos:     &ucvault.Repos{Vault: repos.Vault},
		VaultPort: providerdrv.GetVaultPort(),
	}, repos, nil
}

func newClusterUseCase(cmd *cobra.Command) (*uccluster.UseCase, *domain.Repositories, error) {
	repos, err := buildRepositories(cmd)
	if err != nil {
		return nil, nil, err
	}
	return &uccluster.UseCase{
		Repos:       &uccluster.Repos{Cluster: repos.Cluster},
		ClusterPort: providerdrv.GetClusterPort(),
	}, repos, nil
}

func newSecretUseCase(cmd *cobra.Command) (*ucsecret.UseCase, *domain.Repositories, error) {
	repos, err := buildRepositories(cmd)
	if err != nil {
		return nil, nil, err
	}
	return &ucsecret.UseCase{
		Repos:      &ucsecret.Repos{Vault: repos.Vault},
		SecretPort: providerdrv.GetSecretPort(),
	}, repos, nil
}

func newBindingUseCase(cmd *cobra.Command) (*ucbinding.UseCase, *domain.Repositories, error) {
	repos, err := buildRepositories(cmd)
	if err != nil {
		return nil, nil, err
	}
	return &ucbinding.UseCase{
		Repos: &ucbinding.Repos{
			Vault: repos.Vault, Cluster: repos.Cluster,
			Binding: repos.Binding, SyncState: repos.SyncState,
		},
		VaultPort:   providerdrv.GetVaultPort(),
		ClusterPort: providerdrv.GetClusterPort(),
	}, repos, nil
}

func newSyncerUseCase(cmd *cobra.Command) (*ucsyncer.UseCase, *domain.Repositories, error) {
	repos, err := buildRepositories(cmd)
	if err != nil {
		return nil, nil, err
	}
	return &ucsyncer.UseCase{
		Repos: &ucsyncer.Repos{
			Vault: repos.Vault, Cluster: repos.Cluster,
			Binding: repos.Binding, SyncState: repos.SyncState,
		},
		SecretPort:  providerdrv.GetSecretPort(),
		ClusterPort: providerdrv.GetClusterPort(),
	}, repos, nil
}

func newWorkloadUseCase(cmd *cobra.Command) (*ucworkload.UseCase, *domain.Repositories, error) {
	repos, err := buildRepositories(cmd)
	if err != nil {
		return nil, nil, err
	}
	return &ucworkload.UseCase{
		Repos: &ucworkload.Repos{
			Vault: repos.Vault, Cluster: repos.Cluster, Binding: repos.Binding,
		},
		ClusterPort: providerdrv.GetClusterPort(),
		SecretPort:  providerdrv.GetSecretPort(),
	}, repos, nil
}

// resolveVault finds a vault by name; empty name resolves a sole vault.
func resolveVault(ctx context.Context, repos *domain.Repositories, name string) (*model.Vault, error) {
	vs, err := repos.Vault.List(ctx)
	if err != nil {
		return nil, err
	}
	if name == "" {
		if len(vs) == 1 {
			return vs[0], nil
		}
		return nil, fmt.Errorf("vault name is required when multiple vaults are configured")
	}
	for _, v := range vs {
		if v.Name == name {
			return v, nil
		}
	}
	return nil, fmt.Errorf("vault %s: %w", name, model.ErrVaultNotFound)
}

// resolveCluster finds a cluster by name; empty name resolves a sole cluster.
func resolveCluster(ctx context.Context, repos *domain.Repositories, name string) (*model.Cluster, error) {
	cs, err := repos.Cluster.List(ctx)
	if err != nil {
		return nil, err
	}
	if name == "" {
		if len(cs) == 1 {
			return cs[0], nil
		}
		return nil, fmt.Errorf("cluster name is required when multiple clusters are configured")
	}
	for _, c := range cs {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("cluster %s: %w", name, model.ErrClusterNotFound)
}

// resolveBinding finds a binding by name.
func resolveBinding(ctx context.Context, repos *domain.Repositories, name string) (*model.Binding, error) {
	bs, err := repos.Binding.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range bs {
		if b.Name == name {
			return b, nil
		}
	}
	return nil, fmt.Errorf("binding %s: %w", name, model.ErrBindingNotFound)
}
