package model

import "context"

// VaultPort abstracts provider control plane operations for vaults.
type VaultPort interface {
	// VaultProvision creates the vault (and its resource group) if missing
	// and fills in vault.URI.
	VaultProvision(ctx context.Context, vault *Vault) error
	// VaultDeprovision deletes the vault. When purge is true the
	// soft-deleted vault is purged as well so the name can be reused
	// immediately.
	VaultDeprovision(ctx context.Context, vault *Vault, purge bool) error
	// VaultStatus reports the control plane state of the vault.
	VaultStatus(ctx context.Context, vault *Vault) (*VaultStatus, error)
	// VaultEnsureAccess grants the principal data plane access to the vault
	// secrets. readOnly selects Secrets User over Secrets Officer.
	VaultEnsureAccess(ctx context.Context, vault *Vault, principalID string, readOnly bool) error
}

// ClusterPort abstracts provider operations for clusters.
type ClusterPort interface {
	ClusterProvision(ctx context.Context, cluster *Cluster) error
	ClusterDeprovision(ctx context.Context, cluster *Cluster) error
	ClusterStatus(ctx context.Context, cluster *Cluster) (*ClusterStatus, error)
	// ClusterKubeconfig returns admin kubeconfig bytes for the cluster.
	ClusterKubeconfig(ctx context.Context, cluster *Cluster) ([]byte, error)
	// ClusterKubeletIdentity returns the managed identity kubelets use to
	// reach Key Vault. Role assignment needs its object id, the
	// secrets-store provider its client id.
	ClusterKubeletIdentity(ctx context.Context, cluster *Cluster) (*KubeletIdentity, error)
}

// SecretPort abstracts vault data plane secret operations.
type SecretPort interface {
	// SecretSet writes a new secret version and returns its version id.
	SecretSet(ctx context.Context, vault *Vault, name, value string) (string, error)
	// SecretGet reads a secret; empty version means the latest.
	SecretGet(ctx context.Context, vault *Vault, name, version string) (*SecretValue, error)
	// SecretVersions lists known versions of a secret, newest last.
	SecretVersions(ctx context.Context, vault *Vault, name string) ([]SecretVersion, error)
}
