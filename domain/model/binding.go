package model

import "time"

// DefaultSyncInterval is the poll cadence used when a binding does not set one.
// Matches the rotation poll interval of the secrets-store CSI driver.
const DefaultSyncInterval = 2 * time.Minute

// Binding connects one Key Vault secret to one Kubernetes Secret and the
// workload that consumes it. It is the unit of work for the sync poller.
type Binding struct {
	ID   string
	Name string
	// VaultID references the source Vault.
	VaultID string
	// ClusterID references the target Cluster.
	ClusterID string
	// VaultSecret is the Key Vault secret name to watch.
	VaultSecret string
	// Namespace is the Kubernetes namespace of the synced Secret.
	Namespace string
	// SecretName is the synced Kubernetes Secret name. Empty means the
	// canonical name derived from the binding name.
	SecretName string
	// SecretKey is the data key inside the synced Secret (e.g. "redis-password").
	SecretKey string
	// Deployment optionally names a Deployment to roll when the value changes.
	Deployment string
	// Interval is the poll cadence; zero means DefaultSyncInterval.
	Interval  time.Duration
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveInterval returns the poll interval with the default applied.
func (b *Binding) EffectiveInterval() time.Duration {
	if b == nil || b.Interval <= 0 {
		return DefaultSyncInterval
	}
	return b.Interval
}
