package model

import "time"

// SyncState is the last-known-good record for a binding. The poller compares
// the current Key Vault secret version against this record to decide whether
// the synced Kubernetes Secret must be rewritten.
type SyncState struct {
	BindingID string
	// Version is the last applied Key Vault secret version id.
	Version string
	// Hash is the content hash of the applied Secret data.
	Hash string
	// SyncedAt is when the Secret was last written.
	SyncedAt  time.Time
	UpdatedAt time.Time
}
