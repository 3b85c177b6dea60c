package model

import "time"

// Cluster represents a target AKS cluster that consumes synced secrets.
type Cluster struct {
	ID string
	// Name is the AKS managed cluster name.
	Name string
	// ResourceGroup is the Azure resource group holding the cluster.
	ResourceGroup string
	// Existing marks clusters not provisioned by kvbridge; they are never
	// deprovisioned and their kubeconfig is resolved but never created.
	Existing bool
	// Driver selects the provider driver (e.g. "azure").
	Driver string
	// Settings holds driver-specific settings (subscription, auth method).
	Settings  map[string]string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// KubeletIdentity identifies the managed identity kubelets run with.
// ObjectID is used for role assignments, ClientID for the secrets-store
// provider parameters.
type KubeletIdentity struct {
	ObjectID string
	ClientID string
}

// ClusterStatus reports the state of a cluster.
type ClusterStatus struct {
	Existing    bool `json:"existing"`
	Provisioned bool `json:"provisioned"`
	// Installed is true when the secrets-store CSI driver add-on is deployed.
	Installed bool `json:"installed"`
}
