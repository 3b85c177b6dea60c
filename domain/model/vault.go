package model

import "time"

// Vault represents an Azure Key Vault instance managed or referenced by kvbridge.
type Vault struct {
	// ID is the stable identifier used by repositories.
	ID string
	// Name is the vault name (globally unique in the *.vault.azure.net namespace).
	Name string
	// ResourceGroup is the Azure resource group holding the vault.
	ResourceGroup string
	// URI is the data plane endpoint (https://<name>.vault.azure.net).
	// Filled after provisioning or discovery; may be empty for unprovisioned vaults.
	URI string
	// Driver selects the provider driver (e.g. "azure").
	Driver string
	// Settings holds driver-specific settings (subscription, tenant, auth method).
	Settings  map[string]string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VaultStatus reports the control plane state of a vault.
type VaultStatus struct {
	Exists      bool   `json:"exists"`
	Provisioned bool   `json:"provisioned"`
	URI         string `json:"uri,omitempty"`
}

// SecretValue is one resolved Key Vault secret version.
type SecretValue struct {
	Name    string
	Version string
	Value   string
	// Updated is the server-side attribute timestamp, when known.
	Updated time.Time
}

// SecretVersion describes one version of a Key Vault secret without its value.
type SecretVersion struct {
	Version string
	Enabled bool
	Updated time.Time
}
