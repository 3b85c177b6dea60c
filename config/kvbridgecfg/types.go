// Package kvbridgecfg loads and validates the kvbridge.yml configuration file
// and converts it into domain models.
package kvbridgecfg

// DefaultConfigPath is the conventional config file name in the working directory.
const DefaultConfigPath = "kvbridge.yml"

// Config is the top-level structure of kvbridge.yml.
type Config struct {
	Version  int             `yaml:"version"`
	Vault    VaultConfig     `yaml:"vault"`
	Cluster  ClusterConfig   `yaml:"cluster"`
	Bindings []BindingConfig `yaml:"bindings"`
}

// VaultConfig describes the Azure Key Vault source.
type VaultConfig struct {
	Name          string            `yaml:"name"`
	ResourceGroup string            `yaml:"resourceGroup"`
	// URI overrides the derived data plane endpoint; normally empty.
	URI      string            `yaml:"uri,omitempty"`
	Driver   string            `yaml:"driver,omitempty"` // default: azure
	Settings map[string]string `yaml:"settings,omitempty"`
}

// ClusterConfig describes the target AKS cluster.
type ClusterConfig struct {
	Name          string            `yaml:"name"`
	ResourceGroup string            `yaml:"resourceGroup"`
	Existing      bool              `yaml:"existing,omitempty"`
	Driver        string            `yaml:"driver,omitempty"` // default: azure
	Settings      map[string]string `yaml:"settings,omitempty"`
}

// BindingConfig describes one vault-secret-to-Kubernetes-Secret sync unit.
type BindingConfig struct {
	Name        string `yaml:"name"`
	VaultSecret string `yaml:"vaultSecret"`
	Namespace   string `yaml:"namespace"`
	// Secret overrides the synced Secret name; default is kvb-<name>-synced.
	Secret string `yaml:"secret,omitempty"`
	Key    string `yaml:"key"`
	// Deployment names a Deployment to roll on change; optional.
	Deployment string `yaml:"deployment,omitempty"`
	// Interval is a Go duration string; default 2m.
	Interval string `yaml:"interval,omitempty"`
}
