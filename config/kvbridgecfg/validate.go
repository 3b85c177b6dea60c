package kvbridgecfg

import (
	"fmt"
	"time"

	"github.com/kvbridge/kvbridge/internal/naming"
)

// Validate checks structural and naming constraints of the configuration.
func (c *Config) Validate() error {
	if c.Version != 1 {
		return fmt.Errorf("unsupported config version: %d", c.Version)
	}
	if c.Vault.Name == "" {
		return fmt.Errorf("vault.name is required")
	}
	if err := naming.ValidateVaultName(c.Vault.Name); err != nil {
		return err
	}
	if c.Vault.ResourceGroup == "" {
		return fmt.Errorf("vault.resourceGroup is required")
	}
	if c.Cluster.Name == "" {
		return fmt.Errorf("cluster.name is required")
	}
	if c.Cluster.ResourceGroup == "" {
		return fmt.Errorf("cluster.resourceGroup is required")
	}
	if len(c.Bindings) == 0 {
		return fmt.Errorf("at least one binding is required")
	}
	seen := map[string]bool{}
	for i := range c.Bindings {
		b := &c.Bindings[i]
		if err := validateBinding(b); err != nil {
			return fmt.Errorf("bindings[%d]: %w", i, err)
		}
		if seen[b.Name] {
			return fmt.Errorf("bindings[%d]: duplicate name %q", i, b.Name)
		}
		seen[b.Name] = true
	}
	return nil
}

func validateBinding(b *BindingConfig) error {
	if err := naming.ValidateBindingName(b.Name); err != nil {
		return err
	}
	if b.VaultSecret == "" {
		return fmt.Errorf("vaultSecret is required")
	}
	if err := naming.ValidateVaultSecretName(b.VaultSecret); err != nil {
		return err
	}
	if b.Namespace == "" {
		return fmt.Errorf("namespace is required")
	}
	if b.Key == "" {
		return fmt.Errorf("key is required")
	}
	if err := naming.ValidateSecretKey(b.Key); err != nil {
		return err
	}
	if b.Interval != "" {
		d, err := time.ParseDuration(b.Interval)
		if err != nil {
			return fmt.Errorf("invalid interval %q: %w", b.Interval, err)
		}
		if d < 10*time.Second {
			return fmt.Errorf("interval %s below minimum 10s", b.Interval)
		}
	}
	return nil
}
