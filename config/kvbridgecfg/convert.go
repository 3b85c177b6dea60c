package kvbridgecfg

import (
	"fmt"
	"time"

	"github.com/kvbridge/kvbridge/domain/model"
	"github.com/kvbridge/kvbridge/internal/naming"
)

// Models is the converted set of domain entities from one config file.
type Models struct {
	Vault    *model.Vault
	Cluster  *model.Cluster
	Bindings []*model.Binding
}

// ToModels converts the validated config into domain models with
// deterministic identifiers, so file-backed stores stay stable across runs.
func (c *Config) ToModels() (*Models, error) {
	driver := c.Vault.Driver
	if driver == "" {
		driver = "azure"
	}
	vault := &model.Vault{
		ID:            naming.VaultID(c.Vault.Name, c.Vault.ResourceGroup),
		Name:          c.Vault.Name,
		ResourceGroup: c.Vault.ResourceGroup,
		URI:           c.Vault.URI,
		Driver:        driver,
		Settings:      c.Vault.Settings,
	}
	if vault.URI == "" {
		vault.URI = fmt.Sprintf("https://%s.vault.azure.net", c.Vault.Name)
	}

	clusterDriver := c.Cluster.Driver
	if clusterDriver == "" {
		clusterDriver = "azure"
	}
	cluster := &model.Cluster{
		ID:            naming.ClusterID(c.Cluster.Name, c.Cluster.ResourceGroup),
		Name:          c.Cluster.Name,
		ResourceGroup: c.Cluster.ResourceGroup,
		Existing:      c.Cluster.Existing,
		Driver:        clusterDriver,
		Settings:      c.Cluster.Settings,
	}

	var bindings []*model.Binding
	for i := range c.Bindings {
		bc := &c.Bindings[i]
		b := &model.Binding{
			ID:          naming.BindingID(vault.ID, cluster.ID, bc.Name),
			Name:        bc.Name,
			VaultID:     vault.ID,
			ClusterID:   cluster.ID,
			VaultSecret: bc.VaultSecret,
			Namespace:   bc.Namespace,
			SecretName:  bc.Secret,
			SecretKey:   bc.Key,
			Deployment:  bc.Deployment,
		}
		if b.SecretName == "" {
			b.SecretName = naming.SyncedSecretName(bc.Name)
		}
		if bc.Interval != "" {
			d, err := time.ParseDuration(bc.Interval)
			if err != nil {
				return nil, fmt.Errorf("binding %s: invalid interval: %w", bc.Name, err)
			}
			b.Interval = d
		}
		bindings = append(bindings, b)
	}
	return &Models{Vault: vault, Cluster: cluster, Bindings: bindings}, nil
}
