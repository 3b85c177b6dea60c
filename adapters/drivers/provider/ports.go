package providerdrv

import (
	"context"
	"fmt"

	"github.com/kvbridge/kvbridge/domain/model"
)

// DriverForVault constructs the driver configured on the vault entity.
func DriverForVault(v *model.Vault) (Driver, error) {
	if v == nil {
		return nil, model.ErrVaultInvalid
	}
	return driverFor(v.Driver, v.Settings)
}

// DriverForCluster constructs the driver configured on the cluster entity.
func DriverForCluster(c *model.Cluster) (Driver, error) {
	if c == nil {
		return nil, model.ErrClusterInvalid
	}
	return driverFor(c.Driver, c.Settings)
}

func driverFor(name string, settings map[string]string) (Driver, error) {
	factory, ok := GetDriverFactory(name)
	if !ok {
		return nil, fmt.Errorf("unknown provider driver: %s", name)
	}
	drv, err := factory(settings)
	if err != nil {
		return nil, fmt.Errorf("create driver %s: %w", name, err)
	}
	return drv, nil
}

// vaultPortAdapter implements model.VaultPort by resolving the driver per call.
type vaultPortAdapter struct{}

func (vaultPortAdapter) VaultProvision(ctx context.Context, v *model.Vault) error {
	drv, err := DriverForVault(v)
	if err != nil {
		return err
	}
	return drv.VaultProvision(ctx, v)
}

func (vaultPortAdapter) VaultDeprovision(ctx context.Context, v *model.Vault, purge bool) error {
	drv, err := DriverForVault(v)
	if err != nil {
		return err
	}
	return drv.VaultDeprovision(ctx, v, purge)
}

func (vaultPortAdapter) VaultStatus(ctx context.Context, v *model.Vault) (*model.VaultStatus, error) {
	drv, err := DriverForVault(v)
	if err != nil {
		return nil, err
	}
	return drv.VaultStatus(ctx, v)
}

func (vaultPortAdapter) VaultEnsureAccess(ctx context.Context, v *model.Vault, principalID string, readOnly bool) error {
	drv, err := DriverForVault(v)
	if err != nil {
		return err
	}
	return drv.VaultEnsureAccess(ctx, v, principalID, readOnly)
}

// GetVaultPort returns a model.VaultPort implemented via provider drivers.
func GetVaultPort() model.VaultPort { return vaultPortAdapter{} }

// clusterPortAdapter implements model.ClusterPort by resolving the driver per call.
type clusterPortAdapter struct{}

func (clusterPortAdapter) ClusterProvision(ctx context.Context, c *model.Cluster) error {
	drv, err := DriverForCluster(c)
	if err != nil {
		return err
	}
	return drv.ClusterProvision(ctx, c)
}

func (clusterPortAdapter) ClusterDeprovision(ctx context.Context, c *model.Cluster) error {
	drv, err := DriverForCluster(c)
	if err != nil {
		return err
	}
	return drv.ClusterDeprovision(ctx, c)
}

func (clusterPortAdapter) ClusterStatus(ctx context.Context, c *model.Cluster) (*model.ClusterStatus, error) {
	drv, err := DriverForCluster(c)
	if err != nil {
		return nil, err
	}
	return drv.ClusterStatus(ctx, c)
}

func (clusterPortAdapter) ClusterKubeconfig(ctx context.Context, c *model.Cluster) ([]byte, error) {
	drv, err := DriverForCluster(c)
	if err != nil {
		return nil, err
	}
	return drv.ClusterKubeconfig(ctx, c)
}

func (clusterPortAdapter) ClusterKubeletIdentity(ctx context.Context, c *model.Cluster) (*model.KubeletIdentity, error) {
	drv, err := DriverForCluster(c)
	if err != nil {
		return nil, err
	}
	return drv.ClusterKubeletIdentity(ctx, c)
}

// GetClusterPort returns a model.ClusterPort implemented via provider drivers.
func GetClusterPort() model.ClusterPort { return clusterPortAdapter{} }

// secretPortAdapter implements model.SecretPort by resolving the driver per call.
type secretPortAdapter struct{}

func (secretPortAdapter) SecretSet(ctx context.Context, v *model.Vault, name, value string) (string, error) {
	drv, err := DriverForVault(v)
	if err != nil {
		return "", err
	}
	return drv.SecretSet(ctx, v, name, value)
}

func (secretPortAdapter) SecretGet(ctx context.Context, v *model.Vault, name, version string) (*model.SecretValue, error) {
	drv, err := DriverForVault(v)
	if err != nil {
		return nil, err
	}
	return drv.SecretGet(ctx, v, name, version)
}

func (secretPortAdapter) SecretVersions(ctx context.Context, v *model.Vault, name string) ([]model.SecretVersion, error) {
	drv, err := DriverForVault(v)
	if err != nil {
		return nil, err
	}
	return drv.SecretVersions(ctx, v, name)
}

// GetSecretPort returns a model.SecretPort implemented via provider drivers.
func GetSecretPort() model.SecretPort { return secretPortAdapter{} }
