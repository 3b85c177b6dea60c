package azure

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/keyvault/armkeyvault"
	"github.com/kvbridge/kvbridge/domain/model"
	"github.com/kvbridge/kvbridge/internal/logging"
)

// VaultProvision creates the resource group and the Key Vault if missing.
// The vault is created with RBAC authorization so data plane access is
// granted through role assignments rather than access policies.
func (d *driver) VaultProvision(ctx context.Context, vault *model.Vault) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Minute)
	defer cancel()

	if d.AzureTenantId == "" {
		return fmt.Errorf("AZURE_TENANT_ID is required to provision a key vault")
	}
	if vault.ResourceGroup == "" {
		return fmt.Errorf("vault %s has no resource group", vault.Name)
	}

	if err := d.ensureResourceGroup(ctx, vault.ResourceGroup); err != nil {
		return err
	}

	vaultsClient, err := armkeyvault.NewVaultsClient(d.AzureSubscriptionId, d.TokenCredential, nil)
	if err != nil {
		return fmt.Errorf("create key vault client: %w", err)
	}

	params := armkeyvault.VaultCreateOrUpdateParameters{
		Location: to.Ptr(d.AzureLocation),
		Tags: map[string]*string{
			"managed-by": to.Ptr("kvbridge"),
		},
		Properties: &armkeyvault.VaultProperties{
			TenantID: to.Ptr(d.AzureTenantId),
			SKU: &armkeyvault.SKU{
				Family: to.Ptr(armkeyvault.SKUFamilyA),
				Name:   to.Ptr(armkeyvault.SKUNameStandard),
			},
			EnableRbacAuthorization: to.Ptr(true),
			EnableSoftDelete:        to.Ptr(true),
			SoftDeleteRetentionInDays: to.Ptr[int32](7),
		},
	}

	poller, err := vaultsClient.BeginCreateOrUpdate(ctx, vault.ResourceGroup, vault.Name, params, nil)
	if err != nil {
		return fmt.Errorf("start key vault creation: %w", err)
	}
	res, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return fmt.Errorf("create key vault %s: %w", vault.Name, err)
	}
	if res.Properties != nil && res.Properties.VaultURI != nil {
		vault.URI = *res.Properties.VaultURI
	}
	return nil
}

// VaultDeprovision deletes the Key Vault. With purge the soft-deleted vault
// is purged asynchronously so the name frees up immediately.
func (d *driver) VaultDeprovision(ctx context.Context, vault *model.Vault, purge bool) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Minute)
	defer cancel()

	log := logging.FromContext(ctx)

	vaultsClient, err := armkeyvault.NewVaultsClient(d.AzureSubscriptionId, d.TokenCredential, nil)
	if err != nil {
		return fmt.Errorf("create key vault client: %w", err)
	}

	if _, err := vaultsClient.Get(ctx, vault.ResourceGroup, vault.Name, nil); err != nil {
		// Already gone.
		return nil
	}

	if _, err := vaultsClient.Delete(ctx, vault.ResourceGroup, vault.Name, nil); err != nil {
		return fmt.Errorf("delete key vault %s: %w", vault.Name, err)
	}

	if purge {
		// Fire-and-forget: initiate purge without waiting for completion.
		log.Info(ctx, "initiating key vault purge (async)", "vault_name", vault.Name, "location", d.AzureLocation)
		if _, err := vaultsClient.BeginPurgeDeleted(ctx, vault.Name, d.AzureLocation, nil); err != nil {
			log.Warn(ctx, "failed to start key vault purge", "error", err, "vault_name", vault.Name)
		}
	}
	return nil
}

// VaultStatus reports whether the vault exists and resolves its URI.
func (d *driver) VaultStatus(ctx context.Context, vault *model.Vault) (*model.VaultStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	status := &model.VaultStatus{}

	// Missing resource group means the vault cannot exist; skip the lookup.
	ok, err := d.resourceGroupExists(ctx, vault.ResourceGroup)
	if err != nil {
		return nil, err
	}
	if !ok {
		return status, nil
	}

	vaultsClient, err := armkeyvault.NewVaultsClient(d.AzureSubscriptionId, d.TokenCredential, nil)
	if err != nil {
		return nil, fmt.Errorf("create key vault client: %w", err)
	}
	res, err := vaultsClient.Get(ctx, vault.ResourceGroup, vault.Name, nil)
	if err != nil {
		return status, nil
	}
	status.Exists = true
	if res.Properties != nil {
		if res.Properties.VaultURI != nil {
			status.URI = *res.Properties.VaultURI
		}
		if res.Properties.ProvisioningState != nil && *res.Properties.ProvisioningState == armkeyvault.VaultProvisioningStateSucceeded {
			status.Provisioned = true
		}
	}
	return status, nil
}

// vaultResourceID returns the ARM resource id of the vault.
func (d *driver) vaultResourceID(vault *model.Vault) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/Microsoft.KeyVault/vaults/%s",
		d.AzureSubscriptionId, vault.ResourceGroup, vault.Name)
}
