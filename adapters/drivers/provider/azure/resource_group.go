package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
)

// ensureResourceGroup creates the resource group if it does not exist yet.
func (d *driver) ensureResourceGroup(ctx context.Context, name string) error {
	rgClient, err := armresources.NewResourceGroupsClient(d.AzureSubscriptionId, d.TokenCredential, nil)
	if err != nil {
		return fmt.Errorf("create resource group client: %w", err)
	}
	params := armresources.ResourceGroup{
		Location: to.Ptr(d.AzureLocation),
		Tags: map[string]*string{
			"managed-by": to.Ptr("kvbridge"),
		},
	}
	if _, err := rgClient.CreateOrUpdate(ctx, name, params, nil); err != nil {
		return fmt.Errorf("create resource group %s: %w", name, err)
	}
	return nil
}

// resourceGroupExists reports whether the resource group exists.
func (d *driver) resourceGroupExists(ctx context.Context, name string) (bool, error) {
	rgClient, err := armresources.NewResourceGroupsClient(d.AzureSubscriptionId, d.TokenCredential, nil)
	if err != nil {
		return false, fmt.Errorf("create resource group client: %w", err)
	}
	res, err := rgClient.CheckExistence(ctx, name, nil)
	if err != nil {
		return false, fmt.Errorf("check resource group %s: %w", name, err)
	}
	return res.Success, nil
}
