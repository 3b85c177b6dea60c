package azure

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice"
	"github.com/kvbridge/kvbridge/domain/model"
)

// ClusterProvision provisions an AKS cluster with a system-assigned identity
// and the Key Vault secrets provider add-on enabled.
func (d *driver) ClusterProvision(ctx context.Context, cluster *model.Cluster) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	if cluster.Existing {
		return fmt.Errorf("cluster %s is marked existing and cannot be provisioned", cluster.Name)
	}
	if cluster.ResourceGroup == "" {
		return fmt.Errorf("cluster %s has no resource group", cluster.Name)
	}

	if err := d.ensureResourceGroup(ctx, cluster.ResourceGroup); err != nil {
		return err
	}

	aksClient, err := armcontainerservice.NewManagedClustersClient(d.AzureSubscriptionId, d.TokenCredential, nil)
	if err != nil {
		return fmt.Errorf("create AKS client: %w", err)
	}

	if _, err := aksClient.Get(ctx, cluster.ResourceGroup, cluster.Name, nil); err == nil {
		return fmt.Errorf("AKS cluster %s already exists in resource group %s", cluster.Name, cluster.ResourceGroup)
	}

	params := armcontainerservice.ManagedCluster{
		Location: to.Ptr(d.AzureLocation),
		Tags: map[string]*string{
			"managed-by": to.Ptr("kvbridge"),
		},
		Identity: &armcontainerservice.ManagedClusterIdentity{
			Type: to.Ptr(armcontainerservice.ResourceIdentityTypeSystemAssigned),
		},
		Properties: &armcontainerservice.ManagedClusterProperties{
			DNSPrefix: to.Ptr(cluster.Name),
			AgentPoolProfiles: []*armcontainerservice.ManagedClusterAgentPoolProfile{
				{
					Name:    to.Ptr("nodepool1"),
					Count:   to.Ptr[int32](1),
					VMSize:  to.Ptr("Standard_DS2_v2"),
					OSType:  to.Ptr(armcontainerservice.OSTypeLinux),
					Type:    to.Ptr(armcontainerservice.AgentPoolTypeVirtualMachineScaleSets),
					Mode:    to.Ptr(armcontainerservice.AgentPoolModeSystem),
					MaxPods: to.Ptr[int32](30),
				},
			},
			AddonProfiles: map[string]*armcontainerservice.ManagedClusterAddonProfile{
				"azureKeyvaultSecretsProvider": {
					Enabled: to.Ptr(true),
					Config: map[string]*string{
						"enableSecretRotation": to.Ptr("true"),
					},
				},
			},
			ServicePrincipalProfile: &armcontainerservice.ManagedClusterServicePrincipalProfile{
				ClientID: to.Ptr("msi"),
			},
		},
	}

	poller, err := aksClient.BeginCreateOrUpdate(ctx, cluster.ResourceGroup, cluster.Name, params, nil)
	if err != nil {
		return fmt.Errorf("start AKS cluster creation: %w", err)
	}
	if _, err := poller.PollUntilDone(ctx, nil); err != nil {
		return fmt.Errorf("create AKS cluster %s: %w", cluster.Name, err)
	}
	return nil
}

// ClusterDeprovision deletes the AKS cluster. Existing clusters are left alone.
func (d *driver) ClusterDeprovision(ctx context.Context, cluster *model.Cluster) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	if cluster.Existing {
		return fmt.Errorf("cluster %s is marked existing and cannot be deprovisioned", cluster.Name)
	}

	aksClient, err := armcontainerservice.NewManagedClustersClient(d.AzureSubscriptionId, d.TokenCredential, nil)
	if err != nil {
		return fmt.Errorf("create AKS client: %w", err)
	}

	if _, err := aksClient.Get(ctx, cluster.ResourceGroup, cluster.Name, nil); err != nil {
		// Already gone.
		return nil
	}

	poller, err := aksClient.BeginDelete(ctx, cluster.ResourceGroup, cluster.Name, nil)
	if err != nil {
		return fmt.Errorf("start AKS cluster deletion: %w", err)
	}
	if _, err := poller.PollUntilDone(ctx, nil); err != nil {
		return fmt.Errorf("delete AKS cluster %s: %w", cluster.Name, err)
	}
	return nil
}

// ClusterStatus returns the state of the AKS cluster.
func (d *driver) ClusterStatus(ctx context.Context, cluster *model.Cluster) (*model.ClusterStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	status := &model.ClusterStatus{Existing: cluster.Existing}

	// Missing resource group means the cluster cannot exist; skip the lookup.
	ok, err := d.resourceGroupExists(ctx, cluster.ResourceGroup)
	if err != nil {
		return nil, err
	}
	if !ok {
		return status, nil
	}

	aksClient, err := armcontainerservice.NewManagedClustersClient(d.AzureSubscriptionId, d.TokenCredential, nil)
	if err != nil {
		return status, fmt.Errorf("create AKS client: %w", err)
	}

	res, err := aksClient.Get(ctx, cluster.ResourceGroup, cluster.Name, nil)
	if err != nil {
		return status, nil
	}
	if res.Properties != nil && res.Properties.ProvisioningState != nil &&
		*res.Properties.ProvisioningState == "Succeeded" {
		status.Provisioned = true
	}
	if res.Properties != nil {
		if p, ok := res.Properties.AddonProfiles["azureKeyvaultSecretsProvider"]; ok &&
			p != nil && p.Enabled != nil && *p.Enabled {
			status.Installed = true
		}
	}
	return status, nil
}

// ClusterKubeconfig returns admin kubeconfig bytes for the cluster.
func (d *driver) ClusterKubeconfig(ctx context.Context, cluster *model.Cluster) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	aksClient, err := armcontainerservice.NewManagedClustersClient(d.AzureSubscriptionId, d.TokenCredential, nil)
	if err != nil {
		return nil, fmt.Errorf("create AKS client: %w", err)
	}

	credResult, err := aksClient.ListClusterAdminCredentials(ctx, cluster.ResourceGroup, cluster.Name, nil)
	if err != nil {
		return nil, fmt.Errorf("get cluster credentials: %w", err)
	}
	if len(credResult.Kubeconfigs) == 0 || len(credResult.Kubeconfigs[0].Value) == 0 {
		return nil, fmt.Errorf("no kubeconfig found for cluster")
	}
	return credResult.Kubeconfigs[0].Value, nil
}

// ClusterKubeletIdentity returns the kubelet managed identity. The
// secrets-store CSI provider authenticates to Key Vault with this identity
// when useVMManagedIdentity is set.
func (d *driver) ClusterKubeletIdentity(ctx context.Context, cluster *model.Cluster) (*model.KubeletIdentity, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	aksClient, err := armcontainerservice.NewManagedClustersClient(d.AzureSubscriptionId, d.TokenCredential, nil)
	if err != nil {
		return nil, fmt.Errorf("create AKS client: %w", err)
	}

	res, err := aksClient.Get(ctx, cluster.ResourceGroup, cluster.Name, nil)
	if err != nil {
		return nil, fmt.Errorf("get AKS cluster %s: %w", cluster.Name, err)
	}
	if res.Properties == nil || res.Properties.IdentityProfile == nil {
		return nil, fmt.Errorf("cluster %s has no identity profile", cluster.Name)
	}
	kubelet, ok := res.Properties.IdentityProfile["kubeletidentity"]
	if !ok || kubelet == nil || kubelet.ObjectID == nil || *kubelet.ObjectID == "" {
		return nil, fmt.Errorf("cluster %s has no kubelet identity", cluster.Name)
	}
	id := &model.KubeletIdentity{ObjectID: *kubelet.ObjectID}
	if kubelet.ClientID != nil {
		id.ClientID = *kubelet.ClientID
	}
	return id, nil
}
