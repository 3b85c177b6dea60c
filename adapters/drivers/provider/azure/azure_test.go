package azure

import (
	"strings"
	"testing"

	providerdrv "github.com/kvbridge/kvbridge/adapters/drivers/provider"
	"github.com/kvbridge/kvbridge/domain/model"
)

func TestFactoryRequiresSettings(t *testing.T) {
	factory, ok := providerdrv.GetDriverFactory("azure")
	if !ok {
		t.Fatal("azure driver not registered")
	}
	cases := []struct {
		name     string
		settings map[string]string
		wantErr  string
	}{
		{"nil settings", nil, "missing required Azure settings"},
		{
			"no auth method",
			map[string]string{"AZURE_SUBSCRIPTION_ID": "sub", "AZURE_LOCATION": "japaneast"},
			"AZURE_AUTH_METHOD",
		},
		{
			"unknown auth method",
			map[string]string{"AZURE_SUBSCRIPTION_ID": "sub", "AZURE_LOCATION": "japaneast", "AZURE_AUTH_METHOD": "carrier_pigeon"},
			"unsupported AZURE_AUTH_METHOD",
		},
		{
			"client_secret incomplete",
			map[string]string{"AZURE_SUBSCRIPTION_ID": "sub", "AZURE_LOCATION": "japaneast", "AZURE_AUTH_METHOD": "client_secret"},
			"client_secret auth requires",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := factory(tc.settings)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("want error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestFactoryClientSecret(t *testing.T) {
	factory, _ := providerdrv.GetDriverFactory("azure")
	drv, err := factory(map[string]string{
		"AZURE_SUBSCRIPTION_ID": "00000000-0000-0000-0000-000000000001",
		"AZURE_LOCATION":        "japaneast",
		"AZURE_AUTH_METHOD":     "client_secret",
		"AZURE_TENANT_ID":       "00000000-0000-0000-0000-000000000002",
		"AZURE_CLIENT_ID":       "00000000-0000-0000-0000-000000000003",
		"AZURE_CLIENT_SECRET":   "hunter2",
	})
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	if drv.ID() != "azure" {
		t.Errorf("unexpected driver id %q", drv.ID())
	}
}

func TestScopeAndRoleDefinitionIDs(t *testing.T) {
	d := &driver{AzureSubscriptionId: "sub-1"}
	v := &model.Vault{Name: "kvb-prod", ResourceGroup: "rg-kvb"}

	scope := d.vaultResourceID(v)
	want := "/subscriptions/sub-1/resourceGroups/rg-kvb/providers/Microsoft.KeyVault/vaults/kvb-prod"
	if scope != want {
		t.Errorf("vault scope = %q, want %q", scope, want)
	}

	roleID := d.azureRoleDefinitionID(roleDefIDKeyVaultSecretsUser)
	if !strings.HasPrefix(roleID, "/subscriptions/sub-1/providers/Microsoft.Authorization/roleDefinitions/") {
		t.Errorf("unexpected role definition id %q", roleID)
	}
	if !strings.HasSuffix(roleID, roleDefIDKeyVaultSecretsUser) {
		t.Errorf("role definition id %q does not end with guid", roleID)
	}
}
