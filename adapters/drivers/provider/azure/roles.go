package azure

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/authorization/armauthorization/v2"
	"github.com/google/uuid"
	"github.com/kvbridge/kvbridge/domain/model"
)

// Built-in role definition GUIDs for Key Vault data plane access.
const (
	roleDefIDKeyVaultSecretsUser    = "4633458b-17de-408a-b874-0445c86b69e6"
	roleDefIDKeyVaultSecretsOfficer = "b86a8fe4-44ce-4948-aee5-eccb2c155cd7"
)

// UUIDv5 namespace used to generate role assignment names.
// Chosen arbitrarily but kept constant to ensure stable name generation.
var roleAssignmentNamespace = uuid.MustParse("6f1c63f5-9a1d-4e6a-8b42-7d9be1c3a0f4")

// azureRoleDefinitionID expands a role definition GUID into its full
// subscription-scoped resource id.
func (d *driver) azureRoleDefinitionID(roleDefGUID string) string {
	return fmt.Sprintf("/subscriptions/%s/providers/Microsoft.Authorization/roleDefinitions/%s",
		d.AzureSubscriptionId, roleDefGUID)
}

// VaultEnsureAccess assigns the Key Vault Secrets User (readOnly) or Secrets
// Officer role to the principal at vault scope. Safe to call repeatedly.
func (d *driver) VaultEnsureAccess(ctx context.Context, vault *model.Vault, principalID string, readOnly bool) error {
	if principalID == "" {
		return fmt.Errorf("principal id is required")
	}
	roleDefGUID := roleDefIDKeyVaultSecretsOfficer
	if readOnly {
		roleDefGUID = roleDefIDKeyVaultSecretsUser
	}
	scope := d.vaultResourceID(vault)
	return d.ensureAzureRole(ctx, scope, principalID, d.azureRoleDefinitionID(roleDefGUID))
}

// ensureAzureRole assigns the given role definition to the principal at the
// provided scope.
func (d *driver) ensureAzureRole(ctx context.Context, scope, principalID, roleDefinitionID string) error {
	client, err := armauthorization.NewRoleAssignmentsClient(d.AzureSubscriptionId, d.TokenCredential, nil)
	if err != nil {
		return fmt.Errorf("create role assignments client: %w", err)
	}

	// Deterministic role assignment name keeps the call idempotent per
	// (scope, principal, role).
	nameInput := scope + "|" + principalID + "|" + roleDefinitionID
	roleAssignmentName := uuid.NewSHA1(roleAssignmentNamespace, []byte(nameInput)).String()

	roleAssignment := armauthorization.RoleAssignmentCreateParameters{
		Properties: &armauthorization.RoleAssignmentProperties{
			RoleDefinitionID: to.Ptr(roleDefinitionID),
			PrincipalID:      to.Ptr(principalID),
			PrincipalType:    to.Ptr(armauthorization.PrincipalTypeServicePrincipal),
		},
	}

	_, err = client.Create(ctx, scope, roleAssignmentName, roleAssignment, nil)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "already exists") ||
			strings.Contains(strings.ToLower(err.Error()), "conflict") {
			return nil
		}
		return fmt.Errorf("create role assignment: %w", err)
	}
	return nil
}
