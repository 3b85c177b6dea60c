package vault

import (
	"context"
	"time"

	"github.com/kvbridge/kvbridge/domain/model"
)

// ProvisionInput represents a command to provision a vault.
type ProvisionInput struct {
	VaultID string `json:"vault_id"`
}

// ProvisionOutput returns the provisioned vault with its resolved URI.
type ProvisionOutput struct {
	Vault *model.Vault `json:"vault"`
}

// Provision creates the vault in the provider and records the resolved URI.
func (u *UseCase) Provision(ctx context.Context, in *ProvisionInput) (*ProvisionOutput, error) {
	if in == nil || in.VaultID == "" {
		return nil, model.ErrVaultInvalid
	}
	v, err := u.Repos.Vault.Get(ctx, in.VaultID)
	if err != nil {
		return nil, err
	}
	if err := u.VaultPort.VaultProvision(ctx, v); err != nil {
		return nil, err
	}
	v.UpdatedAt = time.Now().UTC()
	if err := u.Repos.Vault.Update(ctx, v); err != nil {
		return nil, err
	}
	return &ProvisionOutput{Vault: v}, nil
}
