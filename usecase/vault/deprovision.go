package vault

import (
	"context"

	"github.com/kvbridge/kvbridge/domain/model"
)

// DeprovisionInput represents a command to deprovision a vault.
type DeprovisionInput struct {
	VaultID string `json:"vault_id"`
	// Purge also purges the soft-deleted vault so the name frees up.
	Purge bool `json:"purge,omitempty"`
}
type DeprovisionOutput struct{}

// Deprovision deletes the vault in the provider.
func (u *UseCase) Deprovision(ctx context.Context, in *DeprovisionInput) (*DeprovisionOutput, error) {
	if in == nil || in.VaultID == "" {
		return nil, model.ErrVaultInvalid
	}
	v, err := u.Repos.Vault.Get(ctx, in.VaultID)
	if err != nil {
		return nil, err
	}
	if err := u.VaultPort.VaultDeprovision(ctx, v, in.Purge); err != nil {
		return nil, err
	}
	return &DeprovisionOutput{}, nil
}
