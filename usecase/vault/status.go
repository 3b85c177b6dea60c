package vault

import (
	"context"

	"github.com/kvbridge/kvbridge/domain/model"
)

// StatusInput identifies the vault to inspect.
type StatusInput struct {
	VaultID string `json:"vault_id"`
}

// StatusOutput wraps the provider-reported status.
type StatusOutput struct {
	Status *model.VaultStatus `json:"status"`
}

// Status reports the control plane state of the vault.
func (u *UseCase) Status(ctx context.Context, in *StatusInput) (*StatusOutput, error) {
	if in == nil || in.VaultID == "" {
		return nil, model.ErrVaultInvalid
	}
	v, err := u.Repos.Vault.Get(ctx, in.VaultID)
	if err != nil {
		return nil, err
	}
	st, err := u.VaultPort.VaultStatus(ctx, v)
	if err != nil {
		return nil, err
	}
	return &StatusOutput{Status: st}, nil
}
