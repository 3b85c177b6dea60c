package vault

import (
	"context"

	"github.com/kvbridge/kvbridge/domain/model"
)

// GetInput identifies the vault to fetch.
type GetInput struct {
	VaultID string `json:"vault_id"`
}

// GetOutput wraps the fetched vault.
type GetOutput struct {
	Vault *model.Vault `json:"vault"`
}

// Get fetches a vault by id.
func (u *UseCase) Get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	if in == nil || in.VaultID == "" {
		return nil, model.ErrVaultInvalid
	}
	v, err := u.Repos.Vault.Get(ctx, in.VaultID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Vault: v}, nil
}
