package secret

import (
	"context"

	"github.com/kvbridge/kvbridge/domain/model"
)

// GetInput identifies the secret (and optionally version) to read.
type GetInput struct {
	VaultID string `json:"vault_id"`
	Name    string `json:"name"`
	// Version is optional; empty resolves the latest.
	Version string `json:"version,omitempty"`
}

// GetOutput wraps the resolved secret value.
type GetOutput struct {
	Secret *model.SecretValue `json:"secret"`
}

// Get reads a secret value from the vault.
func (u *UseCase) Get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	if in == nil || in.VaultID == "" || in.Name == "" {
		return nil, model.ErrVaultInvalid
	}
	v, err := u.Repos.Vault.Get(ctx, in.VaultID)
	if err != nil {
		return nil, err
	}
	sv, err := u.SecretPort.SecretGet(ctx, v, in.Name, in.Version)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Secret: sv}, nil
}
