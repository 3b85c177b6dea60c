package secret

import (
	"context"

	"github.com/kvbridge/kvbridge/domain/model"
	"github.com/kvbridge/kvbridge/internal/naming"
)

// SetInput writes one secret value into a vault.
type SetInput struct {
	VaultID string `json:"vault_id"`
	// Name is the vault secret name.
	Name string `json:"name"`
	// Value is the secret material.
	Value string `json:"value"`
}

// SetOutput reports the version id the vault assigned.
type SetOutput struct {
	Version string `json:"version"`
}

// Set writes a new version of the secret.
func (u *UseCase) Set(ctx context.Context, in *SetInput) (*SetOutput, error) {
	if in == nil || in.VaultID == "" || in.Name == "" {
		return nil, model.ErrVaultInvalid
	}
	if err := naming.ValidateVaultSecretName(in.Name); err != nil {
		return nil, err
	}
	v, err := u.Repos.Vault.Get(ctx, in.VaultID)
	if err != nil {
		return nil, err
	}
	version, err := u.SecretPort.SecretSet(ctx, v, in.Name, in.Value)
	if err != nil {
		return nil, err
	}
	return &SetOutput{Version: version}, nil
}
