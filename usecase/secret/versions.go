package secret

import (
	"context"

	"github.com/kvbridge/kvbridge/domain/model"
)

// VersionsInput identifies the secret whose versions are listed.
type VersionsInput struct {
	VaultID string `json:"vault_id"`
	Name    string `json:"name"`
}

// VersionsOutput wraps the version list, oldest first.
type VersionsOutput struct {
	Versions []model.SecretVersion `json:"versions"`
}

// Versions lists known versions of the secret.
func (u *UseCase) Versions(ctx context.Context, in *VersionsInput) (*VersionsOutput, error) {
	if in == nil || in.VaultID == "" || in.Name == "" {
		return nil, model.ErrVaultInvalid
	}
	v, err := u.Repos.Vault.Get(ctx, in.VaultID)
	if err != nil {
		return nil, err
	}
	vs, err := u.SecretPort.SecretVersions(ctx, v, in.Name)
	if err != nil {
		return nil, err
	}
	return &VersionsOutput{Versions: vs}, nil
}
