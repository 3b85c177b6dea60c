package vault

import (
	"context"

	"github.com/kvbridge/kvbridge/domain/model"
)

// ListInput has no fields; all vaults are returned.
type ListInput struct{}

// ListOutput wraps the vault list.
type ListOutput struct {
	Vaults []*model.Vault `json:"vaults"`
}

// List returns all known vaults.
func (u *UseCase) List(ctx context.Context, _ *ListInput) (*ListOutput, error) {
	vs, err := u.Repos.Vault.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Vaults: vs}, nil
}
