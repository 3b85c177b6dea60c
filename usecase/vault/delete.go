package vault

import "context"

// DeleteInput identifies the vault to remove.
type DeleteInput struct {
	VaultID string `json:"vault_id"`
}

// DeleteOutput is empty because delete has no payload.
type DeleteOutput struct{}

// Delete removes a vault entity; empty ID is a no-op.
func (u *UseCase) Delete(ctx context.Context, in *DeleteInput) (*DeleteOutput, error) {
	if in == nil || in.VaultID == "" { // idempotent
		return &DeleteOutput{}, nil
	}
	if err := u.Repos.Vault.Delete(ctx, in.VaultID); err != nil {
		return nil, err
	}
	return &DeleteOutput{}, nil
}
