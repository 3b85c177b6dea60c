package binding

import (
	"context"
	"errors"

	"github.com/kvbridge/kvbridge/domain/model"
)

// DeleteInput identifies the binding to remove.
type DeleteInput struct {
	BindingID string `json:"binding_id"`
}

// DeleteOutput is empty because delete has no payload.
type DeleteOutput struct{}

// Delete removes a binding and its sync state; empty ID is a no-op.
func (u *UseCase) Delete(ctx context.Context, in *DeleteInput) (*DeleteOutput, error) {
	if in == nil || in.BindingID == "" { // idempotent
		return &DeleteOutput{}, nil
	}
	if err := u.Repos.SyncState.Delete(ctx, in.BindingID); err != nil &&
		!errors.Is(err, model.ErrSyncStateNotFound) {
		return nil, err
	}
	if err := u.Repos.Binding.Delete(ctx, in.BindingID); err != nil {
		return nil, err
	}
	return &DeleteOutput{}, nil
}
