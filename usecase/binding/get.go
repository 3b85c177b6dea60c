package binding

import (
	"context"

	"github.com/kvbridge/kvbridge/domain/model"
)

// GetInput identifies the binding to fetch.
type GetInput struct {
	BindingID string `json:"binding_id"`
}

// GetOutput wraps the fetched binding and its last sync state, when any.
type GetOutput struct {
	Binding   *model.Binding   `json:"binding"`
	SyncState *model.SyncState `json:"sync_state,omitempty"`
}

// Get fetches a binding by id along with its sync state.
func (u *UseCase) Get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	if in == nil || in.BindingID == "" {
		return nil, model.ErrBindingInvalid
	}
	b, err := u.Repos.Binding.Get(ctx, in.BindingID)
	if err != nil {
		return nil, err
	}
	out := &GetOutput{Binding: b}
	if st, err := u.Repos.SyncState.Get(ctx, b.ID); err == nil {
		out.SyncState = st
	}
	return out, nil
}
