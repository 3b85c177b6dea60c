package binding

import (
	"context"

	"github.com/kvbridge/kvbridge/domain/model"
)

// ListInput has no fields; all bindings are returned.
type ListInput struct{}

// ListOutput wraps the binding list.
type ListOutput struct {
	Bindings []*model.Binding `json:"bindings"`
}

// List returns all known bindings.
func (u *UseCase) List(ctx context.Context, _ *ListInput) (*ListOutput, error) {
	bs, err := u.Repos.Binding.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Bindings: bs}, nil
}
