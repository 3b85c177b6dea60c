package binding

import (
	"context"
	"errors"

	"github.com/kvbridge/kvbridge/domain/model"
	"github.com/kvbridge/kvbridge/internal/naming"
)

// UnapplyInput represents a command to remove a binding's cluster resources.
type UnapplyInput struct {
	BindingID string `json:"binding_id"`
}
type UnapplyOutput struct{}

// Unapply deletes the SecretProviderClass and the synced Secret, then drops
// the recorded sync state. The binding entity itself is kept.
func (u *UseCase) Unapply(ctx context.Context, in *UnapplyInput) (*UnapplyOutput, error) {
	if in == nil || in.BindingID == "" {
		return nil, model.ErrBindingInvalid
	}
	b, _, c, err := u.resolve(ctx, in.BindingID)
	if err != nil {
		return nil, err
	}

	kubeconfig, err := u.ClusterPort.ClusterKubeconfig(ctx, c)
	if err != nil {
		return nil, err
	}
	kc, err := u.kubeFactory()(ctx, kubeconfig)
	if err != nil {
		return nil, err
	}

	if err := kc.DeleteSecretProviderClass(ctx, b.Namespace, naming.SecretProviderClassName(b.Name)); err != nil {
		return nil, err
	}
	if err := kc.DeleteSyncedSecret(ctx, b.Namespace, b.SecretName); err != nil {
		return nil, err
	}
	if err := u.Repos.SyncState.Delete(ctx, b.ID); err != nil &&
		!errors.Is(err, model.ErrSyncStateNotFound) {
		return nil, err
	}
	return &UnapplyOutput{}, nil
}
