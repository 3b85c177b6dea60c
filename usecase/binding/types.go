package binding

import (
	"context"

	"github.com/kvbridge/kvbridge/adapters/kube"
	"github.com/kvbridge/kvbridge/domain"
	"github.com/kvbridge/kvbridge/domain/model"
)

// Repos holds repositories needed for binding use cases.
type Repos struct {
	Vault     domain.VaultRepository
	Cluster   domain.ClusterRepository
	Binding   domain.BindingRepository
	SyncState domain.SyncStateRepository
}

// KubeFactory builds a kube client from kubeconfig bytes. Injected so tests
// can substitute fake clients.
type KubeFactory func(ctx context.Context, kubeconfig []byte) (*kube.Client, error)

// UseCase wires repositories and ports needed for binding use cases.
type UseCase struct {
	Repos       *Repos
	VaultPort   model.VaultPort
	ClusterPort model.ClusterPort
	NewKube     KubeFactory
}

func defaultKubeFactory(ctx context.Context, kubeconfig []byte) (*kube.Client, error) {
	return kube.NewClientFromKubeconfig(ctx, kubeconfig, &kube.Options{UserAgent: "kvbridge"})
}

func (u *UseCase) kubeFactory() KubeFactory {
	if u.NewKube != nil {
		return u.NewKube
	}
	return defaultKubeFactory
}

// resolve loads the binding with its vault and cluster.
func (u *UseCase) resolve(ctx context.Context, bindingID string) (*model.Binding, *model.Vault, *model.Cluster, error) {
	b, err := u.Repos.Binding.Get(ctx, bindingID)
	if err != nil {
		return nil, nil, nil, err
	}
	v, err := u.Repos.Vault.Get(ctx, b.VaultID)
	if err != nil {
		return nil, nil, nil, err
	}
	c, err := u.Repos.Cluster.Get(ctx, b.ClusterID)
	if err != nil {
		return nil, nil, nil, err
	}
	return b, v, c, nil
}
