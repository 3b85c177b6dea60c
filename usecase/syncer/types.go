package syncer

import (
	"context"
	"sync"

	"github.com/kvbridge/kvbridge/adapters/kube"
	"github.com/kvbridge/kvbridge/domain"
	"github.com/kvbridge/kvbridge/domain/model"
)

// Repos holds repositories needed for the sync poller.
type Repos struct {
	Vault     domain.VaultRepository
	Cluster   domain.ClusterRepository
	Binding   domain.BindingRepository
	SyncState domain.SyncStateRepository
}

// KubeFactory builds a kube client from kubeconfig bytes. Injected so tests
// can substitute fake clients.
type KubeFactory func(ctx context.Context, kubeconfig []byte) (*kube.Client, error)

// UseCase wires repositories and ports needed for the sync poller.
type UseCase struct {
	Repos       *Repos
	SecretPort  model.SecretPort
	ClusterPort model.ClusterPort
	NewKube     KubeFactory

	// kube clients are cached per cluster id for the lifetime of the
	// use case so each poll tick does not rebuild one.
	mu      sync.Mutex
	clients map[string]*kube.Client
}

func defaultKubeFactory(ctx context.Context, kubeconfig []byte) (*kube.Client, error) {
	return kube.NewClientFromKubeconfig(ctx, kubeconfig, &kube.Options{UserAgent: "kvbridge"})
}

// kubeForCluster returns a cached kube client for the cluster, building one
// from admin credentials on first use.
func (u *UseCase) kubeForCluster(ctx context.Context, c *model.Cluster) (*kube.Client, error) {
	u.mu.Lock()
	if kc, ok := u.clients[c.ID]; ok {
		u.mu.Unlock()
		return kc, nil
	}
	u.mu.Unlock()

	kubeconfig, err := u.ClusterPort.ClusterKubeconfig(ctx, c)
	if err != nil {
		return nil, err
	}
	factory := u.NewKube
	if factory == nil {
		factory = defaultKubeFactory
	}
	kc, err := factory(ctx, kubeconfig)
	if err != nil {
		return nil, err
	}

	u.mu.Lock()
	if u.clients == nil {
		u.clients = map[string]*kube.Client{}
	}
	u.clients[c.ID] = kc
	u.mu.Unlock()
	return kc, nil
}
