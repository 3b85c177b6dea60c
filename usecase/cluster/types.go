package cluster

import (
	"context"

	"github.com/kvbridge/kvbridge/adapters/kube"
	"github.com/kvbridge/kvbridge/domain"
	"github.com/kvbridge/kvbridge/domain/model"
)

// Repos holds repositories needed for cluster use cases.
type Repos struct {
	Cluster domain.ClusterRepository
}

// KubeFactory builds a kube client from kubeconfig bytes. Injected so tests
// can substitute fake clients.
type KubeFactory func(ctx context.Context, kubeconfig []byte) (*kube.Client, error)

// UseCase wires repositories and ports needed for cluster use cases.
type UseCase struct {
	Repos       *Repos
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
