package workload

import (
	"context"

	"github.com/kvbridge/kvbridge/adapters/kube"
	"github.com/kvbridge/kvbridge/domain/model"
)

// RemoveRedisInput removes a Redis release deployed for a binding.
type RemoveRedisInput struct {
	BindingID string `json:"binding_id"`
	// Release overrides the Helm release name; empty uses the binding name.
	Release string `json:"release,omitempty"`
}
type RemoveRedisOutput struct{}

// RemoveRedis uninstalls the Redis release. Best-effort, idempotent.
func (u *UseCase) RemoveRedis(ctx context.Context, in *RemoveRedisInput) (*RemoveRedisOutput, error) {
	if in == nil || in.BindingID == "" {
		return nil, model.ErrBindingInvalid
	}
	b, err := u.Repos.Binding.Get(ctx, in.BindingID)
	if err != nil {
		return nil, err
	}
	c, err := u.Repos.Cluster.Get(ctx, b.ClusterID)
	if err != nil {
		return nil, err
	}

	release := in.Release
	if release == "" {
		release = b.Name
	}

	kubeconfig, err := u.ClusterPort.ClusterKubeconfig(ctx, c)
	if err != nil {
		return nil, err
	}
	kc, err := u.kubeFactory()(ctx, kubeconfig)
	if err != nil {
		return nil, err
	}
	installer := kube.NewInstaller(kc, kubeconfig)
	if err := installer.UninstallRedis(ctx, b.Namespace, release); err != nil {
		return nil, err
	}
	return &RemoveRedisOutput{}, nil
}
