package cluster

import (
	"context"

	"github.com/kvbridge/kvbridge/adapters/kube"
	"github.com/kvbridge/kvbridge/domain/model"
)

// UninstallInput represents a command to remove in-cluster components.
type UninstallInput struct {
	ClusterID string `json:"cluster_id"`
}
type UninstallOutput struct{}

// Uninstall removes the secrets-store CSI driver release.
func (u *UseCase) Uninstall(ctx context.Context, in *UninstallInput) (*UninstallOutput, error) {
	if in == nil || in.ClusterID == "" {
		return nil, model.ErrClusterInvalid
	}
	c, err := u.Repos.Cluster.Get(ctx, in.ClusterID)
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
	installer := kube.NewInstaller(kc, kubeconfig)
	if err := installer.UninstallCSIDriver(ctx); err != nil {
		return nil, err
	}
	return &UninstallOutput{}, nil
}
