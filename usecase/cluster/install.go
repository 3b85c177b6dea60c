package cluster

import (
	"context"

	"github.com/kvbridge/kvbridge/adapters/kube"
	"github.com/kvbridge/kvbridge/domain/model"
)

// InstallInput represents a command to install in-cluster components.
type InstallInput struct {
	ClusterID string `json:"cluster_id"`
}
type InstallOutput struct{}

// Install installs the secrets-store CSI driver with the Azure provider into
// the cluster. Required before SecretProviderClass objects can mount vault
// secrets.
func (u *UseCase) Install(ctx context.Context, in *InstallInput) (*InstallOutput, error) {
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
	if err := installer.InstallCSIDriver(ctx); err != nil {
		return nil, err
	}
	return &InstallOutput{}, nil
}
