package cluster

import (
	"context"

	"github.com/kvbridge/kvbridge/domain/model"
)

// KubeconfigInput identifies the cluster whose kubeconfig is requested.
type KubeconfigInput struct {
	ClusterID string `json:"cluster_id"`
}

// KubeconfigOutput carries raw admin kubeconfig bytes.
type KubeconfigOutput struct {
	Kubeconfig []byte `json:"kubeconfig"`
}

// Kubeconfig resolves admin credentials for the cluster.
func (u *UseCase) Kubeconfig(ctx context.Context, in *KubeconfigInput) (*KubeconfigOutput, error) {
	if in == nil || in.ClusterID == "" {
		return nil, model.ErrClusterInvalid
	}
	c, err := u.Repos.Cluster.Get(ctx, in.ClusterID)
	if err != nil {
		return nil, err
	}
	kc, err := u.ClusterPort.ClusterKubeconfig(ctx, c)
	if err != nil {
		return nil, err
	}
	return &KubeconfigOutput{Kubeconfig: kc}, nil
}
