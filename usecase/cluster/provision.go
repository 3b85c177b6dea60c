package cluster

import (
	"context"

	"github.com/kvbridge/kvbridge/domain/model"
)

// ProvisionInput represents a command to provision a cluster.
type ProvisionInput struct {
	ClusterID string `json:"cluster_id"`
}
type ProvisionOutput struct{}

// Provision provisions the cluster in the provider.
func (u *UseCase) Provision(ctx context.Context, in *ProvisionInput) (*ProvisionOutput, error) {
	if in == nil || in.ClusterID == "" {
		return nil, model.ErrClusterInvalid
	}
	c, err := u.Repos.Cluster.Get(ctx, in.ClusterID)
	if err != nil {
		return nil, err
	}
	if err := u.ClusterPort.ClusterProvision(ctx, c); err != nil {
		return nil, err
	}
	return &ProvisionOutput{}, nil
}
