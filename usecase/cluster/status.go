package cluster

import (
	"context"

	"github.com/kvbridge/kvbridge/domain/model"
)

// StatusInput identifies the cluster to inspect.
type StatusInput struct {
	ClusterID string `json:"cluster_id"`
}

// StatusOutput wraps the provider-reported status.
type StatusOutput struct {
	Status *model.ClusterStatus `json:"status"`
}

// Status reports the state of the cluster.
func (u *UseCase) Status(ctx context.Context, in *StatusInput) (*StatusOutput, error) {
	if in == nil || in.ClusterID == "" {
		return nil, model.ErrClusterInvalid
	}
	c, err := u.Repos.Cluster.Get(ctx, in.ClusterID)
	if err != nil {
		return nil, err
	}
	st, err := u.ClusterPort.ClusterStatus(ctx, c)
	if err != nil {
		return nil, err
	}
	return &StatusOutput{Status: st}, nil
}
