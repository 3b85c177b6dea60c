package cluster

import (
	"context"

	"github.com/kvbridge/kvbridge/domain/model"
)

// GetInput identifies the cluster to fetch.
type GetInput struct {
	ClusterID string `json:"cluster_id"`
}

// GetOutput wraps the fetched cluster.
type GetOutput struct {
	Cluster *model.Cluster `json:"cluster"`
}

// Get fetches a cluster by id.
func (u *UseCase) Get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	if in == nil || in.ClusterID == "" {
		return nil, model.ErrClusterInvalid
	}
	c, err := u.Repos.Cluster.Get(ctx, in.ClusterID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Cluster: c}, nil
}
