package cluster

import (
	"context"

	"github.com/kvbridge/kvbridge/domain/model"
)

// ListInput has no fields; all clusters are returned.
type ListInput struct{}

// ListOutput wraps the cluster list.
type ListOutput struct {
	Clusters []*model.Cluster `json:"clusters"`
}

// List returns all known clusters.
func (u *UseCase) List(ctx context.Context, _ *ListInput) (*ListOutput, error) {
	cs, err := u.Repos.Cluster.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Clusters: cs}, nil
}
