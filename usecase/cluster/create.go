package cluster

import (
	"context"
	"time"

	"github.com/kvbridge/kvbridge/domain/model"
	"github.com/kvbridge/kvbridge/internal/naming"
)

// CreateInput contains data to register a cluster.
type CreateInput struct {
	// Name is the AKS managed cluster name.
	Name string `json:"name"`
	// ResourceGroup holds the cluster's Azure resource group.
	ResourceGroup string `json:"resource_group"`
	// Existing marks clusters kvbridge must not provision or deprovision.
	Existing bool `json:"existing,omitempty"`
	// Driver selects the provider driver; empty means "azure".
	Driver string `json:"driver,omitempty"`
	// Settings holds driver-specific settings.
	Settings map[string]string `json:"settings,omitempty"`
}

// CreateOutput wraps the created cluster.
type CreateOutput struct {
	Cluster *model.Cluster `json:"cluster"`
}

// Create persists a new cluster entity.
func (u *UseCase) Create(ctx context.Context, in *CreateInput) (*CreateOutput, error) {
	if in == nil || in.Name == "" {
		return nil, model.ErrClusterInvalid
	}
	driver := in.Driver
	if driver == "" {
		driver = "azure"
	}
	now := time.Now().UTC()
	c := &model.Cluster{
		ID:            naming.ClusterID(in.Name, in.ResourceGroup),
		Name:          in.Name,
		ResourceGroup: in.ResourceGroup,
		Existing:      in.Existing,
		Driver:        driver,
		Settings:      in.Settings,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := u.Repos.Cluster.Create(ctx, c); err != nil {
		return nil, err
	}
	return &CreateOutput{Cluster: c}, nil
}
