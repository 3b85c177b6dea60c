package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kvbridge/kvbridge/domain"
	"github.com/kvbridge/kvbridge/domain/model"
)

// ClusterRepository is an in-memory implementation of domain.ClusterRepository.
type ClusterRepository struct {
	mu       sync.RWMutex
	clusters map[string]*model.Cluster
}

func NewClusterRepository() *ClusterRepository {
	return &ClusterRepository{clusters: map[string]*model.Cluster{}}
}

func (r *ClusterRepository) Create(_ context.Context, c *model.Cluster) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == "" {
		c.ID = "clus-" + uuid.NewString()
	}
	now := time.Now()
	c.CreatedAt, c.UpdatedAt = now, now
	cp := *c
	r.clusters[c.ID] = &cp
	return nil
}

func (r *ClusterRepository) Get(_ context.Context, id string) (*model.Cluster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clusters[id]
	if !ok {
		return nil, model.ErrClusterNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *ClusterRepository) List(_ context.Context) ([]*model.Cluster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Cluster, 0, len(r.clusters))
	for _, c := range r.clusters {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ClusterRepository) Update(_ context.Context, c *model.Cluster) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clusters[c.ID]; !ok {
		return model.ErrClusterNotFound
	}
	c.UpdatedAt = time.Now()
	cp := *c
	r.clusters[c.ID] = &cp
	return nil
}

func (r *ClusterRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clusters[id]; !ok {
		return model.ErrClusterNotFound
	}
	delete(r.clusters, id)
	return nil
}

var _ domain.ClusterRepository = (*ClusterRepository)(nil)
