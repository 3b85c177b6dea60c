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

// BindingRepository is an in-memory implementation of domain.BindingRepository.
type BindingRepository struct {
	mu       sync.RWMutex
	bindings map[string]*model.Binding
}

func NewBindingRepository() *BindingRepository {
	return &BindingRepository{bindings: map[string]*model.Binding{}}
}

func (r *BindingRepository) Create(_ context.Context, b *model.Binding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == "" {
		b.ID = "bind-" + uuid.NewString()
	}
	now := time.Now()
	b.CreatedAt, b.UpdatedAt = now, now
	cp := *b
	r.bindings[b.ID] = &cp
	return nil
}

func (r *BindingRepository) Get(_ context.Context, id string) (*model.Binding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bindings[id]
	if !ok {
		return nil, model.ErrBindingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *BindingRepository) List(_ context.Context) ([]*model.Binding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Binding, 0, len(r.bindings))
	for _, b := range r.bindings {
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *BindingRepository) Update(_ context.Context, b *model.Binding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bindings[b.ID]; !ok {
		return model.ErrBindingNotFound
	}
	b.UpdatedAt = time.Now()
	cp := *b
	r.bindings[b.ID] = &cp
	return nil
}

func (r *BindingRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bindings[id]; !ok {
		return model.ErrBindingNotFound
	}
	delete(r.bindings, id)
	return nil
}

var _ domain.BindingRepository = (*BindingRepository)(nil)
