package memory

import (
	"context"
	"sync"
	"time"

	"github.com/kvbridge/kvbridge/domain"
	"github.com/kvbridge/kvbridge/domain/model"
)

// SyncStateRepository is an in-memory implementation of domain.SyncStateRepository.
type SyncStateRepository struct {
	mu     sync.RWMutex
	states map[string]*model.SyncState
}

func NewSyncStateRepository() *SyncStateRepository {
	return &SyncStateRepository{states: map[string]*model.SyncState{}}
}

func (r *SyncStateRepository) Get(_ context.Context, bindingID string) (*model.SyncState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.states[bindingID]
	if !ok {
		return nil, model.ErrSyncStateNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *SyncStateRepository) Put(_ context.Context, s *model.SyncState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.UpdatedAt = time.Now()
	cp := *s
	r.states[s.BindingID] = &cp
	return nil
}

func (r *SyncStateRepository) Delete(_ context.Context, bindingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.states[bindingID]; !ok {
		return model.ErrSyncStateNotFound
	}
	delete(r.states, bindingID)
	return nil
}

var _ domain.SyncStateRepository = (*SyncStateRepository)(nil)
