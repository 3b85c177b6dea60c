package syncer

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/kvbridge/kvbridge/domain/model"
	"github.com/kvbridge/kvbridge/internal/logging"
)

// OnceInput selects bindings for a single sync pass.
type OnceInput struct {
	// BindingIDs restricts the pass; empty syncs every binding.
	BindingIDs []string `json:"binding_ids,omitempty"`
}

// OnceOutput lists the per-binding results of the pass.
type OnceOutput struct {
	Results []*SyncResult `json:"results"`
}

// Once runs one sync pass over the selected bindings sequentially. The first
// failing binding aborts the pass.
func (u *UseCase) Once(ctx context.Context, in *OnceInput) (*OnceOutput, error) {
	bindings, err := u.selectBindings(ctx, in.bindingIDs())
	if err != nil {
		return nil, err
	}
	out := &OnceOutput{}
	for _, b := range bindings {
		res, err := u.SyncBinding(ctx, b)
		if err != nil {
			return nil, fmt.Errorf("sync binding %s: %w", b.Name, err)
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}

func (in *OnceInput) bindingIDs() []string {
	if in == nil {
		return nil
	}
	return in.BindingIDs
}

// RunInput selects bindings for the continuous poller.
type RunInput struct {
	// BindingIDs restricts the poller; empty polls every binding.
	BindingIDs []string `json:"binding_ids,omitempty"`
}
type RunOutput struct{}

// Run polls the selected bindings until the context is canceled. Each
// binding gets its own goroutine on its own cadence; one binding failing a
// pass never stops the others.
func (u *UseCase) Run(ctx context.Context, in *RunInput) (*RunOutput, error) {
	var ids []string
	if in != nil {
		ids = in.BindingIDs
	}
	bindings, err := u.selectBindings(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(bindings) == 0 {
		return nil, fmt.Errorf("no bindings to sync")
	}

	logger := logging.FromContext(ctx)
	logger.Info(ctx, "sync poller starting", "bindings", len(bindings))

	var wg sync.WaitGroup
	for _, b := range bindings {
		wg.Add(1)
		go func(b *model.Binding) {
			defer wg.Done()
			u.pollBinding(ctx, b)
		}(b)
	}
	wg.Wait()
	logger.Info(ctx, "sync poller stopped")
	return &RunOutput{}, nil
}

// pollBinding loops one binding until the context ends. Errors are logged
// and the next tick retries.
func (u *UseCase) pollBinding(ctx context.Context, b *model.Binding) {
	logger := logging.FromContext(ctx).With("binding", b.Name)
	interval := b.EffectiveInterval()

	// Spread start times so bindings sharing a vault do not hit it at once.
	var jitter time.Duration
	if j := int64(interval) / 10; j > 0 {
		jitter = time.Duration(rand.Int63n(j))
	}
	select {
	case <-ctx.Done():
		return
	case <-time.After(jitter):
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sync := func() {
		if _, err := u.SyncBinding(ctx, b); err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Warn(ctx, "sync pass failed", "error", err)
		}
	}

	sync()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sync()
		}
	}
}

// selectBindings resolves the binding set, or all bindings when ids is empty.
func (u *UseCase) selectBindings(ctx context.Context, ids []string) ([]*model.Binding, error) {
	if len(ids) == 0 {
		return u.Repos.Binding.List(ctx)
	}
	var bindings []*model.Binding
	for _, id := range ids {
		b, err := u.Repos.Binding.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, b)
	}
	return bindings, nil
}
