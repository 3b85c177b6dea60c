package syncer

import (
	"context"
	"errors"
	"time"

	"github.com/kvbridge/kvbridge/adapters/kube"
	"github.com/kvbridge/kvbridge/domain/model"
	"github.com/kvbridge/kvbridge/internal/logging"
)

// deployReadyTimeout bounds the post-restart rollout wait per pass.
const deployReadyTimeout = 2 * time.Minute

// SyncResult reports the outcome of one sync pass for a binding.
type SyncResult struct {
	BindingID string `json:"binding_id"`
	// Version is the vault secret version observed in this pass.
	Version string `json:"version"`
	// Changed is true when the cluster Secret was created or updated.
	Changed bool `json:"changed"`
	// Restarted is true when the dependent deployment was rolled.
	Restarted bool `json:"restarted"`
}

// SyncBinding performs one poll-compare-write pass for a binding: read the
// latest vault secret, compare against the last-known-good record, and on
// change write the synced Secret and signal the dependent deployment.
func (u *UseCase) SyncBinding(ctx context.Context, b *model.Binding) (*SyncResult, error) {
	if b == nil {
		return nil, model.ErrBindingInvalid
	}
	logger := logging.FromContext(ctx).With("binding", b.Name)

	v, err := u.Repos.Vault.Get(ctx, b.VaultID)
	if err != nil {
		return nil, err
	}
	c, err := u.Repos.Cluster.Get(ctx, b.ClusterID)
	if err != nil {
		return nil, err
	}

	sv, err := u.SecretPort.SecretGet(ctx, v, b.VaultSecret, "")
	if err != nil {
		return nil, err
	}

	result := &SyncResult{BindingID: b.ID, Version: sv.Version}
	hash := kube.ComputeSecretHash(b.SecretKey, sv.Value)

	state, err := u.Repos.SyncState.Get(ctx, b.ID)
	if err != nil && !errors.Is(err, model.ErrSyncStateNotFound) {
		return nil, err
	}
	if state != nil && state.Version == sv.Version && state.Hash == hash {
		// Last-known-good matches, but the cluster Secret may still have
		// drifted or been deleted out-of-band; verify cheaply by version.
		kc, err := u.kubeForCluster(ctx, c)
		if err != nil {
			return nil, err
		}
		current, err := kc.GetSyncedSecretVersion(ctx, b.Namespace, b.SecretName)
		if err != nil {
			return nil, err
		}
		if current == sv.Version {
			return result, nil
		}
		logger.Info(ctx, "synced secret drifted, rewriting", "expected", sv.Version, "found", current)
	}

	kc, err := u.kubeForCluster(ctx, c)
	if err != nil {
		return nil, err
	}
	changed, err := kc.EnsureSyncedSecret(ctx, &kube.SyncedSecretSpec{
		Namespace:  b.Namespace,
		Name:       b.SecretName,
		Key:        b.SecretKey,
		Value:      sv.Value,
		VaultName:  v.Name,
		SecretName: b.VaultSecret,
		Version:    sv.Version,
	})
	if err != nil {
		return nil, err
	}
	result.Changed = changed

	if changed && b.Deployment != "" {
		if err := kc.PatchDeploymentRestart(ctx, b.Namespace, b.Deployment); err != nil {
			return nil, err
		}
		result.Restarted = true
		// Non-fatal: the restart is signaled and state below still records
		// this version, so a slow rollout never re-triggers a restart.
		if err := kc.WaitForDeploymentReady(ctx, b.Namespace, b.Deployment, deployReadyTimeout); err != nil {
			logger.Warn(ctx, "deployment not ready after restart", "deployment", b.Deployment, "error", err)
		}
	}

	now := time.Now().UTC()
	if err := u.Repos.SyncState.Put(ctx, &model.SyncState{
		BindingID: b.ID,
		Version:   sv.Version,
		Hash:      hash,
		SyncedAt:  now,
	}); err != nil {
		return nil, err
	}

	if changed {
		logger.Info(ctx, "binding synced", "version", sv.Version, "restarted", result.Restarted)
	}
	return result, nil
}
