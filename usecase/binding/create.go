package binding

import (
	"context"
	"time"

	"github.com/kvbridge/kvbridge/domain/model"
	"github.com/kvbridge/kvbridge/internal/naming"
)

// CreateInput contains data to register a binding.
type CreateInput struct {
	// Name is the binding name, used to derive canonical resource names.
	Name string `json:"name"`
	// VaultID references the source vault.
	VaultID string `json:"vault_id"`
	// ClusterID references the target cluster.
	ClusterID string `json:"cluster_id"`
	// VaultSecret is the Key Vault secret to watch.
	VaultSecret string `json:"vault_secret"`
	// Namespace is the target Kubernetes namespace.
	Namespace string `json:"namespace"`
	// SecretName overrides the canonical synced Secret name.
	SecretName string `json:"secret_name,omitempty"`
	// SecretKey is the data key inside the synced Secret.
	SecretKey string `json:"secret_key"`
	// Deployment optionally names a Deployment to roll on change.
	Deployment string `json:"deployment,omitempty"`
	// Interval overrides the default poll cadence.
	Interval time.Duration `json:"interval,omitempty"`
}

// CreateOutput wraps the created binding.
type CreateOutput struct {
	Binding *model.Binding `json:"binding"`
}

// Create persists a new binding entity.
func (u *UseCase) Create(ctx context.Context, in *CreateInput) (*CreateOutput, error) {
	if in == nil || in.Name == "" || in.VaultID == "" || in.ClusterID == "" ||
		in.VaultSecret == "" || in.Namespace == "" || in.SecretKey == "" {
		return nil, model.ErrBindingInvalid
	}
	if err := naming.ValidateBindingName(in.Name); err != nil {
		return nil, err
	}
	if err := naming.ValidateVaultSecretName(in.VaultSecret); err != nil {
		return nil, err
	}
	if err := naming.ValidateSecretKey(in.SecretKey); err != nil {
		return nil, err
	}
	secretName := in.SecretName
	if secretName == "" {
		secretName = naming.SyncedSecretName(in.Name)
	}
	now := time.Now().UTC()
	b := &model.Binding{
		ID:          naming.BindingID(in.VaultID, in.ClusterID, in.Name),
		Name:        in.Name,
		VaultID:     in.VaultID,
		ClusterID:   in.ClusterID,
		VaultSecret: in.VaultSecret,
		Namespace:   in.Namespace,
		SecretName:  secretName,
		SecretKey:   in.SecretKey,
		Deployment:  in.Deployment,
		Interval:    in.Interval,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.Repos.Binding.Create(ctx, b); err != nil {
		return nil, err
	}
	return &CreateOutput{Binding: b}, nil
}
