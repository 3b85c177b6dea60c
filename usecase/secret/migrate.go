package secret

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/kvbridge/kvbridge/domain/model"
	"github.com/kvbridge/kvbridge/internal/envfile"
	"github.com/kvbridge/kvbridge/internal/naming"
)

// MigrateInput imports secrets from a local env file into a vault. This is
// the bulk step when moving credentials out of static config files.
type MigrateInput struct {
	VaultID string `json:"vault_id"`
	// Path is a .env, .json, or .yaml file of key/value pairs.
	Path string `json:"path"`
	// Only restricts migration to the named keys; empty migrates everything.
	Only []string `json:"only,omitempty"`
}

// MigratedSecret records the outcome for one key. Name is the Key Vault
// secret name the key was written under, which differs from Key when the key
// holds characters Key Vault rejects.
type MigratedSecret struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

// MigrateOutput lists the secrets written, in sorted key order.
type MigrateOutput struct {
	Secrets []MigratedSecret `json:"secrets"`
}

// Migrate reads the env file and writes each entry as a vault secret.
func (u *UseCase) Migrate(ctx context.Context, in *MigrateInput) (*MigrateOutput, error) {
	if in == nil || in.VaultID == "" || in.Path == "" {
		return nil, model.ErrVaultInvalid
	}
	v, err := u.Repos.Vault.Get(ctx, in.VaultID)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(in.Path)
	if err != nil {
		return nil, fmt.Errorf("read secrets file: %w", err)
	}
	kv, err := envfile.Parse(content, in.Path)
	if err != nil {
		return nil, fmt.Errorf("parse secrets file: %w", err)
	}
	if err := envfile.Validate(kv); err != nil {
		return nil, fmt.Errorf("validate secrets file: %w", err)
	}

	keys := make([]string, 0, len(kv))
	if len(in.Only) > 0 {
		for _, k := range in.Only {
			if _, ok := kv[k]; !ok {
				return nil, fmt.Errorf("key %s not present in %s", k, in.Path)
			}
			keys = append(keys, k)
		}
	} else {
		for k := range kv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}

	out := &MigrateOutput{}
	for _, k := range keys {
		if err := naming.ValidateSecretKey(k); err != nil {
			return nil, fmt.Errorf("key %s: %w", k, err)
		}
		// Env keys use underscores; Key Vault only takes alphanumerics
		// and hyphens, so write under the mapped name.
		name := naming.VaultSecretName(k)
		if err := naming.ValidateVaultSecretName(name); err != nil {
			return nil, fmt.Errorf("key %s: %w", k, err)
		}
		version, err := u.SecretPort.SecretSet(ctx, v, name, kv[k])
		if err != nil {
			return nil, fmt.Errorf("migrate %s: %w", k, err)
		}
		out.Secrets = append(out.Secrets, MigratedSecret{Key: k, Name: name, Version: version})
	}
	return out, nil
}
