package secret

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kvbridge/kvbridge/adapters/store/memory"
	"github.com/kvbridge/kvbridge/domain/model"
)

// recordingSecretPort captures the names secrets are written under.
type recordingSecretPort struct {
	written map[string]string
}

func (r *recordingSecretPort) SecretSet(ctx context.Context, v *model.Vault, name, value string) (string, error) {
	if r.written == nil {
		r.written = map[string]string{}
	}
	r.written[name] = value
	return "v1", nil
}

func (r *recordingSecretPort) SecretGet(ctx context.Context, v *model.Vault, name, version string) (*model.SecretValue, error) {
	return nil, model.ErrSecretNotFound
}

func (r *recordingSecretPort) SecretVersions(ctx context.Context, v *model.Vault, name string) ([]model.SecretVersion, error) {
	return nil, nil
}

func newTestUseCase(t *testing.T) (*UseCase, *recordingSecretPort) {
	t.Helper()
	store := memory.NewStore()
	v := &model.Vault{ID: "vault-1", Name: "kvb-prod", URI: "https://kvb-prod.vault.azure.net", Driver: "azure"}
	if err := store.VaultRepo.Create(context.Background(), v); err != nil {
		t.Fatal(err)
	}
	sp := &recordingSecretPort{}
	repos := store.Repositories()
	return &UseCase{Repos: &Repos{Vault: repos.Vault}, SecretPort: sp}, sp
}

func TestMigrateMapsEnvKeysToVaultNames(t *testing.T) {
	ctx := context.Background()
	u, sp := newTestUseCase(t)

	path := filepath.Join(t.TempDir(), "secrets.env")
	content := "REDIS_PASSWORD=hunter2\nAPI_TOKEN=tok\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := u.Migrate(ctx, &MigrateInput{VaultID: "vault-1", Path: path})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if len(out.Secrets) != 2 {
		t.Fatalf("migrated %d secrets, want 2", len(out.Secrets))
	}
	// Underscore keys must be written under Key Vault legal names.
	if got, ok := sp.written["REDIS-PASSWORD"]; !ok || got != "hunter2" {
		t.Errorf("REDIS-PASSWORD not written correctly: %v %q", ok, got)
	}
	if _, ok := sp.written["REDIS_PASSWORD"]; ok {
		t.Error("secret written under an underscore name Key Vault rejects")
	}
	first := out.Secrets[0]
	if first.Key != "API_TOKEN" || first.Name != "API-TOKEN" {
		t.Errorf("mapping not recorded: %+v", first)
	}
}

func TestMigrateOnlySubset(t *testing.T) {
	ctx := context.Background()
	u, sp := newTestUseCase(t)

	path := filepath.Join(t.TempDir(), "secrets.env")
	content := "REDIS_PASSWORD=hunter2\nAPI_TOKEN=tok\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := u.Migrate(ctx, &MigrateInput{VaultID: "vault-1", Path: path, Only: []string{"REDIS_PASSWORD"}})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if len(out.Secrets) != 1 || out.Secrets[0].Name != "REDIS-PASSWORD" {
		t.Errorf("unexpected subset result: %+v", out.Secrets)
	}
	if len(sp.written) != 1 {
		t.Errorf("wrote %d secrets, want 1", len(sp.written))
	}

	if _, err := u.Migrate(ctx, &MigrateInput{VaultID: "vault-1", Path: path, Only: []string{"MISSING"}}); err == nil {
		t.Error("expected error for absent key")
	}
}

func TestSetEnforcesVaultSecretNameRules(t *testing.T) {
	ctx := context.Background()
	u, sp := newTestUseCase(t)

	if _, err := u.Set(ctx, &SetInput{VaultID: "vault-1", Name: "REDIS_PASSWORD", Value: "x"}); err == nil {
		t.Error("expected error for underscore name")
	}
	if _, err := u.Set(ctx, &SetInput{VaultID: "vault-1", Name: "db.password", Value: "x"}); err == nil {
		t.Error("expected error for dotted name")
	}
	out, err := u.Set(ctx, &SetInput{VaultID: "vault-1", Name: "redis-password", Value: "hunter2"})
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if out.Version != "v1" || sp.written["redis-password"] != "hunter2" {
		t.Errorf("set not applied: %+v %v", out, sp.written)
	}
}
