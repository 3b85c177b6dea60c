package workload

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/kvbridge/kvbridge/adapters/store/memory"
	"github.com/kvbridge/kvbridge/domain/model"
)

type staticSecretPort struct {
	version string
	value   string
}

func (s staticSecretPort) SecretSet(ctx context.Context, v *model.Vault, name, value string) (string, error) {
	return s.version, nil
}

func (s staticSecretPort) SecretGet(ctx context.Context, v *model.Vault, name, version string) (*model.SecretValue, error) {
	return &model.SecretValue{Name: name, Version: s.version, Value: s.value, Updated: time.Now()}, nil
}

func (s staticSecretPort) SecretVersions(ctx context.Context, v *model.Vault, name string) ([]model.SecretVersion, error) {
	return []model.SecretVersion{{Version: s.version, Enabled: true}}, nil
}

func TestVerifyRedisWithPassword(t *testing.T) {
	srv := miniredis.RunT(t)
	srv.RequireAuth("s3cret")

	u := &UseCase{}
	out, err := u.VerifyRedis(context.Background(), &VerifyRedisInput{
		Addr:     srv.Addr(),
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if out.Latency < 0 {
		t.Errorf("unexpected latency %v", out.Latency)
	}
	if srv.Exists(verifyCanaryKey) {
		t.Error("canary key left behind")
	}
}

func TestVerifyRedisWrongPassword(t *testing.T) {
	srv := miniredis.RunT(t)
	srv.RequireAuth("s3cret")

	u := &UseCase{}
	_, err := u.VerifyRedis(context.Background(), &VerifyRedisInput{
		Addr:     srv.Addr(),
		Password: "wrong",
	})
	if err == nil {
		t.Fatal("expected auth failure")
	}
}

func TestVerifyRedisResolvesVaultSecret(t *testing.T) {
	srv := miniredis.RunT(t)
	srv.RequireAuth("rotated")

	ctx := context.Background()
	store := memory.NewStore()
	v := &model.Vault{ID: "vault-1", Name: "kvb-prod", URI: "https://kvb-prod.vault.azure.net", Driver: "azure"}
	if err := store.VaultRepo.Create(ctx, v); err != nil {
		t.Fatal(err)
	}
	repos := store.Repositories()

	u := &UseCase{
		Repos:      &Repos{Vault: repos.Vault},
		SecretPort: staticSecretPort{version: "v7", value: "rotated"},
	}
	out, err := u.VerifyRedis(ctx, &VerifyRedisInput{
		Addr:       srv.Addr(),
		VaultID:    "vault-1",
		SecretName: "redis-password",
	})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if out.Version != "v7" {
		t.Errorf("version = %q, want v7", out.Version)
	}
}

func TestVerifyRedisRequiresCredentialSource(t *testing.T) {
	u := &UseCase{}
	if _, err := u.VerifyRedis(context.Background(), &VerifyRedisInput{Addr: "localhost:6379"}); err == nil {
		t.Fatal("expected error without password or vault reference")
	}
}
