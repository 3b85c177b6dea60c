package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/kvbridge/kvbridge/config/kvbridgecfg"
	"github.com/kvbridge/kvbridge/domain/model"
)

func TestLoadFromConfig(t *testing.T) {
	cfg, err := kvbridgecfg.Parse([]byte(`
version: 1
vault:
  name: kv-test-01
  resourceGroup: rg-test
cluster:
  name: aks-test
  resourceGroup: rg-test
bindings:
  - name: redis
    vaultSecret: redis-password
    namespace: default
    key: redis-password
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	s := NewStore()
	ctx := context.Background()
	if err := s.LoadFromConfig(ctx, cfg); err != nil {
		t.Fatalf("load: %v", err)
	}
	vaults, err := s.VaultRepo.List(ctx)
	if err != nil || len(vaults) != 1 {
		t.Fatalf("vaults = %v, err = %v", vaults, err)
	}
	bindings, err := s.BindingRepo.List(ctx)
	if err != nil || len(bindings) != 1 {
		t.Fatalf("bindings = %v, err = %v", bindings, err)
	}
	if bindings[0].VaultID != vaults[0].ID {
		t.Error("binding not wired to vault")
	}
}

func TestSyncStateRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := NewSyncStateRepository()

	if _, err := r.Get(ctx, "missing"); !errors.Is(err, model.ErrSyncStateNotFound) {
		t.Fatalf("expected ErrSyncStateNotFound, got %v", err)
	}
	st := &model.SyncState{BindingID: "b1", Version: "v1", Hash: "abc123"}
	if err := r.Put(ctx, st); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := r.Get(ctx, "b1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Version != "v1" || got.Hash != "abc123" {
		t.Errorf("unexpected state: %+v", got)
	}
	// Put overwrites.
	st.Version = "v2"
	if err := r.Put(ctx, st); err != nil {
		t.Fatalf("put 2: %v", err)
	}
	got, _ = r.Get(ctx, "b1")
	if got.Version != "v2" {
		t.Errorf("version = %s, want v2", got.Version)
	}
	if err := r.Delete(ctx, "b1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := r.Delete(ctx, "b1"); !errors.Is(err, model.ErrSyncStateNotFound) {
		t.Fatalf("expected ErrSyncStateNotFound on second delete, got %v", err)
	}
}

func TestVaultRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	r := NewVaultRepository()
	v := &model.Vault{Name: "kv-a", ResourceGroup: "rg"}
	if err := r.Create(ctx, v); err != nil {
		t.Fatalf("create: %v", err)
	}
	if v.ID == "" {
		t.Fatal("id not assigned")
	}
	got, err := r.Get(ctx, v.ID)
	if err != nil || got.Name != "kv-a" {
		t.Fatalf("get: %v %v", got, err)
	}
	got.URI = "https://kv-a.vault.azure.net"
	if err := r.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := r.Delete(ctx, v.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := r.Get(ctx, v.ID); !errors.Is(err, model.ErrVaultNotFound) {
		t.Fatalf("expected ErrVaultNotFound, got %v", err)
	}
}
