package rdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kvbridge/kvbridge/domain/model"
)

func TestOpenFromURLRejectsUnknownScheme(t *testing.T) {
	if _, err := OpenFromURL("postgres://localhost/db"); err == nil {
		t.Fatal("expected error for unsupported scheme")
	}
}

func TestBindingRoundTrip(t *testing.T) {
	db, err := OpenFromURL("sqlite::memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	ctx := context.Background()
	repo := NewBindingRepository(db)
	b := &model.Binding{
		Name: "redis", VaultID: "vault-1", ClusterID: "clus-1",
		VaultSecret: "redis-password", Namespace: "default",
		SecretName: "kvb-redis-synced", SecretKey: "redis-password",
		Interval: 2 * time.Minute,
	}
	if err := repo.Create(ctx, b); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := repo.Get(ctx, b.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Interval != 2*time.Minute || got.VaultSecret != "redis-password" {
		t.Errorf("unexpected binding: %+v", got)
	}
	if err := repo.Delete(ctx, b.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, b.ID); !errors.Is(err, model.ErrBindingNotFound) {
		t.Fatalf("expected ErrBindingNotFound, got %v", err)
	}
}

func TestSyncStateUpsert(t *testing.T) {
	db, err := OpenFromURL("sqlite::memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	ctx := context.Background()
	repo := NewSyncStateRepository(db)
	if err := repo.Put(ctx, &model.SyncState{BindingID: "b1", Version: "v1", Hash: "h1", SyncedAt: time.Now()}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := repo.Put(ctx, &model.SyncState{BindingID: "b1", Version: "v2", Hash: "h2", SyncedAt: time.Now()}); err != nil {
		t.Fatalf("put upsert: %v", err)
	}
	got, err := repo.Get(ctx, "b1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Version != "v2" || got.Hash != "h2" {
		t.Errorf("upsert not applied: %+v", got)
	}
}
