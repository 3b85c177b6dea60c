package kube

import (
	"context"
	"testing"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func testClient() *Client {
	return &Client{Clientset: fake.NewSimpleClientset()}
}

func TestEnsureSyncedSecretCreatesAndUpdates(t *testing.T) {
	ctx := context.Background()
	c := testClient()
	spec := &SyncedSecretSpec{
		Namespace:  "default",
		Name:       "kvb-redis-synced",
		Key:        "redis-password",
		Value:      "s3cret",
		VaultName:  "kvb-prod",
		SecretName: "redis-password",
		Version:    "v1",
	}

	changed, err := c.EnsureSyncedSecret(ctx, spec)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !changed {
		t.Error("expected create to report change")
	}

	sec, err := c.Clientset.CoreV1().Secrets("default").Get(ctx, "kvb-redis-synced", metav1.GetOptions{})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(sec.Data["redis-password"]) != "s3cret" {
		t.Errorf("unexpected data: %q", sec.Data["redis-password"])
	}
	if sec.Annotations[AnnotationSourceVault] != "kvb-prod" {
		t.Errorf("missing source vault annotation: %v", sec.Annotations)
	}
	if sec.Annotations[AnnotationSourceVersion] != "v1" {
		t.Errorf("missing source version annotation: %v", sec.Annotations)
	}

	// Same spec again is a no-op.
	changed, err = c.EnsureSyncedSecret(ctx, spec)
	if err != nil {
		t.Fatalf("noop: %v", err)
	}
	if changed {
		t.Error("expected unchanged spec to be a no-op")
	}

	// New version and value updates in place.
	spec.Value = "rotated"
	spec.Version = "v2"
	changed, err = c.EnsureSyncedSecret(ctx, spec)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !changed {
		t.Error("expected update to report change")
	}
	sec, _ = c.Clientset.CoreV1().Secrets("default").Get(ctx, "kvb-redis-synced", metav1.GetOptions{})
	if string(sec.Data["redis-password"]) != "rotated" {
		t.Errorf("value not updated: %q", sec.Data["redis-password"])
	}
	if sec.Annotations[AnnotationSourceVersion] != "v2" {
		t.Errorf("version annotation not updated: %v", sec.Annotations)
	}
}

func TestGetSyncedSecretVersion(t *testing.T) {
	ctx := context.Background()
	c := testClient()

	v, err := c.GetSyncedSecretVersion(ctx, "default", "missing")
	if err != nil {
		t.Fatalf("missing secret: %v", err)
	}
	if v != "" {
		t.Errorf("expected empty version for missing secret, got %q", v)
	}

	_, err = c.EnsureSyncedSecret(ctx, &SyncedSecretSpec{
		Namespace: "default", Name: "kvb-app-synced", Key: "k", Value: "v",
		VaultName: "kvb-prod", SecretName: "app", Version: "abc123",
	})
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	v, err = c.GetSyncedSecretVersion(ctx, "default", "kvb-app-synced")
	if err != nil {
		t.Fatalf("get version: %v", err)
	}
	if v != "abc123" {
		t.Errorf("version = %q, want abc123", v)
	}
}

func TestDeleteSyncedSecretIdempotent(t *testing.T) {
	ctx := context.Background()
	c := testClient()
	if err := c.DeleteSyncedSecret(ctx, "default", "nope"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
}

func TestComputeSecretHashDistinguishesKey(t *testing.T) {
	if ComputeSecretHash("a", "v") == ComputeSecretHash("b", "v") {
		t.Error("hash should depend on the key")
	}
	if ComputeSecretHash("a", "v1") == ComputeSecretHash("a", "v2") {
		t.Error("hash should depend on the value")
	}
	if ComputeSecretHash("a", "v") != ComputeSecretHash("a", "v") {
		t.Error("hash should be deterministic")
	}
}
