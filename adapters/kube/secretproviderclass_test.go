package kube

import (
	"context"
	"strings"
	"testing"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	dynamicfake "k8s.io/client-go/dynamic/fake"
)

func spcTestSpec() *SecretProviderClassSpec {
	return &SecretProviderClassSpec{
		Namespace:       "default",
		Name:            "kvb-redis",
		VaultName:       "kvb-prod",
		SecretName:      "redis-password",
		TenantID:        "tenant-1",
		KubeletClientID: "client-1",
		SyncSecretName:  "kvb-redis-synced",
		SyncSecretKey:   "redis-password",
	}
}

func TestBuildSecretProviderClass(t *testing.T) {
	obj, err := BuildSecretProviderClass(spcTestSpec())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if obj.GetKind() != "SecretProviderClass" {
		t.Errorf("kind = %q", obj.GetKind())
	}

	provider, _, _ := unstructured.NestedString(obj.Object, "spec", "provider")
	if provider != "azure" {
		t.Errorf("provider = %q", provider)
	}
	params, _, _ := unstructured.NestedStringMap(obj.Object, "spec", "parameters")
	if params["keyvaultName"] != "kvb-prod" {
		t.Errorf("keyvaultName = %q", params["keyvaultName"])
	}
	if params["useVMManagedIdentity"] != "true" {
		t.Errorf("useVMManagedIdentity = %q", params["useVMManagedIdentity"])
	}
	if params["userAssignedIdentityID"] != "client-1" {
		t.Errorf("userAssignedIdentityID = %q", params["userAssignedIdentityID"])
	}
	if !strings.Contains(params["objects"], "objectName: redis-password") {
		t.Errorf("objects literal missing object name: %q", params["objects"])
	}

	secretObjects, _, _ := unstructured.NestedSlice(obj.Object, "spec", "secretObjects")
	if len(secretObjects) != 1 {
		t.Fatalf("expected one secretObject, got %d", len(secretObjects))
	}
}

func TestBuildSecretProviderClassWithoutSync(t *testing.T) {
	spec := spcTestSpec()
	spec.SyncSecretName = ""
	obj, err := BuildSecretProviderClass(spec)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, found, _ := unstructured.NestedSlice(obj.Object, "spec", "secretObjects"); found {
		t.Error("secretObjects should be omitted without a sync target")
	}
}

func TestBuildSecretProviderClassRejectsIncomplete(t *testing.T) {
	if _, err := BuildSecretProviderClass(nil); err == nil {
		t.Error("nil spec should fail")
	}
	spec := spcTestSpec()
	spec.VaultName = ""
	if _, err := BuildSecretProviderClass(spec); err == nil {
		t.Error("missing vault name should fail")
	}
}

func TestApplySecretProviderClass(t *testing.T) {
	ctx := context.Background()
	dyn := dynamicfake.NewSimpleDynamicClientWithCustomListKinds(runtime.NewScheme(),
		map[schema.GroupVersionResource]string{
			SecretProviderClassGVR: "SecretProviderClassList",
		})
	c := &Client{Dynamic: dyn}

	spec := spcTestSpec()
	if err := c.ApplySecretProviderClass(ctx, spec); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := dyn.Resource(SecretProviderClassGVR).Namespace("default").Get(ctx, "kvb-redis", metav1.GetOptions{})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	params, _, _ := unstructured.NestedStringMap(got.Object, "spec", "parameters")
	if params["keyvaultName"] != "kvb-prod" {
		t.Errorf("keyvaultName = %q", params["keyvaultName"])
	}

	// Re-apply with a different vault updates in place.
	spec.VaultName = "kvb-staging"
	if err := c.ApplySecretProviderClass(ctx, spec); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = dyn.Resource(SecretProviderClassGVR).Namespace("default").Get(ctx, "kvb-redis", metav1.GetOptions{})
	params, _, _ = unstructured.NestedStringMap(got.Object, "spec", "parameters")
	if params["keyvaultName"] != "kvb-staging" {
		t.Errorf("keyvaultName after update = %q", params["keyvaultName"])
	}

	if err := c.DeleteSecretProviderClass(ctx, "default", "kvb-redis"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := c.DeleteSecretProviderClass(ctx, "default", "kvb-redis"); err != nil {
		t.Fatalf("delete idempotent: %v", err)
	}
}
