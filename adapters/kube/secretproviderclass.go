package kube

import (
	"context"
	"fmt"
	"strings"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// SecretProviderClassGVR is the dynamic client resource for the
// secrets-store CSI driver SecretProviderClass CRD.
var SecretProviderClassGVR = schema.GroupVersionResource{
	Group:    "secrets-store.csi.x-k8s.io",
	Version:  "v1",
	Resource: "secretproviderclasses",
}

// SecretProviderClassSpec describes one SPC projecting a Key Vault secret.
type SecretProviderClassSpec struct {
	Namespace string
	Name      string
	// VaultName is the Key Vault name (not the full URI).
	VaultName string
	// SecretName is the vault object to project.
	SecretName string
	// TenantID is the AAD tenant the vault lives in.
	TenantID string
	// KubeletClientID selects the kubelet managed identity for vault access.
	KubeletClientID string
	// SyncSecretName/SyncSecretKey optionally mirror the mounted object into
	// a native Secret via the driver's secretObjects mechanism.
	SyncSecretName string
	SyncSecretKey  string
}

// BuildSecretProviderClass renders the SPC as an unstructured object.
func BuildSecretProviderClass(spec *SecretProviderClassSpec) (*unstructured.Unstructured, error) {
	if spec == nil || spec.Name == "" || spec.Namespace == "" || spec.VaultName == "" || spec.SecretName == "" {
		return nil, fmt.Errorf("secret provider class spec is incomplete")
	}

	// The azure provider expects the objects parameter as a YAML string.
	var b strings.Builder
	b.WriteString("array:\n")
	b.WriteString("  - |\n")
	b.WriteString("    objectName: " + spec.SecretName + "\n")
	b.WriteString("    objectType: secret\n")

	parameters := map[string]any{
		"usePodIdentity":       "false",
		"useVMManagedIdentity": "true",
		"keyvaultName":         spec.VaultName,
		"objects":              b.String(),
	}
	if spec.KubeletClientID != "" {
		parameters["userAssignedIdentityID"] = spec.KubeletClientID
	}
	if spec.TenantID != "" {
		parameters["tenantId"] = spec.TenantID
	}

	spcSpec := map[string]any{
		"provider":   "azure",
		"parameters": parameters,
	}
	if spec.SyncSecretName != "" && spec.SyncSecretKey != "" {
		spcSpec["secretObjects"] = []any{
			map[string]any{
				"secretName": spec.SyncSecretName,
				"type":       "Opaque",
				"data": []any{
					map[string]any{
						"objectName": spec.SecretName,
						"key":        spec.SyncSecretKey,
					},
				},
			},
		}
	}

	obj := &unstructured.Unstructured{Object: map[string]any{
		"apiVersion": SecretProviderClassGVR.Group + "/" + SecretProviderClassGVR.Version,
		"kind":       "SecretProviderClass",
		"metadata": map[string]any{
			"name":      spec.Name,
			"namespace": spec.Namespace,
			"labels": map[string]any{
				LabelManagedBy: ManagedByValue,
			},
		},
		"spec": spcSpec,
	}}
	return obj, nil
}

// ApplySecretProviderClass creates or updates the SPC (idempotent).
func (c *Client) ApplySecretProviderClass(ctx context.Context, spec *SecretProviderClassSpec) error {
	if c == nil || c.Dynamic == nil {
		return fmt.Errorf("kube client is not initialized")
	}
	obj, err := BuildSecretProviderClass(spec)
	if err != nil {
		return err
	}

	ri := c.Dynamic.Resource(SecretProviderClassGVR).Namespace(spec.Namespace)
	existing, err := ri.Get(ctx, spec.Name, metav1.GetOptions{})
	if err != nil {
		if !apierrors.IsNotFound(err) {
			return fmt.Errorf("get secretproviderclass %s/%s: %w", spec.Namespace, spec.Name, err)
		}
		if _, err := ri.Create(ctx, obj, metav1.CreateOptions{}); err != nil {
			return fmt.Errorf("create secretproviderclass %s/%s: %w", spec.Namespace, spec.Name, err)
		}
		return nil
	}

	obj.SetResourceVersion(existing.GetResourceVersion())
	if _, err := ri.Update(ctx, obj, metav1.UpdateOptions{}); err != nil {
		return fmt.Errorf("update secretproviderclass %s/%s: %w", spec.Namespace, spec.Name, err)
	}
	return nil
}

// DeleteSecretProviderClass deletes the SPC if it exists (idempotent).
func (c *Client) DeleteSecretProviderClass(ctx context.Context, namespace, name string) error {
	if c == nil || c.Dynamic == nil {
		return fmt.Errorf("kube client is not initialized")
	}
	err := c.Dynamic.Resource(SecretProviderClassGVR).Namespace(namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("delete secretproviderclass %s/%s: %w", namespace, name, err)
	}
	return nil
}
