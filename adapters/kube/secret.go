package kube

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/kvbridge/kvbridge/internal/logging"
	"github.com/kvbridge/kvbridge/internal/naming"
)

// ComputeSecretHash returns the short hash recorded in AnnotationSecretHash.
// The hash covers the key and the value so renaming the key also counts as
// a change.
func ComputeSecretHash(key, value string) string {
	return naming.ShortHash(key+"\x00"+value, 6)
}

// SyncedSecretSpec describes the desired state of one synced Secret.
type SyncedSecretSpec struct {
	Namespace string
	Name      string
	Key       string
	Value     string
	// VaultName and SecretName identify the source for annotations.
	VaultName  string
	SecretName string
	// Version is the vault secret version being synced.
	Version string
}

// EnsureSyncedSecret creates or updates the synced Secret. It returns true
// when the cluster object changed. An existing Secret whose hash annotation
// already matches is left untouched.
func (c *Client) EnsureSyncedSecret(ctx context.Context, spec *SyncedSecretSpec) (bool, error) {
	if c == nil || c.Clientset == nil {
		return false, fmt.Errorf("kube client is not initialized")
	}
	if spec == nil || spec.Namespace == "" || spec.Name == "" || spec.Key == "" {
		return false, fmt.Errorf("synced secret spec is incomplete")
	}

	logger := logging.FromContext(ctx).With("namespace", spec.Namespace, "secret", spec.Name)

	hash := ComputeSecretHash(spec.Key, spec.Value)
	desired := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      spec.Name,
			Namespace: spec.Namespace,
			Labels: map[string]string{
				LabelManagedBy: ManagedByValue,
			},
			Annotations: map[string]string{
				AnnotationSourceVault:   spec.VaultName,
				AnnotationSourceSecret:  spec.SecretName,
				AnnotationSourceVersion: spec.Version,
				AnnotationSecretHash:    hash,
			},
		},
		Type: corev1.SecretTypeOpaque,
		Data: map[string][]byte{
			spec.Key: []byte(spec.Value),
		},
	}

	existing, err := c.Clientset.CoreV1().Secrets(spec.Namespace).Get(ctx, spec.Name, metav1.GetOptions{})
	if err != nil {
		if !apierrors.IsNotFound(err) {
			return false, fmt.Errorf("get secret %s/%s: %w", spec.Namespace, spec.Name, err)
		}
		if _, err := c.Clientset.CoreV1().Secrets(spec.Namespace).Create(ctx, desired, metav1.CreateOptions{}); err != nil {
			return false, fmt.Errorf("create secret %s/%s: %w", spec.Namespace, spec.Name, err)
		}
		logger.Info(ctx, "created synced secret", "version", spec.Version)
		return true, nil
	}

	if existing.Annotations != nil &&
		existing.Annotations[AnnotationSecretHash] == hash &&
		existing.Annotations[AnnotationSourceVersion] == spec.Version {
		return false, nil
	}

	// Preserve foreign keys other controllers may have added.
	updated := existing.DeepCopy()
	if updated.Labels == nil {
		updated.Labels = map[string]string{}
	}
	updated.Labels[LabelManagedBy] = ManagedByValue
	if updated.Annotations == nil {
		updated.Annotations = map[string]string{}
	}
	for k, v := range desired.Annotations {
		updated.Annotations[k] = v
	}
	if updated.Data == nil {
		updated.Data = map[string][]byte{}
	}
	updated.Data[spec.Key] = []byte(spec.Value)

	if _, err := c.Clientset.CoreV1().Secrets(spec.Namespace).Update(ctx, updated, metav1.UpdateOptions{}); err != nil {
		return false, fmt.Errorf("update secret %s/%s: %w", spec.Namespace, spec.Name, err)
	}
	logger.Info(ctx, "updated synced secret", "version", spec.Version)
	return true, nil
}

// GetSyncedSecretVersion reads the source version annotation of a synced
// Secret. Missing Secret returns empty without error.
func (c *Client) GetSyncedSecretVersion(ctx context.Context, namespace, name string) (string, error) {
	if c == nil || c.Clientset == nil {
		return "", fmt.Errorf("kube client is not initialized")
	}
	sec, err := c.Clientset.CoreV1().Secrets(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return "", nil
		}
		return "", fmt.Errorf("get secret %s/%s: %w", namespace, name, err)
	}
	if sec.Annotations == nil {
		return "", nil
	}
	return sec.Annotations[AnnotationSourceVersion], nil
}

// DeleteSyncedSecret deletes the synced Secret if it exists (idempotent).
func (c *Client) DeleteSyncedSecret(ctx context.Context, namespace, name string) error {
	if c == nil || c.Clientset == nil {
		return fmt.Errorf("kube client is not initialized")
	}
	err := c.Clientset.CoreV1().Secrets(namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("delete secret %s/%s: %w", namespace, name, err)
	}
	return nil
}
