package kube

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"

	"github.com/kvbridge/kvbridge/internal/logging"
)

// PatchDeploymentRestart stamps the pod template with a restarted-at
// annotation so the deployment rolls its pods. This is how dependents pick
// up a new synced Secret value without a controller watching Secrets.
func (c *Client) PatchDeploymentRestart(ctx context.Context, namespace, deploymentName string) error {
	if c == nil || c.Clientset == nil {
		return fmt.Errorf("kube client is not initialized")
	}
	if namespace == "" || deploymentName == "" {
		return fmt.Errorf("namespace and deployment name are required")
	}

	logger := logging.FromContext(ctx).With("namespace", namespace, "deployment", deploymentName)

	dep, err := c.Clientset.AppsV1().Deployments(namespace).Get(ctx, deploymentName, metav1.GetOptions{})
	if err != nil {
		return fmt.Errorf("get deployment %s/%s: %w", namespace, deploymentName, err)
	}

	stamp := time.Now().UTC().Format(time.RFC3339)

	escape := func(s string) string {
		s = strings.ReplaceAll(s, "~", "~0")
		return strings.ReplaceAll(s, "/", "~1")
	}
	path := "/spec/template/metadata/annotations/" + escape(AnnotationRestartedAt)

	type op struct {
		Op    string `json:"op"`
		Path  string `json:"path"`
		Value any    `json:"value,omitempty"`
	}
	var patch []op
	if dep.Spec.Template.Annotations == nil {
		patch = append(patch,
			op{Op: "add", Path: "/spec/template/metadata/annotations", Value: map[string]string{}},
			op{Op: "add", Path: path, Value: stamp},
		)
	} else if _, exists := dep.Spec.Template.Annotations[AnnotationRestartedAt]; exists {
		patch = append(patch, op{Op: "replace", Path: path, Value: stamp})
	} else {
		patch = append(patch, op{Op: "add", Path: path, Value: stamp})
	}

	body, _ := json.Marshal(patch)
	_, err = c.Clientset.AppsV1().Deployments(namespace).Patch(ctx, deploymentName, types.JSONPatchType, body, metav1.PatchOptions{})
	if err != nil {
		// fallback merge patch
		mp := map[string]any{"spec": map[string]any{"template": map[string]any{
			"metadata": map[string]any{"annotations": map[string]string{AnnotationRestartedAt: stamp}},
		}}}
		mpBytes, _ := json.Marshal(mp)
		if _, err2 := c.Clientset.AppsV1().Deployments(namespace).Patch(ctx, deploymentName, types.MergePatchType, mpBytes, metav1.PatchOptions{}); err2 != nil {
			logger.Warn(ctx, "deployment restart patch failed", "error", err2)
			return fmt.Errorf("patch deployment restart: %w (json patch failed: %v)", err2, err)
		}
	}
	logger.Info(ctx, "signaled deployment restart", "restartedAt", stamp)
	return nil
}

// WaitForDeploymentReady polls the deployment until at least one replica is
// ready or the timeout elapses. The first check happens immediately so an
// already-ready deployment returns without waiting a tick.
func (c *Client) WaitForDeploymentReady(ctx context.Context, namespace, name string, timeout time.Duration) error {
	if c == nil || c.Clientset == nil {
		return fmt.Errorf("kube client is not initialized")
	}
	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for {
		dep, err := c.Clientset.AppsV1().Deployments(namespace).Get(ctx, name, metav1.GetOptions{})
		// transient errors keep polling until the deadline
		if err == nil && dep.Status.ReadyReplicas >= 1 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return fmt.Errorf("timeout waiting for deployment %s/%s ready", namespace, name)
		case <-ticker.C:
		}
	}
}
