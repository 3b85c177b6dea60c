package kube

import (
	"context"
	"testing"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func TestPatchDeploymentRestart(t *testing.T) {
	ctx := context.Background()
	dep := &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Name: "redis", Namespace: "default"},
		Spec: appsv1.DeploymentSpec{
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: map[string]string{"app": "redis"},
				},
			},
		},
	}
	c := &Client{Clientset: fake.NewSimpleClientset(dep)}

	if err := c.PatchDeploymentRestart(ctx, "default", "redis"); err != nil {
		t.Fatalf("patch: %v", err)
	}

	got, err := c.Clientset.AppsV1().Deployments("default").Get(ctx, "redis", metav1.GetOptions{})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	first := got.Spec.Template.Annotations[AnnotationRestartedAt]
	if first == "" {
		t.Fatal("restarted-at annotation not set")
	}

	// Second patch replaces the existing annotation without error.
	if err := c.PatchDeploymentRestart(ctx, "default", "redis"); err != nil {
		t.Fatalf("second patch: %v", err)
	}
}

func TestPatchDeploymentRestartMissingDeployment(t *testing.T) {
	c := &Client{Clientset: fake.NewSimpleClientset()}
	if err := c.PatchDeploymentRestart(context.Background(), "default", "ghost"); err == nil {
		t.Fatal("expected error for missing deployment")
	}
}

func TestWaitForDeploymentReady(t *testing.T) {
	ctx := context.Background()
	dep := &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Name: "redis", Namespace: "default"},
		Status:     appsv1.DeploymentStatus{ReadyReplicas: 1},
	}
	c := &Client{Clientset: fake.NewSimpleClientset(dep)}

	// Already ready: returns from the immediate check, well inside the timeout.
	if err := c.WaitForDeploymentReady(ctx, "default", "redis", 100*time.Millisecond); err != nil {
		t.Fatalf("wait: %v", err)
	}
}

func TestWaitForDeploymentReadyTimeout(t *testing.T) {
	ctx := context.Background()
	dep := &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Name: "redis", Namespace: "default"},
	}
	c := &Client{Clientset: fake.NewSimpleClientset(dep)}

	if err := c.WaitForDeploymentReady(ctx, "default", "redis", 50*time.Millisecond); err == nil {
		t.Fatal("expected timeout for never-ready deployment")
	}
}

func TestWaitForDeploymentReadyCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := &Client{Clientset: fake.NewSimpleClientset()}
	if err := c.WaitForDeploymentReady(ctx, "default", "redis", time.Minute); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
