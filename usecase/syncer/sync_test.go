package syncer

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/kvbridge/kvbridge/adapters/kube"
	"github.com/kvbridge/kvbridge/adapters/store/memory"
	"github.com/kvbridge/kvbridge/domain/model"
)

// fakeSecretPort serves a single mutable secret value.
type fakeSecretPort struct {
	version string
	value   string
	gets    atomic.Int32
}

func (f *fakeSecretPort) SecretSet(ctx context.Context, v *model.Vault, name, value string) (string, error) {
	f.value = value
	f.version = f.version + "x"
	return f.version, nil
}

func (f *fakeSecretPort) SecretGet(ctx context.Context, v *model.Vault, name, version string) (*model.SecretValue, error) {
	f.gets.Add(1)
	return &model.SecretValue{Name: name, Version: f.version, Value: f.value, Updated: time.Now()}, nil
}

func (f *fakeSecretPort) SecretVersions(ctx context.Context, v *model.Vault, name string) ([]model.SecretVersion, error) {
	return []model.SecretVersion{{Version: f.version, Enabled: true}}, nil
}

// fakeClusterPort hands out a dummy kubeconfig; the kube factory ignores it.
type fakeClusterPort struct{}

func (fakeClusterPort) ClusterProvision(ctx context.Context, c *model.Cluster) error   { return nil }
func (fakeClusterPort) ClusterDeprovision(ctx context.Context, c *model.Cluster) error { return nil }
func (fakeClusterPort) ClusterStatus(ctx context.Context, c *model.Cluster) (*model.ClusterStatus, error) {
	return &model.ClusterStatus{Provisioned: true}, nil
}
func (fakeClusterPort) ClusterKubeconfig(ctx context.Context, c *model.Cluster) ([]byte, error) {
	return []byte("fake"), nil
}
func (fakeClusterPort) ClusterKubeletIdentity(ctx context.Context, c *model.Cluster) (*model.KubeletIdentity, error) {
	return &model.KubeletIdentity{ObjectID: "obj", ClientID: "client"}, nil
}

func testDeployment(namespace, name string) *appsv1.Deployment {
	return &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
		Spec: appsv1.DeploymentSpec{
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: map[string]string{"app": name}},
			},
		},
		// Ready so the post-restart rollout wait returns at once.
		Status: appsv1.DeploymentStatus{ReadyReplicas: 1},
	}
}

func newTestUseCase(t *testing.T, sp *fakeSecretPort) (*UseCase, *kube.Client, *model.Binding) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	v := &model.Vault{ID: "vault-1", Name: "kvb-prod", URI: "https://kvb-prod.vault.azure.net", Driver: "azure"}
	c := &model.Cluster{ID: "clus-1", Name: "aks-prod", Driver: "azure"}
	b := &model.Binding{
		ID: "bind-1", Name: "redis", VaultID: "vault-1", ClusterID: "clus-1",
		VaultSecret: "redis-password", Namespace: "default",
		SecretName: "kvb-redis-synced", SecretKey: "redis-password",
		Deployment: "redis",
	}
	if err := store.VaultRepo.Create(ctx, v); err != nil {
		t.Fatal(err)
	}
	if err := store.ClusterRepo.Create(ctx, c); err != nil {
		t.Fatal(err)
	}
	if err := store.BindingRepo.Create(ctx, b); err != nil {
		t.Fatal(err)
	}

	kc := &kube.Client{Clientset: fake.NewSimpleClientset(testDeployment("default", "redis"))}
	repos := store.Repositories()
	u := &UseCase{
		Repos: &Repos{
			Vault: repos.Vault, Cluster: repos.Cluster,
			Binding: repos.Binding, SyncState: repos.SyncState,
		},
		SecretPort:  sp,
		ClusterPort: fakeClusterPort{},
		NewKube: func(ctx context.Context, kubeconfig []byte) (*kube.Client, error) {
			return kc, nil
		},
	}
	return u, kc, b
}

func TestSyncBindingWritesAndRecordsState(t *testing.T) {
	ctx := context.Background()
	sp := &fakeSecretPort{version: "v1", value: "hunter2"}
	u, kc, b := newTestUseCase(t, sp)

	res, err := u.SyncBinding(ctx, b)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if !res.Changed || !res.Restarted || res.Version != "v1" {
		t.Errorf("unexpected result: %+v", res)
	}

	got, err := kc.GetSyncedSecretVersion(ctx, "default", "kvb-redis-synced")
	if err != nil {
		t.Fatalf("get version: %v", err)
	}
	if got != "v1" {
		t.Errorf("synced version = %q, want v1", got)
	}

	state, err := u.Repos.SyncState.Get(ctx, "bind-1")
	if err != nil {
		t.Fatalf("sync state: %v", err)
	}
	if state.Version != "v1" {
		t.Errorf("state version = %q", state.Version)
	}
}

func TestSyncBindingUnchangedIsNoop(t *testing.T) {
	ctx := context.Background()
	sp := &fakeSecretPort{version: "v1", value: "hunter2"}
	u, _, b := newTestUseCase(t, sp)

	if _, err := u.SyncBinding(ctx, b); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	res, err := u.SyncBinding(ctx, b)
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if res.Changed || res.Restarted {
		t.Errorf("expected unchanged pass, got %+v", res)
	}
}

func TestSyncBindingDetectsRotation(t *testing.T) {
	ctx := context.Background()
	sp := &fakeSecretPort{version: "v1", value: "old"}
	u, kc, b := newTestUseCase(t, sp)

	if _, err := u.SyncBinding(ctx, b); err != nil {
		t.Fatalf("first sync: %v", err)
	}

	sp.version = "v2"
	sp.value = "rotated"
	res, err := u.SyncBinding(ctx, b)
	if err != nil {
		t.Fatalf("rotation sync: %v", err)
	}
	if !res.Changed || !res.Restarted || res.Version != "v2" {
		t.Errorf("rotation not applied: %+v", res)
	}

	got, _ := kc.GetSyncedSecretVersion(ctx, "default", "kvb-redis-synced")
	if got != "v2" {
		t.Errorf("synced version = %q, want v2", got)
	}
}

func TestSyncBindingRepairsDrift(t *testing.T) {
	ctx := context.Background()
	sp := &fakeSecretPort{version: "v1", value: "hunter2"}
	u, kc, b := newTestUseCase(t, sp)

	if _, err := u.SyncBinding(ctx, b); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	// Simulate out-of-band deletion of the synced Secret.
	if err := kc.DeleteSyncedSecret(ctx, "default", "kvb-redis-synced"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	res, err := u.SyncBinding(ctx, b)
	if err != nil {
		t.Fatalf("repair sync: %v", err)
	}
	if !res.Changed {
		t.Error("expected drift repair to rewrite the secret")
	}
	got, _ := kc.GetSyncedSecretVersion(ctx, "default", "kvb-redis-synced")
	if got != "v1" {
		t.Errorf("synced version = %q, want v1", got)
	}
}

func TestOnceSyncsAllBindings(t *testing.T) {
	ctx := context.Background()
	sp := &fakeSecretPort{version: "v1", value: "hunter2"}
	u, _, _ := newTestUseCase(t, sp)

	out, err := u.Once(ctx, &OnceInput{})
	if err != nil {
		t.Fatalf("once: %v", err)
	}
	if len(out.Results) != 1 || !out.Results[0].Changed {
		t.Errorf("unexpected results: %+v", out.Results)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	sp := &fakeSecretPort{version: "v1", value: "hunter2"}
	u, _, b := newTestUseCase(t, sp)
	b.Interval = 10 * time.Millisecond
	if err := u.Repos.Binding.Update(context.Background(), b); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = u.Run(ctx, &RunInput{})
	}()

	// Let a few ticks elapse, then cancel and expect a prompt stop.
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop after cancel")
	}
	if sp.gets.Load() == 0 {
		t.Error("poller never polled the vault")
	}
}
