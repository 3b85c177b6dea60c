package workload

import (
	"context"

	"github.com/kvbridge/kvbridge/adapters/kube"
	"github.com/kvbridge/kvbridge/domain/model"
)

// DeployRedisInput installs Redis wired to a binding's synced Secret.
type DeployRedisInput struct {
	BindingID string `json:"binding_id"`
	// Release overrides the Helm release name; empty uses the binding name.
	Release string `json:"release,omitempty"`
}
type DeployRedisOutput struct {
	Release string `json:"release"`
}

// DeployRedis installs or upgrades a standalone Redis whose password comes
// from the binding's synced Secret. The binding must have been synced at
// least once so the Secret exists.
func (u *UseCase) DeployRedis(ctx context.Context, in *DeployRedisInput) (*DeployRedisOutput, error) {
	if in == nil || in.BindingID == "" {
		return nil, model.ErrBindingInvalid
	}
	b, err := u.Repos.Binding.Get(ctx, in.BindingID)
	if err != nil {
		return nil, err
	}
	c, err := u.Repos.Cluster.Get(ctx, b.ClusterID)
	if err != nil {
		return nil, err
	}

	release := in.Release
	if release == "" {
		release = b.Name
	}

	kubeconfig, err := u.ClusterPort.ClusterKubeconfig(ctx, c)
	if err != nil {
		return nil, err
	}
	kc, err := u.kubeFactory()(ctx, kubeconfig)
	if err != nil {
		return nil, err
	}
	installer := kube.NewInstaller(kc, kubeconfig)
	if err := installer.InstallRedis(ctx, &kube.RedisInstallSpec{
		Namespace:      b.Namespace,
		Release:        release,
		ExistingSecret: b.SecretName,
		PasswordKey:    b.SecretKey,
	}); err != nil {
		return nil, err
	}
	return &DeployRedisOutput{Release: release}, nil
}
