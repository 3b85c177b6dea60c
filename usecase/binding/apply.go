package binding

import (
	"context"

	"github.com/kvbridge/kvbridge/adapters/kube"
	"github.com/kvbridge/kvbridge/domain/model"
	"github.com/kvbridge/kvbridge/internal/logging"
	"github.com/kvbridge/kvbridge/internal/naming"
)

// ApplyInput represents a command to materialize a binding in the cluster.
type ApplyInput struct {
	BindingID string `json:"binding_id"`
}
type ApplyOutput struct{}

// Apply wires the binding into the cluster: grants the kubelet identity read
// access to the vault, ensures the target namespace, and applies the
// SecretProviderClass that projects the vault secret. The synced Secret
// itself is written by the sync poller.
func (u *UseCase) Apply(ctx context.Context, in *ApplyInput) (*ApplyOutput, error) {
	if in == nil || in.BindingID == "" {
		return nil, model.ErrBindingInvalid
	}
	b, v, c, err := u.resolve(ctx, in.BindingID)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx).With("binding", b.Name, "vault", v.Name, "cluster", c.Name)

	identity, err := u.ClusterPort.ClusterKubeletIdentity(ctx, c)
	if err != nil {
		return nil, err
	}
	if err := u.VaultPort.VaultEnsureAccess(ctx, v, identity.ObjectID, true); err != nil {
		return nil, err
	}
	logger.Info(ctx, "granted vault read access", "principal", identity.ObjectID)

	kubeconfig, err := u.ClusterPort.ClusterKubeconfig(ctx, c)
	if err != nil {
		return nil, err
	}
	kc, err := u.kubeFactory()(ctx, kubeconfig)
	if err != nil {
		return nil, err
	}

	if err := kc.CreateNamespace(ctx, b.Namespace); err != nil {
		return nil, err
	}
	if err := kc.ApplySecretProviderClass(ctx, &kube.SecretProviderClassSpec{
		Namespace:       b.Namespace,
		Name:            naming.SecretProviderClassName(b.Name),
		VaultName:       v.Name,
		SecretName:      b.VaultSecret,
		TenantID:        v.Settings["AZURE_TENANT_ID"],
		KubeletClientID: identity.ClientID,
		SyncSecretName:  b.SecretName,
		SyncSecretKey:   b.SecretKey,
	}); err != nil {
		return nil, err
	}
	logger.Info(ctx, "applied secret provider class", "namespace", b.Namespace)
	return &ApplyOutput{}, nil
}
