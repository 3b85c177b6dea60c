package kube

import (
	"context"
	stdErrors "errors"
	"fmt"
	"os"
	"time"

	"helm.sh/helm/v3/pkg/action"
	"helm.sh/helm/v3/pkg/chart"
	"helm.sh/helm/v3/pkg/chart/loader"
	"helm.sh/helm/v3/pkg/cli"
	helmdriver "helm.sh/helm/v3/pkg/storage/driver"
)

const (
	// CSIDriverNamespace is where the secrets-store CSI driver and its Azure
	// provider are installed.
	CSIDriverNamespace = "kube-system"
	// CSIDriverReleaseName is the Helm release name of the Azure provider chart.
	CSIDriverReleaseName = "csi-secrets-store-provider-azure"

	csiChartRepo = "https://azure.github.io/secrets-store-csi-driver-provider-azure/charts"
	csiChartName = "csi-secrets-store-provider-azure"

	redisChartRepo = "https://charts.bitnami.com/bitnami"
	redisChartName = "redis"
)

// Installer provides Helm-based in-cluster install/uninstall operations.
type Installer struct {
	Client *Client
	// Kubeconfig holds raw kubeconfig bytes used for Helm operations.
	// When empty, Helm-based operations will fail with an error.
	Kubeconfig []byte
}

// NewInstaller constructs an Installer with kube client and kubeconfig bytes.
func NewInstaller(c *Client, kubeconfig []byte) *Installer {
	return &Installer{Client: c, Kubeconfig: kubeconfig}
}

// writeTempKubeconfig writes kubeconfig bytes to a temporary file and returns
// its path and a cleanup function to remove it.
func writeTempKubeconfig(kubeconfig []byte) (string, func(), error) {
	f, err := os.CreateTemp("", "kvbridge-kubeconfig-*.yaml")
	if err != nil {
		return "", func() {}, fmt.Errorf("create temp kubeconfig: %w", err)
	}
	path := f.Name()
	if _, err := f.Write(kubeconfig); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", func() {}, fmt.Errorf("write temp kubeconfig: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", func() {}, fmt.Errorf("close temp kubeconfig: %w", err)
	}
	cleanup := func() { _ = os.Remove(path) }
	return path, cleanup, nil
}

// helmConfig initializes a Helm action configuration scoped to the namespace.
// The returned cleanup removes the temporary kubeconfig file.
func (i *Installer) helmConfig(namespace string) (*action.Configuration, *cli.EnvSettings, func(), error) {
	if i == nil || i.Client == nil || i.Client.RESTConfig == nil {
		return nil, nil, nil, fmt.Errorf("kube installer is not initialized")
	}
	if len(i.Kubeconfig) == 0 {
		return nil, nil, nil, fmt.Errorf("kubeconfig is required for Helm operations")
	}

	kubeconfigPath, cleanup, err := writeTempKubeconfig(i.Kubeconfig)
	if err != nil {
		return nil, nil, nil, err
	}

	settings := cli.New()
	settings.KubeConfig = kubeconfigPath

	cfg := new(action.Configuration)
	if err := cfg.Init(settings.RESTClientGetter(), namespace, "secret", func(format string, v ...any) {}); err != nil {
		cleanup()
		return nil, nil, nil, fmt.Errorf("init helm configuration: %w", err)
	}
	return cfg, settings, cleanup, nil
}

// loadChart locates and loads a chart from its repository.
func loadChart(settings *cli.EnvSettings, repoURL, name string) (*chart.Chart, error) {
	cpo := action.ChartPathOptions{RepoURL: repoURL}
	chartPath, err := cpo.LocateChart(name, settings)
	if err != nil {
		return nil, fmt.Errorf("locate chart %s: %w", name, err)
	}
	ch, err := loader.Load(chartPath)
	if err != nil {
		return nil, fmt.Errorf("load chart %s: %w", name, err)
	}
	return ch, nil
}

// upgradeOrInstall tries upgrade first and falls back to install when the
// release does not exist yet (CLI-compatible behavior).
func upgradeOrInstall(cfg *action.Configuration, namespace, release string, ch *chart.Chart, values map[string]any) error {
	up := action.NewUpgrade(cfg)
	up.Namespace = namespace
	up.Atomic = true
	up.Wait = true
	up.Timeout = 5 * time.Minute

	if _, err := up.Run(release, ch, values); err != nil {
		if stdErrors.Is(err, helmdriver.ErrNoDeployedReleases) {
			in := action.NewInstall(cfg)
			in.Namespace = namespace
			in.ReleaseName = release
			in.Atomic = true
			in.Wait = true
			in.Timeout = 5 * time.Minute
			if _, ierr := in.Run(ch, values); ierr != nil {
				return fmt.Errorf("helm install %s: %w", release, ierr)
			}
			return nil
		}
		return fmt.Errorf("helm upgrade %s: %w", release, err)
	}
	return nil
}

// uninstallRelease removes a Helm release, treating a missing release as
// success.
func uninstallRelease(cfg *action.Configuration, release string) error {
	un := action.NewUninstall(cfg)
	if _, err := un.Run(release); err != nil {
		if stdErrors.Is(err, helmdriver.ErrReleaseNotFound) {
			return nil
		}
		return fmt.Errorf("helm uninstall %s: %w", release, err)
	}
	return nil
}

// InstallCSIDriver installs or upgrades the secrets-store CSI driver with the
// Azure provider into kube-system. Rotation polling is enabled so mounted
// secrets refresh without pod restarts.
func (i *Installer) InstallCSIDriver(ctx context.Context) error {
	cfg, settings, cleanup, err := i.helmConfig(CSIDriverNamespace)
	if err != nil {
		return err
	}
	defer cleanup()

	ch, err := loadChart(settings, csiChartRepo, csiChartName)
	if err != nil {
		return err
	}

	values := map[string]any{
		"secrets-store-csi-driver": map[string]any{
			"syncSecret": map[string]any{
				"enabled": true,
			},
			"enableSecretRotation": true,
			"rotationPollInterval": "2m",
		},
	}
	return upgradeOrInstall(cfg, CSIDriverNamespace, CSIDriverReleaseName, ch, values)
}

// UninstallCSIDriver removes the CSI driver release. Best-effort, idempotent.
func (i *Installer) UninstallCSIDriver(ctx context.Context) error {
	cfg, _, cleanup, err := i.helmConfig(CSIDriverNamespace)
	if err != nil {
		return err
	}
	defer cleanup()
	return uninstallRelease(cfg, CSIDriverReleaseName)
}

// RedisInstallSpec describes a Redis deployment whose password comes from a
// synced Secret instead of a chart-generated one.
type RedisInstallSpec struct {
	Namespace string
	Release   string
	// ExistingSecret is the synced Secret carrying the password.
	ExistingSecret string
	// PasswordKey is the key within ExistingSecret.
	PasswordKey string
}

// InstallRedis installs or upgrades a standalone Redis wired to the synced
// credential Secret.
func (i *Installer) InstallRedis(ctx context.Context, spec *RedisInstallSpec) error {
	if spec == nil || spec.Namespace == "" || spec.Release == "" || spec.ExistingSecret == "" || spec.PasswordKey == "" {
		return fmt.Errorf("redis install spec is incomplete")
	}
	if err := i.Client.CreateNamespace(ctx, spec.Namespace); err != nil {
		return err
	}

	cfg, settings, cleanup, err := i.helmConfig(spec.Namespace)
	if err != nil {
		return err
	}
	defer cleanup()

	ch, err := loadChart(settings, redisChartRepo, redisChartName)
	if err != nil {
		return err
	}

	values := map[string]any{
		"architecture": "standalone",
		"auth": map[string]any{
			"enabled":                   true,
			"existingSecret":            spec.ExistingSecret,
			"existingSecretPasswordKey": spec.PasswordKey,
		},
	}
	return upgradeOrInstall(cfg, spec.Namespace, spec.Release, ch, values)
}

// UninstallRedis removes the Redis release. Best-effort, idempotent.
func (i *Installer) UninstallRedis(ctx context.Context, namespace, release string) error {
	cfg, _, cleanup, err := i.helmConfig(namespace)
	if err != nil {
		return err
	}
	defer cleanup()
	return uninstallRelease(cfg, release)
}
