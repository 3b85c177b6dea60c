package workload

import (
	"context"

	"github.com/kvbridge/kvbridge/adapters/kube"
	"github.com/kvbridge/kvbridge/domain"
	"github.com/kvbridge/kvbridge/domain/model"
	"github.com/redis/go-redis/v9"
)

// Repos holds repositories needed for workload use cases.
type Repos struct {
	Vault   domain.VaultRepository
	Cluster domain.ClusterRepository
	Binding domain.BindingRepository
}

// KubeFactory builds a kube client from kubeconfig bytes. Injected so tests
// can substitute fake clients.
type KubeFactory func(ctx context.Context, kubeconfig []byte) (*kube.Client, error)

// RedisFactory builds a Redis client from connection options. Injected so
// tests can point at an embedded server.
type RedisFactory func(opts *redis.Options) *redis.Client

// UseCase wires repositories and ports needed for workload use cases.
type UseCase struct {
	Repos       *Repos
	ClusterPort model.ClusterPort
	SecretPort  model.SecretPort
	NewKube     KubeFactory
	NewRedis    RedisFactory
}

func defaultKubeFactory(ctx context.Context, kubeconfig []byte) (*kube.Client, error) {
	return kube.NewClientFromKubeconfig(ctx, kubeconfig, &kube.Options{UserAgent: "kvbridge"})
}

func (u *UseCase) kubeFactory() KubeFactory {
	if u.NewKube != nil {
		return u.NewKube
	}
	return defaultKubeFactory
}

func (u *UseCase) redisFactory() RedisFactory {
	if u.NewRedis != nil {
		return u.NewRedis
	}
	return redis.NewClient
}
