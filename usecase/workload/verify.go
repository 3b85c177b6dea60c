package workload

import (
	"context"
	"fmt"
	"time"

	"github.com/kvbridge/kvbridge/internal/logging"
	"github.com/redis/go-redis/v9"
)

// verifyCanaryKey is written and deleted during verification.
const verifyCanaryKey = "kvbridge:verify"

// VerifyRedisInput checks that a Redis endpoint accepts the credential held
// in a vault. This is the post-rotation smoke test: the vault value and the
// running server must agree.
type VerifyRedisInput struct {
	// Addr is the Redis endpoint, host:port.
	Addr string `json:"addr"`
	// Password is used directly when set.
	Password string `json:"password,omitempty"`
	// VaultID and SecretName resolve the password from the vault when
	// Password is empty.
	VaultID    string `json:"vault_id,omitempty"`
	SecretName string `json:"secret_name,omitempty"`
}

// VerifyRedisOutput reports the round-trip outcome.
type VerifyRedisOutput struct {
	// Version is the vault secret version used, when resolved from a vault.
	Version string `json:"version,omitempty"`
	// Latency is the observed ping round-trip.
	Latency time.Duration `json:"latency"`
}

// VerifyRedis authenticates against Redis and performs a write-read-delete
// round trip on a canary key.
func (u *UseCase) VerifyRedis(ctx context.Context, in *VerifyRedisInput) (*VerifyRedisOutput, error) {
	if in == nil || in.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	out := &VerifyRedisOutput{}
	password := in.Password
	if password == "" {
		if in.VaultID == "" || in.SecretName == "" {
			return nil, fmt.Errorf("password or vault secret reference is required")
		}
		v, err := u.Repos.Vault.Get(ctx, in.VaultID)
		if err != nil {
			return nil, err
		}
		sv, err := u.SecretPort.SecretGet(ctx, v, in.SecretName, "")
		if err != nil {
			return nil, err
		}
		password = sv.Value
		out.Version = sv.Version
	}

	client := u.redisFactory()(&redis.Options{
		Addr:         in.Addr,
		Password:     password,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	})
	defer func() { _ = client.Close() }()

	start := time.Now()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	out.Latency = time.Since(start)

	canary := fmt.Sprintf("%d", start.UnixNano())
	if err := client.Set(ctx, verifyCanaryKey, canary, time.Minute).Err(); err != nil {
		return nil, fmt.Errorf("redis canary write: %w", err)
	}
	got, err := client.Get(ctx, verifyCanaryKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis canary read: %w", err)
	}
	if got != canary {
		return nil, fmt.Errorf("redis canary mismatch: wrote %q, read %q", canary, got)
	}
	if err := client.Del(ctx, verifyCanaryKey).Err(); err != nil {
		return nil, fmt.Errorf("redis canary delete: %w", err)
	}

	logging.FromContext(ctx).Info(ctx, "redis verification succeeded",
		"addr", in.Addr, "latency", out.Latency)
	return out, nil
}
