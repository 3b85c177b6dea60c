// Package naming provides centralized generation of short deterministic hashes
// and canonical resource names used across Kubernetes objects and Azure
// resources. Keeping the logic here allows future changes (length/algorithm)
// without touching call sites.
package naming

import (
	"crypto/sha1"
	"fmt"
	"strings"
)

// defaultLength defines the hex length of short hashes (bits ~ length * 4).
const defaultLength = 6

// ShortHash returns the hex SHA1 prefix of length n (clamped to digest size).
func ShortHash(s string, n int) string {
	sum := sha1.Sum([]byte(s))
	h := fmt.Sprintf("%x", sum)
	if n > len(h) {
		n = len(h)
	}
	return h[:n]
}

// SyncedSecretName returns the canonical name of the Kubernetes Secret that
// mirrors a Key Vault secret for the given binding: kvb-<binding>-synced.
func SyncedSecretName(binding string) string {
	return "kvb-" + binding + "-synced"
}

// SecretProviderClassName returns the canonical SecretProviderClass name for a
// binding: kvb-<binding>.
func SecretProviderClassName(binding string) string {
	return "kvb-" + binding
}

// VaultSecretName maps an env-style key to an Azure Key Vault secret name.
// Key Vault only allows alphanumerics and hyphens, so underscores and every
// other character become hyphens (REDIS_PASSWORD -> REDIS-PASSWORD).
func VaultSecretName(key string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '-':
			return r
		default:
			return '-'
		}
	}, key)
	if len(mapped) > 127 {
		mapped = mapped[:127]
	}
	return mapped
}

// BindingID derives a stable binding identifier from vault, cluster, and
// binding names. Used by the config loader so that file-backed and db-backed
// stores agree on ids.
func BindingID(vault, cluster, binding string) string {
	return "bind-" + ShortHash(fmt.Sprintf("%s:%s:%s", vault, cluster, binding), defaultLength*2)
}

// VaultID derives a stable vault identifier from its name and resource group.
func VaultID(name, resourceGroup string) string {
	return "vault-" + ShortHash(fmt.Sprintf("%s:%s", resourceGroup, name), defaultLength*2)
}

// ClusterID derives a stable cluster identifier from its name and resource group.
func ClusterID(name, resourceGroup string) string {
	return "clus-" + ShortHash(fmt.Sprintf("%s:%s", resourceGroup, name), defaultLength*2)
}
