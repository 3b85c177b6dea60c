package naming

import (
	"strings"
	"testing"
)

func TestShortHashDeterministic(t *testing.T) {
	a := ShortHash("redis-password", 6)
	b := ShortHash("redis-password", 6)
	if a != b {
		t.Fatalf("hash not deterministic: %s != %s", a, b)
	}
	if len(a) != 6 {
		t.Fatalf("unexpected length: %d", len(a))
	}
	if ShortHash("x", 100) == "" {
		t.Fatal("clamped hash empty")
	}
}

func TestCanonicalNames(t *testing.T) {
	if got := SyncedSecretName("redis"); got != "kvb-redis-synced" {
		t.Errorf("SyncedSecretName = %s", got)
	}
	if got := SecretProviderClassName("redis"); got != "kvb-redis" {
		t.Errorf("SecretProviderClassName = %s", got)
	}
	if !strings.HasPrefix(BindingID("v", "c", "b"), "bind-") {
		t.Error("BindingID prefix")
	}
	if BindingID("v", "c", "b") != BindingID("v", "c", "b") {
		t.Error("BindingID not deterministic")
	}
	if BindingID("v", "c", "b") == BindingID("v", "c", "b2") {
		t.Error("BindingID collision across names")
	}
}

func TestValidateVaultName(t *testing.T) {
	valid := []string{"kv-prod-01", "a12", "Vault24charsxxxxxxxxxxxx"}
	for _, n := range valid {
		if err := ValidateVaultName(n); err != nil {
			t.Errorf("ValidateVaultName(%q) = %v", n, err)
		}
	}
	invalid := []string{"", "1kv", "kv", "kv--x", "kv_underscore", strings.Repeat("a", 25)}
	for _, n := range invalid {
		if err := ValidateVaultName(n); err == nil {
			t.Errorf("ValidateVaultName(%q) expected error", n)
		}
	}
}

func TestValidateVaultSecretName(t *testing.T) {
	valid := []string{"redis-password", "REDIS-PASSWORD", "v1", strings.Repeat("a", 127)}
	for _, n := range valid {
		if err := ValidateVaultSecretName(n); err != nil {
			t.Errorf("ValidateVaultSecretName(%q) = %v", n, err)
		}
	}
	// Underscores and dots are fine env keys but Key Vault rejects them.
	invalid := []string{"", "REDIS_PASSWORD", "db.password", "a b", strings.Repeat("a", 128)}
	for _, n := range invalid {
		if err := ValidateVaultSecretName(n); err == nil {
			t.Errorf("ValidateVaultSecretName(%q) expected error", n)
		}
	}
}

func TestVaultSecretName(t *testing.T) {
	tests := []struct{ key, want string }{
		{"REDIS_PASSWORD", "REDIS-PASSWORD"},
		{"db.password", "db-password"},
		{"redis-password", "redis-password"},
		{"A_B.C", "A-B-C"},
	}
	for _, tt := range tests {
		got := VaultSecretName(tt.key)
		if got != tt.want {
			t.Errorf("VaultSecretName(%q) = %q, want %q", tt.key, got, tt.want)
		}
		if err := ValidateVaultSecretName(got); err != nil {
			t.Errorf("mapped name %q still invalid: %v", got, err)
		}
	}
	if got := VaultSecretName(strings.Repeat("k", 200)); len(got) != 127 {
		t.Errorf("long key not truncated: %d chars", len(got))
	}
}

func TestValidateBindingName(t *testing.T) {
	if err := ValidateBindingName("redis"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, n := range []string{"", "Has-Upper", strings.Repeat("a", 25), "-lead"} {
		if err := ValidateBindingName(n); err == nil {
			t.Errorf("ValidateBindingName(%q) expected error", n)
		}
	}
}
