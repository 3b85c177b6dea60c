package kvbridgecfg

import (
	"strings"
	"testing"
	"time"
)

const sampleYAML = `
version: 1
vault:
  name: kv-demo-01
  resourceGroup: rg-demo
  settings:
    AZURE_SUBSCRIPTION_ID: 00000000-0000-0000-0000-000000000000
    AZURE_TENANT_ID: 11111111-1111-1111-1111-111111111111
    AZURE_AUTH_METHOD: azure_cli
cluster:
  name: aks-demo
  resourceGroup: rg-demo
  existing: true
  settings:
    AZURE_SUBSCRIPTION_ID: 00000000-0000-0000-0000-000000000000
    AZURE_AUTH_METHOD: azure_cli
bindings:
  - name: redis
    vaultSecret: redis-password
    namespace: default
    key: redis-password
    deployment: redis-master
    interval: 2m
`

func TestParseSample(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Vault.Name != "kv-demo-01" {
		t.Errorf("vault name = %s", cfg.Vault.Name)
	}
	if len(cfg.Bindings) != 1 || cfg.Bindings[0].Deployment != "redis-master" {
		t.Errorf("unexpected bindings: %+v", cfg.Bindings)
	}
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"bad version":        strings.Replace(sampleYAML, "version: 1", "version: 2", 1),
		"missing vault name": strings.Replace(sampleYAML, "name: kv-demo-01", "name: \"\"", 1),
		"bad vault name":     strings.Replace(sampleYAML, "name: kv-demo-01", "name: 1badname", 1),
		"missing key":        strings.Replace(sampleYAML, "key: redis-password", "key: \"\"", 1),
		"underscore secret":  strings.Replace(sampleYAML, "vaultSecret: redis-password", "vaultSecret: REDIS_PASSWORD", 1),
		"short interval":     strings.Replace(sampleYAML, "interval: 2m", "interval: 1s", 1),
		"no bindings":        sampleYAML[:strings.Index(sampleYAML, "bindings:")] + "bindings: []\n",
	}
	for name, y := range cases {
		if _, err := Parse([]byte(y)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestDuplicateBindingName(t *testing.T) {
	dup := sampleYAML + `
  - name: redis
    vaultSecret: other
    namespace: default
    key: other
`
	if _, err := Parse([]byte(dup)); err == nil {
		t.Fatal("expected duplicate name error")
	}
}

func TestToModels(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m, err := cfg.ToModels()
	if err != nil {
		t.Fatalf("to models: %v", err)
	}
	if m.Vault.URI != "https://kv-demo-01.vault.azure.net" {
		t.Errorf("vault URI = %s", m.Vault.URI)
	}
	if m.Vault.Driver != "azure" || m.Cluster.Driver != "azure" {
		t.Error("driver default not applied")
	}
	b := m.Bindings[0]
	if b.SecretName != "kvb-redis-synced" {
		t.Errorf("secret name = %s", b.SecretName)
	}
	if b.Interval != 2*time.Minute {
		t.Errorf("interval = %s", b.Interval)
	}
	if b.VaultID != m.Vault.ID || b.ClusterID != m.Cluster.ID {
		t.Error("binding references not wired")
	}

	// Deterministic ids across loads.
	m2, _ := cfg.ToModels()
	if m2.Vault.ID != m.Vault.ID || m2.Bindings[0].ID != b.ID {
		t.Error("ids not deterministic")
	}
}
