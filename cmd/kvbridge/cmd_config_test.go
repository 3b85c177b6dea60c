package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testConfigYAML = `
version: 1
vault:
  name: kv-demo-01
  resourceGroup: rg-demo
cluster:
  name: aks-demo-01
  resourceGroup: rg-demo
bindings:
  - name: redis
    vaultSecret: redis-password
    namespace: data
    key: redis-password
    deployment: redis
    interval: 2m
`

// runRoot executes the root command with args and returns captured stdout.
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	root.SetContext(context.Background())
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	_, err := root.ExecuteC()
	return buf.String(), err
}

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kvbridge.yml")
	if err := os.WriteFile(path, []byte(testConfigYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigCommand(t *testing.T) {
	path := writeTestConfig(t)
	out, err := runRoot(t, "config", "-f", path)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(out, "vault=kv-demo-01") {
		t.Errorf("missing vault summary: %q", out)
	}
	if !strings.Contains(out, "bindings=1") {
		t.Errorf("missing binding count: %q", out)
	}
}

func TestConfigCommandInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kvbridge.yml")
	if err := os.WriteFile(path, []byte("version: 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := runRoot(t, "config", "-f", path); err == nil {
		t.Fatal("expected validation error for incomplete config")
	}
}

func TestVaultListCommand(t *testing.T) {
	path := writeTestConfig(t)
	out, err := runRoot(t, "--db-url", "file:"+path, "vault", "list")
	if err != nil {
		t.Fatalf("vault list: %v", err)
	}
	if !strings.Contains(out, "name=kv-demo-01") {
		t.Errorf("missing vault: %q", out)
	}
	if !strings.Contains(out, "uri=https://kv-demo-01.vault.azure.net") {
		t.Errorf("missing derived uri: %q", out)
	}
}

func TestBindingListCommand(t *testing.T) {
	path := writeTestConfig(t)
	out, err := runRoot(t, "--db-url", "file:"+path, "binding", "list")
	if err != nil {
		t.Fatalf("binding list: %v", err)
	}
	if !strings.Contains(out, "name=redis") {
		t.Errorf("missing binding: %q", out)
	}
	if !strings.Contains(out, "interval=2m") {
		t.Errorf("missing interval: %q", out)
	}
}

func TestBindingShowNeverSynced(t *testing.T) {
	path := writeTestConfig(t)
	out, err := runRoot(t, "--db-url", "file:"+path, "binding", "show", "redis")
	if err != nil {
		t.Fatalf("binding show: %v", err)
	}
	if !strings.Contains(out, "synced never") {
		t.Errorf("missing sync state line: %q", out)
	}
}

func TestUnsupportedDBScheme(t *testing.T) {
	if _, err := runRoot(t, "--db-url", "postgres://x", "vault", "list"); err == nil {
		t.Fatal("expected error for unsupported scheme")
	}
}
