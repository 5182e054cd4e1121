// internal/config/config_test.go
//
// Unit-tests for Load and ResolveSecrets.
//
// Each Load test writes a throwaway conf/global.yaml under t.TempDir() and
// points EMPGATE_ROOT at it.
//
// Run: go test ./internal/config -v

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleYAML = `
http:
  listen_addr: ":8080"
database:
  user: "sa"
  password: "vault:secret/company/db#password"
  server: "db.local:1433"
  database: "COMPANY"
  procedure: "dbo.SP_Insert_NewEmployee"
  max_open_conns: 10
  conn_max_lifetime: "15m"
`

func writeRoot(t *testing.T, yaml string) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "conf"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "conf", "global.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	t.Setenv(EnvPrefix+"ROOT", root)
	return root
}

func TestLoad_YAMLAndEnvOverlay(t *testing.T) {
	root := writeRoot(t, sampleYAML)
	t.Setenv("EMPGATE_DATABASE__SERVER", "sql.prod:1433")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Server != "sql.prod:1433" {
		t.Fatalf("env overlay ignored: server = %q", cfg.Database.Server)
	}
	if cfg.Database.User != "sa" || cfg.Database.MaxOpenConns != 10 {
		t.Fatalf("unexpected database section: %+v", cfg.Database)
	}
	if cfg.Database.ConnMaxLifetime != 15*time.Minute {
		t.Fatalf("lifetime = %v, want 15m", cfg.Database.ConnMaxLifetime)
	}
	if cfg.Paths.Root != root {
		t.Fatalf("root = %q, want %q", cfg.Paths.Root, root)
	}
	if cfg.Database.Procedure != "dbo.SP_Insert_NewEmployee" {
		t.Fatalf("procedure = %q", cfg.Database.Procedure)
	}
}

func TestLoad_MissingRequiredFails(t *testing.T) {
	writeRoot(t, `
http:
  listen_addr: ":8080"
database:
  user: "sa"
  server: "db.local"
  database: "COMPANY"
`)
	if _, err := Load(); err == nil {
		t.Fatalf("Load succeeded without database.password")
	}
}

type fakeSecrets struct {
	path, key string
	val       string
	err       error
}

func (f *fakeSecrets) GetKV(_ context.Context, path, key string, _ time.Duration) (string, error) {
	f.path, f.key = path, key
	return f.val, f.err
}

func TestResolveSecrets(t *testing.T) {
	const ref = "vault:secret/company/db#password"
	cfg := &Config{Database: Database{User: "sa", Password: ref}}
	src := &fakeSecrets{val: "hunter2"}

	got, err := ResolveSecrets(context.Background(), cfg, src)
	if err != nil {
		t.Fatalf("ResolveSecrets: %v", err)
	}
	if got.Database.Password != "hunter2" || got.Database.User != "sa" {
		t.Fatalf("resolved database = %+v", got.Database)
	}
	if cfg.Database.Password != ref {
		t.Fatalf("input config modified: password = %q", cfg.Database.Password)
	}
	if src.path != "secret/company/db" || src.key != "password" {
		t.Fatalf("looked up %s#%s", src.path, src.key)
	}
}

func TestResolveSecrets_Errors(t *testing.T) {
	literal := &Config{Database: Database{Password: "plain"}}
	got, err := ResolveSecrets(context.Background(), literal, nil)
	if err != nil || got.Database.Password != "plain" || got == literal {
		t.Fatalf("literal password: %+v, %v", got, err)
	}

	cases := []struct {
		ref string
		src SecretSource
	}{
		{"vault:secret/db#password", nil},
		{"vault:secret/db", &fakeSecrets{val: "x"}},
		{"vault:secret/db#", &fakeSecrets{val: "x"}},
		{"vault:secret/db#password", &fakeSecrets{err: errors.New("permission denied")}},
		{"vault:secret/db#password", &fakeSecrets{val: ""}},
	}
	for _, c := range cases {
		cfg := &Config{Database: Database{Password: c.ref}}
		if _, err := ResolveSecrets(context.Background(), cfg, c.src); err == nil {
			t.Fatalf("ResolveSecrets(%q) succeeded, want error", c.ref)
		}
	}
}
