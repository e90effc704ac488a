package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "environment: test\n"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Environment != "test" {
		t.Errorf("Environment = %q, want %q", cfg.Environment, "test")
	}
	if cfg.HTTP.Port != 3000 {
		t.Errorf("HTTP.Port = %d, want %d", cfg.HTTP.Port, 3000)
	}
	if cfg.Session.Secret != "cobra-secret" {
		t.Errorf("Session.Secret = %q, want %q", cfg.Session.Secret, "cobra-secret")
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("Session.TTL = %s, want %s", cfg.Session.TTL, 24*time.Hour)
	}
	if cfg.Session.Driver != "file" {
		t.Errorf("Session.Driver = %q, want %q", cfg.Session.Driver, "file")
	}
	if cfg.Session.Cookie.Name != "sid" {
		t.Errorf("Session.Cookie.Name = %q, want %q", cfg.Session.Cookie.Name, "sid")
	}
	if cfg.Paths.Data != "data" {
		t.Errorf("Paths.Data = %q, want %q", cfg.Paths.Data, "data")
	}
	if cfg.HTTP.ReadTimeout != 10*time.Second {
		t.Errorf("HTTP.ReadTimeout = %s, want %s", cfg.HTTP.ReadTimeout, 10*time.Second)
	}
}

func TestLoadFile_LegacyEnvOverrides(t *testing.T) {
	t.Setenv("SESSION_SECRET", "from-env-secret")
	t.Setenv("PORT", "8081")

	cfg, err := LoadFile(writeConfig(t, "environment: test\n"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Session.Secret != "from-env-secret" {
		t.Errorf("Session.Secret = %q, want %q", cfg.Session.Secret, "from-env-secret")
	}
	if cfg.HTTP.Port != 8081 {
		t.Errorf("HTTP.Port = %d, want %d", cfg.HTTP.Port, 8081)
	}
}

func TestLoadFile_PrefixedEnvOverrides(t *testing.T) {
	t.Setenv("COBRA_PATHS_DATA", "/srv/data")
	t.Setenv("COBRA_ADMIN_PASSWORD", "hunter2")

	cfg, err := LoadFile(writeConfig(t, "environment: test\n"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Paths.Data != "/srv/data" {
		t.Errorf("Paths.Data = %q, want %q", cfg.Paths.Data, "/srv/data")
	}
	if cfg.Admin.Password != "hunter2" {
		t.Errorf("Admin.Password = %q, want %q", cfg.Admin.Password, "hunter2")
	}
}

func TestLoadFile_FileValues(t *testing.T) {
	body := `
session:
  ttl: 2h
  cookie:
    name: cobra_sid
    secure: true
allowcorsorigins: "https://a.example,https://b.example"
`
	cfg, err := LoadFile(writeConfig(t, body))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Session.TTL != 2*time.Hour {
		t.Errorf("Session.TTL = %s, want %s", cfg.Session.TTL, 2*time.Hour)
	}
	if cfg.Session.Cookie.Name != "cobra_sid" {
		t.Errorf("Session.Cookie.Name = %q, want %q", cfg.Session.Cookie.Name, "cobra_sid")
	}
	if !cfg.Session.Cookie.Secure {
		t.Error("Session.Cookie.Secure = false, want true")
	}
	if len(cfg.AllowCORSOrigins) != 2 {
		t.Errorf("len(AllowCORSOrigins) = %d, want 2", len(cfg.AllowCORSOrigins))
	}
}

func TestLoadFile_InvalidDriver(t *testing.T) {
	_, err := LoadFile(writeConfig(t, "session:\n  driver: memcached\n"))
	if err == nil {
		t.Fatal("expected error for unknown session driver")
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}
