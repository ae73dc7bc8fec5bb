package config

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnv unsets every override for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvDB, EnvKeyPrefix, EnvLogLevel, EnvLogFile, EnvAddr, EnvAllowReset} {
		if v, ok := os.LookupEnv(k); ok {
			os.Unsetenv(k)
			t.Cleanup(func() { os.Setenv(k, v) })
		}
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := DefaultConfig()
	if cfg.Storage.Path != def.Storage.Path {
		t.Errorf("expected default path %q, got %q", def.Storage.Path, cfg.Storage.Path)
	}
	if cfg.Server.Addr != def.Server.Addr {
		t.Errorf("expected default addr, got %q", cfg.Server.Addr)
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Storage.KeyPrefix = "board-app-"
	cfg.Log.Format = "json"
	cfg.Server.AllowReset = true
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Storage.KeyPrefix != "board-app-" {
		t.Errorf("expected key prefix, got %q", got.Storage.KeyPrefix)
	}
	if got.Log.Format != "json" || !got.Server.AllowReset {
		t.Errorf("unexpected config %+v", got)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv(EnvDB, "/tmp/other.db")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvAllowReset, "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Path != "/tmp/other.db" {
		t.Errorf("expected env db path, got %q", cfg.Storage.Path)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected debug level, got %q", cfg.Log.Level)
	}
	if !cfg.Server.AllowReset {
		t.Error("expected allow_reset from env")
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(".env", []byte(EnvAddr+"=127.0.0.1:9999\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv(EnvAddr) })

	cfg, err := Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9999" {
		t.Errorf("expected addr from .env, got %q", cfg.Server.Addr)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("storage: [unclosed"), 0644)

	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"empty path", func(c *Config) { c.Storage.Path = "" }, true},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(c)
			err := c.validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("validate() err=%v, wantErr=%v", err, tt.wantErr)
			}
		})
	}
}
