package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sherif414/floattree/pkg/tree"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Store.Backend != backendFile {
		t.Errorf("Backend = %q, want %q", cfg.Store.Backend, backendFile)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want %q", cfg.Server.Addr, ":8080")
	}
	if cfg.DeleteStrategy() != tree.StrategyRecursive {
		t.Errorf("DeleteStrategy = %v, want %v", cfg.DeleteStrategy(), tree.StrategyRecursive)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
strategy = "orphan"

[store]
backend = "redis"

[store.redis]
addr = "localhost:6379"
db = 2
ttl_hours = 24

[server]
addr = ":9090"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Store.Backend != backendRedis {
		t.Errorf("Backend = %q, want %q", cfg.Store.Backend, backendRedis)
	}
	if cfg.Store.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr = %q, want %q", cfg.Store.Redis.Addr, "localhost:6379")
	}
	if cfg.Store.Redis.DB != 2 {
		t.Errorf("Redis.DB = %d, want 2", cfg.Store.Redis.DB)
	}
	if cfg.Store.Redis.TTLHours != 24 {
		t.Errorf("Redis.TTLHours = %d, want 24", cfg.Store.Redis.TTLHours)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %q, want %q", cfg.Server.Addr, ":9090")
	}
	if cfg.DeleteStrategy() != tree.StrategyOrphan {
		t.Errorf("DeleteStrategy = %v, want %v", cfg.DeleteStrategy(), tree.StrategyOrphan)
	}
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[store]\nbackend = \"dynamo\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() should reject unknown backend")
	}
}

func TestLoadConfigRejectsUnknownStrategy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("strategy = \"cascade\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() should reject unknown strategy")
	}
}

func TestLoadConfigRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("strategy = [broken"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() should reject malformed TOML")
	}
}
