package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kiwiland/railquery/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "edge_file: edges.txt\n")
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("default addr = %q, want :8080", cfg.Addr)
	}
	if cfg.CacheCapacity != 1024 {
		t.Errorf("default cache capacity = %d, want 1024", cfg.CacheCapacity)
	}
	if cfg.EdgeFile != "edges.txt" {
		t.Errorf("edge file = %q, want edges.txt", cfg.EdgeFile)
	}
	if cfg.Watch {
		t.Error("watch should default to false")
	}
}

func TestLoadExplicitValues(t *testing.T) {
	path := writeConfig(t, "addr: \":9090\"\nedge_file: graph.txt\nwatch: true\ncache_capacity: 16\n")
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.EdgeFile != "graph.txt" || !cfg.Watch || cfg.CacheCapacity != 16 {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load on a missing file should fail")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := writeConfig(t, "addr: [:::\n")
	if _, err := config.Load(path); err == nil {
		t.Fatal("Load on malformed YAML should fail")
	}
}
