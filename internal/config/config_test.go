package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/matzehuels/artifactscout/pkg/cache"
	"github.com/matzehuels/artifactscout/pkg/deps"
	apperr "github.com/matzehuels/artifactscout/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
cache_ttl = "90m"
cache_backend = "memory"
concurrency = 4
http_timeout = "10s"
cache_namespace = "ci"

[[repository]]
name = "internal"
kind = "maven"
location = "https://repo.example.com/maven2"
user = "ci"
password = "secret"

[[repository]]
name = "sbt-plugins"
kind = "ivy"
pattern = "https://repo.example.com/ivy/[organisation]/[module]/(scala_[scalaVersion]/)(sbt_[sbtVersion]/)[revision]/ivys/ivy.xml"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.CacheTTL.Duration != 90*time.Minute {
		t.Errorf("CacheTTL = %v", cfg.CacheTTL)
	}
	if cfg.HTTPTimeout.Duration != 10*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if cfg.CacheBackend != BackendMemory || cfg.Concurrency != 4 {
		t.Errorf("cfg = %+v", cfg)
	}
	// Unset keys keep their defaults.
	if cfg.MaxParentDepth != 20 {
		t.Errorf("MaxParentDepth = %d, want default 20", cfg.MaxParentDepth)
	}

	resolvers := cfg.Resolvers()
	if len(resolvers) != 2 {
		t.Fatalf("Resolvers() = %d, want 2", len(resolvers))
	}
	m, ok := resolvers[0].(deps.MavenRepository)
	if !ok || m.Location != "https://repo.example.com/maven2" || m.Credentials == nil || m.Credentials.Password != "secret" {
		t.Errorf("resolvers[0] = %#v", resolvers[0])
	}
	if iv, ok := resolvers[1].(deps.IvyRepository); !ok || iv.Credentials != nil {
		t.Errorf("resolvers[1] = %#v", resolvers[1])
	}

	if key := cfg.Keyer().VersionsKey("g:a", nil); !strings.HasPrefix(key, "ci:") {
		t.Errorf("namespaced key = %q", key)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", `cache_ttl = `},
		{"bad duration", `cache_ttl = "soon"`},
		{"unknown key", `cache_size = 10`},
		{"unknown backend", `cache_backend = "s3"`},
		{"mongo without uri", `cache_backend = "mongo"`},
		{"negative", `concurrency = -1`},
		{"unknown kind", "[[repository]]\nname = \"x\"\nkind = \"npm\""},
		{"unnamed", "[[repository]]\nlocation = \"https://x\""},
		{"bad location", "[[repository]]\nname = \"x\"\nlocation = \"ftp://x\""},
		{"bad pattern", "[[repository]]\nname = \"x\"\nkind = \"ivy\"\npattern = \"[module\""},
		{"duplicate", "[[repository]]\nname = \"x\"\nlocation = \"https://a\"\n[[repository]]\nname = \"x\"\nlocation = \"https://b\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !apperr.Is(err, apperr.ErrCodeInvalidConfig) {
				t.Errorf("error code = %q, want %q", apperr.GetCode(err), apperr.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("explicit missing file should fail")
	}

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.CacheBackend != BackendFile {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestDefault(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	cfg := Default()

	if cfg.CacheDir != filepath.Join("/tmp/xdg", "artifactscout") {
		t.Errorf("CacheDir = %q", cfg.CacheDir)
	}
	if cfg.CacheTTL.Duration != 6*time.Hour {
		t.Errorf("CacheTTL = %v", cfg.CacheTTL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if r := cfg.Resolvers(); len(r) != 1 || r[0] != deps.Resolver(deps.MavenCentral) {
		t.Errorf("Resolvers() = %v, want Maven Central", r)
	}
	if _, ok := cfg.Keyer().(cache.DefaultKeyer); !ok {
		t.Errorf("Keyer() = %T, want DefaultKeyer", cfg.Keyer())
	}
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	tests := []struct {
		name string
		cfg  Config
	}{
		{"file", Config{CacheBackend: BackendFile, CacheDir: t.TempDir()}},
		{"memory", Config{CacheBackend: BackendMemory}},
		{"none", Config{CacheBackend: BackendNone}},
		{"redis", Config{CacheBackend: BackendRedis, RedisAddr: mr.Addr()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.cfg.OpenStore(ctx)
			if err != nil {
				t.Fatalf("OpenStore() error: %v", err)
			}
			defer s.Close()
			if err := s.Set(ctx, "k", []byte("v"), 0); err != nil {
				t.Errorf("Set() error: %v", err)
			}
		})
	}

	if _, err := (Config{CacheBackend: "tape"}).OpenStore(ctx); err == nil {
		t.Error("unknown backend should fail")
	}
}
