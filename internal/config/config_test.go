package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, defaultPort, cfg.Port)
	require.True(t, cfg.IsDev())
	require.Equal(t, StorageDriverLocal, cfg.Storage.Driver)
	require.Equal(t, "root:password@tcp(127.0.0.1:3306)/blogicum?charset=utf8mb4&loc=Local&parseTime=true", cfg.DSN)
	require.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	require.True(t, cfg.AutoMigrate)
	require.False(t, cfg.SecureCookies)
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse([]byte(`
port: 9000
env: prod
database:
  host: db
  user: blog
  password: secret
  name: posts
redis:
  url: cache:6380/2
allowed_origins:
  - https://example.com/
  - example.com
  - "*.example.org"
session_ttl_hours: 1
secure_cookies: true
auto_migrate: false
`))
	require.NoError(t, err)
	require.Equal(t, 9000, cfg.Port)
	require.False(t, cfg.IsDev())
	require.Equal(t, "blog:secret@tcp(db:3306)/posts?charset=utf8mb4&loc=Local&parseTime=true", cfg.DSN)
	require.Equal(t, "redis://cache:6380/2", cfg.RedisURL)
	require.Equal(t, []string{"example.com", "*.example.org"}, cfg.AllowedOrigins)
	require.Equal(t, "1h0m0s", cfg.SessionTTL().String())
	require.True(t, cfg.SecureCookies)
	require.False(t, cfg.AutoMigrate)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "unknown key", yaml: "prot: 1"},
		{name: "port out of range", yaml: "port: 70000"},
		{name: "bad storage driver", yaml: "storage:\n  driver: ftp"},
		{name: "s3 without bucket", yaml: "storage:\n  driver: s3"},
		{name: "negative redis db", yaml: "redis:\n  db: -1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
		})
	}
}

func TestLoadResolvesPathsAgainstConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("paths:\n  media: uploads\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "uploads"), cfg.MediaDir())
	require.Equal(t, filepath.Join(dir, "logs"), cfg.LogDir())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}
