package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, ":3333", cfg.HTTP.Addr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 168*time.Hour, cfg.Auth.TTL)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, "admin@gympoint.com", cfg.Admin.Email)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("AUTH_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.HTTP.Addr)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, time.Hour, cfg.Auth.TTL)
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "env: prod\nhttp:\n  addr: \":8080\"\ndb:\n  driver: sqlite\n  path: test.db\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "test.db", cfg.DB.Path)
}

func TestDSN(t *testing.T) {
	db := DB{Host: "db", User: "gym", Password: "secret", Name: "gympoint", Port: "5432", SSLMode: "disable"}
	assert.Equal(t, "host=db user=gym password=secret dbname=gympoint port=5432 sslmode=disable", db.DSN())
}
