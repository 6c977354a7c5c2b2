package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_ReadsVariables(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("STORAGE", StoragePostgres)
	t.Setenv("DATABASE_DSN", "postgres://x")
	t.Setenv("TOKEN_VALIDITY", "2h")
	t.Setenv("LOG_BACKEND", "zerolog")

	c := &Config{}
	c.LoadDefaults()
	require.NoError(t, parseEnv(c))

	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, StoragePostgres, c.Storage)
	assert.Equal(t, "postgres://x", c.DatabaseDSN)
	assert.Equal(t, 2*time.Hour, c.TokenValidity)
	assert.Equal(t, "zerolog", c.LogBackend)
	assert.Equal(t, ":50051", c.GRPCAddr, "unset variables keep the default")
}

func TestParseEnv_DotenvFile(t *testing.T) {
	orig := dotenvFile
	t.Cleanup(func() { dotenvFile = orig })

	dotenvFile = filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(dotenvFile, []byte("S3_BUCKET=media\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("S3_BUCKET") })

	c := &Config{}
	require.NoError(t, parseEnv(c))
	assert.Equal(t, "media", c.S3Bucket)
}

func TestParseEnv_MissingDotenvIsFine(t *testing.T) {
	orig := dotenvFile
	t.Cleanup(func() { dotenvFile = orig })
	dotenvFile = filepath.Join(t.TempDir(), "absent.env")

	require.NoError(t, parseEnv(&Config{}))
}
