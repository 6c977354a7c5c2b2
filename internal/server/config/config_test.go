package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":5000", c.HTTPAddr)
	assert.Equal(t, ":50051", c.GRPCAddr)
	assert.Equal(t, StorageMemory, c.Storage)
	assert.Equal(t, 24*time.Hour, c.TokenValidity)
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Empty(t, c.S3Bucket)
	assert.Equal(t, "slog", c.LogBackend)
}

func TestLoadConfig_Layering(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"grpc_addr": ":7000",
		"s3_bucket": "from-json",
	})

	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("GRPC_ADDR", ":6000")
	t.Setenv("S3_BUCKET", "from-env")

	os.Args = []string{"creatorhub-server", "-c", path, "-b", "from-flag"}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.HTTPAddr, "default survives")
	assert.Equal(t, "from-env", cfg.SecretKey, "env over default")
	assert.Equal(t, ":7000", cfg.GRPCAddr, "json over env")
	assert.Equal(t, "from-flag", cfg.S3Bucket, "flag over json")
}

func TestLoadConfig_BadEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"creatorhub-server"}

	t.Setenv("TOKEN_VALIDITY", "forever")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "parse environment")
}
