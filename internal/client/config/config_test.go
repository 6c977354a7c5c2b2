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

	assert.Equal(t, "http://127.0.0.1:5000", c.BaseURL)
	assert.Equal(t, "127.0.0.1:50051", c.GRPCAddr)
	assert.Equal(t, "data", c.DataDir)
	assert.Equal(t, "creatorhub.db", c.DBFile)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
}

func TestLoadConfig_LayersJSONThenFlags(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	path := writeTempJSON(t, "", "", map[string]any{
		"base_url":        "http://json:1",
		"grpc_addr":       "json:2",
		"request_timeout": "3s",
	})
	os.Args = []string{"creatorhub", "-c", path, "-g", "flag:3"}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://json:1", cfg.BaseURL)
	assert.Equal(t, "flag:3", cfg.GRPCAddr)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_MissingJSONFile(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"creatorhub", "-c", "/nonexistent/client.json"}
	_, err := LoadConfig()
	assert.Error(t, err)
}
