package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	defaults := func() *Config {
		c := &Config{}
		c.LoadDefaults()
		return c
	}

	tests := []struct {
		name     string
		args     []string
		expected func() *Config
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "http://h:1", "-g", "h:2", "-d", "state", "-f", "x.db", "-t", "30", "-l", "debug"},
			expected: func() *Config {
				return &Config{BaseURL: "http://h:1", GRPCAddr: "h:2", DataDir: "state", DBFile: "x.db",
					RequestTimeout: 30 * time.Second, LogLevel: "debug"}
			},
		},
		{
			name:     "no flags keeps defaults",
			args:     []string{"cmd", "login"},
			expected: defaults,
		},
		{
			name:    "bad timeout",
			args:    []string{"cmd", "-t", "abc"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := os.Args
			t.Cleanup(func() { os.Args = orig })
			os.Args = tt.args

			cfg := defaults()
			err := parseFlags(cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected(), cfg))
		})
	}
}
