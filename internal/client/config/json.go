package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/creatorhub/internal/flagx"
	"github.com/dmitrijs2005/creatorhub/internal/timex"
)

// JsonConfig is the on-disk form of Config. The timeout accepts "5s" or
// integer nanoseconds.
type JsonConfig struct {
	BaseURL        string         `json:"base_url"`
	GRPCAddr       string         `json:"grpc_addr"`
	DataDir        string         `json:"data_dir"`
	DBFile         string         `json:"db_file"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	LogLevel       string         `json:"log_level"`
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func parseJson(cfg *Config) error {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setIf(&cfg.BaseURL, jc.BaseURL)
	setIf(&cfg.GRPCAddr, jc.GRPCAddr)
	setIf(&cfg.DataDir, jc.DataDir)
	setIf(&cfg.DBFile, jc.DBFile)
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	setIf(&cfg.LogLevel, jc.LogLevel)
	return nil
}
