// Package config loads the CreatorHub client settings: defaults, an
// optional JSON file (-c/-config) and command-line flags, later sources
// taking precedence.
package config

import "time"

// Config holds runtime settings for the CreatorHub CLI.
type Config struct {
	// BaseURL is the credential service root, e.g. http://127.0.0.1:5000.
	BaseURL string
	// GRPCAddr is host:port of the ledger and feed services.
	GRPCAddr string
	// DataDir holds DBFile. A relative path is resolved against the working
	// directory.
	DataDir string
	DBFile  string
	// RequestTimeout bounds every remote call.
	RequestTimeout time.Duration
	LogLevel       string
}

func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:5000"
	c.GRPCAddr = "127.0.0.1:50051"
	c.DataDir = "data"
	c.DBFile = "creatorhub.db"
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "error"
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
