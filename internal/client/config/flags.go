package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/creatorhub/internal/flagx"
)

// parseFlags applies command-line flags on top of cfg.
//
//	-a string   credential service base URL
//	-g string   gRPC address
//	-d string   data directory
//	-f string   sqlite file name inside the data directory
//	-t int      request timeout, seconds
//	-l string   log level
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-f", "-t", "-l"})

	fs := flag.NewFlagSet("creatorhub", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "credential service base URL")
	fs.StringVar(&cfg.GRPCAddr, "g", cfg.GRPCAddr, "gRPC address")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.DBFile, "f", cfg.DBFile, "sqlite file")
	seconds := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	if *seconds != int(cfg.RequestTimeout.Seconds()) {
		cfg.RequestTimeout = time.Duration(*seconds) * time.Second
	}
	return nil
}
