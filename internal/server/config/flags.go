package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/creatorhub/internal/flagx"
)

// parseFlags applies command-line flags on top of config.
//
//	-a string   HTTP bind address
//	-g string   gRPC bind address
//	-m string   storage backend (memory|postgres)
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret
//	-t int      token validity, hours
//	-b string   S3 bucket
//	-r string   S3 region
//	-e string   S3 base endpoint
//	-u string   S3 access key
//	-p string   S3 secret key
//	-k string   S3 key prefix for feed images
//	-l string   log backend (slog|zerolog)
//
// os.Args is filtered to these flags first so -c and test flags pass through.
func parseFlags(config *Config) error {
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-a", "-g", "-m", "-d", "-s", "-t", "-b", "-r", "-e", "-u", "-p", "-k", "-l"})

	fs := flag.NewFlagSet("creatorhub-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC address")
	fs.StringVar(&config.Storage, "m", config.Storage, "storage backend")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "JWT secret")
	hours := fs.Int("t", int(config.TokenValidity.Hours()), "token validity (in hours)")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "r", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3AccessKey, "u", config.S3AccessKey, "S3 access key")
	fs.StringVar(&config.S3SecretKey, "p", config.S3SecretKey, "S3 secret key")
	fs.StringVar(&config.S3ImagePrefix, "k", config.S3ImagePrefix, "S3 key prefix for feed images")
	fs.StringVar(&config.LogBackend, "l", config.LogBackend, "log backend")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	if *hours != int(config.TokenValidity.Hours()) {
		config.TokenValidity = time.Duration(*hours) * time.Hour
	}
	return nil
}
