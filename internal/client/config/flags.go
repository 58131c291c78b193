package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/gophblog/internal/flagx"
)

// Owned lists the flags parsed by this package, including the config file
// flags, so callers can strip them from the arguments they parse themselves.
var Owned = flagx.Owned{
	Valued: []string{
		"c", "config",
		"s", "d", "b",
		"s3-bucket", "s3-prefix", "s3-region", "s3-endpoint",
		"auth-delay", "fetch-delay",
		"t", "l", "log",
	},
	Bool: []string{"demo"},
}

// parseFlags overlays cfg with the command-line flags it owns.
//
//	-s string       storage driver (sqlite, postgres, bolt, s3, memory)
//	-d string       sqlite path or postgres DSN
//	-b string       bolt file path
//	-s3-bucket, -s3-prefix, -s3-region, -s3-endpoint string
//	-auth-delay, -fetch-delay duration
//	-t duration     session token lifetime, 0 for no expiry
//	-demo           accept the demo/password login
//	-l string       log level
//	-log string     log backend (slog, zerolog)
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, Owned)

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	// accepted here so that fs.Parse does not reject them
	fs.String("c", "", "path to config file")
	fs.String("config", "", "path to config file")

	fs.StringVar(&cfg.StorageDriver, "s", cfg.StorageDriver, "storage driver")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "sqlite path or postgres DSN")
	fs.StringVar(&cfg.BoltPath, "b", cfg.BoltPath, "bolt file path")
	fs.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "s3 bucket")
	fs.StringVar(&cfg.S3Prefix, "s3-prefix", cfg.S3Prefix, "s3 key prefix")
	fs.StringVar(&cfg.S3Region, "s3-region", cfg.S3Region, "s3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "s3-endpoint", cfg.S3BaseEndpoint, "s3 endpoint override")
	fs.DurationVar(&cfg.AuthDelay, "auth-delay", cfg.AuthDelay, "simulated login/signup latency")
	fs.DurationVar(&cfg.FetchDelay, "fetch-delay", cfg.FetchDelay, "simulated fetch latency")
	fs.DurationVar(&cfg.TokenTTL, "t", cfg.TokenTTL, "session token lifetime")
	fs.BoolVar(&cfg.DemoLogin, "demo", cfg.DemoLogin, "accept the demo login")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogBackend, "log", cfg.LogBackend, "log backend")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
