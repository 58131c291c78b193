package config

import (
	"time"

	"github.com/dmitrijs2005/gophblog/internal/client/repositories/records"
)

// Config holds runtime settings for the gophblog client.
type Config struct {
	// StorageDriver selects the records backend: sqlite, postgres, bolt, s3 or memory.
	StorageDriver string
	// DatabaseDSN is the SQLite file path or the PostgreSQL connection string.
	DatabaseDSN string
	BoltPath    string

	S3Bucket       string
	S3Prefix       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string

	// AuthDelay and FetchDelay simulate the latency of a remote backend.
	AuthDelay  time.Duration
	FetchDelay time.Duration

	// TokenSecret signs session tokens. When empty, a secret is generated
	// once and kept in the records store.
	TokenSecret string
	TokenTTL    time.Duration
	DemoLogin   bool

	LogLevel   string
	LogBackend string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorageDriver = records.DriverSQLite
	c.DatabaseDSN = "gophblog.db"
	c.BoltPath = "gophblog.bolt"
	c.S3Prefix = "gophblog"
	c.S3Region = "us-east-1"
	c.AuthDelay = time.Second
	c.FetchDelay = 500 * time.Millisecond
	c.TokenTTL = 720 * time.Hour
	c.DemoLogin = true
	c.LogLevel = "info"
	c.LogBackend = "slog"
}

// RecordsOptions maps the storage settings onto records.Open options.
func (c *Config) RecordsOptions() records.Options {
	return records.Options{
		Driver:   c.StorageDriver,
		DSN:      c.DatabaseDSN,
		BoltPath: c.BoltPath,
		S3: records.S3Options{
			Bucket:       c.S3Bucket,
			Prefix:       c.S3Prefix,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
		},
	}
}

// LoadConfig builds a Config from defaults, then the JSON file named by
// -c/-config (if any), then flags. Later sources win. Arguments it does not
// own are ignored. Malformed input panics.
func LoadConfig(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
