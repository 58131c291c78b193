package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophblog/internal/flagx"
	"github.com/dmitrijs2005/gophblog/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept
// strings like "1s" or integer nanoseconds.
type JsonConfig struct {
	StorageDriver  string         `json:"storage_driver"`
	DatabaseDSN    string         `json:"database_dsn"`
	BoltPath       string         `json:"bolt_path"`
	S3Bucket       string         `json:"s3_bucket"`
	S3Prefix       string         `json:"s3_prefix"`
	S3Region       string         `json:"s3_region"`
	S3BaseEndpoint string         `json:"s3_base_endpoint"`
	S3AccessKey    string         `json:"s3_access_key"`
	S3SecretKey    string         `json:"s3_secret_key"`
	AuthDelay      timex.Duration `json:"auth_delay"`
	FetchDelay     timex.Duration `json:"fetch_delay"`
	TokenSecret    string         `json:"token_secret"`
	TokenTTL       timex.Duration `json:"token_ttl"`
	DemoLogin      bool           `json:"demo_login"`
	LogLevel       string         `json:"log_level"`
	LogBackend     string         `json:"log_backend"`
}

func toJson(c *Config) JsonConfig {
	return JsonConfig{
		StorageDriver:  c.StorageDriver,
		DatabaseDSN:    c.DatabaseDSN,
		BoltPath:       c.BoltPath,
		S3Bucket:       c.S3Bucket,
		S3Prefix:       c.S3Prefix,
		S3Region:       c.S3Region,
		S3BaseEndpoint: c.S3BaseEndpoint,
		S3AccessKey:    c.S3AccessKey,
		S3SecretKey:    c.S3SecretKey,
		AuthDelay:      timex.Duration{Duration: c.AuthDelay},
		FetchDelay:     timex.Duration{Duration: c.FetchDelay},
		TokenSecret:    c.TokenSecret,
		TokenTTL:       timex.Duration{Duration: c.TokenTTL},
		DemoLogin:      c.DemoLogin,
		LogLevel:       c.LogLevel,
		LogBackend:     c.LogBackend,
	}
}

// parseJson overlays cfg with the file given by -c/-config. Keys missing
// from the file keep their current values. Read or decode errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	jc := toJson(cfg)
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.StorageDriver = jc.StorageDriver
	cfg.DatabaseDSN = jc.DatabaseDSN
	cfg.BoltPath = jc.BoltPath
	cfg.S3Bucket = jc.S3Bucket
	cfg.S3Prefix = jc.S3Prefix
	cfg.S3Region = jc.S3Region
	cfg.S3BaseEndpoint = jc.S3BaseEndpoint
	cfg.S3AccessKey = jc.S3AccessKey
	cfg.S3SecretKey = jc.S3SecretKey
	cfg.AuthDelay = jc.AuthDelay.Duration
	cfg.FetchDelay = jc.FetchDelay.Duration
	cfg.TokenSecret = jc.TokenSecret
	cfg.TokenTTL = jc.TokenTTL.Duration
	cfg.DemoLogin = jc.DemoLogin
	cfg.LogLevel = jc.LogLevel
	cfg.LogBackend = jc.LogBackend
}
