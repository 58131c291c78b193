package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "sqlite", c.StorageDriver)
	assert.Equal(t, "gophblog.db", c.DatabaseDSN)
	assert.Equal(t, time.Second, c.AuthDelay)
	assert.Equal(t, 500*time.Millisecond, c.FetchDelay)
	assert.Equal(t, 720*time.Hour, c.TokenTTL)
	assert.True(t, c.DemoLogin)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "slog", c.LogBackend)
}

func TestLoadConfig_NoArgs(t *testing.T) {
	cfg := LoadConfig(nil)
	require.NotNil(t, cfg)
	assert.Empty(t, cmp.Diff(defaults(), *cfg))
}

func TestLoadConfig_Flags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		mutate func(*Config)
		panics bool
	}{
		{
			name:   "storage and dsn",
			args:   []string{"-s", "postgres", "-d", "postgres://u:p@localhost/blog"},
			mutate: func(c *Config) { c.StorageDriver = "postgres"; c.DatabaseDSN = "postgres://u:p@localhost/blog" },
		},
		{
			name:   "durations and bool",
			args:   []string{"-auth-delay=0s", "-fetch-delay", "10ms", "-t", "1h", "-demo=false"},
			mutate: func(c *Config) { c.AuthDelay = 0; c.FetchDelay = 10 * time.Millisecond; c.TokenTTL = time.Hour; c.DemoLogin = false },
		},
		{
			name:   "subcommand and its flags are ignored",
			args:   []string{"posts", "--format", "yaml", "-l", "debug", "--author=alice"},
			mutate: func(c *Config) { c.LogLevel = "debug" },
		},
		{
			name:   "s3 settings",
			args:   []string{"-s", "s3", "-s3-bucket", "blog", "-s3-endpoint", "http://localhost:9000"},
			mutate: func(c *Config) { c.StorageDriver = "s3"; c.S3Bucket = "blog"; c.S3BaseEndpoint = "http://localhost:9000" },
		},
		{
			name:   "bad duration panics",
			args:   []string{"-t", "forever"},
			panics: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.panics {
				require.Panics(t, func() { LoadConfig(tt.args) })
				return
			}

			want := defaults()
			tt.mutate(&want)

			var got *Config
			require.NotPanics(t, func() { got = LoadConfig(tt.args) })
			assert.Empty(t, cmp.Diff(want, *got))
		})
	}
}

func TestLoadConfig_JSONThenFlags(t *testing.T) {
	path := writeFile(t, `{
		"storage_driver": "bolt",
		"bolt_path": "/tmp/blog.bolt",
		"auth_delay": "2s",
		"fetch_delay": 1000000,
		"token_secret": "s3cr3t",
		"log_backend": "zerolog"
	}`)

	cfg := LoadConfig([]string{"-config", path, "-log", "slog"})

	want := defaults()
	want.StorageDriver = "bolt"
	want.BoltPath = "/tmp/blog.bolt"
	want.AuthDelay = 2 * time.Second
	want.FetchDelay = time.Millisecond
	want.TokenSecret = "s3cr3t"
	want.LogBackend = "slog" // flag wins over file

	assert.Empty(t, cmp.Diff(want, *cfg))
}

func TestLoadConfig_JSONKeepsUnsetValues(t *testing.T) {
	path := writeFile(t, `{"log_level": "warn"}`)

	cfg := LoadConfig([]string{"-c", path})

	want := defaults()
	want.LogLevel = "warn"
	assert.Empty(t, cmp.Diff(want, *cfg))
}

func TestLoadConfig_BadJSONPanics(t *testing.T) {
	require.Panics(t, func() { LoadConfig([]string{"-c", writeFile(t, `{ nope`)}) })
	require.Panics(t, func() { LoadConfig([]string{"-c", filepath.Join(t.TempDir(), "missing.json")}) })
	require.Panics(t, func() { LoadConfig([]string{"-c", writeFile(t, `{"auth_delay": "soon"}`)}) })
}

func TestRecordsOptions(t *testing.T) {
	c := defaults()
	c.StorageDriver = "s3"
	c.S3Bucket = "blog"
	c.S3AccessKey = "ak"

	opts := c.RecordsOptions()
	assert.Equal(t, "s3", opts.Driver)
	assert.Equal(t, "gophblog.db", opts.DSN)
	assert.Equal(t, "blog", opts.S3.Bucket)
	assert.Equal(t, "gophblog", opts.S3.Prefix)
	assert.Equal(t, "ak", opts.S3.AccessKey)
}
