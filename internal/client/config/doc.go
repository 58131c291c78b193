// Package config loads runtime configuration for the gophblog client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Flags not listed in Owned are left for the caller, so the same argument
// list can carry subcommand flags such as --format.
//
// # JSON schema
//
//	{
//	  "storage_driver": "bolt",
//	  "bolt_path": "/var/lib/gophblog/blog.bolt",
//	  "auth_delay": "1s",
//	  "fetch_delay": 500000000,
//	  "token_ttl": "720h",
//	  "demo_login": false,
//	  "log_level": "debug",
//	  "log_backend": "zerolog"
//	}
//
// S3 credentials and the token secret are read from the file only.
package config
