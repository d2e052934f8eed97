// Package config loads runtime configuration for the voyagelog CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c, -config or --config.
//  3. Command-line flags bound by BindFlags, which override earlier values.
//
// # JSON schema
//
// Durations use timex.Duration, so they may be strings like "500ms" or
// integer nanoseconds. Keys that are absent keep their earlier value:
//
//	{
//	  "store_driver": "sqlite",
//	  "database_path": "voyagelog.db",
//	  "save_debounce": "500ms",
//	  "assets_dir": "assets",
//	  "fonts_dir": "fonts",
//	  "output_dir": "exports",
//	  "capture_scale": 2,
//	  "s3_bucket": "voyages",
//	  "s3_base_endpoint": "http://127.0.0.1:9000",
//	  "log_level": "debug"
//	}
package config
