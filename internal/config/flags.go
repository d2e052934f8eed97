package config

import "github.com/spf13/pflag"

// BindFlags registers the command-line flags on fs, using the current
// values of c as defaults so a parsed flag overrides defaults and JSON.
//
// The -c/--config flag is registered only so the parser accepts it; its
// value was already consumed by LoadConfig.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "path to JSON config file")

	fs.StringVar(&c.StoreDriver, "store", c.StoreDriver, "storage driver: sqlite, diskv or memory")
	fs.StringVar(&c.DatabasePath, "db", c.DatabasePath, "SQLite database file")
	fs.StringVar(&c.DiskvDir, "diskv-dir", c.DiskvDir, "diskv store directory")
	fs.DurationVar(&c.SaveDebounce, "debounce", c.SaveDebounce, "delay before edits are saved")

	fs.StringVar(&c.AssetsDir, "assets", c.AssetsDir, "directory with parchment, frame, ship and icon images")
	fs.StringVar(&c.FontsDir, "fonts", c.FontsDir, "directory with TrueType fonts")
	fs.StringVar(&c.OutputDir, "out", c.OutputDir, "directory exports are written to")
	fs.DurationVar(&c.SettleDelay, "settle", c.SettleDelay, "pause before each page is captured")
	fs.DurationVar(&c.DownloadDelay, "download-delay", c.DownloadDelay, "pause after each exported image")
	fs.Float64Var(&c.CaptureScale, "scale", c.CaptureScale, "bitmap pixels per page unit")

	fs.StringVar(&c.S3Bucket, "s3-bucket", c.S3Bucket, "upload exports to this bucket")
	fs.StringVar(&c.S3Prefix, "s3-prefix", c.S3Prefix, "object key prefix")
	fs.StringVar(&c.S3Region, "s3-region", c.S3Region, "bucket region")
	fs.StringVar(&c.S3BaseEndpoint, "s3-endpoint", c.S3BaseEndpoint, "S3-compatible endpoint URL")
	fs.StringVar(&c.S3AccessKey, "s3-access-key", c.S3AccessKey, "static access key")
	fs.StringVar(&c.S3SecretKey, "s3-secret-key", c.S3SecretKey, "static secret key")

	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
}
