package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/voyagelog/internal/flagx"
)

// Config holds runtime settings for the voyagelog CLI.
type Config struct {
	// Storage
	StoreDriver  string // sqlite | diskv | memory
	DatabasePath string
	DiskvDir     string
	SaveDebounce time.Duration

	// Rendering and export
	AssetsDir     string
	FontsDir      string
	OutputDir     string
	SettleDelay   time.Duration
	DownloadDelay time.Duration
	CaptureScale  float64

	// Upload; exports go to S3 instead of OutputDir when S3Bucket is set.
	S3Bucket       string
	S3Prefix       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string

	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StoreDriver = "sqlite"
	c.DatabasePath = "voyagelog.db"
	c.DiskvDir = "voyagelog-store"
	c.SaveDebounce = 500 * time.Millisecond

	c.AssetsDir = "assets"
	c.FontsDir = "fonts"
	c.OutputDir = "exports"
	c.SettleDelay = 300 * time.Millisecond
	c.DownloadDelay = 400 * time.Millisecond
	c.CaptureScale = 2

	c.S3Region = "us-east-1"
	c.LogLevel = "info"
}

// UseS3 reports whether exports are uploaded.
func (c *Config) UseS3() bool { return c.S3Bucket != "" }

// LoadConfig applies defaults and then the JSON file named on the command
// line. Flags are applied later, when cobra parses them into the variables
// bound by BindFlags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, flagx.JsonConfigFlags(os.Args[1:]))
	return cfg
}
