package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/voyagelog/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Zero values
// mean "not set" and leave the current Config value alone.
type JsonConfig struct {
	StoreDriver  string         `json:"store_driver"`
	DatabasePath string         `json:"database_path"`
	DiskvDir     string         `json:"diskv_dir"`
	SaveDebounce timex.Duration `json:"save_debounce"`

	AssetsDir     string         `json:"assets_dir"`
	FontsDir      string         `json:"fonts_dir"`
	OutputDir     string         `json:"output_dir"`
	SettleDelay   timex.Duration `json:"settle_delay"`
	DownloadDelay timex.Duration `json:"download_delay"`
	CaptureScale  float64        `json:"capture_scale"`

	S3Bucket       string `json:"s3_bucket"`
	S3Prefix       string `json:"s3_prefix"`
	S3Region       string `json:"s3_region"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`
	S3AccessKey    string `json:"s3_access_key"`
	S3SecretKey    string `json:"s3_secret_key"`

	LogLevel string `json:"log_level"`
}

// parseJson overlays cfg with the JSON file at path. An empty path loads
// nothing. Read and decode errors panic.
func parseJson(cfg *Config, path string) {
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.StoreDriver, jc.StoreDriver)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.DiskvDir, jc.DiskvDir)
	setDuration(&cfg.SaveDebounce, jc.SaveDebounce)

	setString(&cfg.AssetsDir, jc.AssetsDir)
	setString(&cfg.FontsDir, jc.FontsDir)
	setString(&cfg.OutputDir, jc.OutputDir)
	setDuration(&cfg.SettleDelay, jc.SettleDelay)
	setDuration(&cfg.DownloadDelay, jc.DownloadDelay)
	if jc.CaptureScale > 0 {
		cfg.CaptureScale = jc.CaptureScale
	}

	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Prefix, jc.S3Prefix)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)

	setString(&cfg.LogLevel, jc.LogLevel)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
