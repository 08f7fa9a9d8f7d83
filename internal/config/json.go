package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/promptkeeper/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "zero", so a file that only sets
// storage_key leaves every other default in place.
type JsonConfig struct {
	DatabasePath  *string `json:"database_path"`
	StorageKey    *string `json:"storage_key"`
	TrackMetadata *bool   `json:"track_metadata"`
	DefaultModel  *string `json:"default_model"`
	ExportDir     *string `json:"export_dir"`
	ExportFormat  *string `json:"export_format"`
	Ephemeral     *bool   `json:"ephemeral"`
	LogLevel      *string `json:"log_level"`
	S3Bucket      *string `json:"s3_bucket"`
	S3Region      *string `json:"s3_region"`
	S3Endpoint    *string `json:"s3_endpoint"`
	S3AccessKey   *string `json:"s3_access_key"`
	S3SecretKey   *string `json:"s3_secret_key"`
	S3Prefix      *string `json:"s3_prefix"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c / -config. It does nothing when neither flag is given and panics on read
// or unmarshal errors (caller should recover if desired).
func parseJson(cfg *Config) {
	path := flagx.ConfigPathFlag()
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

	jc.apply(cfg)
}

func (jc JsonConfig) apply(cfg *Config) {
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.StorageKey, jc.StorageKey)
	setBool(&cfg.TrackMetadata, jc.TrackMetadata)
	setString(&cfg.DefaultModel, jc.DefaultModel)
	setString(&cfg.ExportDir, jc.ExportDir)
	setString(&cfg.ExportFormat, jc.ExportFormat)
	setBool(&cfg.Ephemeral, jc.Ephemeral)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.S3.Bucket, jc.S3Bucket)
	setString(&cfg.S3.Region, jc.S3Region)
	setString(&cfg.S3.Endpoint, jc.S3Endpoint)
	setString(&cfg.S3.AccessKey, jc.S3AccessKey)
	setString(&cfg.S3.SecretKey, jc.S3SecretKey)
	setString(&cfg.S3.Prefix, jc.S3Prefix)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
