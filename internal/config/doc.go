// Package config loads runtime configuration for the PromptKeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path of the SQLite database file
//	-k string   storage key the prompt collection is kept under
//	-t bool     track model metadata and token estimates on new prompts
//	-m string   model name offered by default when adding a prompt
//	-o string   directory for export files
//	-f string   export format: json or yaml
//	-e bool     ephemeral session (in-memory storage, nothing written to disk)
//	-l string   log level: debug, info, warn, error
//	-s3-bucket  upload exports to this S3 bucket instead of ExportDir
//
// # JSON schema
//
// Only keys present in the file override defaults:
//
//	{
//	  "database_path": "promptkeeper.db",
//	  "storage_key": "promptkeeper.prompts",
//	  "track_metadata": true,
//	  "default_model": "gpt-4o",
//	  "export_dir": "exports",
//	  "export_format": "json",
//	  "ephemeral": false,
//	  "log_level": "info",
//	  "s3_bucket": "prompt-exports",
//	  "s3_region": "us-east-1",
//	  "s3_endpoint": "http://127.0.0.1:9000/",
//	  "s3_access_key": "admin",
//	  "s3_secret_key": "secretpassword",
//	  "s3_prefix": "exports/"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
