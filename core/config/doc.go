// Package config provides configuration management for mods-merger.
//
// It utilizes Viper for loading configuration from environment variables and a
// .env file. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
//   - Log: logging level and format
//   - Merge: output root, publishing and audit recording
//   - Vanilla: where unmodified assets come from (none, dir, storage) and cache TTL
//   - Storage: S3/MinIO credentials and bucket
//   - Database: audit database driver and connection details
//   - Server: HTTP port, API key and body limit
//
// Environment variables map to nested keys by section, e.g. MERGE_OUTPUT_DIR -> merge.output_dir.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Merge.OutputDir)
package config
