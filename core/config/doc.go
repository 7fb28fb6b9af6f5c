// Package config provides configuration management for dex-wiki.
//
// Settings come from environment variables, optionally seeded from a .env
// file, and fall back to the `default` struct tags of each section.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, metrics toggle
//   - Storage: S3/MinIO credentials and bucket of the data repository
//   - Log: logging level and format
//   - Data: data root, cache bound, preload workers
//   - Sync: bucket prefix and transfer workers
//
// Environment keys are the section and field joined by an underscore, for
// example DATA_DIR or DATA_MAX_CACHE_SIZE.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Data.Dir)
package config
