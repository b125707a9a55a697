// Package config provides configuration management for xkcd-downloader.
//
// This package handles:
//   - Loading settings from JSON or YAML files
//   - Overrides from XKCD_* environment variables
//   - Default configuration values
//   - Conversion to HTTP client options and page ranges
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Downloads to ~/Downloads/xkcd
//	// 5 pages in parallel, 5 attempts per fetch
//	// All pages from 1 to the latest
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.yaml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// A YAML file looks like:
//
//	output_dir: ~/comics/xkcd
//	max_parallel: 8
//	retry_attempts: 3
//	timeout: 30s
//
// # Saving Settings
//
//	settings.MaxParallel = 10
//	err := settings.Save("/path/to/config.json")
package config
