// Package config provides configuration management for the table reconciler.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from the `default` struct tags of each
// section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, session idle timeout)
//   - Database: MySQL connection details for the reference side
//   - Storage: S3/MinIO credentials and the bucket holding uploads and results
//   - Log: Logging level and format
//   - Reconcile: pairing ceiling, reference label, preview and page sizes
//
// Environment keys are upper-cased section and field names joined by an
// underscore, e.g. RECONCILE_PAIR_CEILING or SERVER_IDLE_TIMEOUT_MINUTES.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
