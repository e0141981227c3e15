// Package server holds the HTTP server configuration.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structure and the derived values used when wiring the
// Fiber application and the session tracker.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key, the session idle timeout
// and the request body limit used for uploads.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by cmd/start to configure the Fiber app.
package server
