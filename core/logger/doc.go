// Package logger builds the zap logger shared by the server and the CLI.
//
// Level "debug" selects zap's development preset, anything else the
// production one. Format is "json" or "console"; both use the keys level,
// time and message.
//
// Handlers log through WithRayID so every line carries the ray_id stored by
// the rayid middleware:
//
//	l := logger.WithRayID(log, c)
//	l.Warn("Upload rejected", zap.Error(err))
package logger
