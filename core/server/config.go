package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// IdleTimeoutMinutes is how long a database session may stay idle before
	// it is marked as timed out.
	IdleTimeoutMinutes int `mapstructure:"idle_timeout_minutes" default:"10"`
	// MaxUploadMB caps the request body size.
	MaxUploadMB int `mapstructure:"max_upload_mb" default:"64"`
}

const (
	defaultIdleTimeout = 10 * time.Minute
	defaultBodyLimit   = 64 << 20
)

// IdleTimeout returns the session idle timeout, falling back to ten minutes
// when unset or invalid.
func (c Config) IdleTimeout() time.Duration {
	if c.IdleTimeoutMinutes <= 0 {
		return defaultIdleTimeout
	}
	return time.Duration(c.IdleTimeoutMinutes) * time.Minute
}

// BodyLimit returns the maximum request body size in bytes.
func (c Config) BodyLimit() int {
	if c.MaxUploadMB <= 0 {
		return defaultBodyLimit
	}
	return c.MaxUploadMB << 20
}

// Address returns the listen address for the configured port.
func (c Config) Address() string {
	return ":" + c.Port
}
