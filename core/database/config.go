package database

import "time"

// Config holds configuration for the reference database connection.
type Config struct {
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name.
	Name string `mapstructure:"name" default:"reconciliation"`
	// Driver is the database driver. Only mysql is supported.
	Driver string `mapstructure:"driver" default:"mysql"`
	// TimeoutSeconds bounds connection setup, reads, writes and the initial ping.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}

// Timeout returns the configured timeout, defaulting to ten seconds.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
