package storage

import (
	"strings"
	"time"
)

// Config holds the object storage settings for persisted uploads and results.
type Config struct {
	// Endpoint is the S3/MinIO host, with or without an http(s) scheme.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL enables TLS.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket holding uploads and results.
	Bucket string `mapstructure:"bucket" default:"reconciliation"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds bounds connection setup and the wait for response headers.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Host returns the endpoint without its scheme, as minio expects it.
func (c Config) Host() string {
	host := strings.TrimPrefix(c.Endpoint, "http://")
	return strings.TrimPrefix(host, "https://")
}

// Timeout returns the configured timeout, defaulting to thirty seconds.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
