package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"table-reconciler/core/database"
	"table-reconciler/core/logger"
	"table-reconciler/core/reconcile"
	"table-reconciler/core/server"
	"table-reconciler/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the reference database connection.
	Database database.Config `mapstructure:"database"`
	// Reconcile holds comparison limits, labels and result paging.
	Reconcile reconcile.Config `mapstructure:"reconcile"`
}

// LoadConfig loads configuration from environment variables and the .env
// file in dir. Variables in .env override the process environment.
func LoadConfig(dir string) (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Overload(filepath.Join(dir, ".env"))

	v := viper.New()
	registerDefaults(v, reflect.TypeOf(Config{}), "")

	// SECTION_KEY -> section.key
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	return &config, nil
}

// registerDefaults walks t and registers every `mapstructure` key with its
// `default` tag, so AutomaticEnv can resolve keys that were never set.
func registerDefaults(v *viper.Viper, t reflect.Type, prefix string) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			registerDefaults(v, field.Type, key)
			continue
		}

		v.SetDefault(key, field.Tag.Get("default"))
	}
}
