// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type ctxKey string

const configContextKey ctxKey = "hypermap-explorer.config"

const DefaultShutdownTimeout = "30s"

const DefaultMetadataPlugin = "sqlite"

func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configContextKey, cfg)
}

func FromContext(ctx context.Context) *Config {
	cfg, ok := ctx.Value(configContextKey).(*Config)
	if !ok {
		return nil
	}
	return cfg
}

type Config struct {
	MetadataPlugin    string `yaml:"metadataPlugin"    envconfig:"EXPLORER_DATABASE_METADATA_PLUGIN"`
	DatabasePath      string `yaml:"databasePath"                                                     split_words:"true"`
	BindAddr          string `yaml:"bindAddr"                                                         split_words:"true"`
	ApiPort           uint   `yaml:"apiPort"           envconfig:"port"`
	MetricsPort       uint   `yaml:"metricsPort"                                                      split_words:"true"`
	ShutdownTimeout   string `yaml:"shutdownTimeout"                                                  split_words:"true"`
	ProviderNamespace string `yaml:"providerNamespace"                                                split_words:"true"`
	ProviderNoteLabel string `yaml:"providerNoteLabel"                                                split_words:"true"`
	ProviderPageSize  int    `yaml:"providerPageSize"                                                 split_words:"true"`
	SearchLimit       int    `yaml:"searchLimit"                                                      split_words:"true"`
	Tracing           bool   `yaml:"tracing"                                                          split_words:"true"`
	TracingStdout     bool   `yaml:"tracingStdout"                                                    split_words:"true"`

	// Postgres connection settings, used when metadataPlugin is
	// "postgres". DatabaseUrl takes precedence over the individual
	// fields when set.
	DatabaseUrl      string `yaml:"databaseUrl"      envconfig:"DATABASE_URL"`
	PostgresHost     string `yaml:"postgresHost"                                 split_words:"true"`
	PostgresPort     uint   `yaml:"postgresPort"                                 split_words:"true"`
	PostgresUser     string `yaml:"postgresUser"                                 split_words:"true"`
	PostgresPassword string `yaml:"postgresPassword"                             split_words:"true"`
	PostgresDatabase string `yaml:"postgresDatabase"                             split_words:"true"`
	PostgresSSLMode  string `yaml:"postgresSslMode"  envconfig:"POSTGRES_SSL_MODE"`
	PostgresTimeZone string `yaml:"postgresTimeZone"                             split_words:"true"`
}

var globalConfig = &Config{
	MetadataPlugin:    DefaultMetadataPlugin,
	DatabasePath:      ".hypermap-explorer",
	BindAddr:          "0.0.0.0",
	ApiPort:           3000,
	MetricsPort:       12798,
	ShutdownTimeout:   DefaultShutdownTimeout,
	ProviderNamespace: "grid.hypr",
	ProviderNoteLabel: "~provider-name",
	ProviderPageSize:  50,
	SearchLimit:       100,
	PostgresHost:      "localhost",
	PostgresPort:      5432,
	PostgresUser:      "postgres",
	PostgresDatabase:  "postgres",
	PostgresSSLMode:   "disable",
	PostgresTimeZone:  "UTC",
}

func LoadConfig(configFile string) (*Config, error) {
	// Load config file as YAML if provided
	if configFile == "" {
		// Check for config file in this path:
		// ~/.hypermap-explorer/explorer.yaml
		if homeDir, err := os.UserHomeDir(); err == nil {
			userPath := filepath.Join(
				homeDir,
				".hypermap-explorer",
				"explorer.yaml",
			)
			if _, err := os.Stat(userPath); err == nil {
				configFile = userPath
			}
		}

		// Try /etc/hypermap-explorer/explorer.yaml if still not found
		if configFile == "" {
			systemPath := "/etc/hypermap-explorer/explorer.yaml"
			if _, err := os.Stat(systemPath); err == nil {
				configFile = systemPath
			}
		}
	}

	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		err = yaml.Unmarshal(buf, globalConfig)
		if err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	// Process environment variables
	err := envconfig.Process("explorer", globalConfig)
	if err != nil {
		return nil, fmt.Errorf("error processing environment: %+w", err)
	}

	switch globalConfig.MetadataPlugin {
	case "sqlite", "postgres":
		// valid
	case "":
		globalConfig.MetadataPlugin = DefaultMetadataPlugin
	default:
		return nil, fmt.Errorf(
			"invalid metadata plugin: %q (must be 'sqlite' or 'postgres')",
			globalConfig.MetadataPlugin,
		)
	}

	return globalConfig, nil
}

func GetConfig() *Config {
	return globalConfig
}
