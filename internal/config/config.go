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
	"maps"
	"os"
	"path/filepath"
	"time"

	"github.com/blinklabs-io/agora/database/plugin"
	"github.com/blinklabs-io/agora/database/sops"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type ctxKey string

const configContextKey ctxKey = "agora.config"

const DefaultShutdownTimeout = "30s"

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

const (
	DefaultLedgerPlugin = "sqlite"
	DefaultAuditPlugin  = "badger"
)

type tempConfig struct {
	Config   *Config                   `yaml:"config,omitempty"`
	Database *databaseConfig           `yaml:"database,omitempty"`
	Ledger   map[string]map[string]any `yaml:"ledger,omitempty"`
	Audit    map[string]map[string]any `yaml:"audit,omitempty"`
}

type databaseConfig struct {
	Ledger map[string]any `yaml:"ledger,omitempty"`
	Audit  map[string]any `yaml:"audit,omitempty"`
}

type Config struct {
	LedgerPlugin    string `yaml:"ledgerPlugin"    envconfig:"AGORA_DATABASE_LEDGER_PLUGIN"`
	AuditPlugin     string `yaml:"auditPlugin"     envconfig:"AGORA_DATABASE_AUDIT_PLUGIN"`
	DatabasePath    string `yaml:"databasePath"                                            split_words:"true"`
	InputFile       string `yaml:"inputFile"                                               split_words:"true"`
	BindAddr        string `yaml:"bindAddr"                                                split_words:"true"`
	ShutdownTimeout string `yaml:"shutdownTimeout"                                         split_words:"true"`
	MetricsPort     uint   `yaml:"metricsPort"                                             split_words:"true"`
	MaxConnections  int    `yaml:"maxConnections"                                          split_words:"true"`
	Tracing         bool   `yaml:"tracing"`
	TracingStdout   bool   `yaml:"tracingStdout"                                           split_words:"true"`
}

var globalConfig = &Config{
	DatabasePath:    ".agora",
	InputFile:       "",
	BindAddr:        "127.0.0.1",
	MetricsPort:     0,
	ShutdownTimeout: DefaultShutdownTimeout,
	LedgerPlugin:    DefaultLedgerPlugin,
	AuditPlugin:     DefaultAuditPlugin,
}

func LoadConfig(configFile string) (*Config, error) {
	// Load config file as YAML if provided
	if configFile == "" {
		// Check for config file in this path: ~/.agora/agora.yaml
		if homeDir, err := os.UserHomeDir(); err == nil {
			userPath := filepath.Join(homeDir, ".agora", "agora.yaml")
			if _, err := os.Stat(userPath); err == nil {
				configFile = userPath
			}
		}

		// Try to check for /etc/agora/agora.yaml if still not found
		if configFile == "" {
			systemPath := "/etc/agora/agora.yaml"
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
		buf, err = maybeDecrypt(buf)
		if err != nil {
			return nil, err
		}

		// First unmarshal into temp config to handle plugin sections
		var tempCfg tempConfig
		err = yaml.Unmarshal(buf, &tempCfg)
		if err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}

		// If config section exists, use it for main config
		if tempCfg.Config != nil {
			// Overlay config values onto existing defaults
			configBytes, err := yaml.Marshal(tempCfg.Config)
			if err != nil {
				return nil, fmt.Errorf("error re-marshalling config: %w", err)
			}
			err = yaml.Unmarshal(configBytes, globalConfig)
			if err != nil {
				return nil, fmt.Errorf("error parsing config section: %w", err)
			}
		} else {
			// Otherwise unmarshal the whole file as main config
			err = yaml.Unmarshal(buf, globalConfig)
			if err != nil {
				return nil, fmt.Errorf("error parsing config file: %w", err)
			}
		}

		// Process plugin configurations
		pluginConfig := make(map[string]map[string]map[string]any)
		if tempCfg.Ledger != nil {
			pluginConfig["ledger"] = tempCfg.Ledger
		}
		if tempCfg.Audit != nil {
			pluginConfig["audit"] = tempCfg.Audit
		}
		// Handle database section if present
		if tempCfg.Database != nil {
			if tempCfg.Database.Ledger != nil {
				applyDatabaseSection(
					"ledger",
					tempCfg.Database.Ledger,
					&globalConfig.LedgerPlugin,
					pluginConfig,
				)
			}
			if tempCfg.Database.Audit != nil {
				applyDatabaseSection(
					"audit",
					tempCfg.Database.Audit,
					&globalConfig.AuditPlugin,
					pluginConfig,
				)
			}
		}
		if len(pluginConfig) > 0 {
			err = plugin.ProcessConfig(pluginConfig)
			if err != nil {
				return nil, fmt.Errorf(
					"error processing plugin config: %w",
					err,
				)
			}
		}
	}
	// Process environment variables
	err := envconfig.Process("agora", globalConfig)
	if err != nil {
		return nil, fmt.Errorf("error processing environment: %+w", err)
	}

	// Process plugin environment variables
	err = plugin.ProcessEnvVars()
	if err != nil {
		return nil, fmt.Errorf(
			"error processing plugin environment variables: %w",
			err,
		)
	}

	// Validate the shutdown timeout early so a bad value fails at startup
	// rather than during shutdown
	if globalConfig.ShutdownTimeout != "" {
		if _, err := time.ParseDuration(globalConfig.ShutdownTimeout); err != nil {
			return nil, fmt.Errorf("invalid shutdownTimeout: %w", err)
		}
	}

	return globalConfig, nil
}

func GetConfig() *Config {
	return globalConfig
}

// maybeDecrypt transparently decrypts sops-encrypted config files, detected
// by the sops metadata key at the document root
func maybeDecrypt(buf []byte) ([]byte, error) {
	var probe map[string]any
	if err := yaml.Unmarshal(buf, &probe); err != nil {
		// Leave malformed files for the main parser to report
		return buf, nil
	}
	if _, ok := probe["sops"]; !ok {
		return buf, nil
	}
	decrypted, err := sops.DecryptYAML(buf)
	if err != nil {
		return nil, fmt.Errorf("error decrypting config file: %w", err)
	}
	return decrypted, nil
}

// applyDatabaseSection splits one database.<type> config block into the
// plugin selection and that plugin's option maps
func applyDatabaseSection(
	typeName string,
	section map[string]any,
	selected *string,
	pluginConfig map[string]map[string]map[string]any,
) {
	// Extract plugin name if specified
	if pluginVal, exists := section["plugin"]; exists {
		if pluginName, ok := pluginVal.(string); ok {
			*selected = pluginName
			// Remove plugin from config map
			delete(section, "plugin")
		}
	}
	// Build plugin config map
	options := make(map[string]map[string]any)
	for k, v := range section {
		switch val := v.(type) {
		case map[string]any:
			options[k] = val
		case map[any]any:
			// Convert map[any]any to map[string]any
			stringAnyMap := make(map[string]any)
			for vk, vv := range val {
				if keyStr, ok := vk.(string); ok {
					stringAnyMap[keyStr] = vv
				}
			}
			options[k] = stringAnyMap
		default:
			// Log skipped non-map config entries
			fmt.Fprintf(
				os.Stderr,
				"warning: skipping %s config entry %q: expected map, got %T\n",
				typeName,
				k,
				v,
			)
		}
	}
	// Merge with existing config instead of overwriting
	if pluginConfig[typeName] == nil {
		pluginConfig[typeName] = options
	} else {
		maps.Copy(pluginConfig[typeName], options)
	}
}
