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

package plugin

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"
)

const envPrefix = "AGORA"

type PluginType int

const (
	PluginTypeLedger PluginType = iota
	PluginTypeAudit
)

// PluginTypeName returns the name for a plugin type
func PluginTypeName(pluginType PluginType) string {
	switch pluginType {
	case PluginTypeLedger:
		return "ledger"
	case PluginTypeAudit:
		return "audit"
	default:
		return "unknown"
	}
}

type PluginOptionType int

const (
	PluginOptionTypeNone PluginOptionType = iota
	PluginOptionTypeString
	PluginOptionTypeBool
	PluginOptionTypeInt
	PluginOptionTypeUint
)

// PluginOption describes a single configurable option for a plugin. Dest
// must be a pointer matching the option Type. It receives values from
// cmdline flags, config file sections, and environment variables.
type PluginOption struct {
	Dest         any
	DefaultValue any
	Name         string
	Description  string
	Type         PluginOptionType
}

// PluginEntry describes a registered plugin and its configurable options
type PluginEntry struct {
	NewFromOptionsFunc func() Plugin
	Name               string
	Description        string
	Options            []PluginOption
	Type               PluginType
}

var pluginEntries []PluginEntry

// Register adds a plugin to the registry. This is meant to be called from
// the init() function of each plugin package.
func Register(entry PluginEntry) {
	pluginEntries = append(pluginEntries, entry)
}

// GetPlugin returns an instance of the named plugin of the given type, or
// nil if no matching plugin is registered
func GetPlugin(pluginType PluginType, pluginName string) Plugin {
	for _, entry := range pluginEntries {
		if entry.Type != pluginType || entry.Name != pluginName {
			continue
		}
		if entry.NewFromOptionsFunc == nil {
			return nil
		}
		return entry.NewFromOptionsFunc()
	}
	return nil
}

// GetPlugins returns the registered plugin entries of the given type
func GetPlugins(pluginType PluginType) []PluginEntry {
	ret := []PluginEntry{}
	for _, entry := range pluginEntries {
		if entry.Type == pluginType {
			ret = append(ret, entry)
		}
	}
	return ret
}

func getPluginEntry(typeName string, pluginName string) *PluginEntry {
	for i := range pluginEntries {
		entry := &pluginEntries[i]
		if PluginTypeName(entry.Type) == typeName &&
			entry.Name == pluginName {
			return entry
		}
	}
	return nil
}

// pluginFlagName builds the cmdline flag name for a plugin option, such as
// ledger-sqlite-data-dir
func pluginFlagName(entry PluginEntry, opt PluginOption) string {
	return fmt.Sprintf(
		"%s-%s-%s",
		PluginTypeName(entry.Type),
		entry.Name,
		opt.Name,
	)
}

// PopulateCmdlineOptions adds a flag to the given flag set for each option
// of each registered plugin
func PopulateCmdlineOptions(fs *flag.FlagSet) error {
	for _, entry := range pluginEntries {
		for _, opt := range entry.Options {
			flagName := pluginFlagName(entry, opt)
			switch opt.Type {
			case PluginOptionTypeString:
				dest, ok := opt.Dest.(*string)
				if !ok || dest == nil {
					return fmt.Errorf(
						"option %s: destination is not *string",
						flagName,
					)
				}
				defaultValue, _ := opt.DefaultValue.(string)
				fs.StringVar(dest, flagName, defaultValue, opt.Description)
			case PluginOptionTypeBool:
				dest, ok := opt.Dest.(*bool)
				if !ok || dest == nil {
					return fmt.Errorf(
						"option %s: destination is not *bool",
						flagName,
					)
				}
				defaultValue, _ := opt.DefaultValue.(bool)
				fs.BoolVar(dest, flagName, defaultValue, opt.Description)
			case PluginOptionTypeInt:
				dest, ok := opt.Dest.(*int)
				if !ok || dest == nil {
					return fmt.Errorf(
						"option %s: destination is not *int",
						flagName,
					)
				}
				defaultValue, _ := opt.DefaultValue.(int)
				fs.IntVar(dest, flagName, defaultValue, opt.Description)
			case PluginOptionTypeUint:
				dest, ok := opt.Dest.(*uint64)
				if !ok || dest == nil {
					return fmt.Errorf(
						"option %s: destination is not *uint64",
						flagName,
					)
				}
				defaultValue, _ := opt.DefaultValue.(uint64)
				fs.Uint64Var(dest, flagName, defaultValue, opt.Description)
			default:
				return fmt.Errorf(
					"option %s: unknown option type %d",
					flagName,
					opt.Type,
				)
			}
		}
	}
	return nil
}

// ProcessConfig applies plugin options from the config file. The outer map
// key is the plugin type name, the middle key is the plugin name, and the
// inner map holds option names and values.
func ProcessConfig(pluginConfig map[string]map[string]map[string]any) error {
	for typeName, plugins := range pluginConfig {
		for pluginName, options := range plugins {
			entry := getPluginEntry(typeName, pluginName)
			if entry == nil {
				return fmt.Errorf(
					"unknown plugin: %s.%s",
					typeName,
					pluginName,
				)
			}
			for optName, value := range options {
				if err := SetPluginOption(entry.Type, pluginName, optName, value); err != nil {
					return fmt.Errorf(
						"plugin %s.%s: %w",
						typeName,
						pluginName,
						err,
					)
				}
			}
		}
	}
	return nil
}

// ProcessEnvVars applies plugin options from environment variables. Each
// option maps to AGORA_<TYPE>_<PLUGIN>_<OPTION> with dashes replaced by
// underscores, such as AGORA_LEDGER_SQLITE_DATA_DIR.
func ProcessEnvVars() error {
	for _, entry := range pluginEntries {
		for _, opt := range entry.Options {
			envName := strings.ToUpper(
				strings.ReplaceAll(
					fmt.Sprintf(
						"%s_%s_%s_%s",
						envPrefix,
						PluginTypeName(entry.Type),
						entry.Name,
						opt.Name,
					),
					"-",
					"_",
				),
			)
			envVal, ok := os.LookupEnv(envName)
			if !ok {
				continue
			}
			value, err := parseOptionValue(opt.Type, envVal)
			if err != nil {
				return fmt.Errorf(
					"environment variable %s: %w",
					envName,
					err,
				)
			}
			if err := SetPluginOption(entry.Type, entry.Name, opt.Name, value); err != nil {
				return fmt.Errorf(
					"environment variable %s: %w",
					envName,
					err,
				)
			}
		}
	}
	return nil
}

func parseOptionValue(
	optType PluginOptionType,
	raw string,
) (any, error) {
	switch optType {
	case PluginOptionTypeString:
		return raw, nil
	case PluginOptionTypeBool:
		val, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing bool value: %w", err)
		}
		return val, nil
	case PluginOptionTypeInt:
		val, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing int value: %w", err)
		}
		return val, nil
	case PluginOptionTypeUint:
		val, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing uint value: %w", err)
		}
		return val, nil
	default:
		return nil, fmt.Errorf("unknown option type %d", optType)
	}
}
