// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package conf loads externally sourced option defaults: YAML or TOML
// configuration files and environment variables. The loaded maps are meant to
// be layered onto a parse result with MergeDefaults, each under its own
// provenance tag, so explicit command-line values always win.
package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load reads the configuration file at path, picking the decoder by file
// extension: .yaml/.yml or .toml.
func Load(path string) (map[string]any, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".toml":
		return LoadTOML(path)
	default:
		return nil, fmt.Errorf("unsupported config format: %s", path)
	}
}

// LoadYAML reads a YAML mapping of option names to values.
func LoadYAML(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	values := make(map[string]any)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return values, nil
}

// LoadTOML reads a TOML table of option names to values.
func LoadTOML(path string) (map[string]any, error) {
	values := make(map[string]any)
	if _, err := toml.DecodeFile(path, &values); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return values, nil
}

// FromEnv collects values for the named options from the environment. An
// option "log-level" under prefix "MYTOOL" reads MYTOOL_LOG_LEVEL; unset
// variables produce no entry. Values are returned as raw strings, for the
// caller's spec to coerce.
func FromEnv(prefix string, names []string) map[string]any {
	values := make(map[string]any)
	for _, name := range names {
		v, ok := os.LookupEnv(EnvName(prefix, name))
		if !ok {
			continue
		}
		values[name] = v
	}
	return values
}

// EnvName maps an option name to its environment variable under prefix:
// upper-cased, with dashes and dots flattened to underscores.
func EnvName(prefix, option string) string {
	mapped := strings.NewReplacer("-", "_", ".", "_").Replace(option)
	key := strings.ToUpper(mapped)
	if prefix == "" {
		return key
	}
	return strings.ToUpper(prefix) + "_" + key
}
