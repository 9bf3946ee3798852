// Copyright 2025 The Unilog Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the CLI's optional YAML configuration file. It
// is purely additive: every field here has a bare-flag equivalent on
// the command line, and a unilog invocation with no --config works
// exactly as it always did.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the shape of an optional unilog.yaml: a default file list
// (used when no positional arguments are given) plus the two debug
// flags the CLI also exposes directly.
type Config struct {
	Files          []string `yaml:"files"`
	Verbose        bool     `yaml:"verbose"`
	DebugDumpTerms bool     `yaml:"debugDumpTerms"`
}

// Load reads and parses the YAML config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
