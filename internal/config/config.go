/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package config loads the optional .vcardlint.yaml settings file.
package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	vcerrors "dirpx.dev/vcardlint/vccore/errors"
)

// DefaultPath is the settings file looked up in the working directory.
const DefaultPath = ".vcardlint.yaml"

// MaxQRSize bounds the QR image edge in pixels.
const MaxQRSize = 4096

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds the validator settings. Command-line flags override the
// values read from file.
type Config struct {
	Verbose   bool   `yaml:"verbose"`
	Format    string `yaml:"format"`     // text, json or yaml
	Charset   string `yaml:"charset"`    // IANA charset of the input files
	LogLevel  string `yaml:"log_level"`  // debug, info, warn or error
	LogFormat string `yaml:"log_format"` // console or json
	Jobs      int    `yaml:"jobs"`
	QRDir     string `yaml:"qr_dir"`
	QRSize    int    `yaml:"qr_size"` // pixels, 0 selects the default
	Warnings  bool   `yaml:"warnings"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Format:    FormatText,
		Charset:   "utf-8",
		LogLevel:  "warn",
		LogFormat: "console",
		Jobs:      1,
		Warnings:  true,
	}
}

// Load reads the settings file at path on top of Default. With an empty
// path DefaultPath is tried and a missing file yields the defaults; an
// explicitly named file must exist. Problems are Usage errors.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, vcerrors.Newf(vcerrors.Usage, "Cannot read config: %v", err).
			With(vcerrors.KeyFile, path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, vcerrors.Newf(vcerrors.Usage, "Invalid config: %v", err).
			With(vcerrors.KeyFile, path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, vcerrors.Annotate(err, vcerrors.KeyFile, path)
	}
	return cfg, nil
}

// Validate checks every enumerated and bounded field.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return vcerrors.Newf(vcerrors.Usage, "Invalid format: %q", c.Format)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return vcerrors.Newf(vcerrors.Usage, "Invalid log level: %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return vcerrors.Newf(vcerrors.Usage, "Invalid log format: %q", c.LogFormat)
	}
	if c.Jobs < 1 {
		return vcerrors.Newf(vcerrors.Usage, "Invalid jobs: %d (must be at least 1)", c.Jobs)
	}
	if c.QRSize < 0 || c.QRSize > MaxQRSize {
		return vcerrors.Newf(vcerrors.Usage, "Invalid QR size: %d (must be 0 to %d)", c.QRSize, MaxQRSize)
	}
	return nil
}
