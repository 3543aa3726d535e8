// seehuhn.de/go/annotflip - mirror the geometry of PDF annotations
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// config holds the settings which can be given either on the command line
// or in a config file.
type config struct {
	horizontal bool
	vertical   bool
	prefix     string
	overwrite  bool
	verbose    bool
}

var defaultConfig = config{
	horizontal: true,
	prefix:     "flipped_",
}

type yamlConfig struct {
	Horizontal *bool   `yaml:"horizontal"`
	Vertical   *bool   `yaml:"vertical"`
	Prefix     *string `yaml:"prefix"`
	Overwrite  *bool   `yaml:"overwrite"`
	Verbose    *bool   `yaml:"verbose"`
}

// loadConfig reads a YAML config file into cfg.  Settings for which a flag
// was given explicitly, as recorded in isSet, are not changed.
func loadConfig(path string, cfg *config, isSet map[string]bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return err
	}

	if yc.Horizontal != nil && !isSet["horizontal"] && !isSet["no-horizontal"] {
		cfg.horizontal = *yc.Horizontal
	}
	if yc.Vertical != nil && !isSet["vertical"] {
		cfg.vertical = *yc.Vertical
	}
	if yc.Prefix != nil {
		cfg.prefix = *yc.Prefix
	}
	if yc.Overwrite != nil && !isSet["f"] {
		cfg.overwrite = *yc.Overwrite
	}
	if yc.Verbose != nil && !isSet["v"] {
		cfg.verbose = *yc.Verbose
	}
	return nil
}

// outputName returns the default output file name for the given input file.
// The output is written to the current directory.
func outputName(in, prefix string) string {
	return prefix + filepath.Base(in)
}
