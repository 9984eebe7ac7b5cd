// Copyright 2015 Google Inc.
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

package context

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/yangforge/yangcore/yerr"
)

// Options configures a Context at construction.
type Options struct {
	SearchDirs  []string       `yaml:"search_dirs"`
	Level       yerr.Level     `yaml:"-"`
	DebugGroups yerr.DebugGroup `yaml:"-"`
}

// yamlOptions is Options' on-disk shape: Level and DebugGroups are
// bitfields with no stable textual form specified anywhere, so the YAML
// config surface only ever carries the search path (the one setting a
// deployment actually wants to externalize). New applies DebugGroups;
// it does not read Level, so the error state keeps its default level
// (LWarning).
type yamlOptions struct {
	SearchDirs []string `yaml:"search_dirs"`
}

// LoadOptionsYAML reads Options.SearchDirs from r, a small config
// surface for deployments that want the module search path externalized
// rather than compiled in. Grounded on the pack's go-yaml usage
// (MacroPower-x), since goyang itself has no config file of its own.
func LoadOptionsYAML(r io.Reader) (Options, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return Options{}, fmt.Errorf("context: reading options: %w", err)
	}
	var y yamlOptions
	if err := yaml.Unmarshal(buf, &y); err != nil {
		return Options{}, fmt.Errorf("context: parsing options: %w", err)
	}
	return Options{SearchDirs: y.SearchDirs}, nil
}
