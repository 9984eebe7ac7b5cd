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
	"encoding/gob"
	"fmt"
	"io"
)

// snapshotVersion guards against decoding an envelope written by an
// incompatible future layout; Restore rejects anything else rather than
// guessing at forward compatibility spec.md never promises.
const snapshotVersion = 1

// envelope is a Context's reproducible inputs, not a literal image of
// its compiled schema tree: schema.Node and ast.Node are built from
// interface-typed fields gob cannot round-trip without a full registered
// type graph, and spec.md §9 leaves the snapshot's serialized layout
// unspecified. Restoring replays LoadModule for every name recorded
// here, which is cheap (compilation is deterministic) and needs no
// bespoke (de)serializer for the compiled-node graph.
type envelope struct {
	Version     int
	SearchDirs  []string
	ModuleNames []string
}

// Snapshot encodes enough of c to rebuild it with Restore: its search
// path and the name of every module compiled so far, imported modules
// included. This is a
// best-effort, versioned-but-unspecified-layout snapshot, not a
// guaranteed-stable wire format across releases (spec.md §1 Non-goals).
func (c *Context) Snapshot(w io.Writer) error {
	c.mu.RLock()
	env := envelope{Version: snapshotVersion, SearchDirs: c.opts.SearchDirs}
	for k := range c.modules {
		env.ModuleNames = append(env.ModuleNames, k.Name)
	}
	c.mu.RUnlock()

	if err := gob.NewEncoder(w).Encode(env); err != nil {
		return fmt.Errorf("context: encoding snapshot: %w", err)
	}
	return nil
}

// Restore decodes an envelope written by Snapshot and returns a fresh
// Context with the same search path, every recorded module reloaded and
// recompiled.
func Restore(r io.Reader) (*Context, error) {
	var env envelope
	if err := gob.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("context: decoding snapshot: %w", err)
	}
	if env.Version != snapshotVersion {
		return nil, fmt.Errorf("context: snapshot version %d, want %d", env.Version, snapshotVersion)
	}

	c := New(Options{SearchDirs: env.SearchDirs})
	for _, name := range env.ModuleNames {
		if _, err := c.LoadModule(name); err != nil {
			return nil, fmt.Errorf("context: restoring module %q: %w", name, err)
		}
	}
	return c, nil
}
