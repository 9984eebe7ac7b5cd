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

// Package plugin declares the extension contract spec.md §6 specifies
// for schema-compiled extension statements (mount-point being the one
// concrete consumer): {compile, free, parse, validate, printer,
// data_free, snprint, compiled_size}, "any subset may be omitted".
// Go has no partial-interface-implementation mechanism, so that contract
// is rendered as one umbrella interface plus narrower optional
// sub-interfaces a concrete extension implements only as needed; callers
// discover support with a type assertion rather than a null-function-
// pointer check.
package plugin

import (
	"io"

	"github.com/yangforge/yangcore/statement"
)

// Extension identifies a plugin by the keyword it handles; that is all
// it supplies. Compile-time validation and per-instance payload
// construction are the Compiler hook.
type Extension interface {
	// Keyword returns the namespaced extension statement name this
	// plugin handles, e.g. "ietf-yang-schema-mount:mount-point".
	Keyword() string
}

// Compiler is implemented by an Extension whose statement needs
// compile-time validation and an attached opaque payload (spec.md
// §4.5's "attach an opaque per-instance payload").
type Compiler interface {
	Extension
	// Compile validates ext's placement and arguments (ext is the raw
	// extension statement, since an unknown extension like mount-point
	// has no dedicated ast.Node type of its own) and returns the payload
	// to attach to the compiled node carrying it.
	Compile(ext *statement.Statement, parent SchemaNode) (interface{}, error)
}

// Freer is implemented by an Extension whose compiled payload owns
// resources that must be released when the owning schema is torn down.
type Freer interface {
	Extension
	Free(payload interface{})
}

// Parser is implemented by an Extension that participates in data-tree
// parsing -- mount-point's "parse a subtree rooted at the mount-point".
type Parser interface {
	Extension
	Parse(payload interface{}, r io.Reader) (DataNode, error)
}

// Validator is implemented by an Extension that validates the data node
// carrying its compiled payload. data.Validate does not call it; it runs
// only when a caller invokes Validate directly.
type Validator interface {
	Extension
	Validate(payload interface{}, n DataNode) error
}

// Printer is implemented by an Extension that can render its subtree
// back out (the counterpart to Parser).
type Printer interface {
	Extension
	Snprint(payload interface{}, n DataNode, w io.Writer) error
}

// DataFreer is implemented by an Extension whose parsed data payload
// owns resources needing explicit release, distinct from the compiled
// payload Freer releases.
type DataFreer interface {
	Extension
	DataFree(n DataNode)
}

// Sizer is implemented by an Extension that can report the memory
// footprint of its compiled payload, for context size estimation.
type Sizer interface {
	Extension
	CompiledSize(payload interface{}) int
}

// SchemaNode is the minimal view of a compiled schema node a plugin's
// Compile hook needs: enough to validate placement without importing
// package schema (which would cycle back to plugin through mount).
// Named SchemaKind/SchemaName rather than Kind/Name because schema.Node
// already exposes those as fields, and Go does not let a method share a
// field's name on the same type.
type SchemaNode interface {
	SchemaKind() string // "container", "list", ...
	SchemaName() string
}

// DataNode is the minimal view of a data-tree node a plugin needs at
// parse/validate time, mirroring xpath.Node's read surface plus the
// mutation mount-point requires (marking EXT on freshly parsed nodes).
type DataNode interface {
	Name() string
	SetExt(bool)
}

// Registry looks up the Extension registered for a namespaced keyword.
// schema.Compiler consults one (if set) when it encounters an unknown
// extension statement it would otherwise just retain uninterpreted.
type Registry struct {
	byKeyword map[string]Extension
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry { return &Registry{byKeyword: map[string]Extension{}} }

// Register adds ext under its own Keyword(), replacing any previous
// registration for that keyword.
func (r *Registry) Register(ext Extension) { r.byKeyword[ext.Keyword()] = ext }

// Lookup returns the Extension registered for keyword, or nil.
func (r *Registry) Lookup(keyword string) Extension { return r.byKeyword[keyword] }
