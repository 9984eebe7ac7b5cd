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

// Package mount implements the mount-point extension spec.md §4.5
// describes: a schema node that embeds a whole separately compiled
// schema context, obtained (shared across sibling instances, or inline
// per instance) from an external get_ext_data callback at
// validate/parse time rather than at compile time.
package mount

import (
	"errors"
	"fmt"
	"sync"

	"github.com/yangforge/yangcore/data"
	"github.com/yangforge/yangcore/plugin"
	"github.com/yangforge/yangcore/schema"
	"github.com/yangforge/yangcore/statement"
	"github.com/yangforge/yangcore/xpath"
)

// Keyword is the namespaced extension statement this package handles.
const Keyword = "ietf-yang-schema-mount:mount-point"

// ExtData is the operational state an external get_ext_data callback
// returns for one mount-point instance: which modules make up the
// mounted schema, its content-id (for shared-cache validity), the
// parent-reference paths XPath evaluation inside the mount needs
// duplicated, and whether this instance shares its inner context with
// siblings bearing the same label.
type ExtData struct {
	Modules    []string
	ContentID  string
	ParentRefs []string
	Shared     bool
	Label      string
}

// GetExtDataFunc is the external callback mount calls at validate time
// to learn which schema is mounted at a given data-tree instance.
type GetExtDataFunc func(n *data.Node) (ExtData, error)

// SchemaBuilder compiles the named modules into a schema root. Supplied
// by the embedding context package, since mount has no module loader of
// its own.
type SchemaBuilder func(modules []string) (*schema.Module, error)

// compiled is the payload schema.Compiler's extension-compile pass
// attaches to a mount-point statement: just the statement's own
// argument, since the inner context is not built until data arrives
// (spec.md §4.5: "Compilation does not create the inner context").
type compiled struct {
	arg string
}

// sharedEntry is one entry in Extension's shared-context cache, keyed by
// mount-point label, ref-counted across sibling instances that share it.
type sharedEntry struct {
	contentID string
	root      *schema.Module
	refs      int
}

// Extension implements plugin.Compiler and plugin.Validator for the
// mount-point statement.
type Extension struct {
	GetExtData GetExtDataFunc
	Build      SchemaBuilder

	mu     sync.Mutex
	shared map[string]*sharedEntry
}

// New returns a mount-point Extension that resolves inner contexts via
// get and builds them via build.
func New(get GetExtDataFunc, build SchemaBuilder) *Extension {
	return &Extension{GetExtData: get, Build: build, shared: map[string]*sharedEntry{}}
}

func (e *Extension) Keyword() string { return Keyword }

// Compile validates that ext occurs inside a container or list (spec.md
// §4.5), then returns a placeholder payload; the inner context is
// deferred to Validate. It does not check whether ext is unique among
// the extensions of the node carrying it.
func (e *Extension) Compile(ext *statement.Statement, parent plugin.SchemaNode) (interface{}, error) {
	if parent == nil {
		return nil, fmt.Errorf("mount-point: must occur inside a container or list")
	}
	switch parent.SchemaKind() {
	case "container", "list":
	default:
		return nil, fmt.Errorf("mount-point: parent %s is a %s, not a container or list", parent.SchemaName(), parent.SchemaKind())
	}
	return &compiled{arg: ext.Argument}, nil
}

func (e *Extension) Free(payload interface{}) {}

var _ plugin.Compiler = (*Extension)(nil)

// Validate resolves n's inner schema context (sharing or building fresh
// per ExtData.Shared), duplicates the declared parent-reference subtrees
// into it so that when/must expressions inside the mounted schema can
// still see outer-tree state, validates n's subtree against it, and
// marks every top-level child EXT so an outer Validate call does not
// recurse back into the same mount (spec.md §4.5).
func (e *Extension) Validate(payload interface{}, dn plugin.DataNode) error {
	n, ok := dn.(*data.Node)
	if !ok {
		return fmt.Errorf("mount-point: Validate called with a non-data.Node")
	}
	if n.Ext {
		return nil
	}

	ext, err := e.GetExtData(n)
	if err != nil {
		return fmt.Errorf("mount-point: get_ext_data: %w", err)
	}

	mod, err := e.resolveRoot(ext)
	if err != nil {
		return err
	}

	// inner is its own tree root (StepParent() == nil), not a child of
	// n: the mounted schema's absolute paths must resolve inside the
	// mount, never back out into the outer tree. inner.IdentityDAG is
	// left nil: SchemaBuilder returns only the compiled root, not the
	// identity.DAG built alongside it, so an identityref leaf under a
	// mount-point whose type names a base fails validation as an
	// unknown identity.
	inner := data.NewNode(mod.Root)
	inner.Children = n.Children
	for _, c := range inner.Children {
		c.Parent = inner
	}
	duplicateParentRefs(n, inner, ext.ParentRefs)
	markExt(n)

	if errs := data.Validate(inner); len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

var _ plugin.Validator = (*Extension)(nil)

// resolveRoot returns the compiled schema root for ext's inner context:
// for a shared mount, the root cached under ext.Label if its content-id
// matches, an error if it differs, and a fresh build (then cached under
// ext.Label) if nothing is cached yet; for an inline mount, always a
// fresh build. The cache mutex is held only across map access, never
// across Build, matching spec.md Design Notes' "Mutex scoping".
func (e *Extension) resolveRoot(ext ExtData) (*schema.Module, error) {
	if !ext.Shared {
		return e.Build(ext.Modules)
	}

	e.mu.Lock()
	entry, ok := e.shared[ext.Label]
	e.mu.Unlock()

	if ok {
		if entry.contentID != ext.ContentID {
			return nil, fmt.Errorf("mount-point %q: content-id %q differs from %q used previously", ext.Label, ext.ContentID, entry.contentID)
		}
		e.mu.Lock()
		entry.refs++
		e.mu.Unlock()
		return entry.root, nil
	}

	root, err := e.Build(ext.Modules)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if existing, ok := e.shared[ext.Label]; ok {
		if existing.contentID != ext.ContentID {
			return nil, fmt.Errorf("mount-point %q: content-id %q differs from %q used previously", ext.Label, ext.ContentID, existing.contentID)
		}
		existing.refs++
		return existing.root, nil
	}
	e.shared[ext.Label] = &sharedEntry{contentID: ext.ContentID, root: root, refs: 1}
	return root, nil
}

// Release drops one reference to the shared context cached under label,
// freeing the cache entry at zero (spec.md §4 "Ownership": mount-point
// inner contexts are ref-counted across sharing siblings).
func (e *Extension) Release(label string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	entry, ok := e.shared[label]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(e.shared, label)
	}
}

// markExt sets Ext on every top-level child of n, suppressing recursive
// mount-point handling when the outer Validate call descends into this
// subtree again (spec.md §4.5 "Data insertion").
func markExt(n *data.Node) {
	for _, c := range n.Children {
		c.SetExt(true)
	}
}

// duplicateParentRefs evaluates each of refs against outer's position in
// the outer tree and grafts a shallow copy of every resulting node as an
// extra child of inner, so XPath evaluation inside the mounted schema
// can still reach outer-tree state through a relative or absolute path
// (spec.md §4.5 "Data insertion"). The grafted copies share the
// original's Schema and Value but not its Parent, so mutating them does
// not affect the outer tree.
func duplicateParentRefs(outer, inner *data.Node, refs []string) {
	for _, path := range refs {
		expr, err := xpath.Compile(path)
		if err != nil {
			continue
		}
		r, err := xpath.Eval(expr, &xpath.EvalContext{Context: outer, Current: outer})
		if err != nil || r.Kind != xpath.KNodeSet {
			continue
		}
		for _, cand := range r.Nodes {
			src, ok := cand.(*data.Node)
			if !ok {
				continue
			}
			inner.AddChild(copyShallow(src))
		}
	}
}

// copyShallow duplicates src's node and its descendants, detached from
// src's own parent.
func copyShallow(src *data.Node) *data.Node {
	cp := data.NewNode(src.Schema)
	cp.Value = src.Value
	cp.New = src.New
	cp.Default = src.Default
	for _, c := range src.Children {
		cp.AddChild(copyShallow(c))
	}
	return cp
}
