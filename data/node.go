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

// Package data implements spec.md §4.6's two-pass instance-data
// validator over a tree of Node, the compiled-node counterpart for
// actual values: per-node type/mandatory/min-max/key-uniqueness checks
// in pass A, then when/must evaluation, pruning and default insertion in
// pass B. codec/xmlcodec and codec/jsoncodec build a Node tree from wire
// formats; this package only ever walks one once built.
package data

import (
	"github.com/yangforge/yangcore/ast"
	"github.com/yangforge/yangcore/identity"
	"github.com/yangforge/yangcore/schema"
	"github.com/yangforge/yangcore/xpath"
)

// Node is one instance in a parsed data tree, mirroring spec.md's Data
// Model "Data node": same kind taxonomy as schema.Node, plus a value, a
// parent/children linkage, and flags.
type Node struct {
	Schema   *schema.Node
	Parent   *Node
	Children []*Node
	Value    string // canonical form; "" for interior nodes

	New     bool // inserted during this parse (vs. pre-existing)
	Default bool // value was not present on the wire; a schema default was inserted
	Ext     bool // belongs to a mount-point subtree; suppresses recursive mount handling

	// IdentityDAG is set on a tree's root node only; identity lookups
	// from any descendant walk up to find it via dag().
	IdentityDAG *identity.DAG

	pruned bool // set by pass B when an ancestral "when" is false
}

// dag returns the identity DAG shared by this whole tree.
func (n *Node) dag() *identity.DAG {
	r := n
	for r.Parent != nil {
		r = r.Parent
	}
	return r.IdentityDAG
}

// resolveIdentity resolves n's value (a possibly prefix-qualified
// identityref) to its DAG node, using n's schema module's import table
// to turn a prefix into the owning module name (RFC 7950 §9.10.4).
func (n *Node) resolveIdentity() (*identity.Identity, bool) {
	dag := n.dag()
	if dag == nil || n.Schema == nil || n.Schema.Module == nil {
		return nil, false
	}
	prefix, local := ast.SplitPrefix(n.Value)
	modName := n.Schema.Module.Decl.Name
	if prefix != "" {
		imp, ok := n.Schema.Module.Imports[prefix]
		if !ok {
			return nil, false
		}
		modName = imp.Decl.Name
	}
	return dag.Lookup(modName + ":" + local)
}

// NewNode allocates a Node for sch, detached from any tree.
func NewNode(sch *schema.Node) *Node { return &Node{Schema: sch} }

// AddChild appends child to n's children, wiring the parent back-ref.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Name returns the data node's schema name, satisfying plugin.DataNode.
func (n *Node) Name() string {
	if n.Schema == nil {
		return ""
	}
	return n.Schema.Name
}

// SetExt implements plugin.DataNode, used by the mount-point extension
// to mark freshly parsed subtree roots so validation does not recurse
// into the same mount twice.
func (n *Node) SetExt(v bool) { n.Ext = v }

// ChildrenNamed returns n's direct, non-pruned children whose schema
// name is name (or all of them, if name == "").
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.pruned {
			continue
		}
		if name == "" || c.Name() == name {
			out = append(out, c)
		}
	}
	return out
}

// The following four methods implement xpath.Node, letting the same
// evaluator package serve when/must and leafref path resolution (both
// here, in package data) and
// mount-point parent-reference duplication without any of those three
// importing package data.

func (n *Node) StepName() string { return n.Name() }

func (n *Node) StepParent() xpath.Node {
	if n.Parent == nil {
		return nil
	}
	return n.Parent
}

func (n *Node) StepChildren(name string) []xpath.Node {
	var out []xpath.Node
	for _, c := range n.ChildrenNamed(name) {
		out = append(out, c)
	}
	return out
}

func (n *Node) LeafValue() (string, bool) {
	if n.Schema == nil {
		return "", false
	}
	switch n.Schema.Kind {
	case schema.KindLeaf, schema.KindLeafList:
		return n.Value, true
	}
	return "", false
}

// Path renders n's data-tree path for error messages.
func (n *Node) Path() string {
	if n == nil {
		return ""
	}
	if n.Parent == nil {
		return "/" + n.Name()
	}
	return n.Parent.Path() + "/" + n.Name()
}
