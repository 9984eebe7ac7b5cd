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

// Package schema compiles a set of parsed modules (ast.Module) into the
// resolved schema tree spec.md §4 calls the "Compiled node": groupings
// expanded, augments and deviations merged, typedefs and identities
// resolved, leafrefs and when/must expressions parsed but not yet
// evaluated (that is data's job).
package schema

import (
	"fmt"
	"sort"

	"github.com/yangforge/yangcore/ast"
	"github.com/yangforge/yangcore/identity"
	"github.com/yangforge/yangcore/xpath"
	"github.com/yangforge/yangcore/ytype"
)

// Kind distinguishes the compiled node kinds that do not already follow
// from their ast.Node type once groupings are expanded away.
type Kind int

const (
	KindContainer Kind = iota
	KindLeaf
	KindLeafList
	KindList
	KindChoice
	KindCase
	KindAnyData
	KindAnyXML
	KindRPC
	KindAction
	KindInput
	KindOutput
	KindNotification
)

func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindLeaf:
		return "leaf"
	case KindLeafList:
		return "leaf-list"
	case KindList:
		return "list"
	case KindChoice:
		return "choice"
	case KindCase:
		return "case"
	case KindAnyData:
		return "anydata"
	case KindAnyXML:
		return "anyxml"
	case KindRPC:
		return "rpc"
	case KindAction:
		return "action"
	case KindInput:
		return "input"
	case KindOutput:
		return "output"
	case KindNotification:
		return "notification"
	}
	return "unknown"
}

// ListAttr carries the ordering/cardinality facts specific to lists and
// leaf-lists.
type ListAttr struct {
	MinElements int
	MaxElements int // 0 means unbounded
	OrderedBy   string
	Key         []string
	Unique      [][]string
}

// Node is one compiled schema-tree node: spec.md's "Compiled node".
// Groupings have been expanded into copies, augments merged in place,
// and when/must/leafref expressions parsed (not evaluated).
type Node struct {
	Name      string
	Kind      Kind
	Decl      ast.Node // the statement this node was compiled from
	Parent    *Node
	Module    *Module // the module that owns this node's namespace
	Children  []*Node
	childIdx  map[string]int

	Config           bool
	ConfigSet        bool // true if config was explicitly stated somewhere in the chain
	Mandatory        bool
	Presence         string
	Description      string
	Reference        string
	Status           string

	Type     *ytype.Type // leaf/leaf-list only
	Default  string
	Defaults []string // leaf-list only
	Units    string

	*ListAttr // non-nil for list/leaf-list

	When  *xpath.Expr
	Must  []*xpath.Expr

	Identities []*identity.Identity // identities declared directly under this node's module

	AugmentedBy []ast.Node // augment statements that merged into this node
	DeviatedBy  []ast.Node // deviation statements applied to this node

	// ExtPayload holds, per extension keyword, the payload a registered
	// plugin.Compiler returned for an unknown extension statement found
	// in this node's Decl.Exts() (spec.md §4.5's "attach an opaque
	// per-instance payload").
	ExtPayload map[string]interface{}

	Errors []error
}

// SchemaKind and SchemaName implement plugin.SchemaNode, letting an
// extension's compile hook validate its placement without package
// plugin importing schema (which would cycle back through mount).
func (n *Node) SchemaKind() string { return n.Kind.String() }
func (n *Node) SchemaName() string { return n.Name }

// newNode allocates a Node of the given kind from decl.
func newNode(name string, kind Kind, decl ast.Node) *Node {
	return &Node{Name: name, Kind: kind, Decl: decl, childIdx: map[string]int{}}
}

// addChild appends child, replacing any existing child of the same name
// (the teacher's Entry.add: last writer wins, recording a duplicate
// error first).
func (n *Node) addChild(child *Node) {
	child.Parent = n
	if i, ok := n.childIdx[child.Name]; ok {
		n.Errors = append(n.Errors, fmt.Errorf("%s: duplicate child %s", ast.Source(n.Decl), child.Name))
		n.Children[i] = child
		return
	}
	n.childIdx[child.Name] = len(n.Children)
	n.Children = append(n.Children, child)
}

// Child returns n's direct child named name, or nil.
func (n *Node) Child(name string) *Node {
	if i, ok := n.childIdx[name]; ok {
		return n.Children[i]
	}
	return nil
}

// Path renders the absolute schema-node path from the module down to n.
func (n *Node) Path() string {
	if n == nil {
		return ""
	}
	if n.Parent == nil {
		return "/" + n.Name
	}
	return n.Parent.Path() + "/" + n.Name
}

// Find resolves a "/"-separated descendant path relative to n. A name
// not found among a node's direct children is looked up through its
// choice and case children, so those levels are transparent.
func (n *Node) Find(path string) *Node {
	if path == "" {
		return n
	}
	cur := n
	for _, part := range splitPath(path) {
		if part == "" || part == "." {
			continue
		}
		if part == ".." {
			if cur.Parent == nil {
				return nil
			}
			cur = cur.Parent
			continue
		}
		_, name := ast.SplitPrefix(part)
		next := cur.Child(name)
		if next == nil {
			// choice/case are transparent to data-tree paths.
			next = findThrough(cur, name)
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

func findThrough(n *Node, name string) *Node {
	for _, c := range n.Children {
		if c.Kind != KindChoice && c.Kind != KindCase {
			continue
		}
		if got := c.Child(name); got != nil {
			return got
		}
		if got := findThrough(c, name); got != nil {
			return got
		}
	}
	return nil
}

func splitPath(path string) []string {
	var parts []string
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '/' {
			parts = append(parts, path[start:i])
			start = i + 1
		}
	}
	return parts
}

// dup returns a shallow copy of n and its subtree, detached from any
// parent -- used when expanding a uses statement, since the same
// grouping may be instantiated at several places in the tree and each
// instantiation must resolve its own leafrefs/augments independently.
func (n *Node) dup() *Node {
	c := *n
	c.Parent = nil
	c.childIdx = map[string]int{}
	c.Children = nil
	c.AugmentedBy = append([]ast.Node(nil), n.AugmentedBy...)
	c.DeviatedBy = append([]ast.Node(nil), n.DeviatedBy...)
	for _, ch := range n.Children {
		c.addChild(ch.dup())
	}
	return &c
}

// propagateConfig inherits "config" from parent to every descendant that
// never stated it explicitly (RFC 7950 §7.21.1): a config-false ancestor
// makes everything beneath it config-false too, regardless of what its
// own "config" substatement (if any) would otherwise say.
func propagateConfig(n *Node, parent bool) {
	if !n.ConfigSet || !parent {
		n.Config = parent
	}
	for _, c := range n.Children {
		propagateConfig(c, n.Config)
	}
}

// sortedChildNames returns the children's names in alphabetical order,
// for deterministic printing; Children itself keeps schema order.
func (n *Node) sortedChildNames() []string {
	names := make([]string, len(n.Children))
	for i, c := range n.Children {
		names[i] = c.Name
	}
	sort.Strings(names)
	return names
}
