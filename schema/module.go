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

package schema

import (
	"fmt"
	"reflect"

	"github.com/yangforge/yangcore/ast"
)

// Module wraps one parsed module or submodule with the bookkeeping
// schema needs to resolve cross-module references: its own prefix, the
// modules its "import"s bind to local prefixes, and the submodules its
// "include"s pull in.
type Module struct {
	Decl     *ast.Module
	Prefix   string
	Imports  map[string]*Module // local prefix -> imported module
	Includes []*Module          // submodules folded into this module
	Root     *Node              // filled in by buildModuleTree

	pendingAugments []*ast.Augment // top-level (module-targeted) augments not yet resolved

	c *Compiler
}

func (m *Module) String() string { return m.Decl.Name }

// topTypedefs returns every typedef declared directly at module scope,
// across m and every submodule it includes.
func (m *Module) topTypedefs() []*ast.Typedef {
	td := append([]*ast.Typedef(nil), m.Decl.Typedef...)
	for _, inc := range m.Includes {
		td = append(td, inc.topTypedefs()...)
	}
	return td
}

func (m *Module) topGroupings() []*ast.Grouping {
	g := append([]*ast.Grouping(nil), m.Decl.Grouping...)
	for _, inc := range m.Includes {
		g = append(g, inc.topGroupings()...)
	}
	return g
}

func (m *Module) topIdentities() []*ast.Identity {
	ids := append([]*ast.Identity(nil), m.Decl.Identity...)
	for _, inc := range m.Includes {
		ids = append(ids, inc.topIdentities()...)
	}
	return ids
}

// topDataDefs returns the top-level data-definition-bearing fields of m,
// folding in every included submodule's top-level statements as if they
// were written directly in m -- schema's stand-in for the teacher's
// statement-level submodule merge (Entry.merge via "include"), done at
// the granularity schema actually needs (resolution + tree building)
// rather than by splicing ast nodes.
type topDataDefs struct {
	Container    []*ast.Container
	Leaf         []*ast.Leaf
	LeafList     []*ast.LeafList
	List         []*ast.List
	Choice       []*ast.Choice
	Anydata      []*ast.AnyData
	Anyxml       []*ast.AnyXML
	Uses         []*ast.Uses
	Augment      []*ast.Augment
	RPC          []*ast.RPC
	Notification []*ast.Notification
}

func (m *Module) dataDefs() topDataDefs {
	d := topDataDefs{
		Container: m.Decl.Container, Leaf: m.Decl.Leaf, LeafList: m.Decl.LeafList,
		List: m.Decl.List, Choice: m.Decl.Choice, Anydata: m.Decl.Anydata,
		Anyxml: m.Decl.Anyxml, Uses: m.Decl.Uses, Augment: m.Decl.Augment,
		RPC: m.Decl.RPC, Notification: m.Decl.Notification,
	}
	for _, inc := range m.Includes {
		id := inc.dataDefs()
		d.Container = append(d.Container, id.Container...)
		d.Leaf = append(d.Leaf, id.Leaf...)
		d.LeafList = append(d.LeafList, id.LeafList...)
		d.List = append(d.List, id.List...)
		d.Choice = append(d.Choice, id.Choice...)
		d.Anydata = append(d.Anydata, id.Anydata...)
		d.Anyxml = append(d.Anyxml, id.Anyxml...)
		d.Uses = append(d.Uses, id.Uses...)
		d.Augment = append(d.Augment, id.Augment...)
		d.RPC = append(d.RPC, id.RPC...)
		d.Notification = append(d.Notification, id.Notification...)
	}
	return d
}

// ResolveTypedef implements ytype.Resolver: walk from's ancestor chain
// (the nearest typedef wins), then fall through to module/submodule and
// imported-module scope, mirroring the teacher's types.go find().
func (m *Module) ResolveTypedef(from ast.Node, name string) (*ast.Typedef, error) {
	prefix, local := ast.SplitPrefix(name)
	if prefix != "" && prefix != m.Prefix {
		im, ok := m.Imports[prefix]
		if !ok {
			return nil, fmt.Errorf("no import bound to prefix %q", prefix)
		}
		return im.findOwnTypedef(local)
	}
	for n := from; n != nil; n = n.ParentNode() {
		for _, td := range typedefsOf(n) {
			if td.Name == local {
				return td, nil
			}
		}
	}
	return m.findOwnTypedef(local)
}

func (m *Module) findOwnTypedef(name string) (*ast.Typedef, error) {
	for _, td := range m.topTypedefs() {
		if td.Name == name {
			return td, nil
		}
	}
	return nil, fmt.Errorf("unknown typedef %q in module %s", name, m.Decl.Name)
}

// ResolveIdentityBase implements ytype.Resolver's identityref base hook.
func (m *Module) ResolveIdentityBase(from ast.Node, name string) (*ast.Identity, error) {
	return m.ResolveIdentity(from, name)
}

// ResolveIdentity implements identity.Resolver: resolve a (possibly
// prefixed) identity name from the point of view of "from", mirroring
// the teacher's findIdentityBase prefix switch.
func (m *Module) ResolveIdentity(from ast.Node, name string) (*ast.Identity, error) {
	prefix, local := ast.SplitPrefix(name)
	owner := m
	if root := ast.RootNode(from); root != nil {
		if om, ok := m.c.byDecl[root]; ok {
			owner = om
		}
	}
	if prefix != "" && prefix != owner.Prefix {
		im, ok := owner.Imports[prefix]
		if !ok {
			return nil, fmt.Errorf("no import bound to prefix %q", prefix)
		}
		owner = im
	}
	for _, id := range owner.topIdentities() {
		if id.Name == local {
			return id, nil
		}
	}
	return nil, fmt.Errorf("unknown identity %q in module %s", local, owner.Decl.Name)
}

// typedefsOf returns the typedefs declared directly on n, for whichever
// concrete ast type n is -- used while walking up the ancestor chain
// during typedef resolution, where only nearby-scope typedefs (not a
// whole module's) are visible.
func typedefsOf(n ast.Node) []*ast.Typedef {
	if td, ok := n.(ast.Typedefer); ok {
		return td.Typedefs()
	}
	return nil
}

// findGrouping locates the grouping named name visible from n: nearest
// ancestor scope first, then n's own module (and its submodules), then
// any module reached via a prefixed name's import -- grounded on the
// teacher's find.go FindGrouping, adapted to walk typed ast nodes
// instead of reflecting over a single untyped Node interface.
func (m *Module) findGrouping(from ast.Node, name string, seen map[*Module]bool) *ast.Grouping {
	prefix, local := ast.SplitPrefix(name)
	if prefix != "" && prefix != m.Prefix {
		im, ok := m.Imports[prefix]
		if !ok {
			return nil
		}
		if seen[im] {
			return nil
		}
		seen[im] = true
		return im.findGrouping(im.Decl, local, seen)
	}
	for n := from; n != nil; n = n.ParentNode() {
		for _, g := range groupingsOf(n) {
			if g.Name == local {
				return g
			}
		}
	}
	for _, g := range m.topGroupings() {
		if g.Name == local {
			return g
		}
	}
	return nil
}

func groupingsOf(n ast.Node) []*ast.Grouping {
	v := reflect.ValueOf(n)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return nil
	}
	v = v.Elem()
	f := v.FieldByName("Grouping")
	if !f.IsValid() {
		return nil
	}
	gs, _ := f.Interface().([]*ast.Grouping)
	return gs
}
