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

	"github.com/yangforge/yangcore/ast"
	"github.com/yangforge/yangcore/identity"
	"github.com/yangforge/yangcore/plugin"
)

// Compiler accumulates parsed modules and compiles them together into
// schema trees, resolving import/include, typedefs, identities,
// groupings, augments and deviations across the whole set -- mirroring
// the teacher's Modules type (modules.go) but returning an explicit
// []*Module/[]error pair instead of mutating global dictionaries.
type Compiler struct {
	byName map[string]*Module // modules, by module name
	subs   map[string]*Module // submodules, by submodule name
	byDecl map[*ast.Module]*Module

	identities *identity.DAG
	registry   *plugin.Registry
}

// SetRegistry wires in the extension registry Compile consults for
// unknown extension statements (mount-point's compile hook is the one
// concrete consumer, spec.md §4.5). Without a registry, unknown
// extensions are parsed but never invoked.
func (c *Compiler) SetRegistry(r *plugin.Registry) { c.registry = r }

// NewCompiler returns an empty Compiler.
func NewCompiler() *Compiler {
	return &Compiler{
		byName: map[string]*Module{},
		subs:   map[string]*Module{},
		byDecl: map[*ast.Module]*Module{},
	}
}

// AddModule registers a parsed module or submodule for compilation. It
// must be called for n and everything it transitively imports/includes
// before Compile.
func (c *Compiler) AddModule(n *ast.Module) error {
	m := &Module{Decl: n, Prefix: n.GetPrefix(), Imports: map[string]*Module{}, c: c}
	c.byDecl[n] = m
	if n.Kind() == "submodule" {
		if _, ok := c.subs[n.Name]; ok {
			return fmt.Errorf("duplicate submodule %s", n.Name)
		}
		c.subs[n.Name] = m
		return nil
	}
	if _, ok := c.byName[n.Name]; ok {
		return fmt.Errorf("duplicate module %s", n.Name)
	}
	c.byName[n.Name] = m
	return nil
}

// Compile resolves every registered module's import/include statements,
// builds the identity DAG, builds each module's schema tree, and applies
// augments and deviations across the whole set. It returns the compiled
// top-level modules (submodules are folded into the module that
// includes them, so they are not returned separately).
func (c *Compiler) Compile() ([]*Module, []error) {
	var errs []error

	for _, m := range c.allModules() {
		if err := c.linkImportsIncludes(m); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	c.identities = identity.NewDAG()
	idOwner := map[*ast.Identity]*Module{}
	for _, m := range c.byName {
		for _, id := range m.topIdentities() {
			c.identities.Add(m.Decl.Name, id)
			idOwner[id] = m
		}
	}
	if err := c.identities.Link(identityResolverFunc(func(from ast.Node, name string) (*ast.Identity, error) {
		owner := idOwner[fromIdentity(from)]
		if owner == nil {
			owner = c.byDecl[ast.RootNode(from)]
		}
		if owner == nil {
			return nil, fmt.Errorf("cannot determine owning module for %v", from)
		}
		return owner.ResolveIdentity(from, name)
	})); err != nil {
		errs = append(errs, err)
	}

	var mods []*Module
	for _, m := range c.byName {
		mods = append(mods, m)
	}

	for _, m := range mods {
		root, berrs := buildModuleTree(m)
		m.Root = root
		errs = append(errs, berrs...)
	}
	if len(errs) > 0 {
		return mods, errs
	}

	pending := append([]*Module(nil), mods...)
	for len(pending) > 0 {
		progressed := false
		var next []*Module
		for _, m := range pending {
			remaining := applyAugments(m)
			if len(remaining) == 0 {
				m.pendingAugments = nil
				progressed = true
				continue
			}
			if len(remaining) < len(m.pendingAugments) {
				progressed = true
			}
			m.pendingAugments = remaining
			next = append(next, m)
		}
		pending = next
		if !progressed {
			break
		}
	}
	for _, m := range pending {
		for _, a := range m.pendingAugments {
			errs = append(errs, fmt.Errorf("%s: augment target %s not found", ast.Source(a), a.Name))
		}
	}

	for _, m := range mods {
		propagateConfig(m.Root, true)
	}

	for _, m := range mods {
		errs = append(errs, applyDeviations(m)...)
	}
	for _, m := range mods {
		propagateConfig(m.Root, true)
	}

	if c.registry != nil {
		for _, m := range mods {
			applyExtensions(c.registry, m.Root)
		}
	}

	return mods, errs
}

// applyExtensions walks n's subtree invoking every registered
// plugin.Compiler whose keyword appears in a node's Decl.Exts(), storing
// the returned payload on that node. The node carrying the extension
// statement is passed to the compile hook as its plugin.SchemaNode.
func applyExtensions(r *plugin.Registry, n *Node) {
	if n.Decl != nil {
		for _, ext := range n.Decl.Exts() {
			reg := r.Lookup(ext.Keyword)
			compiler, ok := reg.(plugin.Compiler)
			if !ok {
				continue
			}
			payload, err := compiler.Compile(ext, n)
			if err != nil {
				n.Errors = append(n.Errors, fmt.Errorf("%s: extension %s: %v", n.Path(), ext.Keyword, err))
				continue
			}
			if n.ExtPayload == nil {
				n.ExtPayload = map[string]interface{}{}
			}
			n.ExtPayload[ext.Keyword] = payload
		}
	}
	for _, c := range n.Children {
		applyExtensions(r, c)
	}
}

// Identities returns the identity DAG built during Compile, for callers
// (package data's identityref validation) that need to turn a leaf's
// type.IdentityBase back into a DAG node.
func (c *Compiler) Identities() *identity.DAG { return c.identities }

func (c *Compiler) allModules() []*Module {
	var all []*Module
	for _, m := range c.byName {
		all = append(all, m)
	}
	for _, m := range c.subs {
		all = append(all, m)
	}
	return all
}

// linkImportsIncludes resolves m's import and include statements to the
// *Module they name, populating m.Imports (keyed by local prefix) and
// m.Includes.
func (c *Compiler) linkImportsIncludes(m *Module) error {
	for _, imp := range m.Decl.Import {
		target, ok := c.byName[imp.Name]
		if !ok {
			return fmt.Errorf("%s: no such module: %s", ast.Source(imp), imp.Name)
		}
		prefix := imp.Name
		if imp.Prefix != nil {
			prefix = imp.Prefix.Name
		}
		m.Imports[prefix] = target
	}
	for _, inc := range m.Decl.Include {
		target, ok := c.subs[inc.Name]
		if !ok {
			return fmt.Errorf("%s: no such submodule: %s", ast.Source(inc), inc.Name)
		}
		m.Includes = append(m.Includes, target)
	}
	return nil
}

type identityResolverFunc func(from ast.Node, name string) (*ast.Identity, error)

func (f identityResolverFunc) ResolveIdentity(from ast.Node, name string) (*ast.Identity, error) {
	return f(from, name)
}

// fromIdentity narrows an ast.Node back to the *ast.Identity it
// annotates a base reference on, by construction always an *ast.Identity
// in our one caller (identity.DAG.Link passes n.Decl, which is the
// identity statement itself).
func fromIdentity(n ast.Node) *ast.Identity {
	id, _ := n.(*ast.Identity)
	return id
}
