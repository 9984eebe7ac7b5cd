// Copyright 2016 Google Inc.
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

// Package identity materializes YANG identity statements (spec.md §4.4)
// into a DAG -- one node per identity, linked to its declared bases --
// and answers "derived-from-or-self" queries over it.
package identity

import (
	"fmt"

	"github.com/yangforge/yangcore/ast"
)

// Identity is one DAG node: an identity statement plus its resolved
// bases and the identities declared to derive from it.
type Identity struct {
	Decl    *ast.Identity
	Name    string // "modulename:identityname"
	Bases   []*Identity
	Derived []*Identity
}

// Resolver resolves an identity's base argument (possibly prefixed) to
// the *ast.Identity it names, from the point of view of the declaring
// node -- schema implements this over the compiled module graph.
type Resolver interface {
	ResolveIdentity(from ast.Node, name string) (*ast.Identity, error)
}

// DAG is the set of every identity known to a compiled schema.
type DAG struct {
	byDecl map[*ast.Identity]*Identity
	byName map[string]*Identity
}

// NewDAG returns an empty DAG.
func NewDAG() *DAG {
	return &DAG{byDecl: map[*ast.Identity]*Identity{}, byName: map[string]*Identity{}}
}

// Add registers decl, declared in module moduleName, as a DAG node. It
// must be called for every identity before Link.
func (d *DAG) Add(moduleName string, decl *ast.Identity) *Identity {
	name := moduleName + ":" + decl.Name
	n := &Identity{Decl: decl, Name: name}
	d.byDecl[decl] = n
	d.byName[name] = n
	return n
}

// Lookup returns the node for the prefixed name "module:identity", or
// (nil, false) if unknown.
func (d *DAG) Lookup(name string) (*Identity, bool) {
	n, ok := d.byName[name]
	return n, ok
}

// ByDecl returns the node registered for decl, or (nil, false) if decl
// was never added to this DAG -- used at data-validation time to turn
// an identityref type's *ast.Identity base back into the DAG node
// DerivedFromOrSelf needs.
func (d *DAG) ByDecl(decl *ast.Identity) (*Identity, bool) {
	n, ok := d.byDecl[decl]
	return n, ok
}

// Link resolves every identity's declared bases (there may be more than
// one in YANG 1.1) via r, wiring Bases/Derived and detecting both
// unresolvable bases and circular derivation.
func (d *DAG) Link(r Resolver) error {
	for _, n := range d.byDecl {
		for _, b := range n.Decl.Base {
			baseDecl, err := r.ResolveIdentity(n.Decl, b.Name)
			if err != nil {
				return fmt.Errorf("%s: identity %s: %v", ast.Source(n.Decl), n.Name, err)
			}
			base, ok := d.byDecl[baseDecl]
			if !ok {
				return fmt.Errorf("%s: identity %s: base %s was not registered in this DAG", ast.Source(n.Decl), n.Name, b.Name)
			}
			n.Bases = append(n.Bases, base)
			base.Derived = append(base.Derived, n)
		}
	}
	for _, n := range d.byDecl {
		if err := checkAcyclic(n, map[*Identity]bool{}); err != nil {
			return err
		}
	}
	return nil
}

func checkAcyclic(n *Identity, visiting map[*Identity]bool) error {
	if visiting[n] {
		return fmt.Errorf("identity %s: circular base chain", n.Name)
	}
	visiting[n] = true
	for _, b := range n.Bases {
		if err := checkAcyclic(b, visiting); err != nil {
			return err
		}
	}
	delete(visiting, n)
	return nil
}

// DerivedFromOrSelf reports whether i is base or derives from base,
// directly or transitively -- the check an identityref value (spec.md
// §4.3, §4.6) must pass against its type's declared base.
func (i *Identity) DerivedFromOrSelf(base *Identity) bool {
	if i == base {
		return true
	}
	for _, b := range i.Bases {
		if b.DerivedFromOrSelf(base) {
			return true
		}
	}
	return false
}

// IsDerivedFrom is DerivedFromOrSelf excluding the identity itself.
func (i *Identity) IsDerivedFrom(base *Identity) bool {
	for _, b := range i.Bases {
		if b.DerivedFromOrSelf(base) {
			return true
		}
	}
	return false
}

// AllDerived returns every identity that derives from i, directly or
// transitively, including i itself -- the candidate set an identityref
// leaf's value must come from.
func (i *Identity) AllDerived() []*Identity {
	var out []*Identity
	seen := map[*Identity]bool{}
	var walk func(*Identity)
	walk = func(n *Identity) {
		if seen[n] {
			return
		}
		seen[n] = true
		out = append(out, n)
		for _, ch := range n.Derived {
			walk(ch)
		}
	}
	walk(i)
	return out
}
