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
	"github.com/yangforge/yangcore/xpath"
	"github.com/yangforge/yangcore/ytype"
)

// applyAugments tries to resolve and merge every one of m's top-level
// (module-targeted) augment statements, returning the ones whose target
// could not yet be found -- the caller retries these against the
// rest of the module set until a pass makes no progress, mirroring the
// teacher's Modules.Process retry loop over Entry.Augment.
func applyAugments(m *Module) []*ast.Augment {
	var remaining []*ast.Augment
	for _, a := range m.pendingAugments {
		target := findAugmentTarget(m, a.Name)
		if target == nil {
			remaining = append(remaining, a)
			continue
		}
		b := &builder{m: m, expanding: map[*ast.Grouping]bool{}}
		b.mergeAugment(target, a, m)
	}
	return remaining
}

// findAugmentTarget resolves an augment's absolute schema-node path,
// which is rooted at some module's top level (not necessarily m's own,
// when the augment crosses modules) -- since Node.Find only walks
// descendants, the search tries m's own tree first, then every other
// compiled module, which is sufficient because augment target paths are
// always absolute.
func findAugmentTarget(m *Module, path string) *Node {
	if n := m.Root.Find(path); n != nil {
		return n
	}
	for _, om := range m.c.byName {
		if om == m || om.Root == nil {
			continue
		}
		if n := om.Root.Find(path); n != nil {
			return n
		}
	}
	return nil
}

// mergeAugment compiles a's substatements (in the augmenting module m's
// scope) and adds them as children of target, recording the augment
// statement on each new child's AugmentedBy so later deviation/printing
// passes can tell an augmented node from a natively declared one.
func (b *builder) mergeAugment(target *Node, a *ast.Augment, m *Module) {
	when := b.compileWhen(a.When)
	addChild := func(child *Node) {
		if when != nil {
			child.When = b.combineWhen(child.When, when)
		}
		child.AugmentedBy = append(child.AugmentedBy, a)
		target.addChild(child)
	}
	for _, c := range a.Container {
		addChild(b.compileContainer(c, m))
	}
	for _, l := range a.Leaf {
		addChild(b.compileLeaf(l, m))
	}
	for _, ll := range a.LeafList {
		addChild(b.compileLeafList(ll, m))
	}
	for _, l := range a.List {
		addChild(b.compileList(l, m))
	}
	for _, ch := range a.Choice {
		addChild(b.compileChoice(ch, m))
	}
	for _, c := range a.Case {
		addChild(b.compileCase(c, m))
	}
	for _, x := range a.Anydata {
		addChild(b.compileAnyData(x, m))
	}
	for _, x := range a.Anyxml {
		addChild(b.compileAnyXML(x, m))
	}
	for _, u := range a.Uses {
		tmp := newNode("", KindContainer, a)
		tmp.Module = m
		b.expandUses(tmp, u, m)
		for _, child := range tmp.Children {
			addChild(child)
		}
	}
	for _, ac := range a.Action {
		addChild(b.compileAction(ac, m))
	}
	for _, no := range a.Notification {
		addChild(b.compileNotification(no, m))
	}
}

// combineWhen combines an augmented node's own "when" (if any) with the
// augment statement's "when": both conditions must hold for the node to
// exist, so the merged form is their conjunction, recompiled as one
// expression since xpath.Expr carries no tree to graft onto.
func (b *builder) combineWhen(own, aug *xpath.Expr) *xpath.Expr {
	if own == nil {
		return aug
	}
	e, err := xpath.Compile("(" + own.Source + ") and (" + aug.Source + ")")
	if err != nil {
		b.errs = append(b.errs, err)
		return own
	}
	return e
}

// applyDeviations applies every "deviation" statement declared in m to
// its (possibly cross-module) target, returning any errors encountered.
// "not-supported" removes the target node outright; "add"/"replace"/
// "delete" adjust individual properties, per RFC 7950 §7.20.3.
func applyDeviations(m *Module) []error {
	var errs []error
	for _, d := range m.Decl.Deviation {
		target := findAugmentTarget(m, d.Name)
		if target == nil {
			errs = append(errs, fmt.Errorf("%s: deviation target %s not found", ast.Source(d), d.Name))
			continue
		}
		for _, dv := range d.Deviate {
			if err := applyDeviate(target, dv, m); err != nil {
				errs = append(errs, err)
				continue
			}
			target.DeviatedBy = append(target.DeviatedBy, d)
		}
	}
	return errs
}

func applyDeviate(target *Node, dv *ast.Deviate, m *Module) error {
	switch dv.Name {
	case "not-supported":
		if target.Parent != nil {
			target.Parent.removeChild(target.Name)
		}
		return nil
	case "add", "replace":
		if dv.Type != nil {
			y, err := ytype.Compile(dv.Type, m)
			if err != nil {
				return err
			}
			target.Type = y
		}
		if dv.Units != nil {
			target.Units = dv.Units.Name
		}
		if dv.Default != nil {
			target.Default = dv.Default.Name
		}
		if dv.Config != nil {
			target.Config = dv.Config.Name == "true"
			target.ConfigSet = true
		}
		if dv.Mandatory != nil {
			target.Mandatory = dv.Mandatory.Name == "true"
		}
		if dv.MinElements != nil && target.ListAttr != nil {
			target.MinElements = atoiOrZero(dv.MinElements.Name)
		}
		if dv.MaxElements != nil && target.ListAttr != nil && dv.MaxElements.Name != "unbounded" {
			target.MaxElements = atoiOrZero(dv.MaxElements.Name)
		}
		if len(dv.Must) > 0 {
			b := &builder{m: m, expanding: map[*ast.Grouping]bool{}}
			target.Must = append(target.Must, b.compileMust(dv.Must)...)
		}
		return nil
	case "delete":
		if dv.Default != nil && target.Default == dv.Default.Name {
			target.Default = ""
		}
		if len(dv.Must) > 0 && len(target.Must) > 0 {
			target.Must = nil
		}
		return nil
	}
	return fmt.Errorf("%s: unknown deviate kind %q", ast.Source(dv), dv.Name)
}

func atoiOrZero(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// removeChild deletes the child named name from n, used by "deviate
// not-supported".
func (n *Node) removeChild(name string) {
	i, ok := n.childIdx[name]
	if !ok {
		return
	}
	n.Children = append(n.Children[:i], n.Children[i+1:]...)
	delete(n.childIdx, name)
	for nm, idx := range n.childIdx {
		if idx > i {
			n.childIdx[nm] = idx - 1
		}
	}
}
