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
	"strconv"
	"strings"

	"github.com/yangforge/yangcore/ast"
	"github.com/yangforge/yangcore/xpath"
	"github.com/yangforge/yangcore/ytype"
)

// builder carries the state threaded through one module's tree
// construction: the owning Module (for typedef/grouping/identity
// resolution) and an in-flight set of groupings currently being
// expanded, to catch a grouping that (directly or through nested uses)
// contains a uses of itself.
type builder struct {
	m         *Module
	expanding map[*ast.Grouping]bool
	errs      []error
}

// buildModuleTree compiles m's top-level data definitions into a
// synthetic root Node (one per module, never itself part of the data
// tree -- mirrors the teacher's practice of treating the module Entry as
// directory-like but without a Kind of its own).
func buildModuleTree(m *Module) (*Node, []error) {
	b := &builder{m: m, expanding: map[*ast.Grouping]bool{}}
	root := newNode(m.Decl.Name, KindContainer, m.Decl)
	root.Config = true
	root.ConfigSet = true
	root.Module = m

	dd := m.dataDefs()
	for _, c := range dd.Container {
		root.addChild(b.compileContainer(c, m))
	}
	for _, l := range dd.Leaf {
		root.addChild(b.compileLeaf(l, m))
	}
	for _, ll := range dd.LeafList {
		root.addChild(b.compileLeafList(ll, m))
	}
	for _, l := range dd.List {
		root.addChild(b.compileList(l, m))
	}
	for _, ch := range dd.Choice {
		root.addChild(b.compileChoice(ch, m))
	}
	for _, a := range dd.Anydata {
		root.addChild(b.compileAnyData(a, m))
	}
	for _, a := range dd.Anyxml {
		root.addChild(b.compileAnyXML(a, m))
	}
	for _, u := range dd.Uses {
		b.expandUses(root, u, m)
	}
	for _, r := range dd.RPC {
		root.addChild(b.compileRPC(r, m))
	}
	for _, n := range dd.Notification {
		root.addChild(b.compileNotification(n, m))
	}
	m.pendingAugments = append(m.pendingAugments, dd.Augment...)

	root.Errors = append(root.Errors, b.errs...)
	return root, b.errs
}

func (b *builder) errorf(decl ast.Node, format string, args ...interface{}) {
	b.errs = append(b.errs, fmt.Errorf("%s: %s", ast.Source(decl), fmt.Sprintf(format, args...)))
}

// compileType compiles a leaf/leaf-list's type via ytype, reporting (not
// panicking on) a resolution failure so the rest of the tree still
// builds.
func (b *builder) compileType(t *ast.Type) *ytype.Type {
	y, err := ytype.Compile(t, b.m)
	if err != nil {
		b.errs = append(b.errs, err)
		return nil
	}
	return y
}

func (b *builder) compileWhen(w *ast.When) *xpath.Expr {
	if w == nil {
		return nil
	}
	e, err := xpath.Compile(w.Name)
	if err != nil {
		b.errorf(w, "bad when expression: %v", err)
		return nil
	}
	return e
}

func (b *builder) compileMust(musts []*ast.Must) []*xpath.Expr {
	var out []*xpath.Expr
	for _, mu := range musts {
		e, err := xpath.Compile(mu.Name)
		if err != nil {
			b.errorf(mu, "bad must expression: %v", err)
			continue
		}
		out = append(out, e)
	}
	return out
}

func configOf(v *ast.Value, parent bool, parentSet bool) (bool, bool) {
	if v == nil {
		return parent, parentSet
	}
	return v.Name == "true", true
}

func (b *builder) compileContainer(c *ast.Container, m *Module) *Node {
	n := newNode(c.Name, KindContainer, c)
	n.Module = m
	n.When = b.compileWhen(c.When)
	n.Must = b.compileMust(c.Must)
	if c.Presence != nil {
		n.Presence = c.Presence.Name
	}
	if c.Description != nil {
		n.Description = c.Description.Name
	}
	if c.Reference != nil {
		n.Reference = c.Reference.Name
	}
	if c.Status != nil {
		n.Status = c.Status.Name
	}
	n.Config, n.ConfigSet = configOf(c.Config, true, false)

	for _, cc := range c.Container {
		n.addChild(b.compileContainer(cc, m))
	}
	for _, l := range c.Leaf {
		n.addChild(b.compileLeaf(l, m))
	}
	for _, ll := range c.LeafList {
		n.addChild(b.compileLeafList(ll, m))
	}
	for _, l := range c.List {
		n.addChild(b.compileList(l, m))
	}
	for _, ch := range c.Choice {
		n.addChild(b.compileChoice(ch, m))
	}
	for _, a := range c.Anydata {
		n.addChild(b.compileAnyData(a, m))
	}
	for _, a := range c.Anyxml {
		n.addChild(b.compileAnyXML(a, m))
	}
	for _, u := range c.Uses {
		b.expandUses(n, u, m)
	}
	for _, a := range c.Action {
		n.addChild(b.compileAction(a, m))
	}
	for _, no := range c.Notification {
		n.addChild(b.compileNotification(no, m))
	}
	return n
}

func (b *builder) compileLeaf(l *ast.Leaf, m *Module) *Node {
	n := newNode(l.Name, KindLeaf, l)
	n.Module = m
	n.When = b.compileWhen(l.When)
	n.Must = b.compileMust(l.Must)
	n.Type = b.compileType(l.Type)
	if l.Units != nil {
		n.Units = l.Units.Name
	}
	if l.Default != nil {
		n.Default = l.Default.Name
	}
	if l.Description != nil {
		n.Description = l.Description.Name
	}
	if l.Reference != nil {
		n.Reference = l.Reference.Name
	}
	if l.Status != nil {
		n.Status = l.Status.Name
	}
	n.Config, n.ConfigSet = configOf(l.Config, true, false)
	n.Mandatory = l.Mandatory != nil && l.Mandatory.Name == "true"
	return n
}

func (b *builder) compileLeafList(ll *ast.LeafList, m *Module) *Node {
	n := newNode(ll.Name, KindLeafList, ll)
	n.Module = m
	n.When = b.compileWhen(ll.When)
	n.Must = b.compileMust(ll.Must)
	n.Type = b.compileType(ll.Type)
	if ll.Units != nil {
		n.Units = ll.Units.Name
	}
	for _, d := range ll.Default {
		n.Defaults = append(n.Defaults, d.Name)
	}
	if ll.Description != nil {
		n.Description = ll.Description.Name
	}
	if ll.Reference != nil {
		n.Reference = ll.Reference.Name
	}
	if ll.Status != nil {
		n.Status = ll.Status.Name
	}
	n.Config, n.ConfigSet = configOf(ll.Config, true, false)
	n.ListAttr = &ListAttr{OrderedBy: valueOrEmpty(ll.OrderedBy)}
	if ll.MinElements != nil {
		n.MinElements, _ = strconv.Atoi(ll.MinElements.Name)
	}
	if ll.MaxElements != nil && ll.MaxElements.Name != "unbounded" {
		n.MaxElements, _ = strconv.Atoi(ll.MaxElements.Name)
	}
	return n
}

func (b *builder) compileList(l *ast.List, m *Module) *Node {
	n := newNode(l.Name, KindList, l)
	n.Module = m
	n.Must = b.compileMust(l.Must)
	n.When = b.compileWhen(l.When)
	if l.Description != nil {
		n.Description = l.Description.Name
	}
	if l.Reference != nil {
		n.Reference = l.Reference.Name
	}
	if l.Status != nil {
		n.Status = l.Status.Name
	}
	n.Config, n.ConfigSet = configOf(l.Config, true, false)
	n.ListAttr = &ListAttr{OrderedBy: valueOrEmpty(l.OrderedBy)}
	if l.Key != nil {
		n.ListAttr.Key = strings.Fields(l.Key.Name)
	}
	for _, u := range l.Unique {
		n.ListAttr.Unique = append(n.ListAttr.Unique, strings.Fields(u.Name))
	}
	if l.MinElements != nil {
		n.MinElements, _ = strconv.Atoi(l.MinElements.Name)
	}
	if l.MaxElements != nil && l.MaxElements.Name != "unbounded" {
		n.MaxElements, _ = strconv.Atoi(l.MaxElements.Name)
	}

	for _, cc := range l.Container {
		n.addChild(b.compileContainer(cc, m))
	}
	for _, lf := range l.Leaf {
		n.addChild(b.compileLeaf(lf, m))
	}
	for _, ll := range l.LeafList {
		n.addChild(b.compileLeafList(ll, m))
	}
	for _, ll := range l.List {
		n.addChild(b.compileList(ll, m))
	}
	for _, ch := range l.Choice {
		n.addChild(b.compileChoice(ch, m))
	}
	for _, a := range l.Anydata {
		n.addChild(b.compileAnyData(a, m))
	}
	for _, a := range l.Anyxml {
		n.addChild(b.compileAnyXML(a, m))
	}
	for _, u := range l.Uses {
		b.expandUses(n, u, m)
	}
	for _, a := range l.Action {
		n.addChild(b.compileAction(a, m))
	}
	for _, no := range l.Notification {
		n.addChild(b.compileNotification(no, m))
	}

	for _, key := range n.ListAttr.Key {
		if n.Child(key) == nil {
			b.errorf(l, "key %q is not a child leaf of list %s", key, l.Name)
		}
	}
	return n
}

func valueOrEmpty(v *ast.Value) string {
	if v == nil {
		return "system"
	}
	return v.Name
}

func (b *builder) compileChoice(ch *ast.Choice, m *Module) *Node {
	n := newNode(ch.Name, KindChoice, ch)
	n.Module = m
	n.When = b.compileWhen(ch.When)
	if ch.Default != nil {
		n.Default = ch.Default.Name
	}
	if ch.Description != nil {
		n.Description = ch.Description.Name
	}
	if ch.Reference != nil {
		n.Reference = ch.Reference.Name
	}
	if ch.Status != nil {
		n.Status = ch.Status.Name
	}
	n.Mandatory = ch.Mandatory != nil && ch.Mandatory.Name == "true"
	n.Config, n.ConfigSet = configOf(ch.Config, true, false)

	for _, c := range ch.Case {
		n.addChild(b.compileCase(c, m))
	}
	// A short-form case: a bare data-definition statement directly
	// under the choice is wrapped in an implicit case node bearing its
	// own name (RFC 7950 §7.9.2).
	for _, cc := range ch.Container {
		n.addChild(b.implicitCase(cc.Name, cc, b.compileContainer(cc, m)))
	}
	for _, l := range ch.Leaf {
		n.addChild(b.implicitCase(l.Name, l, b.compileLeaf(l, m)))
	}
	for _, ll := range ch.LeafList {
		n.addChild(b.implicitCase(ll.Name, ll, b.compileLeafList(ll, m)))
	}
	for _, l := range ch.List {
		n.addChild(b.implicitCase(l.Name, l, b.compileList(l, m)))
	}
	for _, a := range ch.Anydata {
		n.addChild(b.implicitCase(a.Name, a, b.compileAnyData(a, m)))
	}
	for _, a := range ch.Anyxml {
		n.addChild(b.implicitCase(a.Name, a, b.compileAnyXML(a, m)))
	}
	return n
}

func (b *builder) implicitCase(name string, decl ast.Node, child *Node) *Node {
	c := newNode(name, KindCase, decl)
	c.Module = child.Module
	c.addChild(child)
	return c
}

func (b *builder) compileCase(c *ast.Case, m *Module) *Node {
	n := newNode(c.Name, KindCase, c)
	n.Module = m
	n.When = b.compileWhen(c.When)
	if c.Description != nil {
		n.Description = c.Description.Name
	}
	if c.Reference != nil {
		n.Reference = c.Reference.Name
	}
	if c.Status != nil {
		n.Status = c.Status.Name
	}
	for _, cc := range c.Container {
		n.addChild(b.compileContainer(cc, m))
	}
	for _, l := range c.Leaf {
		n.addChild(b.compileLeaf(l, m))
	}
	for _, ll := range c.LeafList {
		n.addChild(b.compileLeafList(ll, m))
	}
	for _, l := range c.List {
		n.addChild(b.compileList(l, m))
	}
	for _, ch := range c.Choice {
		n.addChild(b.compileChoice(ch, m))
	}
	for _, a := range c.Anydata {
		n.addChild(b.compileAnyData(a, m))
	}
	for _, a := range c.Anyxml {
		n.addChild(b.compileAnyXML(a, m))
	}
	for _, u := range c.Uses {
		b.expandUses(n, u, m)
	}
	return n
}

func (b *builder) compileAnyData(a *ast.AnyData, m *Module) *Node {
	n := newNode(a.Name, KindAnyData, a)
	n.Module = m
	n.When = b.compileWhen(a.When)
	n.Must = b.compileMust(a.Must)
	if a.Description != nil {
		n.Description = a.Description.Name
	}
	n.Config, n.ConfigSet = configOf(a.Config, true, false)
	n.Mandatory = a.Mandatory != nil && a.Mandatory.Name == "true"
	return n
}

func (b *builder) compileAnyXML(a *ast.AnyXML, m *Module) *Node {
	n := newNode(a.Name, KindAnyXML, a)
	n.Module = m
	n.When = b.compileWhen(a.When)
	n.Must = b.compileMust(a.Must)
	if a.Description != nil {
		n.Description = a.Description.Name
	}
	n.Config, n.ConfigSet = configOf(a.Config, true, false)
	n.Mandatory = a.Mandatory != nil && a.Mandatory.Name == "true"
	return n
}

func (b *builder) compileRPC(r *ast.RPC, m *Module) *Node {
	n := newNode(r.Name, KindRPC, r)
	n.Module = m
	if r.Description != nil {
		n.Description = r.Description.Name
	}
	if r.Input != nil {
		n.addChild(b.compileInput(r.Input, m))
	}
	if r.Output != nil {
		n.addChild(b.compileOutput(r.Output, m))
	}
	return n
}

func (b *builder) compileAction(a *ast.Action, m *Module) *Node {
	n := newNode(a.Name, KindAction, a)
	n.Module = m
	if a.Description != nil {
		n.Description = a.Description.Name
	}
	if a.Input != nil {
		n.addChild(b.compileInput(a.Input, m))
	}
	if a.Output != nil {
		n.addChild(b.compileOutput(a.Output, m))
	}
	return n
}

func (b *builder) compileInput(i *ast.Input, m *Module) *Node {
	n := newNode("input", KindInput, i)
	n.Module = m
	n.Config = true
	for _, c := range i.Container {
		n.addChild(b.compileContainer(c, m))
	}
	for _, l := range i.Leaf {
		n.addChild(b.compileLeaf(l, m))
	}
	for _, ll := range i.LeafList {
		n.addChild(b.compileLeafList(ll, m))
	}
	for _, l := range i.List {
		n.addChild(b.compileList(l, m))
	}
	for _, ch := range i.Choice {
		n.addChild(b.compileChoice(ch, m))
	}
	for _, a := range i.Anydata {
		n.addChild(b.compileAnyData(a, m))
	}
	for _, a := range i.Anyxml {
		n.addChild(b.compileAnyXML(a, m))
	}
	for _, u := range i.Uses {
		b.expandUses(n, u, m)
	}
	return n
}

func (b *builder) compileOutput(o *ast.Output, m *Module) *Node {
	n := newNode("output", KindOutput, o)
	n.Module = m
	n.Config = true
	for _, c := range o.Container {
		n.addChild(b.compileContainer(c, m))
	}
	for _, l := range o.Leaf {
		n.addChild(b.compileLeaf(l, m))
	}
	for _, ll := range o.LeafList {
		n.addChild(b.compileLeafList(ll, m))
	}
	for _, l := range o.List {
		n.addChild(b.compileList(l, m))
	}
	for _, ch := range o.Choice {
		n.addChild(b.compileChoice(ch, m))
	}
	for _, a := range o.Anydata {
		n.addChild(b.compileAnyData(a, m))
	}
	for _, a := range o.Anyxml {
		n.addChild(b.compileAnyXML(a, m))
	}
	for _, u := range o.Uses {
		b.expandUses(n, u, m)
	}
	return n
}

func (b *builder) compileNotification(no *ast.Notification, m *Module) *Node {
	n := newNode(no.Name, KindNotification, no)
	n.Module = m
	if no.Description != nil {
		n.Description = no.Description.Name
	}
	for _, c := range no.Container {
		n.addChild(b.compileContainer(c, m))
	}
	for _, l := range no.Leaf {
		n.addChild(b.compileLeaf(l, m))
	}
	for _, ll := range no.LeafList {
		n.addChild(b.compileLeafList(ll, m))
	}
	for _, l := range no.List {
		n.addChild(b.compileList(l, m))
	}
	for _, ch := range no.Choice {
		n.addChild(b.compileChoice(ch, m))
	}
	for _, a := range no.Anydata {
		n.addChild(b.compileAnyData(a, m))
	}
	for _, a := range no.Anyxml {
		n.addChild(b.compileAnyXML(a, m))
	}
	for _, u := range no.Uses {
		b.expandUses(n, u, m)
	}
	return n
}

// expandUses instantiates the grouping named by u as children of parent,
// applying u's refine and (nested) augment statements to the copy.
// The grouping is compiled afresh for every uses statement, and each
// compiled child is dup()'d before it is attached, so no two use sites
// share a node.
func (b *builder) expandUses(parent *Node, u *ast.Uses, m *Module) {
	g := m.findGrouping(u, u.Name, map[*Module]bool{})
	if g == nil {
		b.errorf(u, "unknown grouping %s", u.Name)
		return
	}
	if b.expanding[g] {
		b.errorf(u, "grouping %s uses itself, directly or indirectly", u.Name)
		return
	}
	b.expanding[g] = true
	tmp := newNode("", KindContainer, g)
	tmp.Module = m
	for _, c := range g.Container {
		tmp.addChild(b.compileContainer(c, m))
	}
	for _, l := range g.Leaf {
		tmp.addChild(b.compileLeaf(l, m))
	}
	for _, ll := range g.LeafList {
		tmp.addChild(b.compileLeafList(ll, m))
	}
	for _, l := range g.List {
		tmp.addChild(b.compileList(l, m))
	}
	for _, ch := range g.Choice {
		tmp.addChild(b.compileChoice(ch, m))
	}
	for _, a := range g.Anydata {
		tmp.addChild(b.compileAnyData(a, m))
	}
	for _, a := range g.Anyxml {
		tmp.addChild(b.compileAnyXML(a, m))
	}
	for _, nu := range g.Uses {
		b.expandUses(tmp, nu, m)
	}
	for _, a := range g.Action {
		tmp.addChild(b.compileAction(a, m))
	}
	for _, no := range g.Notification {
		tmp.addChild(b.compileNotification(no, m))
	}
	delete(b.expanding, g)

	for _, child := range tmp.Children {
		cp := child.dup()
		b.applyRefines(cp, u.Refine)
		parent.addChild(cp)
	}

	for _, a := range u.Augment {
		target := resolveRelativeAugment(parent, a)
		if target == nil {
			b.errorf(a, "augment target %s (within uses %s) not found", a.Name, u.Name)
			continue
		}
		b.mergeAugment(target, a, m)
	}
}

// applyRefines applies each refine statement whose target path starts
// at n (one grouping-instantiated child of the uses) to the node that
// path names within n's subtree.
func (b *builder) applyRefines(n *Node, refines []*ast.Refine) {
	for _, r := range refines {
		first, rest := r.Name, ""
		if i := strings.IndexByte(r.Name, '/'); i >= 0 {
			first, rest = r.Name[:i], r.Name[i+1:]
		}
		if _, local := ast.SplitPrefix(first); local != n.Name {
			continue
		}
		target := n.Find(rest)
		if target == nil {
			continue
		}
		if r.Description != nil {
			target.Description = r.Description.Name
		}
		if r.Default != nil {
			target.Default = r.Default.Name
		}
		if r.Config != nil {
			target.Config, target.ConfigSet = configOf(r.Config, target.Config, target.ConfigSet)
		}
		if r.Mandatory != nil {
			target.Mandatory = r.Mandatory.Name == "true"
		}
		if r.Presence != nil {
			target.Presence = r.Presence.Name
		}
		if r.MinElements != nil && target.ListAttr != nil {
			target.MinElements, _ = strconv.Atoi(r.MinElements.Name)
		}
		if r.MaxElements != nil && target.ListAttr != nil && r.MaxElements.Name != "unbounded" {
			target.MaxElements, _ = strconv.Atoi(r.MaxElements.Name)
		}
		if len(r.Must) > 0 {
			target.Must = append(target.Must, b.compileMust(r.Must)...)
		}
	}
}

// resolveRelativeAugment resolves an augment statement nested inside a
// uses statement, whose path is relative to the node the uses expanded
// into (RFC 7950 §7.17).
func resolveRelativeAugment(within *Node, a *ast.Augment) *Node {
	return within.Find(a.Name)
}
