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

package data

import (
	"fmt"

	"github.com/yangforge/yangcore/xpath"
)

// evalWhen implements pass B's "when" half, top-down (a parent is
// evaluated before its children, not bottom-up): a node whose
// schema carries a "when" that evaluates false is pruned (removed from
// the effective tree, spec.md §4.6) before descending further, since a
// pruned ancestor prunes its whole subtree regardless of its children's
// own "when" results. parentAlive carries whether every ancestor's
// "when" (if any) already evaluated true.
func evalWhen(n *Node, parentAlive bool) {
	alive := parentAlive
	if alive && n.Schema != nil && n.Schema.When != nil {
		alive = evalWhenMemo(n, n.Schema.When)
	}
	n.pruned = !alive
	for _, c := range n.Children {
		evalWhen(c, alive)
	}
}

// evalWhenMemo evaluates expr at n. Each data node is visited exactly
// once per Validate call, so a "when" shared (by pointer) across
// siblings from the same grouping expansion is still only evaluated
// once per distinct context node here; no cross-node cache is needed.
func evalWhenMemo(n *Node, expr *xpath.Expr) bool {
	r, err := xpath.Eval(expr, &xpath.EvalContext{Context: n, Current: n})
	if err != nil {
		return false
	}
	return r.Bool()
}

// evalMust implements pass B's "must" half, top-down over the
// post-pruning tree: a pruned node's must constraints do not run
// (spec.md invariant 5 — no must inside a when-false subtree
// contributes an error).
func evalMust(n *Node) []error {
	var errs []error
	if n.pruned {
		return errs
	}
	if n.Schema != nil {
		for _, m := range n.Schema.Must {
			r, err := xpath.Eval(m, &xpath.EvalContext{Context: n, Current: n})
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: must: %v", n.Path(), err))
				continue
			}
			if !r.Bool() {
				errs = append(errs, fmt.Errorf("%s: must %q failed", n.Path(), m.Source))
			}
		}
	}
	for _, c := range n.Children {
		errs = append(errs, evalMust(c)...)
	}
	return errs
}

// insertDefaults walks the post-pruning tree inserting schema-declared
// defaults for leaves/leaf-lists with no value, per spec.md §4.6.
func insertDefaults(n *Node) {
	if n.pruned || n.Schema == nil {
		return
	}
	for _, c := range n.Schema.Children {
		if existing := n.ChildrenNamed(c.Name); len(existing) > 0 {
			continue
		}
		switch {
		case c.Kind.String() == "leaf" && c.Default != "":
			child := NewNode(c)
			child.Value = c.Default
			child.Default = true
			n.AddChild(child)
		case c.Kind.String() == "leaf-list" && len(c.Defaults) > 0:
			for _, v := range c.Defaults {
				child := NewNode(c)
				child.Value = v
				child.Default = true
				n.AddChild(child)
			}
		}
	}
	for _, c := range n.Children {
		insertDefaults(c)
	}
}
