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
	"strings"

	"github.com/yangforge/yangcore/schema"
	"github.com/yangforge/yangcore/xpath"
	"github.com/yangforge/yangcore/ytype"
)

// Validate runs both passes of spec.md §4.6 over root, returning every
// error found (not stopping at the first, matching yerr's "retain
// everything in the thread-local chain" policy at the library-API
// level).
func Validate(root *Node) []error {
	var errs []error
	errs = append(errs, validateNode(root)...)
	evalWhen(root, true)
	errs = append(errs, evalMust(root)...)
	insertDefaults(root)
	return errs
}

// validateNode runs pass A (spec.md §4.6 Pass A) in document order.
func validateNode(n *Node) []error {
	var errs []error
	sch := n.Schema
	if sch == nil {
		return errs
	}

	switch sch.Kind {
	case schema.KindLeaf, schema.KindLeafList:
		if err := validateType(n, sch.Type); err != nil {
			errs = append(errs, err)
		}
	}

	if sch.Kind == schema.KindContainer || sch.Kind == schema.KindList {
		errs = append(errs, checkMandatoryChildren(n, sch)...)
	}

	if sch.ListAttr != nil {
		errs = append(errs, checkCardinality(n, sch)...)
	}
	if sch.Kind == schema.KindList {
		errs = append(errs, checkKeyUniqueness(n, sch)...)
		errs = append(errs, checkUniqueGroups(n, sch)...)
	}

	for _, c := range n.Children {
		errs = append(errs, validateNode(c)...)
	}
	return errs
}

// validateType canonicalizes and checks n's value against y, the
// "match derived constraints" half of Pass A.
func validateType(n *Node, y *ytype.Type) error {
	if y == nil {
		return nil
	}
	switch y.Kind {
	case ytype.Yint8, ytype.Yint16, ytype.Yint32, ytype.Yint64,
		ytype.Yuint8, ytype.Yuint16, ytype.Yuint32, ytype.Yuint64, ytype.Ydecimal64:
		num, err := ytype.ParseInt(n.Value)
		if err != nil && y.Kind == ytype.Ydecimal64 {
			num, err = ytype.ParseDecimal(n.Value, uint8(y.FractionDigits))
		}
		if err != nil {
			return fmt.Errorf("%s: %q is not a valid %s: %v", n.Path(), n.Value, y.Kind, err)
		}
		if !numberInRange(y.Range, num) {
			return fmt.Errorf("%s: value %q out of range %v", n.Path(), n.Value, y.Range)
		}
	case ytype.Ystring, ytype.Ybinary:
		if !numberInRange(y.Length, ytype.FromUint(uint64(len(n.Value)))) {
			return fmt.Errorf("%s: length of %q out of range %v", n.Path(), n.Value, y.Length)
		}
	case ytype.Yenum:
		if y.Enum != nil && !y.Enum.IsDefined(n.Value) {
			return fmt.Errorf("%s: %q is not a member of the enumeration", n.Path(), n.Value)
		}
	case ytype.Ybits:
		if y.Bit != nil {
			for _, b := range strings.Fields(n.Value) {
				if !y.Bit.IsDefined(b) {
					return fmt.Errorf("%s: %q is not a defined bit", n.Path(), b)
				}
			}
		}
	case ytype.Ybool:
		if n.Value != "true" && n.Value != "false" {
			return fmt.Errorf("%s: %q is not a valid boolean", n.Path(), n.Value)
		}
	case ytype.Yidentityref:
		if y.IdentityBase == nil {
			return nil
		}
		got, ok := n.resolveIdentity()
		if !ok {
			return fmt.Errorf("%s: %q is not a known identity", n.Path(), n.Value)
		}
		dag := n.dag()
		base, ok := dag.ByDecl(y.IdentityBase)
		if !ok || !got.DerivedFromOrSelf(base) {
			return fmt.Errorf("%s: %q is not derived from identity %s", n.Path(), n.Value, y.IdentityBase.Name)
		}
	case ytype.Yleafref:
		if !y.OptionalInstance {
			if target := resolveLeafref(n, y); target == nil {
				return fmt.Errorf("%s: leafref %q does not refer to an existing instance", n.Path(), n.Value)
			}
		}
	case ytype.Yunion:
		for _, member := range y.Union {
			if validateType(n, member) == nil {
				return nil
			}
		}
		return fmt.Errorf("%s: %q does not match any member of the union", n.Path(), n.Value)
	}
	return nil
}

func numberInRange(r ytype.YangRange, n ytype.Number) bool {
	if len(r) == 0 {
		return true
	}
	for _, part := range r {
		if !n.Less(part.Min) && !part.Max.Less(n) {
			return true
		}
	}
	return false
}

// resolveLeafref compiles y.Path (ytype.Type carries only the raw path
// text, so it is compiled here on every call), evaluates it against n's
// position in the tree and returns the first leaf whose value equals
// n.Value, or nil.
func resolveLeafref(n *Node, y *ytype.Type) *Node {
	if y.Path == "" {
		return nil
	}
	expr, err := xpath.Compile(y.Path)
	if err != nil {
		return nil
	}
	r, err := xpath.Eval(expr, &xpath.EvalContext{Context: n, Current: n})
	if err != nil || r.Kind != xpath.KNodeSet {
		return nil
	}
	for _, cand := range r.Nodes {
		dn, ok := cand.(*Node)
		if !ok {
			continue
		}
		if v, isLeaf := dn.LeafValue(); isLeaf && v == n.Value {
			return dn
		}
	}
	return nil
}

func checkMandatoryChildren(n *Node, sch *schema.Node) []error {
	var errs []error
	for _, c := range sch.Children {
		if !c.Mandatory {
			continue
		}
		if len(n.ChildrenNamed(c.Name)) == 0 {
			errs = append(errs, fmt.Errorf("%s: mandatory child %q is missing", n.Path(), c.Name))
		}
	}
	return errs
}

// checkCardinality checks a list/leaf-list's min/max-elements once per
// sibling group: every entry shares the same *schema.Node, so the check
// runs only when n is the first entry in document order, to avoid
// reporting the same violation once per entry.
func checkCardinality(n *Node, sch *schema.Node) []error {
	if n.Parent == nil {
		return nil
	}
	entries := n.Parent.ChildrenNamed(sch.Name)
	if len(entries) == 0 || entries[0] != n {
		return nil
	}
	count := len(entries)
	var errs []error
	if sch.MinElements > 0 && count < sch.MinElements {
		errs = append(errs, fmt.Errorf("%s: %d instances, need at least %d", n.Path(), count, sch.MinElements))
	}
	if sch.MaxElements > 0 && count > sch.MaxElements {
		errs = append(errs, fmt.Errorf("%s: %d instances, at most %d allowed", n.Path(), count, sch.MaxElements))
	}
	return errs
}

// checkKeyUniqueness enforces that no two entries of the list n (a
// single list-entry node whose siblings are the other entries) share a
// key tuple. n here is one entry; the check runs once per entry set, so
// the caller passes the list's *schema* node and we look at n's
// siblings through its parent.
func checkKeyUniqueness(n *Node, sch *schema.Node) []error {
	if n.Parent == nil || len(sch.Key) == 0 {
		return nil
	}
	entries := n.Parent.ChildrenNamed(sch.Name)
	if len(entries) == 0 || entries[0] != n {
		return nil
	}
	seen := map[string]bool{}
	var errs []error
	for _, e := range entries {
		tuple := keyTuple(e, sch.Key)
		if seen[tuple] {
			errs = append(errs, fmt.Errorf("%s: duplicate key %s", e.Path(), tuple))
			continue
		}
		seen[tuple] = true
	}
	return errs
}

func keyTuple(entry *Node, keys []string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		for _, c := range entry.ChildrenNamed(k) {
			parts[i] = c.Value
		}
	}
	return strings.Join(parts, "\x00")
}

// checkUniqueGroups enforces every "unique" constraint declared on the
// list: distinct entries may not share the same value for every leaf in
// the group, unless at least one is absent (absent values make an entry
// non-participating, per spec.md §4.6).
func checkUniqueGroups(n *Node, sch *schema.Node) []error {
	if n.Parent == nil || len(sch.Unique) == 0 {
		return nil
	}
	entries := n.Parent.ChildrenNamed(sch.Name)
	var errs []error
	for _, group := range sch.Unique {
		seen := map[string]bool{}
		for _, e := range entries {
			tuple, complete := uniqueTuple(e, group)
			if !complete {
				continue
			}
			if seen[tuple] {
				errs = append(errs, fmt.Errorf("%s: unique constraint %v violated", e.Path(), group))
				continue
			}
			seen[tuple] = true
		}
	}
	return errs
}

func uniqueTuple(entry *Node, group []string) (string, bool) {
	parts := make([]string, len(group))
	for i, path := range group {
		target := entry.Schema.Find(path)
		if target == nil {
			return "", false
		}
		cur := findDataDescendant(entry, strings.Split(path, "/"))
		if cur == nil {
			return "", false
		}
		v, isLeaf := cur.LeafValue()
		if !isLeaf {
			return "", false
		}
		parts[i] = v
	}
	return strings.Join(parts, "\x00"), true
}

func findDataDescendant(n *Node, steps []string) *Node {
	cur := n
	for _, s := range steps {
		if s == "" || s == "." {
			continue
		}
		next := cur.ChildrenNamed(s)
		if len(next) == 0 {
			return nil
		}
		cur = next[0]
	}
	return cur
}
