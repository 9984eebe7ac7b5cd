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

package ast

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/yangforge/yangcore/statement"
)

// This file binds a generic *statement.Statement tree into the typed
// node set in types.go, the same way the teacher's ast.go does: a
// one-time reflection pass (registerType) builds, per struct type, a map
// from YANG keyword to a small closure that knows how to fill in the
// matching field; Build then just looks up and calls those closures
// per substatement instead of hand-writing one switch per node type.
// That keeps adding a new statement to the grammar a matter of adding a
// struct field with the right tag, exactly as in the teacher.

type binder func(ss *statement.Statement, v, parent reflect.Value) error

type typeInfo struct {
	funcs     map[string]binder
	required  []string
	sRequired map[string][]string
	addExt    binder
}

var (
	typeMap = map[reflect.Type]*typeInfo{}
	nameMap = map[string]reflect.Type{}

	statementPtrType = reflect.TypeOf(&statement.Statement{})
	nodeIfaceType    = reflect.TypeOf((*Node)(nil)).Elem()
	nilValue         reflect.Value
)

// aliases lets one struct type answer for more than one keyword, the
// way Module answers for both "module" and "submodule".
var aliases = map[string]string{
	"submodule": "module",
}

func init() {
	registerRoot(reflect.TypeOf(&Module{}), "module")
}

func registerRoot(t reflect.Type, keyword string) {
	nameMap[keyword] = t
	registerType(t)
}

// Build converts one root *statement.Statement (normally "module" or
// "submodule") into its typed Node.
func Build(s *statement.Statement) (Node, error) {
	v, err := build(s, nilValue)
	if err != nil {
		return nil, err
	}
	return v.Interface().(Node), nil
}

func build(s *statement.Statement, parent reflect.Value) (reflect.Value, error) {
	kind := s.Keyword
	if a := aliases[kind]; a != "" {
		kind = a
	}
	t := nameMap[kind]
	if t == nil {
		if strings.Contains(s.Keyword, ":") {
			// Unrecognized namespaced keyword: an extension
			// instance, retained on the parent's Ext list by the
			// caller, not an error (spec.md §4.1).
			return nilValue, nil
		}
		return nilValue, fmt.Errorf("%s: unknown statement: %s", s.Location(), s.Keyword)
	}
	info := typeMap[t]
	found := map[string]bool{}

	elemType := t.Elem()
	v := reflect.New(elemType)

	if fn := info.funcs["Name"]; fn != nil {
		if err := fn(s, v, parent); err != nil {
			return nilValue, err
		}
	}
	if fn := info.funcs["Statement"]; fn != nil {
		if err := fn(s, v, parent); err != nil {
			return nilValue, err
		}
	}
	if fn := info.funcs["Parent"]; fn != nil && parent.IsValid() {
		if err := fn(s, v, parent); err != nil {
			return nilValue, err
		}
	}

	if err := checkSectionOrder(s); err != nil {
		return nilValue, err
	}

	for _, sub := range s.SubStatements() {
		found[sub.Keyword] = true
		if fn := info.funcs[sub.Keyword]; fn != nil {
			if err := fn(sub, v, parent); err != nil {
				return nilValue, err
			}
			continue
		}
		if strings.Contains(sub.Keyword, ":") {
			if info.addExt == nil {
				return nilValue, fmt.Errorf("%s: no extension slot on %s", sub.Location(), s.Keyword)
			}
			if err := info.addExt(sub, v, parent); err != nil {
				return nilValue, err
			}
			continue
		}
		return nilValue, fmt.Errorf("%s: unknown %s field: %s", sub.Location(), s.Keyword, sub.Keyword)
	}

	for _, r := range info.required {
		if !found[r] {
			return nilValue, fmt.Errorf("%s: missing required %s field: %s", s.Location(), s.Keyword, r)
		}
	}
	for _, r := range info.sRequired[s.Keyword] {
		if !found[r] {
			return nilValue, fmt.Errorf("%s: missing required %s field: %s", s.Location(), s.Keyword, r)
		}
	}
	for other, fields := range info.sRequired {
		if other == s.Keyword {
			continue
		}
		for _, r := range fields {
			if found[r] {
				return nilValue, fmt.Errorf("%s: field %s is only valid for %s", s.Location(), r, other)
			}
		}
	}
	return v, nil
}

// registerType builds the keyword->binder map for at (a pointer-to-struct
// type), recursing into every field type it discovers along the way.
func registerType(at reflect.Type) {
	if typeMap[at] != nil {
		return
	}
	if at.Kind() != reflect.Ptr || at.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("ast: %v is not a pointer to struct", at))
	}
	t := at.Elem()
	info := &typeInfo{funcs: map[string]binder{}, sRequired: map[string][]string{}}
	typeMap[at] = info

	for i := 0; i < t.NumField(); i++ {
		i := i
		f := t.Field(i)
		tag := f.Tag.Get("yang")
		if tag == "" {
			continue
		}
		parts := strings.Split(tag, ",")
		name := parts[0]
		if name == "-" {
			continue // populated out-of-band (e.g. schema resolves Import.Module)
		}
		if a := aliases[name]; a != "" {
			name = a
		}

		const reqPrefix = "required="
		for _, p := range parts[1:] {
			switch {
			case p == "nomerge":
			case p == "required":
				info.required = append(info.required, name)
			case strings.HasPrefix(p, reqPrefix):
				kw := p[len(reqPrefix):]
				info.sRequired[kw] = append(info.sRequired[kw], name)
			default:
				panic(f.Name + ": unknown yang tag option: " + p)
			}
		}

		if name == "Ext" {
			info.addExt = func(s *statement.Statement, v, _ reflect.Value) error {
				fv := v.Elem().Field(i)
				fv.Set(reflect.Append(fv, reflect.ValueOf(s)))
				return nil
			}
			continue
		}

		descend := func(name string, dt reflect.Type) {
			switch nameMap[name] {
			case nil:
				nameMap[name] = dt
				registerType(dt)
			case dt:
			default:
				panic("ast: redeclared keyword " + name)
			}
		}

		var fn binder
		switch f.Type.Kind() {
		case reflect.Interface:
			if name != "Parent" {
				panic(fmt.Sprintf("ast: interface field %s is not Parent", name))
			}
			fn = func(s *statement.Statement, v, p reflect.Value) error {
				if !p.Type().Implements(nodeIfaceType) {
					panic("ast: parent does not implement Node")
				}
				v.Elem().Field(i).Set(p)
				return nil
			}
		case reflect.String:
			if name != "Name" {
				panic(fmt.Sprintf("ast: string field %s is not Name", name))
			}
			fn = func(s *statement.Statement, v, _ reflect.Value) error {
				fv := v.Elem().Field(i)
				if fv.String() != "" {
					return errors.New(s.Keyword + ": already set")
				}
				fv.SetString(s.Argument)
				return nil
			}
		case reflect.Ptr:
			if f.Type == statementPtrType {
				if name != "Statement" {
					panic(fmt.Sprintf("ast: *Statement field %s is not Statement", name))
				}
				fn = func(s *statement.Statement, v, _ reflect.Value) error {
					v.Elem().Field(i).Set(reflect.ValueOf(s))
					return nil
				}
				break
			}
			descend(name, f.Type)
			fn = func(s *statement.Statement, v, p reflect.Value) error {
				fv := v.Elem().Field(i)
				if !fv.IsNil() {
					return errors.New(s.Keyword + ": already set")
				}
				sv, err := build(s, v)
				if err != nil {
					return err
				}
				if sv.IsValid() {
					fv.Set(sv)
				}
				return nil
			}
		case reflect.Slice:
			switch st := f.Type.Elem(); st.Kind() {
			case reflect.Ptr:
				if st == statementPtrType {
					// []*statement.Statement, only legal for Ext,
					// already handled above.
					panic("ast: raw []*Statement field must be named Ext")
				}
				descend(name, st)
				fn = func(s *statement.Statement, v, p reflect.Value) error {
					sv, err := build(s, v)
					if err != nil {
						return err
					}
					if !sv.IsValid() {
						return nil
					}
					fv := v.Elem().Field(i)
					fv.Set(reflect.Append(fv, sv))
					return nil
				}
			default:
				panic(fmt.Sprintf("ast: invalid slice element kind %v", st.Kind()))
			}
		default:
			panic(fmt.Sprintf("ast: invalid field kind %v for %s", f.Type.Kind(), name))
		}
		info.funcs[name] = fn
	}
}

// sections enumerates the coarse module-body ordering spec.md §4.1
// mandates: header -> linkage -> meta -> revision -> body. Statements
// not listed (e.g. unprefixed data-definition keywords, extensions) are
// treated as "body" and are otherwise unordered among themselves.
var sections = map[string]int{
	"yang-version": 0, "namespace": 0, "prefix": 0, "belongs-to": 0,
	"import": 1, "include": 1,
	"organization": 2, "contact": 2, "description": 2, "reference": 2,
	"revision": 3,
}

// checkSectionOrder enforces that within a module or submodule body, a
// statement's section is never less than the maximum section seen so
// far -- e.g. an "import" after the first "container" is rejected, but
// interleaving extensions or re-describing revisions is not restricted
// beyond that, matching spec.md §4.1's "coarse ordering" rule.
func checkSectionOrder(s *statement.Statement) error {
	if s.Keyword != "module" && s.Keyword != "submodule" {
		return nil
	}
	max := -1
	for _, sub := range s.SubStatements() {
		sec, ok := sections[sub.Keyword]
		if !ok {
			sec = 4 // body
		}
		if sec < max {
			return fmt.Errorf("%s: %s statement out of order (section %d after section %d)",
				sub.Location(), sub.Keyword, sec, max)
		}
		if sec > max {
			max = sec
		}
	}
	return nil
}
