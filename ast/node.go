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

// Package ast binds the generic statement.Statement tree into the typed,
// tagged node set spec.md §3 calls the "Parsed node": modules, typedefs,
// groupings, data-definition statements, extensions, deviations and
// augments. No cross-reference is resolved here -- that is schema's job.
package ast

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/yangforge/yangcore/statement"
)

// A Node is any parsed statement with identity: its keyword, its
// argument, its source statement, its parent, and any extension
// instances attached to it. Only pointers to the concrete node types in
// this package implement Node.
type Node interface {
	Kind() string
	NName() string
	Statement() *statement.Statement
	ParentNode() Node
	Exts() []*statement.Statement
}

// Typedefer is a Node that can carry typedefs (module, submodule,
// grouping, container, list, rpc, input, output, notification, ...).
type Typedefer interface {
	Node
	Typedefs() []*Typedef
}

// Value wraps a single string-valued substatement (description, default,
// a range's argument, etc.) so it can carry its own extensions, exactly
// as the teacher's Value does.
type Value struct {
	Name       string                  `yang:"Name,nomerge"`
	Source     *statement.Statement    `yang:"Statement,nomerge"`
	Parent     Node                    `yang:"Parent,nomerge"`
	Extensions []*statement.Statement  `yang:"Ext"`
}

func (Value) Kind() string                        { return "string" }
func (v *Value) NName() string                     { return v.Name }
func (v *Value) Statement() *statement.Statement   { return v.Source }
func (v *Value) ParentNode() Node                  { return v.Parent }
func (v *Value) Exts() []*statement.Statement      { return v.Extensions }

// Source renders the location at which n was defined, or "unknown".
func Source(n Node) string {
	if n != nil && n.Statement() != nil {
		return n.Statement().Location()
	}
	return "unknown"
}

// SplitPrefix splits "pfx:name" into ("pfx", "name"); an unprefixed name
// returns ("", name).
func SplitPrefix(s string) (string, string) {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return s[:i], s[i+1:]
	}
	return "", s
}

// RootNode walks up to the Module/Submodule that defined n.
func RootNode(n Node) *Module {
	for n != nil && n.ParentNode() != nil {
		n = n.ParentNode()
	}
	m, _ := n.(*Module)
	return m
}

// NodePath renders the argument-path from the module down to n.
func NodePath(n Node) string {
	var path string
	for n != nil {
		path = "/" + n.NName() + path
		n = n.ParentNode()
	}
	return path
}

// ChildNode finds n's direct child named name by walking every tagged
// Node-valued field on n via reflection (ast.Build populates those
// fields; this just walks them generically so every statement type gets
// child lookup for free, matching the teacher's pkg/yang/node.go
// ChildNode).
func ChildNode(n Node, name string) Node {
	v := reflect.ValueOf(n)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return nil
	}
	v = v.Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		ft := t.Field(i)
		tag := ft.Tag.Get("yang")
		if tag == "" {
			continue
		}
		parts := strings.Split(tag, ",")
		skip := false
		for _, p := range parts[1:] {
			if p == "nomerge" {
				skip = true
			}
		}
		if skip {
			continue
		}
		f := v.Field(i)
		switch f.Kind() {
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			if node, ok := f.Interface().(Node); ok && node.NName() == name {
				return node
			}
		case reflect.Slice:
			for j := 0; j < f.Len(); j++ {
				if node, ok := f.Index(j).Interface().(Node); ok && node.NName() == name {
					return node
				}
			}
		}
	}
	return nil
}

// FindNode resolves a YANG-schema-node path (e.g. "../name",
// "/mod:root/mod:child") relative to n. It is deliberately simple: no
// wildcards, matching spec.md §4.1's generic parsed-tree model; schema
// does the XPath-aware resolution used for leafref/when/must targets.
func FindNode(n Node, path string) (Node, error) {
	if path == "" {
		return n, nil
	}
	if path == "/" || strings.HasSuffix(path, "/") {
		return nil, fmt.Errorf("invalid path %q", path)
	}
	parts := strings.Split(path, "/")
	if parts[0] == "" {
		parts = parts[1:]
		n = RootNode(n)
	}
	for _, part := range parts {
		if part == ".." {
			for {
				n = n.ParentNode()
				if n == nil {
					return nil, fmt.Errorf("'..' with no parent")
				}
				switch n.Kind() {
				case "choice", "case":
					continue
				}
				break
			}
			continue
		}
		_, name := SplitPrefix(part)
		child := ChildNode(n, name)
		if child == nil {
			return nil, fmt.Errorf("%s: no such element", part)
		}
		n = child
	}
	return n, nil
}
