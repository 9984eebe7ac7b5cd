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

// Package jsoncodec implements codec.Codec over the RFC 7951 JSON
// instance encoding. go.mod carries no ygot-style JSON library for YANG
// instance data, so this package decodes onto stdlib encoding/json's
// generic map[string]interface{} and walks the result against the
// schema itself, the same division of labor package yin uses between
// encoding/xml's generic token stream and its own statement tree.
package jsoncodec

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yangforge/yangcore/data"
	"github.com/yangforge/yangcore/schema"
)

// Codec implements codec.Codec for RFC 7951 JSON.
type Codec struct{}

// New returns a JSON Codec.
func New() *Codec { return &Codec{} }

// Parse decodes r against sch (typically a compiled module's root) into
// a data.Node tree. RFC 7951 §4 qualifies a member name with its owning
// module ("module:name") only where the name's module differs from its
// parent's; Parse accepts either form by stripping any prefix before
// matching against sch's children.
func (c *Codec) Parse(ctx context.Context, sch *schema.Node, r io.Reader) (*data.Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("jsoncodec: %w", err)
	}
	root := data.NewNode(sch)
	for key, val := range raw {
		_, local := splitPrefix(key)
		childSch := sch.Child(local)
		if childSch == nil {
			continue
		}
		if err := decodeValue(root, childSch, val); err != nil {
			return nil, fmt.Errorf("jsoncodec: %s: %w", key, err)
		}
	}
	return root, nil
}

func splitPrefix(key string) (module, local string) {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i], key[i+1:]
	}
	return "", key
}

// decodeValue appends to parent the data.Node(s) val represents for
// childSch, recursing for containers and lists and exploding leaf-lists
// and lists into one sibling data.Node per array element.
func decodeValue(parent *data.Node, childSch *schema.Node, val interface{}) error {
	switch childSch.Kind {
	case schema.KindLeaf:
		child := data.NewNode(childSch)
		child.New = true
		child.Value = scalarString(val)
		parent.AddChild(child)

	case schema.KindLeafList:
		items, ok := val.([]interface{})
		if !ok {
			return fmt.Errorf("%s: want a JSON array for a leaf-list", childSch.Name)
		}
		for _, item := range items {
			child := data.NewNode(childSch)
			child.New = true
			child.Value = scalarString(item)
			parent.AddChild(child)
		}

	case schema.KindList:
		entries, ok := val.([]interface{})
		if !ok {
			return fmt.Errorf("%s: want a JSON array for a list", childSch.Name)
		}
		for _, entry := range entries {
			obj, ok := entry.(map[string]interface{})
			if !ok {
				return fmt.Errorf("%s: want a JSON object per list entry", childSch.Name)
			}
			entryNode := data.NewNode(childSch)
			entryNode.New = true
			parent.AddChild(entryNode)
			if err := decodeObject(entryNode, childSch, obj); err != nil {
				return err
			}
		}

	default: // container, case, etc.
		obj, ok := val.(map[string]interface{})
		if !ok {
			return fmt.Errorf("%s: want a JSON object", childSch.Name)
		}
		child := data.NewNode(childSch)
		child.New = true
		parent.AddChild(child)
		if err := decodeObject(child, childSch, obj); err != nil {
			return err
		}
	}
	return nil
}

func decodeObject(parent *data.Node, sch *schema.Node, obj map[string]interface{}) error {
	for key, val := range obj {
		_, local := splitPrefix(key)
		childSch := sch.Child(local)
		if childSch == nil {
			continue
		}
		if err := decodeValue(parent, childSch, val); err != nil {
			return err
		}
	}
	return nil
}

func scalarString(v interface{}) string {
	switch t := v.(type) {
	case json.Number:
		return t.String()
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Print renders n's children (n itself is the synthetic module root and
// is never emitted) as a single RFC 7951 JSON object, grouping
// consecutive same-schema list and leaf-list siblings back into one
// JSON array apiece.
func (c *Codec) Print(w io.Writer, n *data.Node) error {
	obj := map[string]interface{}{}
	i := 0
	for i < len(n.Children) {
		child := n.Children[i]
		name := qualifiedName(child)
		switch child.Schema.Kind {
		case schema.KindList, schema.KindLeafList:
			var arr []interface{}
			for i < len(n.Children) && n.Children[i].Schema == child.Schema {
				arr = append(arr, printValue(n.Children[i]))
				i++
			}
			obj[name] = arr
		default:
			obj[name] = printValue(child)
			i++
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(obj); err != nil {
		return fmt.Errorf("jsoncodec: %w", err)
	}
	return nil
}

// qualifiedName returns n's plain schema name. RFC 7951 prefixing is
// only required where a node's module differs from its parent's;
// module-qualifying every member regardless would still be valid JSON
// but noisier than the wire format real clients send, so Print omits it.
func qualifiedName(n *data.Node) string { return n.Name() }

func printValue(n *data.Node) interface{} {
	if v, isLeaf := n.LeafValue(); isLeaf {
		return v
	}
	obj := map[string]interface{}{}
	i := 0
	for i < len(n.Children) {
		child := n.Children[i]
		name := qualifiedName(child)
		switch child.Schema.Kind {
		case schema.KindList, schema.KindLeafList:
			var arr []interface{}
			for i < len(n.Children) && n.Children[i].Schema == child.Schema {
				arr = append(arr, printValue(n.Children[i]))
				i++
			}
			obj[name] = arr
		default:
			obj[name] = printValue(child)
			i++
		}
	}
	return obj
}
