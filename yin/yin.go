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

// Package yin parses the YIN (XML) encoding of a YANG module (RFC 6020
// §11) into the same generic *statement.Statement tree the canonical-text
// parser produces, so package ast never needs to know which surface
// syntax produced its input (spec.md §4.1, §6 "Input formats").
package yin

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/yangforge/yangcore/statement"
)

// yinElementArgs lists the statements whose argument is carried as the
// text of a nested element (RFC 6020 §11, the "yin-element" column of
// Table 1) rather than as an attribute on the statement element itself.
// Every other statement's argument, when present, is the attribute named
// by its single argument (conventionally sharing the statement's own
// name; the table below maps the handful of keywords that don't).
var yinElementArgs = map[string]string{
	"description":   "text",
	"reference":     "text",
	"contact":       "text",
	"organization":  "text",
	"error-message": "value",
	"must":          "",
	// must has no text child (the empty entry accumulates no text); its
	// argument is the "condition" attribute listed in argAttrName.
}

// argAttrName maps a handful of keywords whose YIN attribute name differs
// from the keyword itself (RFC 6020 Table 1).
var argAttrName = map[string]string{
	"anyxml":           "name",
	"anydata":          "name",
	"import":           "module",
	"include":          "module",
	"type":             "name",
	"if-feature":       "name",
	"bit":              "name",
	"enum":             "name",
	"identity":         "name",
	"feature":          "name",
	"deviation":        "target-node",
	"deviate":          "value",
	"extension":        "name",
	"refine":           "target-node",
	"uses":             "name",
	"augment":          "target-node",
	"when":             "condition",
	"must":             "condition",
	"case":             "name",
	"choice":           "name",
	"container":        "name",
	"grouping":         "name",
	"leaf":             "name",
	"leaf-list":        "name",
	"list":             "name",
	"notification":     "name",
	"rpc":              "name",
	"action":           "name",
	"input":            "",
	"output":           "",
	"typedef":          "name",
	"module":           "name",
	"submodule":        "name",
	"belongs-to":       "module",
	"prefix":           "value",
	"namespace":        "uri",
	"revision":         "date",
	"revision-date":    "date",
	"yang-version":     "value",
	"status":           "value",
	"config":           "value",
	"mandatory":        "value",
	"ordered-by":       "value",
	"default":          "value",
	"units":            "name",
	"position":         "value",
	"value":            "value",
	"base":              "name",
	"path":              "value",
	"require-instance":  "value",
	"fraction-digits":   "value",
	"length":            "value",
	"range":             "value",
	"pattern":           "value",
	"min-elements":      "value",
	"max-elements":      "value",
	"key":               "value",
	"unique":            "tag",
	"presence":          "value",
}

// Parse reads a YIN document from r and returns its root statements (as
// with statement.Parse, normally one: "module" or "submodule").
func Parse(r io.Reader, file string) ([]*statement.Statement, error) {
	dec := xml.NewDecoder(r)
	var root *statement.Statement
	var stack []*statement.Statement
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			kw := localKeyword(t.Name)
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				if child := yinElementArgs[parent.Keyword]; child != "" && child == kw {
					// The argument element: its text becomes parent's
					// argument, so parent stays on top until it closes.
					parent.HasArgument = true
					stack = append(stack, parent)
					continue
				}
			}
			line := 0 // encoding/xml does not expose line numbers
			s := statement.New(kw, file, line, 0)
			for _, a := range t.Attr {
				name := a.Name.Local
				if name == argAttrFor(s.Keyword) {
					s.HasArgument = true
					s.Argument = a.Value
				}
			}
			if len(stack) > 0 {
				stack[len(stack)-1].Add(s)
			} else {
				root = s
			}
			stack = append(stack, s)
		case xml.CharData:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				if textChild, ok := yinElementArgs[top.Keyword]; ok && textChild != "" {
					// Text inside a "yin-element true" statement's
					// argument element (pushed as the statement itself)
					// accumulates as the argument.
					top.HasArgument = true
					top.Argument += strings.TrimSpace(string(t))
				}
			}
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("%s: empty YIN document", file)
	}
	return []*statement.Statement{root}, nil
}

func argAttrFor(keyword string) string {
	if a, ok := argAttrName[keyword]; ok {
		return a
	}
	if _, isText := yinElementArgs[keyword]; isText {
		return ""
	}
	return "name"
}

// localKeyword strips the YIN namespace, preserving a "module:extension"
// style prefix for unknown-namespace extension instances so the compiler
// can still recognize them (spec.md §4.1 "unknown keywords ... are
// accepted as extension instances").
func localKeyword(name xml.Name) string {
	if name.Space == "" || strings.HasSuffix(name.Space, ":yang:1") || strings.Contains(name.Space, "yang:1") {
		return name.Local
	}
	return name.Space + ":" + name.Local
}
