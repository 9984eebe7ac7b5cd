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

// Package xmlcodec implements codec.Codec over the NETCONF XML instance
// encoding, walking encoding/xml.Decoder tokens the same way package yin
// walks them for the YIN schema encoding -- a generic element stack
// driven by local element names rather than a DOM tree.
package xmlcodec

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/yangforge/yangcore/data"
	"github.com/yangforge/yangcore/schema"
)

// Codec implements codec.Codec for the XML instance encoding.
type Codec struct{}

// New returns an XML Codec.
func New() *Codec { return &Codec{} }

// Parse decodes r against sch (typically a compiled module's root)
// into a data.Node tree. Elements whose local name does not match any
// child of the schema node they appear under are skipped, not an error:
// an unrecognized top-level element may belong to a module this
// context did not load.
func (c *Codec) Parse(ctx context.Context, sch *schema.Node, r io.Reader) (*data.Node, error) {
	dec := xml.NewDecoder(r)
	root := data.NewNode(sch)
	if err := parseChildren(dec, root, sch); err != nil {
		return nil, fmt.Errorf("xmlcodec: %w", err)
	}
	return root, nil
}

// parseChildren consumes tokens, appending one data.Node child to parent
// per recognized start element, until it meets the end element closing
// its own caller's start element (or EOF, at the top level).
func parseChildren(dec *xml.Decoder, parent *data.Node, sch *schema.Node) error {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			childSch := sch.Child(t.Name.Local)
			if childSch == nil {
				if err := dec.Skip(); err != nil {
					return err
				}
				continue
			}
			child := data.NewNode(childSch)
			child.New = true
			parent.AddChild(child)
			if isLeafKind(childSch.Kind) {
				var text string
				if err := dec.DecodeElement(&text, &t); err != nil {
					return err
				}
				child.Value = strings.TrimSpace(text)
				continue
			}
			if err := parseChildren(dec, child, childSch); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func isLeafKind(k schema.Kind) bool {
	return k == schema.KindLeaf || k == schema.KindLeafList
}

// Print renders n's children (n itself is the synthetic module root and
// is never emitted) as XML elements.
func (c *Codec) Print(w io.Writer, n *data.Node) error {
	enc := xml.NewEncoder(w)
	for _, child := range n.Children {
		if err := printNode(enc, child); err != nil {
			return fmt.Errorf("xmlcodec: %w", err)
		}
	}
	return enc.Flush()
}

func printNode(enc *xml.Encoder, n *data.Node) error {
	start := xml.StartElement{Name: xml.Name{Local: n.Name()}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if v, isLeaf := n.LeafValue(); isLeaf {
		if err := enc.EncodeToken(xml.CharData(v)); err != nil {
			return err
		}
	} else {
		for _, child := range n.Children {
			if err := printNode(enc, child); err != nil {
				return err
			}
		}
	}
	return enc.EncodeToken(xml.EndElement{Name: start.Name})
}
