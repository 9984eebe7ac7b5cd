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

// Package codec declares the abstract instance-data parser/printer
// contract spec.md §6 leaves unspecified ("pluggable behind a
// parser/printer pair"); codec/xmlcodec and codec/jsoncodec are its two
// concrete implementations.
package codec

import (
	"context"
	"io"

	"github.com/yangforge/yangcore/data"
	"github.com/yangforge/yangcore/schema"
)

// Codec turns wire-format instance data into a data.Node tree rooted at
// sch, and back.
type Codec interface {
	Parse(ctx context.Context, sch *schema.Node, r io.Reader) (*data.Node, error)
	Print(w io.Writer, n *data.Node) error
}
