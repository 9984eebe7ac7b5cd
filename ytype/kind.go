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

package ytype

import "fmt"

// Kind is the enumeration of YANG's nineteen builtin types.
type Kind uint

const (
	Ynone Kind = iota
	Yint8
	Yint16
	Yint32
	Yint64
	Yuint8
	Yuint16
	Yuint32
	Yuint64
	Ybinary
	Ybits
	Ybool
	Ydecimal64
	Yempty
	Yenum
	Yidentityref
	YinstanceIdentifier
	Yleafref
	Ystring
	Yunion
)

var kindToName = map[Kind]string{
	Ynone: "none", Yint8: "int8", Yint16: "int16", Yint32: "int32", Yint64: "int64",
	Yuint8: "uint8", Yuint16: "uint16", Yuint32: "uint32", Yuint64: "uint64",
	Ybinary: "binary", Ybits: "bits", Ybool: "boolean", Ydecimal64: "decimal64",
	Yempty: "empty", Yenum: "enumeration", Yidentityref: "identityref",
	YinstanceIdentifier: "instance-identifier", Yleafref: "leafref",
	Ystring: "string", Yunion: "union",
}

var nameToKind = map[string]Kind{}

func init() {
	for k, v := range kindToName {
		nameToKind[v] = k
	}
}

func (k Kind) String() string {
	if s := kindToName[k]; s != "" {
		return s
	}
	return fmt.Sprintf("unknown-type-%d", k)
}

// builtins holds the fully-resolved Type for each of the nineteen
// builtin type names, the root of every derivation chain.
var builtins = map[string]*Type{
	"int8":                {Name: "int8", Kind: Yint8, Range: Int8Range},
	"int16":               {Name: "int16", Kind: Yint16, Range: Int16Range},
	"int32":               {Name: "int32", Kind: Yint32, Range: Int32Range},
	"int64":               {Name: "int64", Kind: Yint64, Range: Int64Range},
	"uint8":               {Name: "uint8", Kind: Yuint8, Range: Uint8Range},
	"uint16":              {Name: "uint16", Kind: Yuint16, Range: Uint16Range},
	"uint32":              {Name: "uint32", Kind: Yuint32, Range: Uint32Range},
	"uint64":              {Name: "uint64", Kind: Yuint64, Range: Uint64Range},
	"decimal64":           {Name: "decimal64", Kind: Ydecimal64, Range: Decimal64Range},
	"string":              {Name: "string", Kind: Ystring},
	"boolean":             {Name: "boolean", Kind: Ybool},
	"enumeration":         {Name: "enumeration", Kind: Yenum},
	"bits":                {Name: "bits", Kind: Ybits},
	"binary":              {Name: "binary", Kind: Ybinary},
	"leafref":             {Name: "leafref", Kind: Yleafref},
	"identityref":         {Name: "identityref", Kind: Yidentityref},
	"empty":               {Name: "empty", Kind: Yempty},
	"union":               {Name: "union", Kind: Yunion},
	"instance-identifier": {Name: "instance-identifier", Kind: YinstanceIdentifier},
}

func init() {
	for _, t := range builtins {
		t.Root = t
	}
}

// Builtin returns the base Type named name, or nil if name is not one
// of the nineteen builtin type names.
func Builtin(name string) *Type { return builtins[name] }
