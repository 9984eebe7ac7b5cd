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

import (
	"regexp/syntax"
	"sync"

	"github.com/google/go-cmp/cmp"

	"github.com/yangforge/yangcore/ast"
	"github.com/yangforge/yangcore/yerr"
)

// Type is the compiled, fully-resolved form of a "type" statement: the
// builtin kind it derives from, plus every range/length/pattern/enum/bit
// restriction accumulated and checked down its typedef chain.
type Type struct {
	Name             string
	Kind             Kind
	Base             *ast.Type // the statement this Type was compiled from; nil for a pure builtin
	IdentityBase     *ast.Identity
	Root             *Type // the first ancestor with these exact restrictions
	Bit              *EnumType
	Enum             *EnumType
	Units            string
	Default          string
	FractionDigits   int
	Length           YangRange
	OptionalInstance bool
	Path             string
	Pattern          []string
	Union            []*Type
	Range            YangRange
}

// Equal reports whether y and t describe the same restrictions.
func (y *Type) Equal(t *Type) bool {
	if y == nil || t == nil {
		return y == t
	}
	if y.Kind != t.Kind || y.Units != t.Units || y.Default != t.Default ||
		y.FractionDigits != t.FractionDigits || y.Path != t.Path ||
		y.OptionalInstance != t.OptionalInstance ||
		!y.Length.Equal(t.Length) || !y.Range.Equal(t.Range) ||
		!ssEqual(y.Pattern, t.Pattern) || !enumEqual(y.Enum, t.Enum) || !enumEqual(y.Bit, t.Bit) ||
		len(y.Union) != len(t.Union) {
		return false
	}
	for i, u := range y.Union {
		if !u.Equal(t.Union[i]) {
			return false
		}
	}
	return true
}

// enumEqual compares EnumType's unexported maps the way the teacher's
// yangtype.go compares its own EnumType: cmp.Equal with a cmp.Comparer,
// since EnumType carries no exported field to compare on directly.
func enumEqual(a, b *EnumType) bool {
	return cmp.Equal(a, b, cmp.Comparer(func(x, y EnumType) bool {
		return cmp.Equal(x.toInt, y.toInt) && cmp.Equal(x.toString, y.toString)
	}))
}

func ssEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Resolver looks up typedefs and identities visible from a given point
// in the tree -- schema implements this over the compiled module graph,
// crossing import/include boundaries; ytype never walks modules itself.
type Resolver interface {
	ResolveTypedef(from ast.Node, name string) (*ast.Typedef, error)
	ResolveIdentityBase(from ast.Node, name string) (*ast.Identity, error)
}

var (
	cacheMu sync.Mutex
	cache   = map[*ast.Type]*Type{}
)

// Compile resolves t (and, transitively, the typedef chain it names)
// into a Type. Results are memoized per *ast.Type node, mirroring the
// teacher's typeDictionary cache.
func Compile(t *ast.Type, r Resolver) (*Type, error) {
	return compile(t, r, map[*ast.Typedef]bool{})
}

func compile(t *ast.Type, r Resolver, visiting map[*ast.Typedef]bool) (*Type, error) {
	cacheMu.Lock()
	if y, ok := cache[t]; ok {
		cacheMu.Unlock()
		return y, nil
	}
	cacheMu.Unlock()

	y, err := compileUncached(t, r, visiting)
	if err != nil {
		return nil, err
	}
	cacheMu.Lock()
	cache[t] = y
	cacheMu.Unlock()
	return y, nil
}

func compileUncached(t *ast.Type, r Resolver, visiting map[*ast.Typedef]bool) (*Type, error) {
	path := ast.Source(t)

	var base *Type
	var err error
	switch {
	case Builtin(t.Name) != nil:
		base = Builtin(t.Name)
	default:
		td, rerr := r.ResolveTypedef(t, t.Name)
		if rerr != nil {
			return nil, yerr.Newf(yerr.Validation, path, "unknown type %s: %v", t.Name, rerr)
		}
		if visiting[td] {
			return nil, yerr.Newf(yerr.Validation, path, "circular typedef chain involving %s", td.Name)
		}
		visiting[td] = true
		base, err = compile(td.Type, r, visiting)
		delete(visiting, td)
		if err != nil {
			return nil, err
		}
	}

	y := *base
	y.Name = t.Name
	y.Base = t

	if v := t.RequireInstance; v != nil {
		y.OptionalInstance = v.Name != "true"
	}
	if v := t.Path; v != nil {
		y.Path = v.Name
	}

	isDecimal64 := y.Kind == Ydecimal64
	switch {
	case isDecimal64 && y.FractionDigits != 0:
		if t.FractionDigits != nil {
			return nil, yerr.Newf(yerr.Validation, path, "overriding of fraction-digits not allowed")
		}
	case isDecimal64:
		if t.FractionDigits == nil {
			return nil, yerr.Newf(yerr.Validation, path, "decimal64 requires fraction-digits")
		}
		n, err := ParseInt(t.FractionDigits.Name)
		if err != nil {
			return nil, yerr.Newf(yerr.Validation, path, "bad fraction-digits: %v", err)
		}
		fd, _ := n.Int()
		if fd < 1 || fd > int64(MaxFractionDigits) {
			return nil, yerr.Newf(yerr.Validation, path, "fraction-digits %d out of range 1..%d", fd, MaxFractionDigits)
		}
		y.FractionDigits = int(fd)
		y.Range = mustParseRangesDecimal("min..max", uint8(fd))
	case t.FractionDigits != nil:
		return nil, yerr.Newf(yerr.Validation, path, "fraction-digits only allowed for decimal64")
	case y.Kind == Yidentityref:
		if t.Base == nil || len(t.Base) == 0 {
			if y.IdentityBase == nil {
				return nil, yerr.Newf(yerr.Validation, path, "an identityref must specify a base")
			}
			break
		}
		id, err := r.ResolveIdentityBase(t, t.Base[0].Name)
		if err != nil {
			return nil, yerr.Newf(yerr.Validation, path, "%v", err)
		}
		y.IdentityBase = id
	}

	if t.Range != nil {
		yr, err := parseRangesForKind(t.Range.Name, isDecimal64, uint8(y.FractionDigits))
		if err != nil {
			return nil, yerr.Newf(yerr.Validation, path, "bad range: %v", err)
		}
		if !y.Range.Contains(yr) {
			return nil, yerr.Newf(yerr.Validation, path, "range %v is not a subset of %v", yr, y.Range)
		}
		if !yr.Equal(y.Range) {
			y.Range = yr
		}
	}

	if t.Length != nil {
		yr, err := ParseRangesInt(t.Length.Name)
		if err != nil {
			return nil, yerr.Newf(yerr.Validation, path, "bad length: %v", err)
		}
		if !y.Length.Contains(yr) {
			return nil, yerr.Newf(yerr.Validation, path, "length %v is not a subset of %v", yr, y.Length)
		}
		if !yr.Equal(y.Length) {
			for _, rr := range yr {
				if rr.Min.Kind == Negative {
					return nil, yerr.Newf(yerr.Validation, path, "negative length: %v", yr)
				}
			}
			y.Length = yr
		}
	}

	if len(t.Enum) > 0 {
		enum := NewEnumType()
		for _, e := range t.Enum {
			if err := setEnum(enum, e.Name, e.Value); err != nil {
				return nil, yerr.Newf(yerr.Validation, ast.Source(e), "%v", err)
			}
		}
		if !enum.Subset(y.Enum) {
			return nil, yerr.Newf(yerr.Validation, path, "enum restriction is not a subset of its base")
		}
		y.Enum = enum
	}

	if len(t.Bit) > 0 {
		bit := NewBitfield()
		for _, b := range t.Bit {
			if err := setEnum(bit, b.Name, b.Position); err != nil {
				return nil, yerr.Newf(yerr.Validation, ast.Source(b), "%v", err)
			}
		}
		if !bit.Subset(y.Bit) {
			return nil, yerr.Newf(yerr.Validation, path, "bit restriction is not a subset of its base")
		}
		y.Bit = bit
	}

	seen := map[string]bool{}
	for _, p := range y.Pattern {
		seen[p] = true
	}
	for _, p := range t.Pattern {
		if _, err := syntax.Parse(p.Name, syntax.Perl); err != nil {
			return nil, yerr.Newf(yerr.Validation, ast.Source(p), "bad pattern %q: %v", p.Name, err)
		}
		if !seen[p.Name] {
			seen[p.Name] = true
			y.Pattern = append(y.Pattern, p.Name)
		}
	}

	if y.Kind == Yunion {
		var union []*Type
		for _, ut := range t.Type {
			ct, err := compile(ut, r, visiting)
			if err != nil {
				return nil, err
			}
			union = append(union, ct)
		}
		if len(union) > 0 {
			y.Union = union
		}
	}

	if !y.Equal(base) {
		root := &y
		y.Root = root
	}
	return &y, nil
}

// parseRangesForKind dispatches to the integer or decimal range parser
// depending on whether the type being restricted is decimal64.
func parseRangesForKind(s string, decimal bool, fracDigits uint8) (YangRange, error) {
	if decimal {
		return ParseRangesDecimal(s, fracDigits)
	}
	return ParseRangesInt(s)
}

func setEnum(e *EnumType, name string, value *ast.Value) error {
	if value == nil {
		return e.SetNext(name)
	}
	n, err := ParseInt(value.Name)
	if err != nil {
		return err
	}
	i, err := n.Int()
	if err != nil {
		return err
	}
	return e.Set(name, i)
}
