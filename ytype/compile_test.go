package ytype

import (
	"testing"

	"github.com/yangforge/yangcore/ast"
)

// fakeResolver resolves typedefs from a flat name->*ast.Typedef map; good
// enough to exercise Compile without involving the schema package.
type fakeResolver struct {
	typedefs map[string]*ast.Typedef
}

func (r *fakeResolver) ResolveTypedef(_ ast.Node, name string) (*ast.Typedef, error) {
	if td, ok := r.typedefs[name]; ok {
		return td, nil
	}
	return nil, &notFoundErr{name}
}

func (r *fakeResolver) ResolveIdentityBase(_ ast.Node, name string) (*ast.Identity, error) {
	return nil, &notFoundErr{name}
}

type notFoundErr struct{ name string }

func (e *notFoundErr) Error() string { return "unknown: " + e.name }

func namedType(name string) *ast.Type { return &ast.Type{Name: name} }

func value(s string) *ast.Value { return &ast.Value{Name: s} }

func TestCompileBuiltinRange(t *testing.T) {
	ty := namedType("uint8")
	y, err := Compile(ty, &fakeResolver{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if y.Kind != Yuint8 {
		t.Errorf("Kind = %v, want Yuint8", y.Kind)
	}
	if !y.Range.Equal(Uint8Range) {
		t.Errorf("Range = %v, want %v", y.Range, Uint8Range)
	}
}

func TestCompileRangeTightening(t *testing.T) {
	small := &ast.Typedef{Name: "small-int", Type: namedType("int8")}
	small.Type.Range = value("0..10")

	narrower := namedType("small-int")
	narrower.Range = value("2..5")
	r := &fakeResolver{typedefs: map[string]*ast.Typedef{"small-int": small}}

	y, err := Compile(narrower, r)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	want, _ := ParseRangesInt("2..5")
	if !y.Range.Equal(want) {
		t.Errorf("Range = %v, want %v", y.Range, want)
	}
}

func TestCompileRangeWideningRejected(t *testing.T) {
	small := &ast.Typedef{Name: "small-int", Type: namedType("int8")}
	small.Type.Range = value("0..10")

	wider := namedType("small-int")
	wider.Range = value("0..20") // outside the 0..10 base -- not a subset
	r := &fakeResolver{typedefs: map[string]*ast.Typedef{"small-int": small}}

	if _, err := Compile(wider, r); err == nil {
		t.Fatal("Compile: want error widening a restricted range")
	}
}

func TestCompileLengthTightening(t *testing.T) {
	base := &ast.Typedef{Name: "short-string", Type: namedType("string")}
	base.Type.Length = value("1..20")

	narrower := namedType("short-string")
	narrower.Length = value("1..5")
	r := &fakeResolver{typedefs: map[string]*ast.Typedef{"short-string": base}}

	y, err := Compile(narrower, r)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	want, _ := ParseRangesInt("1..5")
	if !y.Length.Equal(want) {
		t.Errorf("Length = %v, want %v", y.Length, want)
	}
}

func TestCompileEnumSubsetRejectsNewMember(t *testing.T) {
	base := &ast.Typedef{Name: "color", Type: namedType("enumeration")}
	base.Type.Enum = []*ast.Enum{
		{Name: "red", Value: nil},
		{Name: "green", Value: nil},
	}

	derived := namedType("color")
	derived.Enum = []*ast.Enum{
		{Name: "red", Value: nil},
		{Name: "blue", Value: nil}, // not present in base -- must be rejected
	}
	r := &fakeResolver{typedefs: map[string]*ast.Typedef{"color": base}}

	if _, err := Compile(derived, r); err == nil {
		t.Fatal("Compile: want error adding an enum not in the base")
	}
}

func TestCompileEnumSubsetAllowsDroppedMember(t *testing.T) {
	base := &ast.Typedef{Name: "color", Type: namedType("enumeration")}
	base.Type.Enum = []*ast.Enum{
		{Name: "red", Value: nil},
		{Name: "green", Value: nil},
	}

	derived := namedType("color")
	derived.Enum = []*ast.Enum{
		{Name: "red", Value: nil},
	}
	r := &fakeResolver{typedefs: map[string]*ast.Typedef{"color": base}}

	y, err := Compile(derived, r)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !y.Enum.IsDefined("red") || y.Enum.IsDefined("green") {
		t.Errorf("Enum = %v, want only red defined", y.Enum.Names())
	}
}

func TestCompileCircularTypedefRejected(t *testing.T) {
	a := &ast.Typedef{Name: "a"}
	b := &ast.Typedef{Name: "b"}
	a.Type = namedType("b")
	b.Type = namedType("a")
	r := &fakeResolver{typedefs: map[string]*ast.Typedef{"a": a, "b": b}}

	if _, err := Compile(namedType("a"), r); err == nil {
		t.Fatal("Compile: want error on circular typedef chain")
	}
}

func TestCompileUnion(t *testing.T) {
	u := namedType("union")
	u.Type = []*ast.Type{namedType("int8"), namedType("string")}
	y, err := Compile(u, &fakeResolver{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(y.Union) != 2 || y.Union[0].Kind != Yint8 || y.Union[1].Kind != Ystring {
		t.Errorf("Union = %+v", y.Union)
	}
}

func TestCompilePatternAccumulates(t *testing.T) {
	base := &ast.Typedef{Name: "id", Type: namedType("string")}
	base.Type.Pattern = []*ast.Pattern{{Name: "[a-z]+"}}

	derived := namedType("id")
	derived.Pattern = []*ast.Pattern{{Name: "[a-z]{3,8}"}}
	r := &fakeResolver{typedefs: map[string]*ast.Typedef{"id": base}}

	y, err := Compile(derived, r)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(y.Pattern) != 2 {
		t.Fatalf("Pattern = %v, want 2 entries", y.Pattern)
	}
}
