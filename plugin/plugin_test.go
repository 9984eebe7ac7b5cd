package plugin

import (
	"testing"

	"github.com/yangforge/yangcore/statement"
)

type fakeExt struct{ compiled int }

func (f *fakeExt) Keyword() string { return "test:fake" }
func (f *fakeExt) Compile(ext *statement.Statement, parent SchemaNode) (interface{}, error) {
	f.compiled++
	return "payload", nil
}
func (f *fakeExt) Free(interface{}) {}

var _ Compiler = (*fakeExt)(nil)
var _ Freer = (*fakeExt)(nil)

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	ext := &fakeExt{}
	r.Register(ext)

	got := r.Lookup("test:fake")
	if got == nil {
		t.Fatal("Lookup: not found")
	}
	compiler, ok := got.(Compiler)
	if !ok {
		t.Fatal("registered extension should satisfy Compiler")
	}
	if _, err := compiler.Compile(nil, nil); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if ext.compiled != 1 {
		t.Errorf("compiled = %d, want 1", ext.compiled)
	}
}

func TestRegistryLookupMiss(t *testing.T) {
	r := NewRegistry()
	if r.Lookup("unknown:ext") != nil {
		t.Error("Lookup of an unregistered keyword should return nil")
	}
}

func TestRegistryLastRegistrationWins(t *testing.T) {
	r := NewRegistry()
	first := &fakeExt{}
	second := &fakeExt{}
	r.Register(first)
	r.Register(second)
	if r.Lookup("test:fake") != Extension(second) {
		t.Error("second Register for the same keyword should replace the first")
	}
}
