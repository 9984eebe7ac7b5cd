package identity

import (
	"testing"

	"github.com/yangforge/yangcore/ast"
)

// flatResolver resolves base names straight out of a flat map, keyed
// exactly as the base argument appears -- good enough to exercise
// linking without involving the schema package's prefix resolution.
type flatResolver struct {
	byName map[string]*ast.Identity
}

func (r *flatResolver) ResolveIdentity(_ ast.Node, name string) (*ast.Identity, error) {
	if id, ok := r.byName[name]; ok {
		return id, nil
	}
	return nil, &missingErr{name}
}

type missingErr struct{ name string }

func (e *missingErr) Error() string { return "no such identity: " + e.name }

func TestDAGLinkAndDerivedFromOrSelf(t *testing.T) {
	animal := &ast.Identity{Name: "animal"}
	mammal := &ast.Identity{Name: "mammal", Base: []*ast.Value{{Name: "animal"}}}
	dog := &ast.Identity{Name: "dog", Base: []*ast.Value{{Name: "mammal"}}}

	r := &flatResolver{byName: map[string]*ast.Identity{"animal": animal, "mammal": mammal}}

	d := NewDAG()
	nAnimal := d.Add("mod", animal)
	nMammal := d.Add("mod", mammal)
	nDog := d.Add("mod", dog)

	if err := d.Link(r); err != nil {
		t.Fatalf("Link: %v", err)
	}

	if !nDog.DerivedFromOrSelf(nAnimal) {
		t.Error("dog should derive from animal transitively")
	}
	if !nDog.DerivedFromOrSelf(nMammal) {
		t.Error("dog should derive from mammal directly")
	}
	if !nDog.DerivedFromOrSelf(nDog) {
		t.Error("dog should derive from itself")
	}
	if nAnimal.DerivedFromOrSelf(nDog) {
		t.Error("animal should not derive from dog")
	}
	if nDog.IsDerivedFrom(nDog) {
		t.Error("IsDerivedFrom should exclude self")
	}
}

func TestDAGAllDerived(t *testing.T) {
	animal := &ast.Identity{Name: "animal"}
	dog := &ast.Identity{Name: "dog", Base: []*ast.Value{{Name: "animal"}}}
	cat := &ast.Identity{Name: "cat", Base: []*ast.Value{{Name: "animal"}}}

	r := &flatResolver{byName: map[string]*ast.Identity{"animal": animal}}

	d := NewDAG()
	nAnimal := d.Add("mod", animal)
	d.Add("mod", dog)
	d.Add("mod", cat)
	if err := d.Link(r); err != nil {
		t.Fatalf("Link: %v", err)
	}

	all := nAnimal.AllDerived()
	if len(all) != 3 {
		t.Fatalf("AllDerived returned %d identities, want 3: %v", len(all), all)
	}
}

func TestDAGUnresolvedBaseRejected(t *testing.T) {
	dog := &ast.Identity{Name: "dog", Base: []*ast.Value{{Name: "animal"}}}
	r := &flatResolver{byName: map[string]*ast.Identity{}}

	d := NewDAG()
	d.Add("mod", dog)
	if err := d.Link(r); err == nil {
		t.Fatal("Link: want error resolving an unknown base")
	}
}

func TestDAGCircularBaseRejected(t *testing.T) {
	a := &ast.Identity{Name: "a", Base: []*ast.Value{{Name: "b"}}}
	b := &ast.Identity{Name: "b", Base: []*ast.Value{{Name: "a"}}}

	r := &flatResolver{byName: map[string]*ast.Identity{"a": a, "b": b}}

	d := NewDAG()
	d.Add("mod", a)
	d.Add("mod", b)
	if err := d.Link(r); err == nil {
		t.Fatal("Link: want error on circular base chain")
	}
}

func TestDAGLookup(t *testing.T) {
	animal := &ast.Identity{Name: "animal"}
	d := NewDAG()
	d.Add("mod", animal)

	if _, ok := d.Lookup("mod:animal"); !ok {
		t.Fatal("Lookup: expected to find mod:animal")
	}
	if _, ok := d.Lookup("mod:missing"); ok {
		t.Fatal("Lookup: expected not to find mod:missing")
	}
}
