package data

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"

	"github.com/yangforge/yangcore/ast"
	"github.com/yangforge/yangcore/schema"
)

func val(s string) *ast.Value { return &ast.Value{Name: s} }

func newTestModule(name string) *ast.Module {
	return &ast.Module{Name: name, Namespace: val("urn:" + name), Prefix: val(name)}
}

func namedType(name string) *ast.Type { return &ast.Type{Name: name} }

func compileOne(t *testing.T, mods ...*ast.Module) (*schema.Module, *schema.Compiler) {
	t.Helper()
	c := schema.NewCompiler()
	for _, m := range mods {
		if err := c.AddModule(m); err != nil {
			t.Fatalf("AddModule: %v", err)
		}
	}
	compiled, errs := c.Compile()
	if len(errs) != 0 {
		t.Fatalf("Compile: %v", errs)
	}
	for _, cm := range compiled {
		if cm.Decl == mods[0] {
			return cm, c
		}
	}
	t.Fatal("compiled module not found")
	return nil, nil
}

// leafNode builds a detached, childless data.Node for the leaf schema
// sch carrying value.
func leafNode(sch *schema.Node, value string) *Node {
	return &Node{Schema: sch, Value: value}
}

func TestValidateTypeRange(t *testing.T) {
	m := newTestModule("if")
	mtu := &ast.Leaf{Name: "mtu", Type: namedType("uint16")}
	mtu.Type.Range = val("1..9000")
	m.Leaf = []*ast.Leaf{mtu}
	cm, _ := compileOne(t, m)

	root := NewNode(cm.Root)
	root.AddChild(leafNode(cm.Root.Child("mtu"), "9999"))
	if errs := Validate(root); len(errs) == 0 {
		t.Fatal("want a range error for mtu=9999")
	}

	root2 := NewNode(cm.Root)
	root2.AddChild(leafNode(cm.Root.Child("mtu"), "1500"))
	if errs := Validate(root2); len(errs) != 0 {
		t.Fatalf("unexpected errors for mtu=1500: %v", errs)
	}
}

func TestValidateLeafrefIntegrity(t *testing.T) {
	m := newTestModule("if")
	m.List = []*ast.List{{
		Name: "interface",
		Key:  val("name"),
		Leaf: []*ast.Leaf{{Name: "name", Type: namedType("string")}},
	}}
	ref := &ast.Leaf{Name: "ref", Type: namedType("leafref")}
	ref.Type.Path = val("/interface/name")
	m.Leaf = []*ast.Leaf{ref}
	cm, _ := compileOne(t, m)

	listSch := cm.Root.Child("interface")
	nameSch := listSch.Child("name")
	refSch := cm.Root.Child("ref")

	build := func(refValue string) *Node {
		root := NewNode(cm.Root)
		entry := NewNode(listSch)
		entry.AddChild(leafNode(nameSch, "eth0"))
		root.AddChild(entry)
		root.AddChild(leafNode(refSch, refValue))
		return root
	}

	if errs := Validate(build("eth0")); len(errs) != 0 {
		t.Fatalf("leafref to an existing instance should validate clean: %v", errs)
	}
	if errs := Validate(build("eth1")); len(errs) == 0 {
		t.Fatal("leafref to a missing instance should fail")
	}
}

func TestValidateWhenPrunesMust(t *testing.T) {
	m := newTestModule("if")
	leaf := &ast.Leaf{
		Name: "secret",
		Type: namedType("string"),
		When: &ast.When{Name: "false()"},
		Must: []*ast.Must{{Name: "false()"}},
	}
	m.Leaf = []*ast.Leaf{leaf}
	cm, _ := compileOne(t, m)

	root := NewNode(cm.Root)
	root.AddChild(leafNode(cm.Root.Child("secret"), "x"))
	if errs := Validate(root); len(errs) != 0 {
		t.Fatalf("a when-false node's must should never run: %v", errs)
	}
}

func TestValidateMandatoryChildMissing(t *testing.T) {
	base := newTestModule("base")
	base.Container = []*ast.Container{{Name: "system"}}

	aug := newTestModule("aug")
	aug.Import = []*ast.Import{{Name: "base", Prefix: val("bs")}}
	aug.Augment = []*ast.Augment{{
		Name: "/system",
		Leaf: []*ast.Leaf{{Name: "hostname", Type: namedType("string"), Mandatory: val("true")}},
	}}

	c := schema.NewCompiler()
	c.AddModule(base)
	c.AddModule(aug)
	mods, errs := c.Compile()
	if len(errs) != 0 {
		t.Fatalf("Compile: %v", errs)
	}
	var baseMod *schema.Module
	for _, m := range mods {
		if m.Decl == base {
			baseMod = m
		}
	}

	root := NewNode(baseMod.Root)
	sys := NewNode(baseMod.Root.Child("system"))
	root.AddChild(sys)
	if errs := Validate(root); len(errs) == 0 {
		t.Fatal("want an error for a missing augmented mandatory leaf")
	}
}

func TestValidateIdentityref(t *testing.T) {
	m := newTestModule("if")
	m.Identity = []*ast.Identity{
		{Name: "iana-if-type"},
		{Name: "ethernetCsmacd", Base: []*ast.Value{{Name: "iana-if-type"}}},
		{Name: "unrelated"},
	}
	it := namedType("identityref")
	it.Base = []*ast.Value{{Name: "iana-if-type"}}
	m.Leaf = []*ast.Leaf{{Name: "type", Type: it}}

	cm, c := compileOne(t, m)
	typeSch := cm.Root.Child("type")

	build := func(value string) *Node {
		root := NewNode(cm.Root)
		root.IdentityDAG = c.Identities()
		root.AddChild(leafNode(typeSch, value))
		return root
	}

	if errs := Validate(build("ethernetCsmacd")); len(errs) != 0 {
		t.Fatalf("a derived identity should validate clean: %v", errs)
	}
	if errs := Validate(build("unrelated")); len(errs) == 0 {
		t.Fatal("an identity that is not derived from the base should fail")
	}
	if errs := Validate(build("no-such-identity")); len(errs) == 0 {
		t.Fatal("an unknown identity name should fail")
	}
}

func TestValidateKeyUniqueness(t *testing.T) {
	m := newTestModule("if")
	m.List = []*ast.List{{
		Name: "interface",
		Key:  val("name"),
		Leaf: []*ast.Leaf{{Name: "name", Type: namedType("string")}},
	}}
	cm, _ := compileOne(t, m)
	listSch := cm.Root.Child("interface")
	nameSch := listSch.Child("name")

	root := NewNode(cm.Root)
	e1 := NewNode(listSch)
	e1.AddChild(leafNode(nameSch, "eth0"))
	e2 := NewNode(listSch)
	e2.AddChild(leafNode(nameSch, "eth0"))
	root.AddChild(e1)
	root.AddChild(e2)
	if errs := Validate(root); len(errs) == 0 {
		t.Fatal("want a duplicate-key error for two entries sharing a key")
	}

	root2 := NewNode(cm.Root)
	e3 := NewNode(listSch)
	e3.AddChild(leafNode(nameSch, "eth0"))
	e4 := NewNode(listSch)
	e4.AddChild(leafNode(nameSch, "eth1"))
	root2.AddChild(e3)
	root2.AddChild(e4)
	if errs := Validate(root2); len(errs) != 0 {
		t.Fatalf("distinct keys should validate clean: %v", errs)
	}
}

func TestValidateInsertsDefault(t *testing.T) {
	m := newTestModule("if")
	leaf := &ast.Leaf{Name: "mtu", Type: namedType("uint16"), Default: val("1500")}
	m.Leaf = []*ast.Leaf{leaf}
	cm, _ := compileOne(t, m)

	root := NewNode(cm.Root)
	if errs := Validate(root); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	mtu := root.ChildrenNamed("mtu")
	if len(mtu) != 1 {
		t.Fatalf("want a default-inserted mtu child, got %d", len(mtu))
	}
	type snapshot struct {
		Value   string
		Default bool
	}
	got := snapshot{mtu[0].Value, mtu[0].Default}
	want := snapshot{Value: "1500", Default: true}
	if diff := pretty.Compare(want, got); diff != "" {
		t.Errorf("mtu snapshot mismatch (-want +got):\n%s", diff)
	}
}
