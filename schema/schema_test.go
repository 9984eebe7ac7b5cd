package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yangforge/yangcore/ast"
	"github.com/yangforge/yangcore/plugin"
	"github.com/yangforge/yangcore/statement"
)

func val(s string) *ast.Value { return &ast.Value{Name: s} }

func newTestModule(name string) *ast.Module {
	return &ast.Module{Name: name, Namespace: val("urn:" + name), Prefix: val(name)}
}

func namedType(name string) *ast.Type { return &ast.Type{Name: name} }

func compileOne(t *testing.T, m *ast.Module) *Module {
	t.Helper()
	c := NewCompiler()
	if err := c.AddModule(m); err != nil {
		t.Fatalf("AddModule: %v", err)
	}
	mods, errs := c.Compile()
	if len(errs) != 0 {
		t.Fatalf("Compile: %v", errs)
	}
	for _, cm := range mods {
		if cm.Decl == m {
			return cm
		}
	}
	t.Fatal("compiled module not found")
	return nil
}

func TestCompileContainerAndLeaf(t *testing.T) {
	m := newTestModule("if")
	leaf := &ast.Leaf{Name: "mtu", Type: namedType("uint16")}
	m.Container = []*ast.Container{{Name: "interface", Leaf: []*ast.Leaf{leaf}}}

	cm := compileOne(t, m)
	iface := cm.Root.Child("interface")
	if iface == nil {
		t.Fatal("missing interface container")
	}
	mtu := iface.Child("mtu")
	if mtu == nil || mtu.Kind != KindLeaf {
		t.Fatalf("missing mtu leaf: %+v", iface.Children)
	}
	if mtu.Type == nil {
		t.Fatal("mtu leaf has no compiled type")
	}
}

func TestCompileConfigInheritance(t *testing.T) {
	m := newTestModule("if")
	m.Container = []*ast.Container{{
		Name:   "state",
		Config: val("false"),
		Leaf:   []*ast.Leaf{{Name: "oper-status", Type: namedType("string")}},
	}}
	cm := compileOne(t, m)
	state := cm.Root.Child("state")
	if state.Config {
		t.Error("state container should be config false")
	}
	operStatus := state.Child("oper-status")
	if operStatus.Config {
		t.Error("oper-status should inherit config false from its parent")
	}
}

func TestCompileListKey(t *testing.T) {
	m := newTestModule("if")
	m.List = []*ast.List{{
		Name: "interface",
		Key:  val("name"),
		Leaf: []*ast.Leaf{{Name: "name", Type: namedType("string")}},
	}}
	cm := compileOne(t, m)
	l := cm.Root.Child("interface")
	require.Equal(t, KindList, l.Kind)
	assert.Equal(t, []string{"name"}, l.ListAttr.Key)
}

func TestCompileListKeyMissing(t *testing.T) {
	m := newTestModule("if")
	m.List = []*ast.List{{
		Name: "interface",
		Key:  val("name"),
		Leaf: []*ast.Leaf{{Name: "id", Type: namedType("string")}},
	}}
	c := NewCompiler()
	if err := c.AddModule(m); err != nil {
		t.Fatalf("AddModule: %v", err)
	}
	if _, errs := c.Compile(); len(errs) == 0 {
		t.Fatal("Compile: want error for a key naming a non-existent leaf")
	}
}

func TestCompileUsesExpandsGrouping(t *testing.T) {
	m := newTestModule("if")
	m.Grouping = []*ast.Grouping{{
		Name: "common",
		Leaf: []*ast.Leaf{{Name: "name", Type: namedType("string")}},
	}}
	m.Container = []*ast.Container{{
		Name: "interface",
		Uses: []*ast.Uses{{Name: "common"}},
	}}
	cm := compileOne(t, m)
	iface := cm.Root.Child("interface")
	if iface.Child("name") == nil {
		t.Fatal("uses did not expand the grouping's leaf into interface")
	}
}

func TestCompileUsesUnknownGrouping(t *testing.T) {
	m := newTestModule("if")
	m.Container = []*ast.Container{{
		Name: "interface",
		Uses: []*ast.Uses{{Name: "missing"}},
	}}
	c := NewCompiler()
	c.AddModule(m)
	if _, errs := c.Compile(); len(errs) == 0 {
		t.Fatal("Compile: want error for uses of an unknown grouping")
	}
}

func TestCompileUsesSelfReferenceRejected(t *testing.T) {
	m := newTestModule("if")
	m.Grouping = []*ast.Grouping{{
		Name: "loop",
		Uses: []*ast.Uses{{Name: "loop"}},
	}}
	m.Container = []*ast.Container{{
		Name: "interface",
		Uses: []*ast.Uses{{Name: "loop"}},
	}}
	c := NewCompiler()
	c.AddModule(m)
	if _, errs := c.Compile(); len(errs) == 0 {
		t.Fatal("Compile: want error for a grouping that uses itself")
	}
}

func TestCompileChoiceImplicitCase(t *testing.T) {
	m := newTestModule("if")
	m.Choice = []*ast.Choice{{
		Name: "transport",
		Leaf: []*ast.Leaf{{Name: "tcp-port", Type: namedType("uint16")}},
	}}
	cm := compileOne(t, m)
	ch := cm.Root.Child("transport")
	if ch.Kind != KindChoice {
		t.Fatal("expected a choice")
	}
	implicit := ch.Child("tcp-port")
	if implicit == nil || implicit.Kind != KindCase {
		t.Fatalf("expected an implicit case named tcp-port, got %+v", ch.Children)
	}
	if implicit.Child("tcp-port") == nil {
		t.Fatal("implicit case should contain the leaf it wraps")
	}
}

func TestCompileAugmentMergesAcrossModules(t *testing.T) {
	base := newTestModule("base")
	base.Container = []*ast.Container{{Name: "system"}}

	aug := newTestModule("aug")
	aug.Import = []*ast.Import{{Name: "base", Prefix: val("bs")}}
	aug.Augment = []*ast.Augment{{
		Name: "/system",
		Leaf: []*ast.Leaf{{Name: "hostname", Type: namedType("string")}},
	}}

	c := NewCompiler()
	c.AddModule(base)
	c.AddModule(aug)
	mods, errs := c.Compile()
	if len(errs) != 0 {
		t.Fatalf("Compile: %v", errs)
	}
	var baseMod *Module
	for _, m := range mods {
		if m.Decl == base {
			baseMod = m
		}
	}
	sys := baseMod.Root.Child("system")
	if sys.Child("hostname") == nil {
		t.Fatal("augment did not merge hostname into base's system container")
	}
	if len(sys.Child("hostname").AugmentedBy) != 1 {
		t.Error("augmented leaf should record its augment statement")
	}
}

func TestCompileDeviateNotSupportedRemovesNode(t *testing.T) {
	base := newTestModule("base")
	base.Container = []*ast.Container{{
		Name: "system",
		Leaf: []*ast.Leaf{{Name: "legacy-mode", Type: namedType("boolean")}},
	}}
	base.Deviation = []*ast.Deviation{{
		Name:    "/system/legacy-mode",
		Deviate: []*ast.Deviate{{Name: "not-supported"}},
	}}
	cm := compileOne(t, base)
	if cm.Root.Child("system").Child("legacy-mode") != nil {
		t.Fatal("deviate not-supported should have removed legacy-mode")
	}
}

func TestCompileIdentityref(t *testing.T) {
	m := newTestModule("if")
	m.Identity = []*ast.Identity{
		{Name: "iana-if-type"},
		{Name: "ethernetCsmacd", Base: []*ast.Value{{Name: "iana-if-type"}}},
	}
	it := namedType("identityref")
	it.Base = []*ast.Value{{Name: "iana-if-type"}}
	m.Leaf = []*ast.Leaf{{Name: "type", Type: it}}

	cm := compileOne(t, m)
	typeLeaf := cm.Root.Child("type")
	if typeLeaf.Type.IdentityBase == nil || typeLeaf.Type.IdentityBase.Name != "iana-if-type" {
		t.Fatalf("IdentityBase = %+v", typeLeaf.Type.IdentityBase)
	}
}

type fakeCompilerExt struct{ seenParent string }

func (f *fakeCompilerExt) Keyword() string { return "test:fake" }
func (f *fakeCompilerExt) Compile(ext *statement.Statement, parent plugin.SchemaNode) (interface{}, error) {
	f.seenParent = parent.SchemaName()
	return ext.Argument, nil
}

func TestCompileRegistryAttachesExtPayload(t *testing.T) {
	m := newTestModule("if")
	m.Container = []*ast.Container{{
		Name:       "mnt",
		Extensions: []*statement.Statement{{Keyword: "test:fake", Argument: "mnt1"}},
	}}

	c := NewCompiler()
	r := plugin.NewRegistry()
	fake := &fakeCompilerExt{}
	r.Register(fake)
	c.SetRegistry(r)
	if err := c.AddModule(m); err != nil {
		t.Fatalf("AddModule: %v", err)
	}
	mods, errs := c.Compile()
	if len(errs) != 0 {
		t.Fatalf("Compile: %v", errs)
	}
	cm := mods[0]
	mnt := cm.Root.Child("mnt")
	if mnt.ExtPayload["test:fake"] != "mnt1" {
		t.Fatalf("ExtPayload = %+v", mnt.ExtPayload)
	}
	if fake.seenParent != "mnt" {
		t.Errorf("seenParent = %q, want the carrying container %q", fake.seenParent, "mnt")
	}
}
