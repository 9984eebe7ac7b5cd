package jsoncodec

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/yangforge/yangcore/ast"
	"github.com/yangforge/yangcore/schema"
)

func val(s string) *ast.Value { return &ast.Value{Name: s} }

func namedType(name string) *ast.Type { return &ast.Type{Name: name} }

func testModuleRoot(t *testing.T) *schema.Node {
	t.Helper()
	m := &ast.Module{Name: "if", Namespace: val("urn:if"), Prefix: val("if")}
	m.Container = []*ast.Container{{
		Name: "interfaces",
		List: []*ast.List{{
			Name: "interface",
			Key:  val("name"),
			Leaf: []*ast.Leaf{
				{Name: "name", Type: namedType("string")},
				{Name: "mtu", Type: namedType("uint16")},
			},
			LeafList: []*ast.LeafList{
				{Name: "address", Type: namedType("string")},
			},
		}},
	}}

	c := schema.NewCompiler()
	if err := c.AddModule(m); err != nil {
		t.Fatalf("AddModule: %v", err)
	}
	mods, errs := c.Compile()
	if len(errs) != 0 {
		t.Fatalf("Compile: %v", errs)
	}
	return mods[0].Root
}

func TestParseBuildsTreeFromObjectsAndArrays(t *testing.T) {
	sch := testModuleRoot(t)
	const doc = `{
		"if:interfaces": {
			"interface": [
				{"name": "eth0", "mtu": 1500, "address": ["10.0.0.1", "10.0.0.2"]},
				{"name": "eth1", "mtu": 9000}
			]
		}
	}`

	c := New()
	root, err := c.Parse(context.Background(), sch, strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	ifaces := root.ChildrenNamed("interfaces")
	if len(ifaces) != 1 {
		t.Fatalf("interfaces = %d, want 1", len(ifaces))
	}
	entries := ifaces[0].ChildrenNamed("interface")
	if len(entries) != 2 {
		t.Fatalf("interface entries = %d, want 2", len(entries))
	}
	first := entries[0]
	if got := first.ChildrenNamed("name")[0].Value; got != "eth0" {
		t.Errorf("name = %q, want eth0", got)
	}
	if got := first.ChildrenNamed("mtu")[0].Value; got != "1500" {
		t.Errorf("mtu = %q, want 1500", got)
	}
	addrs := first.ChildrenNamed("address")
	if len(addrs) != 2 || addrs[0].Value != "10.0.0.1" || addrs[1].Value != "10.0.0.2" {
		t.Errorf("address entries = %+v", addrs)
	}
}

func TestParseSkipsUnrecognizedMembers(t *testing.T) {
	sch := testModuleRoot(t)
	const doc = `{"other:unknown": {"x": 1}, "if:interfaces": {}}`
	c := New()
	root, err := c.Parse(context.Background(), sch, strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(root.Children) != 1 || root.Children[0].Name() != "interfaces" {
		t.Fatalf("children = %+v, want only interfaces", root.Children)
	}
}

func TestPrintRoundTrips(t *testing.T) {
	sch := testModuleRoot(t)
	const doc = `{"interfaces": {"interface": [{"name": "eth0", "mtu": 1500}]}}`
	c := New()
	root, err := c.Parse(context.Background(), sch, strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var buf bytes.Buffer
	if err := c.Print(&buf, root); err != nil {
		t.Fatalf("Print: %v", err)
	}

	back, err := c.Parse(context.Background(), sch, strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("re-parse of printed output: %v", err)
	}
	name := back.ChildrenNamed("interfaces")[0].ChildrenNamed("interface")[0].ChildrenNamed("name")[0].Value
	if name != "eth0" {
		t.Errorf("round-tripped name = %q, want eth0", name)
	}
}
