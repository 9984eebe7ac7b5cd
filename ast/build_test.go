package ast

import (
	"testing"

	"github.com/yangforge/yangcore/statement"
)

const testModule = `
module example {
  yang-version 1.1;
  namespace "urn:example";
  prefix ex;

  import other { prefix o; }

  typedef small-int {
    type int8 {
      range "0..10";
    }
  }

  container root {
    leaf x {
      type small-int;
    }
    list entries {
      key "name";
      leaf name { type string; }
    }
  }
}
`

func buildModule(t *testing.T, src string) *Module {
	t.Helper()
	roots, err := statement.Parse(src, "test.yang")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	n, err := Build(roots[0])
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	m, ok := n.(*Module)
	if !ok {
		t.Fatalf("Build returned %T, want *Module", n)
	}
	return m
}

func TestBuildModuleHeader(t *testing.T) {
	m := buildModule(t, testModule)
	if m.Name != "example" {
		t.Errorf("Name = %q, want example", m.Name)
	}
	if m.GetPrefix() != "ex" {
		t.Errorf("GetPrefix() = %q, want ex", m.GetPrefix())
	}
	if len(m.Import) != 1 || m.Import[0].Name != "other" {
		t.Fatalf("Import = %+v, want one import named other", m.Import)
	}
	if len(m.Typedef) != 1 || m.Typedef[0].Name != "small-int" {
		t.Fatalf("Typedef = %+v", m.Typedef)
	}
}

func TestBuildContainerTree(t *testing.T) {
	m := buildModule(t, testModule)
	if len(m.Container) != 1 {
		t.Fatalf("Container = %+v, want 1", m.Container)
	}
	root := m.Container[0]
	if root.Parent.(*Module) != m {
		t.Error("container's Parent is not the module")
	}
	if len(root.Leaf) != 1 || root.Leaf[0].Name != "x" {
		t.Fatalf("Leaf = %+v", root.Leaf)
	}
	if len(root.List) != 1 || root.List[0].Key.Name != "name" {
		t.Fatalf("List = %+v", root.List)
	}
}

func TestSectionOrderRejected(t *testing.T) {
	bad := `
module bad {
  namespace "urn:bad";
  container root { leaf x { type string; } }
  prefix b;
}
`
	roots, err := statement.Parse(bad, "bad.yang")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := Build(roots[0]); err == nil {
		t.Fatal("Build: want error for prefix after body statement")
	}
}

func TestFindNodeRelative(t *testing.T) {
	m := buildModule(t, testModule)
	root := m.Container[0]
	leafX := root.Leaf[0]
	n, err := FindNode(leafX, "../entries/name")
	if err != nil {
		t.Fatalf("FindNode: %v", err)
	}
	if n.NName() != "name" {
		t.Fatalf("FindNode = %q, want name", n.NName())
	}
}
