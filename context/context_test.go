package context

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/yangforge/yangcore/data"
)

const ifMod = `
module if {
  namespace "urn:if";
  prefix if;

  container interfaces {
    list interface {
      key "name";
      leaf name {
        type string;
      }
      leaf mtu {
        type uint16;
      }
    }
  }
}
`

const sysMod = `
module sys {
  namespace "urn:sys";
  prefix sys;

  import if { prefix if; }

  container system {
    leaf hostname {
      type string;
    }
  }
}
`

func writeModule(t *testing.T, dir, name, src string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+".yang"), []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLoadModuleResolvesImports(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "if", ifMod)
	writeModule(t, dir, "sys", sysMod)

	c := New(Options{SearchDirs: []string{dir}})
	m, err := c.LoadModule("sys")
	if err != nil {
		t.Fatalf("LoadModule: %v", err)
	}
	if m.Root.Child("system") == nil {
		t.Fatal("missing system container")
	}

	ifCompiled, ok := c.CompiledModule("if")
	if !ok {
		t.Fatal("import if was not compiled alongside sys")
	}
	if ifCompiled.Root.Child("interfaces") == nil {
		t.Fatal("missing interfaces container in the imported module")
	}
}

func TestLoadModuleMissingFile(t *testing.T) {
	c := New(Options{SearchDirs: []string{t.TempDir()}})
	if _, err := c.LoadModule("nonexistent"); err == nil {
		t.Fatal("want an error for a module absent from the search path")
	}
}

func TestValidateLogsIntoAttachedToken(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "if", ifMod)
	c := New(Options{SearchDirs: []string{dir}})
	m, err := c.LoadModule("if")
	if err != nil {
		t.Fatalf("LoadModule: %v", err)
	}

	root := data.NewNode(m.Root)
	mtu := data.NewNode(m.Root.Child("interfaces").Child("interface").Child("mtu"))
	mtu.Value = "not-a-number"
	iface := data.NewNode(m.Root.Child("interfaces").Child("interface"))
	iface.AddChild(mtu)
	ifaces := data.NewNode(m.Root.Child("interfaces"))
	ifaces.AddChild(iface)
	root.AddChild(ifaces)

	tok := c.Attach()
	defer c.Detach(tok)
	if err := c.Validate(tok, root); err == nil {
		t.Fatal("want a validation error for a non-numeric uint16")
	}
	if len(c.Errors(tok)) == 0 {
		t.Error("Validate should have logged into the attached token's error chain")
	}
}

func TestSnapshotRestoreReloadsModules(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "if", ifMod)
	c := New(Options{SearchDirs: []string{dir}})
	if _, err := c.LoadModule("if"); err != nil {
		t.Fatalf("LoadModule: %v", err)
	}

	var buf bytes.Buffer
	if err := c.Snapshot(&buf); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	restored, err := Restore(&buf)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	m, ok := restored.CompiledModule("if")
	if !ok {
		t.Fatal("restored context is missing module if")
	}
	if m.Root.Child("interfaces") == nil {
		t.Fatal("restored module's schema tree is incomplete")
	}
}

func TestLoadOptionsYAML(t *testing.T) {
	const doc = "search_dirs:\n  - /a\n  - /b\n"
	opts, err := LoadOptionsYAML(bytes.NewBufferString(doc))
	if err != nil {
		t.Fatalf("LoadOptionsYAML: %v", err)
	}
	if len(opts.SearchDirs) != 2 || opts.SearchDirs[0] != "/a" || opts.SearchDirs[1] != "/b" {
		t.Errorf("SearchDirs = %v", opts.SearchDirs)
	}
}
