package statement

import "testing"

const simpleModule = `
module example {
  namespace "urn:example";
  prefix ex;

  // a leaf
  leaf name {
    type string;
    description "the " + "name";
  }
}
`

func TestParseBasic(t *testing.T) {
	roots, err := Parse(simpleModule, "test.yang")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(roots) != 1 {
		t.Fatalf("len(roots) = %d, want 1", len(roots))
	}
	mod := roots[0]
	if mod.Keyword != "module" || mod.Argument != "example" {
		t.Fatalf("root = %q %q, want module example", mod.Keyword, mod.Argument)
	}
	var leaf *Statement
	for _, s := range mod.SubStatements() {
		if s.Keyword == "leaf" {
			leaf = s
		}
	}
	if leaf == nil {
		t.Fatal("no leaf substatement found")
	}
	var desc *Statement
	for _, s := range leaf.SubStatements() {
		if s.Keyword == "description" {
			desc = s
		}
	}
	if desc == nil || desc.Argument != "the name" {
		t.Fatalf("description = %+v, want concatenated \"the name\"", desc)
	}
}

func TestParseUnterminatedBlock(t *testing.T) {
	_, err := Parse(`module x { namespace "u";`, "bad.yang")
	if err == nil {
		t.Fatal("Parse: want error for unterminated block")
	}
}

func TestParseSingleQuoteNoEscape(t *testing.T) {
	roots, err := Parse(`module x { description 'a\nb'; }`, "t.yang")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	desc := roots[0].SubStatements()[0]
	if desc.Argument != `a\nb` {
		t.Fatalf("single-quoted argument = %q, want literal %q", desc.Argument, `a\nb`)
	}
}
