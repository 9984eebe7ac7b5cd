package mount

import (
	"strings"
	"testing"

	"github.com/yangforge/yangcore/data"
	"github.com/yangforge/yangcore/schema"
	"github.com/yangforge/yangcore/statement"
)

func fakeBuilder(calls *int) SchemaBuilder {
	return func(modules []string) (*schema.Module, error) {
		*calls++
		return &schema.Module{Root: &schema.Node{Kind: schema.KindContainer, Name: "root"}}, nil
	}
}

func TestCompileRequiresParent(t *testing.T) {
	e := New(nil, nil)
	if _, err := e.Compile(&statement.Statement{Keyword: Keyword, Argument: "mnt1"}, nil); err == nil {
		t.Fatal("want an error for a mount-point with no parent")
	}
}

func TestCompileRejectsNonContainerParent(t *testing.T) {
	e := New(nil, nil)
	leaf := &schema.Node{Kind: schema.KindLeaf, Name: "x"}
	if _, err := e.Compile(&statement.Statement{Keyword: Keyword, Argument: "mnt1"}, leaf); err == nil {
		t.Fatal("want an error for a mount-point whose parent is a leaf")
	}
}

func TestCompileAcceptsContainerParent(t *testing.T) {
	e := New(nil, nil)
	c := &schema.Node{Kind: schema.KindContainer, Name: "mnt"}
	payload, err := e.Compile(&statement.Statement{Keyword: Keyword, Argument: "mnt1"}, c)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	cp, ok := payload.(*compiled)
	if !ok || cp.arg != "mnt1" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestResolveRootSharedReusesContext(t *testing.T) {
	var calls int
	e := New(nil, fakeBuilder(&calls))
	ext := ExtData{Label: "mnt1", ContentID: "c1", Shared: true}

	r1, err := e.resolveRoot(ext)
	if err != nil {
		t.Fatalf("resolveRoot #1: %v", err)
	}
	r2, err := e.resolveRoot(ext)
	if err != nil {
		t.Fatalf("resolveRoot #2: %v", err)
	}
	if r1 != r2 {
		t.Error("two shared mounts with the same label/content-id should reuse one root")
	}
	if calls != 1 {
		t.Errorf("Build called %d times, want 1", calls)
	}
	if e.shared["mnt1"].refs != 2 {
		t.Errorf("refs = %d, want 2", e.shared["mnt1"].refs)
	}
}

func TestResolveRootSharedContentIDMismatch(t *testing.T) {
	var calls int
	e := New(nil, fakeBuilder(&calls))
	if _, err := e.resolveRoot(ExtData{Label: "mnt1", ContentID: "c1", Shared: true}); err != nil {
		t.Fatalf("resolveRoot #1: %v", err)
	}
	_, err := e.resolveRoot(ExtData{Label: "mnt1", ContentID: "c2", Shared: true})
	if err == nil {
		t.Fatal("want an error when a third entry's content-id differs from the cached one")
	}
	if !strings.Contains(err.Error(), "content-id") {
		t.Errorf("error = %v, want it to mention content-id", err)
	}
}

func TestResolveRootInlineAlwaysFresh(t *testing.T) {
	var calls int
	e := New(nil, fakeBuilder(&calls))
	ext := ExtData{Label: "mnt1", ContentID: "c1", Shared: false}
	if _, err := e.resolveRoot(ext); err != nil {
		t.Fatalf("resolveRoot #1: %v", err)
	}
	if _, err := e.resolveRoot(ext); err != nil {
		t.Fatalf("resolveRoot #2: %v", err)
	}
	if calls != 2 {
		t.Errorf("Build called %d times, want 2 (inline mounts never share)", calls)
	}
}

func TestValidateMarksExtAndDescendsIntoInnerSchema(t *testing.T) {
	innerLeaf := &schema.Node{Kind: schema.KindLeaf, Name: "greeting"}
	innerRoot := &schema.Node{Kind: schema.KindContainer, Name: "root", Children: []*schema.Node{innerLeaf}}

	e := New(func(n *data.Node) (ExtData, error) {
		return ExtData{Label: "mnt1", ContentID: "c1", Shared: true}, nil
	}, func(modules []string) (*schema.Module, error) {
		return &schema.Module{Root: innerRoot}, nil
	})

	mnt := data.NewNode(&schema.Node{Kind: schema.KindContainer, Name: "mnt"})
	greeting := data.NewNode(innerLeaf)
	greeting.Value = "hello"
	mnt.AddChild(greeting)

	if err := e.Validate(nil, mnt); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !greeting.Ext {
		t.Error("a freshly validated mount child should be marked Ext")
	}
}

func TestDuplicateParentRefsGraftsOuterState(t *testing.T) {
	hostnameSch := &schema.Node{Kind: schema.KindLeaf, Name: "hostname"}
	outerRoot := data.NewNode(&schema.Node{Kind: schema.KindContainer, Name: "system"})
	hostname := data.NewNode(hostnameSch)
	hostname.Value = "router1"
	outerRoot.AddChild(hostname)
	mnt := data.NewNode(&schema.Node{Kind: schema.KindContainer, Name: "mnt"})
	outerRoot.AddChild(mnt)

	inner := data.NewNode(&schema.Node{Kind: schema.KindContainer, Name: "innerroot"})
	duplicateParentRefs(mnt, inner, []string{"../hostname"})

	got := inner.ChildrenNamed("hostname")
	if len(got) != 1 || got[0].Value != "router1" {
		t.Fatalf("duplicated parent ref = %+v, want one hostname=router1", got)
	}
}
