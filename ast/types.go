// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ast

import "github.com/yangforge/yangcore/statement"

// See https://www.rfc-editor.org/rfc/rfc7950 for the structures below;
// field names and the "yang" struct tag mirror the statement grammar so
// Build (in build.go) can bind substatements without a bespoke switch per
// type. A field tagged `yang:"x,required"` must be present; a field
// tagged `required=KIND` is only required (and only legal) when the
// enclosing statement's own keyword is KIND, which lets Module double as
// the binding target for both "module" and "submodule".

// Module is the binding target for both "module" and "submodule" (the
// two share all but a handful of header fields).
type Module struct {
	Name       string                 `yang:"Name,nomerge"`
	Source     *statement.Statement   `yang:"Statement,nomerge"`
	Parent     Node                   `yang:"Parent,nomerge"`
	Extensions []*statement.Statement `yang:"Ext"`

	YangVersion *Value `yang:"yang-version,nomerge"`
	Namespace   *Value `yang:"namespace,required=module,nomerge"`
	Prefix      *Value `yang:"prefix,required=module,nomerge"`
	BelongsTo   *BelongsTo `yang:"belongs-to,required=submodule,nomerge"`

	Import  []*Import  `yang:"import"`
	Include []*Include `yang:"include"`

	Organization *Value `yang:"organization,nomerge"`
	Contact      *Value `yang:"contact,nomerge"`
	Description  *Value `yang:"description,nomerge"`
	Reference    *Value `yang:"reference,nomerge"`

	Revision []*Revision `yang:"revision,nomerge"`

	Extension    []*Extension    `yang:"extension"`
	Feature      []*Feature      `yang:"feature"`
	Identity     []*Identity     `yang:"identity"`
	Typedef      []*Typedef      `yang:"typedef"`
	Grouping     []*Grouping     `yang:"grouping"`
	Container    []*Container    `yang:"container"`
	Leaf         []*Leaf         `yang:"leaf"`
	LeafList     []*LeafList     `yang:"leaf-list"`
	List         []*List         `yang:"list"`
	Choice       []*Choice       `yang:"choice"`
	Anydata      []*AnyData      `yang:"anydata"`
	Anyxml       []*AnyXML       `yang:"anyxml"`
	Uses         []*Uses         `yang:"uses"`
	Augment      []*Augment      `yang:"augment"`
	RPC          []*RPC          `yang:"rpc"`
	Notification []*Notification `yang:"notification"`
	Deviation    []*Deviation    `yang:"deviation"`
}

func (m *Module) Kind() string {
	if m.BelongsTo != nil {
		return "submodule"
	}
	return "module"
}
func (m *Module) NName() string                     { return m.Name }
func (m *Module) Statement() *statement.Statement    { return m.Source }
func (m *Module) ParentNode() Node                   { return m.Parent }
func (m *Module) Exts() []*statement.Statement        { return m.Extensions }
func (m *Module) Groupings() []*Grouping             { return m.Grouping }
func (m *Module) Typedefs() []*Typedef                { return m.Typedef }
func (m *Module) Identities() []*Identity             { return m.Identity }

// GetPrefix returns the module's own prefix, following belongs-to for
// submodules.
func (m *Module) GetPrefix() string {
	if m == nil {
		return ""
	}
	if m.Prefix != nil {
		return m.Prefix.Name
	}
	if m.BelongsTo != nil && m.BelongsTo.Prefix != nil {
		return m.BelongsTo.Prefix.Name
	}
	return ""
}

// Current returns the latest revision date, or "".
func (m *Module) Current() string {
	var rev string
	for _, r := range m.Revision {
		if r.Name > rev {
			rev = r.Name
		}
	}
	return rev
}

type BelongsTo struct {
	Name       string                 `yang:"Name,nomerge"`
	Source     *statement.Statement   `yang:"Statement,nomerge"`
	Parent     Node                   `yang:"Parent,nomerge"`
	Extensions []*statement.Statement `yang:"Ext"`
	Prefix     *Value                 `yang:"prefix,required,nomerge"`
}

func (BelongsTo) Kind() string                      { return "belongs-to" }
func (b *BelongsTo) NName() string                  { return b.Name }
func (b *BelongsTo) Statement() *statement.Statement { return b.Source }
func (b *BelongsTo) ParentNode() Node                { return b.Parent }
func (b *BelongsTo) Exts() []*statement.Statement     { return b.Extensions }

type Import struct {
	Name       string                 `yang:"Name,nomerge"`
	Source     *statement.Statement   `yang:"Statement,nomerge"`
	Parent     Node                   `yang:"Parent,nomerge"`
	Extensions []*statement.Statement `yang:"Ext"`
	Prefix     *Value                 `yang:"prefix,required,nomerge"`
	RevisionDate *Value               `yang:"revision-date,nomerge"`

	// Module is resolved later, by schema, not here.
	Module *Module `yang:"-,nomerge" json:"-"`
}

func (Import) Kind() string                      { return "import" }
func (i *Import) NName() string                  { return i.Name }
func (i *Import) Statement() *statement.Statement { return i.Source }
func (i *Import) ParentNode() Node                { return i.Parent }
func (i *Import) Exts() []*statement.Statement     { return i.Extensions }

type Include struct {
	Name         string                 `yang:"Name,nomerge"`
	Source       *statement.Statement   `yang:"Statement,nomerge"`
	Parent       Node                   `yang:"Parent,nomerge"`
	Extensions   []*statement.Statement `yang:"Ext"`
	RevisionDate *Value                 `yang:"revision-date,nomerge"`

	Module *Module `yang:"-,nomerge" json:"-"`
}

func (Include) Kind() string                      { return "include" }
func (i *Include) NName() string                  { return i.Name }
func (i *Include) Statement() *statement.Statement { return i.Source }
func (i *Include) ParentNode() Node                { return i.Parent }
func (i *Include) Exts() []*statement.Statement     { return i.Extensions }

type Revision struct {
	Name        string                 `yang:"Name,nomerge"`
	Source      *statement.Statement   `yang:"Statement,nomerge"`
	Parent      Node                   `yang:"Parent,nomerge"`
	Extensions  []*statement.Statement `yang:"Ext"`
	Description *Value                 `yang:"description,nomerge"`
	Reference   *Value                 `yang:"reference,nomerge"`
}

func (Revision) Kind() string                      { return "revision" }
func (r *Revision) NName() string                  { return r.Name }
func (r *Revision) Statement() *statement.Statement { return r.Source }
func (r *Revision) ParentNode() Node                { return r.Parent }
func (r *Revision) Exts() []*statement.Statement     { return r.Extensions }

type Typedef struct {
	Name        string                 `yang:"Name,nomerge"`
	Source      *statement.Statement   `yang:"Statement,nomerge"`
	Parent      Node                   `yang:"Parent,nomerge"`
	Extensions  []*statement.Statement `yang:"Ext"`
	Type        *Type                  `yang:"type,required,nomerge"`
	Units       *Value                 `yang:"units,nomerge"`
	Default     *Value                 `yang:"default,nomerge"`
	Status      *Value                 `yang:"status,nomerge"`
	Description *Value                 `yang:"description,nomerge"`
	Reference   *Value                 `yang:"reference,nomerge"`
}

func (Typedef) Kind() string                      { return "typedef" }
func (t *Typedef) NName() string                  { return t.Name }
func (t *Typedef) Statement() *statement.Statement { return t.Source }
func (t *Typedef) ParentNode() Node                { return t.Parent }
func (t *Typedef) Exts() []*statement.Statement     { return t.Extensions }

type Type struct {
	Name       string                 `yang:"Name,nomerge"`
	Source     *statement.Statement   `yang:"Statement,nomerge"`
	Parent     Node                   `yang:"Parent,nomerge"`
	Extensions []*statement.Statement `yang:"Ext"`

	Type           []*Type `yang:"type"` // union members
	Length         *Value  `yang:"length,nomerge"`
	Pattern        []*Pattern `yang:"pattern"`
	Range          *Value  `yang:"range,nomerge"`
	Path           *Value  `yang:"path,nomerge"`
	RequireInstance *Value `yang:"require-instance,nomerge"`
	FractionDigits *Value `yang:"fraction-digits,nomerge"`
	Enum           []*Enum `yang:"enum"`
	Bit            []*Bit  `yang:"bit"`
	Base           []*Value `yang:"base"`
}

func (Type) Kind() string                      { return "type" }
func (t *Type) NName() string                  { return t.Name }
func (t *Type) Statement() *statement.Statement { return t.Source }
func (t *Type) ParentNode() Node                { return t.Parent }
func (t *Type) Exts() []*statement.Statement     { return t.Extensions }

type Pattern struct {
	Name        string                 `yang:"Name,nomerge"`
	Source      *statement.Statement   `yang:"Statement,nomerge"`
	Parent      Node                   `yang:"Parent,nomerge"`
	Extensions  []*statement.Statement `yang:"Ext"`
	Description *Value                 `yang:"description,nomerge"`
}

func (Pattern) Kind() string                      { return "pattern" }
func (p *Pattern) NName() string                  { return p.Name }
func (p *Pattern) Statement() *statement.Statement { return p.Source }
func (p *Pattern) ParentNode() Node                { return p.Parent }
func (p *Pattern) Exts() []*statement.Statement     { return p.Extensions }

// InvertMatch reports whether one of this pattern's extension statements
// has keyword "modifier" and argument "invert-match". Pattern has no
// field for a plain YANG 1.1 modifier substatement, so Build does not
// accept one, and ytype keeps compiled patterns as plain strings without
// consulting this method.
func (p *Pattern) InvertMatch() bool {
	for _, e := range p.Extensions {
		if e.Keyword == "modifier" {
			if arg, _ := e.Arg(); arg == "invert-match" {
				return true
			}
		}
	}
	return false
}

type Enum struct {
	Name        string                 `yang:"Name,nomerge"`
	Source      *statement.Statement   `yang:"Statement,nomerge"`
	Parent      Node                   `yang:"Parent,nomerge"`
	Extensions  []*statement.Statement `yang:"Ext"`
	Value       *Value                 `yang:"value,nomerge"`
	Status      *Value                 `yang:"status,nomerge"`
	Description *Value                 `yang:"description,nomerge"`
}

func (Enum) Kind() string                      { return "enum" }
func (e *Enum) NName() string                  { return e.Name }
func (e *Enum) Statement() *statement.Statement { return e.Source }
func (e *Enum) ParentNode() Node                { return e.Parent }
func (e *Enum) Exts() []*statement.Statement     { return e.Extensions }

type Bit struct {
	Name        string                 `yang:"Name,nomerge"`
	Source      *statement.Statement   `yang:"Statement,nomerge"`
	Parent      Node                   `yang:"Parent,nomerge"`
	Extensions  []*statement.Statement `yang:"Ext"`
	Position    *Value                 `yang:"position,nomerge"`
	Status      *Value                 `yang:"status,nomerge"`
	Description *Value                 `yang:"description,nomerge"`
}

func (Bit) Kind() string                      { return "bit" }
func (b *Bit) NName() string                  { return b.Name }
func (b *Bit) Statement() *statement.Statement { return b.Source }
func (b *Bit) ParentNode() Node                { return b.Parent }
func (b *Bit) Exts() []*statement.Statement     { return b.Extensions }

type Grouping struct {
	Name       string                 `yang:"Name,nomerge"`
	Source     *statement.Statement   `yang:"Statement,nomerge"`
	Parent     Node                   `yang:"Parent,nomerge"`
	Extensions []*statement.Statement `yang:"Ext"`

	Status      *Value `yang:"status,nomerge"`
	Description *Value `yang:"description,nomerge"`
	Reference   *Value `yang:"reference,nomerge"`

	Typedef      []*Typedef      `yang:"typedef"`
	Grouping     []*Grouping     `yang:"grouping"`
	Container    []*Container    `yang:"container"`
	Leaf         []*Leaf         `yang:"leaf"`
	LeafList     []*LeafList     `yang:"leaf-list"`
	List         []*List         `yang:"list"`
	Choice       []*Choice       `yang:"choice"`
	Anydata      []*AnyData      `yang:"anydata"`
	Anyxml       []*AnyXML       `yang:"anyxml"`
	Uses         []*Uses         `yang:"uses"`
	Action       []*Action       `yang:"action"`
	Notification []*Notification `yang:"notification"`
}

func (Grouping) Kind() string                      { return "grouping" }
func (g *Grouping) NName() string                  { return g.Name }
func (g *Grouping) Statement() *statement.Statement { return g.Source }
func (g *Grouping) ParentNode() Node                { return g.Parent }
func (g *Grouping) Exts() []*statement.Statement     { return g.Extensions }
func (g *Grouping) Typedefs() []*Typedef            { return g.Typedef }

type Uses struct {
	Name       string                 `yang:"Name,nomerge"`
	Source     *statement.Statement   `yang:"Statement,nomerge"`
	Parent     Node                   `yang:"Parent,nomerge"`
	Extensions []*statement.Statement `yang:"Ext"`

	Description *Value     `yang:"description,nomerge"`
	Reference   *Value     `yang:"reference,nomerge"`
	Status      *Value     `yang:"status,nomerge"`
	Refine      []*Refine  `yang:"refine"`
	Augment     []*Augment `yang:"augment"`
}

func (Uses) Kind() string                      { return "uses" }
func (u *Uses) NName() string                  { return u.Name }
func (u *Uses) Statement() *statement.Statement { return u.Source }
func (u *Uses) ParentNode() Node                { return u.Parent }
func (u *Uses) Exts() []*statement.Statement     { return u.Extensions }

type Refine struct {
	Name       string                 `yang:"Name,nomerge"`
	Source     *statement.Statement   `yang:"Statement,nomerge"`
	Parent     Node                   `yang:"Parent,nomerge"`
	Extensions []*statement.Statement `yang:"Ext"`

	Description  *Value `yang:"description,nomerge"`
	Default      *Value `yang:"default,nomerge"`
	Config       *Value `yang:"config,nomerge"`
	Mandatory    *Value `yang:"mandatory,nomerge"`
	Presence     *Value `yang:"presence,nomerge"`
	MinElements  *Value `yang:"min-elements,nomerge"`
	MaxElements  *Value `yang:"max-elements,nomerge"`
	Must         []*Must `yang:"must"`
}

func (Refine) Kind() string                      { return "refine" }
func (r *Refine) NName() string                  { return r.Name }
func (r *Refine) Statement() *statement.Statement { return r.Source }
func (r *Refine) ParentNode() Node                { return r.Parent }
func (r *Refine) Exts() []*statement.Statement     { return r.Extensions }

type Augment struct {
	Name       string                 `yang:"Name,nomerge"`
	Source     *statement.Statement   `yang:"Statement,nomerge"`
	Parent     Node                   `yang:"Parent,nomerge"`
	Extensions []*statement.Statement `yang:"Ext"`

	Description *Value `yang:"description,nomerge"`
	Reference   *Value `yang:"reference,nomerge"`
	Status      *Value `yang:"status,nomerge"`
	When        *When  `yang:"when,nomerge"`

	Container    []*Container    `yang:"container"`
	Leaf         []*Leaf         `yang:"leaf"`
	LeafList     []*LeafList     `yang:"leaf-list"`
	List         []*List         `yang:"list"`
	Choice       []*Choice       `yang:"choice"`
	Case         []*Case         `yang:"case"`
	Anydata      []*AnyData      `yang:"anydata"`
	Anyxml       []*AnyXML       `yang:"anyxml"`
	Uses         []*Uses         `yang:"uses"`
	Action       []*Action       `yang:"action"`
	Notification []*Notification `yang:"notification"`
}

func (Augment) Kind() string                      { return "augment" }
func (a *Augment) NName() string                  { return a.Name }
func (a *Augment) Statement() *statement.Statement { return a.Source }
func (a *Augment) ParentNode() Node                { return a.Parent }
func (a *Augment) Exts() []*statement.Statement     { return a.Extensions }

type Deviation struct {
	Name        string                 `yang:"Name,nomerge"`
	Source      *statement.Statement   `yang:"Statement,nomerge"`
	Parent      Node                   `yang:"Parent,nomerge"`
	Extensions  []*statement.Statement `yang:"Ext"`
	Description *Value                 `yang:"description,nomerge"`
	Reference   *Value                 `yang:"reference,nomerge"`
	Deviate     []*Deviate             `yang:"deviate"`
}

func (Deviation) Kind() string                      { return "deviation" }
func (d *Deviation) NName() string                  { return d.Name }
func (d *Deviation) Statement() *statement.Statement { return d.Source }
func (d *Deviation) ParentNode() Node                { return d.Parent }
func (d *Deviation) Exts() []*statement.Statement     { return d.Extensions }

// Deviate holds one "deviate <not-supported|add|replace|delete>" entry;
// its Name carries the variant.
type Deviate struct {
	Name       string                 `yang:"Name,nomerge"`
	Source     *statement.Statement   `yang:"Statement,nomerge"`
	Parent     Node                   `yang:"Parent,nomerge"`
	Extensions []*statement.Statement `yang:"Ext"`

	Type        *Type  `yang:"type,nomerge"`
	Units       *Value `yang:"units,nomerge"`
	Default     *Value `yang:"default,nomerge"`
	Config      *Value `yang:"config,nomerge"`
	Mandatory   *Value `yang:"mandatory,nomerge"`
	MinElements *Value `yang:"min-elements,nomerge"`
	MaxElements *Value `yang:"max-elements,nomerge"`
	Must        []*Must `yang:"must"`
}

func (Deviate) Kind() string                      { return "deviate" }
func (d *Deviate) NName() string                  { return d.Name }
func (d *Deviate) Statement() *statement.Statement { return d.Source }
func (d *Deviate) ParentNode() Node                { return d.Parent }
func (d *Deviate) Exts() []*statement.Statement     { return d.Extensions }

type Identity struct {
	Name        string                 `yang:"Name,nomerge"`
	Source      *statement.Statement   `yang:"Statement,nomerge"`
	Parent      Node                   `yang:"Parent,nomerge"`
	Extensions  []*statement.Statement `yang:"Ext"`
	Base        []*Value               `yang:"base"`
	Status      *Value                 `yang:"status,nomerge"`
	Description *Value                 `yang:"description,nomerge"`
	Reference   *Value                 `yang:"reference,nomerge"`
}

func (Identity) Kind() string                      { return "identity" }
func (i *Identity) NName() string                  { return i.Name }
func (i *Identity) Statement() *statement.Statement { return i.Source }
func (i *Identity) ParentNode() Node                { return i.Parent }
func (i *Identity) Exts() []*statement.Statement     { return i.Extensions }

type Extension struct {
	Name        string                 `yang:"Name,nomerge"`
	Source      *statement.Statement   `yang:"Statement,nomerge"`
	Parent      Node                   `yang:"Parent,nomerge"`
	Extensions  []*statement.Statement `yang:"Ext"`
	Argument    *ExtArgument           `yang:"argument,nomerge"`
	Status      *Value                 `yang:"status,nomerge"`
	Description *Value                 `yang:"description,nomerge"`
	Reference   *Value                 `yang:"reference,nomerge"`
}

func (Extension) Kind() string                      { return "extension" }
func (e *Extension) NName() string                  { return e.Name }
func (e *Extension) Statement() *statement.Statement { return e.Source }
func (e *Extension) ParentNode() Node                { return e.Parent }
func (e *Extension) Exts() []*statement.Statement     { return e.Extensions }

type ExtArgument struct {
	Name       string                 `yang:"Name,nomerge"`
	Source     *statement.Statement   `yang:"Statement,nomerge"`
	Parent     Node                   `yang:"Parent,nomerge"`
	Extensions []*statement.Statement `yang:"Ext"`
	YinElement *Value                 `yang:"yin-element,nomerge"`
}

func (ExtArgument) Kind() string                      { return "argument" }
func (a *ExtArgument) NName() string                  { return a.Name }
func (a *ExtArgument) Statement() *statement.Statement { return a.Source }
func (a *ExtArgument) ParentNode() Node                { return a.Parent }
func (a *ExtArgument) Exts() []*statement.Statement     { return a.Extensions }

type Feature struct {
	Name        string                 `yang:"Name,nomerge"`
	Source      *statement.Statement   `yang:"Statement,nomerge"`
	Parent      Node                   `yang:"Parent,nomerge"`
	Extensions  []*statement.Statement `yang:"Ext"`
	IfFeature   []*Value               `yang:"if-feature"`
	Status      *Value                 `yang:"status,nomerge"`
	Description *Value                 `yang:"description,nomerge"`
	Reference   *Value                 `yang:"reference,nomerge"`
}

func (Feature) Kind() string                      { return "feature" }
func (f *Feature) NName() string                  { return f.Name }
func (f *Feature) Statement() *statement.Statement { return f.Source }
func (f *Feature) ParentNode() Node                { return f.Parent }
func (f *Feature) Exts() []*statement.Statement     { return f.Extensions }

type Must struct {
	Name         string                 `yang:"Name,nomerge"`
	Source       *statement.Statement   `yang:"Statement,nomerge"`
	Parent       Node                   `yang:"Parent,nomerge"`
	Extensions   []*statement.Statement `yang:"Ext"`
	ErrorMessage *Value                 `yang:"error-message,nomerge"`
	ErrorAppTag  *Value                 `yang:"error-app-tag,nomerge"`
	Description  *Value                 `yang:"description,nomerge"`
}

func (Must) Kind() string                      { return "must" }
func (m *Must) NName() string                  { return m.Name }
func (m *Must) Statement() *statement.Statement { return m.Source }
func (m *Must) ParentNode() Node                { return m.Parent }
func (m *Must) Exts() []*statement.Statement     { return m.Extensions }

type When struct {
	Name        string                 `yang:"Name,nomerge"`
	Source      *statement.Statement   `yang:"Statement,nomerge"`
	Parent      Node                   `yang:"Parent,nomerge"`
	Extensions  []*statement.Statement `yang:"Ext"`
	Description *Value                 `yang:"description,nomerge"`
}

func (When) Kind() string                      { return "when" }
func (w *When) NName() string                  { return w.Name }
func (w *When) Statement() *statement.Statement { return w.Source }
func (w *When) ParentNode() Node                { return w.Parent }
func (w *When) Exts() []*statement.Statement     { return w.Extensions }

// dataDefFields are the substatements common to container, list and the
// other "data definition" producing statements. Embedded by value in
// each concrete type below (Go has no struct-tag-preserving embedding
// that reflection sees through cleanly, so each type repeats them, as
// the teacher's yang.go also does).

type Container struct {
	Name       string                 `yang:"Name,nomerge"`
	Source     *statement.Statement   `yang:"Statement,nomerge"`
	Parent     Node                   `yang:"Parent,nomerge"`
	Extensions []*statement.Statement `yang:"Ext"`

	When        *When  `yang:"when,nomerge"`
	IfFeature   []*Value `yang:"if-feature"`
	Must        []*Must  `yang:"must"`
	Presence    *Value `yang:"presence,nomerge"`
	Config      *Value `yang:"config,nomerge"`
	Status      *Value `yang:"status,nomerge"`
	Description *Value `yang:"description,nomerge"`
	Reference   *Value `yang:"reference,nomerge"`

	Typedef      []*Typedef      `yang:"typedef"`
	Grouping     []*Grouping     `yang:"grouping"`
	Container    []*Container    `yang:"container"`
	Leaf         []*Leaf         `yang:"leaf"`
	LeafList     []*LeafList     `yang:"leaf-list"`
	List         []*List         `yang:"list"`
	Choice       []*Choice       `yang:"choice"`
	Anydata      []*AnyData      `yang:"anydata"`
	Anyxml       []*AnyXML       `yang:"anyxml"`
	Uses         []*Uses         `yang:"uses"`
	Action       []*Action       `yang:"action"`
	Notification []*Notification `yang:"notification"`
}

func (Container) Kind() string                      { return "container" }
func (c *Container) NName() string                  { return c.Name }
func (c *Container) Statement() *statement.Statement { return c.Source }
func (c *Container) ParentNode() Node                { return c.Parent }
func (c *Container) Exts() []*statement.Statement     { return c.Extensions }
func (c *Container) Typedefs() []*Typedef            { return c.Typedef }

type Leaf struct {
	Name       string                 `yang:"Name,nomerge"`
	Source     *statement.Statement   `yang:"Statement,nomerge"`
	Parent     Node                   `yang:"Parent,nomerge"`
	Extensions []*statement.Statement `yang:"Ext"`

	When        *When    `yang:"when,nomerge"`
	IfFeature   []*Value `yang:"if-feature"`
	Type        *Type    `yang:"type,required,nomerge"`
	Units       *Value   `yang:"units,nomerge"`
	Must        []*Must  `yang:"must"`
	Default     *Value   `yang:"default,nomerge"`
	Config      *Value   `yang:"config,nomerge"`
	Mandatory   *Value   `yang:"mandatory,nomerge"`
	Status      *Value   `yang:"status,nomerge"`
	Description *Value   `yang:"description,nomerge"`
	Reference   *Value   `yang:"reference,nomerge"`
}

func (Leaf) Kind() string                      { return "leaf" }
func (l *Leaf) NName() string                  { return l.Name }
func (l *Leaf) Statement() *statement.Statement { return l.Source }
func (l *Leaf) ParentNode() Node                { return l.Parent }
func (l *Leaf) Exts() []*statement.Statement     { return l.Extensions }

type LeafList struct {
	Name       string                 `yang:"Name,nomerge"`
	Source     *statement.Statement   `yang:"Statement,nomerge"`
	Parent     Node                   `yang:"Parent,nomerge"`
	Extensions []*statement.Statement `yang:"Ext"`

	When        *When    `yang:"when,nomerge"`
	IfFeature   []*Value `yang:"if-feature"`
	Type        *Type    `yang:"type,required,nomerge"`
	Units       *Value   `yang:"units,nomerge"`
	Must        []*Must  `yang:"must"`
	Default     []*Value `yang:"default"`
	Config      *Value   `yang:"config,nomerge"`
	MinElements *Value   `yang:"min-elements,nomerge"`
	MaxElements *Value   `yang:"max-elements,nomerge"`
	OrderedBy   *Value   `yang:"ordered-by,nomerge"`
	Status      *Value   `yang:"status,nomerge"`
	Description *Value   `yang:"description,nomerge"`
	Reference   *Value   `yang:"reference,nomerge"`
}

func (LeafList) Kind() string                      { return "leaf-list" }
func (l *LeafList) NName() string                  { return l.Name }
func (l *LeafList) Statement() *statement.Statement { return l.Source }
func (l *LeafList) ParentNode() Node                { return l.Parent }
func (l *LeafList) Exts() []*statement.Statement     { return l.Extensions }

type List struct {
	Name       string                 `yang:"Name,nomerge"`
	Source     *statement.Statement   `yang:"Statement,nomerge"`
	Parent     Node                   `yang:"Parent,nomerge"`
	Extensions []*statement.Statement `yang:"Ext"`

	When        *When    `yang:"when,nomerge"`
	IfFeature   []*Value `yang:"if-feature"`
	Must        []*Must  `yang:"must"`
	Key         *Value   `yang:"key,nomerge"`
	Unique      []*Value `yang:"unique"`
	Config      *Value   `yang:"config,nomerge"`
	MinElements *Value   `yang:"min-elements,nomerge"`
	MaxElements *Value   `yang:"max-elements,nomerge"`
	OrderedBy   *Value   `yang:"ordered-by,nomerge"`
	Status      *Value   `yang:"status,nomerge"`
	Description *Value   `yang:"description,nomerge"`
	Reference   *Value   `yang:"reference,nomerge"`

	Typedef      []*Typedef      `yang:"typedef"`
	Grouping     []*Grouping     `yang:"grouping"`
	Container    []*Container    `yang:"container"`
	Leaf         []*Leaf         `yang:"leaf"`
	LeafList     []*LeafList     `yang:"leaf-list"`
	List         []*List         `yang:"list"`
	Choice       []*Choice       `yang:"choice"`
	Anydata      []*AnyData      `yang:"anydata"`
	Anyxml       []*AnyXML       `yang:"anyxml"`
	Uses         []*Uses         `yang:"uses"`
	Action       []*Action       `yang:"action"`
	Notification []*Notification `yang:"notification"`
}

func (List) Kind() string                      { return "list" }
func (l *List) NName() string                  { return l.Name }
func (l *List) Statement() *statement.Statement { return l.Source }
func (l *List) ParentNode() Node                { return l.Parent }
func (l *List) Exts() []*statement.Statement     { return l.Extensions }
func (l *List) Typedefs() []*Typedef            { return l.Typedef }

type Choice struct {
	Name       string                 `yang:"Name,nomerge"`
	Source     *statement.Statement   `yang:"Statement,nomerge"`
	Parent     Node                   `yang:"Parent,nomerge"`
	Extensions []*statement.Statement `yang:"Ext"`

	When        *When    `yang:"when,nomerge"`
	IfFeature   []*Value `yang:"if-feature"`
	Default     *Value   `yang:"default,nomerge"`
	Config      *Value   `yang:"config,nomerge"`
	Mandatory   *Value   `yang:"mandatory,nomerge"`
	Status      *Value   `yang:"status,nomerge"`
	Description *Value   `yang:"description,nomerge"`
	Reference   *Value   `yang:"reference,nomerge"`

	Case      []*Case      `yang:"case"`
	Container []*Container `yang:"container"`
	Leaf      []*Leaf      `yang:"leaf"`
	LeafList  []*LeafList  `yang:"leaf-list"`
	List      []*List      `yang:"list"`
	Anydata   []*AnyData   `yang:"anydata"`
	Anyxml    []*AnyXML    `yang:"anyxml"`
}

func (Choice) Kind() string                      { return "choice" }
func (c *Choice) NName() string                  { return c.Name }
func (c *Choice) Statement() *statement.Statement { return c.Source }
func (c *Choice) ParentNode() Node                { return c.Parent }
func (c *Choice) Exts() []*statement.Statement     { return c.Extensions }

type Case struct {
	Name       string                 `yang:"Name,nomerge"`
	Source     *statement.Statement   `yang:"Statement,nomerge"`
	Parent     Node                   `yang:"Parent,nomerge"`
	Extensions []*statement.Statement `yang:"Ext"`

	When        *When  `yang:"when,nomerge"`
	IfFeature   []*Value `yang:"if-feature"`
	Status      *Value `yang:"status,nomerge"`
	Description *Value `yang:"description,nomerge"`
	Reference   *Value `yang:"reference,nomerge"`

	Container []*Container `yang:"container"`
	Leaf      []*Leaf      `yang:"leaf"`
	LeafList  []*LeafList  `yang:"leaf-list"`
	List      []*List      `yang:"list"`
	Choice    []*Choice    `yang:"choice"`
	Anydata   []*AnyData   `yang:"anydata"`
	Anyxml    []*AnyXML    `yang:"anyxml"`
	Uses      []*Uses      `yang:"uses"`
}

func (Case) Kind() string                      { return "case" }
func (c *Case) NName() string                  { return c.Name }
func (c *Case) Statement() *statement.Statement { return c.Source }
func (c *Case) ParentNode() Node                { return c.Parent }
func (c *Case) Exts() []*statement.Statement     { return c.Extensions }

type AnyData struct {
	Name       string                 `yang:"Name,nomerge"`
	Source     *statement.Statement   `yang:"Statement,nomerge"`
	Parent     Node                   `yang:"Parent,nomerge"`
	Extensions []*statement.Statement `yang:"Ext"`

	When        *When    `yang:"when,nomerge"`
	IfFeature   []*Value `yang:"if-feature"`
	Must        []*Must  `yang:"must"`
	Config      *Value   `yang:"config,nomerge"`
	Mandatory   *Value   `yang:"mandatory,nomerge"`
	Status      *Value   `yang:"status,nomerge"`
	Description *Value   `yang:"description,nomerge"`
	Reference   *Value   `yang:"reference,nomerge"`
}

func (AnyData) Kind() string                      { return "anydata" }
func (a *AnyData) NName() string                  { return a.Name }
func (a *AnyData) Statement() *statement.Statement { return a.Source }
func (a *AnyData) ParentNode() Node                { return a.Parent }
func (a *AnyData) Exts() []*statement.Statement     { return a.Extensions }

type AnyXML struct {
	Name       string                 `yang:"Name,nomerge"`
	Source     *statement.Statement   `yang:"Statement,nomerge"`
	Parent     Node                   `yang:"Parent,nomerge"`
	Extensions []*statement.Statement `yang:"Ext"`

	When        *When    `yang:"when,nomerge"`
	IfFeature   []*Value `yang:"if-feature"`
	Must        []*Must  `yang:"must"`
	Config      *Value   `yang:"config,nomerge"`
	Mandatory   *Value   `yang:"mandatory,nomerge"`
	Status      *Value   `yang:"status,nomerge"`
	Description *Value   `yang:"description,nomerge"`
	Reference   *Value   `yang:"reference,nomerge"`
}

func (AnyXML) Kind() string                      { return "anyxml" }
func (a *AnyXML) NName() string                  { return a.Name }
func (a *AnyXML) Statement() *statement.Statement { return a.Source }
func (a *AnyXML) ParentNode() Node                { return a.Parent }
func (a *AnyXML) Exts() []*statement.Statement     { return a.Extensions }

type RPC struct {
	Name       string                 `yang:"Name,nomerge"`
	Source     *statement.Statement   `yang:"Statement,nomerge"`
	Parent     Node                   `yang:"Parent,nomerge"`
	Extensions []*statement.Statement `yang:"Ext"`

	IfFeature   []*Value `yang:"if-feature"`
	Status      *Value   `yang:"status,nomerge"`
	Description *Value   `yang:"description,nomerge"`
	Reference   *Value   `yang:"reference,nomerge"`
	Typedef     []*Typedef  `yang:"typedef"`
	Grouping    []*Grouping `yang:"grouping"`
	Input       *Input      `yang:"input,nomerge"`
	Output      *Output     `yang:"output,nomerge"`
}

func (RPC) Kind() string                      { return "rpc" }
func (r *RPC) NName() string                  { return r.Name }
func (r *RPC) Statement() *statement.Statement { return r.Source }
func (r *RPC) ParentNode() Node                { return r.Parent }
func (r *RPC) Exts() []*statement.Statement     { return r.Extensions }
func (r *RPC) Typedefs() []*Typedef            { return r.Typedef }

type Action struct {
	Name       string                 `yang:"Name,nomerge"`
	Source     *statement.Statement   `yang:"Statement,nomerge"`
	Parent     Node                   `yang:"Parent,nomerge"`
	Extensions []*statement.Statement `yang:"Ext"`

	IfFeature   []*Value `yang:"if-feature"`
	Status      *Value   `yang:"status,nomerge"`
	Description *Value   `yang:"description,nomerge"`
	Reference   *Value   `yang:"reference,nomerge"`
	Typedef     []*Typedef  `yang:"typedef"`
	Grouping    []*Grouping `yang:"grouping"`
	Input       *Input      `yang:"input,nomerge"`
	Output      *Output     `yang:"output,nomerge"`
}

func (Action) Kind() string                      { return "action" }
func (a *Action) NName() string                  { return a.Name }
func (a *Action) Statement() *statement.Statement { return a.Source }
func (a *Action) ParentNode() Node                { return a.Parent }
func (a *Action) Exts() []*statement.Statement     { return a.Extensions }
func (a *Action) Typedefs() []*Typedef            { return a.Typedef }

type Input struct {
	Name       string                 `yang:"Name,nomerge"`
	Source     *statement.Statement   `yang:"Statement,nomerge"`
	Parent     Node                   `yang:"Parent,nomerge"`
	Extensions []*statement.Statement `yang:"Ext"`

	Typedef   []*Typedef  `yang:"typedef"`
	Grouping  []*Grouping `yang:"grouping"`
	Container []*Container `yang:"container"`
	Leaf      []*Leaf      `yang:"leaf"`
	LeafList  []*LeafList  `yang:"leaf-list"`
	List      []*List      `yang:"list"`
	Choice    []*Choice    `yang:"choice"`
	Anydata   []*AnyData   `yang:"anydata"`
	Anyxml    []*AnyXML    `yang:"anyxml"`
	Uses      []*Uses      `yang:"uses"`
}

func (Input) Kind() string                      { return "input" }
func (i *Input) NName() string                  { return "input" }
func (i *Input) Statement() *statement.Statement { return i.Source }
func (i *Input) ParentNode() Node                { return i.Parent }
func (i *Input) Exts() []*statement.Statement     { return i.Extensions }
func (i *Input) Typedefs() []*Typedef            { return i.Typedef }

type Output struct {
	Name       string                 `yang:"Name,nomerge"`
	Source     *statement.Statement   `yang:"Statement,nomerge"`
	Parent     Node                   `yang:"Parent,nomerge"`
	Extensions []*statement.Statement `yang:"Ext"`

	Typedef   []*Typedef  `yang:"typedef"`
	Grouping  []*Grouping `yang:"grouping"`
	Container []*Container `yang:"container"`
	Leaf      []*Leaf      `yang:"leaf"`
	LeafList  []*LeafList  `yang:"leaf-list"`
	List      []*List      `yang:"list"`
	Choice    []*Choice    `yang:"choice"`
	Anydata   []*AnyData   `yang:"anydata"`
	Anyxml    []*AnyXML    `yang:"anyxml"`
	Uses      []*Uses      `yang:"uses"`
}

func (Output) Kind() string                      { return "output" }
func (o *Output) NName() string                  { return "output" }
func (o *Output) Statement() *statement.Statement { return o.Source }
func (o *Output) ParentNode() Node                { return o.Parent }
func (o *Output) Exts() []*statement.Statement     { return o.Extensions }
func (o *Output) Typedefs() []*Typedef            { return o.Typedef }

type Notification struct {
	Name       string                 `yang:"Name,nomerge"`
	Source     *statement.Statement   `yang:"Statement,nomerge"`
	Parent     Node                   `yang:"Parent,nomerge"`
	Extensions []*statement.Statement `yang:"Ext"`

	IfFeature   []*Value `yang:"if-feature"`
	Status      *Value   `yang:"status,nomerge"`
	Description *Value   `yang:"description,nomerge"`
	Reference   *Value   `yang:"reference,nomerge"`

	Typedef   []*Typedef  `yang:"typedef"`
	Grouping  []*Grouping `yang:"grouping"`
	Container []*Container `yang:"container"`
	Leaf      []*Leaf      `yang:"leaf"`
	LeafList  []*LeafList  `yang:"leaf-list"`
	List      []*List      `yang:"list"`
	Choice    []*Choice    `yang:"choice"`
	Anydata   []*AnyData   `yang:"anydata"`
	Anyxml    []*AnyXML    `yang:"anyxml"`
	Uses      []*Uses      `yang:"uses"`
}

func (Notification) Kind() string                      { return "notification" }
func (n *Notification) NName() string                  { return n.Name }
func (n *Notification) Statement() *statement.Statement { return n.Source }
func (n *Notification) ParentNode() Node                { return n.Parent }
func (n *Notification) Exts() []*statement.Statement     { return n.Extensions }
func (n *Notification) Typedefs() []*Typedef            { return n.Typedef }
