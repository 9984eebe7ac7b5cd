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

// Package context implements the top-level Context: it owns the
// dictionary, the compiled modules, the module search path and options,
// and the goroutine-local error state, wiring package schema, mount,
// data, yerr and dictionary together the way the teacher's Modules type
// (modules.go) is the one thing every other goyang package is driven
// through.
package context

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/yangforge/yangcore/ast"
	"github.com/yangforge/yangcore/data"
	"github.com/yangforge/yangcore/dictionary"
	"github.com/yangforge/yangcore/mount"
	"github.com/yangforge/yangcore/plugin"
	"github.com/yangforge/yangcore/schema"
	"github.com/yangforge/yangcore/statement"
	"github.com/yangforge/yangcore/yerr"
	"github.com/yangforge/yangcore/yin"
	"golang.org/x/sync/errgroup"
)

// moduleKey is a compiled module's (name, revision) identity, per
// spec.md's Data Model "Context" -> module map key.
type moduleKey struct {
	Name     string
	Revision string
}

// Context owns one set of compiled modules plus the state (dictionary,
// search path, options, error chains) needed to load more into it.
// Reads (CompiledModule, Validate) are safe for concurrent callers;
// mutation (LoadModule) requires external serialization, per spec.md §5.
type Context struct {
	dict        dictionary.Dictionary
	opts        Options
	errState    *yerr.State
	nextToken   uint64
	registry    *plugin.Registry
	mountExt    *mount.Extension

	mu          sync.RWMutex
	compiler    *schema.Compiler
	modules     map[moduleKey]*schema.Module
	byNamespace map[string]*schema.Module
}

// New returns an empty Context configured by opts.
func New(opts Options) *Context {
	c := &Context{
		dict:        dictionary.New(),
		opts:        opts,
		errState:    yerr.NewState(),
		compiler:    schema.NewCompiler(),
		modules:     map[moduleKey]*schema.Module{},
		byNamespace: map[string]*schema.Module{},
	}
	c.errState.SetCallback(defaultLogCallback)
	if opts.DebugGroups != 0 {
		c.errState.SetDebugGroups(opts.DebugGroups)
	}
	return c
}

// EnableMountPoint registers the mount-point extension with this
// Context's schema compiler, wiring get as the get_ext_data callback and
// using a fresh child Context (of the same search path and options) as
// the SchemaBuilder for inner mount contexts (spec.md §4.5).
func (c *Context) EnableMountPoint(get mount.GetExtDataFunc) {
	build := func(modules []string) (*schema.Module, error) {
		inner := New(c.opts)
		var last *schema.Module
		for _, name := range modules {
			m, err := inner.LoadModule(name)
			if err != nil {
				return nil, fmt.Errorf("mount: building inner context: %w", err)
			}
			last = m
		}
		if last == nil {
			return nil, fmt.Errorf("mount: no modules named for inner context")
		}
		return last, nil
	}
	c.mountExt = mount.New(get, build)
	c.registry = plugin.NewRegistry()
	c.registry.Register(c.mountExt)
	c.compiler.SetRegistry(c.registry)
}

// Attach allocates a Token identifying the calling goroutine's error
// state for the duration of one top-level operation. Callers use it as:
//
//	tok := ctx.Attach()
//	defer ctx.Detach(tok)
func (c *Context) Attach() yerr.Token {
	return yerr.Token(atomic.AddUint64(&c.nextToken, 1))
}

// Detach discards tok's error chain.
func (c *Context) Detach(tok yerr.Token) { c.errState.Clear(tok) }

// Errors returns tok's full error chain, oldest first.
func (c *Context) Errors(tok yerr.Token) []yerr.Item { return c.errState.All(tok) }

// LoadModule resolves name (and everything it transitively imports or
// includes) from the search path, compiles it together with every
// previously loaded module, and returns its compiled form. Independent
// imports are parsed concurrently (I/O-bound file reads and per-file
// parsing have no cross-module dependency); schema.Compiler itself is
// mutated single-threaded afterward, preserving spec.md §5's
// single-writer rule.
func (c *Context) LoadModule(name string) (*schema.Module, error) {
	tok := c.Attach()
	defer c.Detach(tok)

	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.compiledModuleLocked(name); ok {
		return m, nil
	}

	ls := &loadState{seen: map[string]*ast.Module{}}
	if err := c.loadTransitive(name, ls); err != nil {
		c.errState.Log(tok, yerr.Item{Level: yerr.LError, Code: yerr.NotFound, Message: err.Error()})
		return nil, err
	}
	for _, mod := range ls.seen {
		if _, ok := c.compiledModuleLocked(mod.Name); ok {
			continue // already compiled in an earlier LoadModule call
		}
		if err := c.compiler.AddModule(mod); err != nil {
			return nil, err
		}
	}

	mods, errs := c.compiler.Compile()
	if len(errs) > 0 {
		for _, e := range errs {
			c.errState.Log(tok, yerr.Item{Level: yerr.LError, Code: yerr.Validation, Message: e.Error()})
		}
		return nil, errors.Join(errs...)
	}
	for _, m := range mods {
		rev := ""
		if len(m.Decl.Revision) > 0 {
			rev = m.Decl.Revision[0].Name
		}
		c.modules[moduleKey{Name: m.Decl.Name, Revision: rev}] = m
		if m.Decl.Namespace != nil {
			c.byNamespace[m.Decl.Namespace.Name] = m
		}
	}

	m, ok := c.compiledModuleLocked(name)
	if !ok {
		return nil, fmt.Errorf("context: module %q not found after compile", name)
	}
	return m, nil
}

// CompiledModule returns the compiled module named name, if loaded.
func (c *Context) CompiledModule(name string) (*schema.Module, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.compiledModuleLocked(name)
}

func (c *Context) compiledModuleLocked(name string) (*schema.Module, bool) {
	// Multiple revisions of the same module are not disambiguated
	// here: the first match wins. A real multi-revision context would
	// need a caller-supplied revision preference, which spec.md does
	// not specify.
	for k, m := range c.modules {
		if k.Name == name {
			return m, true
		}
	}
	return nil, false
}

// Modules returns every compiled module, in no particular order.
func (c *Context) Modules() []*schema.Module {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*schema.Module, 0, len(c.modules))
	for _, m := range c.modules {
		out = append(out, m)
	}
	return out
}

// Validate runs the two-pass data validator over root, logging each
// failure into tok's error chain in addition to returning the joined
// error, so callers that only check the return value and callers that
// inspect Errors(tok) after the fact see the same failures.
func (c *Context) Validate(tok yerr.Token, root *data.Node) error {
	errs := data.Validate(root)
	if len(errs) == 0 {
		return nil
	}
	for _, e := range errs {
		c.errState.Log(tok, yerr.Item{Level: yerr.LError, Code: yerr.Validation, ValidationCode: yerr.VData, Message: e.Error(), Path: root.Path()})
	}
	return errors.Join(errs...)
}

// loadState tracks modules already parsed (or in flight) across the
// concurrent import/include fan-out in loadTransitive.
type loadState struct {
	mu   sync.Mutex
	seen map[string]*ast.Module
}

func (c *Context) loadTransitive(name string, ls *loadState) error {
	ls.mu.Lock()
	if _, ok := ls.seen[name]; ok {
		ls.mu.Unlock()
		return nil
	}
	ls.seen[name] = nil // claim it before releasing the lock
	ls.mu.Unlock()

	mod, err := c.parseFile(name)
	if err != nil {
		return err
	}
	ls.mu.Lock()
	ls.seen[name] = mod
	ls.mu.Unlock()

	var g errgroup.Group
	for _, imp := range mod.Import {
		imp := imp
		g.Go(func() error { return c.loadTransitive(imp.Name, ls) })
	}
	for _, inc := range mod.Include {
		inc := inc
		g.Go(func() error { return c.loadTransitive(inc.Name, ls) })
	}
	return g.Wait()
}

// parseFile locates name in the search path (trying "<name>.yang" then
// "<name>.yin") and parses it into an *ast.Module.
func (c *Context) parseFile(name string) (*ast.Module, error) {
	for _, dir := range c.opts.SearchDirs {
		yangPath := filepath.Join(dir, name+".yang")
		if buf, err := os.ReadFile(yangPath); err == nil {
			stmts, err := statement.Parse(string(buf), yangPath)
			if err != nil {
				return nil, err
			}
			return buildModule(stmts, yangPath)
		}
		yinPath := filepath.Join(dir, name+".yin")
		if f, err := os.Open(yinPath); err == nil {
			defer f.Close()
			stmts, err := yin.Parse(f, yinPath)
			if err != nil {
				return nil, err
			}
			return buildModule(stmts, yinPath)
		}
	}
	return nil, fmt.Errorf("context: module %q not found in search path %v", name, c.opts.SearchDirs)
}

func buildModule(stmts []*statement.Statement, file string) (*ast.Module, error) {
	if len(stmts) != 1 {
		return nil, fmt.Errorf("%s: want exactly one top-level statement, got %d", file, len(stmts))
	}
	n, err := ast.Build(stmts[0])
	if err != nil {
		return nil, err
	}
	m, ok := n.(*ast.Module)
	if !ok {
		return nil, fmt.Errorf("%s: top-level statement %q is not a module or submodule", file, stmts[0].Keyword)
	}
	return m, nil
}
