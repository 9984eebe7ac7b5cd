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

// Package dictionary implements a process- or context-scoped interned
// string store. Every identifier, prefix and textual value referenced by
// a parsed or compiled module is inserted once and thereafter referenced
// by a stable ID, avoiding duplicate allocation of the same string across
// a large schema tree.
package dictionary

import (
	"fmt"
	"sync"
)

// An ID is a stable handle to an interned string. IDs are only comparable
// within the Dictionary that produced them; zero is never a valid ID.
type ID uint32

// Dictionary is the interface external collaborators (and the rest of
// this module) use to intern and resolve strings. A concrete Dictionary
// is owned by exactly one Context for its lifetime; IDs it hands out stay
// valid for as long as that Context lives.
type Dictionary interface {
	// Insert interns s, returning its stable ID. Calling Insert twice
	// with the same string returns the same ID.
	Insert(s string) ID
	// Remove drops the reference held for id. Once no references
	// remain the backing string may be reclaimed; String(id) after a
	// balanced set of Remove calls is undefined.
	Remove(id ID)
	// Find looks up s without inserting it.
	Find(s string) (ID, bool)
	// String resolves id back to its text. Panics if id is unknown to
	// this Dictionary.
	String(id ID) string
}

type entry struct {
	id   ID
	refs int32
}

// dict is the default, mutex-guarded map-backed Dictionary implementation.
// Grounded on the two bespoke singleton caches the teacher hand-rolls for
// typedefs and identities (pkg/yang/types.go's typeDictionary,
// pkg/yang/identity.go's identityDictionary): this generalizes that same
// "mutex + map" shape into one reusable, ref-counted component instead of
// duplicating it per concern.
type dict struct {
	mu     sync.Mutex
	byStr  map[string]*entry
	byID   map[ID]string
	nextID ID
}

// New returns a fresh, empty Dictionary.
func New() Dictionary {
	return &dict{
		byStr: map[string]*entry{},
		byID:  map[ID]string{},
	}
}

func (d *dict) Insert(s string) ID {
	d.mu.Lock()
	defer d.mu.Unlock()
	if e, ok := d.byStr[s]; ok {
		e.refs++
		return e.id
	}
	d.nextID++
	id := d.nextID
	d.byStr[s] = &entry{id: id, refs: 1}
	d.byID[id] = s
	return id
}

func (d *dict) Remove(id ID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ok := d.byID[id]
	if !ok {
		return
	}
	e := d.byStr[s]
	if e == nil {
		return
	}
	e.refs--
	if e.refs <= 0 {
		delete(d.byStr, s)
		delete(d.byID, id)
	}
}

func (d *dict) Find(s string) (ID, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.byStr[s]
	if !ok {
		return 0, false
	}
	return e.id, true
}

func (d *dict) String(id ID) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ok := d.byID[id]
	if !ok {
		panic(fmt.Sprintf("dictionary: unknown id %d", id))
	}
	return s
}
