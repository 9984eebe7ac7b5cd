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

package ytype

import (
	"fmt"
	"sort"
)

// EnumType maps names to integer values, used both for enumeration and
// bits. Sharing one implementation for both mirrors the teacher: the
// only difference is whether values must be unique.
type EnumType struct {
	last   int64
	min    int64
	max    int64
	unique bool

	toString map[int64]string
	toInt    map[string]int64
}

func NewEnumType() *EnumType {
	return &EnumType{
		last: -1, min: MinEnum, max: MaxEnum, unique: true,
		toString: map[int64]string{}, toInt: map[string]int64{},
	}
}

func NewBitfield() *EnumType {
	return &EnumType{
		last: -1, min: 0, max: MaxBitfieldSize - 1,
		toString: map[int64]string{}, toInt: map[string]int64{},
	}
}

func (e *EnumType) Set(name string, value int64) error {
	if _, ok := e.toInt[name]; ok {
		return fmt.Errorf("field %s already assigned", name)
	}
	if oname, ok := e.toString[value]; e.unique && ok {
		return fmt.Errorf("fields %s and %s conflict on value %d", name, oname, value)
	}
	if value < e.min {
		return fmt.Errorf("value %d for %s too small (minimum is %d)", value, name, e.min)
	}
	if value > e.max {
		return fmt.Errorf("value %d for %s too large (maximum is %d)", value, name, e.max)
	}
	e.toString[value] = name
	e.toInt[name] = value
	if value >= e.last {
		e.last = value
	}
	return nil
}

func (e *EnumType) SetNext(name string) error {
	if e.last == MaxEnum {
		return fmt.Errorf("enum %q must specify a value since previous enum is the maximum value allowed", name)
	}
	return e.Set(name, e.last+1)
}

func (e *EnumType) Name(value int64) string    { return e.toString[value] }
func (e *EnumType) Value(name string) int64    { return e.toInt[name] }
func (e *EnumType) IsDefined(name string) bool { _, ok := e.toInt[name]; return ok }

func (e *EnumType) Names() []string {
	names := make([]string, 0, len(e.toInt))
	for name := range e.toInt {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Subset reports whether every name/value pair in e also appears,
// identically, in base -- the monotonic-tightening rule for a typedef
// that re-declares an enumeration or bits type (spec.md §4.3): a
// derived enumeration may drop members but never add or renumber one.
func (e *EnumType) Subset(base *EnumType) bool {
	if base == nil {
		return true
	}
	for name, v := range e.toInt {
		if bv, ok := base.toInt[name]; !ok || bv != v {
			return false
		}
	}
	return true
}
