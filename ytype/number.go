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

// Package ytype implements the YANG type system (spec.md §4.3): builtin
// kinds, range/length/pattern/enum/bit restriction, and the monotonic
// tightening rule that a typedef's restrictions must fall within every
// ancestor's.
package ytype

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

var (
	Int8Range  = mustParseRangesInt("-128..127")
	Int16Range = mustParseRangesInt("-32768..32767")
	Int32Range = mustParseRangesInt("-2147483648..2147483647")
	Int64Range = mustParseRangesInt("-9223372036854775808..9223372036854775807")

	Uint8Range  = mustParseRangesInt("0..255")
	Uint16Range = mustParseRangesInt("0..65535")
	Uint32Range = mustParseRangesInt("0..4294967295")
	Uint64Range = mustParseRangesInt("0..18446744073709551615")

	Decimal64Range = mustParseRangesDecimal("min..max", 1)
)

const (
	MaxInt64          = 1<<63 - 1
	MinInt64          = -1 << 63
	AbsMinInt64       = 1 << 63
	MaxEnum           = 1<<31 - 1
	MinEnum           = -1 << 31
	MaxBitfieldSize   = 1 << 32
	MaxFractionDigits uint8 = 18

	space18 = "000000000000000000"
)

type NumberKind int

const (
	Positive = NumberKind(iota)
	Negative
	MinNumber
	MaxNumber
)

// Number is either a plain integer or a YANG decimal (RFC 7950 §9.3.4),
// stored as an absolute value plus a fractional-digit count.
type Number struct {
	Kind           NumberKind
	Value          uint64
	FractionDigits uint8
}

var maxNumber = Number{Kind: MaxNumber}
var minNumber = Number{Kind: MinNumber}

func (n Number) IsDecimal() bool { return n.FractionDigits != 0 }

func (n Number) String() string {
	switch n.Kind {
	case MinNumber:
		return "min"
	case MaxNumber:
		return "max"
	}
	out := strconv.FormatUint(n.Value, 10)
	if n.IsDecimal() {
		fd := int(n.FractionDigits)
		if fd > 0 {
			ofd := len(out) - fd
			if ofd <= 0 {
				out = space18[:-ofd+1] + out
				ofd = 1
			}
			out = out[:ofd] + "." + out[ofd:]
		}
	}
	if n.Kind == Negative {
		out = "-" + out
	}
	return out
}

func (n Number) Int() (int64, error) {
	nv := n.Value
	if n.IsDecimal() {
		nv = n.Value / uint64(math.Pow10(int(n.FractionDigits)))
	}
	switch n.Kind {
	case MinNumber:
		return MinInt64, nil
	case MaxNumber:
		return MaxInt64, nil
	case Negative:
		switch {
		case nv == AbsMinInt64:
			return MinInt64, nil
		case nv < AbsMinInt64:
			return -int64(nv), nil
		}
	case Positive:
		if n.Value <= MaxInt64 {
			return int64(nv), nil
		}
		return 0, errors.New("signed integer overflow")
	}
	return 0, errors.New("unknown number type")
}

func (n Number) addQuantum(i uint64) Number {
	switch n.Kind {
	case MinNumber, MaxNumber:
		return n
	case Negative:
		if n.Value <= i {
			n.Value = i - n.Value
			n.Kind = Positive
		} else {
			n.Value -= i
		}
	case Positive:
		n.Value += i
	default:
		panic("ytype: add to unknown number type")
	}
	return n
}

func (n Number) Less(m Number) bool {
	switch {
	case m.Kind == MinNumber:
		return false
	case n.Kind == MinNumber:
		return true
	case n.Kind == MaxNumber:
		return false
	case m.Kind == MaxNumber:
		return true
	case n.Kind == Negative && m.Kind != Negative:
		return true
	case n.Kind != Negative && m.Kind == Negative:
		return false
	}
	nt, mt := n.Trunc(), m.Trunc()
	lt := nt < mt
	if nt == mt {
		nf, mf := n.frac(), m.frac()
		if nf == mf {
			return false
		}
		lt = nf < mf
	}
	if n.Kind == Negative {
		return !lt
	}
	return lt
}

func (n Number) Equal(m Number) bool { return !n.Less(m) && !m.Less(n) }

func (n Number) Trunc() uint64 {
	e := pow10(n.FractionDigits)
	return n.Value / e
}

func (n Number) frac() uint64 {
	frac := n.FractionDigits
	i := n.Trunc() * pow10(frac)
	return (n.Value - i) * pow10(uint8(18-frac))
}

// YRange is one inclusive [Min, Max] range.
type YRange struct {
	Min Number
	Max Number
}

func (r YRange) Valid() bool { return !r.Max.Less(r.Min) }

func (r YRange) String() string {
	if r.Min.Equal(r.Max) {
		return r.Min.String()
	}
	return r.Min.String() + ".." + r.Max.String()
}

func (r YRange) Equal(s YRange) bool { return r.Min.Equal(s.Min) && r.Max.Equal(s.Max) }

// YangRange is a sorted, coalesced, non-overlapping set of ranges.
type YangRange []YRange

func (r YangRange) String() string {
	s := make([]string, len(r))
	for i, v := range r {
		s[i] = v.String()
	}
	return strings.Join(s, "|")
}

func (r YangRange) Len() int      { return len(r) }
func (r YangRange) Swap(i, j int) { r[i], r[j] = r[j], r[i] }
func (r YangRange) Less(i, j int) bool {
	switch {
	case r[i].Min.Less(r[j].Min):
		return true
	case r[j].Min.Less(r[i].Min):
		return false
	default:
		return r[i].Max.Less(r[j].Max)
	}
}

func (r YangRange) Validate() error {
	if !sort.IsSorted(r) {
		return errors.New("range not sorted")
	}
	if len(r) == 0 {
		return nil
	}
	if !r[0].Valid() {
		return errors.New("invalid number")
	}
	p := r[0]
	for _, n := range r[1:] {
		if n.Min.Less(p.Max) {
			return errors.New("overlapping ranges")
		}
	}
	return nil
}

func (r YangRange) Sort() { sort.Sort(r) }

func (r YangRange) Equal(q YangRange) bool {
	if len(r) != len(q) {
		return false
	}
	for i, v := range r {
		if !v.Equal(q[i]) {
			return false
		}
	}
	return true
}

// Contains reports whether every value allowed by s is also allowed by
// r -- the monotonic-tightening subset check spec.md §4.3 requires of
// every restriction in a typedef derivation chain. An empty range means
// "the whole base type" on both sides.
func (r YangRange) Contains(s YangRange) bool {
	if len(s) == 0 || len(r) == 0 {
		return true
	}
	ri := 0
	for _, ss := range s {
		if ss.Min.Kind != MinNumber {
			for r[ri].Max.Less(ss.Min) {
				ri++
				if ri == len(r) {
					return false
				}
			}
		}
		if (ss.Max.Kind == MaxNumber) || (ss.Min.Kind == MinNumber) {
			continue
		}
		if ss.Min.Less(r[ri].Min) || r[ri].Max.Less(ss.Max) {
			return false
		}
	}
	return true
}

func FromInt(i int64) Number {
	if i < 0 {
		return Number{Kind: Negative, Value: uint64(-i)}
	}
	return Number{Kind: Positive, Value: uint64(i)}
}

func FromUint(i uint64) Number { return Number{Kind: Positive, Value: i} }

func ParseInt(s string) (Number, error) {
	s = strings.TrimSpace(s)
	var n Number
	switch s {
	case "max":
		return maxNumber, nil
	case "min":
		return minNumber, nil
	case "":
		return n, errors.New("converting empty string to number")
	case "+", "-":
		return n, errors.New("sign with no value")
	}
	n.Kind = Positive
	ns := s
	switch s[0] {
	case '+':
		ns = s[1:]
	case '-':
		n.Kind = Negative
		ns = s[1:]
	}
	var err error
	n.Value, err = strconv.ParseUint(ns, 0, 64)
	return n, err
}

func ParseDecimal(s string, fracDigRequired uint8) (n Number, err error) {
	s = strings.TrimSpace(s)
	switch s {
	case "max":
		return maxNumber, nil
	case "min":
		return minNumber, nil
	case "":
		return n, errors.New("converting empty string to number")
	case "+", "-":
		return n, errors.New("sign with no value")
	}
	return decimalValueFromString(s, fracDigRequired)
}

func decimalValueFromString(numStr string, fracDigRequired uint8) (n Number, err error) {
	if fracDigRequired > MaxFractionDigits || fracDigRequired < 1 {
		return n, fmt.Errorf("invalid number of fraction digits %d > max of %d, minimum 1", fracDigRequired, MaxFractionDigits)
	}
	s := numStr
	dx := strings.Index(s, ".")
	var fracDig uint8
	if dx >= 0 {
		fracDig = uint8(len(s) - 1 - dx)
		s = s[:dx] + s[dx+1:]
	}
	if fracDig > fracDigRequired {
		return n, fmt.Errorf("%s has too much precision, expect <= %d fractional digits", s, fracDigRequired)
	}
	s += space18[:fracDigRequired-fracDig]
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return n, fmt.Errorf("%s is not a valid decimal number: %s", numStr, err)
	}
	kind := Positive
	if v < 0 {
		kind = Negative
		v = -v
	}
	return Number{Kind: kind, Value: uint64(v), FractionDigits: fracDigRequired}, nil
}

func ParseRangesInt(s string) (YangRange, error) { return parseRanges(s, false, 0) }

func ParseRangesDecimal(s string, fracDigRequired uint8) (YangRange, error) {
	return parseRanges(s, true, fracDigRequired)
}

func parseRanges(s string, decimal bool, fracDigRequired uint8) (YangRange, error) {
	parseNumber := func(s string) (Number, error) {
		if decimal {
			return ParseDecimal(s, fracDigRequired)
		}
		return ParseInt(s)
	}
	parts := strings.Split(s, "|")
	r := make(YangRange, len(parts))
	for i, s := range parts {
		parts := strings.Split(s, "..")
		min, err := parseNumber(parts[0])
		if err != nil {
			return nil, err
		}
		var max Number
		switch len(parts) {
		case 1:
			max = min
		case 2:
			max, err = parseNumber(parts[1])
			if err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("too many '..' in %s", s)
		}
		if max.Less(min) {
			return nil, fmt.Errorf("range boundaries out of order (%s less than %s): %s", max, min, s)
		}
		r[i] = YRange{min, max}
	}
	r.Sort()
	r = coalesce(r)
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func coalesce(r YangRange) YangRange {
	if len(r) < 2 {
		return r
	}
	cr := make(YangRange, len(r))
	i := 0
	cr[i] = r[0]
	for _, r1 := range r[1:] {
		if cr[i].Max.addQuantum(1).Less(r1.Min) {
			i++
			cr[i] = r1
		} else if cr[i].Max.Less(r1.Max) {
			cr[i].Max = r1.Max
		}
	}
	return cr[:i+1]
}

func mustParseRangesInt(s string) YangRange {
	r, err := ParseRangesInt(s)
	if err != nil {
		panic(err)
	}
	return r
}

func mustParseRangesDecimal(s string, fracDigRequired uint8) YangRange {
	r, err := ParseRangesDecimal(s, fracDigRequired)
	if err != nil {
		panic(err)
	}
	return r
}

func pow10(e uint8) uint64 {
	var out uint64 = 1
	for i := uint8(0); i < e; i++ {
		out *= 10
	}
	return out
}
