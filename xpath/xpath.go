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

// Package xpath compiles XPath 1.0 expressions (used by "when", "must",
// leafref "path", and instance-identifier predicates) plus YANG's
// current() extension, and evaluates them over a typed data tree
// (spec.md §4.2). Compilation produces flat parallel arrays indexed by
// token number -- token kind and source position/length -- so the
// evaluator walks a single token stream rather than a per-node tree.
// Eval itself avoids recursing per binary operator by folding an
// explicit operand/operator stack one precedence level at a time (see
// evaluator.parseExpr in eval.go), which bounds stack depth by
// expression *nesting* (predicates, parentheses) rather than by operator
// count -- the guarantee spec.md Design Notes asks for.
package xpath

import "fmt"

// TokKind is the kind of one compiled token.
type TokKind uint8

const (
	TEOF TokKind = iota
	TNumber
	TLiteral
	TName       // NCName or QName, possibly prefixed
	TVarRef     // "$name" -- always rejected by Eval
	TAxisName   // "child", "parent", "following-sibling", ...
	TNodeType   // "node", "text", "comment", "processing-instruction"
	TFunc       // function name immediately followed by '('
	TOperator   // +, -, *, div, mod, =, !=, <, <=, >, >=, and, or, |
	TSlash      // '/'
	TDoubleSlash // '//'
	TDot        // '.'
	TDotDot     // '..'
	TAt         // '@'
	TLParen
	TRParen
	TLBracket
	TRBracket
	TComma
	TColonColon // '::'
)

// Expr is the compiled form of one XPath expression, grounded on
// spec.md's Data Model "Expression": immutable flat arrays, no tree
// allocation per node.
type Expr struct {
	Source string

	Tokens []TokKind
	Pos    []uint32 // byte offset into Source
	Len    []uint32

	// Prefixes maps a token index (one bearing a prefixed TName) to
	// the literal prefix text used at that site. Eval does not consult
	// it: EvalContext carries no prefix binding, and names are matched
	// by their local part only.
	Prefixes map[int]string
}

func (e *Expr) text(i int) string {
	return e.Source[e.Pos[i] : e.Pos[i]+e.Len[i]]
}

// Compile lexes and token-validates src, producing an Expr ready for
// Eval. Prefix binding is *not* resolved here (see Expr.Prefixes).
func Compile(src string) (*Expr, error) {
	toks, err := lexXPath(src)
	if err != nil {
		return nil, err
	}
	e := &Expr{Source: src, Prefixes: map[int]string{}}
	for _, t := range toks {
		e.Tokens = append(e.Tokens, t.kind)
		e.Pos = append(e.Pos, uint32(t.pos))
		e.Len = append(e.Len, uint32(t.len))
		if t.kind == TName {
			if pfx, _ := splitQName(e.text(len(e.Tokens) - 1)); pfx != "" {
				e.Prefixes[len(e.Tokens)-1] = pfx
			}
		}
	}
	return e, nil
}

func splitQName(s string) (string, string) {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return s[:i], s[i+1:]
		}
	}
	return "", s
}

// precedence gives the binding power of binary operators, lowest first;
// a higher number binds tighter.
var precedence = map[string]uint8{
	"or":  1,
	"and": 2,
	"=":   3, "!=": 3,
	"<": 4, "<=": 4, ">": 4, ">=": 4,
	"+": 5, "-": 5,
	"*": 6, "div": 6, "mod": 6,
	"|": 7,
}

// Error is returned for a malformed expression.
type Error struct {
	Pos int
	Msg string
}

func (e *Error) Error() string { return fmt.Sprintf("xpath: %d: %s", e.Pos, e.Msg) }
