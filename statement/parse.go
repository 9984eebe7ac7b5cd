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

package statement

import "fmt"

// Parse tokenizes and parses the canonical-form YANG text in input
// (named file for error messages), returning the root-level statements
// (normally exactly one: "module" or "submodule").
//
// Keyword recognition is a plain token compare here rather than the
// teacher's prefix-branching dispatch table: that optimization exists in
// the teacher to skip a hash computation on a hot path processing
// thousands of statements; at the statement-tree level the comparison
// happens once per token regardless, so the branch-heavy dispatch buys
// nothing extra here. ast.Build binds keywords to fields by map lookup;
// no prefix-branching dispatch is used anywhere.
func Parse(input, file string) ([]*Statement, error) {
	toks, err := lex(file, input)
	if err != nil {
		return nil, err
	}
	p := &parser{file: file, toks: toks}
	var roots []*Statement
	for p.peek().kind != tEOF {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		roots = append(roots, s)
	}
	return roots, nil
}

type parser struct {
	file string
	toks []*token
	pos  int
}

func (p *parser) peek() *token {
	if p.pos >= len(p.toks) {
		return &token{kind: tEOF}
	}
	return p.toks[p.pos]
}

func (p *parser) next() *token {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *parser) parseStatement() (*Statement, error) {
	kw := p.next()
	switch kw.kind {
	case tError:
		return nil, fmt.Errorf("%s: %s", p.file, kw.text)
	case tIdentifier, tString:
		// ok
	default:
		return nil, fmt.Errorf("%s:%d:%d: expected keyword, got %s", p.file, kw.line, kw.col, kw.kind)
	}

	s := &Statement{Keyword: kw.text, File: p.file, Line: kw.line, Col: kw.col}

	switch arg := p.peek(); arg.kind {
	case tIdentifier, tString:
		p.next()
		s.HasArgument = true
		s.Argument = arg.text
	}

	switch t := p.peek(); t.kind {
	case tSemi:
		p.next()
		return s, nil
	case tOpenBrace:
		p.next()
		for {
			switch p.peek().kind {
			case tCloseBrace:
				p.next()
				return s, nil
			case tEOF:
				return nil, fmt.Errorf("%s:%d: unexpected EOF, expected '}'", p.file, s.Line)
			case tError:
				e := p.next()
				return nil, fmt.Errorf("%s: %s", p.file, e.text)
			}
			sub, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			s.Add(sub)
		}
	default:
		return nil, fmt.Errorf("%s:%d:%d: expected ';' or '{' after %q, got %s", p.file, t.line, t.col, kw.text, t.kind)
	}
}
