// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package record

import (
	"fmt"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokName
	tokString
	tokNumber
	tokBare
	tokComma
	tokOpen
	tokClose
	tokCount
	tokNewline
)

type token struct {
	kind tokenKind
	text string
	line int
}

type lexer struct {
	src  string
	pos  int
	line int
}

func isNameChar(c byte) bool {
	return c == '_' || c == '|' || c == '-' || c == '.' ||
		c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ';':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case c == '\n':
			l.pos++
			l.line++
			return token{kind: tokNewline, line: l.line - 1}, nil
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case c == ',':
			l.pos++
			return token{kind: tokComma, line: l.line}, nil
		case c == '{':
			l.pos++
			return token{kind: tokOpen, line: l.line}, nil
		case c == '}':
			l.pos++
			return token{kind: tokClose, line: l.line}, nil
		case c == '"':
			end := strings.IndexByte(l.src[l.pos+1:], '"')
			if end < 0 {
				return token{}, fmt.Errorf("fbx: line %d: unterminated string", l.line+1)
			}
			s := l.src[l.pos+1 : l.pos+1+end]
			l.pos += end + 2
			return token{kind: tokString, text: s, line: l.line}, nil
		case c == '*':
			start := l.pos + 1
			l.pos++
			for l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '9' {
				l.pos++
			}
			return token{kind: tokCount, text: l.src[start:l.pos], line: l.line}, nil
		case isNameChar(c) || c == '+':
			start := l.pos
			for l.pos < len(l.src) && (isNameChar(l.src[l.pos]) || l.src[l.pos] == '+') {
				l.pos++
			}
			text := l.src[start:l.pos]
			if l.pos < len(l.src) && l.src[l.pos] == ':' {
				l.pos++
				return token{kind: tokName, text: text, line: l.line}, nil
			}
			if _, err := strconv.ParseFloat(text, 64); err == nil {
				return token{kind: tokNumber, text: text, line: l.line}, nil
			}
			return token{kind: tokBare, text: text, line: l.line}, nil
		default:
			return token{}, fmt.Errorf("fbx: line %d: unexpected character %q", l.line+1, c)
		}
	}
	return token{kind: tokEOF, line: l.line}, nil
}

type asciiParser struct {
	lex  lexer
	tok  token
	peek bool
}

func (p *asciiParser) advance() (token, error) {
	if p.peek {
		p.peek = false
		return p.tok, nil
	}
	t, err := p.lex.next()
	p.tok = t
	return t, err
}

func (p *asciiParser) unread() { p.peek = true }

func parseASCII(data []byte) (*Document, error) {
	p := &asciiParser{lex: lexer{src: string(data)}}
	root := &Record{}
	for {
		t, err := p.advance()
		if err != nil {
			return nil, err
		}
		switch t.kind {
		case tokEOF:
			doc := &Document{Root: root}
			doc.Version = uint32(root.Child("FBXHeaderExtension").Child("FBXVersion").Int(0))
			return doc, nil
		case tokNewline:
			continue
		case tokName:
			rec, err := p.record(t.text)
			if err != nil {
				return nil, err
			}
			root.Children = append(root.Children, rec)
		default:
			return nil, fmt.Errorf("fbx: line %d: expected record name", t.line+1)
		}
	}
}

func numberValue(text string) any {
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return i
	}
	f, _ := strconv.ParseFloat(text, 64)
	return f
}

// record parses the properties and children of a record whose name
// has just been read.
func (p *asciiParser) record(name string) (*Record, error) {
	rec := &Record{Name: name}
	expectValue := true
	for {
		t, err := p.advance()
		if err != nil {
			return nil, err
		}
		switch t.kind {
		case tokString:
			rec.Props = append(rec.Props, t.text)
			expectValue = false
		case tokNumber:
			rec.Props = append(rec.Props, numberValue(t.text))
			expectValue = false
		case tokBare:
			rec.Props = append(rec.Props, t.text)
			expectValue = false
		case tokComma:
			expectValue = true
		case tokNewline:
			if expectValue && len(rec.Props) > 0 {
				continue
			}
			return rec, nil
		case tokCount:
			arr, err := p.array()
			if err != nil {
				return nil, err
			}
			rec.Props = append(rec.Props, arr)
			return rec, nil
		case tokOpen:
			if err := p.children(rec); err != nil {
				return nil, err
			}
			return rec, nil
		case tokClose, tokEOF, tokName:
			p.unread()
			return rec, nil
		}
	}
}

func (p *asciiParser) children(rec *Record) error {
	for {
		t, err := p.advance()
		if err != nil {
			return err
		}
		switch t.kind {
		case tokClose:
			return nil
		case tokNewline:
		case tokName:
			child, err := p.record(t.text)
			if err != nil {
				return err
			}
			rec.Children = append(rec.Children, child)
		case tokEOF:
			return fmt.Errorf("fbx: unexpected end of file inside %s", rec.Name)
		default:
			return fmt.Errorf("fbx: line %d: unexpected token in %s", t.line+1, rec.Name)
		}
	}
}

// array parses "{ a: v, v, ... }" after a "*N" count.
func (p *asciiParser) array() (any, error) {
	var vals []string
	depth := 0
	for {
		t, err := p.advance()
		if err != nil {
			return nil, err
		}
		switch t.kind {
		case tokOpen:
			depth++
		case tokClose:
			depth--
			if depth <= 0 {
				return numberArray(vals), nil
			}
		case tokNumber:
			vals = append(vals, t.text)
		case tokEOF:
			return nil, fmt.Errorf("fbx: unexpected end of file in array")
		}
	}
}

// numberArray returns []int64 when every value is an integer,
// otherwise []float64.
func numberArray(vals []string) any {
	ints := make([]int64, len(vals))
	for i, v := range vals {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			floats := make([]float64, len(vals))
			for j, v := range vals {
				floats[j], _ = strconv.ParseFloat(v, 64)
			}
			return floats
		}
		ints[i] = n
	}
	return ints
}
