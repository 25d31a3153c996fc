// Package lexer turns a glyph stream into a sequence of tokens by driving
// a single shared DFA in longest-match mode: it keeps consuming glyphs
// while the DFA keeps transitioning, and only checks whether the current
// state accepts once a transition fails or whitespace is seen. Whitespace
// and newlines are discarded and can never appear inside a token.
//
// A Lexer is configured with an ordered list of regex pattern strings; a
// pattern's position in that list is the token id it emits, and when two
// patterns match the same lexeme the earlier one wins. The language's own
// table lives in the langtoken package.
package lexer

import (
	"fmt"

	"github.com/coregx/slimlang/alphabet"
	"github.com/coregx/slimlang/dfa"
	"github.com/coregx/slimlang/nfa"
	"github.com/coregx/slimlang/regex"
	"github.com/coregx/slimlang/utf8"
)

// Token is one lexeme recognized by the pattern table. Pattern is the
// index of the matching pattern in the list the Lexer was built from.
// Line/Col locate the token's first glyph: columns count from 1 within a
// line; lines count from 0, incrementing on each newline.
type Token struct {
	Pattern int
	Lexeme  string
	Line    int
	Col     int
}

// ErrorKind classifies a lexing failure.
type ErrorKind int

const (
	UnexpectedCharacter ErrorKind = iota
	UnexpectedEndOfInput
	InvalidUTF8
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedCharacter:
		return "unexpected character"
	case UnexpectedEndOfInput:
		return "unexpected end of input"
	case InvalidUTF8:
		return "invalid UTF-8"
	default:
		return "unknown lexer error"
	}
}

// Error reports a lexing failure at a specific source position.
type Error struct {
	Kind ErrorKind
	Line int
	Col  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d, col %d: %s", e.Line, e.Col, e.Kind)
}

// Lexer produces tokens on demand from a byte slice. A single Lexer
// instance is built once per source file: the DFA it drives is shared
// across every token it produces.
type Lexer struct {
	machine *dfa.Dfa

	input *utf8.Decoder

	shouldAdvance bool
	g             utf8.Glyph
	gOk           bool

	line, col int
	buf       []utf8.Glyph
	startLine int
	startCol  int
}

// New compiles patterns into a shared DFA and returns a Lexer ready to
// scan src. Pattern order is significant: it decides both the emitted
// Token.Pattern values and the tie-break between patterns matching the
// same lexeme.
func New(patterns []string, src []byte) (*Lexer, error) {
	exprs := make([]*regex.Node, len(patterns))
	var buf alphabet.Buffer
	for i, p := range patterns {
		expr, err := regex.Parse(p)
		if err != nil {
			return nil, fmt.Errorf("lexer: pattern %d (%q): %w", i, p, err)
		}
		regex.ExtractBounds(expr, &buf)
		exprs[i] = expr
	}

	alpha := alphabet.New(&buf)
	n, err := nfa.Build(exprs, alpha)
	if err != nil {
		return nil, fmt.Errorf("lexer: %w", err)
	}

	return &Lexer{
		machine:       dfa.Build(n, alpha),
		input:         utf8.NewDecoder(src),
		shouldAdvance: true,
	}, nil
}

func isNewline(g utf8.Glyph) bool    { return g == '\n' }
func isWhitespace(g utf8.Glyph) bool { return g == ' ' || g == '\t' }

// Next scans and returns the next token. It returns false, nil once the
// input is exhausted with no partial token pending. An invalid token
// reports an error but leaves the Lexer usable for the next call, which
// resumes after the offending glyph.
func (l *Lexer) Next() (Token, bool, error) {
	cur := l.machine.Start
	tokenStarted := false

	for l.advanceIfNeeded() {
		newline := isNewline(l.g)
		whitespace := isWhitespace(l.g)

		if newline {
			l.col = 0
			l.line++
		} else if l.shouldAdvance {
			l.col++
		}
		l.shouldAdvance = true

		if newline || whitespace {
			if !tokenStarted {
				continue
			}
			if l.machine.States[cur].Token >= 0 {
				return l.produce(cur), true, nil
			}
			return Token{}, false, l.fail(UnexpectedCharacter)
		}

		if !tokenStarted {
			tokenStarted = true
			l.startLine = l.line
			l.startCol = l.col
		}

		next := l.machine.Goto(cur, l.g)
		if next < 0 {
			if l.machine.States[cur].Token >= 0 {
				l.shouldAdvance = false
				return l.produce(cur), true, nil
			}
			return Token{}, false, l.fail(UnexpectedCharacter)
		}

		l.buf = append(l.buf, l.g)
		cur = next
	}

	if l.input.Err() != nil {
		return Token{}, false, l.fail(InvalidUTF8)
	}

	if len(l.buf) > 0 {
		if l.machine.States[cur].Token >= 0 {
			return l.produce(cur), true, nil
		}
		return Token{}, false, l.fail(UnexpectedEndOfInput)
	}

	return Token{}, false, nil
}

// advanceIfNeeded honors shouldAdvance by reusing the previously decoded
// glyph instead of consuming a new one: a failed DFA transition means the
// current glyph belongs to the next token, not this one.
func (l *Lexer) advanceIfNeeded() bool {
	if !l.shouldAdvance {
		return l.gOk
	}
	l.g, l.gOk = l.input.Next()
	return l.gOk
}

func (l *Lexer) fail(kind ErrorKind) error {
	l.buf = l.buf[:0]
	return &Error{Kind: kind, Line: l.line, Col: l.col}
}

func (l *Lexer) produce(state int) Token {
	lexeme := make([]byte, 0, len(l.buf))
	for _, g := range l.buf {
		lexeme = appendGlyph(lexeme, g)
	}
	l.buf = l.buf[:0]
	return Token{
		Pattern: l.machine.States[state].Token,
		Lexeme:  string(lexeme),
		Line:    l.startLine,
		Col:     l.startCol,
	}
}

// appendGlyph re-encodes a packed glyph back to its original UTF-8 byte
// sequence for inclusion in a lexeme string.
func appendGlyph(dst []byte, g utf8.Glyph) []byte {
	i := 0
	for ; i < 3; i++ {
		if byte(g>>uint((3-i)*8)) != 0 {
			break
		}
	}
	for ; i < 4; i++ {
		dst = append(dst, byte(g>>uint((3-i)*8)))
	}
	return dst
}
