// Package regex parses the small regex dialect used to describe lexer
// patterns into a tagged-variant AST: literals, ranges, wildcards,
// concatenation, union, and the ?, *, + quantifiers.
//
// The grammar, eliminating left recursion, is:
//
//	expr   := union EOF
//	union  := concat ('|' concat)*
//	concat := quant+
//	quant  := atom ('?'|'*'|'+')?
//	atom   := '(' union ')' | '[' range+ ']' | '.' | lit
//	range  := classLit ('-' classLit)?
package regex

import (
	"fmt"

	"github.com/coregx/slimlang/alphabet"
	"github.com/coregx/slimlang/utf8"
)

// Kind tags the variant a Node represents.
type Kind int

const (
	Literal Kind = iota
	Wildcard
	Range
	Concat
	Union
	Maybe
	ZeroPlus
	OnePlus
)

func (k Kind) String() string {
	switch k {
	case Literal:
		return "Literal"
	case Wildcard:
		return "Wildcard"
	case Range:
		return "Range"
	case Concat:
		return "Concat"
	case Union:
		return "Union"
	case Maybe:
		return "Maybe"
	case ZeroPlus:
		return "ZeroPlus"
	case OnePlus:
		return "OnePlus"
	default:
		return "Unknown"
	}
}

// Node is an immutable regex AST node. Left and Right hold operands for
// binary/unary operator kinds; Glyph holds the literal value for Literal and
// the range endpoints are held by a Range node's Left/Right Literal
// children.
type Node struct {
	Kind  Kind
	Left  *Node
	Right *Node
	Glyph utf8.Glyph
}

func newLit(g utf8.Glyph) *Node          { return &Node{Kind: Literal, Glyph: g} }
func newWild() *Node                     { return &Node{Kind: Wildcard} }
func newUnary(k Kind, a *Node) *Node     { return &Node{Kind: k, Left: a} }
func newBinary(k Kind, a, b *Node) *Node { return &Node{Kind: k, Left: a, Right: b} }

// ExtractBounds walks expr collecting every literal and range bound it
// mentions into buf, so a caller can build a shared Alphabet across many
// patterns before compiling any of them into an NFA. Wildcards contribute no
// bounds: they match every alphabet cell plus everything outside it.
func ExtractBounds(expr *Node, buf *alphabet.Buffer) {
	switch expr.Kind {
	case Literal:
		buf.Write(expr.Glyph)
	case Range:
		buf.WriteRange(expr.Left.Glyph, expr.Right.Glyph)
	case Wildcard:
		// contributes no bounds
	case Concat, Union:
		ExtractBounds(expr.Left, buf)
		ExtractBounds(expr.Right, buf)
	case Maybe, ZeroPlus, OnePlus:
		ExtractBounds(expr.Left, buf)
	}
}

// SyntaxError reports a malformed pattern string.
type SyntaxError struct {
	// Pos is the number of glyphs consumed from the pattern before the
	// error was detected.
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("regex syntax error at position %d: %s", e.Pos, e.Msg)
}

// eof is a sentinel current-glyph value signaling the pattern has been
// fully consumed.
const eof utf8.Glyph = 0xFFFFFFFF

// stream decodes a pattern string one glyph at a time, tracking the current
// glyph and the count of glyphs consumed so syntax errors can report a
// position.
type stream struct {
	d        *utf8.Decoder
	curr     utf8.Glyph
	consumed int
}

func newStream(pattern string) *stream {
	return &stream{d: utf8.NewDecoder([]byte(pattern))}
}

// advance moves to the next glyph, returning false once the stream has
// been fully consumed. Invalid UTF-8 is not reported separately: if
// decoding fails, advance treats it as end of input and returns false.
func (s *stream) advance() bool {
	g, ok := s.d.Next()
	if !ok {
		s.curr = eof
		return false
	}
	s.curr = g
	s.consumed++
	return true
}

func (s *stream) throw(msg string) error {
	return &SyntaxError{Pos: s.consumed, Msg: msg}
}

// Parse compiles a pattern string into a regex AST.
func Parse(pattern string) (*Node, error) {
	s := newStream(pattern)
	return parseExpr(s)
}

func parseExpr(s *stream) (*Node, error) {
	if !s.advance() {
		return nil, s.throw("empty pattern")
	}

	tree, err := parseUnion(s)
	if err != nil {
		return nil, err
	}
	if s.curr != eof {
		return nil, s.throw("unexpected character")
	}
	return tree, nil
}

func parseUnion(s *stream) (*Node, error) {
	tree, err := parseConcat(s)
	if err != nil {
		return nil, err
	}

	for s.curr == '|' {
		if !s.advance() {
			return nil, s.throw("unexpected end of input, malformed union")
		}
		right, err := parseConcat(s)
		if err != nil {
			return nil, err
		}
		tree = newBinary(Union, tree, right)
	}

	return tree, nil
}

func parseConcat(s *stream) (*Node, error) {
	tree, err := parseQuant(s)
	if err != nil {
		return nil, err
	}

	for s.curr != eof && s.curr != '|' && s.curr != ')' {
		right, err := parseQuant(s)
		if err != nil {
			return nil, err
		}
		tree = newBinary(Concat, tree, right)
	}

	return tree, nil
}

func parseQuant(s *stream) (*Node, error) {
	tree, err := parseAtom(s)
	if err != nil {
		return nil, err
	}

	switch s.curr {
	case '?':
		tree = newUnary(Maybe, tree)
		s.advance()
	case '*':
		tree = newUnary(ZeroPlus, tree)
		s.advance()
	case '+':
		tree = newUnary(OnePlus, tree)
		s.advance()
	}

	return tree, nil
}

func parseAtom(s *stream) (*Node, error) {
	switch s.curr {
	case '(':
		return parseGroup(s)
	case '[':
		return parseClass(s)
	case '.':
		s.advance()
		return newWild(), nil
	default:
		return parseLit(s)
	}
}

func parseGroup(s *stream) (*Node, error) {
	if !s.advance() {
		return nil, s.throw("unexpected end of input, unclosed group")
	}

	tree, err := parseUnion(s)
	if err != nil {
		return nil, err
	}

	if s.curr != ')' {
		return nil, s.throw("unclosed group")
	}
	s.advance()
	return tree, nil
}

func parseClass(s *stream) (*Node, error) {
	if !s.advance() {
		return nil, s.throw("unclosed character class")
	}

	tree, err := parseRange(s)
	if err != nil {
		return nil, err
	}

	for s.curr != ']' {
		if s.curr == eof {
			return nil, s.throw("unclosed character class")
		}
		right, err := parseRange(s)
		if err != nil {
			return nil, err
		}
		tree = newBinary(Union, tree, right)
	}

	s.advance()
	return tree, nil
}

// parseRange parses a single class literal, optionally followed by a
// hyphen and a second class literal. The bounds are not validated for
// ordering: a range whose low bound exceeds its high bound is accepted
// here and silently matches nothing once the alphabet is built.
func parseRange(s *stream) (*Node, error) {
	lo, err := parseClassLit(s)
	if err != nil {
		return nil, err
	}

	if s.curr == '-' {
		if !s.advance() {
			return nil, s.throw("unterminated character range")
		}
		hi, err := parseClassLit(s)
		if err != nil {
			return nil, err
		}
		return newBinary(Range, lo, hi), nil
	}

	return lo, nil
}

// parseClassLit parses a literal within a character class, which follows
// slightly different escaping rules than a literal outside one.
func parseClassLit(s *stream) (*Node, error) {
	switch s.curr {
	case eof:
		return nil, s.throw("unclosed character class")
	case '[', ']', '-':
		return nil, s.throw("illegal character")
	case '\\':
		if !s.advance() {
			return nil, s.throw("unterminated escape sequence")
		}
		switch s.curr {
		case '\\', '[', ']', '-':
			g := s.curr
			s.advance()
			return newLit(g), nil
		case 'n':
			s.advance()
			return newLit(0xA), nil
		default:
			return nil, s.throw("invalid escape sequence")
		}
	default:
		g := s.curr
		s.advance()
		return newLit(g), nil
	}
}

// parseLit parses a character literal that is potentially escaped, outside
// of a character class. The caller has already ruled out '(', '.', and '['.
func parseLit(s *stream) (*Node, error) {
	switch s.curr {
	case eof:
		return nil, s.throw("unexpected end of input")
	case '?', '*', '+', '|', ')', ']':
		return nil, s.throw("illegal character")
	case '\\':
		if !s.advance() {
			return nil, s.throw("unterminated escape sequence")
		}
		switch s.curr {
		case '\\', '?', '*', '+', '|', '(', ')', '[', ']', '.':
			g := s.curr
			s.advance()
			return newLit(g), nil
		case 'n':
			s.advance()
			return newLit(0xA), nil
		default:
			return nil, s.throw("invalid escape sequence")
		}
	default:
		g := s.curr
		s.advance()
		return newLit(g), nil
	}
}
