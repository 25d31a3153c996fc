package dfa

import (
	"testing"

	"github.com/coregx/slimlang/alphabet"
	"github.com/coregx/slimlang/nfa"
	"github.com/coregx/slimlang/regex"
	"github.com/coregx/slimlang/utf8"
)

func build(t *testing.T, patterns ...string) *Dfa {
	t.Helper()
	var buf alphabet.Buffer
	exprs := make([]*regex.Node, len(patterns))
	for i, p := range patterns {
		expr, err := regex.Parse(p)
		if err != nil {
			t.Fatalf("Parse(%q): %v", p, err)
		}
		regex.ExtractBounds(expr, &buf)
		exprs[i] = expr
	}
	alpha := alphabet.New(&buf)
	n, err := nfa.Build(exprs, alpha)
	if err != nil {
		t.Fatalf("nfa.Build: %v", err)
	}
	return Build(n, alpha)
}

func run(d *Dfa, s string) (token int, consumed int) {
	cur := d.Start
	token = d.States[cur].Token
	for i := 0; i < len(s); i++ {
		next := d.Goto(cur, utf8.Glyph(s[i]))
		if next < 0 {
			return token, i
		}
		cur = next
		if d.States[cur].Token >= 0 {
			token = d.States[cur].Token
			consumed = i + 1
		}
	}
	return token, consumed
}

func TestSingleLiteralMatch(t *testing.T) {
	d := build(t, "abc")
	token, n := run(d, "abc")
	if token != 0 || n != 3 {
		t.Fatalf("got (%d,%d), want (0,3)", token, n)
	}
}

func TestEarlierPatternWinsSameLengthTie(t *testing.T) {
	// "int" the keyword and "[a-z]+" the identifier both match "int"; the
	// keyword, declared first, must win the tie.
	d := build(t, "int", "[a-z]+")
	token, n := run(d, "int")
	if token != 0 || n != 3 {
		t.Fatalf("got (%d,%d), want keyword token 0 consuming 3", token, n)
	}
}

func TestIdentifierLongerThanKeywordWins(t *testing.T) {
	d := build(t, "int", "[a-z]+")
	token, n := run(d, "integer")
	if token != 1 || n != 7 {
		t.Fatalf("got (%d,%d), want identifier token 1 consuming 7", token, n)
	}
}

func TestNoMatch(t *testing.T) {
	d := build(t, "abc")
	token, _ := run(d, "xyz")
	if token != -1 {
		t.Fatalf("expected no match, got token %d", token)
	}
}

func TestWildcardMatchesOutsideAlphabet(t *testing.T) {
	d := build(t, ".")
	token, n := run(d, "\xff")
	if token != 0 || n != 1 {
		t.Fatalf("got (%d,%d), want (0,1) for out-of-alphabet glyph via wildcard", token, n)
	}
}
