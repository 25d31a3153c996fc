package nfa

import (
	"testing"

	"github.com/coregx/slimlang/alphabet"
	"github.com/coregx/slimlang/regex"
	"github.com/coregx/slimlang/utf8"
)

func buildOne(t *testing.T, pattern string) (*Nfa, *alphabet.Alphabet) {
	t.Helper()
	expr, err := regex.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	var buf alphabet.Buffer
	regex.ExtractBounds(expr, &buf)
	alpha := alphabet.New(&buf)
	n, err := Build([]*regex.Node{expr}, alpha)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return n, alpha
}

// TestSimpleExpression mirrors the source implementation's expectation that
// a plain concatenation of N literals produces one state per literal plus a
// root and an accept state.
func TestSimpleExpression(t *testing.T) {
	n, _ := buildOne(t, "abc")
	if n.Size() != 5 {
		t.Fatalf("Size() = %d, want 5", n.Size())
	}
}

func TestZeroOrMore(t *testing.T) {
	n, alpha := buildOne(t, "ab*")
	if n.Size() == 0 {
		t.Fatal("expected non-empty NFA")
	}

	// Walk epsilon/literal transitions from the root and confirm the
	// pattern accepts "a" as well as "a" followed by any number of "b"s by
	// simulating the NFA directly (no DFA involved yet).
	accepts := func(s string) bool {
		current := map[int]bool{n.Start: true}
		closure(n, current)
		for i := 0; i < len(s); i++ {
			idx := alpha.IndexOf(utf8.Glyph(s[i]))
			next := map[int]bool{}
			for st := range current {
				for _, tr := range n.States[st].Transitions {
					if tr.Alphabet == idx || tr.Alphabet == Negative {
						next[tr.To] = true
					}
				}
			}
			current = next
			closure(n, current)
		}
		for st := range current {
			if n.States[st].Token == 0 {
				return true
			}
		}
		return false
	}

	if !accepts("a") {
		t.Error(`expected "a" to be accepted`)
	}
	if !accepts("abbb") {
		t.Error(`expected "abbb" to be accepted`)
	}
	if accepts("b") {
		t.Error(`expected "b" alone to be rejected`)
	}
}

func closure(n *Nfa, set map[int]bool) {
	stack := make([]int, 0, len(set))
	for s := range set {
		stack = append(stack, s)
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, tr := range n.States[s].Transitions {
			if tr.Alphabet == Epsilon && !set[tr.To] {
				set[tr.To] = true
				stack = append(stack, tr.To)
			}
		}
	}
}

func TestMultiplePatternsKeepDistinctTokens(t *testing.T) {
	exprA, _ := regex.Parse("a")
	exprB, _ := regex.Parse("b")
	var buf alphabet.Buffer
	regex.ExtractBounds(exprA, &buf)
	regex.ExtractBounds(exprB, &buf)
	alpha := alphabet.New(&buf)

	n, err := Build([]*regex.Node{exprA, exprB}, alpha)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var tokens []int
	for _, s := range n.States {
		if s.Token != -1 {
			tokens = append(tokens, s.Token)
		}
	}
	if len(tokens) != 2 {
		t.Fatalf("expected 2 accepting states, got %d", len(tokens))
	}
}

func TestBuildRejectsEmptySet(t *testing.T) {
	if _, err := Build(nil, &alphabet.Alphabet{}); err != ErrEmptyPatternSet {
		t.Fatalf("expected ErrEmptyPatternSet, got %v", err)
	}
}
