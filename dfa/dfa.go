// Package dfa builds a deterministic automaton from an nfa.Nfa by subset
// construction over a shared alphabet.Alphabet, suitable for longest-match
// lexing: every state already knows which pattern it accepts, if any.
package dfa

import (
	"sort"
	"strings"

	"github.com/coregx/slimlang/alphabet"
	"github.com/coregx/slimlang/internal/sparse"
	"github.com/coregx/slimlang/nfa"
	"github.com/coregx/slimlang/utf8"
)

// State is one DFA state. Transitions holds one entry per alphabet cell; a
// value of -1 means no transition. Else holds the transition taken on a
// glyph that falls outside the alphabet entirely, which only a wildcard
// pattern can ever cause to be anything other than -1.
type State struct {
	Transitions []int
	Else        int
	// Token is the lowest pattern index accepting in this state, or -1 if
	// the state is not accepting.
	Token int
}

// Dfa is a deterministic automaton over Alphabet's cells plus the implicit
// "outside the alphabet" symbol.
type Dfa struct {
	States   []State
	Start    int
	Alphabet *alphabet.Alphabet
}

// Goto returns the next state reached from s on glyph g, or -1 if there is
// none.
func (d *Dfa) Goto(s int, g utf8.Glyph) int {
	idx := d.Alphabet.IndexOf(g)
	if idx < 0 {
		return d.States[s].Else
	}
	return d.States[s].Transitions[idx]
}

// Build runs subset construction over n, producing an equivalent Dfa. Each
// subset's accepting token is the minimum Token among its member NFA
// states, so that when two patterns can both match the same prefix the
// earlier-declared pattern wins — the same tie-break the lexer's pattern
// table relies on for keywords shadowing the identifier pattern.
func Build(n *nfa.Nfa, alpha *alphabet.Alphabet) *Dfa {
	cells := alpha.Length()

	cache := map[string]int{}
	var states []State
	var sets [][]uint32

	internSet := func(members []uint32) (int, bool) {
		sorted := append([]uint32(nil), members...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		key := setKey(sorted)
		if idx, ok := cache[key]; ok {
			return idx, false
		}
		idx := len(states)
		cache[key] = idx
		states = append(states, State{
			Transitions: make([]int, cells),
			Else:        -1,
			Token:       -1,
		})
		for i := range states[idx].Transitions {
			states[idx].Transitions[i] = -1
		}
		sets = append(sets, sorted)
		return idx, true
	}

	closureSet := func(roots []uint32) []uint32 {
		visited := sparse.NewSparseSet(uint32(n.Size()))
		stack := append([]uint32(nil), roots...)
		for _, r := range roots {
			visited.Insert(r)
		}
		for len(stack) > 0 {
			s := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, tr := range n.States[s].Transitions {
				if tr.Alphabet == nfa.Epsilon && !visited.Contains(uint32(tr.To)) {
					visited.Insert(uint32(tr.To))
					stack = append(stack, uint32(tr.To))
				}
			}
		}
		return visited.Values()
	}

	minToken := func(members []uint32) int {
		best := -1
		for _, m := range members {
			tok := n.States[m].Token
			if tok >= 0 && (best < 0 || tok < best) {
				best = tok
			}
		}
		return best
	}

	startSet := closureSet([]uint32{uint32(n.Start)})
	startIdx, _ := internSet(startSet)
	states[startIdx].Token = minToken(startSet)

	queue := []int{startIdx}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		members := sets[cur]

		for cell := 0; cell < cells; cell++ {
			var dest []uint32
			for _, m := range members {
				for _, tr := range n.States[m].Transitions {
					if tr.Alphabet == cell || tr.Alphabet == nfa.Negative {
						dest = append(dest, uint32(tr.To))
					}
				}
			}
			if len(dest) == 0 {
				continue
			}
			closed := closureSet(dest)
			idx, created := internSet(closed)
			if created {
				states[idx].Token = minToken(closed)
				queue = append(queue, idx)
			}
			states[cur].Transitions[cell] = idx
		}

		var elseDest []uint32
		for _, m := range members {
			for _, tr := range n.States[m].Transitions {
				if tr.Alphabet == nfa.Negative {
					elseDest = append(elseDest, uint32(tr.To))
				}
			}
		}
		if len(elseDest) > 0 {
			closed := closureSet(elseDest)
			idx, created := internSet(closed)
			if created {
				states[idx].Token = minToken(closed)
				queue = append(queue, idx)
			}
			states[cur].Else = idx
		}
	}

	return &Dfa{States: states, Start: startIdx, Alphabet: alpha}
}

func setKey(sorted []uint32) string {
	var b strings.Builder
	for _, v := range sorted {
		b.WriteByte(byte(v))
		b.WriteByte(byte(v >> 8))
		b.WriteByte(byte(v >> 16))
		b.WriteByte(byte(v >> 24))
	}
	return b.String()
}
