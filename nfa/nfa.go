package nfa

import (
	"github.com/coregx/slimlang/alphabet"
	"github.com/coregx/slimlang/regex"
)

// Special Transition.Alphabet values.
const (
	// Epsilon transitions consume no input.
	Epsilon = -1
	// Negative transitions match any glyph, including ones outside the
	// alphabet entirely — this is how a wildcard pattern matches glyphs no
	// literal or range in the pattern set ever mentioned.
	Negative = -2
)

// Transition moves from one state to another, either on a specific
// Alphabet cell, on Epsilon, or on Negative (anything).
type Transition struct {
	Alphabet int
	To       int
}

// State is one node in the NFA's state arena.
type State struct {
	Transitions []Transition
	// Token is the pattern index this state accepts, or -1 if State is not
	// an accepting state.
	Token int
}

// Nfa is a Thompson-construction NFA over a shared Alphabet, compiled from
// one or more patterns. Start is the index of the root state: it has one
// epsilon transition per compiled pattern, in pattern order.
type Nfa struct {
	States []State
	Start  int
}

// Size returns the number of states in the arena.
func (n *Nfa) Size() int {
	return len(n.States)
}

// slot addresses one out-transition in the arena by state index and that
// state's transition slice index, so its destination can be filled in once
// it becomes known.
type slot struct {
	state int
	trans int
}

// partial is a fragment of NFA under construction: head is its entry state,
// dangling lists every out-transition still waiting for a destination.
type partial struct {
	head     int
	dangling []slot
}

type builder struct {
	states []State
	alpha  *alphabet.Alphabet
}

func (b *builder) newState() int {
	b.states = append(b.states, State{Token: -1})
	return len(b.states) - 1
}

func (b *builder) addTransition(s, alphabetIdx, to int) slot {
	b.states[s].Transitions = append(b.states[s].Transitions, Transition{Alphabet: alphabetIdx, To: to})
	return slot{state: s, trans: len(b.states[s].Transitions) - 1}
}

func (b *builder) addEpsilon(s, to int) {
	b.addTransition(s, Epsilon, to)
}

func chain(b *builder, ds []slot, to int) {
	for _, d := range ds {
		b.states[d.state].Transitions[d.trans].To = to
	}
}

// build compiles expr into a dangling fragment: every out-transition it
// leaves unresolved must be chained to a successor by the caller.
func (b *builder) build(expr *regex.Node) partial {
	switch expr.Kind {
	case regex.Literal:
		s := b.newState()
		idx := b.alpha.IndexOf(expr.Glyph)
		d := b.addTransition(s, idx, -1)
		return partial{head: s, dangling: []slot{d}}

	case regex.Wildcard:
		s := b.newState()
		d := b.addTransition(s, Negative, -1)
		return partial{head: s, dangling: []slot{d}}

	case regex.Range:
		s := b.newState()
		ri := b.alpha.Map(expr.Left.Glyph, expr.Right.Glyph)
		dangling := make([]slot, 0, ri.Count)
		for i := ri.Start; i < ri.Start+ri.Count; i++ {
			dangling = append(dangling, b.addTransition(s, i, -1))
		}
		return partial{head: s, dangling: dangling}

	case regex.Concat:
		left := b.build(expr.Left)
		right := b.build(expr.Right)
		chain(b, left.dangling, right.head)
		return partial{head: left.head, dangling: right.dangling}

	case regex.Union:
		left := b.build(expr.Left)
		right := b.build(expr.Right)
		s := b.newState()
		b.addEpsilon(s, left.head)
		b.addEpsilon(s, right.head)
		dangling := append(append([]slot{}, left.dangling...), right.dangling...)
		return partial{head: s, dangling: dangling}

	case regex.Maybe:
		child := b.build(expr.Left)
		s := b.newState()
		b.addEpsilon(s, child.head)
		skip := b.addTransition(s, Epsilon, -1)
		dangling := append(append([]slot{}, child.dangling...), skip)
		return partial{head: s, dangling: dangling}

	case regex.ZeroPlus:
		child := b.build(expr.Left)
		s := b.newState()
		b.addEpsilon(s, child.head)
		chain(b, child.dangling, s)
		skip := b.addTransition(s, Epsilon, -1)
		return partial{head: s, dangling: []slot{skip}}

	case regex.OnePlus:
		child := b.build(expr.Left)
		s := b.newState()
		b.addEpsilon(s, child.head)
		chain(b, child.dangling, s)
		skip := b.addTransition(s, Epsilon, -1)
		return partial{head: child.head, dangling: []slot{skip}}

	default:
		panic("nfa: unrecognized regex node kind")
	}
}

// Build compiles exprs, which must already have contributed every literal
// and range bound they mention to the Buffer alpha was built from, into a
// single NFA. Pattern i accepts with Token == i; when multiple patterns can
// accept the same input, the caller's subset construction is expected to
// prefer the lowest token index.
func Build(exprs []*regex.Node, alpha *alphabet.Alphabet) (*Nfa, error) {
	if len(exprs) == 0 {
		return nil, ErrEmptyPatternSet
	}

	b := &builder{alpha: alpha}
	root := b.newState()
	for i, expr := range exprs {
		p := b.build(expr)
		accept := b.newState()
		b.states[accept].Token = i
		chain(b, p.dangling, accept)
		b.addEpsilon(root, p.head)
	}

	return &Nfa{States: b.states, Start: root}, nil
}
