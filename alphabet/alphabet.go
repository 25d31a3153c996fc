// Package alphabet collapses the glyph ranges found across every pattern a
// lexer is built from into a single, sorted, disjoint partition: a set of
// "cells" such that every range in any input pattern decomposes into one or
// more consecutive cells. This lets the NFA/DFA builders transition on a
// small integer cell index instead of an arbitrary 32-bit glyph, the same
// alphabet-reduction idea the teacher's nfa.ByteClasses applies to bytes,
// generalized here to the full glyph range a pattern can mention.
package alphabet

import (
	"sort"

	"github.com/coregx/slimlang/utf8"
)

// Buffer incrementally collects glyph ranges before an Alphabet is built
// from them.
type Buffer struct {
	bounds []bound
}

type bound struct {
	g     utf8.Glyph
	start bool
}

// Write records a single glyph as a closed range of length one.
func (b *Buffer) Write(g utf8.Glyph) {
	b.WriteRange(g, g)
}

// WriteRange records a closed range [lo, hi]. A range whose low bound
// exceeds its high bound will never match anything and is silently
// dropped — it contributes no cells, and a later Map call for the same
// bounds reports an empty decomposition.
func (b *Buffer) WriteRange(lo, hi utf8.Glyph) {
	if lo > hi {
		return
	}
	b.bounds = append(b.bounds, bound{lo, true}, bound{hi, false})
}

// RangeIndex identifies the decomposition of a source range into
// consecutive alphabet cells: cells [Start, Start+Count) exactly cover the
// original range.
type RangeIndex struct {
	Start int
	Count int
}

// Alphabet is an ordered sequence of closed, disjoint glyph ranges built
// from a Buffer.
type Alphabet struct {
	// cells holds 2*N glyphs: cells[2i], cells[2i+1] are the inclusive
	// low/high bounds of cell i.
	cells []utf8.Glyph
}

// New builds an Alphabet from the ranges recorded in buf in O(k log k)
// time, where k is the number of ranges written.
//
// The partition is computed by coordinate compression: every range's low
// bound and (high bound + 1) is a candidate cell boundary. Sorting and
// deduplicating these boundaries directly yields the coarsest partition
// whose cells line up with every input range's endpoints, without the
// sweep-line bookkeeping a naive interval-merge would need.
func New(buf *Buffer) *Alphabet {
	if len(buf.bounds) == 0 {
		return &Alphabet{}
	}

	edges := make([]uint64, 0, len(buf.bounds))
	for _, b := range buf.bounds {
		if b.start {
			edges = append(edges, uint64(b.g))
		} else {
			edges = append(edges, uint64(b.g)+1)
		}
	}

	sort.Slice(edges, func(i, j int) bool { return edges[i] < edges[j] })

	uniq := edges[:1]
	for _, e := range edges[1:] {
		if e != uniq[len(uniq)-1] {
			uniq = append(uniq, e)
		}
	}

	cells := make([]utf8.Glyph, 0, 2*(len(uniq)-1))
	for i := 0; i+1 < len(uniq); i++ {
		cells = append(cells, utf8.Glyph(uniq[i]), utf8.Glyph(uniq[i+1]-1))
	}

	return &Alphabet{cells: cells}
}

// Length returns the number of cells in the alphabet.
func (a *Alphabet) Length() int {
	return len(a.cells) / 2
}

// Cell returns the inclusive [lo, hi] bounds of cell i.
func (a *Alphabet) Cell(i int) (lo, hi utf8.Glyph) {
	return a.cells[2*i], a.cells[2*i+1]
}

// IndexOf returns the index of the cell containing g, or -1 if g falls
// within no cell.
func (a *Alphabet) IndexOf(g utf8.Glyph) int {
	n := a.Length()
	// Binary search on cell low bounds for the last cell whose low bound
	// does not exceed g.
	i := sort.Search(n, func(i int) bool { return a.cells[2*i] > g })
	i--
	if i < 0 {
		return -1
	}
	if g <= a.cells[2*i+1] {
		return i
	}
	return -1
}

// Map returns the index of the starting cell for [lo, hi] and the count of
// consecutive cells through which the range is decomposed. If lo > hi (an
// inverted, always-empty range), Map returns a zero-count decomposition.
func (a *Alphabet) Map(lo, hi utf8.Glyph) RangeIndex {
	if lo > hi {
		return RangeIndex{Start: -1, Count: 0}
	}

	start := a.IndexOf(lo)
	if start < 0 {
		return RangeIndex{Start: -1, Count: 0}
	}

	end := a.IndexOf(hi)
	if end < 0 {
		return RangeIndex{Start: -1, Count: 0}
	}

	return RangeIndex{Start: start, Count: end - start + 1}
}
