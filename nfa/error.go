// Package nfa builds a Thompson-construction NFA from a set of parsed regex
// patterns that share a common alphabet.
//
// States live in one contiguous arena owned by the Nfa and are referenced by
// index rather than pointer, which sidesteps the cyclic-ownership problem
// the source implementation solved with raw pointers and manual graph
// freeing. Construction resolves dangling out-transitions through a list of
// arena slots rather than mutating a partially built pointer graph in place.
package nfa

import "errors"

// ErrEmptyPatternSet indicates Build was called with no patterns to compile.
var ErrEmptyPatternSet = errors.New("nfa: no patterns to compile")
