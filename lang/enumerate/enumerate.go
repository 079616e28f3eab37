// Package enumerate is the external lexicographic program generator
// (spec.md §6): it walks every instruction sequence of a given length in
// odometer order and, for Programs, filters out the ones that fail to
// compile.
package enumerate

import (
	"github.com/mna/beavers/lang/instr"
	"github.com/mna/beavers/lang/program"
)

// Sequences yields every instruction sequence of the given length, in
// lexicographic ("odometer") order: the rightmost instruction advances
// fastest through the Plus->Minus->Left->Right->StartLoop->EndLoop ring,
// carrying left on wrap. The starting sequence is length copies of Plus; at
// length 0 the sole sequence yielded is the empty one.
//
// The returned function is a Go 1.23 iterator: range over it directly, or
// stop early by returning false from the yield callback.
func Sequences(length int) func(yield func([]instr.Instr) bool) {
	return func(yield func([]instr.Instr) bool) {
		if length == 0 {
			yield(nil)
			return
		}

		cur := make([]instr.Instr, length)
		for i := range cur {
			cur[i] = instr.Plus
		}

		for {
			if !yield(cur) {
				return
			}
			next, ok := nextSequence(cur)
			if !ok {
				return
			}
			cur = next
		}
	}
}

// nextSequence advances seq to its successor in the odometer order. ok is
// false once every position has wrapped back to Plus, meaning seq was the
// last sequence of its length.
func nextSequence(seq []instr.Instr) (next []instr.Instr, ok bool) {
	next = append([]instr.Instr(nil), seq...)
	for i := len(next) - 1; i >= 0; i-- {
		succ, didWrap := instr.Successor(next[i])
		next[i] = succ
		if !didWrap {
			return next, true
		}
	}
	// Every position wrapped back around to Plus: seq was the last one.
	return nil, false
}

// Programs yields every compilable Program built from the instruction
// sequences of the given length, in the same lexicographic order as
// Sequences. Sequences whose brackets do not balance are silently skipped.
func Programs(length int) func(yield func(*program.Program) bool) {
	return func(yield func(*program.Program) bool) {
		for seq := range Sequences(length) {
			p, err := program.Build(seq)
			if err != nil {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

// ProgramsChain yields every compilable Program across all lengths in
// [minLength, maxLength), concatenating Programs(minLength),
// Programs(minLength+1), and so on.
func ProgramsChain(minLength, maxLength int) func(yield func(*program.Program) bool) {
	return func(yield func(*program.Program) bool) {
		for l := minLength; l < maxLength; l++ {
			for p := range Programs(l) {
				if !yield(p) {
					return
				}
			}
		}
	}
}
