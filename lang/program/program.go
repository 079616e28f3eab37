// Package program builds a compiled Program from a sequence of base
// instructions: it fuses recognized idioms into extended opcodes (spec.md
// §4.2 Pass A) and matches StartLoop/EndLoop pairs over the fused sequence
// (Pass B), rejecting programs with unbalanced delimiters.
package program

import (
	"fmt"
	"strings"

	"github.com/mna/beavers/lang/instr"
)

// ExtendedKind tags the closed union of opcodes a compiled Program may
// contain: the six base instructions, plus the three peephole-fused idioms.
type ExtendedKind byte

//nolint:revive
const (
	BaseInstr ExtendedKind = iota
	LoopIfNonzero
	SetToZeroPlus
	SetToZeroMinus
)

// ExtendedInstr is one opcode of the extended instruction set. Base is only
// meaningful when Kind == BaseInstr.
type ExtendedInstr struct {
	Kind ExtendedKind
	Base instr.Instr
}

func (e ExtendedInstr) String() string {
	switch e.Kind {
	case BaseInstr:
		return e.Base.String()
	case LoopIfNonzero:
		return "L"
	case SetToZeroPlus:
		return "Z+"
	case SetToZeroMinus:
		return "Z-"
	default:
		return fmt.Sprintf("illegal extended instruction (%d)", e.Kind)
	}
}

// Program is the immutable, compiled form of a tape-machine source: the
// original instructions, the peephole-fused extended sequence, and the
// bidirectional bracket-match table between matched StartLoop/EndLoop
// indices in the extended sequence.
type Program struct {
	Original     []instr.Instr
	Extended     []ExtendedInstr
	BracketMatch map[int]int
}

// String renders the original (unfused) instruction sequence.
func (p *Program) String() string {
	return instr.Render(p.Original)
}

// ExtendedString renders the extended (fused) opcode sequence using the
// single-character/glyph spelling of each opcode.
func (p *Program) ExtendedString() string {
	var sb strings.Builder
	for _, e := range p.Extended {
		sb.WriteString(e.String())
	}
	return sb.String()
}

// CompileErrorKind tags the closed union of ways building a Program can fail.
type CompileErrorKind byte

//nolint:revive
const (
	UnmatchedEndLoopKind CompileErrorKind = iota
	UnmatchedStartLoopsKind
)

// CompileError reports why a sequence of instructions could not be compiled
// into a Program. Index is valid only for UnmatchedEndLoopKind; Indices is
// valid only for UnmatchedStartLoopsKind.
type CompileError struct {
	Kind    CompileErrorKind
	Index   int
	Indices []int
}

func (e *CompileError) Error() string {
	switch e.Kind {
	case UnmatchedEndLoopKind:
		return fmt.Sprintf("unmatched end loop at index %d", e.Index)
	case UnmatchedStartLoopsKind:
		return fmt.Sprintf("unmatched start loop(s) at indices %v", e.Indices)
	default:
		return "unknown compile error"
	}
}

// Build compiles a sequence of base instructions into a Program, performing
// peephole fusion (Pass A) followed by bracket matching (Pass B). It returns
// a *CompileError if any EndLoop lacks a matching StartLoop or vice versa.
func Build(is []instr.Instr) (*Program, error) {
	extended := fuse(is)
	matches, err := matchBrackets(extended)
	if err != nil {
		return nil, err
	}

	original := make([]instr.Instr, len(is))
	copy(original, is)

	return &Program{
		Original:     original,
		Extended:     extended,
		BracketMatch: matches,
	}, nil
}

// fuse implements spec.md §4.2 Pass A: at each position, the longest
// recognized pattern is matched and emitted as a single ExtendedInstr. The
// two length-3 patterns are tried before the length-2 pattern at the same
// position, since both would otherwise match the same leading "[".
func fuse(is []instr.Instr) []ExtendedInstr {
	out := make([]ExtendedInstr, 0, len(is))
	i := 0
	for i < len(is) {
		switch {
		case matches3(is, i, instr.Plus):
			out = append(out, ExtendedInstr{Kind: SetToZeroPlus})
			i += 3
		case matches3(is, i, instr.Minus):
			out = append(out, ExtendedInstr{Kind: SetToZeroMinus})
			i += 3
		case matches2Loop(is, i):
			out = append(out, ExtendedInstr{Kind: LoopIfNonzero})
			i += 2
		default:
			out = append(out, ExtendedInstr{Kind: BaseInstr, Base: is[i]})
			i++
		}
	}
	return out
}

// matches3 reports whether is[i:i+3] is [ mid ].
func matches3(is []instr.Instr, i int, mid instr.Instr) bool {
	return i+3 <= len(is) &&
		is[i] == instr.StartLoop &&
		is[i+1] == mid &&
		is[i+2] == instr.EndLoop
}

// matches2Loop reports whether is[i:i+2] is [].
func matches2Loop(is []instr.Instr, i int) bool {
	return i+2 <= len(is) &&
		is[i] == instr.StartLoop &&
		is[i+1] == instr.EndLoop
}

// matchBrackets implements spec.md §4.2 Pass B over the extended sequence:
// a stack of open StartLoop indices, recorded both ways in the returned map
// once matched. LoopIfNonzero and SetToZero* opcodes do not participate,
// since fusion already consumed their brackets.
func matchBrackets(extended []ExtendedInstr) (map[int]int, error) {
	matches := make(map[int]int)
	var stack []int

	for i, e := range extended {
		if e.Kind != BaseInstr {
			continue
		}
		switch e.Base {
		case instr.StartLoop:
			stack = append(stack, i)
		case instr.EndLoop:
			if len(stack) == 0 {
				return nil, &CompileError{Kind: UnmatchedEndLoopKind, Index: i}
			}
			start := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			matches[start] = i
			matches[i] = start
		}
	}

	if len(stack) > 0 {
		indices := make([]int, len(stack))
		copy(indices, stack)
		return nil, &CompileError{Kind: UnmatchedStartLoopsKind, Indices: indices}
	}
	return matches, nil
}
