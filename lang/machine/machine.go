// Package machine implements the single-step execution engine for a compiled
// Program, together with the loop-span tracker that proves non-halting
// (spec.md §4.4, §4.5).
package machine

import (
	"github.com/mna/beavers/lang/instr"
	"github.com/mna/beavers/lang/program"
	"github.com/mna/beavers/lang/tape"
)

// ExecutionContext is the mutable state of one run of a Program: the tape,
// the tape and program pointers, and the bookkeeping needed to prove
// non-halting. It is not safe for concurrent use; a parallel enumeration
// driver gives each worker its own ExecutionContext over a shared, immutable
// *program.Program (spec.md §5).
type ExecutionContext struct {
	prog *program.Program
	tape *tape.Tape

	tapePtr int
	progPtr int
	halted  bool

	tracker     *loopSpanTracker
	loopStack   []int      // indices (into prog.Extended) of currently open StartLoop instructions
	loopMatched bool       // set by stepEndLoop when the tracker proves a cycle
	loopWitness LoopReason // prior/current spans that witnessed the cycle, valid when loopMatched
}

// New returns a fresh ExecutionContext ready to run p from the start of the
// tape.
func New(p *program.Program) *ExecutionContext {
	return &ExecutionContext{
		prog:    p,
		tape:    tape.New(),
		tracker: newLoopSpanTracker(p),
	}
}

// Clone returns an independent copy of the context, sharing the same
// (immutable) Program but deep-copying the tape, tracker, and loop stack.
// Used by the interactive visualizer to checkpoint history without
// re-running a program from the start on every scrub.
func (c *ExecutionContext) Clone() *ExecutionContext {
	return &ExecutionContext{
		prog:        c.prog,
		tape:        c.tape.Clone(),
		tapePtr:     c.tapePtr,
		progPtr:     c.progPtr,
		halted:      c.halted,
		tracker:     c.tracker.clone(),
		loopStack:   append([]int(nil), c.loopStack...),
		loopMatched: c.loopMatched,
		loopWitness: c.loopWitness.clone(),
	}
}

// TapePtr returns the current tape pointer.
func (c *ExecutionContext) TapePtr() int { return c.tapePtr }

// ProgPtr returns the current index into the extended instruction sequence.
func (c *ExecutionContext) ProgPtr() int { return c.progPtr }

// TapeSnapshot returns a copy of the tape's current contents.
func (c *ExecutionContext) TapeSnapshot() []byte { return c.tape.Snapshot() }

// TapeLen returns the tape's current length.
func (c *ExecutionContext) TapeLen() int { return c.tape.Len() }

// Halted reports whether the context has already reached the sticky Halted
// state.
func (c *ExecutionContext) Halted() bool { return c.halted }

// CurrentLoopBounds returns the extended-sequence indices of the innermost
// repeat construct currently open on the loop stack, for use by a trace
// visualizer's bounds navigation (spec.md §6).
func (c *ExecutionContext) CurrentLoopBounds() (start, end int, ok bool) {
	if len(c.loopStack) == 0 {
		return 0, 0, false
	}
	start = c.loopStack[len(c.loopStack)-1]
	return start, c.prog.BracketMatch[start], true
}

// ActiveLoopSpans returns an immutable, point-in-time snapshot of the
// tracker's active spans, keyed by the StartLoop index of the construct
// each one belongs to (spec.md §6). Absent entries mean execution is not
// currently inside that construct.
func (c *ExecutionContext) ActiveLoopSpans() map[int]*LoopSpan {
	return c.tracker.activeSnapshot()
}

// LoopSpanHistory returns an immutable, point-in-time snapshot of the
// tracker's completed-span history, keyed by StartLoop index, oldest span
// first (spec.md §6).
func (c *ExecutionContext) LoopSpanHistory() map[int][]*LoopSpan {
	return c.tracker.historySnapshot()
}

// Step executes exactly one extended opcode and reports how many abstract
// steps it represents and the resulting status (spec.md §4.4). Once Halted
// is reported, every subsequent call returns (0, Halted()) without touching
// any state.
func (c *ExecutionContext) Step() (int, ExecutionStatus) {
	if c.halted {
		return 0, Halted()
	}
	if c.progPtr >= len(c.prog.Extended) {
		c.halted = true
		return 0, Halted()
	}

	e := c.prog.Extended[c.progPtr]

	var steps int
	switch e.Kind {
	case program.BaseInstr:
		steps = c.stepBase(e.Base)
	case program.LoopIfNonzero:
		if c.tape.Get(c.tapePtr) != 0 {
			// Firing an empty loop spins forever: report without advancing
			// progPtr, so a caller that keeps stepping observes the same
			// verdict again rather than silently moving on.
			return 2, InfiniteLoop(LoopReason{Kind: LoopIfNonzeroReasonKind})
		}
		c.progPtr++
		steps = 2
	case program.SetToZeroPlus:
		cell := int(c.tape.Get(c.tapePtr))
		steps = 1 + 2*((256-cell)%256)
		c.tape.Set(c.tapePtr, 0)
		c.progPtr++
	case program.SetToZeroMinus:
		cell := int(c.tape.Get(c.tapePtr))
		steps = 1 + 2*cell
		c.tape.Set(c.tapePtr, 0)
		c.progPtr++
	}

	if c.loopMatched {
		c.loopMatched = false
		return steps, InfiniteLoop(c.loopWitness)
	}

	if c.progPtr >= len(c.prog.Extended) {
		c.halted = true
		return steps, Halted()
	}
	return steps, Running()
}

func (c *ExecutionContext) stepBase(b instr.Instr) int {
	switch b {
	case instr.Plus:
		c.tape.Inc(c.tapePtr)
		c.progPtr++
	case instr.Minus:
		c.tape.Dec(c.tapePtr)
		c.progPtr++
	case instr.Left:
		if c.tapePtr > 0 {
			c.tapePtr--
			c.tracker.notifyLeft(c.tapePtr)
		}
		c.progPtr++
	case instr.Right:
		c.tapePtr++
		c.tape.EnsureIndex(c.tapePtr)
		c.tracker.notifyRight(c.tapePtr)
		c.progPtr++
	case instr.StartLoop:
		c.stepStartLoop()
	case instr.EndLoop:
		c.stepEndLoop()
	}
	return 1
}

func (c *ExecutionContext) stepStartLoop() {
	if c.tape.Get(c.tapePtr) == 0 {
		c.progPtr = c.prog.BracketMatch[c.progPtr] + 1
		return
	}
	c.tracker.startRecord(c.progPtr, c.tape.Snapshot(), c.tapePtr)
	c.loopStack = append(c.loopStack, c.progPtr)
	c.progPtr++
}

func (c *ExecutionContext) stepEndLoop() {
	start := c.prog.BracketMatch[c.progPtr]

	if c.tape.Get(c.tapePtr) == 0 {
		c.tracker.endRecordAndClear(start)
		c.loopStack = c.loopStack[:len(c.loopStack)-1]
		c.progPtr++
		return
	}

	// Taken: close the current iteration's span, check it against the
	// construct's history, then immediately open the next iteration's span
	// at the same position (the jump back lands here, so StartLoop itself
	// is not re-executed). The loop stack depth is unchanged: we never left
	// the construct.
	prior, current, matched := c.tracker.endRecordAndCheck(start)
	c.tracker.startRecord(start, c.tape.Snapshot(), c.tapePtr)
	c.progPtr = start + 1
	if matched {
		c.loopMatched = true
		c.loopWitness = LoopReason{Kind: LoopSpanReasonKind, Prior: prior, Current: current}
	}
}
