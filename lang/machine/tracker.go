package machine

import (
	"github.com/dolthub/swiss"

	"github.com/mna/beavers/lang/instr"
	"github.com/mna/beavers/lang/program"
)

// loopSpanTracker is the non-halting detector of spec.md §4.5: it keeps, per
// StartLoop index, the currently-active span (if execution is inside that
// construct) and the history of completed spans since execution last left
// the construct without re-entering.
//
// Both maps are keyed by the extended-sequence index of a StartLoop, which
// is why a hash map keyed by small dense integers is the right shape here.
type loopSpanTracker struct {
	active  *swiss.Map[int, *LoopSpan]
	history *swiss.Map[int, []*LoopSpan]
}

func newLoopSpanTracker(p *program.Program) *loopSpanTracker {
	t := &loopSpanTracker{
		active:  swiss.NewMap[int, *LoopSpan](8),
		history: swiss.NewMap[int, []*LoopSpan](8),
	}
	for i, e := range p.Extended {
		if e.Kind == program.BaseInstr && e.Base == instr.StartLoop {
			t.history.Put(i, nil)
		}
	}
	return t
}

// notifyLeft and notifyRight update every currently active span with the
// tape pointer's new position (spec.md §4.5 "Events consumed").
func (t *loopSpanTracker) notifyLeft(newPtr int)  { t.notifyMove(newPtr) }
func (t *loopSpanTracker) notifyRight(newPtr int) { t.notifyMove(newPtr) }

func (t *loopSpanTracker) notifyMove(newPtr int) {
	t.active.Iter(func(_ int, span *LoopSpan) bool {
		span.recordMove(newPtr)
		return false
	})
}

// startRecord opens a new active span for the StartLoop at loopIdx. It must
// not be called while a span is already active for loopIdx.
func (t *loopSpanTracker) startRecord(loopIdx int, snapshot []byte, ptr int) {
	if _, ok := t.active.Get(loopIdx); ok {
		panic("loop span already active for this loop index")
	}
	t.active.Put(loopIdx, newLoopSpan(snapshot, ptr))
}

// endRecordAndCheck closes the active span for loopIdx, compares it against
// the most recently completed span for the same construct (spec.md §4.5's
// cycle check; earlier spans in the history are not compared), and appends
// it to history. It reports the matching pair if a cycle was detected.
func (t *loopSpanTracker) endRecordAndCheck(loopIdx int) (prior, current *LoopSpan, matched bool) {
	span := t.closeActive(loopIdx)

	priorSpans, _ := t.history.Get(loopIdx)
	if n := len(priorSpans); n > 0 {
		last := priorSpans[n-1]
		if last.Equal(span) {
			prior, current, matched = last, span, true
		}
	}

	t.history.Put(loopIdx, append(priorSpans, span))
	return prior, current, matched
}

// endRecordAndClear closes the active span for loopIdx without checking for
// a cycle, and clears the construct's history: execution left the construct
// without re-entering, so past iterations no longer predict the future.
func (t *loopSpanTracker) endRecordAndClear(loopIdx int) {
	t.closeActive(loopIdx)
	t.history.Put(loopIdx, nil)
}

// clone returns an independent deep copy of the tracker, for checkpointing
// an ExecutionContext (e.g. the interactive visualizer's history cache).
func (t *loopSpanTracker) clone() *loopSpanTracker {
	clone := &loopSpanTracker{
		active:  swiss.NewMap[int, *LoopSpan](8),
		history: swiss.NewMap[int, []*LoopSpan](8),
	}
	t.active.Iter(func(k int, v *LoopSpan) bool {
		clone.active.Put(k, v.Clone())
		return false
	})
	t.history.Iter(func(k int, v []*LoopSpan) bool {
		cloned := make([]*LoopSpan, len(v))
		for i, span := range v {
			cloned[i] = span.Clone()
		}
		clone.history.Put(k, cloned)
		return false
	})
	return clone
}

// activeSnapshot returns a fresh map keyed by StartLoop index of every
// currently active span, for spec.md §6's introspection surface. The
// returned map and the LoopSpan values it holds must not be mutated by the
// caller; they are a point-in-time copy, not a live view.
func (t *loopSpanTracker) activeSnapshot() map[int]*LoopSpan {
	out := make(map[int]*LoopSpan)
	t.active.Iter(func(k int, v *LoopSpan) bool {
		out[k] = v.Clone()
		return false
	})
	return out
}

// historySnapshot is activeSnapshot's counterpart for completed spans: one
// slice per StartLoop index, oldest first.
func (t *loopSpanTracker) historySnapshot() map[int][]*LoopSpan {
	out := make(map[int][]*LoopSpan)
	t.history.Iter(func(k int, v []*LoopSpan) bool {
		out[k] = v
		return false
	})
	return out
}

func (t *loopSpanTracker) closeActive(loopIdx int) *LoopSpan {
	span, ok := t.active.Get(loopIdx)
	if !ok {
		panic("no active loop span for this loop index")
	}
	t.active.Delete(loopIdx)
	return span
}
