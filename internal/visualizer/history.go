// Package visualizer implements the driver-facing introspection surfaces
// built on top of the execution engine's getters (spec.md §6): a
// scrubbable step history for the interactive TUI, and a colorized
// non-interactive trace mode.
package visualizer

import (
	"github.com/mna/beavers/lang/machine"
	"github.com/mna/beavers/lang/program"
)

// checkpointInterval is how often History caches a full context snapshot,
// trading memory for how much replay work a scrub backward requires.
const checkpointInterval = 1000

// snapshot is one cached point in a program's execution.
type snapshot struct {
	ctx        *machine.ExecutionContext
	realSteps  int
	status     machine.ExecutionStatus
}

// History lazily computes and caches the execution state at arbitrary step
// indices, so that scrubbing backward and forward through a run (as the
// interactive visualizer does) does not require replaying from the start
// every time.
type History struct {
	prog        *program.Program
	checkpoints map[int]snapshot
}

// NewHistory returns a History over prog, with nothing yet computed.
func NewHistory(prog *program.Program) *History {
	return &History{prog: prog, checkpoints: make(map[int]snapshot)}
}

// At returns the execution state after exactly `step` calls to Step,
// computing and caching intermediate checkpoints as needed.
func (h *History) At(step int) (ctx *machine.ExecutionContext, realSteps int, status machine.ExecutionStatus) {
	if s, ok := h.checkpoints[step]; ok {
		return s.ctx, s.realSteps, s.status
	}

	from, cur := h.nearestCheckpointBelow(step)

	for i := from; i < step; i++ {
		n, st := cur.ctx.Step()
		cur.realSteps += n
		cur.status = st
		if (i+1)%checkpointInterval == 0 {
			h.checkpoints[i+1] = snapshot{ctx: cur.ctx.Clone(), realSteps: cur.realSteps, status: cur.status}
		}
	}

	h.checkpoints[step] = snapshot{ctx: cur.ctx.Clone(), realSteps: cur.realSteps, status: cur.status}
	return cur.ctx, cur.realSteps, cur.status
}

func (h *History) nearestCheckpointBelow(step int) (int, snapshot) {
	best := -1
	for k := range h.checkpoints {
		if k <= step && k > best {
			best = k
		}
	}
	if best < 0 {
		return 0, snapshot{ctx: machine.New(h.prog), status: machine.Running()}
	}
	s := h.checkpoints[best]
	return best, snapshot{ctx: s.ctx.Clone(), realSteps: s.realSteps, status: s.status}
}

// TotalCellsAllocated sums the tape length observed at every cached
// checkpoint, a rough diagnostic of how much memory a run touched
// (supplementing spec.md's core with the original implementation's
// cell-allocation counter).
func (h *History) TotalCellsAllocated() int {
	total := 0
	for _, s := range h.checkpoints {
		total += s.ctx.TapeLen()
	}
	return total
}
