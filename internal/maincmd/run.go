package maincmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/mna/mainer"

	"github.com/mna/beavers/lang/instr"
	"github.com/mna/beavers/lang/machine"
	"github.com/mna/beavers/lang/program"
)

// defaultRunStepCap bounds how long Run will step a program before giving
// up and reporting it as still running, absent an explicit step count.
const defaultRunStepCap = 1_000_000

// Run executes a single program to completion, to a proven non-halting
// verdict, or to the step cap, printing the final ExecutionStatus and
// observed step count (grounded on original_source/src/main.rs's
// step_count/beaver, which has no teacher equivalent).
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	stepCap := defaultRunStepCap
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return printError(stdio, fmt.Errorf("invalid step cap %q: %w", args[1], err))
		}
		stepCap = n
	}
	return RunFile(stdio, args[0], stepCap)
}

func RunFile(stdio mainer.Stdio, path string, stepCap int) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return printError(stdio, fmt.Errorf("reading %s: %w", path, err))
	}

	p, err := program.Build(instr.Parse(src))
	if err != nil {
		return printError(stdio, fmt.Errorf("%s: %w", path, err))
	}

	ctx := machine.New(p)
	total := 0
	status := machine.Running()
	for i := 0; i < stepCap; i++ {
		var n int
		n, status = ctx.Step()
		total += n
		if status.Kind != machine.RunningKind {
			break
		}
	}

	fmt.Fprintf(stdio.Stdout, "%s: status=%s steps=%d tape_len=%d\n", path, describeStatus(status), total, ctx.TapeLen())
	return nil
}

func describeStatus(status machine.ExecutionStatus) string {
	switch status.Kind {
	case machine.HaltedKind:
		return "Halted"
	case machine.InfiniteLoopKind:
		if status.Reason.Kind == machine.LoopSpanReasonKind {
			return "InfiniteLoop(LoopSpan)"
		}
		return "InfiniteLoop(LoopIfNonzero)"
	default:
		return "Running (step cap reached)"
	}
}
