package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/beavers/lang/instr"
	"github.com/mna/beavers/lang/program"
	"github.com/mna/beavers/internal/visualizer"
)

// Visualize launches the interactive step-scrubbing TUI over a single
// program, or (with --trace) prints a non-interactive colorized step trace
// instead, for piping or logging.
func (c *Cmd) Visualize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return printError(stdio, fmt.Errorf("reading %s: %w", args[0], err))
	}

	p, err := program.Build(instr.Parse(src))
	if err != nil {
		return printError(stdio, fmt.Errorf("%s: %w", args[0], err))
	}

	if c.Trace {
		visualizer.Trace(stdio.Stdout, p, defaultRunStepCap)
		return nil
	}

	if err := visualizer.Run(p, 0); err != nil {
		return printError(stdio, fmt.Errorf("running visualizer: %w", err))
	}
	return nil
}
