package visualizer

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/mna/beavers/lang/instr"
	"github.com/mna/beavers/lang/machine"
	"github.com/mna/beavers/lang/program"
)

var (
	colorArith  = color.New(color.FgGreen)
	colorMove   = color.New(color.FgYellow)
	colorLoop   = color.New(color.FgMagenta)
	colorFused  = color.New(color.FgCyan, color.Bold)
	colorCursor = color.New(color.BgWhite, color.FgBlack, color.Bold)
	colorHalt   = color.New(color.FgWhite, color.BgRed, color.Bold)
	colorLoopST = color.New(color.FgWhite, color.BgCyan, color.Bold)
)

// Trace runs p step by step, printing one colorized line per step to w: the
// extended opcode sequence with the current instruction highlighted, the
// tape around the current pointer, and the resulting status. It stops after
// maxSteps steps or a terminal status, whichever comes first.
func Trace(w io.Writer, p *program.Program, maxSteps int) {
	ctx := machine.New(p)

	for i := 0; i < maxSteps; i++ {
		fmt.Fprintln(w, renderExtended(p, ctx.ProgPtr()))
		fmt.Fprintln(w, renderTape(ctx))

		n, status := ctx.Step()
		fmt.Fprintf(w, "step %d: observed=%d status=%s\n", i, n, renderStatus(status))
		if status.Kind == machine.InfiniteLoopKind && status.Reason.Kind == machine.LoopSpanReasonKind {
			fmt.Fprintln(w, renderWitness(status.Reason))
		}
		fmt.Fprintln(w)

		if status.Kind != machine.RunningKind {
			return
		}
	}
	fmt.Fprintln(w, "... step cap reached, still running")
}

func renderExtended(p *program.Program, cursor int) string {
	var sb strings.Builder
	for i, e := range p.Extended {
		s := e.String()
		var c *color.Color
		switch e.Kind {
		case program.LoopIfNonzero, program.SetToZeroPlus, program.SetToZeroMinus:
			c = colorFused
		default:
			switch e.Base {
			case instr.Plus, instr.Minus:
				c = colorArith
			case instr.Left, instr.Right:
				c = colorMove
			default: // StartLoop, EndLoop
				c = colorLoop
			}
		}
		if i == cursor {
			sb.WriteString(colorCursor.Sprint(s))
		} else {
			sb.WriteString(c.Sprint(s))
		}
	}
	return sb.String()
}

func renderTape(ctx *machine.ExecutionContext) string {
	cells := ctx.TapeSnapshot()
	var sb strings.Builder
	sb.WriteString("tape: ")
	for i, b := range cells {
		if i == ctx.TapePtr() {
			fmt.Fprintf(&sb, "[%d] ", b)
		} else {
			fmt.Fprintf(&sb, "%d ", b)
		}
	}
	return sb.String()
}

// renderWitness describes the prior/current span pair that proved a
// LoopSpan cycle: the two iterations the tracker found indistinguishable.
func renderWitness(reason machine.LoopReason) string {
	return fmt.Sprintf("  witness: prior displacement=%d mask=%v, current displacement=%d mask=%v",
		reason.Prior.Displacement(), reason.Prior.MemoryMask(),
		reason.Current.Displacement(), reason.Current.MemoryMask())
}

func renderStatus(status machine.ExecutionStatus) string {
	switch status.Kind {
	case machine.HaltedKind:
		return colorHalt.Sprint("Halted")
	case machine.InfiniteLoopKind:
		reason := "LoopIfNonzero"
		if status.Reason.Kind == machine.LoopSpanReasonKind {
			reason = "LoopSpan"
		}
		return colorLoopST.Sprintf("InfiniteLoop(%s)", reason)
	default:
		return "Running"
	}
}
