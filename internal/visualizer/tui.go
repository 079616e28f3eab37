package visualizer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/mna/beavers/lang/machine"
	"github.com/mna/beavers/lang/program"
)

// Run opens an interactive, full-screen scrubber over a program's execution
// (spec.md §6): Left/a steps backward, Right/d steps forward, Esc/q quits,
// and holding Shift while stepping keeps stepping in that direction until
// the program pointer leaves the range from the innermost open construct's
// StartLoop up to (not including) its EndLoop, so one move covers the rest
// of the current iteration and stops on that EndLoop (grounded on
// original_source's run loop).
func Run(prog *program.Program, startingStep int) error {
	history := NewHistory(prog)
	currStep := startingStep
	if currStep < 0 {
		currStep = 0
	}

	app := tview.NewApplication()
	view := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	view.SetBorder(true).SetTitle(" program visualizer ")

	render := func() {
		ctx, realSteps, status := history.At(currStep)
		view.SetText(renderTUIState(prog, ctx, currStep, realSteps, status, history.TotalCellsAllocated()))
	}
	render()

	view.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		shift := event.Modifiers()&tcell.ModShift != 0

		var loopStart, loopEnd int
		var haveLoop bool
		if shift {
			ctx, _, _ := history.At(currStep)
			loopStart, loopEnd, haveLoop = ctx.CurrentLoopBounds()
		}

		switch {
		case event.Key() == tcell.KeyLeft || event.Rune() == 'a':
			currStep = stepBackWithinLoop(history, currStep, haveLoop, loopStart, loopEnd)
		case event.Key() == tcell.KeyRight || event.Rune() == 'd':
			currStep = stepForwardWithinLoop(history, currStep, haveLoop, loopStart, loopEnd)
		case event.Key() == tcell.KeyEsc || event.Rune() == 'q':
			app.Stop()
			return nil
		}

		render()
		return nil
	})

	return app.SetRoot(view, true).Run()
}

// stepBackWithinLoop decrements currStep by one, then (when a loop is
// being skipped) keeps decrementing while the program pointer is still
// inside [loopStart, loopEnd).
func stepBackWithinLoop(h *History, currStep int, haveLoop bool, loopStart, loopEnd int) int {
	if currStep == 0 {
		return 0
	}
	currStep--
	if !haveLoop {
		return currStep
	}
	for currStep > 0 {
		ctx, _, _ := h.At(currStep)
		if ctx.ProgPtr() < loopStart || ctx.ProgPtr() >= loopEnd {
			break
		}
		currStep--
	}
	return currStep
}

// stepForwardWithinLoop is stepBackWithinLoop's mirror for the forward
// direction; it never steps past a Halted or InfiniteLoop verdict.
func stepForwardWithinLoop(h *History, currStep int, haveLoop bool, loopStart, loopEnd int) int {
	advance := func(step int) (int, bool) {
		_, _, status := h.At(step)
		if status.Kind != machine.RunningKind {
			return step, false
		}
		return step + 1, true
	}

	next, ok := advance(currStep)
	if !ok {
		return currStep
	}
	currStep = next
	if !haveLoop {
		return currStep
	}
	for {
		ctx, _, status := h.At(currStep)
		if status.Kind != machine.RunningKind {
			return currStep
		}
		if ctx.ProgPtr() < loopStart || ctx.ProgPtr() >= loopEnd {
			return currStep
		}
		next, ok := advance(currStep)
		if !ok {
			return currStep
		}
		currStep = next
	}
}

func renderTUIState(prog *program.Program, ctx *machine.ExecutionContext, step, realSteps int, status machine.ExecutionStatus, cellsAllocated int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Steps: %d (Actual: %d), Status: %s\n", step, realSteps, tuiStatusTag(status))
	fmt.Fprintf(&sb, "Total cells allocated: %d\n\n", cellsAllocated)
	fmt.Fprintln(&sb, renderExtendedPlain(prog, ctx.ProgPtr()))
	fmt.Fprintln(&sb, renderTapePlain(ctx))
	fmt.Fprintln(&sb)
	fmt.Fprintln(&sb, renderLoopSpanPanel(ctx))
	return sb.String()
}

// renderLoopSpanPanel dumps the tracker's active and historical spans for the
// construct currently executing (spec.md §6, SPEC_FULL.md §3.4): one line per
// active span keyed by its StartLoop index, then the completed-span count for
// the innermost construct the cursor is inside, if any.
func renderLoopSpanPanel(ctx *machine.ExecutionContext) string {
	var sb strings.Builder
	sb.WriteString("Loop spans:\n")

	active := ctx.ActiveLoopSpans()
	if len(active) == 0 {
		sb.WriteString("  (none active)\n")
	} else {
		starts := make([]int, 0, len(active))
		for s := range active {
			starts = append(starts, s)
		}
		sort.Ints(starts)
		for _, s := range starts {
			span := active[s]
			fmt.Fprintf(&sb, "  @%d: displacement=%d mask=%v start_ptr=%d current_ptr=%d\n",
				s, span.Displacement(), span.MemoryMask(), span.StartPtr(), span.CurrentPtr())
		}
	}

	start, _, ok := ctx.CurrentLoopBounds()
	if !ok {
		return sb.String()
	}
	history := ctx.LoopSpanHistory()[start]
	fmt.Fprintf(&sb, "  history @%d: %d completed iteration(s)\n", start, len(history))
	return sb.String()
}

func tuiStatusTag(status machine.ExecutionStatus) string {
	switch status.Kind {
	case machine.HaltedKind:
		return "[white:red]Halted[-:-]"
	case machine.InfiniteLoopKind:
		return "[white:darkcyan]InfiniteLoop[-:-]"
	default:
		return "Running"
	}
}

func renderExtendedPlain(p *program.Program, cursor int) string {
	var sb strings.Builder
	for i, e := range p.Extended {
		if i == cursor {
			fmt.Fprintf(&sb, "[black:white]%s[-:-]", tview.Escape(e.String()))
		} else {
			sb.WriteString(tview.Escape(e.String()))
		}
	}
	return sb.String()
}

func renderTapePlain(ctx *machine.ExecutionContext) string {
	cells := ctx.TapeSnapshot()
	var sb strings.Builder
	sb.WriteString("tape: ")
	for i, b := range cells {
		if i == ctx.TapePtr() {
			fmt.Fprintf(&sb, "[black:white]%d[-:-] ", b)
		} else {
			fmt.Fprintf(&sb, "%d ", b)
		}
	}
	return sb.String()
}
