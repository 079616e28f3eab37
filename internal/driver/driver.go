// Package driver runs the parallel program-enumeration sweep described in
// spec.md §5: every program produced by the lexicographic generator is
// evaluated by a worker that owns its own ExecutionContext, stepping it
// until a verdict or the step cap is reached, and the results are folded
// into one summary per program length.
package driver

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mna/beavers/lang/enumerate"
	"github.com/mna/beavers/lang/machine"
	"github.com/mna/beavers/lang/program"
)

// Result is the folded outcome of evaluating every compilable program of one
// length.
type Result struct {
	Length int

	CompilableCount int
	TotalCount      int

	HaltedCount  int
	LoopingCount int
	UnknownCount int

	BestSteps    int
	BestPrograms []string

	MaxTapeLength int

	// HardestToProve is the source of an undecided program whose tape grew
	// the largest before the step cap was reached -- a rough proxy for "the
	// one that looked most like it might eventually halt."
	HardestToProve   string
	hardestTapeLen   int
	UndecidedSamples []string
}

// verdict is one worker's outcome for a single program, folded into a
// Result by the caller holding the result mutex.
type verdict struct {
	src     string
	steps   int
	tapeLen int
	halted  bool
	looping bool
	unknown bool
}

// RunLength evaluates every compilable program of the given length, using
// up to workers goroutines (0 means no limit: one goroutine is started per
// compilable program). stepCap bounds how long any
// single program is run before it is moved to the "unknown" bucket.
func RunLength(ctx context.Context, length, stepCap, workers int, logger *slog.Logger) (Result, error) {
	res := Result{Length: length}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	total := 0
	for seq := range enumerate.Sequences(length) {
		total++

		p, err := program.Build(seq)
		if err != nil {
			continue
		}

		res.CompilableCount++
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			v := evaluate(p, stepCap)
			mu.Lock()
			fold(&res, v)
			mu.Unlock()
			return nil
		})
	}
	res.TotalCount = total

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	logger.Info("enumeration sweep complete",
		"length", length,
		"compilable", res.CompilableCount,
		"total", res.TotalCount,
		"halted", res.HaltedCount,
		"looping", res.LoopingCount,
		"unknown", res.UnknownCount,
		"best_steps", res.BestSteps,
	)
	return res, nil
}

func evaluate(p *program.Program, stepCap int) verdict {
	ctx := machine.New(p)
	v := verdict{src: p.String()}

	for i := 0; i < stepCap; i++ {
		n, status := ctx.Step()
		v.steps += n
		if tl := ctx.TapeLen(); tl > v.tapeLen {
			v.tapeLen = tl
		}

		switch status.Kind {
		case machine.HaltedKind:
			v.halted = true
			return v
		case machine.InfiniteLoopKind:
			v.looping = true
			return v
		}
	}
	v.unknown = true
	return v
}

func fold(res *Result, v verdict) {
	switch {
	case v.halted:
		res.HaltedCount++
		switch {
		case v.steps > res.BestSteps:
			res.BestSteps = v.steps
			res.BestPrograms = []string{v.src}
		case v.steps == res.BestSteps:
			res.BestPrograms = append(res.BestPrograms, v.src)
		}
	case v.looping:
		res.LoopingCount++
	default:
		res.UnknownCount++
		res.UndecidedSamples = append(res.UndecidedSamples, v.src)
		if v.tapeLen > res.hardestTapeLen {
			res.hardestTapeLen = v.tapeLen
			res.HardestToProve = v.src
		}
	}
	if v.tapeLen > res.MaxTapeLength {
		res.MaxTapeLength = v.tapeLen
	}
}
