package maincmd

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/mna/mainer"

	"github.com/mna/beavers/internal/driver"
	"github.com/mna/beavers/internal/driverconfig"
	"github.com/mna/beavers/internal/driverlog"
	"github.com/mna/beavers/internal/report"
)

// Enumerate runs the parallel enumeration sweep (internal/driver) over every
// program length in [minLength, maxLength] and writes one report
// (internal/report) per length.
func (c *Cmd) Enumerate(ctx context.Context, stdio mainer.Stdio, args []string) error {
	minLength, err := strconv.Atoi(args[0])
	if err != nil {
		return printError(stdio, fmt.Errorf("invalid min-length %q: %w", args[0], err))
	}
	maxLength, err := strconv.Atoi(args[1])
	if err != nil {
		return printError(stdio, fmt.Errorf("invalid max-length %q: %w", args[1], err))
	}

	cfg, err := driverconfig.Load()
	if err != nil {
		return printError(stdio, fmt.Errorf("loading configuration: %w", err))
	}

	logger := driverlog.New(driverlog.Options{
		Console: stdio.Stderr,
		Level:   slog.LevelInfo,
	})

	for length := minLength; length <= maxLength; length++ {
		res, err := driver.RunLength(ctx, length, cfg.StepCap, cfg.Workers, logger)
		if err != nil {
			return printError(stdio, fmt.Errorf("enumerating length %d: %w", length, err))
		}

		rep := report.LengthReport{
			Length:           res.Length,
			CompilableCount:  res.CompilableCount,
			TotalCount:       res.TotalCount,
			HaltedCount:      res.HaltedCount,
			LoopingCount:     res.LoopingCount,
			UnknownCount:     res.UnknownCount,
			BestSteps:        res.BestSteps,
			BestPrograms:     res.BestPrograms,
			MaxTapeLength:    res.MaxTapeLength,
			HardestToProve:   res.HardestToProve,
			Undecided:        res.UndecidedSamples,
		}
		if err := report.Write(cfg.ReportDir, rep); err != nil {
			return printError(stdio, fmt.Errorf("writing report for length %d: %w", length, err))
		}
		fmt.Fprintf(stdio.Stdout, "length %d: %d/%d compilable, %d halted, %d looping, %d undecided, best=%d\n",
			length, res.CompilableCount, res.TotalCount, res.HaltedCount, res.LoopingCount, res.UnknownCount, res.BestSteps)
	}
	return nil
}
