package driver_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/mna/beavers/internal/driver"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunLengthZeroIsTheEmptyProgramOnly(t *testing.T) {
	res, err := driver.RunLength(context.Background(), 0, 1000, 2, discardLogger())
	require.NoError(t, err)
	require.Equal(t, 1, res.TotalCount)
	require.Equal(t, 1, res.CompilableCount)
	require.Equal(t, 1, res.HaltedCount)
	require.Equal(t, 0, res.BestSteps)
	require.Equal(t, []string{""}, res.BestPrograms)
}

func TestRunLengthThreeFindsABestProgram(t *testing.T) {
	res, err := driver.RunLength(context.Background(), 3, 1000, 2, discardLogger())
	require.NoError(t, err)
	require.Greater(t, res.CompilableCount, 0)
	require.LessOrEqual(t, res.CompilableCount, res.TotalCount)
	require.NotEmpty(t, res.BestPrograms)
	require.Greater(t, res.BestSteps, 0)
	for _, p := range res.BestPrograms {
		require.Len(t, p, 3)
	}
}

func TestRunLengthBucketsSumToCompilableCount(t *testing.T) {
	res, err := driver.RunLength(context.Background(), 4, 2000, 4, discardLogger())
	require.NoError(t, err)
	require.Equal(t, res.CompilableCount, res.HaltedCount+res.LoopingCount+res.UnknownCount)
}
