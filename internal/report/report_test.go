package report_test

import (
	"testing"

	"github.com/mna/beavers/internal/report"
	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTripSmallUndecided(t *testing.T) {
	dir := t.TempDir()
	rep := report.LengthReport{
		Length:         5,
		HaltedCount:    10,
		LoopingCount:   20,
		UnknownCount:   1,
		BestSteps:      7,
		BestPrograms:   []string{"+[-]"},
		MaxTapeLength:  3,
		HardestToProve: "+[-+]",
		Undecided:      []string{"+++++"},
	}

	require.NoError(t, report.Write(dir, rep))

	got, err := report.Read(dir, "beavers-0005")
	require.NoError(t, err)
	require.Equal(t, rep.Length, got.Length)
	require.Equal(t, rep.BestPrograms, got.BestPrograms)
	require.Equal(t, rep.Undecided, got.Undecided)
	require.Empty(t, got.UndecidedFile)
}

func TestWriteSpillsLargeUndecidedList(t *testing.T) {
	dir := t.TempDir()
	undecided := make([]string, 600)
	for i := range undecided {
		undecided[i] = "+"
	}
	rep := report.LengthReport{Length: 9, Undecided: undecided}

	require.NoError(t, report.Write(dir, rep))

	got, err := report.Read(dir, "beavers-0009")
	require.NoError(t, err)
	require.Len(t, got.Undecided, 600)
	require.NotEmpty(t, got.UndecidedFile)
}
