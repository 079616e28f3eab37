package enumerate_test

import (
	"testing"

	"github.com/mna/beavers/lang/enumerate"
	"github.com/mna/beavers/lang/instr"
	"github.com/stretchr/testify/require"
)

func collectSequences(length int) [][]instr.Instr {
	var out [][]instr.Instr
	for seq := range enumerate.Sequences(length) {
		out = append(out, append([]instr.Instr(nil), seq...))
	}
	return out
}

func TestSequencesLengthZero(t *testing.T) {
	seqs := collectSequences(0)
	require.Len(t, seqs, 1)
	require.Empty(t, seqs[0])
}

func TestSequencesLengthOneCoversRing(t *testing.T) {
	seqs := collectSequences(1)
	require.Len(t, seqs, 6)
	want := []instr.Instr{instr.Plus, instr.Minus, instr.Left, instr.Right, instr.StartLoop, instr.EndLoop}
	for i, w := range want {
		require.Equal(t, []instr.Instr{w}, seqs[i])
	}
}

func TestSequencesLengthTwoIsOdometerOrder(t *testing.T) {
	seqs := collectSequences(2)
	require.Len(t, seqs, 36)
	require.Equal(t, []instr.Instr{instr.Plus, instr.Plus}, seqs[0])
	require.Equal(t, []instr.Instr{instr.Plus, instr.Minus}, seqs[1])
	require.Equal(t, []instr.Instr{instr.Minus, instr.Plus}, seqs[6])
	require.Equal(t, []instr.Instr{instr.EndLoop, instr.EndLoop}, seqs[35])
}

func TestSequencesEarlyStop(t *testing.T) {
	count := 0
	for range enumerate.Sequences(3) {
		count++
		if count == 5 {
			break
		}
	}
	require.Equal(t, 5, count)
}

func TestProgramsSkipsUnbalanced(t *testing.T) {
	count := 0
	for p := range enumerate.Programs(2) {
		require.NotNil(t, p)
		count++
	}
	// Of the 36 length-2 sequences: 16 use none of the two bracket
	// instructions (always balanced), plus exactly one more, "[]", balances
	// with both present. Every other combination leaves a bracket unmatched.
	require.Equal(t, 17, count)
}

func TestProgramsChainCoversAllLengths(t *testing.T) {
	var lens []int
	for p := range enumerate.ProgramsChain(0, 3) {
		lens = append(lens, len(p.Original))
	}
	require.Contains(t, lens, 0)
	require.Contains(t, lens, 1)
	require.Contains(t, lens, 2)
}
