package machine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoopSpanEqualityReflexiveSymmetric(t *testing.T) {
	mk := func(tape []byte, start, min, max, cur int) *LoopSpan {
		s := newLoopSpan(tape, start)
		s.minPtr, s.maxPtr, s.currentPtr = min, max, cur
		return s
	}

	spans := []*LoopSpan{
		mk([]byte{1, 0, 0}, 0, 0, 0, 0),
		mk([]byte{1, 2, 0}, 0, 0, 1, 1),
		mk([]byte{0, 0, 0}, 1, 0, 2, 0),
		mk([]byte{5}, 0, 0, 0, 0),
	}

	for _, x := range spans {
		require.True(t, x.Equal(x), "reflexive")
	}
	for _, x := range spans {
		for _, y := range spans {
			require.Equal(t, x.Equal(y), y.Equal(x), "symmetric")
		}
	}
}

func TestMemoryMaskTrailingZerosIgnored(t *testing.T) {
	// zero displacement: the mask is clamped at the last nonzero cell
	a := newLoopSpan([]byte{1, 2, 0, 0, 0}, 0)
	a.minPtr, a.maxPtr, a.currentPtr = 0, 1, 0
	b := newLoopSpan([]byte{1, 2}, 0)
	b.minPtr, b.maxPtr, b.currentPtr = 0, 1, 0
	require.True(t, a.Equal(b))
}

func TestMemoryMaskDisplacementDirections(t *testing.T) {
	// displacement < 0: mask is [0..hi]
	left := newLoopSpan([]byte{9, 1, 2, 0}, 2)
	left.minPtr, left.maxPtr, left.currentPtr = 1, 2, 1
	require.Equal(t, []byte{9, 1, 2}, left.memoryMask())

	// displacement > 0: mask is [lo..end], not clamped at hi
	right := newLoopSpan([]byte{9, 1, 2, 0}, 1)
	right.minPtr, right.maxPtr, right.currentPtr = 1, 2, 2
	require.Equal(t, []byte{1, 2, 0}, right.memoryMask())

	// displacement == 0: mask is [lo..hi]
	flat := newLoopSpan([]byte{9, 1, 2, 0}, 1)
	flat.minPtr, flat.maxPtr, flat.currentPtr = 1, 2, 1
	require.Equal(t, []byte{1, 2}, flat.memoryMask())
}
