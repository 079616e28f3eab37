package tape_test

import (
	"testing"

	"github.com/mna/beavers/lang/tape"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tp := tape.New()
	require.Equal(t, 1, tp.Len())
	require.Equal(t, byte(0), tp.Get(0))
}

func TestGrowthIsMonotonic(t *testing.T) {
	tp := tape.New()
	require.Equal(t, 1, tp.Len())
	tp.EnsureIndex(5)
	require.Equal(t, 6, tp.Len())
	tp.EnsureIndex(2) // already long enough, no shrink
	require.Equal(t, 6, tp.Len())
	for i := 0; i < 6; i++ {
		require.Equal(t, byte(0), tp.Get(i))
	}
}

func TestWrappingArithmetic(t *testing.T) {
	tp := tape.New()
	tp.Dec(0)
	require.Equal(t, byte(255), tp.Get(0))
	tp.Set(0, 255)
	tp.Inc(0)
	require.Equal(t, byte(0), tp.Get(0))
}

func TestSnapshotIsIndependent(t *testing.T) {
	tp := tape.New()
	tp.EnsureIndex(2)
	tp.Set(1, 42)
	snap := tp.Snapshot()
	tp.Set(1, 7)
	require.Equal(t, byte(42), snap[1])
	require.Equal(t, byte(7), tp.Get(1))
}
