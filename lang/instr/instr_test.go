package instr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInstrString(t *testing.T) {
	for i := Instr(0); i < numInstr; i++ {
		require.NotEmpty(t, i.String())
	}
	require.Equal(t, "illegal instruction", Instr(numInstr).String())
}

func TestParse(t *testing.T) {
	cases := []struct {
		desc string
		in   string
		want []Instr
	}{
		{"empty", "", nil},
		{"all six", "+-<>[]", []Instr{Plus, Minus, Left, Right, StartLoop, EndLoop}},
		{"discards unknown", "+ foo\n-\t<bar>[baz]", []Instr{Plus, Minus, Left, Right, StartLoop, EndLoop}},
		{"repeats", "+++", []Instr{Plus, Plus, Plus}},
	}
	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			got := ParseString(c.in)
			if c.want == nil {
				require.Empty(t, got)
				return
			}
			require.Equal(t, c.want, got)
		})
	}
}

func TestParseRenderRoundTrip(t *testing.T) {
	cases := []string{"", "+", "+-<>[]", "+[-]", ">+[>++++[-<]>>]"}
	for _, c := range cases {
		t.Run(c, func(t *testing.T) {
			is := ParseString(c)
			require.Equal(t, c, Render(is))
			require.Equal(t, is, Parse([]byte(Render(is))))
		})
	}
}

func TestSuccessorRing(t *testing.T) {
	order := []Instr{Plus, Minus, Left, Right, StartLoop, EndLoop}
	for i := 0; i < len(order)-1; i++ {
		next, wrapped := Successor(order[i])
		require.False(t, wrapped)
		require.Equal(t, order[i+1], next)
	}
	next, wrapped := Successor(EndLoop)
	require.True(t, wrapped)
	require.Equal(t, Plus, next)
}
