package program_test

import (
	"testing"

	"github.com/mna/beavers/lang/instr"
	"github.com/mna/beavers/lang/program"
	"github.com/stretchr/testify/require"
)

func TestBuildFusion(t *testing.T) {
	cases := []struct {
		desc string
		in   string
		want string // extended rendering
	}{
		{"empty", "", ""},
		{"set to zero plus", "[+]", "Z+"},
		{"set to zero minus", "[-]", "Z-"},
		{"loop if nonzero", "[]", "L"},
		{"plain loop body", "[+-]", "[+-]"},
		{"fusion does not cross boundaries", "+[+]-", "+Z+-"},
		{"nested fused loops", "[[+]]", "[Z+]"},
		{"length-3 tested before length-2", "[+][-][]", "Z+Z-L"},
	}
	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			p, err := program.Build(instr.ParseString(c.in))
			require.NoError(t, err)
			require.Equal(t, c.want, p.ExtendedString())
		})
	}
}

func TestBuildBracketMatch(t *testing.T) {
	p, err := program.Build(instr.ParseString("+[->+<]"))
	require.NoError(t, err)

	for k, v := range p.BracketMatch {
		require.Equal(t, k, p.BracketMatch[v], "bracketMatch must be symmetric")
		if k < v {
			require.Equal(t, instr.StartLoop, p.Extended[k].Base)
			require.Equal(t, instr.EndLoop, p.Extended[v].Base)
		}
	}
}

func TestBuildCompileErrors(t *testing.T) {
	cases := []struct {
		desc string
		in   string
		kind program.CompileErrorKind
	}{
		{"unmatched end loop", "]", program.UnmatchedEndLoopKind},
		{"unmatched end loop after valid program", "+[-]>]", program.UnmatchedEndLoopKind},
		{"unmatched start loop", "[", program.UnmatchedStartLoopsKind},
		{"multiple unmatched start loops", "[[+", program.UnmatchedStartLoopsKind},
	}
	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			_, err := program.Build(instr.ParseString(c.in))
			require.Error(t, err)
			var ce *program.CompileError
			require.ErrorAs(t, err, &ce)
			require.Equal(t, c.kind, ce.Kind)
		})
	}
}

func TestBuildRoundTripOriginal(t *testing.T) {
	src := ">+[>++++[-<]>>]"
	p, err := program.Build(instr.ParseString(src))
	require.NoError(t, err)
	require.Equal(t, src, p.String())
}
