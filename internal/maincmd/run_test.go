package maincmd_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/require"

	"github.com/mna/beavers/internal/maincmd"
)

func TestRunFile(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{file: "incr.bf", want: "status=Halted steps=3 tape_len=1"},
		{file: "loop.bf", want: "status=Halted"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			var buf bytes.Buffer
			stdio := mainer.Stdio{Stdout: &buf}

			err := maincmd.RunFile(stdio, filepath.Join("testdata", "in", tt.file), 100000)
			require.NoError(t, err)
			require.Contains(t, buf.String(), tt.want)
			require.True(t, strings.HasSuffix(buf.String(), "\n"))
		})
	}
}

func TestRunFileInfiniteLoop(t *testing.T) {
	var buf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &buf}

	err := maincmd.RunFile(stdio, filepath.Join("testdata", "in", "infinite.bf"), 100000)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "status=InfiniteLoop(LoopIfNonzero)")
}
