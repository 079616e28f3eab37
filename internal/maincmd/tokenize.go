package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/beavers/lang/instr"
)

// Tokenize lexes each source file into its instruction sequence and prints
// one line per recognized instruction, in the style of the teacher's
// scanner-phase command.
func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFiles(stdio, args...)
}

func TokenizeFiles(stdio mainer.Stdio, files ...string) error {
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			return printError(stdio, fmt.Errorf("reading %s: %w", path, err))
		}
		for i, in := range instr.Parse(src) {
			fmt.Fprintf(stdio.Stdout, "%s:%d: %s\n", path, i, in)
		}
	}
	return nil
}
