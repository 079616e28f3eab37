package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/beavers/lang/instr"
	"github.com/mna/beavers/lang/program"
)

// Compile builds the extended program (peephole fusion plus bracket
// matching) for each source file and prints the fused opcode sequence, in
// the style of the teacher's parser/resolver-phase commands.
func (c *Cmd) Compile(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return CompileFiles(stdio, args...)
}

func CompileFiles(stdio mainer.Stdio, files ...string) error {
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			return printError(stdio, fmt.Errorf("reading %s: %w", path, err))
		}

		p, err := program.Build(instr.Parse(src))
		if err != nil {
			return printError(stdio, fmt.Errorf("%s: %w", path, err))
		}

		fmt.Fprintf(stdio.Stdout, "%s: %d instructions, %d extended opcodes\n", path, len(p.Original), len(p.Extended))
		fmt.Fprintf(stdio.Stdout, "  original: %s\n", p.String())
		fmt.Fprintf(stdio.Stdout, "  extended: %s\n", p.ExtendedString())
	}
	return nil
}
