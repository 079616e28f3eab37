package maincmd_test

import (
	"bytes"
	"flag"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"

	"github.com/mna/beavers/internal/filetest"
	"github.com/mna/beavers/internal/maincmd"
)

var testUpdateCompileTests = flag.Bool("test.update-compile-tests", false, "If set, replace expected compile test results with actual results.")

func TestCompileFiles(t *testing.T) {
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".bf") {
		t.Run(fi.Name(), func(t *testing.T) {
			var buf bytes.Buffer
			stdio := mainer.Stdio{Stdout: &buf}

			err := maincmd.CompileFiles(stdio, filepath.Join(srcDir, fi.Name()))
			if err != nil {
				t.Fatal(err)
			}
			filetest.DiffCustom(t, fi, "output", ".compile.want", buf.String(), resultDir, testUpdateCompileTests)
		})
	}
}
