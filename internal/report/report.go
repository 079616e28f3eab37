// Package report writes the driver's per-length findings to disk: one YAML
// file per program length, with the list of still-undecided programs
// spilled to a separate gzip-compressed file once it grows large enough to
// bloat the main report (spec.md §6 "Persisted output" -- the exact format
// is driver-layer, not part of the core).
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"gopkg.in/yaml.v3"
)

// undecidedInlineLimit is the number of undecided programs above which the
// list is written to a separate gzip file instead of inline in the YAML.
const undecidedInlineLimit = 500

// LengthReport is the summary produced by one enumeration sweep over all
// programs of a fixed length.
type LengthReport struct {
	Length int `yaml:"length"`

	// CompilableCount and TotalCount supplement the core report with the
	// original implementation's compilable/total diagnostic; CompilableRatio
	// is derived from them and recomputed on write whenever TotalCount > 0.
	CompilableCount  int     `yaml:"compilable_count"`
	TotalCount       int     `yaml:"total_count"`
	CompilableRatio  float64 `yaml:"compilable_ratio"`

	HaltedCount  int `yaml:"halted_count"`
	LoopingCount int `yaml:"looping_count"`
	UnknownCount int `yaml:"unknown_count"`

	BestSteps    int      `yaml:"best_steps"`
	BestPrograms []string `yaml:"best_programs"`

	MaxTapeLength int `yaml:"max_tape_length"`

	HardestToProve string `yaml:"hardest_to_prove,omitempty"`

	// Undecided is inlined when small; otherwise it is omitted here and
	// spilled to UndecidedFile instead.
	Undecided     []string `yaml:"undecided,omitempty"`
	UndecidedFile string   `yaml:"undecided_file,omitempty"`
}

// Write renders rep to "beavers-NNNN.yaml" (and, if the undecided list is
// long, "beavers-NNNN.undecided.yaml.gz") under dir, where NNNN is the
// length zero-padded to four digits.
func Write(dir string, rep LengthReport) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}

	if rep.TotalCount > 0 {
		rep.CompilableRatio = float64(rep.CompilableCount) / float64(rep.TotalCount)
	}

	base := fmt.Sprintf("beavers-%04d", rep.Length)
	undecided := rep.Undecided

	if len(undecided) > undecidedInlineLimit {
		spillName := base + ".undecided.yaml.gz"
		if err := writeUndecidedSpill(filepath.Join(dir, spillName), undecided); err != nil {
			return err
		}
		rep.Undecided = nil
		rep.UndecidedFile = spillName
	}

	b, err := yaml.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshaling report for length %d: %w", rep.Length, err)
	}
	if err := os.WriteFile(filepath.Join(dir, base+".yaml"), b, 0o644); err != nil {
		return fmt.Errorf("writing report for length %d: %w", rep.Length, err)
	}
	return nil
}

func writeUndecidedSpill(path string, undecided []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating undecided spill file: %w", err)
	}
	defer f.Close()

	gw := gzip.NewWriter(f)
	defer gw.Close()

	b, err := yaml.Marshal(struct {
		Undecided []string `yaml:"undecided"`
	}{undecided})
	if err != nil {
		return fmt.Errorf("marshaling undecided spill: %w", err)
	}
	if _, err := gw.Write(b); err != nil {
		return fmt.Errorf("writing undecided spill: %w", err)
	}
	return nil
}

// Read loads a LengthReport previously written by Write, transparently
// reading back the undecided spill file if one was produced.
func Read(dir, base string) (LengthReport, error) {
	b, err := os.ReadFile(filepath.Join(dir, base+".yaml"))
	if err != nil {
		return LengthReport{}, fmt.Errorf("reading report %s: %w", base, err)
	}

	var rep LengthReport
	if err := yaml.Unmarshal(b, &rep); err != nil {
		return LengthReport{}, fmt.Errorf("unmarshaling report %s: %w", base, err)
	}

	if rep.UndecidedFile != "" {
		undecided, err := readUndecidedSpill(filepath.Join(dir, rep.UndecidedFile))
		if err != nil {
			return LengthReport{}, err
		}
		rep.Undecided = undecided
	}
	return rep, nil
}

func readUndecidedSpill(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening undecided spill file: %w", err)
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("reading undecided spill gzip header: %w", err)
	}
	defer gr.Close()

	var data struct {
		Undecided []string `yaml:"undecided"`
	}
	if err := yaml.NewDecoder(gr).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding undecided spill: %w", err)
	}
	return data.Undecided, nil
}
