// Package driverconfig binds the enumeration driver's tunables from the
// environment, with defaults sane enough to run with zero configuration.
package driverconfig

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Config holds the knobs the driver and report writer need beyond what the
// CLI flags for a single invocation cover: values an operator running many
// enumeration sweeps would rather set once in the environment.
type Config struct {
	// MinLength and MaxLength are read from the environment but not used by
	// `enumerate`, which always takes both lengths from its arguments.
	MinLength int `env:"BEAVERS_MIN_LENGTH" envDefault:"0"`
	MaxLength int `env:"BEAVERS_MAX_LENGTH" envDefault:"12"`

	// StepCap is the number of steps after which a still-Running program is
	// moved to the "unknown" bucket instead of being run forever.
	StepCap int `env:"BEAVERS_STEP_CAP" envDefault:"100000"`

	// Workers is the number of goroutines evaluating programs concurrently.
	// Zero means no limit (one goroutine per compilable program).
	Workers int `env:"BEAVERS_WORKERS" envDefault:"0"`

	// ReportDir is where one output file per program length is written.
	ReportDir string `env:"BEAVERS_REPORT_DIR" envDefault:"."`

	// CompressUndecided is read from the environment but not passed to the
	// report writer: report.Write always spills an undecided-program list of
	// more than 500 entries to a gzip file, whatever this field holds.
	CompressUndecided bool `env:"BEAVERS_COMPRESS_UNDECIDED" envDefault:"true"`
}

// Load reads a Config from the environment, applying the defaults above to
// any variable that is unset.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parsing driver configuration: %w", err)
	}
	return c, nil
}
