package harness

import (
	"strconv"
	"time"
)

// Config controls how Run measures the variants.
type Config struct {
	// BenchTime is how long testing.Benchmark runs each measurement. It is
	// ignored when Iterations is set.
	BenchTime time.Duration `yaml:"benchtime"`
	// Iterations fixes the number of folds per measurement instead of
	// calibrating against BenchTime.
	Iterations int `yaml:"iterations"`
	// Count is the number of rounds. Every round measures every variant once,
	// in a freshly shuffled order.
	Count int `yaml:"count"`
	// Seed seeds the round order shuffle. Zero is unset and selects the
	// default seed.
	Seed uint64 `yaml:"seed"`
	// Tolerance is how much slower, as a fraction, the unchecked variant may
	// be than the always-checked one before Inversions reports it.
	Tolerance float64 `yaml:"tolerance"`
	// Pin restricts the process to CPU while measuring.
	Pin bool `yaml:"pin"`
	CPU int  `yaml:"cpu"`
}

// DefaultConfig specifies the default config values for Run.
var DefaultConfig = Config{
	BenchTime: 1 * time.Second,
	Count:     10,
	Seed:      1,
	Tolerance: 0.05,
}

// CombineWith fills the unset values of cfg with the values from other.
func (cfg Config) CombineWith(other Config) Config {
	if cfg.BenchTime == 0 {
		cfg.BenchTime = other.BenchTime
	}
	if cfg.Iterations == 0 {
		cfg.Iterations = other.Iterations
	}
	if cfg.Count == 0 {
		cfg.Count = other.Count
	}
	if cfg.Seed == 0 {
		cfg.Seed = other.Seed
	}
	if cfg.Tolerance == 0 {
		cfg.Tolerance = other.Tolerance
	}
	if !cfg.Pin {
		cfg.Pin = other.Pin
		cfg.CPU = other.CPU
	}
	return cfg
}

// benchTime renders the config in the syntax of the test.benchtime flag.
func (cfg Config) benchTime() string {
	if cfg.Iterations > 0 {
		return strconv.Itoa(cfg.Iterations) + "x"
	}
	return cfg.BenchTime.String()
}
