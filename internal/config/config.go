// Package config loads the settings of the assume-bench command.
package config

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/zeebo/errs"
	"gopkg.in/yaml.v3"

	"github.com/zeebo/assume/bench"
	"github.com/zeebo/assume/harness"
	"github.com/zeebo/assume/internal/mon"
)

// Error is the class that contains all the errors from this package.
var Error = errs.Class("config")

// Formats are the accepted values of Config.Format.
var Formats = []string{"text", "gobench", "json"}

type Config struct {
	Harness harness.Config `yaml:"harness"`

	// Inputs are [Lo, Hi).
	Lo uint `yaml:"lo"`
	Hi uint `yaml:"hi"`

	// Run selects variants whose name matches the regular expression.
	Run string `yaml:"run"`
	// Format is one of Formats.
	Format string `yaml:"format"`
	// Output is the report path. Empty means stdout.
	Output string `yaml:"output"`
	// Baseline is a JSON report to compare against.
	Baseline             string `yaml:"baseline"`
	AllowForeignBaseline bool   `yaml:"allow_foreign_baseline"`

	LogLevel string `yaml:"log_level"`
}

// DefaultConfig measures all six variants over [1, 10000).
var DefaultConfig = Config{
	Harness:  harness.DefaultConfig,
	Lo:       bench.DefaultLo,
	Hi:       bench.DefaultHi,
	Run:      ".",
	Format:   "text",
	LogLevel: "info",
}

// CombineWith fills the unset values of cfg with the values from other.
func (cfg Config) CombineWith(other Config) Config {
	cfg.Harness = cfg.Harness.CombineWith(other.Harness)
	if cfg.Lo == 0 {
		cfg.Lo = other.Lo
	}
	if cfg.Hi == 0 {
		cfg.Hi = other.Hi
	}
	if cfg.Run == "" {
		cfg.Run = other.Run
	}
	if cfg.Format == "" {
		cfg.Format = other.Format
	}
	if cfg.Output == "" {
		cfg.Output = other.Output
	}
	if cfg.Baseline == "" {
		cfg.Baseline = other.Baseline
	}
	if !cfg.AllowForeignBaseline {
		cfg.AllowForeignBaseline = other.AllowForeignBaseline
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = other.LogLevel
	}
	return cfg
}

// Load reads a YAML config file. Unknown keys are an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, Error.Wrap(err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, Error.New("%s: %v", path, err)
	}
	return cfg, nil
}

// Validate checks a combined config.
func (cfg Config) Validate() error {
	if cfg.Lo == 0 {
		return Error.New("lo must be positive: zero violates the logarithm's precondition")
	}
	if cfg.Hi <= cfg.Lo {
		return Error.New("hi (%d) must be greater than lo (%d)", cfg.Hi, cfg.Lo)
	}
	if cfg.Harness.Count < 1 || cfg.Harness.Count > mon.Capacity {
		return Error.New("count must be in [1, %d]: %d", mon.Capacity, cfg.Harness.Count)
	}
	if cfg.Harness.Iterations < 0 {
		return Error.New("iterations must not be negative: %d", cfg.Harness.Iterations)
	}
	if cfg.Harness.BenchTime < 0 {
		return Error.New("benchtime must not be negative: %v", cfg.Harness.BenchTime)
	}
	if cfg.Harness.Tolerance < 0 {
		return Error.New("tolerance must not be negative: %v", cfg.Harness.Tolerance)
	}
	if cfg.Harness.Pin && cfg.Harness.CPU < 0 {
		return Error.New("cpu must not be negative: %d", cfg.Harness.CPU)
	}
	if _, err := regexp.Compile(cfg.Run); err != nil {
		return Error.New("invalid run pattern %q: %v", cfg.Run, err)
	}
	if !validFormat(cfg.Format) {
		return Error.New("unknown format %q: want one of %s", cfg.Format, strings.Join(Formats, ", "))
	}
	if _, err := cfg.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (cfg Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return 0, Error.New("invalid log level %q", cfg.LogLevel)
	}
	return level, nil
}

// Select returns the variants matched by Run.
func (cfg Config) Select() ([]bench.Variant, error) {
	re, err := regexp.Compile(cfg.Run)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	var out []bench.Variant
	for _, v := range bench.Variants() {
		if re.MatchString(v.Name) {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil, Error.New("no variant matches %q", cfg.Run)
	}
	return out, nil
}

// ParseBenchTime parses the go test -benchtime syntax: a duration such as
// "500ms", or an iteration count such as "100x".
func ParseBenchTime(s string) (time.Duration, int, error) {
	if n, ok := strings.CutSuffix(s, "x"); ok {
		iters, err := strconv.Atoi(n)
		if err != nil || iters <= 0 {
			return 0, 0, Error.New("invalid iteration count %q", s)
		}
		return 0, iters, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, 0, Error.New("invalid benchtime %q", s)
	}
	return d, 0, nil
}

func validFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}
