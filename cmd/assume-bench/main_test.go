package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zeebo/assert"

	"github.com/zeebo/assume/harness"
	"github.com/zeebo/assume/internal/config"
)

func TestParse(t *testing.T) {
	var stderr bytes.Buffer

	t.Run("Defaults", func(t *testing.T) {
		cfg, err := parse(nil, &stderr)
		assert.NoError(t, err)
		assert.Equal(t, cfg, config.DefaultConfig)
	})

	t.Run("Flags", func(t *testing.T) {
		cfg, err := parse([]string{"-benchtime", "20x", "-count", "2", "-run", "inlined", "-format", "json", "-pin", "0", "-v"}, &stderr)
		assert.NoError(t, err)
		assert.Equal(t, cfg.Harness.Iterations, 20)
		assert.Equal(t, cfg.Harness.Count, 2)
		assert.Equal(t, cfg.Run, "inlined")
		assert.Equal(t, cfg.Format, "json")
		assert.That(t, cfg.Harness.Pin)
		assert.Equal(t, cfg.Harness.CPU, 0)
		assert.Equal(t, cfg.LogLevel, "debug")
	})

	t.Run("FlagsOverFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cfg.yaml")
		assert.NoError(t, os.WriteFile(path, []byte("harness:\n  count: 7\n  iterations: 3\nformat: gobench\n"), 0644))

		cfg, err := parse([]string{"-config", path, "-count", "4", "-benchtime", "10ms"}, &stderr)
		assert.NoError(t, err)
		assert.Equal(t, cfg.Harness.Count, 4)
		assert.Equal(t, cfg.Harness.Iterations, 0)
		assert.Equal(t, cfg.Harness.BenchTime, 10*time.Millisecond)
		assert.Equal(t, cfg.Format, "gobench")
	})

	t.Run("Seed", func(t *testing.T) {
		cfg, err := parse([]string{"-seed", "5"}, &stderr)
		assert.NoError(t, err)
		assert.Equal(t, cfg.Harness.Seed, uint64(5))

		_, err = parse([]string{"-seed", "0"}, &stderr)
		assert.Error(t, err)
		assert.That(t, strings.Contains(err.Error(), "seed must be positive"))
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := parse([]string{"-benchtime", "soon"}, &stderr)
		assert.Error(t, err)

		_, err = parse([]string{"-format", "xml"}, &stderr)
		assert.Error(t, err)

		_, err = parse([]string{"extra"}, &stderr)
		assert.Error(t, err)
	})
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	report := filepath.Join(dir, "report.json")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"-benchtime", "3x", "-count", "2", "-format", "json", "-o", report,
	}, &stdout, &stderr)
	assert.Equal(t, code, 0)

	data, err := os.ReadFile(report)
	assert.NoError(t, err)
	var rep harness.Report
	assert.NoError(t, json.Unmarshal(data, &rep))
	assert.Equal(t, len(rep.Results), 6)

	// compare against the report just written
	stdout.Reset()
	code = run(context.Background(), []string{
		"-benchtime", "3x", "-count", "1", "-run", "_inlined$", "-baseline", report,
	}, &stdout, &stderr)
	assert.Equal(t, code, 0)
	assert.That(t, strings.Contains(stdout.String(), "delta"))
	assert.That(t, strings.Contains(stdout.String(), "ilog2_with_only_assert_inlined"))
}

func TestRunFailure(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-run", "^nothing$"}, &stdout, &stderr)
	assert.Equal(t, code, 1)
	assert.That(t, strings.Contains(stderr.String(), "no variant matches"))
}
