// SPDX-License-Identifier: MIT

package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/varbox/basis"
	"github.com/katalvlaran/varbox/config"
	"github.com/katalvlaran/varbox/eigen"
	"github.com/katalvlaran/varbox/logger"
	"github.com/katalvlaran/varbox/matrix"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = Execute(args, &out, &errOut)

	return code, out.String(), errOut.String()
}

func TestSolve_Defaults(t *testing.T) {
	code, out, stderr := run(t, "solve")
	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, out, "N=10 L=1 mass=1 b=1")
	assert.Contains(t, out, "Ground state energy:")
	assert.NotContains(t, out, "Hamiltonian H")
}

func TestSolve_FreeParticle(t *testing.T) {
	code, out, stderr := run(t, "solve", "-n", "5", "-b", "0", "--print-arrays", "--timings", "--solver", "jacobi")
	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, out, "solver jacobi")
	assert.Contains(t, out, "Ground state energy: 4.934802")
	assert.Contains(t, out, "Hamiltonian H")
	assert.Contains(t, out, "diagonalize")
}

func TestSolve_ConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.toml")
	require.NoError(t, os.WriteFile(path, []byte("basis = 3\nslope = 0.0\nstates = 1\n"), 0o644))
	t.Setenv("VARBOX_MASS", "0.5")

	code, out, stderr := run(t, "solve", "--config", path)
	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, out, "N=3 L=1 mass=0.5 b=0")

	// flags beat both
	code, out, stderr = run(t, "solve", "--config", path, "-m", "2")
	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, out, "N=3 L=1 mass=2 b=0")
}

func TestSolve_TimingsFromEnv(t *testing.T) {
	code, out, stderr := run(t, "solve", "-n", "4")
	require.Equal(t, ExitOK, code, stderr)
	assert.NotContains(t, out, "diagonalize")

	t.Setenv("VARBOX_TIMINGS", "true")
	code, out, stderr = run(t, "solve", "-n", "4")
	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, out, "diagonalize")
}

// syncCounter is a log sink that records flushes.
type syncCounter struct {
	bytes.Buffer
	syncs int
}

func (s *syncCounter) Sync() error {
	s.syncs++

	return nil
}

func TestExecute_FlushesLoggerOnError(t *testing.T) {
	sink := &syncCounter{}
	prevOut, prevLogger := logger.Output, logger.Logger
	logger.Output = sink
	t.Cleanup(func() {
		logger.Output, logger.Logger = prevOut, prevLogger
	})

	code, _, _ := run(t, "solve", "-n", "0", "--json-log")
	require.Equal(t, ExitInvalidParameter, code)
	assert.Positive(t, sink.syncs, "logger flushed after a failing command")

	sink.syncs = 0
	code, _, stderr := run(t, "solve", "-n", "3")
	require.Equal(t, ExitOK, code, stderr)
	assert.Positive(t, sink.syncs, "logger flushed after a successful command")
}

func TestSolve_InvalidParameter(t *testing.T) {
	for _, args := range [][]string{
		{"solve", "-n", "0"},
		{"solve", "-L", "-1"},
		{"solve", "-m", "0"},
		{"solve", "--solver", "arpack"},
	} {
		code, _, stderr := run(t, args...)
		assert.Equal(t, ExitInvalidParameter, code, "%v", args)
		assert.Contains(t, stderr, "invalid configuration")
		assert.Contains(t, stderr, "Hint:")
	}
}

func TestSolve_MissingConfig(t *testing.T) {
	code, _, stderr := run(t, "solve", "--config", filepath.Join(t.TempDir(), "nope.toml"))
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stderr, "config init")
}

func TestSolve_Plot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "density.svg")
	code, _, stderr := run(t, "solve", "-n", "6", "--states", "2", "--plot", path)
	require.Equal(t, ExitOK, code, stderr)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "varbox.toml")
	code, out, stderr := run(t, "config", "init", path)
	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, out, "wrote "+path)

	cfg, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), *cfg)

	code, _, stderr = run(t, "config", "init", path)
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stderr, "--force")

	code, _, _ = run(t, "config", "init", "--force", path)
	assert.Equal(t, ExitOK, code)

	code, out, _ = run(t, "config", "show", "--config", path)
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, "basis = 10")
}

func TestVersion(t *testing.T) {
	code, out, _ := run(t, "version")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "varbox dev")

	code, out, _ = run(t, "version", "--json")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, `"commit_hash": "dev"`)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{errors.New("boom"), ExitFailure},
		{errors.Wrap(basis.ErrInvalidParameter, "ctx"), ExitInvalidParameter},
		{errors.Wrap(eigen.ErrUnknownSolver, "ctx"), ExitInvalidParameter},
		{errors.Wrap(matrix.ErrDimensionMismatch, "assemble"), ExitDimensionMismatch},
		{errors.Wrap(&eigen.DiagonalizationError{Solver: "lapack", Code: 1}, "diagonalize"), ExitDiagonalizationFailed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExitCode(tt.err), "%v", tt.err)
	}
}
