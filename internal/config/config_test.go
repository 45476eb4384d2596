package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"mapshim/internal/errors"
	"mapshim/internal/instrument"
	"mapshim/internal/interpose"
)

func TestParse(t *testing.T) {
	t.Parallel()

	data := `version: 0.8.19
prefix: __mapshim_
targets:
  - contract: C
    variable: s
    path: [x]
  - contract: C
    variable: accounts
    path: [null, allowance]
  - contract: D
    variable: balances
`
	f, err := Parse("mapshim.yaml", []byte(data))
	require.NoError(t, err)
	assert.Equal(t, "0.8.19", f.Version)
	assert.Equal(t, "__mapshim_", f.Prefix)

	targets, err := f.Interposition()
	require.NoError(t, err)
	require.Len(t, targets, 3)
	assert.Equal(t, "C.s.x", targets[0].String())
	assert.Equal(t, "C.accounts[].allowance", targets[1].String())
	assert.Equal(t, interpose.Target{Contract: "D", Variable: "balances"}, targets[2])

	assert.Len(t, f.Options(), 2)
}

func TestOptions(t *testing.T) {
	t.Parallel()

	f, err := Parse("mapshim.yaml", []byte("version: 0.7.6\naux: libs.sol\n"))
	require.NoError(t, err)

	ctx, err := instrument.New(nil, f.Options()...)
	require.NoError(t, err)
	assert.Equal(t, "libs.sol", ctx.Aux.Path)
	assert.False(t, ctx.CheckedArithmetic())
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	f, err := Parse("empty.yaml", nil)
	require.NoError(t, err)
	targets, err := f.Interposition()
	require.NoError(t, err)
	assert.Empty(t, targets)
	assert.Empty(t, f.Options())
}

func TestInvalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		data string
		line int
	}{
		{"syntax", "targets: [", 0},
		{"unknown key", "prefx: m_\n", 0},
		{"version", "version: latest\n", 1},
		{"missing variable", "targets:\n  - contract: C\n", 0},
		{"bad member", "targets:\n  - contract: C\n    variable: s\n    path: [1x]\n", 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse("bad.yaml", []byte(c.data))
			var invalid *Error
			require.True(t, xerrors.As(err, &invalid))
			assert.Equal(t, "bad.yaml", invalid.Position.Filename)
			if c.line > 0 {
				assert.Equal(t, c.line, invalid.Position.Line)
			}

			compilerError, ok := errors.AsCompilerError(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrorInvalidConfig, compilerError.Code)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "mapshim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("targets:\n  - {contract: C, variable: x}\n"), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	require.Len(t, f.Targets, 1)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
