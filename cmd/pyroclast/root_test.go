package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plus3/pyroclast/shaft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleWind = ">>><<><>><<<>><>>><<<>>><<<><<<>><>><<>>"

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if args == nil {
		// A nil slice makes cobra fall back to os.Args.
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootDefaultPieces(t *testing.T) {
	out, _, err := execute(t, exampleWind+"\n")
	require.NoError(t, err)
	assert.Equal(t, "3068\n1514285714288\n", out)
}

func TestRootReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(exampleWind+"\n"), 0o644))

	out, _, err := execute(t, "", path, "--pieces", "1,2,3", "--no-prune")
	require.NoError(t, err)
	assert.Equal(t, "1\n4\n6\n", out)
}

func TestRootShow(t *testing.T) {
	out, _, err := execute(t, exampleWind, "--pieces", "2", "--show", "10")
	require.NoError(t, err)
	assert.Equal(t, "4\n"+
		"|...#...|\n"+
		"|..###..|\n"+
		"|...#...|\n"+
		"|..####.|\n"+
		"+-------+\n", out)

	_, _, err = execute(t, exampleWind, "--pieces", "1000000000000", "--show", "10")
	assert.Error(t, err)
}

func TestRootRejectsBadInput(t *testing.T) {
	out, errOut, err := execute(t, ">><x<")
	assert.ErrorIs(t, err, shaft.ErrInvalidWind)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "invalid wind schedule")

	_, _, err = execute(t, "")
	assert.ErrorIs(t, err, shaft.ErrInvalidWind)

	_, _, err = execute(t, exampleWind, "--pieces=-1")
	assert.ErrorIs(t, err, shaft.ErrNegativeCount)
}

func TestRootConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pyroclast.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 1\nspawn_column: 0\npiece_cycle: [tall]\n"), 0o644))

	out, _, err := execute(t, "<", "--config", path, "--pieces", "5,1000000000000")
	require.NoError(t, err)
	assert.Equal(t, "20\n4000000000000\n", out)
}

func TestRootNoCycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pyroclast.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_simulated: 300\n"), 0o644))

	out, errOut, err := execute(t, "<", "--config", path, "--pieces", "300,1000000000000")
	assert.ErrorIs(t, err, shaft.ErrNoCycle)
	assert.Contains(t, errOut, "no cycle found")
	assert.NotEmpty(t, out, "targets within the cap are still printed")
}

func TestRootVerbose(t *testing.T) {
	_, errOut, err := execute(t, exampleWind, "--pieces", "1000000000000", "-v")
	require.NoError(t, err)
	assert.Contains(t, errOut, "cycle detected")
	assert.Contains(t, errOut, "solved")
}
