package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"Truss/internal/calc/bridge"
	"Truss/internal/calc/loads"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// an absent env file keeps the tests independent of the working directory
	args = append(args, "--env-file", filepath.Join(t.TempDir(), "none.env"))
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestBridgeCmd_Table(t *testing.T) {
	out, err := run(t, "bridge", "-n", "3", "-a", "0.01", "--live", "10", "--members")
	require.NoError(t, err)
	assert.Contains(t, out, "LADDER TRUSS, 3 PANEL LINES, 11 MEMBERS")
	assert.Contains(t, out, "Safe")
	assert.Contains(t, out, "Reaction (kN)")
	assert.Contains(t, out, "0-2")
}

func TestBridgeCmd_JSON(t *testing.T) {
	out, err := run(t, "bridge", "-n", "4", "-a", "0.01", "--truss-load", "0", "--json")
	require.NoError(t, err)
	var res bridge.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Len(t, res.Members, 16)
	assert.Zero(t, res.MaxStressMPa)
}

func TestBridgeCmd_Errors(t *testing.T) {
	_, err := run(t, "bridge", "-a", "0.01")
	assert.Error(t, err, "panels is required")

	_, err = run(t, "bridge", "-n", "1", "-a", "0.01")
	assert.ErrorContains(t, err, "panels")
}

func TestFlexureCmd(t *testing.T) {
	out, err := run(t, "flexure", "--span", "10", "--area", "0.01", "--live", "10", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"safe": true`)
}

func TestLoadsCmd(t *testing.T) {
	out, err := run(t, "loads", "-d", "10", "-l", "5", "--json")
	require.NoError(t, err)
	var res []loads.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res, 3)
	assert.InDelta(t, 20.0, res[0].DesignLoadKN, 1e-9)
	assert.InDelta(t, 15.0, res[1].DesignLoadKN, 1e-9)
}
