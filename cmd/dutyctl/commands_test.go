package main

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const problemFile = "../../internal/infrastructure/refdata/testdata/problem.yaml"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "validate", problemFile)
	require.NoError(t, err)
	assert.Contains(t, out, "VALID 2024-03-04..2024-03-06: 3 flights, 5 seats (1 assigned), 2 employees")

	out, err = run(t, "validate", problemFile, "--from", "2024-03-05", "--days", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "1 flights, 1 seats (0 assigned)")

	_, err = run(t, "validate", "testdata/missing.yaml")
	assert.Error(t, err)

	_, err = run(t, "validate", problemFile, "--from", "tomorrow")
	assert.Error(t, err)
}

func TestEvaluateCommand(t *testing.T) {
	out, err := run(t, "evaluate", problemFile)
	require.NoError(t, err)

	assert.Contains(t, out, "KL1001")
	assert.Contains(t, out, "2024-03-04 07:30")
	assert.Contains(t, out, "GND")
	assert.Contains(t, out, "Unassigned seats: 4")
	assert.Contains(t, out, "Duties: 2")

	out, err = run(t, "evaluate", problemFile, "--employee", "bob")
	require.NoError(t, err)
	assert.NotContains(t, out, "KL1001")
	assert.Contains(t, out, "GND")
}

func TestRepositionCommand(t *testing.T) {
	out, err := run(t, "reposition", problemFile)
	require.NoError(t, err)
	assert.Contains(t, out, "No repositioning needed")
}
