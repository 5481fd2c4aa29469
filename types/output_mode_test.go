package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputMode(t *testing.T) {
	assert.Equal(t, "stdout", OutputModeStdout.String())
	for _, m := range ValidOutputModes() {
		assert.True(t, m.IsValid(), "mode %s", m)
	}
	assert.False(t, OutputMode("").IsValid())
	assert.False(t, OutputMode("STDOUT").IsValid())

	assert.Equal(t, OutputModeFile, OutputModeAuto.resolveFor("windows"))
	assert.Equal(t, OutputModeStdout, OutputModeAuto.resolveFor("linux"))
	assert.Equal(t, OutputModeFile, OutputModeFile.resolveFor("linux"))
	assert.Equal(t, OutputModeStdout, OutputModeStdout.resolveFor("windows"))
	assert.NotEqual(t, OutputModeAuto, OutputModeAuto.Resolve())
}
