package main

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger_DefaultLevel(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := newLogger(&buf, false)
	assert.Equal(t, log.InfoLevel, l.GetLevel())
}

func TestNewLogger_VerboseLevel(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := newLogger(&buf, true)
	assert.Equal(t, log.DebugLevel, l.GetLevel())
}

func TestRootCmd_OutputFlagRequired(t *testing.T) {
	// Not parallel: mutates shared rootCmd state.
	rootCmd.SetArgs([]string{"--input", t.TempDir()})
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))

	err := rootCmd.Execute()
	assert.Error(t, err)
}
