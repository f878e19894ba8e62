package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitArgsSeparatesEnvFromTarget(t *testing.T) {
	target, env := splitArgs([]string{"DEBUG=1", "PREFIX=/usr/local", "all"})
	assert.Equal(t, "all", target)
	assert.Equal(t, []string{"DEBUG=1", "PREFIX=/usr/local"}, env)
}

func TestSplitArgsNoTarget(t *testing.T) {
	target, env := splitArgs([]string{"FOO=bar"})
	assert.Empty(t, target)
	assert.Equal(t, []string{"FOO=bar"}, env)
}

func TestSplitArgsTargetOnly(t *testing.T) {
	target, env := splitArgs([]string{"clean"})
	assert.Equal(t, "clean", target)
	assert.Empty(t, env)
}
