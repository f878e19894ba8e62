package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAppendsListKeys(t *testing.T) {
	var d Defaults
	require.NoError(t, d.Apply([]string{"includes", "a"}))
	require.NoError(t, d.Apply([]string{"includes", "b"}))
	assert.Equal(t, []string{"a", "b"}, d.Includes)
}

func TestDefaultsAssignsScalarKeys(t *testing.T) {
	var d Defaults
	require.NoError(t, d.Apply([]string{"out-dir", "build"}))
	require.NoError(t, d.Apply([]string{"out-dir", "other"}))
	assert.Equal(t, "other", d.OutDir)
}

func TestDefaultsBoolKeys(t *testing.T) {
	var d Defaults
	require.NoError(t, d.Apply([]string{"debug", "true"}))
	assert.True(t, d.Debug)
	require.NoError(t, d.Apply([]string{"quiet"}))
	assert.True(t, d.Quiet)
}

func TestDefaultsUnknownKeySuggests(t *testing.T) {
	var d Defaults
	err := d.Apply([]string{"incldes", "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "includes")
}
