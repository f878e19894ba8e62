package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCompileArgsBasic(t *testing.T) {
	c, err := ParseCompileArgs([]string{"-I", "include", "-D", "FOO BAR=1", "-g", "hello", "hello.c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"include"}, c.IncludeDirs)
	assert.Equal(t, []string{"FOO", "BAR=1"}, c.Defines)
	assert.True(t, c.Debug)
	assert.Equal(t, "hello", c.Name)
	assert.Equal(t, []string{"hello.c"}, c.Files)
}

func TestParseCompileArgsQuotedValue(t *testing.T) {
	c, err := ParseCompileArgs([]string{"-I", `"vendor/has space/include" plain`, "prog"})
	require.NoError(t, err)
	assert.Equal(t, []string{"vendor/has space/include", "plain"}, c.IncludeDirs)
}

func TestParseCompileArgsRequiresName(t *testing.T) {
	_, err := ParseCompileArgs([]string{"-g"})
	assert.Error(t, err)
}

func TestParseCompileArgsMissingValue(t *testing.T) {
	_, err := ParseCompileArgs([]string{"-I"})
	assert.Error(t, err)
}

func TestParseRuleArgs(t *testing.T) {
	r, err := ParseRuleArgs([]string{"-d", "out", "gen", ".go", "protoc $<", "a.proto", "b.proto"})
	require.NoError(t, err)
	assert.Equal(t, "out", r.OutDir)
	assert.Equal(t, "gen", r.Name)
	assert.Equal(t, ".go", r.OutExt)
	assert.Equal(t, "protoc $<", r.Command)
	assert.Equal(t, []string{"a.proto", "b.proto"}, r.Files)
}

func TestParseRuleArgsTooFewPositionals(t *testing.T) {
	_, err := ParseRuleArgs([]string{"gen", ".go"})
	assert.Error(t, err)
}
