package directive

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thought-machine/shmake/src/graph"
)

func newTestDriver() *Driver {
	return NewDriver(graph.Options{Testing: true}, false)
}

func chdirTemp(t *testing.T) func() {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	return func() { os.Chdir(wd) }
}

func TestStraightBuildSingleFileShortcut(t *testing.T) {
	d := newTestDriver()
	c, err := ParseCompileArgs([]string{"hello.c"})
	require.NoError(t, err)
	prog, err := d.straightBuild("cc", c)
	require.NoError(t, err)
	assert.Equal(t, "hello", prog.Name())
	require.Len(t, prog.Prereq, 1)
	assert.Equal(t, "hello.o", prog.Prereq[0].Name())
}

func TestStraightBuildStaticArchive(t *testing.T) {
	d := newTestDriver()
	c, err := ParseCompileArgs([]string{"libfoo.a", "a.c", "b.c"})
	require.NoError(t, err)
	prog, err := d.straightBuild("cc", c)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(prog.Command, "ar rcu libfoo.a"))
}

func TestStraightBuildExcludesFiles(t *testing.T) {
	d := newTestDriver()
	c, err := ParseCompileArgs([]string{"-x", "skip.c", "prog", "a.c", "skip.c", "b.c"})
	require.NoError(t, err)
	prog, err := d.straightBuild("cc", c)
	require.NoError(t, err)
	assert.Len(t, prog.Prereq, 2)
	assert.Equal(t, "a.o", prog.Prereq[0].Name())
	assert.Equal(t, "b.o", prog.Prereq[1].Name())
}

func TestStraightBuildDebugAppendsFlag(t *testing.T) {
	restore := chdirTemp(t)
	defer restore()
	d := newTestDriver()
	c, err := ParseCompileArgs([]string{"-g", "-d", "auto", "prog", "a.c"})
	require.NoError(t, err)
	prog, err := d.straightBuild("cc", c)
	require.NoError(t, err)
	obj := prog.Prereq[0]
	objTarget, ok := obj.(*graph.Target)
	require.True(t, ok)
	assert.Contains(t, objTarget.Command, "-g")
	assert.Contains(t, objTarget.Name(), "cc-debug")
}

func TestStraightBuildExportsDefaultStripsWithoutExports(t *testing.T) {
	d := newTestDriver()
	d.Defaults.Exports = false
	c, err := ParseCompileArgs([]string{"prog", "a.c"})
	require.NoError(t, err)
	prog, err := d.straightBuild("cc", c)
	require.NoError(t, err)
	assert.Contains(t, prog.Command, "-Wl,-s")
}

func TestStraightBuildExportsDefaultTrue(t *testing.T) {
	d := newTestDriver()
	c, err := ParseCompileArgs([]string{"prog", "a.c"})
	require.NoError(t, err)
	prog, err := d.straightBuild("cc", c)
	require.NoError(t, err)
	assert.Contains(t, prog.Command, "-Wl,-E")
}

func TestTargetDirectiveLiteralNone(t *testing.T) {
	d := newTestDriver()
	require.NoError(t, d.Dispatch(Line{Tag: "target", Args: []string{"out", "in.txt", "none"}}))
	tgt, ok := d.Reg.TargetByName("out")
	require.True(t, ok)
	assert.Empty(t, tgt.Command)
}

func TestAllDirectiveCreatesPhony(t *testing.T) {
	d := newTestDriver()
	require.NoError(t, d.Dispatch(Line{Tag: "target", Args: []string{"a", "x"}}))
	require.NoError(t, d.Dispatch(Line{Tag: "all", Args: []string{"a"}}))
	tgt, ok := d.Reg.TargetByName("all")
	require.True(t, ok)
	assert.Equal(t, graph.PHONY, tgt.Kind)
}

func TestQuitUnconditional(t *testing.T) {
	d := newTestDriver()
	err := d.Dispatch(Line{Tag: "quit", Args: []string{"stop here"}})
	assert.EqualError(t, err, "quit: stop here")
}

func TestQuitExistsMissingVar(t *testing.T) {
	d := newTestDriver()
	err := d.Dispatch(Line{Tag: "quit", Args: []string{"exists", "SHMAKE_DOES_NOT_EXIST"}})
	assert.Error(t, err)
}

func TestRuleDirectiveBuildsGroup(t *testing.T) {
	d := newTestDriver()
	err := d.Dispatch(Line{Tag: "rule", Args: []string{"gen", ".go", "protoc $<", "a.proto", "b.proto"}})
	require.NoError(t, err)
	g, ok := d.Reg.GroupByName("gen")
	require.True(t, ok)
	require.Len(t, g.Targets, 2)
	assert.Equal(t, "a.go", g.Targets[0].Name())
}

func TestSetUnknownKeyDispatchError(t *testing.T) {
	d := newTestDriver()
	err := d.Dispatch(Line{Tag: "set", Args: []string{"bogus", "1"}})
	assert.Error(t, err)
}
