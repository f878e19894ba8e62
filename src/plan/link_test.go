package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thought-machine/shmake/src/graph"
)

func TestLinkExecutable(t *testing.T) {
	r := graph.NewRegistry()
	compileGroup := Compile(r, CompileSpec{Compiler: "cc", Files: []string{"main.c"}})
	prog := Link(r, LinkSpec{
		Linker:  "cc",
		Name:    "hello",
		Inputs:  []graph.PrereqRef{compileGroup},
		LibDirs: []string{"lib"},
		Libs:    []string{"m"},
	})
	assert.Equal(t, graph.PROG, prog.Kind)
	assert.Equal(t, "linking", prog.Message)
	assert.Equal(t, "cc main.o  -Llib -lm -o hello", prog.Command)
	assert.Len(t, prog.Prereq, 1)
	assert.Equal(t, "main.o", prog.Prereq[0].Name())
}

func TestLinkStaticArchive(t *testing.T) {
	r := graph.NewRegistry()
	compileGroup := Compile(r, CompileSpec{Compiler: "cc", Files: []string{"a.c", "b.c"}})
	lib := Link(r, LinkSpec{Name: "libfoo.a", Inputs: []graph.PrereqRef{compileGroup}, Kind: LIB})
	assert.Equal(t, graph.PROG, lib.Kind)
	assert.Equal(t, "ar rcu libfoo.a a.o b.o; ranlib libfoo.a", lib.Command)
}

func TestLinkSkipsNilSlot(t *testing.T) {
	r := graph.NewRegistry()
	compileGroup := Compile(r, CompileSpec{Compiler: "cc", Files: []string{"main.c"}})
	prog := Link(r, LinkSpec{Linker: "cc", Name: "hello", Inputs: []graph.PrereqRef{nil, compileGroup, "libextra.a"}})
	assert.Len(t, prog.Prereq, 2)
	assert.Equal(t, "main.o", prog.Prereq[0].Name())
	assert.Equal(t, "libextra.a", prog.Prereq[1].Name())
}
