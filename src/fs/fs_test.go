package fs

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplaceExtensionRoundTrip(t *testing.T) {
	p := ReplaceExtension("src/hello.c", ".o")
	assert.Equal(t, "src/hello.o", p)
	assert.Equal(t, ReplaceExtension(p, ".d"), ReplaceExtension("src/hello.c", ".d"))
}

func TestJoinOutDirEmpty(t *testing.T) {
	assert.Equal(t, "hello.c", JoinOutDir("", "hello.c"))
}

func TestJoinOutDirAbsoluteInput(t *testing.T) {
	assert.Equal(t, "/abs/hello.c", JoinOutDir("build", "/abs/hello.c"))
}

func TestJoinOutDirDotSlashInput(t *testing.T) {
	assert.Equal(t, "./hello.c", JoinOutDir("build", "./hello.c"))
}

func TestJoinOutDirRelative(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	assert.NoError(t, err)
	assert.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)
	odir := "out"
	got := JoinOutDir(odir, "src/hello.c")
	assert.Equal(t, odir+"/src/hello.c", got)
	assert.True(t, IsDirectory(odir))
}

func TestJoinOutDirAbsoluteOutDir(t *testing.T) {
	dir := t.TempDir()
	got := JoinOutDir(dir, "src/hello.c")
	assert.Equal(t, dir+"/hello.c", got)
}

func TestParseDepFile(t *testing.T) {
	got := ParseDepFile("x.o: a.h \\\n  b.h\n")
	assert.Equal(t, []string{"a.h", "b.h"}, got)
}

func TestParseDepFileNoColon(t *testing.T) {
	assert.Nil(t, ParseDepFile("not a dep file"))
}

func TestModTimeMissing(t *testing.T) {
	assert.Equal(t, int64(0), ModTime("/does/not/exist/at/all"))
}

func TestModTimeExists(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "shmake-modtime")
	assert.NoError(t, err)
	f.Close()
	assert.Greater(t, ModTime(f.Name()), int64(-1))
}
