package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeSplitsTagAndArgs(t *testing.T) {
	l := Decode("C:hello:hello.c")
	assert.Equal(t, "C", l.Tag)
	assert.Equal(t, []string{"hello", "hello.c"}, l.Args)
}

func TestDecodeRestoresEmbeddedNewlines(t *testing.T) {
	l := Decode("target:name:line1\x01line2")
	assert.Equal(t, []string{"name", "line1\nline2"}, l.Args)
}

func TestDecodeNoArgs(t *testing.T) {
	l := Decode("all")
	assert.Equal(t, "all", l.Tag)
	assert.Empty(t, l.Args)
}
