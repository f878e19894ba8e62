package directive

import (
	"os"
	"path/filepath"
)

// HelperPath is the well-known temp path the shell helper script lives
// at (spec §4.7 step 1): a fixed name so repeated builds reuse the same
// materialized script instead of writing a fresh one every time.
func HelperPath() string {
	return filepath.Join(os.TempDir(), "shmake-helper.sh")
}

// helperScript defines the shell functions a buildfile calls to emit
// directives: C, C99, Cpp, Cpp11, T, S, R, Q and all, each of which
// encodes its arguments (embedded newlines become byte 0x01) and
// appends one "TAG:arg1:arg2:..." line to the file named by the
// buildfile's own first argument (spec §4.7, §6). The buildfile is run
// by an external POSIX shell, which is out of scope for this package
// (spec §1) — this is just the string it sources.
const helperScript = `#!/bin/sh
# Generated by shmake. Sourced by buildfiles to emit build directives.
_SHMAKE_OUT="$1"

_shmake_emit() {
    _tag=$1; shift
    _line="$_tag"
    for _arg in "$@"; do
        _line="$_line:$(printf '%s' "$_arg" | tr '\n' '\001')"
    done
    printf '%s\n' "$_line" >> "$_SHMAKE_OUT"
}

C()     { _shmake_emit C "$@"; }
C99()   { _shmake_emit C99 "$@"; }
Cpp()   { _shmake_emit "C++" "$@"; }
Cpp11() { _shmake_emit "C++11" "$@"; }
T()     { _shmake_emit target "$@"; }
S()     { _shmake_emit set "$@"; }
R()     { _shmake_emit rule "$@"; }
Q()     { _shmake_emit quit "$@"; }
all()   { _shmake_emit all "$@"; }
`

// MaterializeHelper writes the shell helper script to HelperPath if it
// isn't already there.
func MaterializeHelper() (string, error) {
	path := HelperPath()
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !os.IsNotExist(err) {
		return "", err
	}
	if err := os.WriteFile(path, []byte(helperScript), 0755); err != nil {
		return "", err
	}
	return path, nil
}
