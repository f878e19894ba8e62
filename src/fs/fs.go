// Package fs provides the filesystem helpers shared by the compile and
// link planners and the clean command: output-directory path joining,
// extension rewriting, and parsing of compiler-emitted .d dependency
// files.
package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/thought-machine/shmake/src/cli/logging"
)

var log = logging.Log

// DirPermissions are the permission bits applied to directories created
// for an output directory (odir), matching the original implementation's
// mkdir(odir, 0777) modulo umask.
const DirPermissions = os.FileMode(0777)

// EnsureDir creates dir (and any missing parents) if it does not exist.
func EnsureDir(dir string) error {
	if dir == "" {
		return nil
	}
	return os.MkdirAll(dir, DirPermissions)
}

// PathExists returns true if the given path exists, as a file or directory.
func PathExists(filename string) bool {
	_, err := os.Lstat(filename)
	return err == nil
}

// FileExists returns true if the given path exists and is a file.
func FileExists(filename string) bool {
	info, err := os.Lstat(filename)
	return err == nil && !info.IsDir()
}

// IsDirectory checks if a given path is a directory.
func IsDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ModTime returns a file's modification time in seconds since the epoch,
// or 0 if it does not exist. Any other stat error is logged and also
// treated as 0, so the build conservatively proceeds (spec §3, §4.1).
func ModTime(name string) int64 {
	info, err := os.Stat(name)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Errorf("stat %s: %s", name, err)
		}
		return 0
	}
	return info.ModTime().Unix()
}

// ReplaceExtension swaps the extension of p for ext ("." included, or ""
// to strip it). file_replace_extension(file_replace_extension(p, ".x"), ".y")
// == file_replace_extension(p, ".y") holds since the old extension is
// always stripped before the new one is appended.
func ReplaceExtension(p, ext string) string {
	return strings.TrimSuffix(p, filepath.Ext(p)) + ext
}

// JoinOutDir computes the path of a compiled output for source file f
// under output directory odir, per the compile planner's rules (spec
// §4.4): an empty odir, an absolute f, or an f starting with "./" bypass
// the join entirely; an absolute odir keeps only f's basename; otherwise
// the result is odir joined with f's own relative path. Whenever the
// join happens, odir is created on demand.
func JoinOutDir(odir, f string) string {
	if odir == "" || filepath.IsAbs(f) || strings.HasPrefix(f, "./") {
		return f
	}
	if filepath.IsAbs(odir) {
		f = filepath.Base(f)
	}
	if err := EnsureDir(odir); err != nil {
		log.Errorf("mkdir %s: %s", odir, err)
	}
	return odir + "/" + f
}

// ParseDepFile parses the contents of a compiler-emitted .d file: prereqs
// follow the first ':', with backslash-newline line continuations folded
// to whitespace, then whitespace-split (spec §4.4, §8). The dummy target
// before the colon is discarded; the caller supplies a fallback ([]string{f})
// when the file doesn't exist or isn't parseable.
func ParseDepFile(contents string) []string {
	idx := strings.IndexByte(contents, ':')
	if idx < 0 {
		return nil
	}
	rest := strings.ReplaceAll(contents[idx+1:], "\\\n", "  ")
	return strings.Fields(rest)
}
