package graph

import (
	"os"

	"github.com/thought-machine/shmake/src/fs"
)

// File is a named filesystem object with a queryable modification time.
// It is created on demand the first time a prerequisite name is
// referenced that doesn't name a registered Target, and is shared by
// every Target that refers to the same name within a build.
type File struct {
	name string
}

// NewFile constructs a File for the given path. It does not touch the
// filesystem; Time is evaluated lazily whenever it's asked for.
func NewFile(name string) *File {
	return &File{name: name}
}

// Name returns the file's path.
func (f *File) Name() string { return f.name }

// Time returns the file's modification time in seconds since the epoch,
// or 0 if it doesn't exist or can't be stat'd.
func (f *File) Time() int64 { return fs.ModTime(f.name) }

// Remove unlinks name, announcing the removal first when verbose is set.
// Used by the clean command. A file that is already absent is not an
// error; any other failure is logged and returned to the caller.
func Remove(name string, verbose bool) error {
	if verbose {
		log.Noticef("rm %s", name)
	}
	return removeIfExists(name)
}

func removeIfExists(name string) error {
	if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
		log.Errorf("remove %s: %s", name, err)
		return err
	}
	return nil
}
