package directive

import (
	"strconv"
	"strings"

	"github.com/thought-machine/shmake/src/cli"
)

// ValidSetKeys are the only keys the `set` directive recognizes (spec
// §6 "set keys"). An unrecognized key is a user-input error (spec
// §7.1), with a suggestion computed against this list.
var ValidSetKeys = []string{
	"includes", "defines", "lib-dirs", "libs", "needs",
	"cflags", "lflags", "opt", "out-dir", "debug", "exports",
	"need-path", "quiet",
}

// Defaults accumulates the state the `set` directive edits: the
// list-valued keys append, the scalars assign (spec §6).
type Defaults struct {
	Includes []string
	Defines  []string
	LibDirs  []string
	Libs     []string
	Needs    []string

	Cflags   string
	Lflags   string
	Opt      string
	OutDir   string
	NeedPath string
	Debug    bool
	Exports  bool
	Quiet    bool
}

// Apply handles one `set KEY VALUE...` directive.
func (d *Defaults) Apply(args []string) error {
	if len(args) == 0 {
		return errUnknownSetKey("", "")
	}
	key, values := args[0], args[1:]
	value := strings.Join(values, " ")
	switch key {
	case "includes":
		d.Includes = append(d.Includes, values...)
	case "defines":
		d.Defines = append(d.Defines, values...)
	case "lib-dirs":
		d.LibDirs = append(d.LibDirs, values...)
	case "libs":
		d.Libs = append(d.Libs, values...)
	case "needs":
		d.Needs = append(d.Needs, values...)
	case "cflags":
		d.Cflags = value
	case "lflags":
		d.Lflags = value
	case "opt":
		d.Opt = value
	case "out-dir":
		d.OutDir = value
	case "need-path":
		d.NeedPath = value
	case "debug":
		d.Debug = boolValue(value)
	case "exports":
		d.Exports = boolValue(value)
	case "quiet":
		d.Quiet = boolValue(value)
	default:
		return errUnknownSetKey(key, cli.PrettyPrintSuggestion(key, ValidSetKeys, 3))
	}
	return nil
}

func boolValue(s string) bool {
	if s == "" {
		return true
	}
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

type unknownSetKeyError struct {
	key        string
	suggestion string
}

func (e *unknownSetKeyError) Error() string {
	if e.key == "" {
		return "set directive requires a key"
	}
	return "unknown set key " + e.key + e.suggestion
}

func errUnknownSetKey(key, suggestion string) error {
	return &unknownSetKeyError{key: key, suggestion: suggestion}
}
