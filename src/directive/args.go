// Argument grammars for the compile-and-link and rule directives (spec
// §6). Both grammars are flat: every flag but -g/-e takes exactly one
// following value, which for the list-shaped flags (-I, -D, -L, -l, -n,
// -x) is itself a single, possibly space-separated, string — the
// buildfile passes e.g. `-I "include vendor/include"` as one shell
// argument. Remaining, unrecognized arguments are positional.
package directive

import (
	"fmt"
	"strings"

	"github.com/google/shlex"
)

// splitFields splits a directive's space-joined flag value the way a
// shell would, so a quoted entry like `-I "vendor/has space/include"`
// survives as one item instead of being torn apart at the space. An
// unterminated quote falls back to a plain whitespace split rather than
// failing the whole directive.
func splitFields(v string) []string {
	fields, err := shlex.Split(v)
	if err != nil {
		return strings.Fields(v)
	}
	return fields
}

// CompileArgs is the decoded form of a C/C99/C++/C++11 directive's
// arguments.
type CompileArgs struct {
	// Cflags carries no -flag of its own; it's populated by the driver
	// for the C99/C++11 std-version prefix before straightBuild runs.
	Cflags      string
	IncludeDirs []string
	Defines     []string
	LibDirs     []string
	Libs        []string
	Needs       []string
	Debug       bool
	Exports     bool
	Opt         string
	Excludes    []string
	RuleExt     string
	HasRule     bool
	OutDir      string
	Name        string
	Files       []string
}

// ParseCompileArgs decodes a compile directive's argument list.
func ParseCompileArgs(args []string) (CompileArgs, error) {
	var c CompileArgs
	var positional []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		value := func() (string, error) {
			i++
			if i >= len(args) {
				return "", fmt.Errorf("%s requires a value", a)
			}
			return args[i], nil
		}
		switch a {
		case "-I":
			v, err := value()
			if err != nil {
				return c, err
			}
			c.IncludeDirs = append(c.IncludeDirs, splitFields(v)...)
		case "-D":
			v, err := value()
			if err != nil {
				return c, err
			}
			c.Defines = append(c.Defines, splitFields(v)...)
		case "-L":
			v, err := value()
			if err != nil {
				return c, err
			}
			c.LibDirs = append(c.LibDirs, splitFields(v)...)
		case "-l":
			v, err := value()
			if err != nil {
				return c, err
			}
			c.Libs = append(c.Libs, splitFields(v)...)
		case "-n":
			v, err := value()
			if err != nil {
				return c, err
			}
			c.Needs = append(c.Needs, splitFields(v)...)
		case "-x":
			v, err := value()
			if err != nil {
				return c, err
			}
			c.Excludes = append(c.Excludes, splitFields(v)...)
		case "-g":
			c.Debug = true
		case "-e":
			c.Exports = true
		case "-O":
			v, err := value()
			if err != nil {
				return c, err
			}
			c.Opt = v
		case "-R":
			v, err := value()
			if err != nil {
				return c, err
			}
			c.HasRule = true
			c.RuleExt = v
		case "-d":
			v, err := value()
			if err != nil {
				return c, err
			}
			c.OutDir = v
		default:
			positional = append(positional, a)
		}
	}
	if len(positional) == 0 {
		return c, fmt.Errorf("compile directive requires at least a target name")
	}
	c.Name = positional[0]
	c.Files = positional[1:]
	return c, nil
}

// RuleArgs is the decoded form of a `rule` directive's arguments.
type RuleArgs struct {
	OutDir  string
	Name    string
	OutExt  string
	Command string
	Files   []string
}

// ParseRuleArgs decodes a rule directive's argument list: an optional
// -d outdir flag followed by four required positionals (name, output
// extension, command, and one-or-more files).
func ParseRuleArgs(args []string) (RuleArgs, error) {
	var r RuleArgs
	var positional []string
	for i := 0; i < len(args); i++ {
		if args[i] == "-d" {
			i++
			if i >= len(args) {
				return r, fmt.Errorf("-d requires a value")
			}
			r.OutDir = args[i]
			continue
		}
		positional = append(positional, args[i])
	}
	if len(positional) < 4 {
		return r, fmt.Errorf("rule directive requires name, out-ext, command and at least one file")
	}
	r.Name = positional[0]
	r.OutExt = positional[1]
	r.Command = positional[2]
	r.Files = positional[3:]
	return r, nil
}
