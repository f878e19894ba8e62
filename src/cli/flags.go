// Package cli contains the driver's flag-parsing glue and its
// levenshtein-based "did you mean" suggestions (spec §6, §4.9, §4.12).
package cli

import (
	"fmt"
	"os"
	"path"
	"reflect"
	"strconv"
	"strings"

	"github.com/thought-machine/go-flags"
)

// ParseFlagsOrDie parses the driver's options struct out of args, printing
// usage and exiting 1 on any parse error — unknown-flag is a user-input
// error per spec §7.1. --help and --version print and exit 0. It returns the
// parser (for WriteHelp) and the remaining positional arguments, which
// the driver interprets as KEY=VALUE bindings and/or a target name.
func ParseFlagsOrDie(appname, version string, data interface{}, args []string) (*flags.Parser, []string) {
	parser := flags.NewNamedParser(path.Base(args[0]), flags.HelpFlag|flags.PassDoubleDash)
	parser.AddGroup(appname+" options", "", data)
	extraArgs, err := parser.ParseArgs(args[1:])
	if err != nil {
		if ferr, ok := err.(*flags.Error); ok && ferr.Type == flags.ErrHelp {
			writeUsage(data)
			fmt.Println(err)
			os.Exit(0)
		}
		if ferr, ok := err.(*flags.Error); ok && ferr.Type == flags.ErrUnknownFlag &&
			strings.Contains(ferr.Message, "`version'") {
			fmt.Printf("%s version %s\n", appname, version)
			os.Exit(0)
		}
		writeUsage(data)
		parser.WriteHelp(os.Stderr)
		fmt.Fprintf(os.Stderr, "\n%s\n", err)
		os.Exit(1)
	}
	return parser, extraArgs
}

func writeUsage(opts interface{}) {
	if s := getUsage(opts); s != "" {
		fmt.Println(s)
		fmt.Println()
	}
}

// getUsage extracts any usage specified on a flag struct, either by
// value in a field named Usage or in that field's `usage` struct tag.
func getUsage(opts interface{}) string {
	if field := reflect.ValueOf(opts).Elem().FieldByName("Usage"); field.IsValid() && field.String() != "" {
		return strings.TrimSpace(field.String())
	}
	if field, present := reflect.TypeOf(opts).Elem().FieldByName("Usage"); present {
		return field.Tag.Get("usage")
	}
	return ""
}

// Verbosity is a repeatable flag (-v, -vv) counting how many times it was
// given, matching the driver CLI's "-v (repeatable to -vv)" contract
// (spec §6).
type Verbosity int

// UnmarshalFlag implements flags.Unmarshaler so `-v` and `-vv` both work:
// go-flags calls this once per occurrence with an empty string for a
// boolean-shaped short flag, and with a numeric string if given as
// `--verbosity=2`.
func (v *Verbosity) UnmarshalFlag(in string) error {
	if in == "" {
		*v++
		return nil
	}
	n, err := strconv.Atoi(in)
	if err != nil {
		return &flags.Error{Type: flags.ErrMarshal, Message: err.Error()}
	}
	*v = Verbosity(n)
	return nil
}
