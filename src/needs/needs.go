// Package needs implements resolution of symbolic "need" names to extra
// compile/link flags (spec §4.6, §6 ".need file format"). A need is
// looked up first as a local .need config file, then as an external
// pkg-config package.
package needs

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/gcfg.v1"

	"github.com/thought-machine/shmake/src/cli/logging"
	"github.com/thought-machine/shmake/src/fs"
	"github.com/thought-machine/shmake/src/tmpl"
)

var log = logging.Log

// needFile is the decoded shape of a .need file: a single implicit
// [need] section carrying the two keys the core cares about.
type needFile struct {
	Need struct {
		Cflags string
		Libs   string
	}
}

// Need is a resolved symbolic library reference.
type Need struct {
	Name   string
	Cflags string
	Lflags string
}

// Resolve finds and resolves a single need, trying in order: ./NAME.need,
// needPath/NAME.need (if needPath is non-empty), $HOME/.shmake/NAME.need,
// then pkg-config. The first candidate path that exists is used — if
// it exists but can't be read or parsed, that's a hard error rather
// than falling through to the next candidate, since a present-but-broken
// need file is almost always a mistake worth surfacing immediately
// (spec §4.17, clarified from original_source/shmake.c).
func Resolve(name, needPath string) (Need, error) {
	for _, candidate := range candidates(name, needPath) {
		if !fs.FileExists(candidate) {
			continue
		}
		return resolveFile(name, candidate)
	}
	return resolvePkgConfig(name)
}

func candidates(name, needPath string) []string {
	paths := []string{name + ".need"}
	if needPath != "" {
		paths = append(paths, filepath.Join(needPath, name+".need"))
	}
	paths = append(paths, fs.ExpandHomePath(filepath.Join("~", ".shmake", name+".need")))
	return paths
}

func resolveFile(name, path string) (Need, error) {
	var cfg needFile
	contents, err := os.ReadFile(path)
	if err != nil {
		return Need{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := gcfg.ReadStringInto(&cfg, "[need]\n"+string(contents)); err != nil {
		return Need{}, fmt.Errorf("reading %s: %w", path, err)
	}
	here, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return Need{}, fmt.Errorf("resolving %s: %w", path, err)
	}
	vars := map[string]string{
		"HERE":   here,
		"cflags": cfg.Need.Cflags,
		"libs":   cfg.Need.Libs,
	}
	return Need{
		Name:   name,
		Cflags: tmpl.Expand(cfg.Need.Cflags, tmpl.DollarBrace, vars),
		Lflags: tmpl.Expand(cfg.Need.Libs, tmpl.DollarBrace, vars),
	}, nil
}

func resolvePkgConfig(name string) (Need, error) {
	cflags, _ := exec.Command("pkg-config", "--cflags", name).Output()
	libs, _ := exec.Command("pkg-config", "--libs", name).Output()
	c, l := strings.TrimSpace(string(cflags)), strings.TrimSpace(string(libs))
	if c == "" && l == "" {
		return Need{}, fmt.Errorf("need %q could not be resolved: no .need file and pkg-config knows nothing about it", name)
	}
	return Need{Name: name, Cflags: c, Lflags: l}, nil
}

// Update resolves every name in names and appends its flags, space
// separated, onto *cflags and *lflags — the driver's "need-update"
// step folded into straight_build (spec §4.6). Every name is attempted
// even after a failure, and all failures are reported together, so a
// buildfile with several bad needs doesn't make the user fix them one
// at a time.
func Update(names []string, needPath string, cflags, lflags *string) error {
	var result *multierror.Error
	for _, name := range names {
		n, err := Resolve(name, needPath)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		*cflags = appendFlag(*cflags, n.Cflags)
		*lflags = appendFlag(*lflags, n.Lflags)
	}
	return result.ErrorOrNil()
}

func appendFlag(s, extra string) string {
	if extra == "" {
		return s
	}
	if s == "" {
		return extra
	}
	return s + " " + extra
}
