// Package logging contains the singleton logger that shmake uses globally.
// It deliberately has little else since it's a dependency everywhere.
package logging

import (
	"os"

	"gopkg.in/op/go-logging.v1"
)

// Log is the singleton logger instance.
// We never alter individual levels and don't log the module name, so there
// is no need to have more than one, and it helps avoid race conditions.
var Log = logging.MustGetLogger("shmake")

// Level is a re-export of the library type.
type Level = logging.Level

// Re-exports of various log levels.
const (
	CRITICAL = logging.CRITICAL
	ERROR    = logging.ERROR
	WARNING  = logging.WARNING
	NOTICE   = logging.NOTICE
	INFO     = logging.INFO
	DEBUG    = logging.DEBUG
)

var backend = logging.NewLogBackend(os.Stderr, "", 0)
var leveled = logging.AddModuleLevel(backend)

func init() {
	leveled.SetLevel(WARNING, "")
	logging.SetBackend(leveled)
	logging.SetFormatter(logging.MustStringFormatter(`%{message}`))
}

// Init sets the global log level from the driver's -v/-vv/-q flags.
func Init(verbosity int, quiet bool) {
	switch {
	case quiet:
		leveled.SetLevel(CRITICAL, "")
	case verbosity >= 2:
		leveled.SetLevel(DEBUG, "")
	case verbosity == 1:
		leveled.SetLevel(INFO, "")
	default:
		leveled.SetLevel(WARNING, "")
	}
}
