package cardrank

import (
	"os"

	"github.com/charmbracelet/log"
)

// tableLog reports the perfect-hash table build at debug level. The
// default log level is Info, so these messages are silent unless a caller
// lowers tableLog's level — the build runs unconditionally at package
// init and must never write to stderr on a normal import.
var tableLog = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
