package styled

import (
	"sync/atomic"

	"github.com/dshills/styledtext/internal/logging"
)

var pkgLogger atomic.Pointer[logging.Logger]

// SetLogger sets the logger used for diagnostics such as invalid patterns.
// A nil logger restores the process default.
func SetLogger(l *logging.Logger) {
	pkgLogger.Store(l)
}

func logger() *logging.Logger {
	if l := pkgLogger.Load(); l != nil {
		return l
	}
	return logging.Default().WithComponent("styled")
}
