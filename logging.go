package mpsc

import (
	"sync"

	"github.com/joeycumines/logiface"
)

// The package-level logger is disabled by default, and only cold lifecycle
// paths log. Failures are always returned to the caller, never logged in
// their stead.
var pkgLogger struct {
	mu     sync.RWMutex
	logger *logiface.Logger[logiface.Event]
}

// SetLogger configures an optional structured logger for lifecycle
// diagnostics: channel construction and endpoint departure, at debug
// level. Pass nil to disable, the default. Typed loggers are adapted via
// [logiface.Logger.Logger], e.g.
//
//	mpsc.SetLogger(logiface.New(stumpy.WithStumpy()).Logger())
func SetLogger(logger *logiface.Logger[logiface.Event]) {
	pkgLogger.mu.Lock()
	defer pkgLogger.mu.Unlock()
	pkgLogger.logger = logger
}

func getLogger() *logiface.Logger[logiface.Event] {
	pkgLogger.mu.RLock()
	defer pkgLogger.mu.RUnlock()
	return pkgLogger.logger
}

func logConstruction(flavor string, capacity int) {
	getLogger().Debug().
		Str(`event`, `construct`).
		Str(`flavor`, flavor).
		Int(`capacity`, capacity).
		Log(`mpsc channel constructed`)
}

func logDeparture(side string) {
	getLogger().Debug().
		Str(`event`, `leave`).
		Str(`side`, side).
		Log(`mpsc endpoint departed`)
}
