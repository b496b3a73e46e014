// Package dwdebug holds the evaluator debugging switches read from the
// DWGREP_DEBUG environment variable.
package dwdebug

import (
	"sync"

	"dwgrep.org/go/internal/envflag"
)

// Flags holds the set of global DWGREP_DEBUG flags. It is initialized by Init.
var Flags Config

// Config holds the set of known DWGREP_DEBUG flags.
type Config struct {
	// Strict enables extra consistency checks in the overload tables and
	// the parent cache. Violations panic instead of being reported.
	Strict bool

	// LogEval sets the log level for the evaluator.
	// There are currently only two levels:
	//
	//	0: no logging
	//	1: log overload resolution and cache population
	LogEval int

	// OverloadOrder lets two overloads of one operator share a selector,
	// the earlier registration taking precedence. Without it such a table
	// fails to instantiate.
	OverloadOrder bool
}

// Init initializes Flags. It is not an init function so that the failure
// mode is an error rather than a panic, and so that programs which never
// evaluate anything do not pay for it.
func Init() error {
	return initOnce()
}

var initOnce = sync.OnceValue(func() error {
	return envflag.Init(&Flags, "DWGREP_DEBUG")
})
