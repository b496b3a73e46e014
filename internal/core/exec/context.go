// Copyright 2026 The Dwgrep Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package exec

import (
	"fmt"
	"log/slog"

	"dwgrep.org/go/dwgrep/errors"
	"dwgrep.org/go/internal/dwdebug"
)

// A Context carries the state shared by the ops of one query evaluation:
// the diagnostics reported so far and the debug settings.
type Context struct {
	// Logger receives diagnostics and evaluation traces.
	Logger *slog.Logger

	// Strict turns failed consistency checks into panics.
	Strict bool

	// LogEval enables evaluation tracing through Logf.
	LogEval int

	// OverloadOrder allows overload tables with duplicate selectors.
	OverloadOrder bool

	errs  errors.Error
	logID int
}

// NewContext returns a context that logs to logger, or to slog.Default if
// logger is nil. The debug settings are taken from DWGREP_DEBUG.
func NewContext(logger *slog.Logger) *Context {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Context{Logger: logger}
	if err := dwdebug.Init(); err != nil {
		c.AddErr(errors.Promote(err, "invalid DWGREP_DEBUG"))
	}
	c.Strict = dwdebug.Flags.Strict
	c.LogEval = dwdebug.Flags.LogEval
	c.OverloadOrder = dwdebug.Flags.OverloadOrder
	return c
}

// AddErr records a diagnostic. Evaluation continues.
func (c *Context) AddErr(err errors.Error) {
	if err == nil {
		return
	}
	c.errs = errors.Append(c.errs, err)
	c.Logger.Warn(err.Error(), "op", err.Op())
}

// AddErrf records a diagnostic for the operator op.
func (c *Context) AddErrf(op, format string, args ...any) {
	c.AddErr(errors.Newf(op, format, args...))
}

// Err returns the diagnostics reported so far, sorted and without
// duplicates, or nil if there were none.
func (c *Context) Err() errors.Error {
	return errors.Sanitize(c.errs)
}

// Errs returns the individual diagnostics in the order they were reported.
func (c *Context) Errs() []errors.Error {
	return errors.Errors(c.errs)
}

// Assertf reports a broken consistency check as a diagnostic, or panics in
// strict mode.
func (c *Context) Assertf(b bool, format string, args ...any) {
	if b {
		return
	}
	if c.Strict {
		panic(fmt.Sprintf("assertion failed: "+format, args...))
	}
	c.AddErrf("", format, args...)
}

// Logf traces evaluation when LogEval is set.
func (c *Context) Logf(format string, args ...any) {
	if c.LogEval == 0 {
		return
	}
	c.logID++
	c.Logger.Info(fmt.Sprintf(format, args...), "seq", c.logID)
}
