// Package monitoring carries the pipeline's diagnostic logging hook.
package monitoring

import "log"

// Logf is the package-level diagnostic logger used by the analysis
// pipeline for non-fatal reporting (dropped rows, skipped outputs). It
// defaults to log.Printf; tests and embedding callers may redirect it
// through SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. A nil argument installs a no-op
// logger, muting diagnostics entirely.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
