// Package monitoring holds the package-level diagnostic loggers.
//
// Logf and Warnf default to the standard library logger. Commands call Init
// to route them through zap, optionally teeing into a rotating log file.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger or Init. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// Warnf reports conditions a user should look at, such as objects placed
// outside the room. Under Init it logs at warn level so it survives
// -log-level warn.
var Warnf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	Logf = orNoop(f)
}

// SetWarnLogger replaces the warning logger. Passing nil mutes warnings.
func SetWarnLogger(f func(format string, v ...interface{})) {
	Warnf = orNoop(f)
}

func orNoop(f func(format string, v ...interface{})) func(format string, v ...interface{}) {
	if f == nil {
		return func(string, ...interface{}) {}
	}
	return f
}
