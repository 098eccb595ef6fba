// Package log provides the logging abstraction used across the merge
// core: DedupWriter reservation/dedup events, GraphCopier cycle
// closures, and PageTreeAssembler group/page stats.
package log

import (
	"log"
	"os"
)

// Logger defines an interface for logging messages. Anything satisfying
// it - the standard library's *log.Logger, a zap.SugaredLogger wrapped
// by log/zapadapter, or a test spy - can back Debug, Info, or Stats.
type Logger interface {
	Printf(format string, args ...interface{})
	Println(args ...interface{})
}

type logger struct {
	log Logger
}

// The three loggers consulted by this module's packages.
var (
	Debug = &logger{}
	Info  = &logger{}
	Stats = &logger{}
)

// SetDebugLogger sets the debug logger.
func SetDebugLogger(l Logger) {
	Debug.log = l
}

// SetInfoLogger sets the info logger.
func SetInfoLogger(l Logger) {
	Info.log = l
}

// SetStatsLogger sets the stats logger.
func SetStatsLogger(l Logger) {
	Stats.log = l
}

// SetDefaultDebugLogger sets the default debug logger.
func SetDefaultDebugLogger() {
	SetDebugLogger(log.New(os.Stderr, "DEBUG: ", log.Ldate|log.Ltime))
}

// SetDefaultInfoLogger sets the default info logger.
func SetDefaultInfoLogger() {
	SetInfoLogger(log.New(os.Stderr, "INFO: ", log.Ldate|log.Ltime))
}

// SetDefaultStatsLogger sets the default stats logger.
func SetDefaultStatsLogger() {
	SetStatsLogger(log.New(os.Stderr, "STATS: ", log.Ldate|log.Ltime))
}

// SetDefaultLoggers wires all three loggers to their stderr default.
func SetDefaultLoggers() {
	SetDefaultDebugLogger()
	SetDefaultInfoLogger()
	SetDefaultStatsLogger()
}

// DisableLoggers turns off all logging; this is the package's zero-value
// behavior, so this only matters after a prior Set* call.
func DisableLoggers() {
	SetDebugLogger(nil)
	SetInfoLogger(nil)
	SetStatsLogger(nil)
}

// Printf writes a formatted message, a no-op if no backend is set.
func (l *logger) Printf(format string, args ...interface{}) {
	if l.log == nil {
		return
	}
	l.log.Printf(format, args...)
}

// Println writes a line, a no-op if no backend is set.
func (l *logger) Println(args ...interface{}) {
	if l.log == nil {
		return
	}
	l.log.Println(args...)
}
