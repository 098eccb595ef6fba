// Package zapadapter adapts a *zap.SugaredLogger to the log.Logger
// interface, so a caller who already runs zap elsewhere in their process
// can back this module's Debug/Info/Stats loggers with it instead of the
// stdlib-backed default.
package zapadapter

import "go.uber.org/zap"

// Adapter wraps a *zap.SugaredLogger as a log.Logger.
type Adapter struct {
	sugar *zap.SugaredLogger
}

// New returns an Adapter backed by sugar.
func New(sugar *zap.SugaredLogger) *Adapter {
	return &Adapter{sugar: sugar}
}

// Printf logs a formatted message at info level.
func (a *Adapter) Printf(format string, args ...interface{}) {
	a.sugar.Infof(format, args...)
}

// Println logs a line at info level.
func (a *Adapter) Println(args ...interface{}) {
	a.sugar.Info(args...)
}
