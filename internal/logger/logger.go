package logger

import (
	"go.uber.org/zap"
)

type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

var Discard Logger = nopLogger{}

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...interface{}) {}
func (nopLogger) Infof(format string, args ...interface{})  {}
func (nopLogger) Warnf(format string, args ...interface{})  {}
func (nopLogger) Errorf(format string, args ...interface{}) {}

// Zap adapts l. Its sugared form already has the printf style methods.
func Zap(l *zap.Logger) Logger {
	if l == nil {
		return Discard
	}
	return l.WithOptions(zap.AddCallerSkip(1)).Sugar()
}

var _ Logger = (*zap.SugaredLogger)(nil)
