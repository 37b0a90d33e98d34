package flist

import (
	"go.uber.org/zap"

	"github.com/kezhuw/flist/internal/logger"
)

type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// DiscardLogger is a nop Logger.
var DiscardLogger = logger.Discard

// ZapLogger adapts a zap logger. A nil l discards.
func ZapLogger(l *zap.Logger) Logger {
	return logger.Zap(l)
}

var _ Logger = (logger.Logger)(nil)
var _ logger.Logger = (Logger)(nil)
