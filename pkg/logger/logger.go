package logger

import (
	"os"

	"go.uber.org/zap"
)

var sugar *zap.SugaredLogger

func init() {
	Init(os.Getenv("ENVIRONMENT"))
}

// Init rebuilds the logger for the given environment. Called once from main
// after configuration is loaded; the init fallback covers tests.
func Init(environment string) {
	var l *zap.Logger
	var err error

	if environment == "production" {
		l, err = zap.NewProduction(zap.AddCallerSkip(1))
	} else {
		l, err = zap.NewDevelopment(zap.AddCallerSkip(1))
	}
	if err != nil {
		l = zap.NewNop()
	}
	sugar = l.Sugar()
}

func Info(format string, v ...interface{}) {
	sugar.Infof(format, v...)
}

func Warn(format string, v ...interface{}) {
	sugar.Warnf(format, v...)
}

func Error(format string, v ...interface{}) {
	sugar.Errorf(format, v...)
}

func Debug(format string, v ...interface{}) {
	sugar.Debugf(format, v...)
}

// Sync flushes buffered log entries; call on shutdown.
func Sync() {
	_ = sugar.Sync()
}
