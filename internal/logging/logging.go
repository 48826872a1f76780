package logging

import (
	"go.uber.org/zap"
)

var logger *zap.Logger = zap.NewNop()

// Init builds the process-wide logger. Development encoding outside release
// mode, production encoding otherwise.
func Init(ginMode string) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if ginMode == "release" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	logger = l
	return l, nil
}

// L returns the process-wide logger.
func L() *zap.Logger {
	return logger
}

// SetLogger replaces the process-wide logger (used for testing).
func SetLogger(l *zap.Logger) {
	logger = l
}
