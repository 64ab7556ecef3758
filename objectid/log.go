package objectid

import "go.uber.org/zap"

var logger = zap.NewNop()

// SetLogger sets the logger used for registry tracing. Registrations,
// deregistrations and factory calls are logged at debug level; factory results
// that can't be registered are logged as errors. A nil logger disables logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		logger = zap.NewNop()
		return
	}
	logger = l.Named("objectid")
}

// Logger returns the logger set with SetLogger.
func Logger() *zap.Logger {
	return logger
}
