package logging

import "sync"

// LoggingInterface is implemented by any logger the bridge should write to.
// Library packages never log directly, they go through Log().
type LoggingInterface interface {
	Trace(args ...interface{})
	Tracef(format string, args ...interface{})
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
}

// NoLogging discards everything. It is active until SetLogging is called.
type NoLogging struct{}

func (l *NoLogging) Trace(args ...interface{})                 {}
func (l *NoLogging) Tracef(format string, args ...interface{}) {}
func (l *NoLogging) Debug(args ...interface{})                 {}
func (l *NoLogging) Debugf(format string, args ...interface{}) {}
func (l *NoLogging) Info(args ...interface{})                  {}
func (l *NoLogging) Infof(format string, args ...interface{})  {}
func (l *NoLogging) Warn(args ...interface{})                  {}
func (l *NoLogging) Warnf(format string, args ...interface{})  {}
func (l *NoLogging) Error(args ...interface{})                 {}
func (l *NoLogging) Errorf(format string, args ...interface{}) {}

var (
	current LoggingInterface = &NoLogging{}
	mux     sync.RWMutex
)

// SetLogging replaces the active logger, nil is ignored
func SetLogging(logger LoggingInterface) {
	if logger == nil {
		return
	}
	mux.Lock()
	defer mux.Unlock()

	current = logger
}

// Log returns the active logger
func Log() LoggingInterface {
	mux.RLock()
	defer mux.RUnlock()

	return current
}
