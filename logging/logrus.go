package logging

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// LogrusLogging forwards to a logrus logger, optionally with fixed fields
type LogrusLogging struct {
	entry *logrus.Entry
}

var _ LoggingInterface = (*LogrusLogging)(nil)

func NewLogrusLogging(logger *logrus.Logger) *LogrusLogging {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogrusLogging{entry: logrus.NewEntry(logger)}
}

// WithField returns a copy that adds key=value to every line
func (l *LogrusLogging) WithField(key string, value interface{}) *LogrusLogging {
	return &LogrusLogging{entry: l.entry.WithField(key, value)}
}

func (l *LogrusLogging) Trace(args ...interface{}) { l.entry.Trace(args...) }
func (l *LogrusLogging) Tracef(format string, args ...interface{}) {
	l.entry.Tracef(format, args...)
}
func (l *LogrusLogging) Debug(args ...interface{}) { l.entry.Debug(args...) }
func (l *LogrusLogging) Debugf(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}
func (l *LogrusLogging) Info(args ...interface{})                 { l.entry.Info(args...) }
func (l *LogrusLogging) Infof(format string, args ...interface{}) { l.entry.Infof(format, args...) }
func (l *LogrusLogging) Warn(args ...interface{})                 { l.entry.Warn(args...) }
func (l *LogrusLogging) Warnf(format string, args ...interface{}) { l.entry.Warnf(format, args...) }
func (l *LogrusLogging) Error(args ...interface{})                { l.entry.Error(args...) }
func (l *LogrusLogging) Errorf(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

// ParseLevel maps a level name to a logrus level, unknown names yield info
func ParseLevel(name string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	}
	return logrus.InfoLevel
}
