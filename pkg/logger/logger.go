package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus.Logger with application defaults
type Logger struct {
	*logrus.Logger
}

// NewLogger creates a new logger with the given level and format ("json" or "text")
func NewLogger(level, format string) *Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	log.SetLevel(logLevel)

	if format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return &Logger{Logger: log}
}

// WithField returns an entry with a single field attached
func (l *Logger) WithField(key string, value interface{}) *logrus.Entry {
	return l.Logger.WithField(key, value)
}

// WithFields returns an entry with the given fields attached
func (l *Logger) WithFields(fields map[string]interface{}) *logrus.Entry {
	return l.Logger.WithFields(logrus.Fields(fields))
}

// WithError returns an entry with the error attached
func (l *Logger) WithError(err error) *logrus.Entry {
	return l.Logger.WithError(err)
}
