// Package logging configures the application logger.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

// Init sets up the shared logger. Level comes from SIM_LOG_LEVEL; debug mode
// switches to a text formatter for readability.
func Init(debug bool) {
	Log = logrus.New()
	Log.SetOutput(os.Stdout)

	if debug {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		Log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	}

	level := os.Getenv("SIM_LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	if debug && parsed < logrus.DebugLevel {
		parsed = logrus.DebugLevel
	}
	Log.SetLevel(parsed)
}

// WithFields returns an entry with structured fields attached
func WithFields(fields logrus.Fields) *logrus.Entry {
	if Log == nil {
		Init(false)
	}
	return Log.WithFields(fields)
}
