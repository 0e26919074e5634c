package utils

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

const serviceName = "auction-engine"

var (
	logger = log.New()
	base   = logger.WithField("service", serviceName)
)

// init configures JSON output with ISO 8601 timestamps on stdout at info level
func init() {
	logger.SetFormatter(&log.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
	})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(log.InfoLevel)
}

// SetLevel changes the log level, unknown names fall back to info
func SetLevel(level string) {
	lvl, err := log.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
}

// SetOutput redirects log lines, mainly for tests
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

func Debug(message string, fields map[string]any) {
	base.WithFields(fields).Debug(message)
}

func Info(message string, fields map[string]any) {
	base.WithFields(fields).Info(message)
}

func Warn(message string, fields map[string]any) {
	base.WithFields(fields).Warn(message)
}

func Error(message string, fields map[string]any) {
	base.WithFields(fields).Error(message)
}

// Fatal logs and exits the process
func Fatal(message string, fields map[string]any) {
	base.WithFields(fields).Fatal(message)
}
