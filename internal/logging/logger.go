// Package logging configures the process-wide logger.
package logging

import (
	"os"
	"sync"

	log "github.com/sirupsen/logrus"
)

var (
	initOnce sync.Once
	logger   *log.Logger
)

// NewLogger returns the shared logger. The level is taken from LOG_LEVEL on
// first use; output is plain text on stdout, matching the tool's interactive
// progress lines.
func NewLogger() *log.Logger {
	initOnce.Do(func() {
		logger = log.New()
		logger.SetOutput(os.Stdout)
		logger.SetFormatter(&log.TextFormatter{
			DisableTimestamp:       true,
			DisableLevelTruncation: true,
		})

		switch os.Getenv("LOG_LEVEL") {
		case "debug":
			logger.SetLevel(log.DebugLevel)
		case "warn":
			logger.SetLevel(log.WarnLevel)
		case "error":
			logger.SetLevel(log.ErrorLevel)
		default:
			logger.SetLevel(log.InfoLevel)
		}
	})

	return logger
}
