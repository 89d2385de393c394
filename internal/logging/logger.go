// Package logging builds the logrus logger shared by the batch runner.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"bgclear/internal/config"
)

// NewLogger returns a logger writing to stderr, configured from cfg.
func NewLogger(cfg *config.Config) *logrus.Logger {
	return New(cfg, os.Stderr)
}

func New(cfg *config.Config, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	if cfg.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	switch cfg.LogFormat {
	case config.LogJSON:
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	return logger
}
