package cli

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/flowlens/flowlens/config"
)

// newLogger builds the logrus logger from the logging config block. When a
// filename is configured the log file rotates by size and age; console
// output can be layered on top or used alone.
func newLogger(cfg *config.Config) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetLevel(level)

	var sinks []io.Writer
	if cfg.Logging.Filename != "" {
		sinks = append(sinks, &lumberjack.Logger{
			Filename:   cfg.Logging.Filename,
			MaxSize:    cfg.Logging.MaxSizeMB,
			MaxAge:     cfg.Logging.MaxAgeDays,
			MaxBackups: cfg.Logging.MaxBackups,
			Compress:   cfg.Logging.Compress,
		})
	}
	if cfg.Logging.LogToConsole || len(sinks) == 0 {
		sinks = append(sinks, os.Stderr)
	}
	log.SetOutput(io.MultiWriter(sinks...))
	return log, nil
}
