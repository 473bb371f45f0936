//go:build linux || darwin

package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logMaxSizeMB  = 10
	logMaxBackups = 3
	logMaxAgeDays = 28
)

// newLogger returns a console logger on stderr, or a JSON logger on a rotated
// file when logFile is set. Only warnings and errors are logged unless verbose.
func newLogger(stderr io.Writer, verbose bool, logFile string) (zerolog.Logger, func()) {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	if logFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    logMaxSizeMB,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAgeDays,
		}
		logger := zerolog.New(rotator).Level(level).With().Timestamp().Logger()
		return logger, func() { _ = rotator.Close() }
	}

	console := zerolog.ConsoleWriter{Out: stderr, NoColor: true, TimeFormat: time.RFC3339}
	logger := zerolog.New(console).Level(level).With().Timestamp().Logger()
	return logger, func() {}
}
