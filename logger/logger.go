// Package logger wraps logrus with component-scoped entries.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Fields type alias for logrus.Fields
type Fields = logrus.Fields

// Log wraps logrus.Logger
type Log struct {
	*logrus.Logger
}

// Options controls where and how much is logged.
type Options struct {
	Level string
	// File, when set, sends output to a size-rotated file instead of Output.
	File       string
	MaxSizeMB  int
	MaxBackups int
	Output     io.Writer
}

// New builds a JSON logger from opts.
func New(opts Options) *Log {
	logger := logrus.New()
	logger.SetLevel(parseLevel(opts.Level))
	logger.SetReportCaller(true)
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			return "", fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
		},
	})

	switch {
	case opts.File != "":
		logger.SetOutput(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 10),
			MaxBackups: orDefault(opts.MaxBackups, 3),
			Compress:   false,
		})
	case opts.Output != nil:
		logger.SetOutput(opts.Output)
	default:
		logger.SetOutput(os.Stderr)
	}

	return &Log{Logger: logger}
}

// Discard returns a logger that drops everything; handy as a default.
func Discard() *Log {
	return New(Options{Output: io.Discard, Level: "panic"})
}

// WithComponent returns an entry tagged with the component name.
func (l *Log) WithComponent(component string) *logrus.Entry {
	return l.Logger.WithField("component", component)
}

func parseLevel(raw string) logrus.Level {
	v := strings.TrimSpace(strings.ToLower(raw))
	if v == "" {
		return logrus.InfoLevel
	}
	lvl, err := logrus.ParseLevel(v)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

func orDefault(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
