// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a logrus logger writing to stdout and, when file is set, to a
// rotated log file as well. Unknown levels fall back to info.
func New(level, file string) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	if file == "" {
		return logger, nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	rotating := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    100, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	logger.SetOutput(io.MultiWriter(os.Stdout, rotating))
	return logger, rotating, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
