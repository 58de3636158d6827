package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minefield/internal/config"
)

const (
	maxFileSizeMB  = 50
	maxFileBackups = 3
	maxFileAgeDays = 28
)

func formatter(format string, development bool) logrus.Formatter {
	if format == "json" {
		return &logrus.JSONFormatter{}
	}
	return &logrus.TextFormatter{ForceColors: development, FullTimestamp: true}
}

// New builds the application logger. Development mode forces debug level.
// When cfg.File is set every entry is also written as JSON to a rotating file.
func New(cfg config.LogConfig, development bool, out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if development {
		level = logrus.DebugLevel
	}

	if out == nil {
		out = os.Stderr
	}

	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(level)
	log.SetFormatter(formatter(cfg.Format, development))

	if cfg.File != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   cfg.File,
			MaxSize:    maxFileSizeMB,
			MaxBackups: maxFileBackups,
			MaxAge:     maxFileAgeDays,
			Level:      level,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return nil, fmt.Errorf("unable to open log file %s: %w", cfg.File, err)
		}
		log.AddHook(hook)
	}

	return log, nil
}

// Adopt points a package-level logger at the output, level and hooks of
// base.
func Adopt(pkg *logrus.Logger, base *logrus.Logger) {
	pkg.SetOutput(base.Out)
	pkg.SetLevel(base.GetLevel())
	pkg.SetFormatter(base.Formatter)
	pkg.ReplaceHooks(base.Hooks)
}
