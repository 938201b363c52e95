package logging

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper/internal/config"
)

const (
	maxBackups = 5
	maxAgeDays = 28
)

// New builds the process logger. Development gets colored text at debug
// level, everything else gets JSON at info level. A rotating file sink is
// attached when cfg.File is set.
func New(cfg *config.Logging) (*logrus.Logger, error) {
	log := logrus.New()

	level := logrus.InfoLevel
	var formatter logrus.Formatter = &logrus.JSONFormatter{}
	if cfg.Development {
		level = logrus.DebugLevel
		formatter = &logrus.TextFormatter{ForceColors: true}
	}
	log.SetLevel(level)
	log.SetFormatter(formatter)

	if cfg.File == "" {
		return log, nil
	}

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Level:      level,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to open log file %s: %w", cfg.File, err)
	}
	log.AddHook(hook)

	return log, nil
}
