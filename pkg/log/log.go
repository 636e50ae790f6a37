// Package log wires up the logrus logger cntr uses everywhere, the same way
// lazydocker's pkg/log does: JSON-formatted, file-backed in debug mode,
// discarded in production unless LOG_LEVEL says otherwise.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/jesseduffield/cntr/pkg/config"
)

// NewLogger returns a logger entry pre-tagged with build metadata, mirroring
// app.NewLogger(config, rollrusHook) from the teacher minus the rollrus hook
// (cntr is a one-shot CLI, not a long-running service worth remote error
// reporting).
func NewLogger(cfg *config.AppConfig) *logrus.Entry {
	var base *logrus.Logger
	if cfg.Debug || os.Getenv("DEBUG") == "TRUE" {
		base = newDevelopmentLogger(cfg)
	} else {
		base = newProductionLogger()
	}

	base.Formatter = &logrus.JSONFormatter{}

	return base.WithFields(logrus.Fields{
		"debug":   cfg.Debug,
		"version": cfg.Version,
		"commit":  cfg.Commit,
	})
}

func getLogLevel() logrus.Level {
	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return logrus.DebugLevel
	}
	return level
}

func newDevelopmentLogger(cfg *config.AppConfig) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(getLogLevel())
	file, err := os.OpenFile(filepath.Join(cfg.ConfigDir, "development.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintln(os.Stderr, "unable to log to file:", err)
		os.Exit(1)
	}
	l.SetOutput(file)
	return l
}

func newProductionLogger() *logrus.Logger {
	l := logrus.New()
	l.Out = io.Discard
	l.SetLevel(logrus.ErrorLevel)
	return l
}
