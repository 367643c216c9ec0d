package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

func init() {
	// Usable before BoostrapLogger runs (tests, CLI flag parsing).
	Log = logrus.New()
}

// BoostrapLogger replaces Log with the process logger. Lambda output goes to
// CloudWatch, so json should be true there; locally the text formatter reads better.
func BoostrapLogger(level string, json bool) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}

	var formatter logrus.Formatter = &logrus.TextFormatter{
		DisableColors:   false,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
	}
	if json {
		formatter = &logrus.JSONFormatter{}
	}

	Log = &logrus.Logger{
		Out:          os.Stdout,
		Hooks:        make(logrus.LevelHooks),
		Formatter:    formatter,
		ReportCaller: true,
		Level:        lvl,
		ExitFunc:     os.Exit,
	}

	if err != nil && level != "" {
		Log.Warnf("unknown log level '%s', falling back to info", level)
	}
}
