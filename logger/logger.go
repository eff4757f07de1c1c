package logger

import (
	"io"
	"os"

	"go-ledger-api/config"

	"github.com/sirupsen/logrus"
)

// Log is the application-wide logger instance. Call Init before use.
var Log = logrus.New()

// Init configures the shared logger from the loaded configuration:
// structured text output to stdout, plus a log file when one is configured.
// An unopenable log file is not fatal; output falls back to stdout only.
func Init() {
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	lvl, err := logrus.ParseLevel(config.AppConfig.Logging.Level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	out := io.Writer(os.Stdout)
	if path := config.AppConfig.Logging.File; path != "" {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			Log.WithError(err).Warn("Could not open log file, logging to stdout only")
		} else {
			out = io.MultiWriter(os.Stdout, file)
		}
	}
	Log.SetOutput(out)
}
