package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

func init() {
	logPath := filepath.Join(os.TempDir(), "compas.log")
	configDir, err := os.UserConfigDir()
	if err == nil {
		compasDir := filepath.Join(configDir, "compas")
		if err := os.MkdirAll(compasDir, 0755); err == nil {
			logPath = filepath.Join(compasDir, "compas.log")
		}
	}

	Log = logrus.New()
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	Log.SetLevel(logrus.InfoLevel)

	// The terminal belongs to the UI, so logs only ever go to the file.
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		Log.SetOutput(io.Discard)
		return
	}
	Log.SetOutput(file)

	if lvl, err := logrus.ParseLevel(os.Getenv("COMPAS_LOG_LEVEL")); err == nil {
		Log.SetLevel(lvl)
	}

	Log.Infof("Logger initialized, writing to: %s", logPath)
}
