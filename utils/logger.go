package utils

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared application logger. Usable with default settings
// before InitLogger runs, so tests do not need any setup.
var Log = logrus.New()

// InitLogger configures the shared logger from LOG_LEVEL and LOG_FILE.
// Unknown or empty LOG_LEVEL falls back to info. When LOG_FILE is set the
// logger writes to both stdout and the file.
func InitLogger() {
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	writers := []io.Writer{os.Stdout}
	if logFile := os.Getenv("LOG_FILE"); logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			Log.Warnf("Cannot open log file %s: %v", logFile, err)
		} else {
			writers = append(writers, f)
		}
	}
	Log.SetOutput(io.MultiWriter(writers...))
}
