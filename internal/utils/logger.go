package utils

import (
	"io"
	"os"
	"path/filepath"

	consts "KiskaLE/GestureDrop-Firewall/internal/const"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var entry = log.NewEntry(log.StandardLogger())

// InitLog sets the log level and, unless logPath is empty or "console",
// sends output to a rotated log file. Every entry of this run carries the
// same run id.
func InitLog(logLevel string, logPath string) error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}

	if logPath != "" && logPath != "console" {
		lumberjackLogger := &lumberjack.Logger{
			Filename:   filepath.ToSlash(logPath),
			MaxSize:    consts.MaxLogSize,
			MaxBackups: consts.MaxLogBackups,
			MaxAge:     consts.MaxLogAge,
			Compress:   true,
		}
		log.SetOutput(io.Writer(lumberjackLogger))
	} else {
		log.SetOutput(os.Stderr)
	}

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(level)
	entry = log.WithField("run", uuid.NewString())
	return nil
}

// Debugf logs a formatted message at debug level
func Debugf(format string, v ...any) {
	entry.Debugf(format, v...)
}

// Info logs a message at info level
func Info(v ...any) {
	entry.Info(v...)
}

// Infof logs a formatted message at info level
func Infof(format string, v ...any) {
	entry.Infof(format, v...)
}

// Warnf logs a formatted message at warning level
func Warnf(format string, v ...any) {
	entry.Warnf(format, v...)
}

// Error logs a message at error level
func Error(v ...any) {
	entry.Error(v...)
}

// Errorf logs a formatted message at error level
func Errorf(format string, v ...any) {
	entry.Errorf(format, v...)
}
