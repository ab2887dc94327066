package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

// Setup sends log output to stdout and a daily file under dir.
// Without Setup the fiber default logger (stderr) is used.
func Setup(dir string) (io.Closer, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("could not create log directory: %w", err)
	}

	fileName := filepath.Join(dir, fmt.Sprintf("app_%s.log", time.Now().Format("02-01-2006")))
	logFile, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}
	log.SetOutput(io.MultiWriter(os.Stdout, logFile))
	log.SetLevel(log.LevelInfo)
	log.Info("🚀 Logger initialized successfully!")
	return logFile, nil
}

// SetLevel changes the minimum level written. level is one of debug, info,
// warn or error.
func SetLevel(level string) error {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		log.SetLevel(log.LevelDebug)
	case "", "info":
		log.SetLevel(log.LevelInfo)
	case "warn", "warning":
		log.SetLevel(log.LevelWarn)
	case "error":
		log.SetLevel(log.LevelError)
	default:
		return fmt.Errorf("unknown log level %q", level)
	}
	return nil
}

func Success(message string) {
	log.Info("✅ " + message)
}

func Error(message string, err error) {
	if err != nil {
		log.Error("❌ " + message + ": " + err.Error())
	} else {
		log.Error("❌ " + message)
	}
}

func Warning(message string) {
	log.Warn("⚠️ " + message)
}

func Debug(message string) {
	log.Debug("🐛 " + message)
}

func Info(message string) {
	log.Info("ℹ️ " + message)
}

// Infow logs a message with key/value pairs, e.g. Infow("tx committed", "name", n, "duration", d).
func Infow(message string, keysAndValues ...interface{}) {
	log.Infow("ℹ️ "+message, keysAndValues...)
}

func Warnw(message string, keysAndValues ...interface{}) {
	log.Warnw("⚠️ "+message, keysAndValues...)
}

func Errorw(message string, keysAndValues ...interface{}) {
	log.Errorw("❌ "+message, keysAndValues...)
}
