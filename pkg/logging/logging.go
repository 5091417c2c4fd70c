// Package logging configures rotating file logs mirrored to stdout and a
// process-wide debug gate driven by the configured log level.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

var debugEnabled atomic.Bool

// Setup writes logs to logs/<app>.log next to the executable and to stdout.
// Rotation bounds can be tuned via env.
func Setup(app, level string) {
	exe, _ := os.Executable()
	base := filepath.Dir(exe)
	dir := filepath.Join(base, "logs")
	_ = os.MkdirAll(dir, 0o755)
	file := filepath.Join(dir, app+".log")
	maxSize := getEnvInt("REMOTECTL_LOG_MAX_SIZE_MB", 20)
	maxBackups := getEnvInt("REMOTECTL_LOG_MAX_BACKUPS", 5)
	maxAge := getEnvInt("REMOTECTL_LOG_MAX_AGE_DAYS", 7)
	w := &lumberjack.Logger{Filename: file, MaxSize: maxSize, MaxBackups: maxBackups, MaxAge: maxAge, Compress: false}
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.SetOutput(io.MultiWriter(os.Stdout, w))
	SetLevel(level)
}

// SetLevel applies a log level at runtime. Only "debug" changes behavior;
// info/warn/error all log through the standard logger.
func SetLevel(level string) {
	debugEnabled.Store(strings.ToLower(level) == "debug")
}

// Debugf logs only when the level is debug.
func Debugf(format string, args ...interface{}) {
	if debugEnabled.Load() {
		log.Printf("[DEBUG] "+format, args...)
	}
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil && n > 0 {
			return n
		}
	}
	return def
}
