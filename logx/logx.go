package logx

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
)

const (
	defaultLogFile    = "./logs/syncstate.log"
	defaultMaxSizeMB  = 100
	defaultMaxAgeDays = 7
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps debug/info/warn/error to a Level; anything else is info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// LogConfig configures the rotating file logger
type LogConfig struct {
	Filename   string
	MaxSizeMB  int
	MaxAgeDays int
	Level      string
}

var (
	mu     sync.RWMutex
	logger *log.Logger
	level  = ParseLevel(os.Getenv("LOG_LEVEL"))
)

// ConfigFromEnv reads LOGFILE, LOGFILE_MAX_SIZE_MB, LOGFILE_MAX_AGE_DAYS and LOG_LEVEL, falling back to defaults
func ConfigFromEnv() LogConfig {
	cfg := LogConfig{
		Filename:   defaultLogFile,
		MaxSizeMB:  envInt("LOGFILE_MAX_SIZE_MB", defaultMaxSizeMB),
		MaxAgeDays: envInt("LOGFILE_MAX_AGE_DAYS", defaultMaxAgeDays),
		Level:      os.Getenv("LOG_LEVEL"),
	}
	if logFile := os.Getenv("LOGFILE"); logFile != "" {
		cfg.Filename = "./logs/" + logFile
	}
	return cfg
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		fmt.Fprintf(os.Stderr, "invalid value for %s: %q, using %d\n", name, raw, fallback)
		return fallback
	}
	return v
}

// Init routes log output to a lumberjack rotating file
func Init(cfg LogConfig) {
	if cfg.Filename == "" {
		cfg.Filename = defaultLogFile
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = defaultMaxSizeMB
	}
	if cfg.MaxAgeDays <= 0 {
		cfg.MaxAgeDays = defaultMaxAgeDays
	}

	SetOutput(&lumberjack.Logger{
		Filename: cfg.Filename,
		MaxSize:  cfg.MaxSizeMB,  // megabytes
		MaxAge:   cfg.MaxAgeDays, // days
	})
	SetLevel(ParseLevel(cfg.Level))
}

// SetOutput replaces the log destination
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(w, "", log.Ldate|log.Ltime|log.Lmicroseconds)
}

func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

func output(l Level, color, tag, category string, content ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if l < level {
		return
	}
	out := logger
	if out == nil {
		// nothing configured yet, stderr keeps early messages visible
		out = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lmicroseconds)
	}
	message := fmt.Sprint(content...)
	coloredCategory := fmt.Sprintf("%s[%s][%s]%s", color, tag, category, ColorReset)
	out.Printf("%s: %s", coloredCategory, message)
}

func Info(category string, content ...interface{}) {
	output(LevelInfo, ColorGreen, "INFO", category, content...)
}

func Error(category string, content ...interface{}) {
	output(LevelError, ColorRed, "ERROR", category, content...)
}

func Warn(category string, content ...interface{}) {
	output(LevelWarn, ColorYellow, "WARN", category, content...)
}

func Debug(category string, content ...interface{}) {
	output(LevelDebug, ColorBlue, "DEBUG", category, content...)
}

// Errorf logs an error message and returns a formatted error
func Errorf(format string, args ...interface{}) error {
	err := fmt.Errorf(format, args...)
	Error("ERROR", err.Error())
	return err
}
