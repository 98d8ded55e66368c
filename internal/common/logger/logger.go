package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Level represents the logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelQuiet // No output
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// rotationSuffix is appended to rotated log files
const rotationSuffix = "20060102-150405"

// Logger handles application logging.
// Terminal output honours the level; the log file records INFO and above
// regardless of --quiet, and DEBUG only in verbose mode.
type Logger struct {
	level      Level
	output     io.Writer
	fileOutput *os.File
	filePath   string
	fileSize   int64
	maxSize    int64
	nowFunc    func() time.Time
	mu         sync.Mutex
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Default returns the default logger instance
func Default() *Logger {
	once.Do(func() {
		defaultLogger = New(os.Stderr, LevelInfo)
	})
	return defaultLogger
}

// New creates a logger writing terminal output to w
func New(w io.Writer, level Level) *Logger {
	return &Logger{
		level:   level,
		output:  w,
		nowFunc: time.Now,
	}
}

// SetLevel sets the logging level
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetVerbose enables debug output
func (l *Logger) SetVerbose(verbose bool) {
	if verbose {
		l.SetLevel(LevelDebug)
	}
}

// SetQuiet disables all output except errors
func (l *Logger) SetQuiet(quiet bool) {
	if quiet {
		l.SetLevel(LevelError)
	}
}

// EnableFileLogging appends log lines to path. When rotateNow is set an
// existing non-empty file is rotated first. A maxSize of zero disables
// size-based rotation.
func (l *Logger) EnableFileLogging(path string, maxSize int64, rotateNow bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	l.filePath = path
	l.maxSize = maxSize

	if rotateNow {
		if info, err := os.Stat(path); err == nil && info.Size() > 0 {
			if err := l.rotateLocked(); err != nil {
				return err
			}
		}
	}

	return l.openLocked()
}

// Close closes the log file if open
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fileOutput != nil {
		l.fileOutput.Close()
		l.fileOutput = nil
	}
}

// FilePath returns the active log file path, or "" if file logging is off
func (l *Logger) FilePath() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filePath
}

func (l *Logger) openLocked() error {
	f, err := os.OpenFile(l.filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to stat log file: %w", err)
	}
	l.fileOutput = f
	l.fileSize = info.Size()
	return nil
}

// rotateLocked renames the current log file with a timestamp suffix
func (l *Logger) rotateLocked() error {
	if l.fileOutput != nil {
		l.fileOutput.Close()
		l.fileOutput = nil
	}
	rotated := rotatedPath(l.filePath, l.nowFunc())
	if err := os.Rename(l.filePath, rotated); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}
	l.fileSize = 0
	return nil
}

// rotatedPath returns the archive name for path at t. A counter is added
// when an archive from the same second already exists.
func rotatedPath(path string, t time.Time) string {
	base := path + "." + t.Format(rotationSuffix)
	candidate := base
	for i := 1; ; i++ {
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate
		}
		candidate = fmt.Sprintf("%s.%d", base, i)
	}
}

// LogDir returns the log directory path
func LogDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	// Use XDG_STATE_HOME for logs (standard for runtime data)
	xdgState := os.Getenv("XDG_STATE_HOME")
	if xdgState == "" {
		xdgState = filepath.Join(home, ".local", "state")
	}

	return filepath.Join(xdgState, "wingetkit", "logs"), nil
}

// DefaultLogPath returns the default log file path
func DefaultLogPath() (string, error) {
	dir, err := LogDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "wingetkit.log"), nil
}

func (l *Logger) log(level Level, toTerminal bool, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)

	if toTerminal && level >= l.level && l.output != nil {
		fmt.Fprint(l.output, msg+"\n")
	}

	if l.fileOutput == nil {
		return
	}
	if level < LevelInfo && l.level > LevelDebug {
		return
	}

	timestamp := l.nowFunc().Format("2006-01-02 15:04:05")
	logLine := fmt.Sprintf("[%s] [%s] %s\n", timestamp, levelNames[level], msg)

	if l.maxSize > 0 && l.fileSize > 0 && l.fileSize+int64(len(logLine)) > l.maxSize {
		// on a failed rename keep appending to the same file
		_ = l.rotateLocked()
		if err := l.openLocked(); err != nil {
			return
		}
	}

	n, _ := l.fileOutput.WriteString(logLine)
	l.fileSize += int64(n)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, true, format, args...)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, true, format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, true, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, true, format, args...)
}

// Detail records an INFO line in the log file; it reaches the terminal
// only in verbose mode. Used for captured tool output.
func (l *Logger) Detail(format string, args ...interface{}) {
	l.mu.Lock()
	verbose := l.level <= LevelDebug
	l.mu.Unlock()
	l.log(LevelInfo, verbose, format, args...)
}

// Package-level convenience functions
func Debug(format string, args ...interface{})  { Default().Debug(format, args...) }
func Info(format string, args ...interface{})   { Default().Info(format, args...) }
func Warn(format string, args ...interface{})   { Default().Warn(format, args...) }
func Error(format string, args ...interface{})  { Default().Error(format, args...) }
func Detail(format string, args ...interface{}) { Default().Detail(format, args...) }
func SetVerbose(v bool)                         { Default().SetVerbose(v) }
func SetQuiet(q bool)                           { Default().SetQuiet(q) }
