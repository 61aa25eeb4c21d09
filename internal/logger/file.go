package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileLogger logs events to timestamped per-run files under a log directory
// and maintains a latest.log symlink pointing to the most recent run.
// It is thread-safe and implements the Logger interface.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates a FileLogger writing to the given directory, which
// is created if missing. A run file named run-YYYYMMDD-HHMMSS.log is opened
// and latest.log is repointed at it.
func NewFileLogger(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", timestamp))

	runLog, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open run log: %w", err)
	}

	fl := &FileLogger{
		logDir:   logDir,
		runLog:   runLog,
		runFile:  runFile,
		logLevel: normalizeLogLevel(logLevel),
	}

	fl.updateLatestSymlink()

	return fl, nil
}

// updateLatestSymlink repoints latest.log at the current run file.
// Symlink failures are ignored; some filesystems do not support them.
func (fl *FileLogger) updateLatestSymlink() {
	latest := filepath.Join(fl.logDir, "latest.log")
	_ = os.Remove(latest)
	_ = os.Symlink(filepath.Base(fl.runFile), latest)
}

// Close closes the underlying run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog == nil {
		return nil
	}
	err := fl.runLog.Close()
	fl.runLog = nil
	return err
}

// RunFile returns the path of the current run log file.
func (fl *FileLogger) RunFile() string {
	return fl.runFile
}

func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

func (fl *FileLogger) write(level string, message string) {
	if !fl.shouldLog(level) {
		return
	}

	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog == nil {
		return
	}

	ts := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(fl.runLog, "[%s] [%s] %s\n", ts, level, message)
}

// Tracef logs a trace-level message.
func (fl *FileLogger) Tracef(format string, args ...any) {
	fl.write("trace", fmt.Sprintf(format, args...))
}

// Debugf logs a debug-level message.
func (fl *FileLogger) Debugf(format string, args ...any) {
	fl.write("debug", fmt.Sprintf(format, args...))
}

// Infof logs an info-level message.
func (fl *FileLogger) Infof(format string, args ...any) {
	fl.write("info", fmt.Sprintf(format, args...))
}

// Warnf logs a warning-level message.
func (fl *FileLogger) Warnf(format string, args ...any) {
	fl.write("warn", fmt.Sprintf(format, args...))
}

// Errorf logs an error-level message.
func (fl *FileLogger) Errorf(format string, args ...any) {
	fl.write("error", fmt.Sprintf(format, args...))
}
