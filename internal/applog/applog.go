// Package applog provides a rotating-file operational logger that tags
// each line with a per-run id. No CLI subcommand writes to it; the
// CLI's dumps and warnings are plain fmt output.
package applog

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level is a logging verbosity threshold.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel parses a level name case-insensitively, defaulting to
// InfoLevel for an unrecognized value.
func ParseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Logger wraps a rotating lumberjack sink with a per-run correlation id
// so a long --find-duplicates-* run over a large tree leaves an audit
// trail.
type Logger struct {
	runID string
	level Level
	out   *log.Logger
	sink  io.WriteCloser
}

// New opens (or creates) the rotating log file at path. maxSizeMB,
// maxBackups and maxAgeDays follow lumberjack's own semantics: a zero
// maxSizeMB uses lumberjack's 100 MB default, and a zero maxBackups or
// maxAgeDays keeps old log files without a count or age limit.
func New(path string, level Level, maxSizeMB, maxBackups, maxAgeDays int) *Logger {
	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
	return &Logger{
		runID: uuid.NewString(),
		level: level,
		out:   log.New(sink, "", log.LstdFlags|log.Lmicroseconds),
		sink:  sink,
	}
}

func (l *Logger) RunID() string { return l.runID }

func (l *Logger) log(level Level, format string, args ...interface{}) {
	if level < l.level {
		return
	}
	l.out.Printf("[%s] run=%s %s", level, l.runID, fmt.Sprintf(format, args...))
}

func (l *Logger) Debugf(format string, args ...interface{}) { l.log(DebugLevel, format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.log(InfoLevel, format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.log(WarnLevel, format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.log(ErrorLevel, format, args...) }

func (l *Logger) Close() error { return l.sink.Close() }
