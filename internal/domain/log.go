package domain

import (
	"strings"
	"time"
)

const (
	LevelDebug    = "debug"
	LevelInfo     = "info"
	LevelWarning  = "warning"
	LevelError    = "error"
	LevelCritical = "critical"

	DefaultChannel = "app"
)

// Levels lists the accepted log levels in severity order.
var Levels = []string{LevelDebug, LevelInfo, LevelWarning, LevelError, LevelCritical}

// ErrorLevels are the levels counted towards the error rate.
var ErrorLevels = []string{LevelError, LevelCritical}

// NormalizeLevel lowercases a level value so that "ERROR" and "error"
// compare equal. It does not validate the result.
func NormalizeLevel(level string) string {
	return strings.ToLower(strings.TrimSpace(level))
}

func ValidLevel(level string) bool {
	normalized := NormalizeLevel(level)
	for _, l := range Levels {
		if l == normalized {
			return true
		}
	}
	return false
}

func IsErrorLevel(level string) bool {
	normalized := NormalizeLevel(level)
	for _, l := range ErrorLevels {
		if l == normalized {
			return true
		}
	}
	return false
}

// LogRecord is a persisted log row. Level, Message and CreatedAt are
// immutable after creation; records are removed only by archive or
// bulk delete.
type LogRecord struct {
	ID        int64          `db:"id"`
	Level     string         `db:"level"`
	Message   string         `db:"message"`
	Context   map[string]any `db:"context"`
	Channel   string         `db:"channel"`
	Source    string         `db:"source"`
	CreatedAt time.Time      `db:"created_at"`
	IPAddress string         `db:"ip_address"`
	UserAgent string         `db:"user_agent"`
	Extra     map[string]any `db:"extra"`
	UserID    *int64         `db:"user_id"`
}

// FileLogRecord is a log line synthesized from a flat file. It is
// ephemeral: never persisted, re-derived on every read. The ID is a
// content hash so the same line yields the same id within a parse pass.
type FileLogRecord struct {
	ID         string
	Timestamp  time.Time
	Level      string
	Channel    string
	Message    string
	Context    string
	File       string
	LineNumber int
	Raw        string
}
