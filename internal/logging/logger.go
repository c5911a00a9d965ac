// Package logging emits structured JSON log lines. Each entry carries a
// level, an RFC3339 timestamp, the message and any caller-supplied fields.
package logging

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

type Fields map[string]interface{}

const (
	levelDebug = iota
	levelInfo
	levelWarn
	levelError
)

var minLevel atomic.Int32

// SetLevel adjusts the minimum emitted level ("debug", "info", "warn",
// "error"). Unknown names leave the level at info.
func SetLevel(name string) {
	switch strings.ToLower(name) {
	case "debug":
		minLevel.Store(levelDebug)
	case "info":
		minLevel.Store(levelInfo)
	case "warn":
		minLevel.Store(levelWarn)
	case "error":
		minLevel.Store(levelError)
	default:
		minLevel.Store(levelInfo)
	}
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

func output(level int, name, msg string, fields Fields) {
	if level < int(minLevel.Load()) {
		return
	}
	if fields == nil {
		fields = Fields{}
	}
	fields["level"] = name
	fields["ts"] = time.Now().UTC().Format(time.RFC3339)
	fields["msg"] = msg
	b, err := json.Marshal(fields)
	if err != nil {
		// fallback to plain logging
		log.Printf("%s: %s (%v)\n", name, msg, fields)
		return
	}
	log.Println(string(b))
}

// Debug logs a debug message with optional fields.
func Debug(msg string, fields Fields) {
	output(levelDebug, "debug", msg, fields)
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	output(levelInfo, "info", msg, fields)
}

// Warn logs a warning with optional fields.
func Warn(msg string, fields Fields) {
	output(levelWarn, "warn", msg, fields)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	if fields == nil {
		fields = Fields{}
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	output(levelError, "error", msg, fields)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	if fields == nil {
		fields = Fields{}
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	output(levelError, "fatal", msg, fields)
	os.Exit(1)
}

func init() {
	log.SetFlags(0)
	minLevel.Store(levelInfo)
}
