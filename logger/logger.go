// Package logger provides a levelled, logfmt-ish structured logger that
// can be carried in a context.Context.
package logger

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// Level controls which messages a logger emits.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	CRIT
)

var levelNames = map[Level]string{
	DEBUG: "debug",
	INFO:  "info",
	WARN:  "warn",
	ERROR: "error",
	CRIT:  "crit",
}

// ParseLevel maps a level name to a Level, defaulting to INFO.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn":
		return WARN
	case "error":
		return ERROR
	case "crit":
		return CRIT
	}
	return INFO
}

// Logger represents a structured leveled logger.
type Logger interface {
	Debug(msg string, pairs ...interface{})
	Info(msg string, pairs ...interface{})
	Warn(msg string, pairs ...interface{})
	Error(msg string, pairs ...interface{})
	Crit(msg string, pairs ...interface{})
}

// DefaultLogger is used by the package level helpers when the context
// carries no logger.
var DefaultLogger Logger = New(log.New(log.Writer(), "", 0), INFO)

// logger is a Logger backed by the stdlib's logging facility.
type logger struct {
	*log.Logger
	level Level
}

// New wraps a log.Logger as a Logger emitting at lvl and above.
func New(l *log.Logger, lvl Level) Logger {
	return &logger{Logger: l, level: lvl}
}

func (l *logger) log(lvl Level, msg string, pairs ...interface{}) {
	if lvl < l.level {
		return
	}
	l.Println("status="+levelNames[lvl], msg, message(pairs...))
}

func (l *logger) Debug(msg string, pairs ...interface{}) { l.log(DEBUG, msg, pairs...) }
func (l *logger) Info(msg string, pairs ...interface{})  { l.log(INFO, msg, pairs...) }
func (l *logger) Warn(msg string, pairs ...interface{})  { l.log(WARN, msg, pairs...) }
func (l *logger) Error(msg string, pairs ...interface{}) { l.log(ERROR, msg, pairs...) }
func (l *logger) Crit(msg string, pairs ...interface{})  { l.log(CRIT, msg, pairs...) }

// message renders consecutive arguments as key=value pairs. An unpaired
// trailing argument is treated as a bare message.
func message(pairs ...interface{}) string {
	if len(pairs) == 1 {
		return fmt.Sprintf("%v", pairs[0])
	}

	var parts []string
	for i := 0; i < len(pairs); i += 2 {
		if len(pairs) == i+1 {
			parts = append(parts, fmt.Sprintf("%v", pairs[i]))
		} else {
			parts = append(parts, fmt.Sprintf("%s=%v", pairs[i], pairs[i+1]))
		}
	}
	return strings.Join(parts, " ")
}

type key int

const loggerKey key = iota

// WithLogger inserts a Logger into the provided context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the Logger from the context, if any.
func FromContext(ctx context.Context) (Logger, bool) {
	l, ok := ctx.Value(loggerKey).(Logger)
	return l, ok
}

func Debug(ctx context.Context, msg string, pairs ...interface{}) {
	fromContext(ctx).Debug(msg, pairs...)
}

func Info(ctx context.Context, msg string, pairs ...interface{}) {
	fromContext(ctx).Info(msg, pairs...)
}

func Warn(ctx context.Context, msg string, pairs ...interface{}) {
	fromContext(ctx).Warn(msg, pairs...)
}

func Error(ctx context.Context, msg string, pairs ...interface{}) {
	fromContext(ctx).Error(msg, pairs...)
}

func Crit(ctx context.Context, msg string, pairs ...interface{}) {
	fromContext(ctx).Crit(msg, pairs...)
}

func fromContext(ctx context.Context) Logger {
	if l, ok := FromContext(ctx); ok {
		return l
	}
	return DefaultLogger
}
