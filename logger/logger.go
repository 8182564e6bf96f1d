// Package logger provides levelled logging for the game and its servers.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	colorReset  = "\033[0m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
)

// Logger writes prefixed lines per level.
type Logger struct {
	debug       bool
	debugLogger *log.Logger
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
}

// New creates a logger on stdout/stderr, coloured when attached to a terminal.
func New(debug bool) *Logger {
	color := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return NewWithWriters(os.Stdout, os.Stderr, debug, color)
}

// NewWithWriters sends debug/info/warn to out and errors to errOut.
func NewWithWriters(out, errOut io.Writer, debug, color bool) *Logger {
	flags := log.Ldate | log.Ltime | log.Lmsgprefix
	prefix := func(level, c string) string {
		if color {
			return c + "[SNAKE-" + level + "]" + colorReset + " "
		}
		return "[SNAKE-" + level + "] "
	}
	return &Logger{
		debug:       debug,
		debugLogger: log.New(out, prefix("DEBUG", colorCyan), flags),
		infoLogger:  log.New(out, prefix("INFO", ""), flags),
		warnLogger:  log.New(out, prefix("WARN", colorYellow), flags),
		errorLogger: log.New(errOut, prefix("ERROR", colorRed), flags),
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWithWriters(io.Discard, io.Discard, false, false)
}

func (l *Logger) Debugf(format string, args ...any) {
	if l.debug {
		l.debugLogger.Output(2, fmt.Sprintf(format, args...))
	}
}

func (l *Logger) Infof(format string, args ...any) {
	l.infoLogger.Output(2, fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...any) {
	l.warnLogger.Output(2, fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...any) {
	l.errorLogger.Output(2, fmt.Sprintf(format, args...))
}

// Event logs a game event with the session it belongs to.
func (l *Logger) Event(eventType, session, details string) {
	l.infoLogger.Output(2, fmt.Sprintf("[EVENT:%s] session:%s | %s", eventType, session, details))
}
