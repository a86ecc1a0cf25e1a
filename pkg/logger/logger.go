package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

type Logger struct {
	info  *log.Logger
	warn  *log.Logger
	error *log.Logger
}

func New() *Logger {
	return NewWithWriters(os.Stdout, os.Stderr)
}

// NewWithWriters routes info/warn output to out and errors to errOut.
func NewWithWriters(out, errOut io.Writer) *Logger {
	flags := log.Ldate | log.Ltime | log.LUTC
	return &Logger{
		info:  log.New(out, "INFO: ", flags),
		warn:  log.New(out, "WARN: ", flags),
		error: log.New(errOut, "ERROR: ", flags|log.Lshortfile),
	}
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.info.Printf(format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.warn.Printf(format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	// depth 2 so Lshortfile reports the caller, not this file
	_ = l.error.Output(2, fmt.Sprintf(format, args...))
}
