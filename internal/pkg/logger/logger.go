package logger

import (
	"fmt"
	"log"
	"os"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	FATAL: "FATAL",
}

type Logger struct {
	level Level
	log   *log.Logger
}

func New(level Level) *Logger {
	return &Logger{
		level: level,
		log:   log.New(os.Stdout, "", log.LstdFlags),
	}
}

func (l *Logger) output(level Level, format string, v ...interface{}) {
	if l.level > level {
		return
	}
	msg := fmt.Sprintf(format, v...)
	line := fmt.Sprintf("[%s] %s", levelNames[level], msg)
	if level == FATAL {
		l.log.Fatal(line)
		return
	}
	l.log.Print(line)
}

func (l *Logger) Debug(format string, v ...interface{}) { l.output(DEBUG, format, v...) }
func (l *Logger) Info(format string, v ...interface{})  { l.output(INFO, format, v...) }
func (l *Logger) Warn(format string, v ...interface{})  { l.output(WARN, format, v...) }
func (l *Logger) Error(format string, v ...interface{}) { l.output(ERROR, format, v...) }
func (l *Logger) Fatal(format string, v ...interface{}) { l.output(FATAL, format, v...) }

// SetLevel changes the logging level
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

// Global logger instance
var defaultLogger = New(INFO)

func Debug(format string, v ...interface{}) { defaultLogger.Debug(format, v...) }
func Info(format string, v ...interface{})  { defaultLogger.Info(format, v...) }
func Warn(format string, v ...interface{})  { defaultLogger.Warn(format, v...) }
func Error(format string, v ...interface{}) { defaultLogger.Error(format, v...) }
func Fatal(format string, v ...interface{}) { defaultLogger.Fatal(format, v...) }

// SetGlobalLevel sets the level for the global logger
func SetGlobalLevel(level Level) {
	defaultLogger.SetLevel(level)
}
