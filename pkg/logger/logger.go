package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps logrus with printf-style helpers used across the services.
type Logger struct {
	log *logrus.Logger
}

type eventFormatter struct {
	serviceName string
}

// Format renders a single log line: timestamp, service, level, a generated
// event id and the message.
func (f *eventFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	b.WriteString(fmt.Sprintf("Time: %s, ", entry.Time.UTC().Format("2006-01-02 15:04:05")))
	b.WriteString(fmt.Sprintf("Service: %s, ", f.serviceName))
	b.WriteString(fmt.Sprintf("Level: %s, ", strings.ToUpper(entry.Level.String())))
	b.WriteString(fmt.Sprintf("Event ID: %s, ", uuid.New().String()))
	b.WriteString(fmt.Sprintf("Message: %s", entry.Message))
	b.WriteByte('\n')

	return b.Bytes(), nil
}

// New returns a logger writing to stdout only. Used by tests and tooling.
func New() *Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&eventFormatter{serviceName: "learnhub"})
	l.SetLevel(logrus.DebugLevel)
	return &Logger{log: l}
}

// NewWithFile returns a logger writing to stdout and a rotated log file.
func NewWithFile(serviceName, logFile string) *Logger {
	if dir := filepath.Dir(logFile); dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}

	rotator := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   true,
	}

	l := logrus.New()
	l.SetOutput(io.MultiWriter(os.Stdout, rotator))
	l.SetFormatter(&eventFormatter{serviceName: serviceName})
	l.SetLevel(logrus.InfoLevel)
	return &Logger{log: l}
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.log.Debugf(format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.log.Infof(format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.log.Warnf(format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.log.Errorf(format, args...)
}
