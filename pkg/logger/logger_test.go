package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	logger := New()
	assert.NotNil(t, logger)
	assert.NotNil(t, logger.log)
}

func TestLogger_Levels(t *testing.T) {
	logger := New()
	assert.NotNil(t, logger)

	// None of these should panic
	logger.Debug("Test message: %s", "debug")
	logger.Info("Test message: %s", "info")
	logger.Warn("Test warning: %s", "warning")
	logger.Error("Test error: %s", "error")
}

func TestLogger_Formatting(t *testing.T) {
	logger := New()
	assert.NotNil(t, logger)

	// Formatting with multiple args
	logger.Info("User %s logged in with ID %d", "john", 123)
	logger.Error("Failed to process request %d: %s", 404, "not found")
	logger.Warn("Warning: %s count is %d", "items", 5)
}

func TestNewWithFile(t *testing.T) {
	dir := t.TempDir()
	logger := NewWithFile("notification-service", dir+"/service.log")
	assert.NotNil(t, logger)

	logger.Info("file-backed logger message")
}

func TestEventFormatter(t *testing.T) {
	logger := New()
	formatter, ok := logger.log.Formatter.(*eventFormatter)
	assert.True(t, ok)
	assert.Equal(t, "learnhub", formatter.serviceName)
}
