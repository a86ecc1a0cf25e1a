package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	logger := New()
	assert.NotNil(t, logger)
	assert.NotNil(t, logger.info)
	assert.NotNil(t, logger.error)
	assert.NotNil(t, logger.warn)
}

func TestInfo(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewWithWriters(&out, &errOut)

	logger.Info("Created category: %s", "golang")

	assert.Contains(t, out.String(), "INFO: ")
	assert.Contains(t, out.String(), "Created category: golang")
	assert.Empty(t, errOut.String())
}

func TestWarn(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewWithWriters(&out, &errOut)

	logger.Warn("Failed to invalidate cache key %s", "categories:all")

	assert.Contains(t, out.String(), "WARN: Failed to invalidate cache key categories:all")
}

func TestError(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewWithWriters(&out, &errOut)

	logger.Error("Failed to process request %d: %s", 404, "not found")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "ERROR: ")
	assert.Contains(t, errOut.String(), "logger_test.go")
	assert.Contains(t, errOut.String(), "Failed to process request 404: not found")
}
