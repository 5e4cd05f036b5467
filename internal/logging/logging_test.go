package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/graphflow-ai/graphflow/config"
)

func TestNewJSONLogger(t *testing.T) {
	logger, err := New(config.LogConfig{Level: "info", Format: "json", OutputPaths: []string{"stdout"}})
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewConsoleLoggerDebug(t *testing.T) {
	logger, err := New(config.LogConfig{Level: "debug", Format: "console", OutputPaths: []string{"stderr"}})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "shouting"})
	assert.Error(t, err)
}
