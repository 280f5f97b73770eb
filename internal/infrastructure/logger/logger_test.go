package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cardboard/core/internal/infrastructure/config"
	"github.com/cardboard/core/internal/infrastructure/logger"
)

func observed() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logger.FromZap(zap.New(core)), logs
}

func TestNew(t *testing.T) {
	log, err := logger.New(config.LoggerConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	require.NotNil(t, log)

	_, err = logger.New(config.LoggerConfig{Level: "loud", Format: "json"})
	assert.ErrorContains(t, err, "invalid log level")
}

func TestLogCardAction(t *testing.T) {
	log, logs := observed()

	log.WithComponent("card_service").LogCardAction("create", "c1", map[string]interface{}{"type": "TEXT"})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Card action", entry.Message)
	assert.Equal(t, zapcore.InfoLevel, entry.Level)

	fields := entry.ContextMap()
	assert.Equal(t, "card_service", fields["component"])
	assert.Equal(t, "create", fields["action"])
	assert.Equal(t, "c1", fields["card_id"])
	assert.Equal(t, "TEXT", fields["type"])
}

func TestWithHelpers(t *testing.T) {
	log, logs := observed()

	log.WithRequestID("req-1").WithError(errors.New("boom")).Warnw("failed")

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "boom", fields["error"])
}

func TestNewNop(t *testing.T) {
	assert.NotPanics(t, func() {
		logger.NewNop().LogCardAction("delete", "c1", nil)
	})
}
