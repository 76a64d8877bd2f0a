package logger

import (
	"context"
	"testing"

	obscontext "github.com/smallbiznis/railtrack/internal/observability/context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContextEmitsCorrelationFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	ctx := obscontext.WithRequestID(context.Background(), "req-123")
	WithContext(ctx, base).Info("hello")

	require.Equal(t, 1, logs.Len())
	// Exactly the correlation fields, nothing else.
	assert.Equal(t, map[string]interface{}{
		"request_id": "req-123",
		"trace_id":   "",
		"span_id":    "",
	}, logs.All()[0].ContextMap())
}

func TestWithContextNilContext(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	WithContext(nil, base).Info("hello")

	require.Equal(t, 1, logs.Len())
	assert.Empty(t, logs.All()[0].ContextMap())
}
