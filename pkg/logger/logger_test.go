package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel(" DEBUG "))
	assert.Equal(t, ErrorLevel, ParseLevel("error"))
	assert.Equal(t, InfoLevel, ParseLevel("verbose"))
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{Level: WarnLevel, Output: &buf, JSON: true})

	log.Info("hidden")
	log.Warn("record skipped", "record", "Status")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "record skipped", entry["msg"])
	assert.Equal(t, "Status", entry["record"])
	assert.Equal(t, "warn", entry["level"])
}

func TestFromContext(t *testing.T) {
	assert.Equal(t, Nop(), FromContext(context.Background()))

	var buf bytes.Buffer
	log := NewLogger(&Config{Level: DebugLevel, Output: &buf})
	ctx := ContextWithLogger(context.Background(), log)
	FromContext(ctx).Debug("generated", "file", "user_builder.go")
	assert.Contains(t, buf.String(), "generated")
	assert.Contains(t, buf.String(), "user_builder.go")
}
