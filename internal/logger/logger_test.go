package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_ProdIsJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("prod", &buf)
	l.Debug("hidden")
	l.Info("signed in", "user_id", 7)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "signed in", rec["msg"])
	assert.EqualValues(t, 7, rec["user_id"])
}

func TestNewWithWriter_DevIsTextWithDebug(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("dev", &buf)
	l.Debug("dbg", "k", "v")
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "k=v")
}

func TestFrom(t *testing.T) {
	assert.Same(t, slog.Default(), From(context.Background()))

	var buf bytes.Buffer
	l := NewWithWriter("dev", &buf).With("request_id", "abc")
	ctx := WithContext(context.Background(), l)
	From(ctx).Info("hello")
	assert.Contains(t, buf.String(), "request_id=abc")
}
