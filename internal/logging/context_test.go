package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext_NoLogger(t *testing.T) {
	assert.Equal(t, Default(), FromContext(context.Background()))
}

func TestWithContext_RoundTrip(t *testing.T) {
	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	ctx := WithContext(context.Background(), custom)
	assert.Same(t, custom, FromContext(ctx))
}

func TestContextWith_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := WithContext(context.Background(), base)
	ctx = ContextWith(ctx, "activation_id", "abc")
	FromContext(ctx).Info("forwarded")

	assert.Contains(t, buf.String(), "activation_id=abc")
	assert.Contains(t, buf.String(), "forwarded")
}
