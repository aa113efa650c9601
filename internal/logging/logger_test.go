package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bookfix/internal/logging"
)

func TestNew_Levels(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]log.Level{
		"debug":   log.DebugLevel,
		"DEBUG":   log.DebugLevel,
		"Info":    log.InfoLevel,
		"warn":    log.WarnLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
		"verbose": log.InfoLevel,
		"":        log.InfoLevel,
	} {
		logger := logging.New(in)
		require.NotNil(t, logger, in)
		assert.Equal(t, want, logger.GetLevel(), "level %q", in)
	}
}

func TestDefaultAndSetLevel(t *testing.T) {
	original := logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	replacement := logging.New("info")
	logging.SetDefault(replacement)
	assert.Same(t, replacement, logging.Default())

	logging.SetLevel("debug")
	assert.Equal(t, log.DebugLevel, logging.Default().GetLevel())

	logging.SetLevel("error")
	assert.Equal(t, log.ErrorLevel, logging.Default().GetLevel())
}

func TestNewInteractive(t *testing.T) {
	t.Parallel()

	logger := logging.NewInteractive()
	require.NotNil(t, logger)
	assert.Equal(t, log.InfoLevel, logger.GetLevel())
	assert.Equal(t, "bookfix", logger.GetPrefix())
}

func TestNewWithWriter_FiltersByLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("directory not found", logging.FieldDirectory, "part3")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "directory not found")
	assert.Contains(t, out, "dir=part3")
}

func TestContext(t *testing.T) {
	t.Parallel()

	logger := logging.New("debug")
	ctx := logging.WithLogger(context.Background(), logger)

	assert.Same(t, logger, logging.FromContext(ctx))
	assert.Same(t, logger, log.FromContext(ctx), "charmbracelet/log sees the attached logger")
	assert.NotNil(t, logging.FromContext(context.Background()))
}
