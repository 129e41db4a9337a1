package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		wantLevel zerolog.Level
	}{
		{"default warn level", Options{Verbosity: 0}, zerolog.WarnLevel},
		{"info level", Options{Verbosity: 1}, zerolog.InfoLevel},
		{"debug level", Options{Verbosity: 2}, zerolog.DebugLevel},
		{"trace level", Options{Verbosity: 3}, zerolog.TraceLevel},
		{"high verbosity defaults to trace", Options{Verbosity: 5}, zerolog.TraceLevel},
		{"quiet wins over verbosity", Options{Verbosity: 3, Quiet: true}, zerolog.Disabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.opts.Out = &buf

			SetupLogger(tt.opts)

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
		})
	}
}

func TestSetupLogger_Quiet(t *testing.T) {
	var buf bytes.Buffer
	SetupLogger(Options{Quiet: true, Out: &buf})

	log.Error().Msg("should not appear")
	logger := GetLogger("task")
	logger.Warn().Msg("nor this")

	assert.Empty(t, buf.String())
}

func TestSetupLogger_LogFile(t *testing.T) {
	stateDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateDir)
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	var buf bytes.Buffer
	SetupLogger(Options{Verbosity: 1, File: true, Out: &buf})
	log.Info().Msg("to file")

	logPath := filepath.Join(stateDir, "haus", "haus.log")
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	logger := GetLogger("test-component")
	logger.Info().Msg("test message")

	assert.Contains(t, buf.String(), `"component":"test-component"`)
	assert.Contains(t, buf.String(), "test message")
}

func TestLogCommand(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	LogCommand("link", []string{"--noop", "-u", "0"})

	output := buf.String()
	assert.Contains(t, output, "link")
	assert.Contains(t, output, "--noop")
	assert.Contains(t, output, "Executing command")
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	done := LogOperationStart(logger, "queue")
	done()

	output := buf.String()
	assert.Contains(t, output, "Operation started")
	assert.Contains(t, output, "Operation completed")
	assert.Contains(t, output, "duration")
}
