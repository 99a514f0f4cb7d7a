package logging

import (
	"bytes"
	"context"
	"os"
	"testing"

	aulogging "github.com/StephanHCB/go-autumn-logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		severity string
		expected zerolog.Level
	}{
		{severity: "DEBUG", expected: zerolog.DebugLevel},
		{severity: "info", expected: zerolog.InfoLevel},
		{severity: "WARN", expected: zerolog.WarnLevel},
		{severity: "ERROR", expected: zerolog.ErrorLevel},
		{severity: "", expected: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.severity, func(t *testing.T) {
			require.Equal(t, tt.expected, levelFor(tt.severity))
		})
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "4c1a55d2")

	require.Equal(t, "4c1a55d2", GetRequestID(ctx))
	require.NotNil(t, LoggerFromContext(ctx))
	require.Equal(t, "", GetRequestID(context.Background()))
}

func TestLoggerFromContextFallsBack(t *testing.T) {
	ctx := context.WithValue(context.Background(), LoggerKey, NewNoopLogger())
	require.IsType(t, &noopLogger{}, LoggerFromContext(ctx))

	require.IsType(t, &loggingWrapper{}, LoggerFromContext(context.Background()))
}

func TestSetupLogsToDestination(t *testing.T) {
	buf := &bytes.Buffer{}
	destination = buf
	t.Cleanup(func() {
		destination = os.Stderr
		output = os.Stderr
		log.Logger = log.Logger.Output(os.Stderr)
	})

	for _, style := range []string{"json", "plain"} {
		t.Run(style, func(t *testing.T) {
			buf.Reset()
			Setup("INFO", style)

			NewLogger().Info("bill %s delivered", "bill-0001")
			aulogging.Logger.NoCtx().Info().Printf("downstream call done")

			require.Contains(t, buf.String(), "bill bill-0001 delivered")
			require.Contains(t, buf.String(), "downstream call done")
		})
	}
}

func TestDefaultOutputIsNotStdout(t *testing.T) {
	require.NotEqual(t, os.Stdout, output)
	require.Equal(t, os.Stderr, destination)
}
