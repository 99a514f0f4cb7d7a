package logging

import (
	"context"
	"io"
	"os"
	"strings"

	auzerolog "github.com/StephanHCB/go-autumn-logging-zerolog"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const ApplicationName = "reg-bitpay-client"

type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})

	// expected to terminate the process
	Fatal(format string, v ...interface{})
}

type loggingWrapper struct {
	logger *zerolog.Logger
}

func (l *loggingWrapper) Debug(format string, v ...interface{}) {
	l.logger.Debug().Msgf(format, v...)
}

func (l *loggingWrapper) Info(format string, v ...interface{}) {
	l.logger.Info().Msgf(format, v...)
}

func (l *loggingWrapper) Warn(format string, v ...interface{}) {
	l.logger.Warn().Msgf(format, v...)
}

func (l *loggingWrapper) Error(format string, v ...interface{}) {
	l.logger.Error().Msgf(format, v...)
}

// expected to terminate the process
func (l *loggingWrapper) Fatal(format string, v ...interface{}) {
	l.logger.Fatal().Msgf(format, v...)
}

// context key with a separate type, so no other package has a chance of accessing it
type key int

// the value actually doesn't matter, the type alone will guarantee no package gets at this context value
const (
	LoggerKey key = iota
	RequestIdKey
)

// stdout carries command results, so all logging goes to stderr
var (
	destination io.Writer = os.Stderr
	output      io.Writer = destination
)

// Setup configures the global log level and routes go-autumn-logging (used inside
// the restclient libraries) through zerolog as well.
//
// severity is one of DEBUG, INFO, WARN, ERROR. style is plain or json.
func Setup(severity string, style string) {
	if strings.EqualFold(style, "json") {
		auzerolog.SetupJsonLogging(ApplicationName)
		output = destination
	} else {
		auzerolog.SetupPlaintextLogging()
		output = zerolog.ConsoleWriter{Out: destination}
	}
	// auzerolog writes to stdout
	log.Logger = log.Logger.Output(output)

	zerolog.SetGlobalLevel(levelFor(severity))
}

func levelFor(severity string) zerolog.Level {
	switch strings.ToUpper(severity) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func LoggerFromContext(ctx context.Context) Logger {
	if ctx == nil {
		return NewLogger()
	}

	logger, ok := ctx.Value(LoggerKey).(Logger)
	if !ok {
		return NewLogger()
	}

	return logger
}

// ContextWithRequestID stores the request id and a logger tagged with it.
func ContextWithRequestID(ctx context.Context, reqID string) context.Context {
	ctx = context.WithValue(ctx, RequestIdKey, reqID)
	return context.WithValue(ctx, LoggerKey, WithRequestID(ctx, reqID))
}

func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return "00000000"
	}
	if reqID, ok := ctx.Value(RequestIdKey).(string); ok {
		return reqID
	}
	return ""
}

func WithRequestID(_ context.Context, reqID string) Logger {
	logger := zerolog.New(output).
		With().
		Str("App", ApplicationName).
		Str("RequestId", reqID).
		Timestamp().
		Logger()

	return &loggingWrapper{
		logger: &logger,
	}
}

func NewLogger() Logger {
	logger := zerolog.New(output).
		With().
		Str("App", ApplicationName).
		Timestamp().
		Logger()

	return &loggingWrapper{
		logger: &logger,
	}
}

func NewNoopLogger() Logger {
	return &noopLogger{}
}

type noopLogger struct {
}

func (l *noopLogger) Debug(format string, v ...interface{}) {
}

func (l *noopLogger) Info(format string, v ...interface{}) {
}

func (l *noopLogger) Warn(format string, v ...interface{}) {
}

func (l *noopLogger) Error(format string, v ...interface{}) {
}

// expected to terminate the process
func (l *noopLogger) Fatal(format string, v ...interface{}) {
}
