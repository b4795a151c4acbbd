package logger_test

import (
	"bytes"
	"errors"
	"io"
	"log"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/enums/logger"
)

var (
	logLevelRegexp = regexp.MustCompile(`^\[[A-Z]+\]`)
	fpRegexp       = regexp.MustCompile(`logger/logger_test\.go:\d+`)
	msgRegexp      = regexp.MustCompile(`'(.*)'`)
)

func newTestLogger(w io.Writer) *log.Logger {
	return log.New(w, "", 0)
}

func TestNewLogLevel(t *testing.T) {
	tcs := []struct {
		name     string
		val      string
		expected logger.LogLevel
	}{
		{"debug", "DEBUG", logger.LogLevelDebug},
		{"info", "INFO", logger.LogLevelInfo},
		{"warn", "WARN", logger.LogLevelWarn},
		{"error", "ERROR", logger.LogLevelError},
		{"fatal", "FATAL", logger.LogLevelFatal},
		{"lower-case", "debug", logger.LogLevelUnk},
		{"zero-value", "", logger.LogLevelUnk},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual := logger.NewLogLevel(tc.val)

			// Assert
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestStdLoggerLevels(t *testing.T) {
	tcs := []struct {
		name  string
		level logger.LogLevel
		fn    func(l logger.Logger, msg string)
	}{
		{"debug", logger.LogLevelDebug, func(l logger.Logger, msg string) { l.Debug(msg, nil) }},
		{"info", logger.LogLevelInfo, func(l logger.Logger, msg string) { l.Info(msg, nil) }},
		{"warn", logger.LogLevelWarn, func(l logger.Logger, msg string) { l.Warn(msg, nil) }},
		{"error", logger.LogLevelError, func(l logger.Logger, msg string) { l.Error(msg, nil) }},
		{"fatal", logger.LogLevelFatal, func(l logger.Logger, msg string) { l.Fatal(msg, nil) }},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			b := new(bytes.Buffer)
			l := logger.NewStdLogger(
				logger.WithLogger(newTestLogger(b)),
				logger.WithLevel(tc.level),
				logger.WithColor(false),
			)

			// Act
			tc.fn(l, "unknown code 9 in priority")

			// Assert
			out := b.String()
			require.Equal(t, tc.level.String(), logLevelRegexp.FindString(out))
			require.Regexp(t, fpRegexp, out)
			require.Equal(t, "unknown code 9 in priority", msgRegexp.FindStringSubmatch(out)[1])
		})
	}
}

func TestStdLoggerBelowLevel(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	l := logger.NewStdLogger(
		logger.WithLogger(newTestLogger(b)),
		logger.WithLevel(logger.LogLevelWarn),
		logger.WithColor(false),
	)

	// Act
	l.Debug("debug", nil)
	l.Info("info", nil)

	// Assert
	require.Empty(t, b.String())
	require.Equal(t, logger.LogLevelWarn, l.LogLevel())
}

func TestStdLoggerLogContext(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	l := logger.NewStdLogger(
		logger.WithLogger(newTestLogger(b)),
		logger.WithColor(false),
	)

	// Act
	l.Info("registered", &logger.LogContext{
		Caller: "enumctl/audit.go:42",
		Entity: "orders",
		Error:  errors.New("oops"),
	})

	// Assert
	out := b.String()
	require.Contains(t, out, "enumctl/audit.go:42")
	require.NotRegexp(t, fpRegexp, out)
	require.Contains(t, out, `log_context: {"entity":"orders","error":"oops"}`)
}

func TestStdLoggerAddSkip(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	l := logger.NewStdLogger(
		logger.WithLogger(newTestLogger(b)),
		logger.WithColor(false),
		logger.WithSkip(3),
	)

	// Act
	sl := l.AddSkip(0)

	// Assert
	require.Equal(t, 3, l.Skip())
	require.Equal(t, 0, sl.Skip())

	// Act
	sl.Info("skipped", nil)

	// Assert
	require.Regexp(t, fpRegexp, b.String())
}

func TestNewWithoutSentry(t *testing.T) {
	// Arrange
	t.Setenv("SENTRY_DSN", "")

	// Act
	l := logger.New(logger.WithLogger(newTestLogger(io.Discard)))

	// Assert
	require.IsType(t, &logger.StdLogger{}, l)
}
