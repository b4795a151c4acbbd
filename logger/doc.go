/*
Package logger provides leveled logging for programs built on enums by defining the required behavior in [Logger]
and providing an implementation of it with [StdLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.
For example, if [StdLogger] is initialized with [LogLevelWarn],
only [*StdLogger.Warn], [*StdLogger.Error], and [*StdLogger.Fatal] produce messages.

# StdLogger

Log messages emitted by [StdLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2024/08/06 12:00:00 [WARN] enumctl/audit.go:61 'unknown code' log_context: {"column":"status","entity":"orders","error":"unknown code: 9 in order_status"}

The call site is the file, line number and parent directory of the code that called the logger.
The log context is a JSON-encoded [LogContext],
carrying the entity and column an event concerns alongside any other data.

# SentryLogger

When SENTRY_DSN is set, [New] wraps the [StdLogger] in a [SentryLogger]
which forwards errors found in a [LogContext] at Warn and above.
*/
package logger
