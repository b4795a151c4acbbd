package logger

import "log"

// An OptFn is a functional option configuring a StdLogger when constructing a new one.
type OptFn func(*StdLogger)

// WithColor toggles colorizing log lines.
func WithColor(on bool) OptFn {
	return func(l *StdLogger) {
		l.color = on
	}
}

// WithEnv sets the environment StdLogger is operating in.
func WithEnv(env string) OptFn {
	return func(l *StdLogger) {
		l.env = env
	}
}

// WithLevel sets the log level StdLogger uses.
func WithLevel(level LogLevel) OptFn {
	return func(l *StdLogger) {
		l.ll = level
	}
}

// WithLogger sets the log.Logger StdLogger uses.
func WithLogger(log *log.Logger) OptFn {
	return func(l *StdLogger) {
		l.l = log
	}
}

// WithSkip sets the number of frames in the call stack
// to skip in order to log the desired file and line number
// of the calling code.
func WithSkip(skip int) OptFn {
	return func(l *StdLogger) {
		l.skip = skip
	}
}
