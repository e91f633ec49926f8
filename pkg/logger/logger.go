// Package logger provides a process-wide structured logger that fans out
// to one or more backends. Call Init once at startup; before Init every
// log call is a no-op, which keeps library code usable in tests without
// setup.
package logger

// Backend is a logging sink. Implementations receive the message plus
// alternating key/value pairs.
type Backend interface {
	Debug(message string, keyvals ...any)
	Info(message string, keyvals ...any)
	Warn(message string, keyvals ...any)
	Error(message string, keyvals ...any)
	Fatal(message string, keyvals ...any)
}

type dispatcher struct {
	backends []Backend
}

var global *dispatcher

// Init installs the given backends as the process-wide logger.
func Init(backends ...Backend) {
	global = &dispatcher{backends: backends}
}

// Debug writes a message at DEBUG level to all configured backends.
func Debug(message string, keyvals ...any) {
	if global == nil {
		return
	}
	for _, backend := range global.backends {
		backend.Debug(message, keyvals...)
	}
}

// Info writes a message at INFO level to all configured backends.
func Info(message string, keyvals ...any) {
	if global == nil {
		return
	}
	for _, backend := range global.backends {
		backend.Info(message, keyvals...)
	}
}

// Warn writes a message at WARN level to all configured backends.
func Warn(message string, keyvals ...any) {
	if global == nil {
		return
	}
	for _, backend := range global.backends {
		backend.Warn(message, keyvals...)
	}
}

// Error writes a message at ERROR level to all configured backends.
func Error(message string, keyvals ...any) {
	if global == nil {
		return
	}
	for _, backend := range global.backends {
		backend.Error(message, keyvals...)
	}
}

// Fatal writes a message at FATAL level. Backends are expected to
// terminate the process; the console backend does.
func Fatal(message string, keyvals ...any) {
	if global == nil {
		return
	}
	for _, backend := range global.backends {
		backend.Fatal(message, keyvals...)
	}
}
