// Package console implements a logger backend that writes styled output
// to stderr via charmbracelet/log.
package console

import (
	"os"

	"github.com/charmbracelet/log"
)

type ConsoleBackend struct {
	logger *log.Logger
}

// ConsoleBackendParams configures a console backend. Prefix is prepended
// to every line, useful to tell processes apart when several share a
// terminal.
type ConsoleBackendParams struct {
	Debug  bool
	Prefix string
}

// NewConsoleBackend creates a backend that writes to stderr.
func NewConsoleBackend(params ConsoleBackendParams) *ConsoleBackend {
	level := log.InfoLevel
	if params.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          params.Prefix,
	})
	return &ConsoleBackend{logger: logger}
}

func (c *ConsoleBackend) Debug(message string, keyvals ...any) {
	c.logger.Debug(message, keyvals...)
}

func (c *ConsoleBackend) Info(message string, keyvals ...any) {
	c.logger.Info(message, keyvals...)
}

func (c *ConsoleBackend) Warn(message string, keyvals ...any) {
	c.logger.Warn(message, keyvals...)
}

func (c *ConsoleBackend) Error(message string, keyvals ...any) {
	c.logger.Error(message, keyvals...)
}

// Fatal logs the message and exits the process.
func (c *ConsoleBackend) Fatal(message string, keyvals ...any) {
	c.logger.Fatal(message, keyvals...)
}
