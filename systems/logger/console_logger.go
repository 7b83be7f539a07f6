package logger

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/go-home-io/viomise/plugins/common"
)

// Colored console logger used by the command line tool.
type consoleLogger struct {
	verbose bool
}

// Debug prints debug level message.
func (p *consoleLogger) Debug(msg string, fields ...string) {
	if !p.verbose {
		return
	}
	output(msg, withFields(fields...), color.FgCyan)
}

// Info prints info level message.
func (p *consoleLogger) Info(msg string, fields ...string) {
	output(msg, withFields(fields...), color.FgGreen)
}

// Warn prints warning level message.
func (p *consoleLogger) Warn(msg string, fields ...string) {
	output(msg, withFields(fields...), color.FgYellow)
}

// Error prints error level message.
func (p *consoleLogger) Error(msg string, err error, fields ...string) {
	output(msg, withFields(withError(fields, err)...), color.FgRed)
}

// Fatal prints fatal level message and exits.
func (p *consoleLogger) Fatal(msg string, err error, fields ...string) {
	output(msg, withFields(withError(fields, err)...), color.FgRed)
	os.Exit(1)
}

// NewConsoleLogger constructs a new console logger.
func NewConsoleLogger(verbose bool) common.ILoggerProvider {
	return &consoleLogger{verbose: verbose}
}

// Prepares final string.
func output(msg string, fields map[string]string, c color.Attribute) {
	colorPrint(format(time.Now().Local(), msg, fields), c)
}

func format(now time.Time, msg string, fields map[string]string) string {
	newM := fmt.Sprintf("%s   %s", now.Format(time.StampMilli), msg)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		newM = fmt.Sprintf("%s\n          %s: %s", newM, k, fields[k])
	}

	return newM
}

// Outputs final string.
func colorPrint(msg string, c color.Attribute) {
	msgC := color.New(c)
	//noinspection GoUnhandledErrorResult
	msgC.Fprintln(os.Stderr, msg) // nolint: gosec
}
