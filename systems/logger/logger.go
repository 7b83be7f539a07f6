// Package logger provides logrus backed implementation of the logger provider.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/go-home-io/viomise/plugins/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Logger provider implementation.
type provider struct {
	logger *logrus.Logger
	fields []string
}

// ConstructLogger has data required for a new logger.
type ConstructLogger struct {
	Level  string
	JSON   bool
	Output io.Writer
	Fields []string
}

// NewLoggerProvider constructs a new logger.
func NewLoggerProvider(ctor *ConstructLogger) (common.ILoggerProvider, error) {
	level := ctor.Level
	if level == "" {
		level = "info"
	}

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}

	l := logrus.New()
	l.SetLevel(lvl)
	if ctor.Output != nil {
		l.SetOutput(ctor.Output)
	} else {
		l.SetOutput(os.Stdout)
	}

	if ctor.JSON {
		l.Formatter = &logrus.JSONFormatter{}
	} else {
		l.Formatter = &logrus.TextFormatter{
			FullTimestamp: true,
			DisableColors: true,
		}
	}

	return &provider{
		logger: l,
		fields: ctor.Fields,
	}, nil
}

// Debug sends debug level message.
func (p *provider) Debug(msg string, fields ...string) {
	p.entry(fields...).Debug(msg)
}

// Info sends info level message.
func (p *provider) Info(msg string, fields ...string) {
	p.entry(fields...).Info(msg)
}

// Warn sends warning level message.
func (p *provider) Warn(msg string, fields ...string) {
	p.entry(fields...).Warn(msg)
}

// Error sends error level message.
func (p *provider) Error(msg string, err error, fields ...string) {
	p.entry(withError(fields, err)...).Error(msg)
}

// Fatal sends fatal level message and exits.
func (p *provider) Fatal(msg string, err error, fields ...string) {
	p.entry(withError(fields, err)...).Fatal(msg)
}

// Builds logrus entry out of key/value pairs.
func (p *provider) entry(fields ...string) *logrus.Entry {
	all := withFields(append(fields, p.fields...)...)
	f := make(logrus.Fields, len(all))
	for k, v := range all {
		f[k] = v
	}

	return p.logger.WithFields(f)
}

// Appends error field if error is present.
func withError(fields []string, err error) []string {
	if err == nil {
		return fields
	}

	return append(fields, common.LogErrorToken, err.Error())
}

// Helper method to add generic fields to the output.
// Trailing key without value is ignored.
func withFields(fields ...string) map[string]string {
	fLen := len(fields)
	result := make(map[string]string, fLen/2)
	for ii := 0; ii < fLen; ii += 2 {
		if ii+1 >= fLen {
			break
		}

		result[fields[ii]] = fields[ii+1]
	}

	return result
}
