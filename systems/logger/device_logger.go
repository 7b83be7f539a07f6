package logger

import (
	"github.com/go-home-io/viomise/plugins/common"
)

// Device logger implementation.
type deviceLogger struct {
	systemLogger common.ILoggerProvider
	deviceFields []string
}

// ConstructDeviceLogger has data required for a new device logger.
type ConstructDeviceLogger struct {
	SystemLogger common.ILoggerProvider
	System       string
	Device       string
}

// NewDeviceLogger constructs a new device logger.
// This is another level of abstraction which adds system
// and device name to the actual logger.
func NewDeviceLogger(ctor *ConstructDeviceLogger) common.ILoggerProvider {
	return &deviceLogger{
		systemLogger: ctor.SystemLogger,
		deviceFields: []string{common.LogSystemToken, ctor.System, common.LogProviderToken, ctor.Device},
	}
}

// Debug sends debug level message.
func (l *deviceLogger) Debug(msg string, fields ...string) {
	l.systemLogger.Debug(msg, append(fields, l.deviceFields...)...)
}

// Info sends info level message.
func (l *deviceLogger) Info(msg string, fields ...string) {
	l.systemLogger.Info(msg, append(fields, l.deviceFields...)...)
}

// Warn sends warning level message.
func (l *deviceLogger) Warn(msg string, fields ...string) {
	l.systemLogger.Warn(msg, append(fields, l.deviceFields...)...)
}

// Error sends error level message.
func (l *deviceLogger) Error(msg string, err error, fields ...string) {
	l.systemLogger.Error(msg, err, append(fields, l.deviceFields...)...)
}

// Fatal sends fatal level message and exits.
func (l *deviceLogger) Fatal(msg string, err error, fields ...string) {
	l.systemLogger.Fatal(msg, err, append(fields, l.deviceFields...)...)
}
