package settings

import (
	"github.com/go-home-io/viomise/plugins/common"
	"github.com/go-home-io/viomise/providers"
	"github.com/go-home-io/viomise/systems/logger"
	"github.com/prometheus/client_golang/prometheus"
)

// SystemLogger returns default system logger.
func (s *settingsProvider) SystemLogger() common.ILoggerProvider {
	return s.logger
}

// DeviceLogger returns logger for a specific vacuum.
func (s *settingsProvider) DeviceLogger(name string) common.ILoggerProvider {
	return logger.NewDeviceLogger(&logger.ConstructDeviceLogger{
		SystemLogger: s.logger,
		System:       logDeviceSystem,
		Device:       name,
	})
}

// Cron returns system's cron provider.
func (s *settingsProvider) Cron() providers.ICronProvider {
	return s.cron
}

// Validator returns yaml validator provider.
func (s *settingsProvider) Validator() providers.IValidatorProvider {
	return s.validator
}

// FanOut returns fan out channel.
func (s *settingsProvider) FanOut() providers.IInternalFanOutProvider {
	return s.fanOut
}

// Entries returns configured vacuums store.
func (s *settingsProvider) Entries() providers.IEntryStore {
	return s.entries
}

// MetricsRegistry returns prometheus registry.
func (s *settingsProvider) MetricsRegistry() *prometheus.Registry {
	return s.registry
}

// ServerSettings returns HTTP server settings.
func (s *settingsProvider) ServerSettings() *providers.ServerSettings {
	return s.sSettings
}

// DeviceSettings returns polling settings.
func (s *settingsProvider) DeviceSettings() *providers.DeviceSettings {
	return s.dSettings
}

// MQTTSettings returns MQTT publisher settings.
func (s *settingsProvider) MQTTSettings() *providers.MQTTSettings {
	return s.qSettings
}
