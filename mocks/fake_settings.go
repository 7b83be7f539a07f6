//go:build !release
// +build !release

package mocks

import (
	"github.com/go-home-io/viomise/plugins/common"
	"github.com/go-home-io/viomise/providers"
	"github.com/prometheus/client_golang/prometheus"
)

type fakeSettings struct {
	logger    common.ILoggerProvider
	cron      providers.ICronProvider
	validator providers.IValidatorProvider
	fanOut    providers.IInternalFanOutProvider
	entries   providers.IEntryStore
	registry  *prometheus.Registry
	server    *providers.ServerSettings
	device    *providers.DeviceSettings
	mqtt      *providers.MQTTSettings
}

func (f *fakeSettings) SystemLogger() common.ILoggerProvider {
	return f.logger
}

func (f *fakeSettings) DeviceLogger(string) common.ILoggerProvider {
	return f.logger
}

func (f *fakeSettings) Cron() providers.ICronProvider {
	return f.cron
}

func (f *fakeSettings) Validator() providers.IValidatorProvider {
	return f.validator
}

func (f *fakeSettings) FanOut() providers.IInternalFanOutProvider {
	return f.fanOut
}

func (f *fakeSettings) Entries() providers.IEntryStore {
	return f.entries
}

func (f *fakeSettings) MetricsRegistry() *prometheus.Registry {
	return f.registry
}

func (f *fakeSettings) ServerSettings() *providers.ServerSettings {
	return f.server
}

func (f *fakeSettings) DeviceSettings() *providers.DeviceSettings {
	return f.device
}

func (f *fakeSettings) MQTTSettings() *providers.MQTTSettings {
	return f.mqtt
}

// SetValidator replaces validator provider.
func (f *fakeSettings) SetValidator(v providers.IValidatorProvider) {
	f.validator = v
}

// SetEntries replaces entries store.
func (f *fakeSettings) SetEntries(e providers.IEntryStore) {
	f.entries = e
}

// FakeNewSettings creates a new fake settings provider.
func FakeNewSettings(logCallback func(string)) *fakeSettings {
	return &fakeSettings{
		logger:    FakeNewLogger(logCallback),
		cron:      FakeNewCron(),
		validator: FakeNewValidator(true),
		fanOut:    FakeNewFanOut(),
		entries:   FakeNewEntryStore(false),
		registry:  prometheus.NewRegistry(),
		server:    &providers.ServerSettings{Port: 9999},
		device:    &providers.DeviceSettings{UpdatePeriod: 30, Timeout: 1},
		mqtt:      &providers.MQTTSettings{Prefix: "viomise"},
	}
}
