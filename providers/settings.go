package providers

import (
	"github.com/go-home-io/viomise/plugins/common"
	"github.com/prometheus/client_golang/prometheus"
)

// ISettingsProvider defines settings loader provider logic.
type ISettingsProvider interface {
	SystemLogger() common.ILoggerProvider
	DeviceLogger(name string) common.ILoggerProvider
	Cron() ICronProvider
	Validator() IValidatorProvider
	FanOut() IInternalFanOutProvider
	Entries() IEntryStore
	MetricsRegistry() *prometheus.Registry
	ServerSettings() *ServerSettings
	DeviceSettings() *DeviceSettings
	MQTTSettings() *MQTTSettings
}

// ServerSettings has configured data for the HTTP API.
type ServerSettings struct {
	Port        int      `yaml:"port" validate:"required,port" default:"8000"`
	CORSOrigins []string `yaml:"corsOrigins"`
}

// DeviceSettings has configured data for vacuum polling and device calls.
type DeviceSettings struct {
	UpdatePeriod int `yaml:"updatePeriod" validate:"gte=10,lte=3600" default:"30"`
	Timeout      int `yaml:"timeout" validate:"gte=1,lte=60" default:"5"`
}

// MQTTSettings has configured data for the optional state publisher.
type MQTTSettings struct {
	Enabled  bool   `yaml:"enabled"`
	Broker   string `yaml:"broker" default:"tcp://127.0.0.1:1883"`
	ClientID string `yaml:"clientId" default:"viomise"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Prefix   string `yaml:"prefix" validate:"required" default:"viomise"`
	QoS      int    `yaml:"qos" validate:"gte=0,lte=2"`
}
