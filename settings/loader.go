// Package settings is responsible for parsing yaml-based configuration.
package settings

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/go-home-io/viomise/plugins/common"
	"github.com/go-home-io/viomise/providers"
	"github.com/go-home-io/viomise/systems"
	"github.com/go-home-io/viomise/systems/fanout"
	"github.com/go-home-io/viomise/systems/logger"
	"github.com/go-home-io/viomise/systems/storage"
	"github.com/go-home-io/viomise/utils"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gopkg.in/yaml.v2"
)

const (
	// Logger system.
	logSystem = "settings"
	// Device loggers system.
	logDeviceSystem = "viomi"
)

const (
	// Describes config record for HTTP server.
	configGoHomeServer = "server"
	// Describes config record for vacuums polling.
	configGoHomeDevice = "device"
)

// StartUpOptions defines arguments allowed by the system.
type StartUpOptions struct {
	Config  string `short:"c" long:"config" default:"viomise.yaml" description:"Config file location."`
	Entries string `short:"e" long:"entries" default:"entries.yaml" description:"Configured vacuums file location."`
	Verbose bool   `short:"v" long:"verbose" description:"Print debug messages until logger is configured."`
}

// Defines loaded provider record.
type rawProvider struct {
	System   string
	Provider string
	Config   []byte
}

// Logger record.
type loggerSettings struct {
	Level string `yaml:"level" validate:"oneof=trace debug info warn warning error fatal panic" default:"info"`
	JSON  bool   `yaml:"json"`
}

// System settings.
type settingsProvider struct {
	logger    common.ILoggerProvider
	cron      providers.ICronProvider
	validator providers.IValidatorProvider
	fanOut    providers.IInternalFanOutProvider
	entries   providers.IEntryStore
	registry  *prometheus.Registry

	sSettings *providers.ServerSettings
	dSettings *providers.DeviceSettings
	qSettings *providers.MQTTSettings
}

// Load system configuration.
func Load(options *StartUpOptions) (providers.ISettingsProvider, error) {
	settings := &settingsProvider{
		logger:   logger.NewConsoleLogger(options.Verbose),
		registry: prometheus.NewRegistry(),
	}

	settings.validator = utils.NewValidator(settings.logger)

	fileData, err := os.ReadFile(options.Config)
	switch {
	case os.IsNotExist(err):
		settings.logger.Warn("Config file is not found, using the default settings",
			common.LogSystemToken, logSystem, common.LogFileToken, options.Config)
	case err != nil:
		return nil, errors.Wrap(err, "read config")
	default:
		tpl := newTemplateProvider(&constructTemplate{Logger: settings.logger})
		processed, err := tpl.Process(fileData)
		if err != nil {
			return nil, err
		}

		allProviders, err := settings.loadFile(processed)
		if err != nil {
			return nil, err
		}

		for _, v := range allProviders {
			if err := settings.parseProvider(v); err != nil {
				return nil, err
			}
		}
	}

	if err := settings.validate(); err != nil {
		return nil, err
	}

	settings.entries, err = storage.NewEntryStore(&storage.ConstructEntryStore{
		Location:  options.Entries,
		Logger:    settings.logger,
		Validator: settings.validator,
	})
	if err != nil {
		return nil, errors.Wrap(err, "load entries")
	}

	settings.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	settings.cron = utils.NewCron()
	settings.fanOut = fanout.NewFanOut()

	return settings, nil
}

// Validates whether all necessary settings are present.
func (s *settingsProvider) validate() error {
	if nil == s.sSettings {
		s.logger.Debug("Server settings are not defined, using the default ones",
			common.LogSystemToken, logSystem)
		s.sSettings = &providers.ServerSettings{}
	}

	if nil == s.dSettings {
		s.logger.Debug("Device settings are not defined, using the default ones",
			common.LogSystemToken, logSystem)
		s.dSettings = &providers.DeviceSettings{}
	}

	if nil == s.qSettings {
		s.qSettings = &providers.MQTTSettings{}
	}

	for _, v := range []interface{}{s.sSettings, s.dSettings, s.qSettings} {
		if !s.validator.Validate(v) {
			return errors.New("incorrect settings")
		}
	}

	return nil
}

// Processes yaml file with multiple records.
func (s *settingsProvider) loadFile(fileData []byte) ([]*rawProvider, error) {
	provs := make([]*rawProvider, 0)
	decoder := yaml.NewDecoder(bytes.NewReader(fileData))
	for {
		var value map[string]interface{}
		err := decoder.Decode(&value)
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, errors.Wrap(err, "parse config file")
		}

		if nil == value {
			continue
		}

		componentType := ""
		componentProvider := ""

		if cs, ok := value["system"].(string); ok {
			componentType = strings.ToLower(cs)
		}

		if ct, ok := value["provider"].(string); ok {
			componentProvider = strings.ToLower(ct)
		}

		if componentType == "" || componentProvider == "" {
			s.logger.Warn("Failed to parse a record in the config file: system or provider is not defined",
				common.LogSystemToken, logSystem)
			continue
		}

		byteData, err := yaml.Marshal(value)
		if err != nil {
			return nil, errors.Wrap(err, "marshal config record")
		}

		provs = append(provs, &rawProvider{
			Provider: componentProvider,
			System:   componentType,
			Config:   byteData,
		})
	}

	return provs, nil
}

// Processes single provider config.
func (s *settingsProvider) parseProvider(provider *rawProvider) error {
	s.logger.Debug("Processing config", common.LogProviderToken, provider.Provider,
		common.LogSystemToken, provider.System)

	sys, err := systems.SystemTypeString(provider.System)
	if err != nil {
		s.logger.Warn("Unknown provider's system", common.LogProviderToken, provider.Provider,
			common.LogSystemToken, provider.System)
		return nil
	}

	switch sys {
	case systems.SysGoHome:
		err = s.loadGoHomeDefinition(provider)
	case systems.SysLogger:
		err = s.loadLoggerProvider(provider)
	case systems.SysMQTT:
		err = s.loadMQTTDefinition(provider)
	}

	if err != nil {
		return errors.Wrapf(err, "%s/%s", provider.System, provider.Provider)
	}
	return nil
}

// Loads server or device configuration.
func (s *settingsProvider) loadGoHomeDefinition(provider *rawProvider) error {
	switch provider.Provider {
	case configGoHomeServer:
		set := &providers.ServerSettings{}
		if err := yaml.Unmarshal(provider.Config, set); err != nil {
			return err
		}
		s.sSettings = set
	case configGoHomeDevice:
		set := &providers.DeviceSettings{}
		if err := yaml.Unmarshal(provider.Config, set); err != nil {
			return err
		}
		s.dSettings = set
	default:
		s.logger.Warn("Unknown go-home record", common.LogProviderToken, provider.Provider,
			common.LogSystemToken, provider.System)
	}

	return nil
}

// Loads MQTT configuration.
// Record presence enables publisher unless it's explicitly disabled.
func (s *settingsProvider) loadMQTTDefinition(provider *rawProvider) error {
	set := &providers.MQTTSettings{Enabled: true}
	if err := yaml.Unmarshal(provider.Config, set); err != nil {
		return err
	}

	s.qSettings = set
	return nil
}

// Loads logger configuration.
func (s *settingsProvider) loadLoggerProvider(provider *rawProvider) error {
	set := &loggerSettings{}
	if err := yaml.Unmarshal(provider.Config, set); err != nil {
		return err
	}

	if !s.validator.Validate(set) {
		return errors.New("incorrect logger settings")
	}

	ctor := &logger.ConstructLogger{
		Level: set.Level,
		JSON:  set.JSON,
	}

	switch provider.Provider {
	case "console":
		s.logger = logger.NewConsoleLogger(strings.EqualFold(set.Level, "debug") ||
			strings.EqualFold(set.Level, "trace"))
	default:
		log, err := logger.NewLoggerProvider(ctor)
		if err != nil {
			return err
		}
		s.logger = log
	}

	s.validator.SetLogger(logger.NewDeviceLogger(&logger.ConstructDeviceLogger{
		SystemLogger: s.logger,
		System:       "validator",
		Device:       "go-home",
	}))

	return nil
}
