package utils

import (
	"net"
	"regexp"
	"strconv"
	"sync"

	"github.com/creasty/defaults"
	"github.com/go-home-io/viomise/plugins/common"
	"github.com/go-home-io/viomise/providers"
	"gopkg.in/go-playground/validator.v9"
)

var hostnameRegexp = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?)(\.[a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?)*$`)

// Validator implementation.
type validatorProvider struct {
	sync.Mutex
	validator *validator.Validate
	logger    common.ILoggerProvider
}

// NewValidator constructs a new validator.
func NewValidator(logger common.ILoggerProvider) providers.IValidatorProvider {
	val := &validatorProvider{
		logger: logger,
	}
	v := validator.New()
	loadNewValidator(v, logger, "percent", percent)
	loadNewValidator(v, logger, "port", port)
	loadNewValidator(v, logger, "host", host)

	val.validator = v
	return val
}

// SetLogger updates the logger.
// Since logger is loaded after first init, we need to re-assign it.
func (v *validatorProvider) SetLogger(logger common.ILoggerProvider) {
	v.logger = logger
}

// Validate sets defaults and performs validation of a struct.
func (v *validatorProvider) Validate(object interface{}) bool {
	v.Lock()
	defer v.Unlock()

	err := defaults.Set(object)

	if err != nil {
		v.logger.Error("Failed to set default field values", err)
		return false
	}

	err = v.validator.Struct(object)
	if err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			v.logger.Error("Failed to validate", err)
			return false
		}

		for _, e := range errs {
			v.logger.Warn("Validation error", common.LogFieldToken, e.Namespace())
		}

		return false
	}
	return true
}

// Percent type validation.
func percent(fl validator.FieldLevel) bool {
	return fl.Field().Uint() <= 100
}

// Port type validation.
func port(fl validator.FieldLevel) bool {
	return isPort(fl.Field().Int())
}

// Host type validation: IP address or hostname with an optional port.
func host(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	h, p, err := net.SplitHostPort(raw)
	if err == nil {
		port, err := strconv.Atoi(p)
		if err != nil || !isPort(int64(port)) {
			return false
		}
		raw = h
	}

	if raw == "" {
		return false
	}

	if net.ParseIP(raw) != nil {
		return true
	}

	return len(raw) <= 253 && hostnameRegexp.MatchString(raw)
}

// Validates whether value could be used as a port.
func isPort(val int64) bool {
	return val > 0 && val <= 65535
}

// Attempt to register a new validator
func loadNewValidator(validator *validator.Validate, logger common.ILoggerProvider,
	name string, function validator.Func) {
	if err := validator.RegisterValidation(name, function); err != nil {
		logger.Error("Failed to register validator type", err, "type", name)
	}
}
