// Package flow contains vacuum pairing flow.
package flow

import (
	"context"
	"encoding/json"

	"github.com/go-home-io/viomise/plugins/common"
	"github.com/go-home-io/viomise/providers"
	"github.com/go-home-io/viomise/systems/miio"
	"github.com/pkg/errors"
)

const (
	// StepUser is the only form step.
	StepUser = "user"

	errBaseCannotConnect = "cannot_connect"
	errBaseUnknown       = "unknown"
	errBaseInvalidInput  = "invalid_input"
	abortConfigured      = "already_configured"

	logSystem = "flow"
)

// ClientFactory opens a short-lived device client.
type ClientFactory func(host, token string) (miio.IClient, error)

// UserInput is the setup form.
type UserInput struct {
	Host  string `json:"host" validate:"required,host"`
	Token string `json:"token" validate:"required,len=32"`
	Name  string `json:"name" default:"Viomi SE"`
}

// Result describes validated device.
type Result struct {
	Title    string
	UniqueID string
}

// ConstructFlow has data required for a new flow.
type ConstructFlow struct {
	Logger    common.ILoggerProvider
	Validator providers.IValidatorProvider
	Entries   providers.IEntryStore
	NewClient ClientFactory
	OnCreate  func(*providers.Entry) error
}

// Flow validates user input against the device and registers new entries.
type Flow struct {
	ctor *ConstructFlow
}

// NewFlow constructs a new flow.
func NewFlow(ctor *ConstructFlow) *Flow {
	return &Flow{ctor: ctor}
}

// Schema returns setup form fields.
func Schema() []*providers.FlowField {
	return []*providers.FlowField{
		{Name: "host", Type: "string", Required: true},
		{Name: "token", Type: "string", Required: true},
		{Name: "name", Type: "string", Required: false, Default: "Viomi SE"},
	}
}

// ValidateAndRegister asks the device for its identity and stores a new entry.
func (f *Flow) ValidateAndRegister(ctx context.Context, input *UserInput) (*Result, error) {
	if input == nil || !f.ctor.Validator.Validate(input) {
		return nil, &ErrInvalidInput{}
	}

	res, err := f.validate(ctx, input)
	if err != nil {
		return nil, err
	}

	if _, ok := f.ctor.Entries.Get(res.UniqueID); ok {
		return nil, &ErrAlreadyConfigured{UniqueID: res.UniqueID}
	}

	entry := &providers.Entry{
		UniqueID: res.UniqueID,
		Host:     input.Host,
		Token:    input.Token,
		Name:     input.Name,
	}

	if err := f.ctor.Entries.Add(entry); err != nil {
		return nil, errors.Wrap(err, "store entry")
	}

	if f.ctor.OnCreate != nil {
		if err := f.ctor.OnCreate(entry); err != nil {
			if rmErr := f.ctor.Entries.Remove(entry.UniqueID); rmErr != nil {
				f.ctor.Logger.Error("Failed to remove entry", rmErr, common.LogSystemToken, logSystem,
					common.LogDeviceHostToken, entry.Host)
			}
			return nil, errors.Wrap(err, "load entry")
		}
	}

	f.ctor.Logger.Info("Registered new vacuum", common.LogSystemToken, logSystem,
		common.LogDeviceNameToken, entry.Name, common.LogDeviceHostToken, entry.Host)

	return res, nil
}

// Opens a client and requests device identity.
func (f *Flow) validate(ctx context.Context, input *UserInput) (*Result, error) {
	client, err := f.ctor.NewClient(input.Host, input.Token)
	if err != nil {
		return nil, errors.Wrap(err, "client")
	}

	info, err := client.Info(ctx)
	if err != nil {
		var devErr *miio.ErrDevice
		if errors.As(err, &devErr) {
			return nil, &ErrCannotConnect{Host: input.Host, Err: err}
		}
		return nil, errors.Wrap(err, "device info")
	}

	if info == nil || info.MacAddress == "" {
		return nil, errors.New("device didn't report its mac address")
	}

	return &Result{Title: input.Name, UniqueID: info.MacAddress}, nil
}

// StepUser runs the form step and reports its outcome.
func (f *Flow) StepUser(ctx context.Context, raw map[string]interface{}) *providers.FlowStep {
	if raw == nil {
		return formStep(nil)
	}

	input := &UserInput{}
	data, err := json.Marshal(raw)
	if err == nil {
		err = json.Unmarshal(data, input)
	}
	if err != nil {
		return formStep(map[string]string{"base": errBaseInvalidInput})
	}

	res, err := f.ValidateAndRegister(ctx, input)
	if err == nil {
		return &providers.FlowStep{
			Type:  providers.FlowCreateEntry,
			Title: res.Title,
			Entry: &providers.Entry{UniqueID: res.UniqueID, Host: input.Host, Name: input.Name},
		}
	}

	switch e := errors.Cause(err).(type) {
	case *ErrInvalidInput:
		return formStep(map[string]string{"base": errBaseInvalidInput})
	case *ErrCannotConnect:
		f.ctor.Logger.Warn("Cannot connect to the vacuum", common.LogSystemToken, logSystem,
			common.LogDeviceHostToken, e.Host, common.LogErrorToken, e.Err.Error())
		return formStep(map[string]string{"base": errBaseCannotConnect})
	case *ErrAlreadyConfigured:
		return &providers.FlowStep{Type: providers.FlowAbort, Reason: abortConfigured}
	}

	f.ctor.Logger.Error("Unexpected exception", err, common.LogSystemToken, logSystem,
		common.LogDeviceHostToken, input.Host)
	return formStep(map[string]string{"base": errBaseUnknown})
}

func formStep(errs map[string]string) *providers.FlowStep {
	if errs == nil {
		errs = map[string]string{}
	}

	return &providers.FlowStep{
		Type:   providers.FlowForm,
		StepID: StepUser,
		Schema: Schema(),
		Errors: errs,
	}
}
