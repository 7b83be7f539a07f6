//go:build !release
// +build !release

package mocks

import (
	"context"

	"github.com/go-home-io/viomise/providers"
)

type fakeFlow struct {
	step *providers.FlowStep
	err  error
	last map[string]interface{}
}

func (f *fakeFlow) Start() *providers.FlowStep {
	return &providers.FlowStep{FlowID: "flow", Type: providers.FlowForm, StepID: "user"}
}

func (f *fakeFlow) Configure(_ context.Context, flowID string, input map[string]interface{}) (*providers.FlowStep, error) {
	f.last = input
	if f.err != nil {
		return nil, f.err
	}

	step := *f.step
	step.FlowID = flowID
	return &step, nil
}

// LastInput returns the last submitted form.
func (f *fakeFlow) LastInput() map[string]interface{} {
	return f.last
}

// FakeNewFlow creates a fake flow provider answering every submission with the given step or error.
func FakeNewFlow(step *providers.FlowStep, err error) *fakeFlow {
	if step == nil {
		step = &providers.FlowStep{Type: providers.FlowForm, StepID: "user"}
	}
	return &fakeFlow{step: step, err: err}
}
