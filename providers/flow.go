package providers

import "context"

// FlowStepType describes setup flow step outcome.
type FlowStepType string

const (
	// FlowForm asks user to (re)submit the form.
	FlowForm FlowStepType = "form"
	// FlowAbort terminates the flow.
	FlowAbort FlowStepType = "abort"
	// FlowCreateEntry reports successfully created entry.
	FlowCreateEntry FlowStepType = "create_entry"
)

// IFlowProvider defines setup flow sessions logic.
type IFlowProvider interface {
	Start() *FlowStep
	Configure(ctx context.Context, flowID string, input map[string]interface{}) (*FlowStep, error)
}

// FlowStep is a setup flow step result.
type FlowStep struct {
	FlowID string            `json:"flow_id"`
	Type   FlowStepType      `json:"type"`
	StepID string            `json:"step_id,omitempty"`
	Schema []*FlowField      `json:"data_schema,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
	Reason string            `json:"reason,omitempty"`
	Title  string            `json:"title,omitempty"`
	Entry  *Entry            `json:"result,omitempty"`
}

// FlowField describes a single form field.
type FlowField struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
	Default  string `json:"default,omitempty"`
}
