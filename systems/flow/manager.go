package flow

import (
	"context"
	"sync"
	"time"

	"github.com/go-home-io/viomise/plugins/common"
	"github.com/go-home-io/viomise/providers"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionTTL is how long an unfinished flow is kept.
const SessionTTL = 10 * time.Minute

// Manager keeps setup flow sessions.
type Manager struct {
	sync.Mutex

	flow     *Flow
	logger   common.ILoggerProvider
	sessions *cache.Cache
}

// NewManager constructs a new flow sessions manager.
func NewManager(flow *Flow, logger common.ILoggerProvider) providers.IFlowProvider {
	return &Manager{
		flow:     flow,
		logger:   logger,
		sessions: cache.New(SessionTTL, 2*SessionTTL),
	}
}

// Start opens a new flow session and returns the form.
func (m *Manager) Start() *providers.FlowStep {
	id := uuid.New().String()
	m.sessions.Set(id, struct{}{}, cache.DefaultExpiration)

	step := formStep(nil)
	step.FlowID = id

	m.logger.Debug("Started setup flow", common.LogSystemToken, logSystem, common.LogFlowToken, id)
	return step
}

// Configure submits the form of an existing session.
// Session is kept while the form has to be re-submitted.
func (m *Manager) Configure(ctx context.Context, flowID string, input map[string]interface{}) (*providers.FlowStep, error) {
	m.Lock()
	defer m.Unlock()

	if _, ok := m.sessions.Get(flowID); !ok {
		return nil, &ErrUnknownFlow{ID: flowID}
	}

	step := m.flow.StepUser(ctx, input)
	step.FlowID = flowID

	if step.Type == providers.FlowForm {
		m.sessions.Set(flowID, struct{}{}, cache.DefaultExpiration)
	} else {
		m.sessions.Delete(flowID)
	}

	m.logger.Debug("Setup flow step", common.LogSystemToken, logSystem, common.LogFlowToken, flowID,
		"step_type", string(step.Type))
	return step, nil
}
