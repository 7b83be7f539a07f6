//go:build !release
// +build !release

package mocks

import (
	"context"
	"sync"

	"github.com/go-home-io/viomise/plugins/common"
	"github.com/go-home-io/viomise/providers"
)

// FakeServiceCall records a single service invocation.
type FakeServiceCall struct {
	Service string
	Data    map[string]interface{}
}

// FakeDeviceManager records loads and service invocations.
type FakeDeviceManager struct {
	sync.Mutex
	devices []*common.MsgDeviceUpdate
	loaded  []*providers.Entry
	calls   []FakeServiceCall
	err     error
}

// Load records entry.
func (m *FakeDeviceManager) Load(entry *providers.Entry) error {
	m.Lock()
	defer m.Unlock()
	m.loaded = append(m.loaded, entry)
	return nil
}

// Unload does nothing.
func (m *FakeDeviceManager) Unload(string) {
}

// Devices returns configured updates.
func (m *FakeDeviceManager) Devices() []*common.MsgDeviceUpdate {
	m.Lock()
	defer m.Unlock()
	return m.devices
}

// CallService records the call and returns configured error.
func (m *FakeDeviceManager) CallService(_ context.Context, service string, data map[string]interface{}) error {
	m.Lock()
	defer m.Unlock()
	m.calls = append(m.calls, FakeServiceCall{Service: service, Data: data})
	return m.err
}

// Stop does nothing.
func (m *FakeDeviceManager) Stop() {
}

// Calls returns recorded service calls.
func (m *FakeDeviceManager) Calls() []FakeServiceCall {
	m.Lock()
	defer m.Unlock()
	return append([]FakeServiceCall(nil), m.calls...)
}

// Loaded returns recorded entries.
func (m *FakeDeviceManager) Loaded() []*providers.Entry {
	m.Lock()
	defer m.Unlock()
	return append([]*providers.Entry(nil), m.loaded...)
}

// SetError sets error returned by service calls.
func (m *FakeDeviceManager) SetError(err error) {
	m.Lock()
	defer m.Unlock()
	m.err = err
}

// FakeNewDeviceManager creates a new fake device manager.
func FakeNewDeviceManager(devices ...*common.MsgDeviceUpdate) *FakeDeviceManager {
	return &FakeDeviceManager{devices: devices}
}
