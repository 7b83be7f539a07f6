//go:build !release
// +build !release

package mocks

import (
	"context"
	"sync"

	"github.com/go-home-io/viomise/systems/miio"
)

// FakeMiioCall is a recorded device call.
type FakeMiioCall struct {
	Method string
	Params interface{}
}

// FakeMiioClient records device calls and answers them with a handler.
type FakeMiioClient struct {
	sync.Mutex
	calls   []FakeMiioCall
	handler func(method string, params interface{}) (interface{}, error)
	info    *miio.DeviceInfo
	infoErr error
}

func (c *FakeMiioClient) RawCommand(_ context.Context, method string, params interface{}) (interface{}, error) {
	c.Lock()
	c.calls = append(c.calls, FakeMiioCall{Method: method, Params: params})
	handler := c.handler
	c.Unlock()

	if handler == nil {
		return []interface{}{"ok"}, nil
	}
	return handler(method, params)
}

func (c *FakeMiioClient) Info(context.Context) (*miio.DeviceInfo, error) {
	c.Lock()
	defer c.Unlock()
	return c.info, c.infoErr
}

// SetInfo sets miIO.info response.
func (c *FakeMiioClient) SetInfo(info *miio.DeviceInfo, err error) {
	c.Lock()
	defer c.Unlock()
	c.info = info
	c.infoErr = err
}

// SetHandler replaces raw command handler.
func (c *FakeMiioClient) SetHandler(handler func(method string, params interface{}) (interface{}, error)) {
	c.Lock()
	defer c.Unlock()
	c.handler = handler
}

// Calls returns all recorded calls.
func (c *FakeMiioClient) Calls() []FakeMiioCall {
	c.Lock()
	defer c.Unlock()
	out := make([]FakeMiioCall, len(c.calls))
	copy(out, c.calls)
	return out
}

// CallsExcept returns recorded calls skipping the given methods.
func (c *FakeMiioClient) CallsExcept(methods ...string) []FakeMiioCall {
	out := make([]FakeMiioCall, 0)
	for _, v := range c.Calls() {
		skip := false
		for _, m := range methods {
			if v.Method == m {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, v)
		}
	}
	return out
}

// Reset forgets recorded calls.
func (c *FakeMiioClient) Reset() {
	c.Lock()
	defer c.Unlock()
	c.calls = nil
}

// FakeNewMiioClient creates a fake device client.
func FakeNewMiioClient(handler func(method string, params interface{}) (interface{}, error)) *FakeMiioClient {
	return &FakeMiioClient{
		handler: handler,
	}
}
