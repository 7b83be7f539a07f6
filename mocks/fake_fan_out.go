//go:build !release
// +build !release

package mocks

import (
	"github.com/go-home-io/viomise/plugins/common"
	"github.com/go-home-io/viomise/providers"
)

type fakeFanOut struct {
	inDeviceUpdates chan *common.MsgDeviceUpdate
}

func (f *fakeFanOut) SubscribeDeviceUpdates() (int64, chan *common.MsgDeviceUpdate) {
	return 1, f.inDeviceUpdates
}

func (f *fakeFanOut) UnSubscribeDeviceUpdates(int64) {
}

func (f *fakeFanOut) Stop() {
}

func (f *fakeFanOut) ChannelInDeviceUpdates() chan *common.MsgDeviceUpdate {
	return f.inDeviceUpdates
}

// FakeNewFanOut creates a fake fan-out which loops published messages back to the subscriber.
func FakeNewFanOut() providers.IInternalFanOutProvider {
	return &fakeFanOut{
		inDeviceUpdates: make(chan *common.MsgDeviceUpdate, 100),
	}
}
