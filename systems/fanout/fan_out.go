// Package fanout contains implementation of pub-sub fanout channels.
package fanout

import (
	"math/rand"
	"sync"

	"github.com/go-home-io/viomise/plugins/common"
	"github.com/go-home-io/viomise/providers"
	"github.com/go-home-io/viomise/utils"
)

const subscriberBuffer = 50

// Implements IInternalFanOutProvider.
type provider struct {
	device sync.Mutex

	inDeviceUpdates  chan *common.MsgDeviceUpdate
	outDeviceUpdates map[int64]chan *common.MsgDeviceUpdate

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewFanOut constructs new FanOut provider.
func NewFanOut() providers.IInternalFanOutProvider {
	p := &provider{
		inDeviceUpdates:  make(chan *common.MsgDeviceUpdate, 10),
		outDeviceUpdates: make(map[int64]chan *common.MsgDeviceUpdate),
		done:             make(chan struct{}),
	}

	p.wg.Add(1)
	go p.internalCycle()
	return p
}

// SubscribeDeviceUpdates allows to subscribe to the devices updates.
func (p *provider) SubscribeDeviceUpdates() (int64, chan *common.MsgDeviceUpdate) {
	p.device.Lock()
	defer p.device.Unlock()

	c := make(chan *common.MsgDeviceUpdate, subscriberBuffer)
	rnd := p.getID()
	for {
		if _, ok := p.outDeviceUpdates[rnd]; !ok {
			break
		}
		rnd = p.getID()
	}

	p.outDeviceUpdates[rnd] = c
	return rnd, c
}

// UnSubscribeDeviceUpdates allows to un-subscribe from the device updates.
func (p *provider) UnSubscribeDeviceUpdates(id int64) {
	p.device.Lock()
	defer p.device.Unlock()

	c, ok := p.outDeviceUpdates[id]
	if !ok {
		return
	}

	close(c)
	delete(p.outDeviceUpdates, id)
}

// ChannelInDeviceUpdates returns input channel for the device updates.
func (p *provider) ChannelInDeviceUpdates() chan *common.MsgDeviceUpdate {
	return p.inDeviceUpdates
}

// Stop terminates broadcasting and closes all subscribers.
func (p *provider) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
		p.wg.Wait()

		p.device.Lock()
		defer p.device.Unlock()
		for k, v := range p.outDeviceUpdates {
			close(v)
			delete(p.outDeviceUpdates, k)
		}
	})
}

// Returns random ID.
func (p *provider) getID() int64 {
	return utils.TimeNow() + rand.Int63()
}

func (p *provider) internalCycle() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case u := <-p.inDeviceUpdates:
			p.deviceUpdates(u)
		}
	}
}

// Broadcasts device updates in the order they were received.
// Subscribers which can't keep up miss the update.
func (p *provider) deviceUpdates(update *common.MsgDeviceUpdate) {
	p.device.Lock()
	defer p.device.Unlock()

	for _, v := range p.outDeviceUpdates {
		select {
		case v <- update:
		default:
		}
	}
}
