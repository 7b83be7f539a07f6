package mqtt

import (
	"errors"
	"sync"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/fortytw2/leaktest"
	"github.com/go-home-io/viomise/mocks"
	"github.com/go-home-io/viomise/plugins/common"
	"github.com/go-home-io/viomise/plugins/device/enums"
	"github.com/go-home-io/viomise/systems/fanout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeToken struct {
	paho.Token
	err error
}

func (t *fakeToken) Wait() bool {
	return true
}

func (t *fakeToken) WaitTimeout(time.Duration) bool {
	return true
}

func (t *fakeToken) Error() error {
	return t.err
}

type published struct {
	topic    string
	retained bool
	payload  string
}

type fakeClient struct {
	paho.Client
	sync.Mutex

	connectErr   error
	connected    bool
	disconnected bool
	messages     []published
	notify       chan struct{}
}

func (c *fakeClient) Connect() paho.Token {
	c.Lock()
	defer c.Unlock()
	c.connected = c.connectErr == nil
	return &fakeToken{err: c.connectErr}
}

func (c *fakeClient) IsConnected() bool {
	c.Lock()
	defer c.Unlock()
	return c.connected
}

func (c *fakeClient) Disconnect(uint) {
	c.Lock()
	defer c.Unlock()
	c.connected = false
	c.disconnected = true
}

func (c *fakeClient) Publish(topic string, _ byte, retained bool, payload interface{}) paho.Token {
	c.Lock()
	c.messages = append(c.messages, published{topic: topic, retained: retained, payload: string(payload.([]byte))})
	c.Unlock()

	select {
	case c.notify <- struct{}{}:
	default:
	}
	return &fakeToken{}
}

func (c *fakeClient) published() []published {
	c.Lock()
	defer c.Unlock()
	return append([]published(nil), c.messages...)
}

func newFakeClient(err error) *fakeClient {
	return &fakeClient{connectErr: err, notify: make(chan struct{}, 10)}
}

// Tests state mirroring.
func TestPublishState(t *testing.T) {
	defer leaktest.CheckTimeout(t, 2*time.Second)()

	settings := mocks.FakeNewSettings(nil)
	client := newFakeClient(nil)
	p := NewPublisher(&ConstructPublisher{Settings: settings, Client: client})
	require.NoError(t, p.Start())

	settings.FanOut().ChannelInDeviceUpdates() <- &common.MsgDeviceUpdate{
		ID:        "vacuum.viomi_se",
		Type:      enums.DevVacuum,
		Available: true,
		State:     map[string]interface{}{"battery_level": 80},
	}

	for i := 0; i < 2; i++ {
		select {
		case <-client.notify:
		case <-time.After(2 * time.Second):
			t.Fatal("update was not published")
		}
	}

	p.Stop()

	msgs := client.published()
	require.Len(t, msgs, 3)
	assert.Equal(t, published{topic: "viomise/vacuum.viomi_se/state", retained: true,
		payload: `{"battery_level":80}`}, msgs[0])
	assert.Equal(t, published{topic: "viomise/vacuum.viomi_se/availability", retained: true,
		payload: "online"}, msgs[1])
	assert.Equal(t, published{topic: "viomise/status", retained: true, payload: "offline"}, msgs[2])
	assert.True(t, client.disconnected)
}

// Tests unavailable entity.
func TestPublishUnavailable(t *testing.T) {
	p := NewPublisher(&ConstructPublisher{Settings: mocks.FakeNewSettings(nil), Client: newFakeClient(nil)})
	p.processUpdate(&common.MsgDeviceUpdate{ID: "sensor.viomi_se_battery"})

	msgs := p.client.(*fakeClient).published()
	require.Len(t, msgs, 2)
	assert.Equal(t, "null", msgs[0].payload)
	assert.Equal(t, "offline", msgs[1].payload)
}

// Tests connection failure.
func TestConnectError(t *testing.T) {
	client := newFakeClient(errors.New("refused"))
	p := NewPublisher(&ConstructPublisher{Settings: mocks.FakeNewSettings(nil), Client: client})
	assert.Error(t, p.Start())

	p.Stop()
	assert.Empty(t, client.published())
}

// Tests subscription with the real fan-out.
func TestStopUnsubscribes(t *testing.T) {
	settings := mocks.FakeNewSettings(nil)
	fo := fanout.NewFanOut()
	defer fo.Stop()

	p := NewPublisher(&ConstructPublisher{Settings: settings, Client: newFakeClient(nil)})
	p.fanOut = fo
	require.NoError(t, p.Start())
	p.Stop()

	fo.ChannelInDeviceUpdates() <- &common.MsgDeviceUpdate{ID: "vacuum.viomi_se"}
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, p.client.(*fakeClient).published(), 1)
}
