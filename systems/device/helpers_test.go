package device

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-home-io/viomise/mocks"
	"github.com/go-home-io/viomise/plugins/common"
	"github.com/go-home-io/viomise/providers"
	"github.com/go-home-io/viomise/systems/miio"
	"github.com/go-home-io/viomise/systems/viomi"
	"github.com/stretchr/testify/require"
)

const testToken = "00112233445566778899aabbccddeeff"

type validatorSetter interface {
	SetValidator(v providers.IValidatorProvider)
}

type cronFirer interface {
	Fire()
	Jobs() int
}

// Simulated vacuum answering get_prop with stored properties.
type testDevice struct {
	sync.Mutex
	props map[string]interface{}
	fail  bool
}

func newTestDevice() *testDevice {
	d := &testDevice{props: make(map[string]interface{})}
	for _, p := range viomi.AllProps {
		d.props[p] = float64(0)
	}
	d.props["run_state"] = float64(5)
	d.props["battary_life"] = float64(80)
	d.props["suction_grade"] = float64(1)
	return d
}

func (d *testDevice) handle(method string, _ interface{}) (interface{}, error) {
	d.Lock()
	defer d.Unlock()

	if d.fail {
		return nil, &miio.ErrDevice{Host: "test", Method: method, Err: errors.New("i/o timeout")}
	}

	if method == "get_prop" {
		out := make([]interface{}, 0, len(viomi.AllProps))
		for _, p := range viomi.AllProps {
			out = append(out, d.props[p])
		}
		return out, nil
	}

	return []interface{}{"ok"}, nil
}

// Test fixture with registry, fake settings and per-host fake clients.
type fixture struct {
	sync.Mutex
	registry *Registry
	settings providers.ISettingsProvider
	devices  map[string]*testDevice
	clients  map[string]*mocks.FakeMiioClient
	logs     []string
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		devices: make(map[string]*testDevice),
		clients: make(map[string]*mocks.FakeMiioClient),
	}

	settings := mocks.FakeNewSettings(func(msg string) {
		f.Lock()
		defer f.Unlock()
		f.logs = append(f.logs, msg)
	})
	f.settings = settings

	f.registry = NewRegistry(&ConstructRegistry{
		Settings: settings,
		Metrics:  viomi.NewMetrics(),
		NewClient: func(host, token string) (miio.IClient, error) {
			if token != testToken {
				return nil, errors.New("bad token")
			}

			f.Lock()
			defer f.Unlock()
			d := newTestDevice()
			c := mocks.FakeNewMiioClient(d.handle)
			f.devices[host] = d
			f.clients[host] = c
			return c, nil
		},
	})

	t.Cleanup(f.registry.Stop)
	return f
}

func (f *fixture) client(host string) *mocks.FakeMiioClient {
	f.Lock()
	defer f.Unlock()
	return f.clients[host]
}

func (f *fixture) device(host string) *testDevice {
	f.Lock()
	defer f.Unlock()
	return f.devices[host]
}

func (f *fixture) hasLog(msg string) bool {
	f.Lock()
	defer f.Unlock()
	for _, v := range f.logs {
		if v == msg {
			return true
		}
	}
	return false
}

func (f *fixture) cron() cronFirer {
	return f.settings.Cron().(cronFirer)
}

// Loads vacuum and waits for the initial refresh.
func (f *fixture) load(t *testing.T, host, uniqueID, name string) {
	require.NoError(t, f.registry.Load(&providers.Entry{
		UniqueID: uniqueID,
		Host:     host,
		Token:    testToken,
		Name:     name,
	}))

	f.updates(t, 2)
	f.client(host).Reset()
}

// Reads the given number of published updates.
func (f *fixture) updates(t *testing.T, count int) []*common.MsgDeviceUpdate {
	_, ch := f.settings.FanOut().SubscribeDeviceUpdates()
	result := make([]*common.MsgDeviceUpdate, 0, count)
	for len(result) < count {
		select {
		case msg := <-ch:
			result = append(result, msg)
		case <-time.After(2 * time.Second):
			t.Fatalf("expected %d updates, got %d", count, len(result))
		}
	}
	return result
}
