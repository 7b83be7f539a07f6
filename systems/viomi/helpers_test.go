package viomi

import (
	"errors"
	"sync"
	"time"

	"github.com/go-home-io/viomise/mocks"
	"github.com/go-home-io/viomise/systems/miio"
)

var errOffline = &miio.ErrDevice{Host: "192.168.1.10", Method: "test", Err: errors.New("i/o timeout")}

// Simulated device which keeps properties and applies set_mop.
type fakeDevice struct {
	sync.Mutex
	props      map[string]interface{}
	applyMop   bool
	failMethod map[string]bool
}

func newFakeDevice(props map[string]interface{}) *fakeDevice {
	d := &fakeDevice{
		props:      make(map[string]interface{}),
		applyMop:   true,
		failMethod: make(map[string]bool),
	}
	for _, p := range AllProps {
		d.props[p] = float64(0)
	}
	for k, v := range props {
		d.props[k] = v
	}
	return d
}

func (d *fakeDevice) set(prop string, val interface{}) {
	d.Lock()
	defer d.Unlock()
	d.props[prop] = val
}

func (d *fakeDevice) fail(method string) {
	d.Lock()
	defer d.Unlock()
	d.failMethod[method] = true
}

func (d *fakeDevice) handle(method string, params interface{}) (interface{}, error) {
	d.Lock()
	defer d.Unlock()

	if d.failMethod[method] {
		return nil, errOffline
	}

	switch method {
	case "get_prop":
		out := make([]interface{}, 0, len(AllProps))
		for _, p := range AllProps {
			out = append(out, d.props[p])
		}
		return out, nil
	case "set_mop":
		if d.applyMop {
			d.props[propIsMop] = params.([]interface{})[0]
		}
	}

	return []interface{}{"ok"}, nil
}

func newTestVacuum(d *fakeDevice) (*Vacuum, *mocks.FakeMiioClient) {
	client := mocks.FakeNewMiioClient(d.handle)
	v := NewVacuum(&ConstructVacuum{
		Name:         "Viomi SE",
		Host:         "192.168.1.10",
		UniqueID:     "28:6c:07:aa:bb:cc",
		Client:       client,
		Logger:       mocks.FakeNewLogger(nil),
		Metrics:      NewMetrics(),
		UpdatePeriod: 30 * time.Second,
	})
	return v, client
}
