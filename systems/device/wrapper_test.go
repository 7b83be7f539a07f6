package device

import (
	"context"
	"testing"
	"time"

	"github.com/go-home-io/viomise/mocks"
	"github.com/go-home-io/viomise/plugins/device"
	"github.com/go-home-io/viomise/plugins/device/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Vacuum with custom spec, other methods are never called.
type specVacuum struct {
	device.IVacuum
	spec *device.Spec
}

func (v *specVacuum) GetID() string                              { return "vacuum.test" }
func (v *specVacuum) GetName() string                            { return "Test" }
func (v *specVacuum) GetSpec() *device.Spec                      { return v.spec }
func (v *specVacuum) State() *device.VacuumState                 { return &device.VacuumState{} }
func (v *specVacuum) Update(context.Context) *device.VacuumState { return v.State() }
func (v *specVacuum) Unload()                                    {}

type testSensor struct{}

func (s *testSensor) GetID() string              { return "sensor.test_battery" }
func (s *testSensor) GetName() string            { return "Test Battery" }
func (s *testSensor) GetSpec() *device.Spec      { return &device.Spec{} }
func (s *testSensor) Unload()                    {}
func (s *testSensor) Available() bool            { return false }
func (s *testSensor) State() *device.SensorState { return &device.SensorState{Unit: "%"} }

func newSpecWrapper(spec *device.Spec, logs *[]string) *vacuumWrapper {
	return newVacuumWrapper(&wrapperConstruct{
		Vacuum:  &specVacuum{spec: spec},
		Battery: &testSensor{},
		Logger: mocks.FakeNewLogger(func(s string) {
			*logs = append(*logs, s)
		}),
		Cron:    mocks.FakeNewCron(),
		FanOut:  mocks.FakeNewFanOut(),
		Timeout: time.Second,
	})
}

// Tests spec validation.
func TestValidateDeviceSpec(t *testing.T) {
	logs := make([]string, 0)
	w := newSpecWrapper(&device.Spec{
		SupportedCommands: []enums.Command{enums.CmdStart, enums.CmdUnknown, enums.CmdLocate},
	}, &logs)

	assert.Equal(t, []string{"start", "locate"}, w.Commands())
	assert.Contains(t, logs, "Device claimed restricted command")
	assert.True(t, w.supports(enums.CmdLocate))
	assert.False(t, w.supports(enums.CmdStop))
	assert.False(t, w.isPolling)
}

// Tests wrapper without spec.
func TestNilSpec(t *testing.T) {
	logs := make([]string, 0)
	w := newSpecWrapper(nil, &logs)
	assert.Empty(t, w.Commands())

	w.pullUpdate()
	msgs := w.GetUpdateMessages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "vacuum.test", msgs[0].ID)
	assert.Equal(t, "sensor.test_battery", msgs[1].ID)
	assert.False(t, msgs[0].FirstSeen)
}

// Tests polling schedule.
func TestWrapperSchedule(t *testing.T) {
	logs := make([]string, 0)
	w := newSpecWrapper(&device.Spec{UpdatePeriod: 3 * time.Second}, &logs)
	assert.True(t, w.isPolling)
	assert.Equal(t, 1, w.Ctor.Cron.(cronFirer).Jobs())

	w.Ctor.Cron.(cronFirer).Fire()
	select {
	case msg := <-w.Ctor.FanOut.ChannelInDeviceUpdates():
		assert.Equal(t, "vacuum.test", msg.ID)
		assert.True(t, msg.FirstSeen)
	case <-time.After(time.Second):
		t.Fatal("update wasn't published")
	}

	w.Unload()
	assert.Equal(t, 0, w.Ctor.Cron.(cronFirer).Jobs())
}

// Tests that unloaded wrapper never blocks on publishing.
func TestPublishAfterUnload(t *testing.T) {
	logs := make([]string, 0)
	w := newSpecWrapper(&device.Spec{}, &logs)
	for ii := 0; ii < cap(w.Ctor.FanOut.ChannelInDeviceUpdates()); ii++ {
		w.Ctor.FanOut.ChannelInDeviceUpdates() <- nil
	}
	w.Unload()

	done := make(chan struct{})
	go func() {
		w.Refresh(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresh blocked")
	}
}

// Tests state conversion.
func TestStateToMap(t *testing.T) {
	level := 42
	m := stateToMap(&device.SensorState{
		Value:      &level,
		Unit:       "%",
		Available:  true,
		Attributes: map[string]interface{}{"is_charging": true},
	})

	assert.Equal(t, 42, m["value"])
	assert.Equal(t, "%", m["unit_of_measurement"])
	assert.Equal(t, true, m["available"])
	assert.NotContains(t, m, "device_class")
	assert.True(t, isAvailable(m))

	m = stateToMap(&device.VacuumState{VacStatus: enums.VacCleaning, FanSpeed: "Turbo"})
	assert.Equal(t, enums.VacCleaning, m["vac_status"])
	assert.Equal(t, "Turbo", m["fan_speed"])
	assert.NotContains(t, m, "battery_level")
	assert.NotContains(t, m, "fan_speed_list")
	assert.False(t, isAvailable(m))
}
