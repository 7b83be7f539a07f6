package viomi

import (
	"context"
	"testing"

	"github.com/go-home-io/viomise/mocks"
	"github.com/go-home-io/viomise/plugins/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Prepares vacuum with fetched state and forgets get_prop calls.
func readyVacuum(t *testing.T, props map[string]interface{}) (*Vacuum, *fakeDevice, *mocks.FakeMiioClient) {
	d := newFakeDevice(props)
	v, client := newTestVacuum(d)
	require.True(t, v.Update(context.Background()).Available)
	client.Reset()
	return v, d, client
}

func assertCalls(t *testing.T, client *mocks.FakeMiioClient, want []mocks.FakeMiioCall) {
	if diff := cmp.Diff(want, client.Calls()); diff != "" {
		t.Errorf("unexpected device calls (-want +got):\n%s", diff)
	}
}

// Tests start and pause decision table.
func TestStartPause(t *testing.T) {
	data := []struct {
		mode        float64
		isMop       float64
		method      string
		startParams []interface{}
		pauseParams []interface{}
	}{
		{mode: 3, isMop: 0, method: "set_mode",
			startParams: []interface{}{3, 1}, pauseParams: []interface{}{3, 3}},
		{mode: 2, isMop: 0, method: "set_mode_withroom",
			startParams: []interface{}{2, 1, 0}, pauseParams: []interface{}{2, 3, 0}},
		{mode: 0, isMop: 2, method: "set_mode_withroom",
			startParams: []interface{}{3, 1, 0}, pauseParams: []interface{}{3, 3, 0}},
		{mode: 0, isMop: 1, method: "set_mode_withroom",
			startParams: []interface{}{1, 1, 0}, pauseParams: []interface{}{1, 3, 0}},
		{mode: 1, isMop: 0, method: "set_mode_withroom",
			startParams: []interface{}{0, 1, 0}, pauseParams: []interface{}{0, 3, 0}},
		{mode: 4, isMop: 2, method: "set_mode_withroom",
			startParams: []interface{}{3, 1, 0}, pauseParams: []interface{}{3, 3, 0}},
	}

	for _, v := range data {
		vac, _, client := readyVacuum(t, map[string]interface{}{propMode: v.mode, propIsMop: v.isMop})

		assert.True(t, vac.Start(context.Background()))
		assert.True(t, vac.Pause(context.Background()))
		assertCalls(t, client, []mocks.FakeMiioCall{
			{Method: v.method, Params: v.startParams},
			{Method: v.method, Params: v.pauseParams},
		})
	}
}

// Tests point-clean resume.
func TestStartPausePointClean(t *testing.T) {
	vac, d, client := readyVacuum(t, nil)

	assert.True(t, vac.CleanPoint(context.Background(), common.Point{X: 3.5, Y: 2.0}))
	d.set(propMode, float64(4))
	vac.Update(context.Background())
	client.Reset()

	assert.True(t, vac.Start(context.Background()))
	assert.True(t, vac.Pause(context.Background()))
	assertCalls(t, client, []mocks.FakeMiioCall{
		{Method: "set_pointclean", Params: []interface{}{1, 3.5, 2.0}},
		{Method: "set_pointclean", Params: []interface{}{3, 3.5, 2.0}},
	})
}

// Tests stop decision table.
func TestStop(t *testing.T) {
	data := []struct {
		mode   float64
		method string
		params []interface{}
	}{
		{mode: 3, method: "set_mode", params: []interface{}{3, 0}},
		{mode: 4, method: "set_pointclean", params: []interface{}{0, 0, 0}},
		{mode: 0, method: "set_mode", params: []interface{}{0}},
		{mode: 2, method: "set_mode", params: []interface{}{0}},
	}

	for _, v := range data {
		vac, _, client := readyVacuum(t, map[string]interface{}{propMode: v.mode})
		vac.Goto(context.Background(), 1, 2)
		client.Reset()

		assert.True(t, vac.Stop(context.Background()))
		assertCalls(t, client, []mocks.FakeMiioCall{{Method: v.method, Params: v.params}})

		if v.mode == modePointClean {
			assert.Nil(t, vac.LastCleanPoint())
		} else {
			assert.Equal(t, &common.Point{X: 1, Y: 2}, vac.LastCleanPoint())
		}
	}
}

// Tests that mode dependent commands are refused without state.
func TestCommandsWithoutState(t *testing.T) {
	v, client := newTestVacuum(newFakeDevice(nil))

	assert.False(t, v.Start(context.Background()))
	assert.False(t, v.Pause(context.Background()))
	assert.False(t, v.Stop(context.Background()))
	assert.Empty(t, client.Calls())

	assert.True(t, v.Locate(context.Background()))
	assert.Len(t, client.Calls(), 1)
}

// Tests fan speed command.
func TestSetFanSpeed(t *testing.T) {
	data := map[string]int{
		"Silent":   0,
		"standard": 1,
		"MEDIUM":   2,
		"turbo":    3,
		"5":        5,
		" 7 ":      7,
	}

	for in, out := range data {
		vac, _, client := readyVacuum(t, nil)
		assert.True(t, vac.SetFanSpeed(context.Background(), in), in)
		assertCalls(t, client, []mocks.FakeMiioCall{{Method: "set_suction", Params: []interface{}{out}}})
	}

	for _, in := range []string{"max", "", "1.5"} {
		var logged string
		vac := NewVacuum(&ConstructVacuum{Host: "10.0.0.1", Client: mocks.FakeNewMiioClient(nil),
			Logger: mocks.FakeNewLogger(func(msg string) { logged = msg })})
		assert.False(t, vac.SetFanSpeed(context.Background(), in), in)
		assert.Equal(t, "Fan speed step not recognized", logged, in)
	}
}

// Tests simple commands.
func TestSimpleCommands(t *testing.T) {
	vac, _, client := readyVacuum(t, nil)

	assert.True(t, vac.ReturnToBase(context.Background()))
	assert.True(t, vac.Locate(context.Background()))
	assertCalls(t, client, []mocks.FakeMiioCall{
		{Method: "set_charge", Params: []interface{}{1}},
		{Method: "set_resetpos", Params: []interface{}{1}},
	})
}

// Tests that device errors are logged and converted.
func TestCommandFailure(t *testing.T) {
	d := newFakeDevice(nil)
	d.fail("set_charge")
	var logged []string
	client := mocks.FakeNewMiioClient(d.handle)
	vac := NewVacuum(&ConstructVacuum{Host: "10.0.0.1", Client: client,
		Logger: mocks.FakeNewLogger(func(msg string) { logged = append(logged, msg) })})

	assert.False(t, vac.ReturnToBase(context.Background()))
	assert.Contains(t, logged, "Unable to return home")
}

// Tests raw command params normalization.
func TestSendCommand(t *testing.T) {
	data := []struct {
		in  []interface{}
		out interface{}
	}{
		{in: nil, out: nil},
		{in: []interface{}{}, out: []interface{}{}},
		{in: []interface{}{"[1, 2]"}, out: []interface{}{1, 2}},
		{in: []interface{}{"[1, 2.5, -3]"}, out: []interface{}{1, 2.5, -3}},
		{in: []interface{}{"[1, [2.5, 'a']]"}, out: []interface{}{"[1, [2.5, 'a']]"}},
		{in: []interface{}{"5"}, out: []interface{}{5}},
		{in: []interface{}{"-5"}, out: []interface{}{"-5"}},
		{in: []interface{}{"abc"}, out: []interface{}{"abc"}},
		{in: []interface{}{"[1,"}, out: []interface{}{"[1,"}},
		{in: []interface{}{"__import__('os') ]["}, out: []interface{}{"__import__('os') ]["}},
		{in: []interface{}{"1", "2"}, out: []interface{}{"1", "2"}},
		{in: []interface{}{float64(3)}, out: []interface{}{float64(3)}},
	}

	for _, v := range data {
		vac, _, client := readyVacuum(t, nil)
		assert.True(t, vac.SendCommand(context.Background(), "app_test", v.in))
		assertCalls(t, client, []mocks.FakeMiioCall{{Method: "app_test", Params: v.out}})
	}
}
