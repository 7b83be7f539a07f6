package device

import (
	"context"
	"testing"

	"github.com/go-home-io/viomise/mocks"
	"github.com/go-home-io/viomise/utils"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests commands issued by services.
func TestCallService(t *testing.T) {
	data := []struct {
		service string
		data    map[string]interface{}
		calls   []mocks.FakeMiioCall
	}{
		{
			service: "locate",
			calls:   []mocks.FakeMiioCall{{Method: "set_resetpos", Params: []interface{}{1}}},
		},
		{
			service: "return_to_base",
			calls:   []mocks.FakeMiioCall{{Method: "set_charge", Params: []interface{}{1}}},
		},
		{
			service: "stop",
			calls:   []mocks.FakeMiioCall{{Method: "set_mode", Params: []interface{}{0}}},
		},
		{
			service: "start",
			calls:   []mocks.FakeMiioCall{{Method: "set_mode_withroom", Params: []interface{}{0, 1, 0}}},
		},
		{
			service: "set_fan_speed",
			data:    map[string]interface{}{"fan_speed": "Turbo"},
			calls:   []mocks.FakeMiioCall{{Method: "set_suction", Params: []interface{}{3}}},
		},
		{
			service: "set_fan_speed",
			data:    map[string]interface{}{"fan_speed": float64(2)},
			calls:   []mocks.FakeMiioCall{{Method: "set_suction", Params: []interface{}{2}}},
		},
		{
			service: "vacuum_clean_zone",
			data: map[string]interface{}{
				"zone":    []interface{}{[]interface{}{float64(1), float64(2), float64(3), float64(4)}},
				"repeats": float64(1),
			},
			calls: []mocks.FakeMiioCall{
				{Method: "set_uploadmap", Params: []interface{}{1}},
				{Method: "set_zone", Params: []interface{}{1, "0_0_1.0_4.0_1.0_2.0_3.0_2.0_3.0_4.0"}},
				{Method: "set_mode", Params: []interface{}{3, 1}},
			},
		},
		{
			service: "xiaomi_clean_zone",
			data: map[string]interface{}{
				"zone": []interface{}{[]interface{}{"1", "2", "3", "4.5"}},
			},
			calls: []mocks.FakeMiioCall{
				{Method: "set_uploadmap", Params: []interface{}{1}},
				{Method: "set_zone", Params: []interface{}{1, "0_0_1.0_4.5_1.0_2.0_3.0_2.0_3.0_4.5"}},
				{Method: "set_mode", Params: []interface{}{3, 1}},
			},
		},
		{
			service: "vacuum_goto",
			data:    map[string]interface{}{"x_coord": "25.5", "y_coord": float64(30)},
			calls: []mocks.FakeMiioCall{
				{Method: "set_uploadmap", Params: []interface{}{0}},
				{Method: "set_pointclean", Params: []interface{}{1, 25.5, float64(30)}},
			},
		},
		{
			service: "vacuum_clean_segment",
			data:    map[string]interface{}{"segments": float64(11)},
			calls: []mocks.FakeMiioCall{
				{Method: "set_uploadmap", Params: []interface{}{1}},
				{Method: "set_mode_withroom", Params: []interface{}{0, 1, 1, 11}},
			},
		},
		{
			service: "vacuum_clean_segment",
			data:    map[string]interface{}{"segments": []interface{}{float64(11), "12"}},
			calls: []mocks.FakeMiioCall{
				{Method: "set_uploadmap", Params: []interface{}{1}},
				{Method: "set_mode_withroom", Params: []interface{}{0, 1, 2, 11, 12}},
			},
		},
		{
			service: "xiaomi_clean_point",
			data:    map[string]interface{}{"point": []interface{}{float64(1), float64(-2)}},
			calls: []mocks.FakeMiioCall{
				{Method: "set_uploadmap", Params: []interface{}{0}},
				{Method: "set_pointclean", Params: []interface{}{1, float64(1), float64(-2)}},
			},
		},
		{
			service: "send_command",
			data:    map[string]interface{}{"command": "set_light", "params": "[1, 'on']"},
			calls:   []mocks.FakeMiioCall{{Method: "set_light", Params: []interface{}{1, "on"}}},
		},
		{
			service: "send_command",
			data:    map[string]interface{}{"command": "set_volume", "params": []interface{}{"42"}},
			calls:   []mocks.FakeMiioCall{{Method: "set_volume", Params: []interface{}{42}}},
		},
		{
			service: "send_command",
			data:    map[string]interface{}{"command": "get_status"},
			calls:   []mocks.FakeMiioCall{{Method: "get_status", Params: nil}},
		},
	}

	for _, v := range data {
		t.Run(v.service, func(t *testing.T) {
			f := newFixture(t)
			f.load(t, "192.168.1.10", "28:6c:07:aa:bb:cc", "Viomi SE")

			require.NoError(t, f.registry.CallService(context.Background(), v.service, v.data))

			calls := f.client("192.168.1.10").CallsExcept("get_prop", "set_mop")
			if diff := cmp.Diff(v.calls, calls); diff != "" {
				t.Errorf("unexpected device calls (-want +got):\n%s", diff)
			}
		})
	}
}

// Tests refresh after service call.
func TestCallServiceRefresh(t *testing.T) {
	f := newFixture(t)
	f.load(t, "192.168.1.10", "28:6c:07:aa:bb:cc", "Viomi SE")
	f.load(t, "192.168.1.11", "28:6c:07:aa:bb:dd", "Upstairs")

	require.NoError(t, f.registry.CallService(context.Background(), "locate", nil))
	msgs := f.updates(t, 4)
	assert.Len(t, msgs, 4)

	for _, host := range []string{"192.168.1.10", "192.168.1.11"} {
		calls := f.client(host).Calls()
		require.Len(t, calls, 2, host)
		assert.Equal(t, "set_resetpos", calls[0].Method)
		assert.Equal(t, "get_prop", calls[1].Method)
	}
}

// Tests target resolution.
func TestCallServiceTargets(t *testing.T) {
	data := []struct {
		target interface{}
		hosts  []string
	}{
		{target: nil, hosts: []string{"192.168.1.10", "192.168.1.11"}},
		{target: "vacuum.kitchen", hosts: []string{"192.168.1.10"}},
		{target: "vacuum.kitchen, vacuum.upstairs", hosts: []string{"192.168.1.10", "192.168.1.11"}},
		{target: []interface{}{"vacuum.up*"}, hosts: []string{"192.168.1.11"}},
		{target: "vacuum.*", hosts: []string{"192.168.1.10", "192.168.1.11"}},
		{target: "all", hosts: []string{"192.168.1.10", "192.168.1.11"}},
		{target: "Vacuum.Kitchen", hosts: []string{"192.168.1.10"}},
		{target: "vacuum.garage", hosts: []string{}},
	}

	for _, v := range data {
		f := newFixture(t)
		f.load(t, "192.168.1.10", "28:6c:07:aa:bb:cc", "Kitchen")
		f.load(t, "192.168.1.11", "28:6c:07:aa:bb:dd", "Upstairs")

		require.NoError(t, f.registry.CallService(context.Background(), "locate",
			map[string]interface{}{"entity_id": v.target}))

		got := make([]string, 0)
		for _, host := range []string{"192.168.1.10", "192.168.1.11"} {
			if len(f.client(host).CallsExcept("get_prop", "set_mop")) > 0 {
				got = append(got, host)
			}
		}
		assert.Equal(t, v.hosts, got, "%v", v.target)
	}
}

// Tests rejected service calls.
func TestCallServiceErrors(t *testing.T) {
	data := []struct {
		service string
		data    map[string]interface{}
		err     interface{}
	}{
		{service: "turn_on", err: &ErrUnknownService{}},
		{service: "vacuum_clean_zone", data: map[string]interface{}{}, err: &ErrInvalidParams{}},
		{service: "vacuum_clean_zone",
			data: map[string]interface{}{"zone": []interface{}{[]interface{}{float64(1), float64(2)}}},
			err:  &ErrInvalidParams{}},
		{service: "vacuum_clean_zone",
			data: map[string]interface{}{"zone": []interface{}{[]interface{}{"a", "b", "c", "d"}}},
			err:  &ErrInvalidParams{}},
		{service: "vacuum_goto", data: map[string]interface{}{"x_coord": float64(1)}, err: &ErrInvalidParams{}},
		{service: "vacuum_clean_segment", data: map[string]interface{}{}, err: &ErrInvalidParams{}},
		{service: "vacuum_clean_segment",
			data: map[string]interface{}{"segments": "kitchen"}, err: &ErrInvalidParams{}},
		{service: "xiaomi_clean_point",
			data: map[string]interface{}{"point": []interface{}{float64(1)}}, err: &ErrInvalidParams{}},
		{service: "set_fan_speed", data: map[string]interface{}{}, err: &ErrInvalidParams{}},
		{service: "set_fan_speed",
			data: map[string]interface{}{"fan_speed": true}, err: &ErrInvalidParams{}},
		{service: "send_command", data: map[string]interface{}{}, err: &ErrInvalidParams{}},
		{service: "locate",
			data: map[string]interface{}{"entity_id": float64(1)}, err: &ErrInvalidTarget{}},
		{service: "locate",
			data: map[string]interface{}{"entity_id": "vacuum.[a"}, err: &ErrInvalidTarget{}},
	}

	for _, v := range data {
		f := newFixture(t)
		f.settings.(validatorSetter).SetValidator(utils.NewValidator(mocks.FakeNewLogger(nil)))
		f.load(t, "192.168.1.10", "28:6c:07:aa:bb:cc", "Viomi SE")

		err := f.registry.CallService(context.Background(), v.service, v.data)
		assert.IsType(t, v.err, err, "%s %v", v.service, v.data)
		assert.Empty(t, f.client("192.168.1.10").Calls(), v.service)
	}
}

// Tests repeats clamping.
func TestZoneRepeats(t *testing.T) {
	data := []struct {
		repeats interface{}
		count   int
	}{
		{repeats: nil, count: 1},
		{repeats: float64(0), count: 1},
		{repeats: float64(2), count: 2},
		{repeats: "3", count: 3},
		{repeats: float64(9), count: 3},
		{repeats: 2.7, count: 2},
	}

	for _, v := range data {
		f := newFixture(t)
		f.settings.(validatorSetter).SetValidator(utils.NewValidator(mocks.FakeNewLogger(nil)))
		f.load(t, "192.168.1.10", "28:6c:07:aa:bb:cc", "Viomi SE")

		in := map[string]interface{}{
			"zone": []interface{}{[]interface{}{float64(1), float64(2), float64(3), float64(4)}},
		}
		if v.repeats != nil {
			in["repeats"] = v.repeats
		}

		require.NoError(t, f.registry.CallService(context.Background(), "vacuum_clean_zone", in))
		calls := f.client("192.168.1.10").CallsExcept("get_prop", "set_mop")
		require.Len(t, calls, 3)
		assert.Equal(t, v.count, calls[1].Params.([]interface{})[0], "%v", v.repeats)
	}
}
