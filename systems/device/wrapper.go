// Package device contains loaded vacuums registry, polling and services.
package device

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/go-home-io/viomise/plugins/common"
	"github.com/go-home-io/viomise/plugins/device"
	"github.com/go-home-io/viomise/plugins/device/enums"
	"github.com/go-home-io/viomise/providers"
	"github.com/go-home-io/viomise/utils"
)

// IVacuumWrapperProvider defines a loaded vacuum together with its battery sensor.
type IVacuumWrapperProvider interface {
	GetID() string
	UniqueID() string
	Host() string
	Vacuum() device.IVacuum
	Commands() []string
	Refresh(ctx context.Context)
	GetUpdateMessages() []*common.MsgDeviceUpdate
	Unload()
}

// Data required for a new wrapper.
type wrapperConstruct struct {
	Vacuum  device.IVacuum
	Battery device.ISensor
	Logger  common.ILoggerProvider
	Cron    providers.ICronProvider
	FanOut  providers.IInternalFanOutProvider
	Timeout time.Duration
}

// Vacuum wrapper implementation.
type vacuumWrapper struct {
	sync.Mutex

	Ctor *wrapperConstruct

	ID          string
	Spec        *device.Spec
	CommandsStr []string

	vacuumState  map[string]interface{}
	batteryState map[string]interface{}
	published    bool

	jobID     int
	isPolling bool

	ctx    context.Context
	cancel context.CancelFunc
}

// Constructs a new vacuum wrapper and schedules polling.
func newVacuumWrapper(ctor *wrapperConstruct) *vacuumWrapper {
	w := &vacuumWrapper{
		Ctor: ctor,
		ID:   ctor.Vacuum.GetID(),
	}
	w.ctx, w.cancel = context.WithCancel(context.Background())

	w.Spec = ctor.Vacuum.GetSpec()
	if nil == w.Spec {
		w.Spec = &device.Spec{
			SupportedCommands: make([]enums.Command, 0),
		}
	}

	w.setState(ctor.Vacuum.State(), ctor.Battery.State())
	w.validateDeviceSpec()

	if w.Spec.UpdatePeriod > 0 {
		w.isPolling = true
		spec := utils.EverySpec(w.Spec.UpdatePeriod)

		var err error
		w.jobID, err = ctor.Cron.AddFunc(spec, w.pullUpdate)
		if err != nil {
			ctor.Logger.Error("Failed to schedule device updates", err,
				common.LogDeviceTypeToken, enums.DevVacuum.String(), common.LogDeviceNameToken, w.ID)
		} else {
			ctor.Logger.Debug(fmt.Sprintf("Polling rate for the device is %s", spec),
				common.LogDeviceTypeToken, enums.DevVacuum.String(), common.LogDeviceNameToken, w.ID)
		}
	}

	return w
}

// GetID returns vacuum entity ID.
func (w *vacuumWrapper) GetID() string {
	return w.ID
}

// UniqueID returns vacuum unique ID.
func (w *vacuumWrapper) UniqueID() string {
	return w.Ctor.Vacuum.UniqueID()
}

// Host returns vacuum address.
func (w *vacuumWrapper) Host() string {
	return w.Ctor.Vacuum.Host()
}

// Vacuum returns wrapped entity.
func (w *vacuumWrapper) Vacuum() device.IVacuum {
	return w.Ctor.Vacuum
}

// Commands returns validated commands list.
func (w *vacuumWrapper) Commands() []string {
	return w.CommandsStr
}

// Unload stops all background activities.
func (w *vacuumWrapper) Unload() {
	if 0 != w.jobID {
		w.Ctor.Cron.RemoveFunc(w.jobID)
	}

	w.cancel()
	w.Ctor.Battery.Unload()
	w.Ctor.Vacuum.Unload()
}

// Refresh pulls vacuum state and publishes both entities.
func (w *vacuumWrapper) Refresh(ctx context.Context) {
	w.Ctor.Logger.Debug("Fetching update for the device",
		common.LogDeviceTypeToken, enums.DevVacuum.String(), common.LogDeviceNameToken, w.ID)

	state := w.Ctor.Vacuum.Update(ctx)
	w.processUpdate(state, w.Ctor.Battery.State())
}

// GetUpdateMessages constructs update messages for the vacuum and the battery sensor.
func (w *vacuumWrapper) GetUpdateMessages() []*common.MsgDeviceUpdate {
	w.Lock()
	defer w.Unlock()
	return w.messages(false)
}

// Validates specification, returned by the vacuum and prepares
// supported commands.
func (w *vacuumWrapper) validateDeviceSpec() {
	w.CommandsStr = make([]string, 0)
	for _, v := range w.Spec.SupportedCommands {
		if !v.IsCommandAllowed(enums.DevVacuum) {
			w.Ctor.Logger.Warn("Device claimed restricted command",
				common.LogDeviceTypeToken, enums.DevVacuum.String(), common.LogDeviceNameToken, w.ID,
				common.LogDeviceCommandToken, v.String())
			continue
		}

		method := reflect.ValueOf(w.Ctor.Vacuum).MethodByName(v.GetCommandMethodName())
		if !method.IsValid() {
			w.Ctor.Logger.Warn("Device claimed non-implemented command",
				common.LogDeviceTypeToken, enums.DevVacuum.String(), common.LogDeviceNameToken, w.ID,
				common.LogDeviceCommandToken, v.String())
			continue
		}

		if method.Type().NumIn() == 0 || method.Type().In(0) != contextType {
			w.Ctor.Logger.Warn("Device declared command without context",
				common.LogDeviceTypeToken, enums.DevVacuum.String(), common.LogDeviceNameToken, w.ID,
				common.LogDeviceCommandToken, v.String())
			continue
		}

		w.CommandsStr = append(w.CommandsStr, v.String())
	}
}

var contextType = reflect.TypeOf((*context.Context)(nil)).Elem()

// Checks whether command passed spec validation.
func (w *vacuumWrapper) supports(cmd enums.Command) bool {
	for _, v := range w.CommandsStr {
		if v == cmd.String() {
			return true
		}
	}

	return false
}

// Performs cron data pull.
func (w *vacuumWrapper) pullUpdate() {
	if !w.isPolling {
		return
	}

	ctx, cancel := context.WithTimeout(w.ctx, w.Ctor.Timeout)
	defer cancel()
	w.Refresh(ctx)
}

// Processing update and pushing it to the fan-out.
func (w *vacuumWrapper) processUpdate(vacuum *device.VacuumState, battery *device.SensorState) {
	w.Lock()
	w.setState(vacuum, battery)
	msgs := w.messages(!w.published)
	w.published = true
	w.Unlock()

	for _, v := range msgs {
		select {
		case w.Ctor.FanOut.ChannelInDeviceUpdates() <- v:
		case <-w.ctx.Done():
			return
		}
	}
}

// Builds update messages from the stored state.
func (w *vacuumWrapper) messages(firstSeen bool) []*common.MsgDeviceUpdate {
	return []*common.MsgDeviceUpdate{
		{
			ID:        w.ID,
			Name:      w.Ctor.Vacuum.GetName(),
			Type:      enums.DevVacuum,
			Available: isAvailable(w.vacuumState),
			State:     copyState(w.vacuumState),
			Commands:  w.CommandsStr,
			FirstSeen: firstSeen,
		},
		{
			ID:        w.Ctor.Battery.GetID(),
			Name:      w.Ctor.Battery.GetName(),
			Type:      enums.DevSensor,
			Available: isAvailable(w.batteryState),
			State:     copyState(w.batteryState),
			FirstSeen: firstSeen,
		},
	}
}

// Updates internal state which is stored in wrapper.
func (w *vacuumWrapper) setState(vacuum *device.VacuumState, battery *device.SensorState) {
	if nil != vacuum {
		w.vacuumState = stateToMap(vacuum)
	}

	if nil != battery {
		w.batteryState = stateToMap(battery)
	}
}

// Converts state struct into a map keyed by json tags.
// Empty values are skipped.
func stateToMap(state interface{}) map[string]interface{} {
	rt, rv := reflect.TypeOf(state), reflect.ValueOf(state)
	if rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
		rv = rv.Elem()
	}

	result := make(map[string]interface{}, rt.NumField())
	for ii := 0; ii < rt.NumField(); ii++ {
		field := rt.Field(ii)
		jsonKey := field.Tag.Get("json")
		if "" == jsonKey || "-" == jsonKey {
			continue
		}

		val := getFieldValueOrNil(rv.Field(ii))
		if val != nil {
			result[jsonKey] = val
		}
	}

	return result
}

// Returns actual value or nil.
func getFieldValueOrNil(valField reflect.Value) interface{} {
	switch valField.Kind() {
	case reflect.Slice, reflect.Map:
		if valField.IsNil() {
			return nil
		}
	case reflect.String:
		if 0 == valField.Len() {
			return nil
		}
	case reflect.Ptr, reflect.Interface:
		if valField.IsNil() {
			return nil
		}
		return valField.Elem().Interface()
	}

	return valField.Interface()
}

// Returns available flag of the state map.
func isAvailable(state map[string]interface{}) bool {
	v, ok := state["available"].(bool)
	return ok && v
}

// Returns shallow copy of the state map.
func copyState(state map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(state))
	for k, v := range state {
		result[k] = v
	}
	return result
}
