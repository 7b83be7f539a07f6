package common

import (
	"github.com/go-home-io/viomise/plugins/device/enums"
)

// ILoggerProvider defines logger provider which will be passed to every system.
// Fields are passed as key/value pairs.
type ILoggerProvider interface {
	Debug(msg string, fields ...string)
	Info(msg string, fields ...string)
	Warn(msg string, fields ...string)
	Error(msg string, err error, fields ...string)
	Fatal(msg string, err error, fields ...string)
}

// MsgDeviceUpdate contains data with updated entity state.
type MsgDeviceUpdate struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Type      enums.DeviceType       `json:"type"`
	Available bool                   `json:"available"`
	State     map[string]interface{} `json:"state"`
	Commands  []string               `json:"commands,omitempty"`
	FirstSeen bool                   `json:"-"`
}

// IFanOutProvider defines interface used for distributing
// entity updates even across all system.
type IFanOutProvider interface {
	SubscribeDeviceUpdates() (int64, chan *MsgDeviceUpdate)
	UnSubscribeDeviceUpdates(int64)
}
