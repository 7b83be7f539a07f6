package device

import (
	"reflect"
)

// ISensor defines sensor interface.
type ISensor interface {
	IDevice
	Available() bool
	State() *SensorState
}

// SensorState returns information about known sensor.
type SensorState struct {
	Value       *int                   `json:"value"`
	Unit        string                 `json:"unit_of_measurement"`
	DeviceClass string                 `json:"device_class"`
	StateClass  string                 `json:"state_class"`
	Category    string                 `json:"entity_category"`
	Icon        string                 `json:"icon"`
	Available   bool                   `json:"available"`
	Attributes  map[string]interface{} `json:"attributes"`
}

// TypeSensor is a syntax sugar around ISensor type.
var TypeSensor = reflect.TypeOf((*ISensor)(nil)).Elem()
