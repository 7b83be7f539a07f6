package viomi

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-home-io/viomise/plugins/common"
	"github.com/go-home-io/viomise/plugins/device"
	"github.com/go-home-io/viomise/plugins/device/enums"
)

const (
	batteryUnit        = "%"
	batteryDeviceClass = "battery"
	batteryStateClass  = "measurement"
	batteryCategory    = "diagnostic"
	iconBatteryUnknown = "mdi:battery-unknown"
)

type batteryBand struct {
	min  int
	icon string
}

// Ordered from the highest band, the last one is the floor.
var (
	chargingIcons = []batteryBand{
		{min: 100, icon: "mdi:battery-charging-100"},
		{min: 90, icon: "mdi:battery-charging-90"},
		{min: 80, icon: "mdi:battery-charging-80"},
		{min: 60, icon: "mdi:battery-charging-60"},
		{min: 40, icon: "mdi:battery-charging-40"},
		{min: 30, icon: "mdi:battery-charging-30"},
		{min: 20, icon: "mdi:battery-charging-20"},
		{min: 0, icon: "mdi:battery-charging-10"},
	}
	dischargingIcons = []batteryBand{
		{min: 100, icon: "mdi:battery"},
		{min: 90, icon: "mdi:battery-90"},
		{min: 80, icon: "mdi:battery-80"},
		{min: 60, icon: "mdi:battery-60"},
		{min: 40, icon: "mdi:battery-40"},
		{min: 30, icon: "mdi:battery-30"},
		{min: 20, icon: "mdi:battery-20"},
		{min: 0, icon: "mdi:battery-outline"},
	}
)

// Entity data the battery sensor reads passively.
type snapshotSource interface {
	GetID() string
	GetName() string
	UniqueID() string
	Available() bool
	Snapshot() Snapshot
	DeviceInfo() *device.Info
}

// BatterySensor reports vacuum battery level.
// Last valid readings are kept when the device reports garbage.
type BatterySensor struct {
	sync.Mutex

	vacuum snapshotSource
	logger common.ILoggerProvider

	id   string
	name string

	level    optional[int]
	charging optional[bool]
}

// NewBatterySensor constructs battery sensor bound to the vacuum.
func NewBatterySensor(vacuum snapshotSource, logger common.ILoggerProvider) *BatterySensor {
	name := fmt.Sprintf("%s Battery", vacuum.GetName())
	return &BatterySensor{
		vacuum: vacuum,
		logger: logger,
		id: fmt.Sprintf("%s.%s_battery", enums.DevSensor.String(),
			strings.TrimPrefix(vacuum.GetID(), enums.DevVacuum.String()+".")),
		name: name,
	}
}

// GetID returns platform entity ID.
func (b *BatterySensor) GetID() string {
	return b.id
}

// GetName returns display name.
func (b *BatterySensor) GetName() string {
	return b.name
}

// GetSpec returns device specification. Sensor is refreshed together with the vacuum.
func (b *BatterySensor) GetSpec() *device.Spec {
	return &device.Spec{
		UpdatePeriod:      time.Duration(0),
		SupportedCommands: []enums.Command{},
	}
}

// Unload is a no-op.
func (b *BatterySensor) Unload() {
}

// UniqueID returns unique entity ID.
func (b *BatterySensor) UniqueID() string {
	return b.vacuum.UniqueID() + "_battery"
}

// DeviceInfo returns vacuum's device info.
func (b *BatterySensor) DeviceInfo() *device.Info {
	return b.vacuum.DeviceInfo()
}

// Available reports whether vacuum is available and has state.
func (b *BatterySensor) Available() bool {
	return b.vacuum.Available() && b.vacuum.Snapshot() != nil
}

// NativeValue returns battery percentage.
func (b *BatterySensor) NativeValue() (int, bool) {
	b.Lock()
	defer b.Unlock()
	return b.nativeValue(b.vacuum.Snapshot())
}

func (b *BatterySensor) nativeValue(s Snapshot) (int, bool) {
	if s != nil {
		raw := s[propBattery]
		level, ok := toInt(raw)
		if ok && level >= 0 && level <= 100 {
			b.level.update(level)
		} else {
			b.logger.Warn("Invalid battery level",
				common.LogDeviceNameToken, b.name, common.LogDevicePropertyToken, propBattery,
				common.LogErrorToken, (&ErrInvalidValue{Property: propBattery, Raw: raw}).Error())
		}
	}

	return b.level.get()
}

// IsCharging reports whether vacuum is charging.
func (b *BatterySensor) IsCharging() (bool, bool) {
	b.Lock()
	defer b.Unlock()
	return b.isCharging(b.vacuum.Snapshot())
}

func (b *BatterySensor) isCharging(s Snapshot) (bool, bool) {
	if s != nil {
		raw := s[propIsCharge]
		// Device reports 0 while on charge.
		if v, ok := toInt(raw); ok {
			b.charging.update(v == 0)
		} else {
			b.logger.Warn("Invalid charging flag",
				common.LogDeviceNameToken, b.name, common.LogDevicePropertyToken, propIsCharge,
				common.LogErrorToken, (&ErrInvalidValue{Property: propIsCharge, Raw: raw}).Error())
		}
	}

	return b.charging.get()
}

// Icon returns icon matching battery level and charging state.
func (b *BatterySensor) Icon() string {
	b.Lock()
	defer b.Unlock()

	s := b.vacuum.Snapshot()
	level, ok := b.nativeValue(s)
	charging, _ := b.isCharging(s)
	return batteryIcon(level, ok, charging)
}

func batteryIcon(level int, known bool, charging bool) string {
	if !known {
		return iconBatteryUnknown
	}

	bands := dischargingIcons
	if charging {
		bands = chargingIcons
	}

	for _, v := range bands {
		if level >= v.min {
			return v.icon
		}
	}
	return bands[len(bands)-1].icon
}

// State returns current sensor state.
func (b *BatterySensor) State() *device.SensorState {
	b.Lock()
	defer b.Unlock()

	s := b.vacuum.Snapshot()
	state := &device.SensorState{
		Unit:        batteryUnit,
		DeviceClass: batteryDeviceClass,
		StateClass:  batteryStateClass,
		Category:    batteryCategory,
		Available:   b.vacuum.Available() && s != nil,
		Attributes:  map[string]interface{}{},
	}

	level, ok := b.nativeValue(s)
	if ok {
		state.Value = &level
	}

	charging, chargingKnown := b.isCharging(s)
	if chargingKnown {
		state.Attributes["is_charging"] = charging
	} else {
		state.Attributes["is_charging"] = nil
	}
	state.Icon = batteryIcon(level, ok, charging)

	return state
}
