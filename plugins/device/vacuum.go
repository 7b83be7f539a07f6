package device

import (
	"context"
	"reflect"

	"github.com/go-home-io/viomise/plugins/common"
	"github.com/go-home-io/viomise/plugins/device/enums"
)

// IVacuum defines vacuum device type.
// Commands report whether every device call succeeded; failures are logged by
// the implementation and never returned as errors.
type IVacuum interface {
	IDevice
	Host() string
	UniqueID() string
	DeviceInfo() *Info
	Available() bool

	Update(ctx context.Context) *VacuumState
	State() *VacuumState

	Start(ctx context.Context) bool
	Pause(ctx context.Context) bool
	Stop(ctx context.Context) bool
	SetFanSpeed(ctx context.Context, speed string) bool
	ReturnToBase(ctx context.Context) bool
	Locate(ctx context.Context) bool
	SendCommand(ctx context.Context, command string, params []interface{}) bool
	CleanZone(ctx context.Context, zones []common.Zone, repeats int) bool
	Goto(ctx context.Context, x, y float64) bool
	CleanSegment(ctx context.Context, segments []int) bool
	CleanPoint(ctx context.Context, point common.Point) bool
}

// VacuumState describes vacuum state.
type VacuumState struct {
	VacStatus    enums.VacStatus        `json:"vac_status"`
	BatteryLevel interface{}            `json:"battery_level"`
	FanSpeed     interface{}            `json:"fan_speed"`
	FanSpeedList []string               `json:"fan_speed_list"`
	Available    bool                   `json:"available"`
	Attributes   map[string]interface{} `json:"attributes"`
}

// TypeVacuum is a syntax sugar around IVacuum type.
var TypeVacuum = reflect.TypeOf((*IVacuum)(nil)).Elem()
