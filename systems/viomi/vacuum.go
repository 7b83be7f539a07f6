package viomi

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-home-io/viomise/plugins/common"
	"github.com/go-home-io/viomise/plugins/device"
	"github.com/go-home-io/viomise/plugins/device/enums"
	"github.com/go-home-io/viomise/systems/miio"
	"github.com/go-home-io/viomise/utils"
)

// ConstructVacuum has data required for a new vacuum entity.
type ConstructVacuum struct {
	// EntityID overrides ID derived from the name.
	EntityID     string
	Name         string
	Host         string
	UniqueID     string
	Client       miio.IClient
	Logger       common.ILoggerProvider
	Metrics      *Metrics
	UpdatePeriod time.Duration
}

// Vacuum is the Viomi SE vacuum entity.
type Vacuum struct {
	// Held for the whole duration of any device conversation.
	rpc sync.Mutex
	// Guards snapshot, availability and the last clean point.
	mu sync.RWMutex

	client  miio.IClient
	logger  common.ILoggerProvider
	metrics *Metrics

	id           string
	name         string
	host         string
	uniqueID     string
	updatePeriod time.Duration

	snapshot       Snapshot
	available      bool
	lastCleanPoint *common.Point
}

// NewVacuum constructs a new vacuum entity.
// Entity stays unavailable until the first successful Update.
func NewVacuum(ctor *ConstructVacuum) *Vacuum {
	name := ctor.Name
	if name == "" {
		name = DefaultName
	}

	uniqueID := ctor.UniqueID
	if uniqueID == "" {
		uniqueID = ctor.Host
	}

	id := ctor.EntityID
	if id == "" {
		id = EntityID(name)
	}

	return &Vacuum{
		client:       ctor.Client,
		logger:       ctor.Logger,
		metrics:      ctor.Metrics,
		id:           id,
		name:         name,
		host:         ctor.Host,
		uniqueID:     uniqueID,
		updatePeriod: ctor.UpdatePeriod,
	}
}

// EntityID returns vacuum entity ID for the display name.
func EntityID(name string) string {
	return fmt.Sprintf("%s.%s", enums.DevVacuum.String(), utils.NormalizeDeviceName(name))
}

// GetID returns platform entity ID.
func (v *Vacuum) GetID() string {
	return v.id
}

// GetName returns display name.
func (v *Vacuum) GetName() string {
	return v.name
}

// GetSpec returns device specification.
func (v *Vacuum) GetSpec() *device.Spec {
	return &device.Spec{
		UpdatePeriod:      v.updatePeriod,
		SupportedCommands: enums.AllowedCommands[enums.DevVacuum],
	}
}

// Unload is a no-op, the client doesn't hold open connections between calls.
func (v *Vacuum) Unload() {
}

// Host returns device address.
func (v *Vacuum) Host() string {
	return v.host
}

// UniqueID returns unique entity ID.
func (v *Vacuum) UniqueID() string {
	return v.uniqueID
}

// DeviceInfo returns physical device description.
func (v *Vacuum) DeviceInfo() *device.Info {
	return &device.Info{
		Identifiers:  []string{v.uniqueID},
		Name:         v.name,
		Manufacturer: Manufacturer,
		Model:        Model,
	}
}

// Available reports whether at least one poll succeeded.
func (v *Vacuum) Available() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.available
}

// Snapshot returns the last fetched state or nil.
func (v *Vacuum) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.snapshot
}

// LastCleanPoint returns stored point-clean coordinates or nil.
func (v *Vacuum) LastCleanPoint() *common.Point {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.lastCleanPoint == nil {
		return nil
	}
	p := *v.lastCleanPoint
	return &p
}

// Activity returns current vacuum activity derived from run_state.
func (v *Vacuum) Activity() enums.VacStatus {
	return v.activity(v.Snapshot())
}

func (v *Vacuum) activity(s Snapshot) enums.VacStatus {
	if s == nil {
		return enums.VacUnknown
	}

	code, ok := s.Int(propRunState)
	if !ok {
		v.logger.Error("STATE not supported", &ErrUnknownState{Raw: s[propRunState]},
			v.logFields()...)
		return enums.VacUnknown
	}

	status, ok := stateCodeToStatus[code]
	if !ok {
		v.logger.Error("STATE not supported", &ErrUnknownState{Raw: s[propRunState]},
			v.logFields()...)
		return enums.VacUnknown
	}

	return status
}

// BatteryLevel returns raw battery value reported by the device.
func (v *Vacuum) BatteryLevel() interface{} {
	s := v.Snapshot()
	if s == nil {
		return nil
	}
	return s[propBattery]
}

// FanSpeed returns fan speed name if known, raw value otherwise.
func (v *Vacuum) FanSpeed() interface{} {
	return fanSpeedName(v.Snapshot())
}

func fanSpeedName(s Snapshot) interface{} {
	if s == nil {
		return nil
	}

	raw := s[propSuctionGrade]
	if speed, ok := toInt(raw); ok {
		if f, isFloat := raw.(float64); !isFloat || f == float64(speed) {
			for k, v := range FanSpeeds {
				if v == speed {
					return k
				}
			}
		}
	}

	return raw
}

// FanSpeedList returns fan speed names ordered by suction grade.
func (v *Vacuum) FanSpeedList() []string {
	list := make([]string, 0, len(FanSpeeds))
	for k := range FanSpeeds {
		list = append(list, k)
	}
	sort.Slice(list, func(i, j int) bool {
		return FanSpeeds[list[i]] < FanSpeeds[list[j]]
	})
	return list
}

// Attributes returns extra state attributes: snapshot copy plus battery alias and status.
func (v *Vacuum) Attributes() map[string]interface{} {
	return v.attributes(v.Snapshot())
}

func (v *Vacuum) attributes(s Snapshot) map[string]interface{} {
	if s == nil {
		return map[string]interface{}{}
	}

	attrs := s.Copy()
	if val, ok := s[propBattery]; ok {
		attrs["battery"] = val
	}
	attrs["status"] = v.activity(s).String()
	return attrs
}

// State returns current entity state without talking to the device.
func (v *Vacuum) State() *device.VacuumState {
	v.mu.RLock()
	s := v.snapshot
	available := v.available
	v.mu.RUnlock()

	state := &device.VacuumState{
		VacStatus:    v.activity(s),
		FanSpeed:     fanSpeedName(s),
		FanSpeedList: v.FanSpeedList(),
		Available:    available,
		Attributes:   v.attributes(s),
	}
	if s != nil {
		state.BatteryLevel = s[propBattery]
	}
	return state
}

// Update fetches full state from the device and keeps mop mode consistent
// with the installed box.
func (v *Vacuum) Update(ctx context.Context) *device.VacuumState {
	v.rpc.Lock()
	defer v.rpc.Unlock()

	for attempt := 0; ; attempt++ {
		if !v.fetch(ctx) {
			break
		}

		desired, ok := v.desiredMopMode()
		if !ok {
			break
		}

		if attempt >= maxMopCorrections {
			v.logger.Warn("Mop mode didn't settle after correction",
				append(v.logFields(), common.LogDevicePropertyToken, propIsMop)...)
			break
		}

		v.logger.Info(fmt.Sprintf("Switching mop mode to %d", desired), v.logFields()...)
		v.metrics.observeMopCorrection(v.host, v.name)
		if _, err := v.call(ctx, "set_mop", []interface{}{desired}); err != nil {
			v.logger.Warn("Got exception while fetching the state",
				append(v.logFields(), common.LogErrorToken, err.Error())...)
			break
		}
	}

	state := v.State()
	battery, hasBattery := toInt(state.BatteryLevel)
	v.metrics.observeState(v.host, v.name, state.Available, state.VacStatus, battery, hasBattery)
	return state
}

// Fetches all properties and replaces the snapshot.
func (v *Vacuum) fetch(ctx context.Context) bool {
	raw, err := v.call(ctx, "get_prop", AllProps)
	if err != nil {
		v.logger.Warn("Got exception while fetching the state",
			append(v.logFields(), common.LogErrorToken, err.Error())...)
		return false
	}

	values, ok := raw.([]interface{})
	if !ok {
		v.logger.Error("Got unexpected state payload", &ErrUnexpectedPayload{Raw: raw}, v.logFields()...)
		return false
	}

	s := newSnapshot(values)

	v.mu.Lock()
	v.snapshot = s
	v.available = true
	v.mu.Unlock()
	return true
}

// Computes mop mode expected for the installed box.
// Returns false when no change is required.
func (v *Vacuum) desiredMopMode() (int, bool) {
	s := v.Snapshot()

	// 2: mop only, 1: dust and mop, 0: vacuum only
	current, okCurrent := s.Int(propIsMop)
	// 3: 2 in 1, 2: water only, 1: dust only, 0: no box
	boxType, okBox := s.Int(propBoxType)
	if !okCurrent || !okBox {
		return 0, false
	}
	hasMop := truthy(s[propMopType])

	desired := current
	switch boxType {
	case 3:
		if hasMop {
			desired = 1
		} else {
			desired = 0
		}
	case 2:
		// Device errors out by itself if mop is not attached.
		desired = 2
	case 1:
		desired = 0
	}

	return desired, desired != current
}

// Performs device call and records metrics.
func (v *Vacuum) call(ctx context.Context, method string, params interface{}) (interface{}, error) {
	res, err := v.client.RawCommand(ctx, method, params)
	v.metrics.observeRPC(v.host, method, err)
	return res, err
}

func (v *Vacuum) logFields() []string {
	return []string{common.LogDeviceNameToken, v.name, common.LogDeviceHostToken, v.host}
}
