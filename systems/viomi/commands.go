package viomi

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-home-io/viomise/plugins/common"
)

// Calls the device, logs failure with the given message and reports the outcome.
// Device errors never leave this method.
func (v *Vacuum) tryCommand(ctx context.Context, msg string, method string, params interface{}) bool {
	_, err := v.call(ctx, method, params)
	if err != nil {
		v.logger.Error(msg, err, append(v.logFields(), common.LogDeviceCommandToken, method)...)
		return false
	}

	v.logger.Debug("Command sent", append(v.logFields(), common.LogDeviceCommandToken, method)...)
	return true
}

// Runs commands one by one, stopping at the first failure.
func (v *Vacuum) tryChain(ctx context.Context, msg string, steps ...rpcStep) bool {
	for _, s := range steps {
		if !v.tryCommand(ctx, msg, s.method, s.params) {
			return false
		}
	}
	return true
}

type rpcStep struct {
	method string
	params []interface{}
}

// Returns a snapshot needed for mode dependent commands.
func (v *Vacuum) requireSnapshot(msg string) (Snapshot, bool) {
	s := v.Snapshot()
	if s == nil {
		v.logger.Warn(msg, append(v.logFields(), common.LogErrorToken, (&ErrStateNotReady{}).Error())...)
		return nil, false
	}
	return s, true
}

// Start starts or resumes cleaning.
func (v *Vacuum) Start(ctx context.Context) bool {
	return v.startOrPause(ctx, actionStart, "Unable to start the vacuum")
}

// Pause pauses cleaning.
func (v *Vacuum) Pause(ctx context.Context) bool {
	return v.startOrPause(ctx, actionPause, "Unable to set pause")
}

func (v *Vacuum) startOrPause(ctx context.Context, action int, msg string) bool {
	v.rpc.Lock()
	defer v.rpc.Unlock()

	s, ok := v.requireSnapshot(msg)
	if !ok {
		return false
	}

	mode, _ := s.Int(propMode)
	if mode == modePointClean {
		if p := v.LastCleanPoint(); p != nil {
			return v.tryCommand(ctx, msg, "set_pointclean", []interface{}{action, p.X, p.Y})
		}
	}

	if mode == modeStandard {
		return v.tryCommand(ctx, msg, "set_mode", []interface{}{modeStandard, action})
	}

	return v.tryCommand(ctx, msg, "set_mode_withroom", []interface{}{actionMode(s, mode), action, 0})
}

// Computes cleaning kind for set_mode_withroom out of current mode and mop state.
func actionMode(s Snapshot, mode int) interface{} {
	if mode == modeSweepMop {
		return modeSweepMop
	}

	isMop := s[propIsMop]
	if m, ok := toInt(isMop); ok {
		if m == 2 {
			return 3
		}
		return m
	}
	return isMop
}

// Stop stops cleaning and forgets point-clean coordinates when point cleaning.
func (v *Vacuum) Stop(ctx context.Context) bool {
	const msg = "Unable to stop"

	v.rpc.Lock()
	defer v.rpc.Unlock()

	s, ok := v.requireSnapshot(msg)
	if !ok {
		return false
	}

	mode, _ := s.Int(propMode)
	switch mode {
	case modeStandard:
		return v.tryCommand(ctx, msg, "set_mode", []interface{}{modeStandard, 0})
	case modePointClean:
		v.mu.Lock()
		v.lastCleanPoint = nil
		v.mu.Unlock()
		return v.tryCommand(ctx, msg, "set_pointclean", []interface{}{0, 0, 0})
	default:
		return v.tryCommand(ctx, msg, "set_mode", []interface{}{0})
	}
}

// SetFanSpeed sets suction grade either by name or by raw number.
func (v *Vacuum) SetFanSpeed(ctx context.Context, speed string) bool {
	grade, ok := parseFanSpeed(speed)
	if !ok {
		v.logger.Error("Fan speed step not recognized", &ErrInvalidFanSpeed{Speed: speed},
			append(v.logFields(), "valid_speeds", strings.Join(v.FanSpeedList(), ", "))...)
		return false
	}

	v.rpc.Lock()
	defer v.rpc.Unlock()
	return v.tryCommand(ctx, "Unable to set fan speed", "set_suction", []interface{}{grade})
}

func parseFanSpeed(speed string) (int, bool) {
	for k, v := range FanSpeeds {
		if strings.EqualFold(k, speed) {
			return v, true
		}
	}

	grade, err := strconv.Atoi(strings.TrimSpace(speed))
	if err != nil {
		return 0, false
	}
	return grade, true
}

// ReturnToBase sends vacuum to the dock.
func (v *Vacuum) ReturnToBase(ctx context.Context) bool {
	v.rpc.Lock()
	defer v.rpc.Unlock()
	return v.tryCommand(ctx, "Unable to return home", "set_charge", []interface{}{1})
}

// Locate makes vacuum report its position.
func (v *Vacuum) Locate(ctx context.Context) bool {
	v.rpc.Lock()
	defer v.rpc.Unlock()
	return v.tryCommand(ctx, "Unable to locate the botvac", "set_resetpos", []interface{}{1})
}

// SendCommand sends arbitrary command to the device.
// A single templated string parameter is expanded into a list or a number.
func (v *Vacuum) SendCommand(ctx context.Context, command string, params []interface{}) bool {
	v.rpc.Lock()
	defer v.rpc.Unlock()
	return v.tryCommand(ctx, "Unable to send command to the vacuum", command, normalizeRawParams(params))
}

func normalizeRawParams(params []interface{}) interface{} {
	if params == nil {
		return nil
	}

	if len(params) != 1 {
		return params
	}

	str, ok := params[0].(string)
	if !ok {
		return params
	}

	if strings.Contains(str, "[") && strings.Contains(str, "]") {
		if parsed, err := parseListLiteral(str); err == nil {
			return parsed
		}
		return params
	}

	if isDecimalDigits(str) {
		if n, err := strconv.Atoi(str); err == nil {
			return []interface{}{n}
		}
	}

	return params
}

func isDecimalDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
