package device

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-home-io/viomise/plugins/common"
	"github.com/go-home-io/viomise/plugins/device"
	"github.com/go-home-io/viomise/plugins/device/enums"
	"github.com/gobwas/glob"
)

// CallService validates service data, invokes command on every targeted vacuum
// one by one and then refreshes all targets.
// Device failures are logged by vacuums and never returned.
func (r *Registry) CallService(ctx context.Context, service string, data map[string]interface{}) error {
	srv, err := enums.ServiceString(service)
	if err != nil {
		r.logger.Warn("Received unknown service", common.LogSystemToken, logSystem,
			common.LogServiceToken, service)
		return &ErrUnknownService{Service: service}
	}

	if nil == data {
		data = make(map[string]interface{})
	}

	params, err := decodeParams(srv, data)
	if err != nil {
		r.logger.Warn("Received incorrect service data", common.LogSystemToken, logSystem,
			common.LogServiceToken, service, common.LogErrorToken, err.Error())
		return err
	}

	if nil != params && !r.ctor.Settings.Validator().Validate(params) {
		r.logger.Warn("Received incorrect service params", common.LogSystemToken, logSystem,
			common.LogServiceToken, service)
		return invalidParams(srv, "validation failed")
	}

	targets, err := r.resolveTargets(data[attrEntityID])
	if err != nil {
		r.logger.Warn("Received incorrect service targets", common.LogSystemToken, logSystem,
			common.LogServiceToken, service, common.LogErrorToken, err.Error())
		return err
	}

	if 0 == len(targets) {
		r.logger.Warn("Service didn't match any vacuum", common.LogSystemToken, logSystem,
			common.LogServiceToken, service)
		return nil
	}

	cmd := srv.Command()
	for _, v := range targets {
		w, ok := v.(*vacuumWrapper)
		if ok && !w.supports(cmd) {
			r.logger.Warn("Device doesn't support this command", common.LogSystemToken, logSystem,
				common.LogEntityToken, v.GetID(), common.LogDeviceCommandToken, cmd.String())
			continue
		}

		r.logger.Debug("Invoking device command", common.LogSystemToken, logSystem,
			common.LogEntityToken, v.GetID(), common.LogDeviceCommandToken, cmd.String())
		invoke(ctx, v.Vacuum(), cmd, params)
	}

	var wg sync.WaitGroup
	wg.Add(len(targets))
	for _, v := range targets {
		go func(w IVacuumWrapperProvider) {
			defer wg.Done()
			w.Refresh(ctx)
		}(v)
	}
	wg.Wait()

	return nil
}

// Invokes vacuum command with decoded params.
func invoke(ctx context.Context, v device.IVacuum, cmd enums.Command, params interface{}) bool {
	switch cmd {
	case enums.CmdStart:
		return v.Start(ctx)
	case enums.CmdPause:
		return v.Pause(ctx)
	case enums.CmdStop:
		return v.Stop(ctx)
	case enums.CmdReturnToBase:
		return v.ReturnToBase(ctx)
	case enums.CmdLocate:
		return v.Locate(ctx)
	case enums.CmdSetFanSpeed:
		return v.SetFanSpeed(ctx, params.(*fanSpeedParams).FanSpeed)
	case enums.CmdSendCommand:
		p := params.(*sendCommandParams)
		return v.SendCommand(ctx, p.Command, p.Params)
	case enums.CmdCleanZone:
		p := params.(*cleanZoneParams)
		return v.CleanZone(ctx, p.zones(), p.Repeats)
	case enums.CmdGoto:
		p := params.(*gotoParams)
		return v.Goto(ctx, *p.X, *p.Y)
	case enums.CmdCleanSegment:
		return v.CleanSegment(ctx, params.(*cleanSegmentParams).Segments)
	case enums.CmdCleanPoint:
		p := params.(*cleanPointParams)
		return v.CleanPoint(ctx, common.Point{X: p.Point[0], Y: p.Point[1]})
	}

	return false
}

const allTargets = "all"

// Resolves entity_id patterns into loaded vacuums.
// Missing entity_id targets every vacuum.
func (r *Registry) resolveTargets(raw interface{}) ([]IVacuumWrapperProvider, error) {
	all := r.all()

	patterns, err := targetPatterns(raw)
	if err != nil {
		return nil, err
	}

	if 0 == len(patterns) {
		return all, nil
	}

	globs := make([]glob.Glob, 0, len(patterns))
	for _, v := range patterns {
		if v == allTargets {
			return all, nil
		}

		g, err := glob.Compile(v)
		if err != nil {
			return nil, &ErrInvalidTarget{Pattern: v}
		}
		globs = append(globs, g)
	}

	result := make([]IVacuumWrapperProvider, 0, len(all))
	for _, v := range all {
		for _, g := range globs {
			if g.Match(v.GetID()) {
				result = append(result, v)
				break
			}
		}
	}

	return result, nil
}

// Splits entity_id value into separate patterns.
// Accepts a comma separated string or a list of strings.
func targetPatterns(raw interface{}) ([]string, error) {
	var items []string
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		items = strings.Split(v, ",")
	case []string:
		items = v
	case []interface{}:
		for _, i := range v {
			s, ok := i.(string)
			if !ok {
				return nil, &ErrInvalidTarget{Pattern: fmt.Sprintf("%v", i)}
			}
			items = append(items, s)
		}
	default:
		return nil, &ErrInvalidTarget{Pattern: fmt.Sprintf("%v", raw)}
	}

	result := make([]string, 0, len(items))
	for _, v := range items {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			result = append(result, v)
		}
	}

	return result, nil
}
