package device

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-home-io/viomise/plugins/common"
	"github.com/go-home-io/viomise/plugins/device/enums"
)

const (
	attrEntityID = "entity_id"
	attrZone     = "zone"
	attrRepeats  = "repeats"
	attrX        = "x_coord"
	attrY        = "y_coord"
	attrSegments = "segments"
	attrPoint    = "point"
	attrFanSpeed = "fan_speed"
	attrCommand  = "command"
	attrParams   = "params"

	minRepeats = 1
	maxRepeats = 3
)

// Zoned cleaning params.
type cleanZoneParams struct {
	Zones   [][]float64 `validate:"required,dive,len=4"`
	Repeats int         `validate:"min=1,max=3" default:"1"`
}

// Goto params.
type gotoParams struct {
	X *float64 `validate:"required"`
	Y *float64 `validate:"required"`
}

// Room cleaning params.
type cleanSegmentParams struct {
	Segments []int `validate:"required"`
}

// Point cleaning params.
type cleanPointParams struct {
	Point []float64 `validate:"required,len=2"`
}

// Fan speed params.
type fanSpeedParams struct {
	FanSpeed string `validate:"required"`
}

// Raw command params.
type sendCommandParams struct {
	Command string `validate:"required"`
	Params  []interface{}
}

// Zones returns typed zones.
func (p *cleanZoneParams) zones() []common.Zone {
	result := make([]common.Zone, 0, len(p.Zones))
	for _, v := range p.Zones {
		result = append(result, common.Zone{X1: v[0], Y2: v[1], X2: v[2], Y1: v[3]})
	}
	return result
}

// Decodes raw service data into a typed params struct.
// Returns nil params for services without data.
func decodeParams(service enums.Service, data map[string]interface{}) (interface{}, error) {
	switch service {
	case enums.SrvCleanZone, enums.SrvCleanZoneLegacy:
		return decodeCleanZone(service, data)
	case enums.SrvGoto:
		return decodeGoto(service, data)
	case enums.SrvCleanSegment:
		return decodeCleanSegment(service, data)
	case enums.SrvCleanPoint:
		return decodeCleanPoint(service, data)
	case enums.SrvSetFanSpeed:
		return decodeFanSpeed(service, data)
	case enums.SrvSendCommand:
		return decodeSendCommand(service, data)
	}

	return nil, nil
}

func decodeCleanZone(service enums.Service, data map[string]interface{}) (interface{}, error) {
	raw, ok := data[attrZone].([]interface{})
	if !ok {
		return nil, invalidParams(service, "zone must be a list")
	}

	p := &cleanZoneParams{Zones: make([][]float64, 0, len(raw))}
	for _, v := range raw {
		zone, err := coerceFloats(v)
		if err != nil {
			return nil, invalidParams(service, err.Error())
		}
		p.Zones = append(p.Zones, zone)
	}

	if r, ok := data[attrRepeats]; ok && r != nil {
		repeats, err := coerceInt(r)
		if err != nil {
			return nil, invalidParams(service, err.Error())
		}
		p.Repeats = clampRepeats(repeats)
	}

	return p, nil
}

func decodeGoto(service enums.Service, data map[string]interface{}) (interface{}, error) {
	p := &gotoParams{}
	for k, dst := range map[string]**float64{attrX: &p.X, attrY: &p.Y} {
		raw, ok := data[k]
		if !ok {
			continue
		}

		f, err := coerceFloat(raw)
		if err != nil {
			return nil, invalidParams(service, err.Error())
		}
		*dst = &f
	}

	return p, nil
}

func decodeCleanSegment(service enums.Service, data map[string]interface{}) (interface{}, error) {
	raw, ok := data[attrSegments]
	if !ok {
		return &cleanSegmentParams{}, nil
	}

	list, isList := raw.([]interface{})
	if !isList {
		list = []interface{}{raw}
	}

	p := &cleanSegmentParams{Segments: make([]int, 0, len(list))}
	for _, v := range list {
		n, err := coerceInt(v)
		if err != nil {
			return nil, invalidParams(service, err.Error())
		}
		p.Segments = append(p.Segments, n)
	}

	return p, nil
}

func decodeCleanPoint(service enums.Service, data map[string]interface{}) (interface{}, error) {
	raw, ok := data[attrPoint]
	if !ok {
		return &cleanPointParams{}, nil
	}

	point, err := coerceFloats(raw)
	if err != nil {
		return nil, invalidParams(service, err.Error())
	}

	return &cleanPointParams{Point: point}, nil
}

func decodeFanSpeed(service enums.Service, data map[string]interface{}) (interface{}, error) {
	switch v := data[attrFanSpeed].(type) {
	case nil:
		return &fanSpeedParams{}, nil
	case string:
		return &fanSpeedParams{FanSpeed: v}, nil
	case float64:
		return &fanSpeedParams{FanSpeed: strconv.FormatFloat(v, 'f', -1, 64)}, nil
	case int:
		return &fanSpeedParams{FanSpeed: strconv.Itoa(v)}, nil
	}

	return nil, invalidParams(service, "fan_speed must be a name or a number")
}

func decodeSendCommand(service enums.Service, data map[string]interface{}) (interface{}, error) {
	p := &sendCommandParams{}
	if cmd, ok := data[attrCommand]; ok {
		s, isString := cmd.(string)
		if !isString {
			return nil, invalidParams(service, "command must be a string")
		}
		p.Command = s
	}

	switch v := data[attrParams].(type) {
	case nil:
	case []interface{}:
		p.Params = v
	case map[string]interface{}:
		return nil, invalidParams(service, "params must be a list")
	default:
		p.Params = []interface{}{v}
	}

	return p, nil
}

// Keeps repeats within supported range.
func clampRepeats(repeats int) int {
	if repeats < minRepeats {
		return minRepeats
	}
	if repeats > maxRepeats {
		return maxRepeats
	}
	return repeats
}

func invalidParams(service enums.Service, reason string) error {
	return &ErrInvalidParams{Service: service.String(), Reason: reason}
}

// Coerces a list of numbers.
func coerceFloats(raw interface{}) ([]float64, error) {
	list, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a list of numbers, got %v", raw)
	}

	result := make([]float64, 0, len(list))
	for _, v := range list {
		f, err := coerceFloat(v)
		if err != nil {
			return nil, err
		}
		result = append(result, f)
	}

	return result, nil
}

// Coerces a number or a numeric string.
func coerceFloat(raw interface{}) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err == nil {
			return f, nil
		}
	}

	return 0, fmt.Errorf("expected a number, got %v", raw)
}

// Coerces an integer, a float truncated towards zero or a numeric string.
func coerceInt(raw interface{}) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case float64:
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			return int(v), nil
		}
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err == nil {
			return n, nil
		}
	}

	return 0, fmt.Errorf("expected an integer, got %v", raw)
}
