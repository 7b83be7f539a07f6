package enums

import "fmt"

// Service describes platform service exposed in the vacuum domain.
type Service int

const (
	// SrvUnknown describes unknown service.
	SrvUnknown Service = iota
	// SrvStart describes start service.
	SrvStart
	// SrvPause describes pause service.
	SrvPause
	// SrvStop describes stop service.
	SrvStop
	// SrvSetFanSpeed describes fan speed service.
	SrvSetFanSpeed
	// SrvReturnToBase describes return to base service.
	SrvReturnToBase
	// SrvLocate describes locate service.
	SrvLocate
	// SrvSendCommand describes raw command service.
	SrvSendCommand
	// SrvCleanZone describes zoned cleaning service.
	SrvCleanZone
	// SrvCleanZoneLegacy is an alias of SrvCleanZone kept for older automations.
	SrvCleanZoneLegacy
	// SrvGoto describes goto service.
	SrvGoto
	// SrvCleanSegment describes room cleaning service.
	SrvCleanSegment
	// SrvCleanPoint describes point cleaning service.
	SrvCleanPoint
)

var serviceNames = map[Service]string{
	SrvUnknown:         "unknown",
	SrvStart:           "start",
	SrvPause:           "pause",
	SrvStop:            "stop",
	SrvSetFanSpeed:     "set_fan_speed",
	SrvReturnToBase:    "return_to_base",
	SrvLocate:          "locate",
	SrvSendCommand:     "send_command",
	SrvCleanZone:       "vacuum_clean_zone",
	SrvCleanZoneLegacy: "xiaomi_clean_zone",
	SrvGoto:            "vacuum_goto",
	SrvCleanSegment:    "vacuum_clean_segment",
	SrvCleanPoint:      "xiaomi_clean_point",
}

var serviceCommands = map[Service]Command{
	SrvStart:           CmdStart,
	SrvPause:           CmdPause,
	SrvStop:            CmdStop,
	SrvSetFanSpeed:     CmdSetFanSpeed,
	SrvReturnToBase:    CmdReturnToBase,
	SrvLocate:          CmdLocate,
	SrvSendCommand:     CmdSendCommand,
	SrvCleanZone:       CmdCleanZone,
	SrvCleanZoneLegacy: CmdCleanZone,
	SrvGoto:            CmdGoto,
	SrvCleanSegment:    CmdCleanSegment,
	SrvCleanPoint:      CmdCleanPoint,
}

// String returns snake-cased service name.
func (i Service) String() string {
	if s, ok := serviceNames[i]; ok {
		return s
	}

	return fmt.Sprintf("Service(%d)", int(i))
}

// ServiceString parses service from its name.
func ServiceString(s string) (Service, error) {
	for k, v := range serviceNames {
		if k != SrvUnknown && v == s {
			return k, nil
		}
	}

	return SrvUnknown, fmt.Errorf("%s does not belong to Service values", s)
}

// Command returns device command behind the service.
func (i Service) Command() Command {
	if c, ok := serviceCommands[i]; ok {
		return c
	}

	return CmdUnknown
}

// ServiceValues returns all known services.
func ServiceValues() []Service {
	out := make([]Service, 0, len(serviceNames)-1)
	for ii := SrvStart; ii <= SrvCleanPoint; ii++ {
		out = append(out, ii)
	}
	return out
}
