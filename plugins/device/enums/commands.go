//go:generate enumer -type=Command -transform=kebab -trimprefix=Cmd -json -text -yaml

// Package enums contains various enumerations and rules for devices.
package enums

import "strings"

// Command describes enum with known device commands.
type Command int

const (
	// CmdUnknown describes unknown command.
	CmdUnknown Command = iota
	// CmdStart describes starting or resuming a cleaning task.
	CmdStart
	// CmdPause describes pausing the device.
	CmdPause
	// CmdStop describes stopping the device.
	CmdStop
	// CmdSetFanSpeed describes setting fan speed command.
	CmdSetFanSpeed
	// CmdReturnToBase describes sending device to a dock station.
	CmdReturnToBase
	// CmdLocate describes sending find me command.
	CmdLocate
	// CmdSendCommand describes raw vendor command.
	CmdSendCommand
	// CmdCleanZone describes zoned cleaning.
	CmdCleanZone
	// CmdGoto describes cleaning around coordinates.
	CmdGoto
	// CmdCleanSegment describes room cleaning.
	CmdCleanSegment
	// CmdCleanPoint describes point cleaning.
	CmdCleanPoint
)

// AllowedCommands contains set of all possible allowed commands per device type.
var AllowedCommands = map[DeviceType][]Command{
	DevSensor: {},
	DevVacuum: {CmdStart, CmdPause, CmdStop, CmdSetFanSpeed, CmdReturnToBase, CmdLocate, CmdSendCommand,
		CmdCleanZone, CmdGoto, CmdCleanSegment, CmdCleanPoint},
}

// SliceContainsCommand checks whether slice contains certain command.
func SliceContainsCommand(s []Command, e Command) bool {
	for _, a := range s {
		if a == e {
			return true
		}
	}
	return false
}

// IsCommandAllowed checks whether command is allowed for this device type.
func (i Command) IsCommandAllowed(deviceType DeviceType) bool {
	slice, ok := AllowedCommands[deviceType]
	if !ok {
		return false
	}

	return SliceContainsCommand(slice, i)
}

// GetCommandMethodName transforms string representation of the command into actual method name.
func (i Command) GetCommandMethodName() string {
	parts := strings.Split(i.String(), "-")
	result := ""
	for _, v := range parts {
		if v == "" {
			continue
		}
		result += strings.ToUpper(v[:1]) + v[1:]
	}

	return result
}
