// Package systems contains known configuration systems.
package systems

import (
	"fmt"
	"strings"
)

// SystemType is an enum describing known system types.
type SystemType int

const (
	// SysGoHome describes server and device polling settings.
	SysGoHome SystemType = iota
	// SysLogger describes logger system.
	SysLogger
	// SysMQTT describes MQTT state publisher.
	SysMQTT
)

var systemTypeNames = map[SystemType]string{
	SysGoHome: "go-home",
	SysLogger: "logger",
	SysMQTT:   "mqtt",
}

// String returns kebab-cased system name.
func (i SystemType) String() string {
	if s, ok := systemTypeNames[i]; ok {
		return s
	}

	return fmt.Sprintf("SystemType(%d)", int(i))
}

// SystemTypeString parses system type from its string representation.
func SystemTypeString(s string) (SystemType, error) {
	s = strings.ToLower(s)
	for k, v := range systemTypeNames {
		if v == s {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%s does not belong to SystemType values", s)
}
