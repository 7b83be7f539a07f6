//go:generate enumer -type=DeviceType -transform=kebab -trimprefix=Dev -json -text -yaml

package enums

// DeviceType describes enum with known device types.
type DeviceType int

const (
	// DevUnknown describes unknown device type.
	DevUnknown DeviceType = iota
	// DevVacuum describes vacuum device type.
	DevVacuum
	// DevSensor describes sensor device type.
	DevSensor
)
