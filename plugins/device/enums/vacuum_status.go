//go:generate enumer -type=VacStatus -transform=snake -trimprefix=Vac -json -text -yaml

package enums

// VacStatus defines vacuum activity reported to the platform.
type VacStatus int

const (
	// VacUnknown describes unknown status.
	VacUnknown VacStatus = iota
	// VacCleaning describes a vacuum in a cleaning stage.
	VacCleaning
	// VacDocked describes a vacuum sitting on the dock.
	VacDocked
	// VacIdle describes an idle vacuum.
	VacIdle
	// VacPaused describes a vacuum in a paused state.
	VacPaused
	// VacReturning describes a vacuum returning to the dock.
	VacReturning
	// VacError describes a vacuum reporting an error.
	VacError
)
