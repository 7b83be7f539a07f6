// Package device contains device contracts exposed to the platform.
package device

import (
	"time"

	"github.com/go-home-io/viomise/plugins/device/enums"
)

// IDevice defines generic device interface.
type IDevice interface {
	GetID() string
	GetName() string
	GetSpec() *Spec
	Unload()
}

// Spec contains information about the device.
type Spec struct {
	UpdatePeriod      time.Duration
	SupportedCommands []enums.Command
}

// Info describes physical device an entity belongs to.
type Info struct {
	Identifiers  []string `json:"identifiers"`
	Name         string   `json:"name"`
	Manufacturer string   `json:"manufacturer"`
	Model        string   `json:"model"`
}
