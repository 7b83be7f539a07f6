package providers

import (
	"context"

	"github.com/go-home-io/viomise/plugins/common"
)

// IDeviceManagerProvider defines loaded vacuums manager.
type IDeviceManagerProvider interface {
	Load(entry *Entry) error
	Unload(uniqueID string)
	Devices() []*common.MsgDeviceUpdate
	CallService(ctx context.Context, service string, data map[string]interface{}) error
	Stop()
}
