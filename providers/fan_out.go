package providers

import "github.com/go-home-io/viomise/plugins/common"

// IInternalFanOutProvider defines internal interface for the fan-out channel.
// It extends regular IFanOutProvider which is available for consumers.
type IInternalFanOutProvider interface {
	common.IFanOutProvider

	ChannelInDeviceUpdates() chan *common.MsgDeviceUpdate
	Stop()
}
