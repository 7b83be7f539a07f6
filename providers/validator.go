package providers

import "github.com/go-home-io/viomise/plugins/common"

// IValidatorProvider defines yaml and input structures validator logic.
type IValidatorProvider interface {
	SetLogger(logger common.ILoggerProvider)
	Validate(interface{}) bool
}
