package server

// muxKeys describes enum with known API tokens.
type muxKeys string

const (
	// urlService describes service name URL param.
	urlService muxKeys = "service"
	// urlFlowID describes setup flow ID URL param.
	urlFlowID muxKeys = "flowID"
	// routeAPI describes base api prefix.
	routeAPI = "/api/v1"
	// routePublic describes public api prefix.
	routePublic = "/pub"
	// Request body limit.
	maxBodySize = 1 << 20
)
