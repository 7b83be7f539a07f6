package common

const (
	// LogSystemToken describes system log entry.
	LogSystemToken = "system"
	// LogEntityToken describes entity ID log entry.
	LogEntityToken = "entity_id"
	// LogDeviceTypeToken describes device type log entry.
	LogDeviceTypeToken = "device_type"
	// LogDeviceNameToken describes device name log entry.
	LogDeviceNameToken = "device_name"
	// LogDeviceCommandToken describes device command log entry.
	LogDeviceCommandToken = "device_cmd"
	// LogDevicePropertyToken describes device property log entry.
	LogDevicePropertyToken = "device_prop"
	// LogDeviceHostToken describes device host log entry.
	LogDeviceHostToken = "host_ip"
	// LogServiceToken describes platform service log entry.
	LogServiceToken = "service"
	// LogFlowToken describes setup flow log entry.
	LogFlowToken = "flow_id"
	// LogURLToken describes URL log entry.
	LogURLToken = "url"
)

const (
	// LogErrorToken describes error log entry.
	LogErrorToken = "error"
	// LogFileToken describes file log entry.
	LogFileToken = "file"
	// LogProviderToken describes provider log entry.
	LogProviderToken = "provider"
	// LogFieldToken describes field log entry.
	LogFieldToken = "field"
	// LogTopicToken describes MQTT topic log entry.
	LogTopicToken = "topic"
)
