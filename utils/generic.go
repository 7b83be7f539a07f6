package utils

import (
	"strings"
	"time"
)

// TimeNow returns epoch UTC.
func TimeNow() int64 {
	return time.Now().UTC().Unix()
}

// NormalizeDeviceName validates that final device name is correct.
func NormalizeDeviceName(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	replacer := strings.NewReplacer("%", "_",
		"/", "_",
		"\\", "_",
		":", "_",
		";", "_",
		".", "_",
		"$", "_",
		"-", "_",
		" ", "_")
	return replacer.Replace(raw)
}
